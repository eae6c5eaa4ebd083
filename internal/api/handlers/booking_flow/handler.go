package booking_flow

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/service/bookingflow"
	"github.com/m04kA/SLN-SchedulingService/internal/service/bookingflow/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgSessionNotFound    = "sessão não encontrada ou expirada"
	msgServiceNotFound    = "serviço não encontrado"
	msgPastDate           = "não é possível agendar para uma data passada"
	msgStepNotReady       = "complete os passos anteriores primeiro"
	msgConflict           = "o horário selecionado conflita com uma reserva existente; confirme com allowConflict"
	msgInvalidData        = "dados inválidos"
)

// Handler обслуживает все маршруты пошагового мастера записи
type Handler struct {
	service FlowService
	logger  Logger
}

func NewHandler(service FlowService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleStart POST /api/v1/flow/sessions
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Start(r.Context())
	if err != nil {
		h.logger.Error("POST /flow/sessions - Failed to start session: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /flow/sessions - Session started: session_id=%s", session.ID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}

// HandleGet GET /api/v1/flow/sessions/{sessionId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		h.respondFlowError(w, "GET /flow/sessions/{id}", sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleSelectServices POST /api/v1/flow/sessions/{sessionId}/services
func (h *Handler) HandleSelectServices(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req models.SelectServicesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /flow/sessions/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.SelectServices(r.Context(), sessionID, &req)
	if err != nil {
		h.respondFlowError(w, "POST /flow/sessions/{id}/services", sessionID, err)
		return
	}

	h.logger.Info("POST /flow/sessions/{id}/services - Services selected: session_id=%s, services=%d",
		sessionID, len(req.ServiceIDs))
	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleSelectDate POST /api/v1/flow/sessions/{sessionId}/date
func (h *Handler) HandleSelectDate(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req models.SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /flow/sessions/{id}/date - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.SelectDate(r.Context(), sessionID, &req)
	if err != nil {
		h.respondFlowError(w, "POST /flow/sessions/{id}/date", sessionID, err)
		return
	}

	h.logger.Info("POST /flow/sessions/{id}/date - Date selected: session_id=%s, date=%s", sessionID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleSelectTime POST /api/v1/flow/sessions/{sessionId}/time
func (h *Handler) HandleSelectTime(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req models.SelectTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /flow/sessions/{id}/time - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.SelectTime(r.Context(), sessionID, &req)
	if err != nil {
		h.respondFlowError(w, "POST /flow/sessions/{id}/time", sessionID, err)
		return
	}

	h.logger.Info("POST /flow/sessions/{id}/time - Time selected: session_id=%s, time=%s, conflict=%t",
		sessionID, req.StartTime, session.ConflictAt)
	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleSubmit POST /api/v1/flow/sessions/{sessionId}/submit
// При частичном сбое цикла создания ответ всё равно 200:
// Completed=false и FailedServiceID описывают разрыв, отката нет
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req models.SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /flow/sessions/{id}/submit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Submit(r.Context(), sessionID, &req)
	if err != nil {
		h.respondFlowError(w, "POST /flow/sessions/{id}/submit", sessionID, err)
		return
	}

	h.logger.Info("POST /flow/sessions/{id}/submit - Submit finished: session_id=%s, created=%d, completed=%t",
		sessionID, len(result.CreatedBookingIDs), result.Completed)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleBack POST /api/v1/flow/sessions/{sessionId}/back
func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Back(r.Context(), sessionID)
	if err != nil {
		h.respondFlowError(w, "POST /flow/sessions/{id}/back", sessionID, err)
		return
	}

	h.logger.Info("POST /flow/sessions/{id}/back - Went back: session_id=%s, step=%s", sessionID, session.Step)
	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleReset POST /api/v1/flow/sessions/{sessionId}/reset
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Reset(r.Context(), sessionID)
	if err != nil {
		h.respondFlowError(w, "POST /flow/sessions/{id}/reset", sessionID, err)
		return
	}

	h.logger.Info("POST /flow/sessions/{id}/reset - Session reset: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, session)
}

// respondFlowError единое отображение ошибок сервиса мастера в HTTP статусы
func (h *Handler) respondFlowError(w http.ResponseWriter, route, sessionID string, err error) {
	switch {
	case errors.Is(err, bookingflow.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: session_id=%s", route, sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, bookingflow.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: session_id=%s, error=%v", route, sessionID, err)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, bookingflow.ErrPastDate):
		h.logger.Warn("%s - Past date rejected: session_id=%s", route, sessionID)
		handlers.RespondBadRequest(w, msgPastDate)

	case errors.Is(err, bookingflow.ErrStepNotReady):
		h.logger.Warn("%s - Step not ready: session_id=%s, error=%v", route, sessionID, err)
		handlers.RespondError(w, http.StatusConflict, msgStepNotReady)

	case errors.Is(err, bookingflow.ErrConflictNotAcknowledged):
		h.logger.Warn("%s - Conflict not acknowledged: session_id=%s", route, sessionID)
		handlers.RespondError(w, http.StatusConflict, msgConflict)

	case errors.Is(err, bookingflow.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: session_id=%s, error=%v", route, sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Unexpected error: session_id=%s, error=%v", route, sessionID, err)
		handlers.RespondInternalError(w)
	}
}
