package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	createBooking "github.com/m04kA/SLN-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidDateOrTime  = "data ou horário inválido, esperado YYYY-MM-DD e HH:MM"
	msgServiceNotFound    = "serviço não encontrado"
	msgInvalidData        = "dados da reserva inválidos"
)

type Handler struct {
	tenantID int64
	useCase  CreateBookingUseCase
	logger   Logger
}

func NewHandler(tenantID int64, useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		tenantID: tenantID,
		useCase:  useCase,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(h.tenantID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: service_id=%s, error=%v", req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service_id=%s, error=%v",
				req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Пересечение с существующими записями не блокирует создание,
	// но попадает в лог и в ответ оператору
	if result.ConflictCount > 0 {
		h.logger.Warn("POST /bookings - Booking created with %d overlapping booking(s): booking_id=%d",
			result.ConflictCount, result.ID)
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, service_id=%s, date=%s",
		result.ID, req.ServiceID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
