package add_blocked_period

import (
	"errors"
	"net/http"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/service/schedule"
	"github.com/m04kA/SLN-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidData        = "período de bloqueio inválido"
)

type Handler struct {
	tenantID int64
	service  ScheduleService
	logger   Logger
}

func NewHandler(tenantID int64, service ScheduleService, logger Logger) *Handler {
	return &Handler{
		tenantID: tenantID,
		service:  service,
		logger:   logger,
	}
}

// Handle POST /api/v1/schedule/blocked-periods
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AddBlockedPeriodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/blocked-periods - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddBlockedPeriod(r.Context(), h.tenantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /schedule/blocked-periods - Invalid data: date=%s, error=%v", req.Date, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /schedule/blocked-periods - Failed to add blocked period: date=%s, error=%v",
				req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/blocked-periods - Blocked period added successfully: id=%s, date=%s",
		result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
