package remove_blocked_period

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/service/schedule"
)

const (
	msgMissingPeriodID = "ID do período de bloqueio é obrigatório"
	msgNotFound        = "período de bloqueio não encontrado"
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

// Handle DELETE /api/v1/schedule/blocked-periods/{periodId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем periodId из URL
	vars := mux.Vars(r)
	periodID := vars["periodId"]

	if periodID == "" {
		h.logger.Warn("DELETE /schedule/blocked-periods/{id} - Missing period ID")
		handlers.RespondBadRequest(w, msgMissingPeriodID)
		return
	}

	if err := h.service.RemoveBlockedPeriod(r.Context(), h.tenantID, periodID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlockedPeriodNotFound):
			h.logger.Warn("DELETE /schedule/blocked-periods/{id} - Blocked period not found: id=%s", periodID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /schedule/blocked-periods/{id} - Invalid period ID: id=%s", periodID)
			handlers.RespondBadRequest(w, msgMissingPeriodID)

		default:
			h.logger.Error("DELETE /schedule/blocked-periods/{id} - Failed to remove blocked period: id=%s, error=%v",
				periodID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/blocked-periods/{id} - Blocked period removed successfully: id=%s", periodID)
	handlers.RespondNoContent(w)
}
