package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/service/schedule"
	"github.com/m04kA/SLN-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidData        = "configuração de horários inválida"
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

// Handle PUT /api/v1/schedule
// Конфигурация заменяется целиком: недельное расписание и блокировки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SaveScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SaveConfig(r.Context(), h.tenantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /schedule - Invalid config: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /schedule - Failed to save schedule config: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule - Schedule config saved successfully: days=%d, blockedPeriods=%d",
		len(result.Week), len(result.BlockedPeriods))
	handlers.RespondJSON(w, http.StatusOK, result)
}
