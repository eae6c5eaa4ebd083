package get_schedule_config

import (
	"net/http"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
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

// Handle GET /api/v1/schedule
// Ненастроенное расписание не ошибка: возвращается дефолтная закрытая неделя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetConfig(r.Context(), h.tenantID)
	if err != nil {
		h.logger.Error("GET /schedule - Failed to get schedule config: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule - Schedule config retrieved successfully: blockedPeriods=%d",
		len(result.BlockedPeriods))
	handlers.RespondJSON(w, http.StatusOK, result)
}
