package update_schedule_config

import (
	"context"

	"github.com/m04kA/SLN-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	SaveConfig(ctx context.Context, tenantID int64, req *models.SaveScheduleRequest) (*models.ScheduleConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
