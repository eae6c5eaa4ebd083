package add_blocked_period

import (
	"context"

	"github.com/m04kA/SLN-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	AddBlockedPeriod(ctx context.Context, tenantID int64, req *models.AddBlockedPeriodRequest) (*models.BlockedPeriodResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
