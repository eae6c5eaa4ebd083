package remove_blocked_period

import (
	"context"
)

type ScheduleService interface {
	RemoveBlockedPeriod(ctx context.Context, tenantID int64, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
