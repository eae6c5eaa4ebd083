package schedule

import (
	"context"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/notify"
)

// ScheduleRepository интерфейс репозитория расписания и блокировок
type ScheduleRepository interface {
	GetWeekSchedule(ctx context.Context, tenantID int64) (domain.WeekSchedule, error)
	SaveWeekSchedule(ctx context.Context, tenantID int64, week domain.WeekSchedule) error
	GetBlockedPeriods(ctx context.Context, tenantID int64) (domain.BlockedPeriodSet, error)
	AddBlockedPeriod(ctx context.Context, period *domain.BlockedPeriod) error
	RemoveBlockedPeriod(ctx context.Context, tenantID int64, id string) error
	ReplaceBlockedPeriods(ctx context.Context, tenantID int64, periods domain.BlockedPeriodSet) error
}

// ChangePublisher интерфейс издателя событий изменения
type ChangePublisher interface {
	PublishChange(ctx context.Context, change notify.Change)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
