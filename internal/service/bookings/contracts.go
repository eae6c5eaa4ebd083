package bookings

import (
	"context"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/notify"
	"github.com/m04kA/SLN-SchedulingService/internal/integrations/inventoryservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateFields(ctx context.Context, id int64, update domain.BookingUpdate) error
	Delete(ctx context.Context, id int64) error
}

// InventoryClient интерфейс клиента сервиса склада материалов
type InventoryClient interface {
	ConsumeWithGracefulDegradation(ctx context.Context, serviceID string, bookingID int64) (*inventoryservice.ConsumeResult, error)
}

// ChangePublisher интерфейс издателя событий изменения
type ChangePublisher interface {
	PublishChange(ctx context.Context, change notify.Change)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
