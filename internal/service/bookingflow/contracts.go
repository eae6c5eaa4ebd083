package bookingflow

import (
	"context"
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SLN-SchedulingService/internal/usecase/create_booking"
)

// SessionStore интерфейс хранилища сессий мастера
type SessionStore interface {
	Save(ctx context.Context, session *domain.FlowSession) error
	Get(ctx context.Context, id string) (*domain.FlowSession, error)
	Delete(ctx context.Context, id string) error
}

// BookingRepository интерфейс репозитория бронирований
// Используется для проверки пересечений при выборе времени
type BookingRepository interface {
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, tenantID int64, serviceID string) (*catalogservice.Service, error)
}

// BookingCreator интерфейс создания бронирования
// Мастер переиспользует административный путь создания: по одному
// бронированию на каждую компонентную услугу
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
