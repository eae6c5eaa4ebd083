package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/notify"
	catalogClient "github.com/m04kA/SLN-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SLN-SchedulingService/pkg/ptr"
)

// UseCase use case создания бронирования администратором
type UseCase struct {
	bookingRepo BookingRepository
	catalog     CatalogClient
	publisher   ChangePublisher
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog CatalogClient,
	publisher ChangePublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalog:     catalog,
		publisher:   publisher,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
//
// Занятость слота запись НЕ блокирует: пересечения с существующими
// бронированиями возвращаются как conflictCount, решение за оператором
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%d, service=%s, date=%s, time=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу из каталога для снапшота
	service, err := uc.catalog.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, fmt.Errorf("%w: service id=%s", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Определяем начальный статус
	// Быстрая административная запись минует pendente и сразу подтверждается
	status := domain.StatusConfirmed
	if req.Pending {
		status = domain.StatusPending
	}

	var result *domain.Booking
	var conflictCount int

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.BookingsFilter{
			TenantID:  req.TenantID,
			StartDate: ptr.Ptr(req.Date),
			EndDate:   ptr.Ptr(req.Date),
		}

		bookings, err := uc.bookingRepo.ListWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.2. Считаем пересечения с существующими бронированиями
		startMinutes := req.StartTime.Minutes()
		endMinutes := startMinutes + service.DurationMinutes

		conflictCount = countOverlappingBookings(startMinutes, endMinutes, bookings)
		if conflictCount > 0 {
			uc.logger.Warn("CreateBooking: slot overlaps %d existing booking(s), creating anyway (operator override)",
				conflictCount)
		}

		// 4.3. Создаем бронирование со снапшотом данных услуги
		booking := &domain.Booking{
			TenantID:               req.TenantID,
			ServiceID:              req.ServiceID,
			ServiceName:            service.Name,
			ServiceDurationMinutes: service.DurationMinutes,
			ServicePrice:           service.Price,
			Date:                   req.Date,
			StartTime:              req.StartTime,
			ClientName:             req.ClientName,
			ClientEmail:            req.ClientEmail,
			ClientPhone:            req.ClientPhone,
			Notes:                  req.Notes,
			Status:                 status,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s, conflicts=%d",
		result.ID, result.Status, conflictCount)

	// 5. Публикуем событие изменения (fire-and-forget)
	uc.publisher.PublishChange(ctx, notify.Change{
		Entity: notify.EntityBooking,
		Action: notify.ActionCreated,
		ID:     fmt.Sprintf("%d", result.ID),
		Date:   result.Date.Format(domain.DateFormat),
	})

	// Конвертируем в response
	return &Response{
		ID:                     result.ID,
		TenantID:               result.TenantID,
		ServiceID:              result.ServiceID,
		Date:                   result.Date,
		StartTime:              result.StartTime,
		Status:                 string(result.Status),
		ServiceName:            result.ServiceName,
		ServiceDurationMinutes: result.ServiceDurationMinutes,
		ServicePrice:           result.ServicePrice,
		ClientName:             result.ClientName,
		ClientEmail:            result.ClientEmail,
		ClientPhone:            result.ClientPhone,
		Notes:                  result.Notes,
		ConflictCount:          conflictCount,
		CreatedAt:              result.CreatedAt,
		UpdatedAt:              result.UpdatedAt,
	}, nil
}
