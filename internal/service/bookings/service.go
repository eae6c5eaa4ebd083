package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/notify"
	bookingRepo "github.com/m04kA/SLN-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SLN-SchedulingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo BookingRepository
	inventory   InventoryClient
	publisher   ChangePublisher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	inventory InventoryClient,
	publisher ChangePublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		inventory:   inventory,
		publisher:   publisher,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с гибкой фильтрацией
//
// Примеры использования:
// - Все активные записи: List(ctx, &ListBookingsRequest{TenantID: 1})
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Записи за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmado"
// - Включая отменённые: IncludeCancelled = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching bookings for tenant=%d", req.TenantID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for tenant=%d", len(bookings), req.TenantID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования
// Переходы административные и безусловные: оператору доверяем, единственная
// проверка - существование записи и валидность целевого статуса
//
// Любой переход В concluído запускает списание материалов услуги на складе.
// Повторный переход запускает списание повторно - операция НЕ идемпотентна,
// это осознанное текущее поведение. Сбой списания не откатывает смену статуса,
// его результат возвращается оператору информационно
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.UpdateStatusResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Обновляем статус
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = newStatus

	// Побочный эффект перехода в concluído: списание материалов
	var inventoryMessage *string
	if newStatus == domain.StatusCompleted {
		inventoryMessage = s.consumeInventory(ctx, booking)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)

	// Публикуем событие изменения (fire-and-forget)
	s.publisher.PublishChange(ctx, notify.Change{
		Entity: notify.EntityBooking,
		Action: notify.ActionUpdated,
		ID:     fmt.Sprintf("%d", bookingID),
		Date:   booking.Date.Format(domain.DateFormat),
	})

	return &models.UpdateStatusResponse{
		Booking:          *models.FromDomainBooking(booking),
		InventoryMessage: inventoryMessage,
	}, nil
}

// UpdateFields частично редактирует бронирование
// Статус не меняется никогда, побочных эффектов кроме события изменения нет
func (s *Service) UpdateFields(ctx context.Context, bookingID int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateFields: updating booking id=%d", bookingID)

	update, err := req.ToDomainUpdate()
	if err != nil {
		s.logger.Warn("UpdateFields: invalid update for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if update.IsEmpty() {
		s.logger.Warn("UpdateFields: empty update for booking id=%d", bookingID)
		return nil, fmt.Errorf("%w: at least one field is required", ErrInvalidInput)
	}

	if err := s.bookingRepo.UpdateFields(ctx, bookingID, update); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateFields: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateFields: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateFields - repository error: %v", ErrInternal, err)
	}

	// Перечитываем запись после обновления
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("UpdateFields: failed to reload booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateFields - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateFields: successfully updated booking id=%d", bookingID)

	s.publisher.PublishChange(ctx, notify.Change{
		Entity: notify.EntityBooking,
		Action: notify.ActionUpdated,
		ID:     fmt.Sprintf("%d", bookingID),
		Date:   booking.Date.Format(domain.DateFormat),
	})

	return models.FromDomainBooking(booking), nil
}

// Delete физически удаляет бронирование
// Операция необратима, слот просто перестает быть занятым
func (s *Service) Delete(ctx context.Context, bookingID int64) error {
	s.logger.Info("Delete: deleting booking id=%d", bookingID)

	// Читаем запись до удаления, чтобы знать дату для события изменения
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)

	s.publisher.PublishChange(ctx, notify.Change{
		Entity: notify.EntityBooking,
		Action: notify.ActionDeleted,
		ID:     fmt.Sprintf("%d", bookingID),
		Date:   booking.Date.Format(domain.DateFormat),
	})

	return nil
}

// consumeInventory запускает списание материалов услуги
// Любой сбой не фатален: статус уже сменен, результат возвращается текстом
func (s *Service) consumeInventory(ctx context.Context, booking *domain.Booking) *string {
	result, err := s.inventory.ConsumeWithGracefulDegradation(ctx, booking.ServiceID, booking.ID)
	if err != nil {
		s.logger.Warn("consumeInventory: inventory consumption failed for booking id=%d: %v", booking.ID, err)
		msg := "материалы не списаны: сервис склада недоступен"
		return &msg
	}

	if !result.Success {
		// Отсутствие связки услуга-материалы не ошибка, просто нечего списывать
		s.logger.Info("consumeInventory: nothing to consume for booking id=%d: %s", booking.ID, result.Message)
	}

	return &result.Message
}
