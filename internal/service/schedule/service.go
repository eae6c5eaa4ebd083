package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/notify"
	scheduleRepo "github.com/m04kA/SLN-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SLN-SchedulingService/internal/service/schedule/models"
)

// Service сервис конфигурации расписания и блокировок
type Service struct {
	scheduleRepo ScheduleRepository
	publisher    ChangePublisher
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	publisher ChangePublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		publisher:    publisher,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetConfig получает конфигурацию расписания целиком
// Если недельное расписание не настроено, возвращается дефолтное (закрытая неделя)
func (s *Service) GetConfig(ctx context.Context, tenantID int64) (*models.ScheduleConfigResponse, error) {
	s.logger.Info("GetConfig: fetching schedule config for tenant=%d", tenantID)

	week, err := s.scheduleRepo.GetWeekSchedule(ctx, tenantID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		s.logger.Error("GetConfig: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	periods, err := s.scheduleRepo.GetBlockedPeriods(ctx, tenantID)
	if err != nil {
		s.logger.Error("GetConfig: failed to get blocked periods for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	return &models.ScheduleConfigResponse{
		Week:           models.FromDomainWeek(week),
		BlockedPeriods: models.FromDomainBlockedPeriods(periods),
	}, nil
}

// SaveConfig заменяет конфигурацию расписания целиком
// Недельное расписание и блокировки сохраняются в одной транзакции
func (s *Service) SaveConfig(ctx context.Context, tenantID int64, req *models.SaveScheduleRequest) (*models.ScheduleConfigResponse, error) {
	s.logger.Info("SaveConfig: saving schedule config for tenant=%d, days=%d, blockedPeriods=%d",
		tenantID, len(req.Week), len(req.BlockedPeriods))

	// 1. Конвертируем и валидируем недельное расписание
	week, err := models.ToDomainWeek(req.Week)
	if err != nil {
		s.logger.Warn("SaveConfig: invalid week schedule for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := week.Validate(); err != nil {
		s.logger.Warn("SaveConfig: week schedule validation failed for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Конвертируем и валидируем блокировки
	// Пересечения блокировок законны и не проверяются
	periods := make(domain.BlockedPeriodSet, 0, len(req.BlockedPeriods))
	for i := range req.BlockedPeriods {
		period, err := req.BlockedPeriods[i].ToDomainBlockedPeriod(tenantID)
		if err != nil {
			s.logger.Warn("SaveConfig: invalid blocked period for tenant=%d: %v", tenantID, err)
			return nil, fmt.Errorf("%w: blocked period: %v", ErrInvalidInput, err)
		}
		if period.ID == "" {
			period.ID = uuid.NewString()
		}
		if err := period.Validate(); err != nil {
			s.logger.Warn("SaveConfig: blocked period validation failed for tenant=%d: %v", tenantID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		periods = append(periods, period)
	}

	// 3. Сохраняем в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.scheduleRepo.SaveWeekSchedule(txCtx, tenantID, week); err != nil {
			return fmt.Errorf("%w: SaveConfig - save week schedule: %v", ErrInternal, err)
		}
		if err := s.scheduleRepo.ReplaceBlockedPeriods(txCtx, tenantID, periods); err != nil {
			return fmt.Errorf("%w: SaveConfig - replace blocked periods: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SaveConfig: transaction failed for tenant=%d: %v", tenantID, err)
		return nil, err
	}

	s.logger.Info("SaveConfig: successfully saved schedule config for tenant=%d", tenantID)

	// Публикуем событие изменения (fire-and-forget)
	s.publisher.PublishChange(ctx, notify.Change{
		Entity: notify.EntitySchedule,
		Action: notify.ActionUpdated,
	})

	return s.GetConfig(ctx, tenantID)
}

// AddBlockedPeriod добавляет одну блокировку
func (s *Service) AddBlockedPeriod(ctx context.Context, tenantID int64, req *models.AddBlockedPeriodRequest) (*models.BlockedPeriodResponse, error) {
	s.logger.Info("AddBlockedPeriod: adding blocked period for tenant=%d, date=%s", tenantID, req.Date)

	period, err := req.ToDomainBlockedPeriod(tenantID)
	if err != nil {
		s.logger.Warn("AddBlockedPeriod: invalid blocked period for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	period.ID = uuid.NewString()

	if err := period.Validate(); err != nil {
		s.logger.Warn("AddBlockedPeriod: validation failed for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.scheduleRepo.AddBlockedPeriod(ctx, &period); err != nil {
		s.logger.Error("AddBlockedPeriod: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: AddBlockedPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddBlockedPeriod: successfully added blocked period id=%s for tenant=%d", period.ID, tenantID)

	s.publisher.PublishChange(ctx, notify.Change{
		Entity: notify.EntityBlockedPeriod,
		Action: notify.ActionCreated,
		ID:     period.ID,
		Date:   period.Date.Format(domain.DateFormat),
	})

	response := models.FromDomainBlockedPeriod(&period)
	return &response, nil
}

// RemoveBlockedPeriod удаляет блокировку по id
func (s *Service) RemoveBlockedPeriod(ctx context.Context, tenantID int64, id string) error {
	s.logger.Info("RemoveBlockedPeriod: removing blocked period id=%s for tenant=%d", id, tenantID)

	if id == "" {
		return fmt.Errorf("%w: blocked period id is required", ErrInvalidInput)
	}

	if err := s.scheduleRepo.RemoveBlockedPeriod(ctx, tenantID, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedPeriodNotFound) {
			s.logger.Warn("RemoveBlockedPeriod: blocked period id=%s not found for tenant=%d", id, tenantID)
			return ErrBlockedPeriodNotFound
		}
		s.logger.Error("RemoveBlockedPeriod: repository error for tenant=%d: %v", tenantID, err)
		return fmt.Errorf("%w: RemoveBlockedPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveBlockedPeriod: successfully removed blocked period id=%s for tenant=%d", id, tenantID)

	s.publisher.PublishChange(ctx, notify.Change{
		Entity: notify.EntityBlockedPeriod,
		Action: notify.ActionDeleted,
		ID:     id,
	})

	return nil
}
