package get_day_grid

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SLN-SchedulingService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/SLN-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SLN-SchedulingService/pkg/ptr"
)

// UseCase use case построения размеченной сетки слотов на день
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalog      CatalogClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalog CatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalog:      catalog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case построения сетки слотов
// Сетка детерминирована и пересчитывается на каждый запрос, состояния не кэшируются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayGrid: tenant=%d, date=%s, services=%d, variant=%s",
		req.TenantID, req.Date.Format(domain.DateFormat), len(req.ServiceIDs), req.Variant)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayGrid: validation failed: %v", err)
		return nil, err
	}

	variant := req.Variant
	if variant == "" {
		variant = FullDayGrid
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем недельное расписание
	// Если расписание не настроено, используем дефолтное
	week, err := uc.scheduleRepo.GetWeekSchedule(ctx, req.TenantID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("GetDayGrid: failed to get week schedule: %v", err)
			return nil, fmt.Errorf("%w: failed to get week schedule: %v", ErrInternal, err)
		}
		week = domain.DefaultWeekSchedule()
		uc.logger.Info("GetDayGrid: schedule not configured for tenant=%d, using defaults", req.TenantID)
	}

	day := week.DayFor(req.Date)

	// 4. Получаем блокировки
	blocked, err := uc.scheduleRepo.GetBlockedPeriods(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("GetDayGrid: failed to get blocked periods: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked periods: %v", ErrInternal, err)
	}

	// 5. Собираем композитную услугу-кандидата из каталога
	candidate, err := uc.buildCandidate(ctx, req.TenantID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// 6. Получаем активные бронирования на эту дату
	filter := domain.BookingsFilter{
		TenantID:  req.TenantID,
		StartDate: ptr.Ptr(req.Date),
		EndDate:   ptr.Ptr(req.Date),
	}

	bookings, err := uc.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDayGrid: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Генерируем сетку и размечаем слоты
	gridTimes := generateGridTimes(variant, day)

	candidateDuration := 0
	if candidate != nil {
		candidateDuration = candidate.DurationMinutes
	}

	slots := classifySlots(gridTimes, req.Date, now, day, blocked, bookings, candidateDuration, req.SelectedTime)

	interval := day.IntervalMinutes
	if interval <= 0 {
		interval = domain.DefaultIntervalMinutes
	}

	slotsNeeded := 0
	if candidateDuration > 0 {
		slotsNeeded = domain.SlotSpan(candidateDuration, interval)
	}

	uc.logger.Info("GetDayGrid: generated %d slots for tenant=%d, date=%s, slotsNeeded=%d",
		len(slots), req.TenantID, req.Date.Format(domain.DateFormat), slotsNeeded)

	return &Response{
		Date:        req.Date,
		Variant:     variant,
		IsOpen:      day.IsOpen,
		Interval:    interval,
		SlotsNeeded: slotsNeeded,
		Candidate:   candidate,
		Slots:       slots,
	}, nil
}

// buildCandidate собирает композитную услугу из выбранных компонент каталога
// Длительность и цена суммируются, название склеивается
func (uc *UseCase) buildCandidate(ctx context.Context, tenantID int64, serviceIDs []string) (*Candidate, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}

	components := make([]domain.Service, 0, len(serviceIDs))

	for _, serviceID := range serviceIDs {
		service, err := uc.catalog.GetService(ctx, tenantID, serviceID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				uc.logger.Warn("GetDayGrid: service id=%s not found", serviceID)
				return nil, fmt.Errorf("%w: service id=%s", ErrServiceNotFound, serviceID)
			}
			uc.logger.Error("GetDayGrid: failed to get service id=%s: %v", serviceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		components = append(components, domain.Service{
			ID:              service.ID,
			Name:            service.Name,
			Price:           service.Price,
			DurationMinutes: service.DurationMinutes,
		})
	}

	composite := domain.CompositeService(components)

	return &Candidate{
		ServiceIDs:      serviceIDs,
		Name:            composite.Name,
		DurationMinutes: composite.DurationMinutes,
		Price:           composite.Price,
	}, nil
}
