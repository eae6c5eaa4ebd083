package bookingflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	catalogClient "github.com/m04kA/SLN-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SLN-SchedulingService/internal/service/bookingflow/models"
	"github.com/m04kA/SLN-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SLN-SchedulingService/pkg/ptr"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// Service сервис пошагового мастера записи
// Линейный мастер service → date → calendar → form → confirmation.
// Назад можно в любой момент, выборы шагов впереди при этом сохраняются
type Service struct {
	tenantID     int64
	sessions     SessionStore
	bookingRepo  BookingRepository
	catalog      CatalogClient
	creator      BookingCreator
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса мастера записи
func NewService(
	tenantID int64,
	sessions SessionStore,
	bookingRepo BookingRepository,
	catalog CatalogClient,
	creator BookingCreator,
	logger Logger,
) *Service {
	return &Service{
		tenantID:     tenantID,
		sessions:     sessions,
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		creator:      creator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Start создает новую сессию мастера на первом шаге
func (s *Service) Start(ctx context.Context) (*models.SessionResponse, error) {
	session := domain.NewFlowSession(uuid.NewString(), s.timeProvider.Now())

	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("Start: failed to save session: %v", err)
		return nil, fmt.Errorf("%w: Start - failed to save session: %v", ErrInternal, err)
	}

	s.logger.Info("Start: created flow session id=%s", session.ID)
	return models.FromDomainSession(session), nil
}

// Get получает текущее состояние сессии
func (s *Service) Get(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSession(session), nil
}

// SelectServices выбирает услуги (шаг service)
// Требуется минимум одна услуга; композит пересчитывается из каталога
func (s *Service) SelectServices(ctx context.Context, sessionID string, req *models.SelectServicesRequest) (*models.SessionResponse, error) {
	s.logger.Info("SelectServices: session=%s, services=%d", sessionID, len(req.ServiceIDs))

	if len(req.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	services := make([]domain.Service, 0, len(req.ServiceIDs))
	for _, serviceID := range req.ServiceIDs {
		service, err := s.catalog.GetService(ctx, s.tenantID, serviceID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				s.logger.Warn("SelectServices: service id=%s not found", serviceID)
				return nil, fmt.Errorf("%w: service id=%s", ErrServiceNotFound, serviceID)
			}
			s.logger.Error("SelectServices: failed to get service id=%s: %v", serviceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		services = append(services, domain.Service{
			ID:              service.ID,
			Name:            service.Name,
			Price:           service.Price,
			DurationMinutes: service.DurationMinutes,
		})
	}

	session.Services = services
	session.Step = domain.StepDate
	session.UpdatedAt = s.timeProvider.Now()

	// Смена набора услуг меняет длительность композита,
	// прежняя оценка конфликта больше не действительна
	if session.StartTime != nil {
		session.ConflictAt, err = s.slotConflicts(ctx, session)
		if err != nil {
			return nil, err
		}
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: SelectServices - failed to save session: %v", ErrInternal, err)
	}

	return models.FromDomainSession(session), nil
}

// SelectDate выбирает дату (шаг date)
// Клиентский мастер не пускает в прошлое, в отличие от административного пути
func (s *Service) SelectDate(ctx context.Context, sessionID string, req *models.SelectDateRequest) (*models.SessionResponse, error) {
	s.logger.Info("SelectDate: session=%s, date=%s", sessionID, req.Date)

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.StepCompleted(domain.StepService) {
		return nil, fmt.Errorf("%w: select services first", ErrStepNotReady)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	if isDateInPast(date, now) {
		s.logger.Warn("SelectDate: past date %s rejected for session=%s", req.Date, sessionID)
		return nil, ErrPastDate
	}

	session.Date = &date
	session.Step = domain.StepCalendar
	session.UpdatedAt = now

	// Время, выбранное для другой даты, пересчитываем против новой
	if session.StartTime != nil {
		session.ConflictAt, err = s.slotConflicts(ctx, session)
		if err != nil {
			return nil, err
		}
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: SelectDate - failed to save session: %v", ErrInternal, err)
	}

	return models.FromDomainSession(session), nil
}

// SelectTime выбирает время начала (шаг calendar)
// Выбор занятого или конфликтующего слота всегда разрешен; конфликт
// фиксируется на сессии и должен быть явно подтвержден при submit
func (s *Service) SelectTime(ctx context.Context, sessionID string, req *models.SelectTimeRequest) (*models.SessionResponse, error) {
	s.logger.Info("SelectTime: session=%s, time=%s", sessionID, req.StartTime)

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.StepCompleted(domain.StepDate) {
		return nil, fmt.Errorf("%w: select a date first", ErrStepNotReady)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	session.StartTime = &startTime
	session.Step = domain.StepForm
	session.UpdatedAt = s.timeProvider.Now()

	session.ConflictAt, err = s.slotConflicts(ctx, session)
	if err != nil {
		return nil, err
	}

	if session.ConflictAt {
		s.logger.Warn("SelectTime: selected slot %s on %s conflicts with an existing booking, session=%s",
			req.StartTime, session.Date.Format(domain.DateFormat), sessionID)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: SelectTime - failed to save session: %v", ErrInternal, err)
	}

	return models.FromDomainSession(session), nil
}

// Submit подтверждает запись (шаг form → confirmation)
//
// Композит не сохраняется одной записью: на каждую компонентную услугу
// создается отдельное бронирование с общими датой/временем/клиентом, сразу
// в статусе confirmado. Цикл последовательный и НЕ транзакционный: при сбое
// в середине уже созданные записи остаются, ответ несет их id
func (s *Service) Submit(ctx context.Context, sessionID string, req *models.SubmitRequest) (*models.SubmitResponse, error) {
	s.logger.Info("Submit: session=%s, client=%s", sessionID, req.ClientName)

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.StepCompleted(domain.StepCalendar) {
		return nil, fmt.Errorf("%w: select services, date and time first", ErrStepNotReady)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return nil, fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	// Конфликт пересчитывается на момент submit: набор бронирований мог
	// измениться, пока пользователь заполнял форму
	session.ConflictAt, err = s.slotConflicts(ctx, session)
	if err != nil {
		return nil, err
	}

	if session.ConflictAt && !req.AllowConflict {
		s.logger.Warn("Submit: conflict not acknowledged for session=%s", sessionID)
		if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
			s.logger.Error("Submit: failed to save session=%s: %v", sessionID, saveErr)
		}
		return nil, ErrConflictNotAcknowledged
	}

	session.Client = &domain.ClientInfo{
		Name:  req.ClientName,
		Email: req.ClientEmail,
		Phone: req.ClientPhone,
	}

	// Последовательный цикл создания: одна запись на компонентную услугу
	createdIDs := make([]int64, 0, len(session.Services))
	var failedServiceID, failureMessage *string

	for _, component := range session.Services {
		created, err := s.creator.Execute(ctx, &create_booking.Request{
			TenantID:    s.tenantID,
			ServiceID:   component.ID,
			Date:        *session.Date,
			StartTime:   *session.StartTime,
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
			ClientPhone: req.ClientPhone,
			Notes:       req.Notes,
		})
		if err != nil {
			// Отката нет: созданные до сбоя записи остаются
			s.logger.Error("Submit: failed to create booking for service id=%s, session=%s: %v (keeping %d already created)",
				component.ID, sessionID, err, len(createdIDs))
			failedServiceID = ptr.Ptr(component.ID)
			failureMessage = ptr.Ptr(err.Error())
			break
		}
		createdIDs = append(createdIDs, created.ID)
	}

	session.ConfirmedIDs = append(session.ConfirmedIDs, createdIDs...)
	session.UpdatedAt = s.timeProvider.Now()

	completed := failedServiceID == nil
	if completed {
		session.Step = domain.StepConfirmation
		s.logger.Info("Submit: created %d booking(s) for session=%s", len(createdIDs), sessionID)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("Submit: failed to save session=%s: %v", sessionID, err)
	}

	return &models.SubmitResponse{
		Session:           *models.FromDomainSession(session),
		CreatedBookingIDs: createdIDs,
		Completed:         completed,
		FailedServiceID:   failedServiceID,
		FailureMessage:    failureMessage,
	}, nil
}

// Back возвращается на предыдущий шаг, сохраняя все выборы
func (s *Service) Back(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Back()
	session.UpdatedAt = s.timeProvider.Now()

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: Back - failed to save session: %v", ErrInternal, err)
	}

	s.logger.Info("Back: session=%s returned to step=%s", sessionID, session.Step)
	return models.FromDomainSession(session), nil
}

// Reset возвращает сессию на первый шаг и сбрасывает все выборы
// Состояние после сброса эквивалентно только что созданной сессии
func (s *Service) Reset(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Reset(s.timeProvider.Now())

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: Reset - failed to save session: %v", ErrInternal, err)
	}

	s.logger.Info("Reset: session=%s reset to first step", sessionID)
	return models.FromDomainSession(session), nil
}

// Вспомогательные методы

func (s *Service) getSession(ctx context.Context, sessionID string) (*domain.FlowSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		s.logger.Warn("getSession: session id=%s not found: %v", sessionID, err)
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// slotConflicts проверяет, пересекается ли выбранный слот композита
// с существующими активными бронированиями
func (s *Service) slotConflicts(ctx context.Context, session *domain.FlowSession) (bool, error) {
	if session.Date == nil || session.StartTime == nil || len(session.Services) == 0 {
		return false, nil
	}

	filter := domain.BookingsFilter{
		TenantID:  s.tenantID,
		StartDate: ptr.Ptr(*session.Date),
		EndDate:   ptr.Ptr(*session.Date),
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("slotConflicts: failed to get bookings: %v", err)
		return false, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	composite := session.Composite()
	startMinutes := session.StartTime.Minutes()
	endMinutes := startMinutes + composite.DurationMinutes

	for _, booking := range bookings {
		if booking.IsCancelled() {
			continue
		}
		if booking.Overlaps(startMinutes, endMinutes) {
			return true, nil
		}
	}

	return false, nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
