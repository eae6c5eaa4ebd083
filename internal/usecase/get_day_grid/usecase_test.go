package get_day_grid

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SLN-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SLN-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeScheduleRepo struct {
	week    domain.WeekSchedule
	weekErr error
	blocked domain.BlockedPeriodSet
}

func (f *fakeScheduleRepo) GetWeekSchedule(_ context.Context, _ int64) (domain.WeekSchedule, error) {
	return f.week, f.weekErr
}

func (f *fakeScheduleRepo) GetBlockedPeriods(_ context.Context, _ int64) (domain.BlockedPeriodSet, error) {
	return f.blocked, nil
}

type fakeCatalog struct {
	services map[string]*catalogservice.Service
}

func (f *fakeCatalog) GetService(_ context.Context, _ int64, serviceID string) (*catalogservice.Service, error) {
	service, ok := f.services[serviceID]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return service, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Вспомогательные конструкторы

func timePtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

// openWeek открытая неделя 09:00-18:00 с обедом 12:00-13:00, шаг 30 минут
func openWeek() domain.WeekSchedule {
	week := domain.DefaultWeekSchedule()
	for i := range week {
		week[i] = domain.DaySchedule{
			Weekday:         time.Weekday(i),
			IsOpen:          true,
			OpenTime:        timePtr("09:00"),
			CloseTime:       timePtr("18:00"),
			LunchStart:      timePtr("12:00"),
			LunchEnd:        timePtr("13:00"),
			IntervalMinutes: 30,
		}
	}
	return week
}

func booking(id int64, startTime string, durationMinutes int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:                     id,
		TenantID:               1,
		ServiceID:              "svc-1",
		ServiceDurationMinutes: durationMinutes,
		StartTime:              types.TimeString(startTime),
		Status:                 status,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, schedule *fakeScheduleRepo, catalog *fakeCatalog, now time.Time) *UseCase {
	uc := NewUseCase(bookings, schedule, catalog, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

var (
	// 2025-10-15 - среда
	testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	// Задолго до тестовой даты, чтобы слоты не были past
	testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
)

func slotByTime(t *testing.T, slots []domain.TimeSlot, startTime string) *domain.TimeSlot {
	t.Helper()
	for i := range slots {
		if slots[i].StartTime.String() == startTime {
			return &slots[i]
		}
	}
	t.Fatalf("slot %s not found", startTime)
	return nil
}

func TestExecute_FullDayGridIsDeterministic(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{week: openWeek()},
		&fakeCatalog{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: testDate})
	require.NoError(t, err)

	// Полная суточная сетка с шагом 30 минут - ровно 48 слотов
	require.Len(t, resp.Slots, 48)
	assert.Equal(t, FullDayGrid, resp.Variant)
	assert.True(t, resp.IsOpen)
	assert.Equal(t, 30, resp.Interval)
	assert.Equal(t, 0, resp.SlotsNeeded)
	assert.Nil(t, resp.Candidate)

	// Слоты строго по возрастанию времени, от 00:00 до 23:30
	assert.Equal(t, "00:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "23:30", resp.Slots[47].StartTime.String())
	for i := 0; i < len(resp.Slots); i++ {
		expected, err := types.NewTimeStringFromMinutes(i * 30)
		require.NoError(t, err)
		assert.Equal(t, expected, resp.Slots[i].StartTime)
	}

	// Время вне рабочих часов и обед размечены out_of_hours
	assert.Equal(t, domain.SlotOutOfHours, slotByTime(t, resp.Slots, "08:30").State())
	assert.Equal(t, domain.SlotFree, slotByTime(t, resp.Slots, "09:00").State())
	assert.Equal(t, domain.SlotOutOfHours, slotByTime(t, resp.Slots, "12:00").State())
	assert.Equal(t, domain.SlotOutOfHours, slotByTime(t, resp.Slots, "12:30").State())
	assert.Equal(t, domain.SlotFree, slotByTime(t, resp.Slots, "13:00").State())
	assert.Equal(t, domain.SlotOutOfHours, slotByTime(t, resp.Slots, "18:00").State())
}

func TestExecute_OccupiedSlots(t *testing.T) {
	// Запись 10:00 на 45 минут занимает слоты 10:00 и 10:30, но не 11:00
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booking(7, "10:00", 45, domain.StatusConfirmed)}},
		&fakeScheduleRepo{week: openWeek()},
		&fakeCatalog{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: testDate})
	require.NoError(t, err)

	slot1000 := slotByTime(t, resp.Slots, "10:00")
	slot1030 := slotByTime(t, resp.Slots, "10:30")
	slot1100 := slotByTime(t, resp.Slots, "11:00")

	assert.True(t, slot1000.Occupied)
	assert.True(t, slot1030.Occupied)
	assert.False(t, slot1100.Occupied)

	require.NotNil(t, slot1000.BookingID)
	assert.Equal(t, int64(7), *slot1000.BookingID)
	require.NotNil(t, slot1030.BookingID)
	assert.Equal(t, int64(7), *slot1030.BookingID)
}

func TestExecute_CancelledBookingDoesNotOccupy(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booking(7, "10:00", 45, domain.StatusCancelled)}},
		&fakeScheduleRepo{week: openWeek()},
		&fakeCatalog{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: testDate})
	require.NoError(t, err)

	assert.False(t, slotByTime(t, resp.Slots, "10:00").Occupied)
	assert.False(t, slotByTime(t, resp.Slots, "10:30").Occupied)
}

func TestExecute_PreviewSpan(t *testing.T) {
	// Кандидат на 60 минут, выбранное время 14:00: preview на 14:00 и 14:30
	catalog := &fakeCatalog{services: map[string]*catalogservice.Service{
		"svc-1": {ID: "svc-1", TenantID: 1, Name: "Corte", Price: 80, DurationMinutes: 60, Active: true},
	}}
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{week: openWeek()},
		catalog,
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:     1,
		Date:         testDate,
		ServiceIDs:   []string{"svc-1"},
		SelectedTime: timePtr("14:00"),
	})
	require.NoError(t, err)

	assert.True(t, slotByTime(t, resp.Slots, "14:00").Preview)
	assert.True(t, slotByTime(t, resp.Slots, "14:30").Preview)
	assert.False(t, slotByTime(t, resp.Slots, "13:30").Preview)
	assert.False(t, slotByTime(t, resp.Slots, "15:00").Preview)

	assert.Equal(t, 2, resp.SlotsNeeded)
	require.NotNil(t, resp.Candidate)
	assert.Equal(t, 60, resp.Candidate.DurationMinutes)
}

func TestExecute_ConflictAnnotation(t *testing.T) {
	// Запись 10:15-10:45. Кандидат на 30 минут, поставленный на 10:00,
	// пересекся бы с ней, хотя сам слот 10:00 не занят
	catalog := &fakeCatalog{services: map[string]*catalogservice.Service{
		"svc-1": {ID: "svc-1", TenantID: 1, Name: "Corte", Price: 80, DurationMinutes: 30, Active: true},
	}}
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booking(7, "10:15", 30, domain.StatusConfirmed)}},
		&fakeScheduleRepo{week: openWeek()},
		catalog,
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:   1,
		Date:       testDate,
		ServiceIDs: []string{"svc-1"},
	})
	require.NoError(t, err)

	slot1000 := slotByTime(t, resp.Slots, "10:00")
	assert.False(t, slot1000.Occupied)
	assert.True(t, slot1000.Conflict)

	// Слот 10:30 внутри диапазона записи: одновременно occupied и conflict
	slot1030 := slotByTime(t, resp.Slots, "10:30")
	assert.True(t, slot1030.Occupied)
	assert.True(t, slot1030.Conflict)

	// Кандидат на 11:00 уже ни с чем не пересекается
	assert.False(t, slotByTime(t, resp.Slots, "11:00").Conflict)
}

func TestExecute_CompositeCandidate(t *testing.T) {
	catalog := &fakeCatalog{services: map[string]*catalogservice.Service{
		"svc-corte":    {ID: "svc-corte", TenantID: 1, Name: "Corte", Price: 80, DurationMinutes: 45, Active: true},
		"svc-manicure": {ID: "svc-manicure", TenantID: 1, Name: "Manicure", Price: 50, DurationMinutes: 30, Active: true},
	}}
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{week: openWeek()},
		catalog,
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:   1,
		Date:       testDate,
		ServiceIDs: []string{"svc-corte", "svc-manicure"},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Candidate)
	assert.Equal(t, "Corte + Manicure", resp.Candidate.Name)
	assert.Equal(t, 75, resp.Candidate.DurationMinutes)
	assert.Equal(t, 130.0, resp.Candidate.Price)
	// ceil(75 / 30) = 3 слота
	assert.Equal(t, 3, resp.SlotsNeeded)
}

func TestExecute_BlockedSlots(t *testing.T) {
	blocked := domain.BlockedPeriodSet{
		{ID: "b1", TenantID: 1, Date: testDate, StartTime: timePtr("15:00"), EndTime: timePtr("16:00")},
	}
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{week: openWeek(), blocked: blocked},
		&fakeCatalog{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: testDate})
	require.NoError(t, err)

	assert.False(t, slotByTime(t, resp.Slots, "14:30").Blocked)
	assert.True(t, slotByTime(t, resp.Slots, "15:00").Blocked)
	assert.True(t, slotByTime(t, resp.Slots, "15:30").Blocked)
	assert.False(t, slotByTime(t, resp.Slots, "16:00").Blocked)
}

func TestExecute_WholeDayBlockWinsOverWorkingHours(t *testing.T) {
	blocked := domain.BlockedPeriodSet{
		{ID: "feriado", TenantID: 1, Date: testDate},
	}
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{week: openWeek(), blocked: blocked},
		&fakeCatalog{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: testDate})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Blocked, "slot %s must be blocked", slot.StartTime)
	}
	// Внутри рабочих часов blocked определяет отображаемое состояние
	assert.Equal(t, domain.SlotBlocked, slotByTime(t, resp.Slots, "10:00").State())
}

func TestExecute_PastAnnotations(t *testing.T) {
	t.Run("past date marks every slot", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeBookingRepo{},
			&fakeScheduleRepo{week: openWeek()},
			&fakeCatalog{},
			time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC),
		)

		resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: testDate})
		require.NoError(t, err)

		for _, slot := range resp.Slots {
			assert.True(t, slot.Past, "slot %s must be past", slot.StartTime)
		}
	})

	t.Run("same day marks only elapsed slots", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeBookingRepo{},
			&fakeScheduleRepo{week: openWeek()},
			&fakeCatalog{},
			time.Date(2025, 10, 15, 11, 10, 0, 0, time.UTC),
		)

		resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: testDate})
		require.NoError(t, err)

		assert.True(t, slotByTime(t, resp.Slots, "11:00").Past)
		assert.False(t, slotByTime(t, resp.Slots, "11:30").Past)
	})
}

func TestExecute_BoundedGrid(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{week: openWeek()},
		&fakeCatalog{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: testDate, Variant: BoundedGrid})
	require.NoError(t, err)

	// [09:00, 18:00) с шагом 30 минут - 18 слотов
	require.Len(t, resp.Slots, 18)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "17:30", resp.Slots[17].StartTime.String())

	// Обеденные слоты остаются в сетке, но размечены out_of_hours
	assert.True(t, slotByTime(t, resp.Slots, "12:00").OutOfHours)
	assert.True(t, slotByTime(t, resp.Slots, "12:30").OutOfHours)
	assert.False(t, slotByTime(t, resp.Slots, "13:00").OutOfHours)
}

func TestExecute_BoundedGridClosedDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{week: domain.DefaultWeekSchedule()},
		&fakeCatalog{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: testDate, Variant: BoundedGrid})
	require.NoError(t, err)

	assert.False(t, resp.IsOpen)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ScheduleNotConfiguredFallsBackToDefault(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{weekErr: scheduleRepo.ErrScheduleNotFound},
		&fakeCatalog{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: testDate})
	require.NoError(t, err)

	// Дефолтная неделя закрыта: полная сетка целиком out_of_hours
	assert.False(t, resp.IsOpen)
	require.Len(t, resp.Slots, 48)
	for _, slot := range resp.Slots {
		assert.True(t, slot.OutOfHours)
	}
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{week: openWeek()},
		&fakeCatalog{},
		testNow,
	)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero tenant", &Request{Date: testDate}},
		{"zero date", &Request{TenantID: 1}},
		{"unknown variant", &Request{TenantID: 1, Date: testDate, Variant: "weekly"}},
		{"empty service id", &Request{TenantID: 1, Date: testDate, ServiceIDs: []string{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{week: openWeek()},
		&fakeCatalog{},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{
		TenantID:   1,
		Date:       testDate,
		ServiceIDs: []string{"missing"},
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_RepositoryError(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{err: fmt.Errorf("connection refused")},
		&fakeScheduleRepo{week: openWeek()},
		&fakeCatalog{},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrInternal)
}
