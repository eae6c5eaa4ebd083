package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/notify"
	"github.com/m04kA/SLN-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// --- фейки ---

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	listErr   error
	createErr error
	created   *domain.Booking
	nextID    int64
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *booking
	stored.ID = r.nextID
	stored.CreatedAt = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	stored.UpdatedAt = stored.CreatedAt
	r.created = &stored
	return &stored, nil
}

func (r *fakeBookingRepo) ListWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.bookings, nil
}

type fakeCatalog struct {
	services map[string]*catalogservice.Service
}

func (c *fakeCatalog) GetService(_ context.Context, _ int64, serviceID string) (*catalogservice.Service, error) {
	service, ok := c.services[serviceID]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return service, nil
}

type fakePublisher struct {
	changes []notify.Change
}

func (p *fakePublisher) PublishChange(_ context.Context, change notify.Change) {
	p.changes = append(p.changes, change)
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- хелперы ---

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		TenantID:   1,
		ServiceID:  "svc-corte",
		Date:       testDate,
		StartTime:  "10:00",
		ClientName: "Ana Souza",
	}
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{services: map[string]*catalogservice.Service{
		"svc-corte": {ID: "svc-corte", Name: "Corte", Price: 80, DurationMinutes: 45},
	}}
}

func existingBooking(id int64, startTime types.TimeString, duration int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:                     id,
		TenantID:               1,
		Date:                   testDate,
		StartTime:              startTime,
		ServiceDurationMinutes: duration,
		Status:                 status,
	}
}

func newTestUseCase(repo *fakeBookingRepo, catalog *fakeCatalog, publisher *fakePublisher) *UseCase {
	return NewUseCase(repo, catalog, publisher, &fakeTxManager{}, noopLogger{})
}

// --- тесты ---

func TestExecute_CreatesConfirmedBooking(t *testing.T) {
	repo := &fakeBookingRepo{nextID: 101}
	publisher := &fakePublisher{}
	uc := newTestUseCase(repo, testCatalog(), publisher)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, "confirmado", resp.Status)
	assert.Equal(t, 0, resp.ConflictCount)

	// Снапшот данных услуги фиксируется на бронировании
	assert.Equal(t, "Corte", resp.ServiceName)
	assert.Equal(t, 45, resp.ServiceDurationMinutes)
	assert.Equal(t, 80.0, resp.ServicePrice)

	require.NotNil(t, repo.created)
	assert.Equal(t, "Corte", repo.created.ServiceName)
	assert.Equal(t, domain.StatusConfirmed, repo.created.Status)

	require.Len(t, publisher.changes, 1)
	assert.Equal(t, notify.EntityBooking, publisher.changes[0].Entity)
	assert.Equal(t, notify.ActionCreated, publisher.changes[0].Action)
	assert.Equal(t, "101", publisher.changes[0].ID)
	assert.Equal(t, "2025-10-15", publisher.changes[0].Date)
}

func TestExecute_PendingFlag(t *testing.T) {
	repo := &fakeBookingRepo{nextID: 102}
	uc := newTestUseCase(repo, testCatalog(), &fakePublisher{})

	req := validRequest()
	req.Pending = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "pendente", resp.Status)
	assert.Equal(t, domain.StatusPending, repo.created.Status)
}

func TestExecute_OverlapReportedNotRejected(t *testing.T) {
	// Пересечение с активной записью не блокирует создание,
	// оператор получает счётчик конфликтов
	repo := &fakeBookingRepo{
		nextID: 103,
		bookings: []*domain.Booking{
			existingBooking(7, "10:30", 30, domain.StatusConfirmed),
		},
	}
	uc := newTestUseCase(repo, testCatalog(), &fakePublisher{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.ConflictCount)
	require.NotNil(t, repo.created)
}

func TestExecute_CancelledBookingsNotCounted(t *testing.T) {
	repo := &fakeBookingRepo{
		nextID: 104,
		bookings: []*domain.Booking{
			existingBooking(7, "10:00", 45, domain.StatusCancelled),
			existingBooking(8, "10:45", 30, domain.StatusConfirmed), // граница, не пересекается
		},
	}
	uc := newTestUseCase(repo, testCatalog(), &fakePublisher{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ConflictCount)
}

func TestExecute_ValidationErrors(t *testing.T) {
	longName := strings.Repeat("x", domain.MaxClientNameLength+1)
	longNotes := strings.Repeat("x", domain.MaxNotesLength+1)

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero tenant", func(req *Request) { req.TenantID = 0 }},
		{"empty service id", func(req *Request) { req.ServiceID = "" }},
		{"zero date", func(req *Request) { req.Date = time.Time{} }},
		{"empty start time", func(req *Request) { req.StartTime = "" }},
		{"invalid start time", func(req *Request) { req.StartTime = "25:00" }},
		{"blank client name", func(req *Request) { req.ClientName = "   " }},
		{"client name too long", func(req *Request) { req.ClientName = longName }},
		{"notes too long", func(req *Request) { req.Notes = &longNotes }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{nextID: 1}
			uc := newTestUseCase(repo, testCatalog(), &fakePublisher{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.created)
		})
	}
}

func TestExecute_PastDateAllowed(t *testing.T) {
	// Административная запись задним числом разрешена
	repo := &fakeBookingRepo{nextID: 105}
	uc := newTestUseCase(repo, testCatalog(), &fakePublisher{})

	req := validRequest()
	req.Date = time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{nextID: 1}, testCatalog(), &fakePublisher{})

	req := validRequest()
	req.ServiceID = "svc-missing"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_RepositoryErrors(t *testing.T) {
	t.Run("list fails", func(t *testing.T) {
		repo := &fakeBookingRepo{listErr: errors.New("db down")}
		publisher := &fakePublisher{}
		uc := newTestUseCase(repo, testCatalog(), publisher)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
		assert.Empty(t, publisher.changes)
	})

	t.Run("create fails", func(t *testing.T) {
		repo := &fakeBookingRepo{createErr: errors.New("db down")}
		publisher := &fakePublisher{}
		uc := newTestUseCase(repo, testCatalog(), publisher)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
		assert.Empty(t, publisher.changes)
	})
}
