package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/notify"
	bookingRepo "github.com/m04kA/SLN-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SLN-SchedulingService/internal/integrations/inventoryservice"
	"github.com/m04kA/SLN-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SLN-SchedulingService/pkg/ptr"
)

// --- фейки ---

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	updateErr error
	deleteErr error

	updatedStatus *domain.BookingStatus
	updatedFields *domain.BookingUpdate
	deletedID     int64
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.booking == nil || r.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *r.booking
	return &copied, nil
}

func (r *fakeBookingRepo) ListWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	if r.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{r.booking}, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updatedStatus = &status
	r.booking.Status = status
	return nil
}

func (r *fakeBookingRepo) UpdateFields(_ context.Context, _ int64, update domain.BookingUpdate) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updatedFields = &update
	if update.ClientName != nil {
		r.booking.ClientName = *update.ClientName
	}
	if update.Notes != nil {
		r.booking.Notes = update.Notes
	}
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedID = id
	return nil
}

type fakeInventory struct {
	result *inventoryservice.ConsumeResult
	err    error
	calls  int
}

func (c *fakeInventory) ConsumeWithGracefulDegradation(_ context.Context, _ string, _ int64) (*inventoryservice.ConsumeResult, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

type fakePublisher struct {
	changes []notify.Change
}

func (p *fakePublisher) PublishChange(_ context.Context, change notify.Change) {
	p.changes = append(p.changes, change)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- хелперы ---

func storedBooking() *domain.Booking {
	return &domain.Booking{
		ID:                     42,
		TenantID:               1,
		ServiceID:              "svc-corte",
		ServiceName:            "Corte",
		ServiceDurationMinutes: 45,
		ServicePrice:           80,
		Date:                   time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:              "10:00",
		ClientName:             "Ana Souza",
		Status:                 domain.StatusConfirmed,
	}
}

func newTestService(repo *fakeBookingRepo, inventory *fakeInventory, publisher *fakePublisher) *Service {
	return NewService(repo, inventory, publisher, noopLogger{})
}

// --- тесты ---

func TestGetByID(t *testing.T) {
	repo := &fakeBookingRepo{booking: storedBooking()}
	svc := newTestService(repo, &fakeInventory{}, &fakePublisher{})

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, "2025-10-15", resp.Date)
		assert.Equal(t, "10:00", resp.StartTime)
		assert.Equal(t, "confirmado", resp.Status)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestUpdateStatus_CompletedConsumesInventory(t *testing.T) {
	repo := &fakeBookingRepo{booking: storedBooking()}
	inventory := &fakeInventory{result: &inventoryservice.ConsumeResult{Success: true, Message: "materiais consumidos"}}
	publisher := &fakePublisher{}
	svc := newTestService(repo, inventory, publisher)

	resp, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "concluído"})
	require.NoError(t, err)

	assert.Equal(t, "concluído", resp.Booking.Status)
	assert.Equal(t, 1, inventory.calls)
	require.NotNil(t, resp.InventoryMessage)
	assert.Equal(t, "materiais consumidos", *resp.InventoryMessage)

	require.Len(t, publisher.changes, 1)
	assert.Equal(t, notify.ActionUpdated, publisher.changes[0].Action)
}

func TestUpdateStatus_RepeatedCompletionConsumesAgain(t *testing.T) {
	// Повторный переход в concluído списывает материалы повторно,
	// операция сознательно не идемпотентна
	repo := &fakeBookingRepo{booking: storedBooking()}
	inventory := &fakeInventory{result: &inventoryservice.ConsumeResult{Success: true, Message: "ok"}}
	svc := newTestService(repo, inventory, &fakePublisher{})

	_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "concluído"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "concluído"})
	require.NoError(t, err)

	assert.Equal(t, 2, inventory.calls)
}

func TestUpdateStatus_InventoryFailureIsNotFatal(t *testing.T) {
	repo := &fakeBookingRepo{booking: storedBooking()}
	inventory := &fakeInventory{err: errors.New("connection refused")}
	svc := newTestService(repo, inventory, &fakePublisher{})

	resp, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "concluído"})
	require.NoError(t, err)

	// Статус сменился, сбой склада возвращается информационно
	assert.Equal(t, "concluído", resp.Booking.Status)
	require.NotNil(t, resp.InventoryMessage)
	assert.Equal(t, "материалы не списаны: сервис склада недоступен", *resp.InventoryMessage)
}

func TestUpdateStatus_NonCompletedSkipsInventory(t *testing.T) {
	repo := &fakeBookingRepo{booking: storedBooking()}
	inventory := &fakeInventory{result: &inventoryservice.ConsumeResult{Success: true, Message: "ok"}}
	svc := newTestService(repo, inventory, &fakePublisher{})

	resp, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "cancelado"})
	require.NoError(t, err)

	assert.Equal(t, 0, inventory.calls)
	assert.Nil(t, resp.InventoryMessage)
}

func TestUpdateStatus_Errors(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{booking: storedBooking()}, &fakeInventory{}, &fakePublisher{})
		_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "completed"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("booking not found", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{}, &fakeInventory{}, &fakePublisher{})
		_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "confirmado"})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestUpdateFields(t *testing.T) {
	t.Run("updates and reloads", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: storedBooking()}
		publisher := &fakePublisher{}
		svc := newTestService(repo, &fakeInventory{}, publisher)

		resp, err := svc.UpdateFields(context.Background(), 42, &models.UpdateBookingRequest{
			ClientName: ptr.Ptr("Beatriz Lima"),
			Notes:      ptr.Ptr("prefere atendimento pela manhã"),
		})
		require.NoError(t, err)

		assert.Equal(t, "Beatriz Lima", resp.ClientName)
		require.NotNil(t, resp.Notes)
		// Статус частичным редактированием не меняется
		assert.Equal(t, "confirmado", resp.Status)
		require.Len(t, publisher.changes, 1)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{booking: storedBooking()}, &fakeInventory{}, &fakePublisher{})
		_, err := svc.UpdateFields(context.Background(), 42, &models.UpdateBookingRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid date rejected", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{booking: storedBooking()}, &fakeInventory{}, &fakePublisher{})
		_, err := svc.UpdateFields(context.Background(), 42, &models.UpdateBookingRequest{
			Date: ptr.Ptr("15/10/2025"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: storedBooking(), updateErr: bookingRepo.ErrBookingNotFound}
		svc := newTestService(repo, &fakeInventory{}, &fakePublisher{})
		_, err := svc.UpdateFields(context.Background(), 42, &models.UpdateBookingRequest{
			ClientName: ptr.Ptr("Beatriz Lima"),
		})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("deletes and publishes", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: storedBooking()}
		publisher := &fakePublisher{}
		svc := newTestService(repo, &fakeInventory{}, publisher)

		err := svc.Delete(context.Background(), 42)
		require.NoError(t, err)

		assert.Equal(t, int64(42), repo.deletedID)
		require.Len(t, publisher.changes, 1)
		assert.Equal(t, notify.ActionDeleted, publisher.changes[0].Action)
		assert.Equal(t, "2025-10-15", publisher.changes[0].Date)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{}, &fakeInventory{}, &fakePublisher{})
		err := svc.Delete(context.Background(), 42)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestList(t *testing.T) {
	repo := &fakeBookingRepo{booking: storedBooking()}
	svc := newTestService(repo, &fakeInventory{}, &fakePublisher{})

	t.Run("returns bookings", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{TenantID: 1})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(42), resp.Bookings[0].ID)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := svc.List(context.Background(), &models.ListBookingsRequest{
			TenantID: 1,
			Status:   ptr.Ptr("completed"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
