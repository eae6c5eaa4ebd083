package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositeService(t *testing.T) {
	corte := Service{ID: "svc-corte", Name: "Corte", Price: 80, DurationMinutes: 45}
	manicure := Service{ID: "svc-manicure", Name: "Manicure", Price: 50, DurationMinutes: 30}

	t.Run("single service stays itself", func(t *testing.T) {
		composite := CompositeService([]Service{corte})
		assert.Equal(t, corte, composite)
	})

	t.Run("components are summed", func(t *testing.T) {
		composite := CompositeService([]Service{corte, manicure})

		assert.Equal(t, "svc-corte+svc-manicure", composite.ID)
		assert.Equal(t, "Corte + Manicure", composite.Name)
		assert.Equal(t, 130.0, composite.Price)
		assert.Equal(t, 75, composite.DurationMinutes)
	})
}

func TestSlotSpan(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		interval int
		expected int
	}{
		{"exact multiple", 60, 30, 2},
		{"rounds up", 45, 30, 2},
		{"shorter than interval", 20, 30, 1},
		{"single interval", 30, 30, 1},
		{"zero interval", 60, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SlotSpan(tt.duration, tt.interval))
		})
	}
}

func TestBooking_Overlaps(t *testing.T) {
	booking := Booking{
		StartTime:              "10:00",
		ServiceDurationMinutes: 45,
		Status:                 StatusConfirmed,
	}

	tests := []struct {
		name     string
		startMin int
		endMin   int
		expected bool
	}{
		{"inside", 615, 630, true},
		{"covers whole booking", 590, 650, true},
		{"starts before end", 630, 660, true},
		{"touching end boundary", 645, 675, false},
		{"touching start boundary", 570, 600, false},
		{"disjoint", 700, 730, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, booking.Overlaps(tt.startMin, tt.endMin))
		})
	}
}

func TestParseBookingStatus(t *testing.T) {
	for _, valid := range []string{"pendente", "confirmado", "concluído", "cancelado"} {
		status, ok := ParseBookingStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, BookingStatus(valid), status)
	}

	_, ok := ParseBookingStatus("completed")
	assert.False(t, ok)
}

func TestTimeSlot_State(t *testing.T) {
	tests := []struct {
		name     string
		slot     TimeSlot
		expected SlotState
	}{
		{"free", TimeSlot{StartTime: "10:00"}, SlotFree},
		{"past only", TimeSlot{StartTime: "10:00", Past: true}, SlotPast},
		{"occupied wins over conflict", TimeSlot{StartTime: "10:00", Occupied: true, Conflict: true}, SlotOccupied},
		{"conflict wins over blocked", TimeSlot{StartTime: "10:00", Conflict: true, Blocked: true}, SlotConflict},
		{"blocked wins over out of hours", TimeSlot{StartTime: "10:00", Blocked: true, OutOfHours: true}, SlotBlocked},
		{"out of hours wins over past", TimeSlot{StartTime: "10:00", OutOfHours: true, Past: true}, SlotOutOfHours},
		{"preview does not change state", TimeSlot{StartTime: "10:00", Preview: true}, SlotFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.slot.State())
		})
	}
}
