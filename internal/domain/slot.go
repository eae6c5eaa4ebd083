package domain

import "github.com/m04kA/SLN-SchedulingService/pkg/types"

// SlotState is the primary display state of a grid slot.
type SlotState string

const (
	SlotFree       SlotState = "free"
	SlotPast       SlotState = "past"
	SlotOccupied   SlotState = "occupied"
	SlotConflict   SlotState = "conflict"
	SlotBlocked    SlotState = "blocked"
	SlotOutOfHours SlotState = "out_of_hours"
)

// TimeSlot is a classified point of the day grid. It is derived state:
// never persisted, recomputed on every read.
//
// The flags are independent annotations; Preview in particular coexists
// with Occupied and Conflict. State() collapses them into one display
// value for callers that want a single label.
type TimeSlot struct {
	StartTime types.TimeString

	Past       bool
	OutOfHours bool
	Blocked    bool
	Occupied   bool
	Conflict   bool
	Preview    bool

	// BookingID references the occupying booking when Occupied is set.
	BookingID *int64
}

// IsFree returns true when no annotation marks the slot.
// Past is informational and intentionally not part of the check:
// administrative bookings in the past are allowed.
func (s *TimeSlot) IsFree() bool {
	return !s.Occupied && !s.Conflict && !s.Blocked && !s.OutOfHours
}

// State returns the primary display state.
// Precedence: occupied > conflict > blocked > out-of-hours > past > free.
func (s *TimeSlot) State() SlotState {
	switch {
	case s.Occupied:
		return SlotOccupied
	case s.Conflict:
		return SlotConflict
	case s.Blocked:
		return SlotBlocked
	case s.OutOfHours:
		return SlotOutOfHours
	case s.Past:
		return SlotPast
	default:
		return SlotFree
	}
}
