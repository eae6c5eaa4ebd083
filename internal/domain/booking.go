package domain

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking.
// Wire values are the Portuguese statuses of the studio frontend.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pendente"
	StatusConfirmed BookingStatus = "confirmado"
	StatusCompleted BookingStatus = "concluído"
	StatusCancelled BookingStatus = "cancelado"
)

// ValidStatuses lists every status accepted on the wire.
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// ParseBookingStatus validates a raw status string.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	for _, valid := range ValidStatuses {
		if status == valid {
			return status, true
		}
	}
	return "", false
}

// Booking represents a single appointment.
// Service name, price and duration are snapshots taken at creation time so
// later catalog edits do not rewrite history.
type Booking struct {
	ID       int64
	TenantID int64

	ServiceID              string
	ServiceName            string
	ServiceDurationMinutes int
	ServicePrice           float64

	Date      time.Time
	StartTime types.TimeString

	ClientName  string
	ClientEmail string
	ClientPhone string
	Notes       *string

	Status BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
// (every status except cancelado).
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// StartMinutes returns the booking start as minutes since midnight.
func (b *Booking) StartMinutes() int {
	return b.StartTime.Minutes()
}

// EndMinutes returns the booking end as minutes since midnight.
// May exceed MinutesPerDay for appointments running past midnight.
func (b *Booking) EndMinutes() int {
	return b.StartTime.Minutes() + b.ServiceDurationMinutes
}

// Overlaps reports whether the booking span intersects [startMin, endMin).
// Touching boundaries do not count as an overlap.
func (b *Booking) Overlaps(startMin, endMin int) bool {
	return b.StartMinutes() < endMin && startMin < b.EndMinutes()
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	TenantID         int64
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}

// BookingUpdate partial edit of non-status fields. An edit never changes the
// booking status and never triggers lifecycle side effects.
type BookingUpdate struct {
	ServiceID              *string
	ServiceName            *string
	ServiceDurationMinutes *int
	ServicePrice           *float64
	Date                   *time.Time
	StartTime              *types.TimeString
	ClientName             *string
	ClientEmail            *string
	ClientPhone            *string
	Notes                  *string
}

// IsEmpty returns true when no field is set.
func (u *BookingUpdate) IsEmpty() bool {
	return u.ServiceID == nil &&
		u.ServiceName == nil &&
		u.ServiceDurationMinutes == nil &&
		u.ServicePrice == nil &&
		u.Date == nil &&
		u.StartTime == nil &&
		u.ClientName == nil &&
		u.ClientEmail == nil &&
		u.ClientPhone == nil &&
		u.Notes == nil
}
