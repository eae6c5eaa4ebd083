package domain

// Default configuration values
const (
	DefaultIntervalMinutes = 30
	MinutesPerDay          = 24 * 60
)

// Business validation constants
const (
	MinIntervalMinutes = 5
	MaxIntervalMinutes = 240

	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов

	MaxClientNameLength = 200
	MaxReasonLength     = 500
	MaxNotesLength      = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование занимает слот
// Используется при подсчёте занятости и конфликтов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
