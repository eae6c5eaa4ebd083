package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

var (
	// ErrInvalidDaySchedule возвращается при нарушении инвариантов расписания дня
	ErrInvalidDaySchedule = errors.New("domain: invalid day schedule")
)

// DaySchedule describes the operating hours of one weekday.
// Open/close are required for an open day; the lunch break is optional but
// must be set as a pair. Interval is the slot grid step shared by the day.
type DaySchedule struct {
	Weekday         time.Weekday
	IsOpen          bool
	OpenTime        *types.TimeString
	CloseTime       *types.TimeString
	LunchStart      *types.TimeString
	LunchEnd        *types.TimeString
	IntervalMinutes int
}

// Validate enforces the day invariants:
// interval > 0 and, for an open day,
// openTime < lunchStart <= lunchEnd < closeTime whenever lunch is set.
func (d *DaySchedule) Validate() error {
	if d.IntervalMinutes < MinIntervalMinutes || d.IntervalMinutes > MaxIntervalMinutes {
		return fmt.Errorf("%w: interval must be between %d and %d minutes",
			ErrInvalidDaySchedule, MinIntervalMinutes, MaxIntervalMinutes)
	}

	if !d.IsOpen {
		return nil
	}

	if d.OpenTime == nil || d.CloseTime == nil {
		return fmt.Errorf("%w: open day requires openTime and closeTime", ErrInvalidDaySchedule)
	}
	for _, t := range []*types.TimeString{d.OpenTime, d.CloseTime, d.LunchStart, d.LunchEnd} {
		if t == nil {
			continue
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDaySchedule, err)
		}
	}

	if !d.OpenTime.IsBefore(*d.CloseTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidDaySchedule)
	}

	if (d.LunchStart == nil) != (d.LunchEnd == nil) {
		return fmt.Errorf("%w: lunch break requires both lunchStart and lunchEnd", ErrInvalidDaySchedule)
	}

	if d.LunchStart != nil {
		if !d.OpenTime.IsBefore(*d.LunchStart) {
			return fmt.Errorf("%w: lunchStart must be after openTime", ErrInvalidDaySchedule)
		}
		if d.LunchStart.IsAfter(*d.LunchEnd) {
			return fmt.Errorf("%w: lunchStart must not be after lunchEnd", ErrInvalidDaySchedule)
		}
		if !d.LunchEnd.IsBefore(*d.CloseTime) {
			return fmt.Errorf("%w: lunchEnd must be before closeTime", ErrInvalidDaySchedule)
		}
	}

	return nil
}

// WithinWorkingHours reports whether a slot starting at the given minute
// falls inside [open, close) and outside the lunch break.
func (d *DaySchedule) WithinWorkingHours(minutes int) bool {
	if !d.IsOpen || d.OpenTime == nil || d.CloseTime == nil {
		return false
	}
	if minutes < d.OpenTime.Minutes() || minutes >= d.CloseTime.Minutes() {
		return false
	}
	if d.LunchStart != nil && d.LunchEnd != nil {
		if minutes >= d.LunchStart.Minutes() && minutes < d.LunchEnd.Minutes() {
			return false
		}
	}
	return true
}

// WeekSchedule holds one DaySchedule per weekday, indexed by time.Weekday
// (0 = Sunday).
type WeekSchedule [7]DaySchedule

// DayFor returns the schedule for the weekday of the given date.
func (w *WeekSchedule) DayFor(date time.Time) DaySchedule {
	return w[int(date.Weekday())]
}

// Validate validates every day of the week.
func (w *WeekSchedule) Validate() error {
	for i := range w {
		if err := w[i].Validate(); err != nil {
			return fmt.Errorf("weekday %d: %w", i, err)
		}
	}
	return nil
}

// DefaultWeekSchedule returns a closed week with the default interval,
// used when a tenant has not configured working hours yet.
func DefaultWeekSchedule() WeekSchedule {
	var week WeekSchedule
	for i := range week {
		week[i] = DaySchedule{
			Weekday:         time.Weekday(i),
			IsOpen:          false,
			IntervalMinutes: DefaultIntervalMinutes,
		}
	}
	return week
}
