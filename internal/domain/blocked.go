package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

var (
	// ErrInvalidBlockedPeriod возвращается при нарушении инвариантов блокировки
	ErrInvalidBlockedPeriod = errors.New("domain: invalid blocked period")
)

// BlockedPeriod is an explicit exclusion window on top of the week schedule.
// Without time bounds the whole day is blocked; with bounds, [start, end).
type BlockedPeriod struct {
	ID        string
	TenantID  int64
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// Validate enforces startTime < endTime when both are present.
// Times must be set as a pair.
func (p *BlockedPeriod) Validate() error {
	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidBlockedPeriod)
	}
	if (p.StartTime == nil) != (p.EndTime == nil) {
		return fmt.Errorf("%w: partial block requires both startTime and endTime", ErrInvalidBlockedPeriod)
	}
	if p.StartTime != nil {
		if err := p.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBlockedPeriod, err)
		}
		if err := p.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBlockedPeriod, err)
		}
		if !p.StartTime.IsBefore(*p.EndTime) {
			return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidBlockedPeriod)
		}
	}
	if p.Reason != nil && len(*p.Reason) > MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidBlockedPeriod)
	}
	return nil
}

// IsWholeDay returns true for a block without time bounds.
func (p *BlockedPeriod) IsWholeDay() bool {
	return p.StartTime == nil && p.EndTime == nil
}

// Covers reports whether the period blocks the given date and time.
// A whole-day block covers every time of its date regardless of any
// partial entries for the same date.
func (p *BlockedPeriod) Covers(date time.Time, t types.TimeString) bool {
	if !sameDate(p.Date, date) {
		return false
	}
	if p.IsWholeDay() {
		return true
	}
	minutes := t.Minutes()
	return minutes >= p.StartTime.Minutes() && minutes < p.EndTime.Minutes()
}

// BlockedPeriodSet is the tenant's collection of blocked periods.
// Overlapping entries are legal and simply redundant; no merging happens.
type BlockedPeriodSet []BlockedPeriod

// IsBlocked reports whether any period covers the date and time.
func (s BlockedPeriodSet) IsBlocked(date time.Time, t types.TimeString) bool {
	for i := range s {
		if s[i].Covers(date, t) {
			return true
		}
	}
	return false
}

// Add appends a period to the set.
func (s BlockedPeriodSet) Add(period BlockedPeriod) BlockedPeriodSet {
	return append(s, period)
}

// Remove filters out the period with the given id.
func (s BlockedPeriodSet) Remove(id string) BlockedPeriodSet {
	result := make(BlockedPeriodSet, 0, len(s))
	for i := range s {
		if s[i].ID != id {
			result = append(result, s[i])
		}
	}
	return result
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
