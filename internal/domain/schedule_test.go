package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

func timePtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

func openDay(weekday time.Weekday) DaySchedule {
	return DaySchedule{
		Weekday:         weekday,
		IsOpen:          true,
		OpenTime:        timePtr("09:00"),
		CloseTime:       timePtr("18:00"),
		LunchStart:      timePtr("12:00"),
		LunchEnd:        timePtr("13:00"),
		IntervalMinutes: 30,
	}
}

func TestDaySchedule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *DaySchedule)
		wantErr bool
	}{
		{
			name:   "valid open day with lunch",
			mutate: func(d *DaySchedule) {},
		},
		{
			name: "closed day ignores hours",
			mutate: func(d *DaySchedule) {
				d.IsOpen = false
				d.OpenTime = nil
				d.CloseTime = nil
				d.LunchStart = nil
				d.LunchEnd = nil
			},
		},
		{
			name: "open day without hours",
			mutate: func(d *DaySchedule) {
				d.OpenTime = nil
				d.CloseTime = nil
			},
			wantErr: true,
		},
		{
			name: "open after close",
			mutate: func(d *DaySchedule) {
				d.OpenTime = timePtr("19:00")
			},
			wantErr: true,
		},
		{
			name: "lunch start without end",
			mutate: func(d *DaySchedule) {
				d.LunchEnd = nil
			},
			wantErr: true,
		},
		{
			name: "lunch before opening",
			mutate: func(d *DaySchedule) {
				d.LunchStart = timePtr("08:00")
				d.LunchEnd = timePtr("08:30")
			},
			wantErr: true,
		},
		{
			name: "lunch past closing",
			mutate: func(d *DaySchedule) {
				d.LunchStart = timePtr("17:30")
				d.LunchEnd = timePtr("18:00")
			},
			wantErr: true,
		},
		{
			name: "interval too small",
			mutate: func(d *DaySchedule) {
				d.IntervalMinutes = 1
			},
			wantErr: true,
		},
		{
			name: "interval too large",
			mutate: func(d *DaySchedule) {
				d.IntervalMinutes = 300
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := openDay(time.Monday)
			tt.mutate(&day)

			err := day.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDaySchedule)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDaySchedule_WithinWorkingHours(t *testing.T) {
	day := openDay(time.Monday)

	tests := []struct {
		time     string
		expected bool
	}{
		{"08:30", false}, // до открытия
		{"09:00", true},  // граница открытия включается
		{"11:30", true},
		{"12:00", false}, // обед
		{"12:30", false},
		{"13:00", true}, // конец обеда включается
		{"17:30", true},
		{"18:00", false}, // граница закрытия исключается
		{"20:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			minutes := types.TimeString(tt.time).Minutes()
			assert.Equal(t, tt.expected, day.WithinWorkingHours(minutes))
		})
	}

	closed := DaySchedule{Weekday: time.Sunday, IntervalMinutes: 30}
	assert.False(t, closed.WithinWorkingHours(600))
}

func TestWeekSchedule_DayFor(t *testing.T) {
	week := DefaultWeekSchedule()
	week[int(time.Wednesday)] = openDay(time.Wednesday)

	// 2025-10-15 - среда
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	day := week.DayFor(date)

	assert.Equal(t, time.Wednesday, day.Weekday)
	assert.True(t, day.IsOpen)
}

func TestDefaultWeekSchedule(t *testing.T) {
	week := DefaultWeekSchedule()

	require.NoError(t, week.Validate())
	for i := range week {
		assert.False(t, week[i].IsOpen)
		assert.Equal(t, DefaultIntervalMinutes, week[i].IntervalMinutes)
		assert.Equal(t, time.Weekday(i), week[i].Weekday)
	}
}
