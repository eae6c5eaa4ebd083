package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

func TestBlockedPeriod_Validate(t *testing.T) {
	date := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		period  BlockedPeriod
		wantErr bool
	}{
		{
			name:   "whole day block",
			period: BlockedPeriod{ID: "b1", TenantID: 1, Date: date},
		},
		{
			name: "partial block",
			period: BlockedPeriod{
				ID: "b2", TenantID: 1, Date: date,
				StartTime: timePtr("10:00"), EndTime: timePtr("12:00"),
			},
		},
		{
			name:    "missing date",
			period:  BlockedPeriod{ID: "b3", TenantID: 1},
			wantErr: true,
		},
		{
			name: "start without end",
			period: BlockedPeriod{
				ID: "b4", TenantID: 1, Date: date,
				StartTime: timePtr("10:00"),
			},
			wantErr: true,
		},
		{
			name: "start after end",
			period: BlockedPeriod{
				ID: "b5", TenantID: 1, Date: date,
				StartTime: timePtr("12:00"), EndTime: timePtr("10:00"),
			},
			wantErr: true,
		},
		{
			name: "reason too long",
			period: BlockedPeriod{
				ID: "b6", TenantID: 1, Date: date,
				Reason: func() *string { s := strings.Repeat("x", MaxReasonLength+1); return &s }(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.period.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBlockedPeriod)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBlockedPeriodSet_IsBlocked(t *testing.T) {
	date := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	otherDate := time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)

	set := BlockedPeriodSet{
		{ID: "partial", TenantID: 1, Date: date, StartTime: timePtr("10:00"), EndTime: timePtr("12:00")},
	}

	assert.False(t, set.IsBlocked(date, "09:30"))
	assert.True(t, set.IsBlocked(date, "10:00"))
	assert.True(t, set.IsBlocked(date, "11:30"))
	assert.False(t, set.IsBlocked(date, "12:00")) // конец полуинтервала исключается
	assert.False(t, set.IsBlocked(otherDate, "10:30"))
}

func TestBlockedPeriodSet_WholeDayCoversPartialEntries(t *testing.T) {
	// Блокировка на весь день перекрывает любые частичные записи той же даты
	date := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

	set := BlockedPeriodSet{
		{ID: "partial", TenantID: 1, Date: date, StartTime: timePtr("10:00"), EndTime: timePtr("12:00")},
		{ID: "whole", TenantID: 1, Date: date},
	}

	for _, at := range []string{"00:00", "09:00", "11:00", "15:00", "23:30"} {
		assert.True(t, set.IsBlocked(date, types.TimeString(at)), "time %s must be blocked", at)
	}
}

func TestBlockedPeriodSet_AddRemove(t *testing.T) {
	date := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

	set := BlockedPeriodSet{}
	set = set.Add(BlockedPeriod{ID: "b1", TenantID: 1, Date: date})
	set = set.Add(BlockedPeriod{ID: "b2", TenantID: 1, Date: date})
	assert.Len(t, set, 2)

	set = set.Remove("b1")
	assert.Len(t, set, 1)
	assert.Equal(t, "b2", set[0].ID)

	// Удаление несуществующего id ничего не меняет
	set = set.Remove("missing")
	assert.Len(t, set, 1)
}
