package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

func TestNewFlowSession(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	session := NewFlowSession("sess-1", now)

	assert.Equal(t, StepService, session.Step)
	assert.Equal(t, 0, session.StepIndex())
	assert.Empty(t, session.Services)
	assert.Nil(t, session.Date)
	assert.Nil(t, session.StartTime)
	assert.Empty(t, session.ConfirmedIDs)
}

func TestFlowSession_StepCompleted(t *testing.T) {
	now := time.Now()
	session := NewFlowSession("sess-1", now)

	assert.False(t, session.StepCompleted(StepService))
	assert.False(t, session.StepCompleted(StepDate))
	assert.False(t, session.StepCompleted(StepCalendar))
	assert.False(t, session.StepCompleted(StepForm))

	session.Services = []Service{{ID: "svc-1", DurationMinutes: 30}}
	assert.True(t, session.StepCompleted(StepService))

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	session.Date = &date
	assert.True(t, session.StepCompleted(StepDate))
	// calendar требует и дату, и время
	assert.False(t, session.StepCompleted(StepCalendar))

	startTime := types.TimeString("10:00")
	session.StartTime = &startTime
	assert.True(t, session.StepCompleted(StepCalendar))

	session.ConfirmedIDs = []int64{101}
	assert.True(t, session.StepCompleted(StepForm))
}

func TestFlowSession_BackPreservesSelections(t *testing.T) {
	now := time.Now()
	session := NewFlowSession("sess-1", now)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	startTime := types.TimeString("10:00")
	session.Services = []Service{{ID: "svc-1", DurationMinutes: 30}}
	session.Date = &date
	session.StartTime = &startTime
	session.Step = StepForm

	session.Back()
	assert.Equal(t, StepCalendar, session.Step)

	// Выборы шагов впереди не сбрасываются
	assert.NotNil(t, session.Date)
	assert.NotNil(t, session.StartTime)
	assert.Len(t, session.Services, 1)

	session.Back()
	session.Back()
	assert.Equal(t, StepService, session.Step)

	// С первого шага назад некуда
	session.Back()
	assert.Equal(t, StepService, session.Step)
}

func TestFlowSession_ResetMatchesFreshSession(t *testing.T) {
	created := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	resetAt := created.Add(10 * time.Minute)

	session := NewFlowSession("sess-1", created)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	startTime := types.TimeString("10:00")
	session.Services = []Service{{ID: "svc-1", DurationMinutes: 30}}
	session.Date = &date
	session.StartTime = &startTime
	session.Client = &ClientInfo{Name: "Ana"}
	session.ConflictAt = true
	session.ConfirmedIDs = []int64{101}
	session.Step = StepConfirmation

	session.Reset(resetAt)

	fresh := NewFlowSession("sess-1", created)
	fresh.UpdatedAt = resetAt

	require.Equal(t, fresh, session)
}

func TestFlowSession_Clone(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	session := NewFlowSession("sess-1", now)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	startTime := types.TimeString("10:00")
	session.Services = []Service{{ID: "svc-1", DurationMinutes: 30}}
	session.Date = &date
	session.StartTime = &startTime
	session.Client = &ClientInfo{Name: "Ana"}
	session.ConfirmedIDs = []int64{101}

	clone := session.Clone()
	require.Equal(t, session, clone)

	// Изменения клона не затрагивают оригинал
	clone.Services[0].ID = "svc-2"
	clone.ConfirmedIDs[0] = 202
	*clone.Date = date.AddDate(0, 0, 1)
	*clone.StartTime = "11:00"
	clone.Client.Name = "Bia"

	assert.Equal(t, "svc-1", session.Services[0].ID)
	assert.Equal(t, int64(101), session.ConfirmedIDs[0])
	assert.Equal(t, date, *session.Date)
	assert.Equal(t, types.TimeString("10:00"), *session.StartTime)
	assert.Equal(t, "Ana", session.Client.Name)
}

func TestFlowStep_Previous(t *testing.T) {
	assert.Equal(t, StepService, StepService.Previous())
	assert.Equal(t, StepService, StepDate.Previous())
	assert.Equal(t, StepDate, StepCalendar.Previous())
	assert.Equal(t, StepCalendar, StepForm.Previous())
	assert.Equal(t, StepForm, StepConfirmation.Previous())
}
