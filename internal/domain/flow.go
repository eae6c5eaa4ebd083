package domain

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// FlowStep is one step of the client-facing booking wizard.
type FlowStep string

const (
	StepService      FlowStep = "service"
	StepDate         FlowStep = "date"
	StepCalendar     FlowStep = "calendar"
	StepForm         FlowStep = "form"
	StepConfirmation FlowStep = "confirmation"
)

// flowOrder позиция шага в линейном мастере
var flowOrder = map[FlowStep]int{
	StepService:      0,
	StepDate:         1,
	StepCalendar:     2,
	StepForm:         3,
	StepConfirmation: 4,
}

// Previous returns the preceding wizard step, or the same step for the first.
func (s FlowStep) Previous() FlowStep {
	switch s {
	case StepDate:
		return StepService
	case StepCalendar:
		return StepDate
	case StepForm:
		return StepCalendar
	case StepConfirmation:
		return StepForm
	default:
		return StepService
	}
}

// ClientInfo данные клиента, заполняемые на шаге формы
type ClientInfo struct {
	Name  string
	Email string
	Phone string
}

// FlowSession is the state of one booking wizard walkthrough: a strictly
// linear forward/backward state machine. Going back never discards
// selections made for steps ahead; only an explicit change or Reset does.
type FlowSession struct {
	ID   string
	Step FlowStep

	Services     []Service
	Date         *time.Time
	StartTime    *types.TimeString
	Client       *ClientInfo
	ConflictAt   bool // выбранный слот пересекается с существующим бронированием
	ConfirmedIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewFlowSession returns a session positioned on the first step.
func NewFlowSession(id string, now time.Time) *FlowSession {
	return &FlowSession{
		ID:           id,
		Step:         StepService,
		Services:     []Service{},
		ConfirmedIDs: []int64{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Clone returns an independent copy of the session. Slices and pointed-to
// values are copied, so mutating the clone never touches the original.
func (f *FlowSession) Clone() *FlowSession {
	copied := *f

	copied.Services = make([]Service, len(f.Services))
	copy(copied.Services, f.Services)
	copied.ConfirmedIDs = make([]int64, len(f.ConfirmedIDs))
	copy(copied.ConfirmedIDs, f.ConfirmedIDs)

	if f.Date != nil {
		date := *f.Date
		copied.Date = &date
	}
	if f.StartTime != nil {
		startTime := *f.StartTime
		copied.StartTime = &startTime
	}
	if f.Client != nil {
		client := *f.Client
		copied.Client = &client
	}

	return &copied
}

// StepCompleted reports whether a step's "completed" predicate holds,
// independent of the current position. Used for progress indicators.
func (f *FlowSession) StepCompleted(step FlowStep) bool {
	switch step {
	case StepService:
		return len(f.Services) > 0
	case StepDate:
		return f.Date != nil
	case StepCalendar:
		return f.Date != nil && f.StartTime != nil
	case StepForm:
		return len(f.ConfirmedIDs) > 0
	default:
		return false
	}
}

// Composite returns the virtual service aggregated from the selection.
func (f *FlowSession) Composite() Service {
	return CompositeService(f.Services)
}

// Back re-enters the prior step, keeping all selections.
func (f *FlowSession) Back() {
	f.Step = f.Step.Previous()
}

// Reset returns the session to the first step and clears every selection,
// matching a freshly constructed session.
func (f *FlowSession) Reset(now time.Time) {
	f.Step = StepService
	f.Services = []Service{}
	f.Date = nil
	f.StartTime = nil
	f.Client = nil
	f.ConflictAt = false
	f.ConfirmedIDs = []int64{}
	f.UpdatedAt = now
}

// StepIndex returns the position of the session's current step.
func (f *FlowSession) StepIndex() int {
	return flowOrder[f.Step]
}
