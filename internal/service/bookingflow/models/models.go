package models

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
)

// Request модели

// SelectServicesRequest запрос выбора услуг (шаг service)
type SelectServicesRequest struct {
	ServiceIDs []string `json:"serviceIds"`
}

// SelectDateRequest запрос выбора даты (шаг date)
type SelectDateRequest struct {
	Date string `json:"date"` // "2025-10-15"
}

// SelectTimeRequest запрос выбора времени (шаг calendar)
type SelectTimeRequest struct {
	StartTime string `json:"startTime"` // "10:00"
}

// SubmitRequest запрос подтверждения записи (шаг form)
type SubmitRequest struct {
	ClientName    string  `json:"clientName"`
	ClientEmail   string  `json:"clientEmail"`
	ClientPhone   string  `json:"clientPhone"`
	Notes         *string `json:"notes,omitempty"`
	AllowConflict bool    `json:"allowConflict"` // явное подтверждение записи в занятый слот
}

// Response модели

// ServiceResponse выбранная услуга
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// CompositeResponse композитная услуга из выбранных компонент
type CompositeResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ClientResponse данные клиента
type ClientResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// SessionResponse состояние сессии мастера
type SessionResponse struct {
	ID        string `json:"id"`
	Step      string `json:"step"`
	StepIndex int    `json:"stepIndex"`

	// Предикаты завершенности шагов для индикатора прогресса
	CompletedSteps map[string]bool `json:"completedSteps"`

	Services  []ServiceResponse  `json:"services"`
	Composite *CompositeResponse `json:"composite,omitempty"`

	Date       *string         `json:"date,omitempty"`      // "2025-10-15"
	StartTime  *string         `json:"startTime,omitempty"` // "10:00"
	Client     *ClientResponse `json:"client,omitempty"`
	ConflictAt bool            `json:"conflictAt"`

	ConfirmedBookingIDs []int64 `json:"confirmedBookingIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SubmitResponse результат подтверждения записи
// При частичном сбое цикла создания уже созданные записи остаются —
// отката нет, Completed=false и FailedServiceID указывают на разрыв
type SubmitResponse struct {
	Session           SessionResponse `json:"session"`
	CreatedBookingIDs []int64         `json:"createdBookingIds"`
	Completed         bool            `json:"completed"`
	FailedServiceID   *string         `json:"failedServiceId,omitempty"`
	FailureMessage    *string         `json:"failureMessage,omitempty"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель сессии в DTO
func FromDomainSession(f *domain.FlowSession) *SessionResponse {
	if f == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:        f.ID,
		Step:      string(f.Step),
		StepIndex: f.StepIndex(),
		CompletedSteps: map[string]bool{
			string(domain.StepService):  f.StepCompleted(domain.StepService),
			string(domain.StepDate):     f.StepCompleted(domain.StepDate),
			string(domain.StepCalendar): f.StepCompleted(domain.StepCalendar),
			string(domain.StepForm):     f.StepCompleted(domain.StepForm),
		},
		Services:            make([]ServiceResponse, len(f.Services)),
		ConflictAt:          f.ConflictAt,
		ConfirmedBookingIDs: f.ConfirmedIDs,
		CreatedAt:           f.CreatedAt,
		UpdatedAt:           f.UpdatedAt,
	}

	for i, svc := range f.Services {
		resp.Services[i] = ServiceResponse{
			ID:              svc.ID,
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		}
	}

	if len(f.Services) > 0 {
		composite := f.Composite()
		resp.Composite = &CompositeResponse{
			ID:              composite.ID,
			Name:            composite.Name,
			Price:           composite.Price,
			DurationMinutes: composite.DurationMinutes,
		}
	}

	if f.Date != nil {
		date := f.Date.Format(domain.DateFormat)
		resp.Date = &date
	}
	if f.StartTime != nil {
		startTime := f.StartTime.String()
		resp.StartTime = &startTime
	}
	if f.Client != nil {
		resp.Client = &ClientResponse{
			Name:  f.Client.Name,
			Email: f.Client.Email,
			Phone: f.Client.Phone,
		}
	}

	return resp
}
