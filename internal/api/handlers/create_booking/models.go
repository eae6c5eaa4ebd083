package create_booking

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SLN-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   string  `json:"serviceId"`
	Date        string  `json:"date"`      // "2025-10-15"
	StartTime   string  `json:"startTime"` // "10:00"
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail,omitempty"`
	ClientPhone string  `json:"clientPhone,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Pending     bool    `json:"pending,omitempty"` // true = создать в статусе pendente
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	TenantID  int64  `json:"tenantId"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Status    string `json:"status"`

	ServiceName            string  `json:"serviceName"`
	ServiceDurationMinutes int     `json:"serviceDurationMinutes"`
	ServicePrice           float64 `json:"servicePrice"`

	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail,omitempty"`
	ClientPhone string  `json:"clientPhone,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	// Количество активных бронирований, пересекающихся с созданным.
	// Ненулевое значение - предупреждение оператору, не ошибка
	ConflictCount int `json:"conflictCount"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID int64) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		TenantID:    tenantID,
		ServiceID:   r.ServiceID,
		Date:        date,
		StartTime:   startTime,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		Notes:       r.Notes,
		Pending:     r.Pending,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                     resp.ID,
		TenantID:               resp.TenantID,
		ServiceID:              resp.ServiceID,
		Date:                   resp.Date.Format(domain.DateFormat),
		StartTime:              resp.StartTime.String(),
		Status:                 resp.Status,
		ServiceName:            resp.ServiceName,
		ServiceDurationMinutes: resp.ServiceDurationMinutes,
		ServicePrice:           resp.ServicePrice,
		ClientName:             resp.ClientName,
		ClientEmail:            resp.ClientEmail,
		ClientPhone:            resp.ClientPhone,
		Notes:                  resp.Notes,
		ConflictCount:          resp.ConflictCount,
		CreatedAt:              resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              resp.UpdatedAt.Format(time.RFC3339),
	}
}
