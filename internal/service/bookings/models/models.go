package models

import (
	"errors"
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateBookingRequest запрос на частичное редактирование бронирования
// Статус этим запросом не меняется никогда
type UpdateBookingRequest struct {
	ServiceID              *string  `json:"serviceId,omitempty"`
	ServiceName            *string  `json:"serviceName,omitempty"`
	ServiceDurationMinutes *int     `json:"serviceDurationMinutes,omitempty"`
	ServicePrice           *float64 `json:"servicePrice,omitempty"`
	Date                   *string  `json:"date,omitempty"`      // "2025-10-15"
	StartTime              *string  `json:"startTime,omitempty"` // "10:00"
	ClientName             *string  `json:"clientName,omitempty"`
	ClientEmail            *string  `json:"clientEmail,omitempty"`
	ClientPhone            *string  `json:"clientPhone,omitempty"`
	Notes                  *string  `json:"notes,omitempty"`
}

// ToDomainUpdate конвертирует request в domain модель частичного обновления
func (r *UpdateBookingRequest) ToDomainUpdate() (domain.BookingUpdate, error) {
	update := domain.BookingUpdate{
		ServiceID:              r.ServiceID,
		ServiceName:            r.ServiceName,
		ServiceDurationMinutes: r.ServiceDurationMinutes,
		ServicePrice:           r.ServicePrice,
		ClientName:             r.ClientName,
		ClientEmail:            r.ClientEmail,
		ClientPhone:            r.ClientPhone,
		Notes:                  r.Notes,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return update, err
		}
		update.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return update, err
		}
		update.StartTime = &startTime
	}

	return update, nil
}

// ListBookingsRequest запрос на получение бронирований с фильтрацией
type ListBookingsRequest struct {
	TenantID         int64      `json:"tenantId"`
	StartDate        *time.Time `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time `json:"endDate,omitempty"`          // Конец периода (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		TenantID:         r.TenantID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	TenantID  int64  `json:"tenantId"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	Status    string `json:"status"`

	// Снапшот данных услуги на момент создания
	ServiceName            string  `json:"serviceName"`
	ServiceDurationMinutes int     `json:"serviceDurationMinutes"`
	ServicePrice           float64 `json:"servicePrice"`

	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail,omitempty"`
	ClientPhone string  `json:"clientPhone,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// UpdateStatusResponse ответ на смену статуса
// InventoryMessage присутствует, когда переход в concluído запускал
// списание материалов — несет результат побочного эффекта
type UpdateStatusResponse struct {
	Booking          BookingResponse `json:"booking"`
	InventoryMessage *string         `json:"inventoryMessage,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                     b.ID,
		TenantID:               b.TenantID,
		ServiceID:              b.ServiceID,
		Date:                   b.Date.Format(domain.DateFormat),
		StartTime:              b.StartTime.String(),
		Status:                 string(b.Status),
		ServiceName:            b.ServiceName,
		ServiceDurationMinutes: b.ServiceDurationMinutes,
		ServicePrice:           b.ServicePrice,
		ClientName:             b.ClientName,
		ClientEmail:            b.ClientEmail,
		ClientPhone:            b.ClientPhone,
		Notes:                  b.Notes,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	parsed, ok := domain.ParseBookingStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return parsed, nil
}
