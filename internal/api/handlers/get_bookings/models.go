package get_bookings

import (
	"strconv"
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/service/bookings/models"
)

// GetBookingsQuery параметры query string
type GetBookingsQuery struct {
	StartDate        string // "2025-10-01", опционально
	EndDate          string // "2025-10-31", опционально
	Status           string // фильтр по статусу, опционально
	IncludeCancelled string // "true" = включить отменённые
}

// ToServiceRequest конвертирует query параметры в модель сервиса
func (q *GetBookingsQuery) ToServiceRequest(tenantID int64) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		TenantID: tenantID,
	}

	if q.StartDate != "" {
		startDate, err := time.Parse(domain.DateFormat, q.StartDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if q.EndDate != "" {
		endDate, err := time.Parse(domain.DateFormat, q.EndDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if q.Status != "" {
		status := q.Status
		req.Status = &status
	}

	if q.IncludeCancelled != "" {
		includeCancelled, err := strconv.ParseBool(q.IncludeCancelled)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
