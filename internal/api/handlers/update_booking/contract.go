package update_booking

import (
	"context"

	"github.com/m04kA/SLN-SchedulingService/internal/service/bookings/models"
)

type BookingService interface {
	UpdateFields(ctx context.Context, bookingID int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
