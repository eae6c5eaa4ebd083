package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	// Дата в прошлом допустима: административная запись задним числом разрешена
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if len(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName exceeds %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// countOverlappingBookings подсчитывает количество активных бронирований,
// пересекающихся с диапазоном [startMinutes, endMinutes)
// Пересечение считается по строгим неравенствам, граничные случаи не пересекаются
func countOverlappingBookings(startMinutes, endMinutes int, bookings []*domain.Booking) int {
	count := 0

	for _, booking := range bookings {
		if booking.IsCancelled() {
			continue
		}

		if booking.Overlaps(startMinutes, endMinutes) {
			count++
		}
	}

	return count
}
