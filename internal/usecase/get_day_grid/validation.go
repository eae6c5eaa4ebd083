package get_day_grid

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	switch req.Variant {
	case "", FullDayGrid, BoundedGrid:
		// Допустимые варианты
	default:
		return fmt.Errorf("%w: unknown grid variant %q", ErrInvalidInput, req.Variant)
	}

	if req.SelectedTime != nil {
		if err := req.SelectedTime.Validate(); err != nil {
			return fmt.Errorf("%w: selectedTime: %v", ErrInvalidInput, err)
		}
	}

	for _, serviceID := range req.ServiceIDs {
		if serviceID == "" {
			return fmt.Errorf("%w: serviceIDs must not contain empty values", ErrInvalidInput)
		}
	}

	return nil
}
