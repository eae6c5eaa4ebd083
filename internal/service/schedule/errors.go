package schedule

import "errors"

var (
	// ErrBlockedPeriodNotFound возвращается, когда блокировка не найдена
	ErrBlockedPeriodNotFound = errors.New("blocked period not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
