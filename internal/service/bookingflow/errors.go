package bookingflow

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("flow session not found or expired")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrPastDate возвращается при выборе прошедшей даты в клиентском мастере
	ErrPastDate = errors.New("date is in the past")

	// ErrStepNotReady возвращается, когда для шага не хватает предыдущих выборов
	ErrStepNotReady = errors.New("previous steps are not completed")

	// ErrConflictNotAcknowledged возвращается при submit с конфликтующим слотом
	// без явного подтверждения оператора
	ErrConflictNotAcknowledged = errors.New("selected slot conflicts with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
