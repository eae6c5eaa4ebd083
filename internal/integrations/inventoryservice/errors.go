package inventoryservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("inventoryservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("inventoryservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что сервис склада недоступен и списание материалов не выполнено
	ErrServiceDegraded = errors.New("inventoryservice unavailable: graceful degradation applied")
)
