package inventoryservice

// ConsumeRequest модель запроса на списание материалов услуги
type ConsumeRequest struct {
	ServiceID string `json:"service_id"`
	BookingID int64  `json:"booking_id"`
}

// ConsumeResult модель результата списания материалов
type ConsumeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse модель ошибки от сервиса склада
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
