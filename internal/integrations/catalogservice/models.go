package catalogservice

// Service модель услуги из каталога
type Service struct {
	ID              string  `json:"id"`
	TenantID        int64   `json:"tenant_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	Active          bool    `json:"active"`
}

// ListServicesResponse модель ответа со списком услуг
type ListServicesResponse struct {
	Services []Service `json:"services"`
}

// ErrorResponse модель ошибки от каталога услуг
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
