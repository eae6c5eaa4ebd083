package create_booking

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования (административный путь)
type Request struct {
	TenantID    int64            // ID тенанта
	ServiceID   string           // ID услуги из каталога
	Date        time.Time        // Дата записи (без времени); прошлое разрешено
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	ClientName  string           // Имя клиента (обязательно)
	ClientEmail string           // Email клиента
	ClientPhone string           // Телефон клиента
	Notes       *string          // Дополнительные заметки (опционально)
	Pending     bool             // true = создать в статусе pendente вместо confirmado
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64            // ID созданного бронирования
	TenantID  int64            // ID тенанта
	ServiceID string           // ID услуги
	Date      time.Time        // Дата записи
	StartTime types.TimeString // Время начала
	Status    string           // Статус бронирования

	// Снапшот данных услуги на момент создания
	ServiceName            string  // Название услуги
	ServiceDurationMinutes int     // Длительность в минутах
	ServicePrice           float64 // Цена услуги

	ClientName  string  // Имя клиента
	ClientEmail string  // Email клиента
	ClientPhone string  // Телефон клиента
	Notes       *string // Заметки

	// Количество активных бронирований, пересекающихся с созданным
	// Ненулевое значение — предупреждение оператору, не ошибка
	ConflictCount int

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
