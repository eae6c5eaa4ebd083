package get_day_grid

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// GridVariant вариант генерации сетки слотов
type GridVariant string

const (
	// FullDayGrid полная суточная сетка от 00:00 — часы работы размечаются
	// аннотацией out_of_hours, слоты из сетки не выбрасываются
	FullDayGrid GridVariant = "full_day"

	// BoundedGrid сетка, ограниченная рабочими часами [open, close)
	BoundedGrid GridVariant = "bounded"
)

// Request модель запроса сетки слотов на день
type Request struct {
	TenantID     int64             // ID тенанта
	Date         time.Time         // Дата, на которую строится сетка (без времени)
	ServiceIDs   []string          // Выбранные услуги (кандидат на запись); может быть пустым
	SelectedTime *types.TimeString // Предварительно выбранное время начала (для preview)
	Variant      GridVariant       // Вариант сетки; пустое значение = FullDayGrid
}

// Response модель ответа с размеченной сеткой слотов
type Response struct {
	Date        time.Time         // Дата, на которую строилась сетка
	Variant     GridVariant       // Использованный вариант сетки
	IsOpen      bool              // Открыт ли салон в этот день
	Interval    int               // Шаг сетки в минутах
	SlotsNeeded int               // Сколько слотов займет кандидат (0, если услуги не выбраны)
	Candidate   *Candidate        // Композитная услуга-кандидат
	Slots       []domain.TimeSlot // Размеченные слоты в порядке возрастания времени
}

// Candidate композитная услуга, под которую размечается сетка
type Candidate struct {
	ServiceIDs      []string // Компонентные услуги
	Name            string   // Составное название
	DurationMinutes int      // Суммарная длительность
	Price           float64  // Суммарная цена
}
