package get_day_grid

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// generateGridTimes генерирует времена слотов на день в минутах от полуночи
//
// Полная сетка покрывает все сутки: каждый кратный interval момент от 00:00
// до последнего, помещающегося до полуночи. Рабочие часы на состав сетки не
// влияют — закрытое время размечается аннотацией out_of_hours
//
// Ограниченная сетка покрывает только [open, close): генерируются слоты,
// полностью помещающиеся в рабочие часы. Для закрытого дня сетка пустая
func generateGridTimes(variant GridVariant, day domain.DaySchedule) []int {
	interval := day.IntervalMinutes
	if interval <= 0 {
		interval = domain.DefaultIntervalMinutes
	}

	if variant == BoundedGrid {
		if !day.IsOpen || day.OpenTime == nil || day.CloseTime == nil {
			return []int{}
		}

		openMinutes := day.OpenTime.Minutes()
		closeMinutes := day.CloseTime.Minutes()

		gridTimes := make([]int, 0)
		for slotStart := openMinutes; slotStart+interval <= closeMinutes; slotStart += interval {
			gridTimes = append(gridTimes, slotStart)
		}
		return gridTimes
	}

	gridTimes := make([]int, 0, domain.MinutesPerDay/interval)
	for slotStart := 0; slotStart < domain.MinutesPerDay; slotStart += interval {
		gridTimes = append(gridTimes, slotStart)
	}
	return gridTimes
}

// classifySlots размечает слоты сетки по состояниям
//
// Аннотации независимы и могут сосуществовать: слот внутри preview-диапазона
// одновременно может быть occupied или conflict. Итоговое отображаемое
// состояние вычисляет TimeSlot.State() по приоритету
func classifySlots(
	gridTimes []int,
	date time.Time,
	now time.Time,
	day domain.DaySchedule,
	blocked domain.BlockedPeriodSet,
	bookings []*domain.Booking,
	candidateDuration int,
	selectedTime *types.TimeString,
) []domain.TimeSlot {
	interval := day.IntervalMinutes
	if interval <= 0 {
		interval = domain.DefaultIntervalMinutes
	}

	dateInPast := isDateInPast(date, now)
	sameDay := isSameDay(date, now)
	nowMinutes := now.Hour()*60 + now.Minute()

	previewStart, previewEnd := -1, -1
	if selectedTime != nil && candidateDuration > 0 {
		previewStart = selectedTime.Minutes()
		previewEnd = previewStart + candidateDuration
	}

	slots := make([]domain.TimeSlot, 0, len(gridTimes))

	for _, slotStart := range gridTimes {
		startTime, err := types.NewTimeStringFromMinutes(slotStart)
		if err != nil {
			continue
		}

		slot := domain.TimeSlot{StartTime: startTime}

		// 1. past: дата в прошлом либо сегодня и время уже прошло
		// Информационная аннотация, административные действия в прошлом разрешены
		if dateInPast || (sameDay && slotStart < nowMinutes) {
			slot.Past = true
		}

		// 2. out_of_hours: вне рабочих часов или в обеденный перерыв
		if !day.WithinWorkingHours(slotStart) {
			slot.OutOfHours = true
		}

		// 3. blocked: попадает в блокировку (целодневную или частичную)
		if blocked.IsBlocked(date, startTime) {
			slot.Blocked = true
		}

		// 4. occupied: слот внутри диапазона существующего активного бронирования
		for _, booking := range bookings {
			if booking.IsCancelled() {
				continue
			}
			if slotStart >= booking.StartMinutes() && slotStart < booking.EndMinutes() {
				slot.Occupied = true
				bookingID := booking.ID
				slot.BookingID = &bookingID
				break
			}
		}

		// 5. conflict: кандидат, поставленный на этот слот, пересекся бы
		// с существующим бронированием. Не блокирует запись — админ решает сам
		if candidateDuration > 0 {
			candidateEnd := slotStart + candidateDuration
			for _, booking := range bookings {
				if booking.IsCancelled() {
					continue
				}
				if booking.Overlaps(slotStart, candidateEnd) {
					slot.Conflict = true
					break
				}
			}
		}

		// 6. preview: слот внутри диапазона предварительно выбранного кандидата
		// Сосуществует с occupied/conflict
		if previewStart >= 0 && slotStart >= previewStart && slotStart < previewEnd {
			slot.Preview = true
		}

		slots = append(slots, slot)
	}

	return slots
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
