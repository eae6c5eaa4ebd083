package models

import (
	"errors"
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

var (
	// ErrInvalidWeek возвращается, когда недельное расписание не содержит 7 дней
	ErrInvalidWeek = errors.New("week schedule must contain exactly 7 days")
)

// Request модели

// DayScheduleInput расписание одного дня недели
type DayScheduleInput struct {
	Weekday         int     `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	IsOpen          bool    `json:"isOpen"`
	OpenTime        *string `json:"openTime,omitempty"`   // "09:00"
	CloseTime       *string `json:"closeTime,omitempty"`  // "18:00"
	LunchStart      *string `json:"lunchStart,omitempty"` // "12:00"
	LunchEnd        *string `json:"lunchEnd,omitempty"`   // "13:00"
	IntervalMinutes int     `json:"intervalMinutes"`
}

// BlockedPeriodInput блокировка в составе конфигурации расписания
type BlockedPeriodInput struct {
	ID        string  `json:"id,omitempty"` // пустой = новая блокировка
	Date      string  `json:"date"`         // "2025-12-25"
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// SaveScheduleRequest запрос на полное сохранение конфигурации расписания
// Недельное расписание и набор блокировок заменяются целиком
type SaveScheduleRequest struct {
	Week           []DayScheduleInput   `json:"week"`
	BlockedPeriods []BlockedPeriodInput `json:"blockedPeriods"`
}

// AddBlockedPeriodRequest запрос на добавление одной блокировки
type AddBlockedPeriodRequest struct {
	Date      string  `json:"date"` // "2025-12-25"
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// Response модели

// DayScheduleResponse расписание одного дня недели
type DayScheduleResponse struct {
	Weekday         int     `json:"weekday"`
	IsOpen          bool    `json:"isOpen"`
	OpenTime        *string `json:"openTime,omitempty"`
	CloseTime       *string `json:"closeTime,omitempty"`
	LunchStart      *string `json:"lunchStart,omitempty"`
	LunchEnd        *string `json:"lunchEnd,omitempty"`
	IntervalMinutes int     `json:"intervalMinutes"`
}

// BlockedPeriodResponse блокировка
type BlockedPeriodResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ScheduleConfigResponse конфигурация расписания целиком
type ScheduleConfigResponse struct {
	Week           []DayScheduleResponse   `json:"week"`
	BlockedPeriods []BlockedPeriodResponse `json:"blockedPeriods"`
}

// Методы конвертации

// ToDomainWeek конвертирует недельное расписание в domain модель
// Дни сортируются по weekday, каждый weekday должен встретиться ровно один раз
func ToDomainWeek(days []DayScheduleInput) (domain.WeekSchedule, error) {
	week := domain.DefaultWeekSchedule()

	if len(days) != 7 {
		return week, ErrInvalidWeek
	}

	seen := [7]bool{}
	for _, day := range days {
		if day.Weekday < 0 || day.Weekday > 6 || seen[day.Weekday] {
			return week, ErrInvalidWeek
		}
		seen[day.Weekday] = true

		domainDay := domain.DaySchedule{
			Weekday:         time.Weekday(day.Weekday),
			IsOpen:          day.IsOpen,
			IntervalMinutes: day.IntervalMinutes,
		}

		var err error
		if domainDay.OpenTime, err = toTimeString(day.OpenTime); err != nil {
			return week, err
		}
		if domainDay.CloseTime, err = toTimeString(day.CloseTime); err != nil {
			return week, err
		}
		if domainDay.LunchStart, err = toTimeString(day.LunchStart); err != nil {
			return week, err
		}
		if domainDay.LunchEnd, err = toTimeString(day.LunchEnd); err != nil {
			return week, err
		}

		week[day.Weekday] = domainDay
	}

	return week, nil
}

// ToDomainBlockedPeriod конвертирует блокировку в domain модель
func (r *BlockedPeriodInput) ToDomainBlockedPeriod(tenantID int64) (domain.BlockedPeriod, error) {
	period := domain.BlockedPeriod{
		ID:       r.ID,
		TenantID: tenantID,
		Reason:   r.Reason,
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return period, err
	}
	period.Date = date

	if period.StartTime, err = toTimeString(r.StartTime); err != nil {
		return period, err
	}
	if period.EndTime, err = toTimeString(r.EndTime); err != nil {
		return period, err
	}

	return period, nil
}

// ToDomainBlockedPeriod конвертирует запрос добавления в domain модель
func (r *AddBlockedPeriodRequest) ToDomainBlockedPeriod(tenantID int64) (domain.BlockedPeriod, error) {
	input := BlockedPeriodInput{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Reason:    r.Reason,
	}
	return input.ToDomainBlockedPeriod(tenantID)
}

// FromDomainWeek конвертирует domain модель недельного расписания в DTO
func FromDomainWeek(week domain.WeekSchedule) []DayScheduleResponse {
	days := make([]DayScheduleResponse, len(week))
	for i := range week {
		days[i] = DayScheduleResponse{
			Weekday:         int(week[i].Weekday),
			IsOpen:          week[i].IsOpen,
			OpenTime:        fromTimeString(week[i].OpenTime),
			CloseTime:       fromTimeString(week[i].CloseTime),
			LunchStart:      fromTimeString(week[i].LunchStart),
			LunchEnd:        fromTimeString(week[i].LunchEnd),
			IntervalMinutes: week[i].IntervalMinutes,
		}
	}
	return days
}

// FromDomainBlockedPeriod конвертирует domain модель блокировки в DTO
func FromDomainBlockedPeriod(p *domain.BlockedPeriod) BlockedPeriodResponse {
	return BlockedPeriodResponse{
		ID:        p.ID,
		Date:      p.Date.Format(domain.DateFormat),
		StartTime: fromTimeString(p.StartTime),
		EndTime:   fromTimeString(p.EndTime),
		Reason:    p.Reason,
		CreatedAt: p.CreatedAt,
	}
}

// FromDomainBlockedPeriods конвертирует набор блокировок в DTO
func FromDomainBlockedPeriods(periods domain.BlockedPeriodSet) []BlockedPeriodResponse {
	result := make([]BlockedPeriodResponse, len(periods))
	for i := range periods {
		result[i] = FromDomainBlockedPeriod(&periods[i])
	}
	return result
}

func toTimeString(value *string) (*types.TimeString, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := types.NewTimeStringFromString(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func fromTimeString(value *types.TimeString) *string {
	if value == nil {
		return nil
	}
	s := value.String()
	return &s
}
