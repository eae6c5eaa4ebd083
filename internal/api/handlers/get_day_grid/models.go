package get_day_grid

import (
	"strings"
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	getDayGrid "github.com/m04kA/SLN-SchedulingService/internal/usecase/get_day_grid"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// GetDayGridQuery параметры query string
type GetDayGridQuery struct {
	Date         string // "2025-10-15", обязательно
	ServiceIDs   string // id услуг через запятую, опционально
	SelectedTime string // "14:00", опционально
	Grid         string // "full_day" | "bounded", опционально
}

// SlotResponse размеченный слот сетки
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	State     string `json:"state"`     // основное отображаемое состояние

	// Независимые аннотации; preview сосуществует с occupied/conflict
	Past       bool `json:"past,omitempty"`
	OutOfHours bool `json:"outOfHours,omitempty"`
	Blocked    bool `json:"blocked,omitempty"`
	Occupied   bool `json:"occupied,omitempty"`
	Conflict   bool `json:"conflict,omitempty"`
	Preview    bool `json:"preview,omitempty"`

	BookingID *int64 `json:"bookingId,omitempty"`
}

// CandidateResponse композитная услуга-кандидат
type CandidateResponse struct {
	ServiceIDs      []string `json:"serviceIds"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           float64  `json:"price"`
}

// DayGridResponse HTTP response model
type DayGridResponse struct {
	Date        string             `json:"date"` // "2025-10-15"
	Variant     string             `json:"variant"`
	IsOpen      bool               `json:"isOpen"`
	Interval    int                `json:"interval"`
	SlotsNeeded int                `json:"slotsNeeded"`
	Candidate   *CandidateResponse `json:"candidate,omitempty"`
	Slots       []SlotResponse     `json:"slots"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func (q *GetDayGridQuery) ToUseCaseRequest(tenantID int64) (*getDayGrid.Request, error) {
	date, err := time.Parse(domain.DateFormat, q.Date)
	if err != nil {
		return nil, err
	}

	req := &getDayGrid.Request{
		TenantID: tenantID,
		Date:     date,
		Variant:  getDayGrid.GridVariant(q.Grid),
	}

	if q.ServiceIDs != "" {
		for _, id := range strings.Split(q.ServiceIDs, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				req.ServiceIDs = append(req.ServiceIDs, trimmed)
			}
		}
	}

	if q.SelectedTime != "" {
		selectedTime, err := types.NewTimeStringFromString(q.SelectedTime)
		if err != nil {
			return nil, err
		}
		req.SelectedTime = &selectedTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayGrid.Response) *DayGridResponse {
	result := &DayGridResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		Variant:     string(resp.Variant),
		IsOpen:      resp.IsOpen,
		Interval:    resp.Interval,
		SlotsNeeded: resp.SlotsNeeded,
		Slots:       make([]SlotResponse, len(resp.Slots)),
	}

	if resp.Candidate != nil {
		result.Candidate = &CandidateResponse{
			ServiceIDs:      resp.Candidate.ServiceIDs,
			Name:            resp.Candidate.Name,
			DurationMinutes: resp.Candidate.DurationMinutes,
			Price:           resp.Candidate.Price,
		}
	}

	for i := range resp.Slots {
		slot := &resp.Slots[i]
		result.Slots[i] = SlotResponse{
			StartTime:  slot.StartTime.String(),
			State:      string(slot.State()),
			Past:       slot.Past,
			OutOfHours: slot.OutOfHours,
			Blocked:    slot.Blocked,
			Occupied:   slot.Occupied,
			Conflict:   slot.Conflict,
			Preview:    slot.Preview,
			BookingID:  slot.BookingID,
		}
	}

	return result
}
