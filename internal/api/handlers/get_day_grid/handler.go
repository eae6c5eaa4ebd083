package get_day_grid

import (
	"errors"
	"net/http"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	getDayGrid "github.com/m04kA/SLN-SchedulingService/internal/usecase/get_day_grid"
)

const (
	msgMissingDate     = "parâmetro date é obrigatório, formato YYYY-MM-DD"
	msgInvalidQuery    = "parâmetros de consulta inválidos"
	msgServiceNotFound = "serviço não encontrado"
)

type Handler struct {
	tenantID int64
	useCase  GetDayGridUseCase
	logger   Logger
}

func NewHandler(tenantID int64, useCase GetDayGridUseCase, logger Logger) *Handler {
	return &Handler{
		tenantID: tenantID,
		useCase:  useCase,
		logger:   logger,
	}
}

// Handle GET /api/v1/day-grid?date=&serviceIds=&selectedTime=&grid=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := GetDayGridQuery{
		Date:         r.URL.Query().Get("date"),
		ServiceIDs:   r.URL.Query().Get("serviceIds"),
		SelectedTime: r.URL.Query().Get("selectedTime"),
		Grid:         r.URL.Query().Get("grid"),
	}

	if query.Date == "" {
		h.logger.Warn("GET /day-grid - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Конвертируем query в модель use case (с парсингом даты и времени)
	useCaseReq, err := query.ToUseCaseRequest(h.tenantID)
	if err != nil {
		h.logger.Warn("GET /day-grid - Failed to parse query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDayGrid.ErrInvalidInput):
			h.logger.Warn("GET /day-grid - Invalid input: date=%s, error=%v", query.Date, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, getDayGrid.ErrServiceNotFound):
			h.logger.Warn("GET /day-grid - Service not found: serviceIds=%s", query.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /day-grid - Failed to build grid: date=%s, error=%v", query.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /day-grid - Grid built successfully: date=%s, variant=%s, slots=%d",
		query.Date, result.Variant, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
