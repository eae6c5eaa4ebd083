package get_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidQuery = "parâmetros de consulta inválidos"
)

type Handler struct {
	tenantID int64
	service  BookingService
	logger   Logger
}

func NewHandler(tenantID int64, service BookingService, logger Logger) *Handler {
	return &Handler{
		tenantID: tenantID,
		service:  service,
		logger:   logger,
	}
}

// Handle GET /api/v1/bookings?startDate=&endDate=&status=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := GetBookingsQuery{
		StartDate:        r.URL.Query().Get("startDate"),
		EndDate:          r.URL.Query().Get("endDate"),
		Status:           r.URL.Query().Get("status"),
		IncludeCancelled: r.URL.Query().Get("includeCancelled"),
	}

	serviceReq, err := query.ToServiceRequest(h.tenantID)
	if err != nil {
		h.logger.Warn("GET /bookings - Failed to parse query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Listed %d booking(s)", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
