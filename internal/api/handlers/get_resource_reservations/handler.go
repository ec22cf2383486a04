package get_resource_reservations

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/reservations"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/reservations
// Query params: year, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]

	serviceReq, err := ToServiceRequest(resourceID, r.URL.Query().Get("year"), r.URL.Query().Get("status"), time.Now())
	if err != nil {
		h.logger.Warn("GET /resources/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetResourceReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/reservations - Invalid input: car_id=%s, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /resources/{id}/reservations - Failed to get reservations: car_id=%s, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/reservations - Reservations retrieved successfully: car_id=%s, count=%d",
		resourceID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
