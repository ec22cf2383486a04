package get_resource_reservations

import (
	"context"

	"github.com/m04kA/SMC-FleetCalendar/internal/service/reservations/models"
)

type ReservationService interface {
	GetResourceReservations(ctx context.Context, req *models.GetResourceReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
