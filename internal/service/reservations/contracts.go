package reservations

import (
	"context"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// ReservationSource чтение бронирований из сервиса парка или его базы
type ReservationSource interface {
	ListReservations(ctx context.Context, query domain.ReservationQuery, page, pageSize int) (domain.Page[domain.Reservation], error)
	GetReservationDetail(ctx context.Context, id string) (*domain.ReservationDetail, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
