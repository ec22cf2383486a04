package engine

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Source источник данных календаря: REST-клиент сервиса парка или БД
type Source interface {
	ListResources(ctx context.Context, page, pageSize int) (domain.Page[domain.Resource], error)
	ListReservations(ctx context.Context, query domain.ReservationQuery, page, pageSize int) (domain.Page[domain.Reservation], error)
	GetReservationDetail(ctx context.Context, id string) (*domain.ReservationDetail, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder учет загрузок
type MetricsRecorder interface {
	ObserveFetch(kind string, d time.Duration, err error)
}

// Runner запускает загрузку вне цикла событий
type Runner func(fn func())

// Clock источник текущего времени
type Clock func() time.Time

// Listener получает уведомления движка вне его блокировки
type Listener func(Event)
