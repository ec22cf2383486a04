package reload

import (
	"context"

	"github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"
)

type SessionService interface {
	Reload(ctx context.Context, req *models.ReloadRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
