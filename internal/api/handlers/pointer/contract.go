package pointer

import (
	"context"

	"github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"
)

type SessionService interface {
	Pointer(ctx context.Context, req *models.PointerRequest) (*models.PointerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
