package get_layout

import (
	"context"

	"github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"
)

type SessionService interface {
	GetLayout(ctx context.Context, userID int64, sessionID string) (*models.LayoutResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
