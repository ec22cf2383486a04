package get_selection

import (
	"context"

	"github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"
)

type SessionService interface {
	GetSelection(ctx context.Context, userID int64, sessionID string) (*models.SelectionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
