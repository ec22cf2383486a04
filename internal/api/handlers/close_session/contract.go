package close_session

import "context"

type SessionService interface {
	Close(ctx context.Context, userID int64, sessionID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
