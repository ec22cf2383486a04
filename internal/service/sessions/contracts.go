package sessions

import (
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/engine"
)

// EngineFactory создает движок календаря для новой сессии
type EngineFactory func(cfg engine.Config) (*engine.Engine, error)

// MetricsRecorder учет открытых сессий
type MetricsRecorder interface {
	SetActiveSessions(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
