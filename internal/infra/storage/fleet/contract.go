package fleet

import "github.com/m04kA/SMC-FleetCalendar/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Logger интерфейс для логирования отброшенных записей
type Logger interface {
	Warn(format string, v ...interface{})
}
