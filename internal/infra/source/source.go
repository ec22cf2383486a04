// Package source выбирает источник данных календаря по конфигурации:
// REST API сервиса парка или прямое чтение из его базы.
package source

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/engine"
	"github.com/m04kA/SMC-FleetCalendar/internal/config"
	fleetRepo "github.com/m04kA/SMC-FleetCalendar/internal/infra/storage/fleet"
	fleetServiceClient "github.com/m04kA/SMC-FleetCalendar/internal/integrations/fleetservice"
	"github.com/m04kA/SMC-FleetCalendar/pkg/dbmetrics"
	"github.com/m04kA/SMC-FleetCalendar/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Opened открытый источник и функция освобождения ресурсов
type Opened struct {
	Source engine.Source
	Close  func()
}

// Open открывает источник; m может быть nil, тогда запросы к БД не учитываются
func Open(cfg *config.Config, m *metrics.Metrics, log Logger, stopCh <-chan struct{}) (*Opened, error) {
	switch cfg.Calendar.Source {
	case config.SourcePostgres:
		return openPostgres(cfg, m, log, stopCh)
	case config.SourceHTTP:
		client := fleetServiceClient.NewClient(
			cfg.FleetService.URL,
			cfg.FleetService.Token,
			time.Duration(cfg.FleetService.Timeout)*time.Second,
			log,
		)
		log.Info("Fleet service client initialized (url=%s timeout=%ds)", cfg.FleetService.URL, cfg.FleetService.Timeout)
		return &Opened{Source: client, Close: func() {}}, nil
	default:
		return nil, fmt.Errorf("%w: unknown calendar source %q", config.ErrInvalidConfig, cfg.Calendar.Source)
	}
}

func openPostgres(cfg *config.Config, m *metrics.Metrics, log Logger, stopCh <-chan struct{}) (*Opened, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var executor fleetRepo.DBExecutor = db
	if m != nil {
		executor = dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)
		log.Info("Database metrics collection started")
	}

	return &Opened{
		Source: fleetRepo.NewRepository(executor, log),
		Close:  func() { _ = db.Close() },
	}, nil
}
