package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	closeSessionHandler "github.com/m04kA/SMC-FleetCalendar/internal/api/handlers/close_session"
	createSessionHandler "github.com/m04kA/SMC-FleetCalendar/internal/api/handlers/create_session"
	getLayoutHandler "github.com/m04kA/SMC-FleetCalendar/internal/api/handlers/get_layout"
	getReservationHandler "github.com/m04kA/SMC-FleetCalendar/internal/api/handlers/get_reservation"
	getResourceReservationsHandler "github.com/m04kA/SMC-FleetCalendar/internal/api/handlers/get_resource_reservations"
	getSelectionHandler "github.com/m04kA/SMC-FleetCalendar/internal/api/handlers/get_selection"
	pointerHandler "github.com/m04kA/SMC-FleetCalendar/internal/api/handlers/pointer"
	reloadHandler "github.com/m04kA/SMC-FleetCalendar/internal/api/handlers/reload"
	scrollHandler "github.com/m04kA/SMC-FleetCalendar/internal/api/handlers/scroll"
	updateViewHandler "github.com/m04kA/SMC-FleetCalendar/internal/api/handlers/update_view"
	"github.com/m04kA/SMC-FleetCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/engine"
	"github.com/m04kA/SMC-FleetCalendar/internal/config"
	"github.com/m04kA/SMC-FleetCalendar/internal/infra/source"
	reservationsService "github.com/m04kA/SMC-FleetCalendar/internal/service/reservations"
	sessionsService "github.com/m04kA/SMC-FleetCalendar/internal/service/sessions"
	"github.com/m04kA/SMC-FleetCalendar/pkg/logger"
	"github.com/m04kA/SMC-FleetCalendar/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	configPath := config.Path()
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-FleetCalendar...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Источник данных: REST сервиса парка или его база
	src, err := source.Open(cfg, metricsCollector, log, stopMetricsCh)
	if err != nil {
		log.Fatal("Failed to open calendar source: %v", err)
	}
	defer src.Close()
	log.Info("Calendar source: %s", cfg.Calendar.Source)

	// Фабрика движков для сессий
	var engineOpts []engine.Option
	if metricsCollector != nil {
		engineOpts = append(engineOpts, engine.WithMetrics(metricsCollector))
	}
	factory := func(ec engine.Config) (*engine.Engine, error) {
		return engine.New(src.Source, ec, log, engineOpts...)
	}

	// Счетчик сессий передаем только при включенных метриках
	var sessionMetrics sessionsService.MetricsRecorder
	if metricsCollector != nil {
		sessionMetrics = metricsCollector
	}

	sessionSvc := sessionsService.NewService(
		factory,
		sessionsService.Config{
			TTL:        time.Duration(cfg.Sessions.TTL) * time.Second,
			MaxPerUser: cfg.Sessions.MaxPerUser,
			Defaults:   cfg.Calendar.Engine(time.Now().Year()),
		},
		sessionMetrics,
		log,
	)

	reservationSvc := reservationsService.NewService(src.Source, cfg.Calendar.ReservationPageSize, log)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	if cfg.Sessions.SweepInterval > 0 {
		go sessionSvc.RunJanitor(janitorCtx, time.Duration(cfg.Sessions.SweepInterval)*time.Second)
	}

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(sessionSvc, log)
	closeSession := closeSessionHandler.NewHandler(sessionSvc, log)
	getLayout := getLayoutHandler.NewHandler(sessionSvc, log)
	scroll := scrollHandler.NewHandler(sessionSvc, log)
	pointer := pointerHandler.NewHandler(sessionSvc, log)
	updateView := updateViewHandler.NewHandler(sessionSvc, log)
	reload := reloadHandler.NewHandler(sessionSvc, log)
	getSelection := getSelectionHandler.NewHandler(sessionSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getResourceReservations := getResourceReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессии календаря ---
	calendar := protected.PathPrefix("/calendar/sessions").Subrouter()
	calendar.HandleFunc("", createSession.Handle).Methods(http.MethodPost)
	calendar.HandleFunc("/{sessionId}", closeSession.Handle).Methods(http.MethodDelete)

	// --- Отрисовка и выбор ---
	calendar.HandleFunc("/{sessionId}/layout", getLayout.Handle).Methods(http.MethodGet)
	calendar.HandleFunc("/{sessionId}/selection", getSelection.Handle).Methods(http.MethodGet)

	// --- Взаимодействие ---
	calendar.HandleFunc("/{sessionId}/scroll", scroll.Handle).Methods(http.MethodPost)
	calendar.HandleFunc("/{sessionId}/pointer", pointer.Handle).Methods(http.MethodPost)
	calendar.HandleFunc("/{sessionId}/view", updateView.Handle).Methods(http.MethodPut)
	calendar.HandleFunc("/{sessionId}/reload", reload.Handle).Methods(http.MethodPost)

	// --- Бронирования для формы редактирования ---
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/resources/{resourceId}/reservations", getResourceReservations.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Закрываем открытые календари
	stopJanitor()
	sessionSvc.Shutdown()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
