package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	CalendarFetchesTotal   *prometheus.CounterVec
	CalendarFetchDuration  *prometheus.HistogramVec
	CalendarActiveSessions *prometheus.GaugeVec

	serviceName string
}

// New создает и регистрирует метрики в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики с произвольным регистратором (для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation", "status"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		CalendarFetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_fetches_total",
			Help: "Calendar page fetches by kind and outcome",
		}, []string{"service", "kind", "outcome"}),

		CalendarFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calendar_fetch_duration_seconds",
			Help:    "Calendar page fetch latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "kind"}),

		CalendarActiveSessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "calendar_active_sessions",
			Help: "Number of open calendar sessions",
		}, []string{"service"}),

		serviceName: serviceName,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.CalendarFetchesTotal,
		m.CalendarFetchDuration,
		m.CalendarActiveSessions,
	)

	return m
}

// ObserveFetch фиксирует загрузку страницы календаря
// kind - resources, bookings_next, bookings_prev, detail
func (m *Metrics) ObserveFetch(kind string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.CalendarFetchesTotal.WithLabelValues(m.serviceName, kind, outcome).Inc()
	m.CalendarFetchDuration.WithLabelValues(m.serviceName, kind).Observe(duration.Seconds())
}

// SetActiveSessions выставляет число открытых сессий календаря
func (m *Metrics) SetActiveSessions(n int) {
	m.CalendarActiveSessions.WithLabelValues(m.serviceName).Set(float64(n))
}
