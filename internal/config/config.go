package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/engine"
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Источники данных календаря
const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// DefaultPath путь к конфигу по умолчанию
const DefaultPath = "config.toml"

// PathEnv переменная окружения с путем к конфигу
const PathEnv = "CALENDAR_CONFIG"

// ErrInvalidConfig возвращается при ошибках валидации
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server       ServerConfig       `toml:"server"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Database     DatabaseConfig     `toml:"database"`
	FleetService FleetServiceConfig `toml:"fleet_service"`
	Calendar     CalendarConfig     `toml:"calendar"`
	Sessions     SessionsConfig     `toml:"sessions"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type FleetServiceConfig struct {
	URL     string `toml:"url"`
	Token   string `toml:"token"`
	Timeout int    `toml:"timeout"` // секунды
}

// CalendarConfig параметры движка календаря
type CalendarConfig struct {
	Source                  string   `toml:"source"` // http | postgres
	ViewMode                string   `toml:"view_mode"`
	Zoom                    float64  `toml:"zoom"`
	ResourcePageSize        int      `toml:"resource_page_size"`
	ReservationPageSize     int      `toml:"reservation_page_size"`
	ResourceScrollThreshold float64  `toml:"resource_scroll_threshold"` // px от низа списка
	NextPageRatio           float64  `toml:"next_page_ratio"`
	PrevPageRatio           float64  `toml:"prev_page_ratio"`
	DragThreshold           float64  `toml:"drag_threshold"` // px
	StatusFilter            []string `toml:"status_filter"`
	FetchTimeout            int      `toml:"fetch_timeout"` // секунды
}

type SessionsConfig struct {
	TTL           int `toml:"ttl"`            // секунды без обращений
	MaxPerUser    int `toml:"max_per_user"`   // 0 - без ограничения
	SweepInterval int `toml:"sweep_interval"` // секунды
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "fleet-calendar",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		FleetService: FleetServiceConfig{
			Timeout: 10,
		},
		Calendar: CalendarConfig{
			Source:                  SourceHTTP,
			ViewMode:                string(domain.ViewYear),
			Zoom:                    domain.DefaultZoom,
			ResourcePageSize:        domain.DefaultResourcePageSize,
			ReservationPageSize:     domain.DefaultReservationPageSize,
			ResourceScrollThreshold: domain.DefaultResourceScrollThreshold,
			NextPageRatio:           domain.DefaultNextPageRatio,
			PrevPageRatio:           domain.DefaultPrevPageRatio,
			DragThreshold:           domain.DefaultDragThreshold,
			StatusFilter:            append([]string(nil), domain.DefaultStatusFilter...),
			FetchTimeout:            10,
		},
		Sessions: SessionsConfig{
			TTL:           1800,
			MaxPerUser:    5,
			SweepInterval: 60,
		},
	}
}

// Path путь к конфигу: CALENDAR_CONFIG или config.toml
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Load читает конфиг поверх значений по умолчанию и проверяет его
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides секреты из окружения
//   - CALENDAR_DB_PASSWORD: database.password
//   - CALENDAR_FLEET_TOKEN: fleet_service.token
//   - CALENDAR_SOURCE: calendar.source
func (c *Config) ApplyEnvOverrides() {
	if password := os.Getenv("CALENDAR_DB_PASSWORD"); password != "" {
		c.Database.Password = password
	}
	if token := os.Getenv("CALENDAR_FLEET_TOKEN"); token != "" {
		c.FleetService.Token = token
	}
	if source := os.Getenv("CALENDAR_SOURCE"); source != "" {
		c.Calendar.Source = source
	}
}

// Validate проверяет конфигурацию и возвращает все найденные ошибки
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port: invalid port %d", c.Server.HTTPPort))
	}
	switch strings.ToLower(c.Logs.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("logs.level: unknown level %q", c.Logs.Level))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, fmt.Sprintf("metrics.path: must start with '/', got %q", c.Metrics.Path))
	}

	switch c.Calendar.Source {
	case SourceHTTP:
		if c.FleetService.URL == "" {
			problems = append(problems, "fleet_service.url: required for calendar.source = \"http\"")
		}
	case SourcePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database: host and dbname required for calendar.source = \"postgres\"")
		}
	default:
		problems = append(problems, fmt.Sprintf("calendar.source: must be http or postgres, got %q", c.Calendar.Source))
	}
	if _, err := domain.ParseViewMode(c.Calendar.ViewMode); err != nil {
		problems = append(problems, fmt.Sprintf("calendar.view_mode: %v", err))
	}
	if c.Calendar.NextPageRatio <= c.Calendar.PrevPageRatio || c.Calendar.NextPageRatio > 1 || c.Calendar.PrevPageRatio < 0 {
		problems = append(problems, fmt.Sprintf("calendar: need 0 <= prev_page_ratio < next_page_ratio <= 1, got %.2f/%.2f",
			c.Calendar.PrevPageRatio, c.Calendar.NextPageRatio))
	}
	if c.Calendar.ResourcePageSize <= 0 || c.Calendar.ReservationPageSize <= 0 {
		problems = append(problems, "calendar: page sizes must be positive")
	}
	if c.Sessions.TTL < 0 || c.Sessions.SweepInterval < 0 {
		problems = append(problems, "sessions: ttl and sweep_interval must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Engine параметры движка для года year
func (c CalendarConfig) Engine(year int) engine.Config {
	return engine.Config{
		Year:                    year,
		ViewMode:                domain.ViewMode(c.ViewMode),
		Zoom:                    c.Zoom,
		ResourcePageSize:        c.ResourcePageSize,
		ReservationPageSize:     c.ReservationPageSize,
		ResourceScrollThreshold: c.ResourceScrollThreshold,
		NextPageRatio:           c.NextPageRatio,
		PrevPageRatio:           c.PrevPageRatio,
		DragThreshold:           c.DragThreshold,
		StatusFilter:            c.StatusFilter,
		FetchTimeout:            time.Duration(c.FetchTimeout) * time.Second,
	}
}
