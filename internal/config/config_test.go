package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[fleet_service]
url = "http://fleet.local/api"
timeout = 3

[calendar]
view_mode = "quarter"
reservation_page_size = 100
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, SourceHTTP, cfg.Calendar.Source)
	assert.Equal(t, 100, cfg.Calendar.ReservationPageSize)
	assert.Equal(t, domain.DefaultResourcePageSize, cfg.Calendar.ResourcePageSize)
	assert.Equal(t, []string{"reserved", "completed"}, cfg.Calendar.StatusFilter)

	ec := cfg.Calendar.Engine(2025)
	assert.Equal(t, 2025, ec.Year)
	assert.Equal(t, domain.ViewQuarter, ec.ViewMode)
	assert.Equal(t, 10*time.Second, ec.FetchTimeout)
}

func TestLoad_EnvSecrets(t *testing.T) {
	t.Setenv("CALENDAR_FLEET_TOKEN", "from-env")
	t.Setenv("CALENDAR_SOURCE", SourcePostgres)
	path := writeConfig(t, `
[database]
dbname = "fleet"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.FleetService.Token)
	assert.Equal(t, SourcePostgres, cfg.Calendar.Source)
	assert.Equal(t, "host=localhost port=5432 user= password= dbname=fleet sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing fleet url", `[calendar]
source = "http"`},
		{"unknown source", `[calendar]
source = "kafka"`},
		{"bad view mode", `[fleet_service]
url = "http://x"
[calendar]
view_mode = "decade"`},
		{"ratios swapped", `[fleet_service]
url = "http://x"
[calendar]
next_page_ratio = 0.2
prev_page_ratio = 0.8`},
		{"bad log level", `[fleet_service]
url = "http://x"
[logs]
level = "loud"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv(PathEnv, "")
	assert.Equal(t, DefaultPath, Path())

	t.Setenv(PathEnv, "/etc/calendar.toml")
	assert.Equal(t, "/etc/calendar.toml", Path())
}
