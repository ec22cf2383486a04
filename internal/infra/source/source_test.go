package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetCalendar/internal/config"
	"github.com/m04kA/SMC-FleetCalendar/internal/integrations/fleetservice"
	"github.com/m04kA/SMC-FleetCalendar/pkg/logger"
)

func TestOpen_HTTP(t *testing.T) {
	cfg := config.Default()
	cfg.FleetService.URL = "http://fleet.local/api"

	opened, err := Open(cfg, nil, logger.Nop(), nil)
	require.NoError(t, err)
	defer opened.Close()

	assert.IsType(t, &fleetservice.Client{}, opened.Source)
}

func TestOpen_UnknownSource(t *testing.T) {
	cfg := config.Default()
	cfg.Calendar.Source = "kafka"

	_, err := Open(cfg, nil, logger.Nop(), nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
