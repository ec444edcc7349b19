package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsOffline(t *testing.T) {
	t.Setenv("GEOCODER", "none")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "陕西省", cfg.RegionHint)
	assert.Equal(t, 10*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, 90.0, cfg.TravelSpeedKmh)
	assert.Equal(t, 5, cfg.ResolveConcurrency)
	assert.Equal(t, cfg.DBPath, cfg.DSN())
	assert.Equal(t, "none", cfg.TraceExporter)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GEOCODER", "ORS")
	t.Setenv("ORS_API_KEY", "key")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/heritage")
	t.Setenv("TRAVEL_SPEED_KMH", "60")
	t.Setenv("GEOCODE_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ors", cfg.Geocoder)
	assert.Equal(t, 60.0, cfg.TravelSpeedKmh)
	assert.Equal(t, 3*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, "postgres://localhost/heritage", cfg.DSN())
}

func TestLoadRejectsMissingKeys(t *testing.T) {
	t.Setenv("GEOCODER", "baidu")
	t.Setenv("BAIDU_MAP_AK", "")

	_, err := Load()
	assert.ErrorContains(t, err, "BAIDU_MAP_AK")
}

func TestLoadTraceExporter(t *testing.T) {
	t.Setenv("GEOCODER", "none")
	t.Setenv("TRACE_EXPORTER", " Stdout ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "stdout", cfg.TraceExporter)

	t.Setenv("TRACE_EXPORTER", "zipkin")
	_, err = Load()
	assert.ErrorContains(t, err, "TRACE_EXPORTER")
}

func TestGet(t *testing.T) {
	t.Setenv("SEED_PATH", "custom.json")
	assert.Equal(t, "custom.json", Get("SEED_PATH", "data/seeds/pois.json"))
	assert.Equal(t, "fallback", Get("DEFINITELY_UNSET_KEY_FOR_TEST", "fallback"))
}
