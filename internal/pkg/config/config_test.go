package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/maplink/internal/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("maplink-test")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 64*1024, cfg.Extract.MaxTextBytes)
	assert.Equal(t, 300, cfg.Extract.CacheTTL)
	assert.Equal(t, "maplink-test", cfg.Telemetry.ServiceName)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "maplink-worker", cfg.Worker.Durable)
	assert.Equal(t, 9091, cfg.Worker.MetricsPort)
	assert.Equal(t, 10000, cfg.Worker.DedupWindow)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MAPLINK_SERVER_PORT", "9090")
	t.Setenv("MAPLINK_VALKEY_ENABLED", "false")
	t.Setenv("MAPLINK_EXTRACT_CACHE_TTL", "60")

	cfg, err := config.Load("maplink-test")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Valkey.Enabled)
	assert.Equal(t, 60, cfg.Extract.CacheTTL)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MAPLINK_SERVER_PORT", "70000")

	_, err := config.Load("maplink-test")
	assert.ErrorContains(t, err, "server.port")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &config.Config{
		Log:  config.LogConfig{Format: "xml"},
		NATS: config.NATSConfig{Enabled: true},
	}
	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{"server.port", "log.format", "extract.max_text_bytes", "nats.url", "worker.dedup_window"} {
		assert.ErrorContains(t, err, field)
	}
}
