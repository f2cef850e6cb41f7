package config_test

import (
	"testing"

	"rule-sync/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "default", cfg.Kibana.Space)
	assert.Equal(t, 60, cfg.Kibana.TimeoutSeconds)
	assert.Equal(t, 10000, cfg.Kibana.PageSize)
	assert.True(t, cfg.Exporter.UseCLI)
	assert.Equal(t, "python3", cfg.Exporter.Command)
	assert.Equal(t, 120, cfg.Exporter.TimeoutSeconds)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("KIBANA_SPACE", "security")
	t.Setenv("KIBANA_ENDPOINT", "https://kibana.local:5601")
	t.Setenv("EXPORTER_USE_CLI", "false")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "security", cfg.Kibana.Space)
	assert.Equal(t, "https://kibana.local:5601", cfg.Kibana.Endpoint)
	assert.False(t, cfg.Exporter.UseCLI)
}
