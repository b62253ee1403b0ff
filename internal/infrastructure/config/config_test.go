package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fincontrol", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "fincontrol.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Expense.SeedOnFirstRun)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvOverride(t *testing.T) {
	require.NoError(t, os.Setenv("FIN_DATABASE_PATH", "/tmp/override.db"))
	require.NoError(t, os.Setenv("FIN_APP_ENV", "production"))
	defer os.Unsetenv("FIN_DATABASE_PATH")
	defer os.Unsetenv("FIN_APP_ENV")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.True(t, cfg.IsProduction())
}
