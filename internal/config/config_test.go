package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DEBUG", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.False(t, cfg.Debug)
	assert.Contains(t, cfg.DatabaseURL, "lugnut")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DEBUG", "true")
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/garage")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "postgres://app:secret@db:5432/garage", cfg.DatabaseURL)
}

func TestGetEnvBoolInvalid(t *testing.T) {
	t.Setenv("DEBUG", "not-a-bool")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
}
