package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Provider)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.LogQueries)
	assert.Equal(t, "_quarry_migrations", cfg.MigrationsTable)
	assert.Equal(t, "db/migrations", cfg.MigrationsPath)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("QUARRY_MIGRATIONS_TABLE", "custom_migrations")
	t.Setenv("QUARRY_LOG_QUERIES", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "custom_migrations", cfg.MigrationsTable)
	assert.True(t, cfg.LogQueries)
}
