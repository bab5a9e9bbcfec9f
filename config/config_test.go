package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "fern-api", cfg.AppName)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 10*time.Second, cfg.DatabaseConnMaxLifetime)
	assert.True(t, cfg.DatabaseMigrationAutoRollback)
	assert.False(t, cfg.DatabaseEnabled())
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, 0, cfg.DatabaseMigrationVersion)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("REDIS_CACHE_TTL", "5m")
	t.Setenv("PRETTY_LOGS", "true")
	t.Setenv("DB_HOST", "db")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Minute, cfg.RedisCacheTTL)
	assert.True(t, cfg.PrettyLogs)
	assert.True(t, cfg.DatabaseEnabled())
	assert.Equal(t, "postgres://:@db:5432/fern?sslmode=disable", cfg.DatabaseURL())
}

func TestLoad_Integers(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{name: "zero", value: "0", expected: 0},
		{name: "padded zero", value: "00", expected: 0},
		{name: "leading space", value: " 0", expected: 0},
		{name: "leading zero", value: "08", expected: 8},
		{name: "surrounding space", value: " 12 ", expected: 12},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv("DB_MIGRATION_VERSION", test.value)
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.NoError(t, err)
			assert.Equal(t, test.expected, cfg.DatabaseMigrationVersion)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FERN_TEST_APP=ignored\nLOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("FERN_TEST_APP")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PORT", "http")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "PORT")

	t.Setenv("PORT", "3000")
	t.Setenv("REDIS_CACHE_TTL", "soon")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "REDIS_CACHE_TTL")
}
