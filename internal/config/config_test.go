package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DB_DSN":           "postgres://localhost/sessions",
		"DEFAULT_TIMEZONE": "Europe/Moscow",
	}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "Europe/Moscow", cfg.DefaultTimezone)
	assert.False(t, cfg.CompensateOnFailure)
	assert.Empty(t, cfg.TelegramToken)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DB_DSN":                "postgres://localhost/sessions",
		"ENV":                   "production",
		"HTTP_ADDR":             ":9000",
		"DEFAULT_TIMEZONE":      "Asia/Kolkata",
		"COMPENSATE_ON_FAILURE": "true",
		"TELEGRAM_TOKEN":        "123:abc",
	}))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.True(t, cfg.CompensateOnFailure)
	assert.Equal(t, "123:abc", cfg.TelegramToken)
}

func TestFromEnvErrors(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"DEFAULT_TIMEZONE": "UTC"}))
	assert.ErrorContains(t, err, "DB_DSN")

	_, err = FromEnv(env(map[string]string{"DB_DSN": "x", "DEFAULT_TIMEZONE": "Nowhere/City"}))
	assert.ErrorContains(t, err, "DEFAULT_TIMEZONE")

	_, err = FromEnv(env(map[string]string{"DB_DSN": "x", "DEFAULT_TIMEZONE": "UTC", "COMPENSATE_ON_FAILURE": "maybe"}))
	assert.ErrorContains(t, err, "COMPENSATE_ON_FAILURE")
}
