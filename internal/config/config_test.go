package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"STUDYHALL_JWT_SECRET": "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "./data/studyhall.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.False(t, cfg.InviteAutoConfirm)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"STUDYHALL_JWT_SECRET":          "s3cret",
		"STUDYHALL_PORT":                "9090",
		"STUDYHALL_SWEEP_INTERVAL":      "30s",
		"STUDYHALL_INVITE_AUTO_CONFIRM": "true",
		"STUDYHALL_ALLOWED_ORIGINS":     "http://a.test,http://b.test",
		"LOG_LEVEL":                     "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.True(t, cfg.InviteAutoConfirm)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFromErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"missing secret": {},
		"empty secret":   {"STUDYHALL_JWT_SECRET": ""},
		"bad port":       {"STUDYHALL_JWT_SECRET": "x", "STUDYHALL_PORT": "not-an-int"},
		"port range":     {"STUDYHALL_JWT_SECRET": "x", "STUDYHALL_PORT": "70000"},
		"bad duration":   {"STUDYHALL_JWT_SECRET": "x", "STUDYHALL_TOKEN_TTL": "soon"},
		"negative sweep": {"STUDYHALL_JWT_SECRET": "x", "STUDYHALL_SWEEP_INTERVAL": "-1m"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(vars)
			assert.Error(t, err)
		})
	}
}
