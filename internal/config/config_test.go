package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "configured-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "configured-secret", cfg.JWTSecret)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 720, cfg.JWTExpirationHours) // 30 days
	assert.Equal(t, "https://api.line.me/oauth2/v2.1/verify", cfg.LineVerifyURL)
	assert.Equal(t, "running-evidence", cfg.StorageBucket)
	assert.True(t, cfg.StorageUseSSL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRATION_HOURS", "24")
	t.Setenv("STORAGE_USE_SSL", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.False(t, cfg.StorageUseSSL)
}
