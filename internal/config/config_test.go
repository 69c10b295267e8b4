package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "27000", cfg.AppPort)
	assert.Equal(t, "/var/local/lib/fence", cfg.DataDir)
	assert.Equal(t, "http://fence.flecs.local", cfg.IssuerURL)
	assert.Equal(t, "flecs", cfg.ClientID)
	assert.Empty(t, cfg.ClientRedirectURI, "default client uses a wildcard redirect")
	assert.Equal(t, "admin", cfg.ClientScope)
	assert.Equal(t, "argon2id", cfg.PasswordHashAlg)
	assert.Equal(t, 24*time.Hour, cfg.UserSessionTTL)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DATA_DIR", "/tmp/fence")
	t.Setenv("USER_SESSION_TTL", "45m")
	t.Setenv("PASSWORD_HASH_ALG", "bcrypt")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "/tmp/fence", cfg.DataDir)
	assert.Equal(t, 45*time.Minute, cfg.UserSessionTTL)
	assert.Equal(t, "bcrypt", cfg.PasswordHashAlg)
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("USER_SESSION_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
}
