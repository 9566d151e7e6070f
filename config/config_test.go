package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with only the signing key set", func(t *testing.T) {
		t.Setenv("JWT_SIGNING_KEY", "test-signing-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.ServerAddr)
		assert.Equal(t, "http://localhost:3000", cfg.CORSAllowedOrigin)
		assert.Equal(t, "todoapp", cfg.JWTIssuer)
		assert.Equal(t, []string{"todoapp"}, cfg.JWTAudience)
		assert.Equal(t, 30*time.Second, cfg.AccessTokenTTL)
		assert.Equal(t, 20*time.Second, cfg.RefreshTokenTTL)
		assert.Equal(t, "user", cfg.ContextKey)
		assert.Equal(t, "refresh-token", cfg.RefreshCookieName)
		assert.True(t, cfg.RefreshCookieSecure)
		assert.Equal(t, "None", cfg.RefreshCookieSameSite)
	})

	t.Run("fails without a signing key", func(t *testing.T) {
		t.Setenv("JWT_SIGNING_KEY", "")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SIGNING_KEY")
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		t.Setenv("JWT_SIGNING_KEY", "test-signing-key")
		t.Setenv("SERVER_ADDR", ":9090")
		t.Setenv("ACCESS_TOKEN_TTL", "5m")
		t.Setenv("REFRESH_TOKEN_TTL", "24h")
		t.Setenv("JWT_AUDIENCE", "web, mobile")
		t.Setenv("DEBUG", "true")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.ServerAddr)
		assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
		assert.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
		assert.Equal(t, []string{"web", "mobile"}, cfg.JWTAudience)
		assert.True(t, cfg.Debug)
	})

	t.Run("unparseable duration falls back to the default", func(t *testing.T) {
		t.Setenv("JWT_SIGNING_KEY", "test-signing-key")
		t.Setenv("ACCESS_TOKEN_TTL", "not-a-duration")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, cfg.AccessTokenTTL)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			JWTSigningKey:   "test-signing-key",
			AccessTokenTTL:  30 * time.Second,
			RefreshTokenTTL: 20 * time.Second,
		}
	}

	t.Run("accepts a complete config", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("rejects a non-positive access token TTL", func(t *testing.T) {
		cfg := base()
		cfg.AccessTokenTTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects a non-positive refresh token TTL", func(t *testing.T) {
		cfg := base()
		cfg.RefreshTokenTTL = -time.Second
		assert.Error(t, cfg.Validate())
	})
}
