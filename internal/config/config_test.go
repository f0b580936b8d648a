package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.False(t, cfg.IsProduction)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 24*time.Hour, cfg.JWTAccessTokenTTL)
		assert.Equal(t, BackendSimulated, cfg.Backend)
		assert.Equal(t, time.Second, cfg.SimReadDelay)
		assert.Equal(t, 1500*time.Millisecond, cfg.SimWriteDelay)
		assert.Equal(t, time.Second, cfg.SimBookDelay)
		assert.Equal(t, time.Second, cfg.SimAuthDelay)
		assert.Equal(t, 500*time.Millisecond, cfg.SimRestoreDelay)
	})

	t.Run("Missing Secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("APP_ENV", "prod")
		t.Setenv("SIM_READ_DELAY", "250")
		t.Setenv("SIM_WRITE_DELAY", "2s")
		t.Setenv("SIM_AUTH_DELAY", "0")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction)
		assert.Equal(t, 250*time.Millisecond, cfg.SimReadDelay)
		assert.Equal(t, 2*time.Second, cfg.SimWriteDelay)
		assert.Zero(t, cfg.SimAuthDelay)
	})

	t.Run("Invalid Durations", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")

		t.Setenv("SIM_BOOK_DELAY", "soon")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "SIM_BOOK_DELAY")

		t.Setenv("SIM_BOOK_DELAY", "-5")
		_, err = FromEnv()
		assert.ErrorContains(t, err, "must not be negative")
	})

	t.Run("Remote Backend Needs A URL", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("BACKEND", BackendRemote)

		_, err := FromEnv()
		assert.ErrorContains(t, err, "REMOTE_BACKEND_URL")

		t.Setenv("REMOTE_BACKEND_URL", "http://upstream:8080")
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "http://upstream:8080", cfg.RemoteBackendURL)
		assert.Equal(t, 10*time.Second, cfg.RemoteTimeout)
	})

	t.Run("Unknown Backend", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("BACKEND", "postgres")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "invalid BACKEND")
	})
}
