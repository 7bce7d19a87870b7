package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_MODE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.DemoMode())
	assert.False(t, cfg.SingleMode())
	assert.Equal(t, 24*time.Hour, cfg.JWT.Duration)
	assert.Equal(t, 28, cfg.App.TemplateDays)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/db")
	t.Setenv("APP_MODE", "single")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.test,https://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.DemoMode())
	assert.True(t, cfg.SingleMode())
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowOrigins)
}
