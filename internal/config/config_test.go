package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.APIPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 15*time.Minute, cfg.SweepInterval)
	assert.Equal(t, 60*time.Second, cfg.SweepInitialDelay)
	assert.True(t, cfg.RateLimitEnabled)
	assert.True(t, cfg.CacheEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_PORT", "8080")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JITAI_SWEEP_INTERVAL_MINUTES", "5")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.APIPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORSAllowOrigins)
}

func TestLoad_ServerlessDetection(t *testing.T) {
	t.Setenv("VERCEL", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Serverless)
}

func TestEnvHelpers_BadValuesFallBack(t *testing.T) {
	t.Setenv("API_PORT", "not-a-number")
	t.Setenv("RATE_LIMIT_ENABLED", "not-a-bool")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.APIPort)
	assert.True(t, cfg.RateLimitEnabled)
}
