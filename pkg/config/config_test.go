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

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "openai/gpt-4o", cfg.OpenRouter.Model)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouter.BaseURL)
	assert.Equal(t, 120*time.Second, cfg.OpenRouter.Timeout)

	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-v1-test")
	t.Setenv("OPENROUTER_MODEL", "anthropic/claude-sonnet")
	t.Setenv("OPENROUTER_TIMEOUT", "15")
	t.Setenv("HISTORY_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "sk-or-v1-test", cfg.OpenRouter.APIKey)
	assert.Equal(t, "anthropic/claude-sonnet", cfg.OpenRouter.Model)
	assert.Equal(t, 15*time.Second, cfg.OpenRouter.Timeout)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "debug", cfg.Logger.Level)
}
