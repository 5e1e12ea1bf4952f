package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresCredentials(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	assert.EqualError(t, err, "TELEGRAM_BOT_TOKEN is required")

	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	_, err = Load()
	assert.EqualError(t, err, "GEMINI_API_KEY is required")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.MaxConcurrent)
	assert.Equal(t, 180*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.GeminiBaseURL)
	assert.Equal(t, "v1beta", cfg.GeminiAPIVersion)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.GeminiModel)
	assert.True(t, cfg.PreferIPv4)
}

func TestLoadClampsAndParses(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("MAX_CONCURRENT", "0")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "-5")
	t.Setenv("LOG_LEVEL", " DEBUG ")
	t.Setenv("GEMINI_MODEL", "gemini-3-pro-image-preview")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.MaxConcurrent)
	assert.Equal(t, 180*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "gemini-3-pro-image-preview", cfg.GeminiModel)
}
