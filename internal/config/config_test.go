package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PREDICTOR_BASE_URL", "http://predictor.local/api/diagnosis/")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ENABLE_DB", "false")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOCALE", "")
	t.Setenv("PORT", "")
}

func TestLoadUsesDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://predictor.local/api/diagnosis", cfg.PredictorBaseURL)
	assert.Equal(t, 30*time.Second, cfg.PredictorTimeout)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, "vi", cfg.Locale)
	assert.False(t, cfg.EnableDB)
}

func TestLoadRequiresPredictorURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PREDICTOR_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PREDICTOR_BASE_URL")
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENABLE_DB", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadProviderKeys(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")

	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, cfg.LLMProvider)
}

func TestValidateRejects(t *testing.T) {
	base := Config{
		PredictorBaseURL: "http://x",
		PredictorTimeout: time.Second,
		LLMTimeout:       time.Second,
		LLMProvider:      ProviderGemini,
		GeminiAPIKey:     "k",
		Locale:           "en",
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"unknown provider", func(c *Config) { c.LLMProvider = "openai" }, "unknown LLM_PROVIDER"},
		{"bad locale", func(c *Config) { c.Locale = "fr" }, "LOCALE"},
		{"zero predictor timeout", func(c *Config) { c.PredictorTimeout = 0 }, "PREDICTOR_TIMEOUT"},
		{"zero llm timeout", func(c *Config) { c.LLMTimeout = 0 }, "LLM_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
