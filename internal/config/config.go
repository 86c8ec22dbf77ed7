package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// LLM providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Port    string
	GinMode string

	PredictorBaseURL string
	PredictorTimeout time.Duration

	LLMProvider     string
	LLMTimeout      time.Duration
	LLMMaxTokens    int64
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	AnthropicAPIKey string
	AnthropicModel  string

	Locale string

	DatabaseURL string
	EnableDB    bool

	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel  string
	LogFormat string
}

// Load reads .env (if any) and the process environment once.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("PREDICTOR_TIMEOUT", "30s")
	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("LLM_TIMEOUT", "60s")
	v.SetDefault("LLM_MAX_TOKENS", 4096)
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929")
	v.SetDefault("LOCALE", "vi")
	v.SetDefault("ENABLE_DB", false)
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	cfg := &Config{
		Port:             v.GetString("PORT"),
		GinMode:          v.GetString("GIN_MODE"),
		PredictorBaseURL: strings.TrimRight(v.GetString("PREDICTOR_BASE_URL"), "/"),
		PredictorTimeout: v.GetDuration("PREDICTOR_TIMEOUT"),
		LLMProvider:      strings.ToLower(v.GetString("LLM_PROVIDER")),
		LLMTimeout:       v.GetDuration("LLM_TIMEOUT"),
		LLMMaxTokens:     v.GetInt64("LLM_MAX_TOKENS"),
		GeminiAPIKey:     v.GetString("GEMINI_API_KEY"),
		GeminiModel:      v.GetString("GEMINI_MODEL"),
		GeminiBaseURL:    strings.TrimRight(v.GetString("GEMINI_BASE_URL"), "/"),
		AnthropicAPIKey:  v.GetString("ANTHROPIC_API_KEY"),
		AnthropicModel:   v.GetString("ANTHROPIC_MODEL"),
		Locale:           strings.ToLower(v.GetString("LOCALE")),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		EnableDB:         v.GetBool("ENABLE_DB"),
		RateLimitRPS:     v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:   v.GetInt("RATE_LIMIT_BURST"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PredictorBaseURL == "" {
		return eris.New("config: PREDICTOR_BASE_URL is required")
	}
	if c.PredictorTimeout <= 0 {
		return eris.New("config: PREDICTOR_TIMEOUT must be positive")
	}
	if c.LLMTimeout <= 0 {
		return eris.New("config: LLM_TIMEOUT must be positive")
	}

	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return eris.New("config: GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return eris.New("config: ANTHROPIC_API_KEY is required when LLM_PROVIDER=anthropic")
		}
	default:
		return eris.Errorf("config: unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.Locale != "vi" && c.Locale != "en" {
		return eris.Errorf("config: unsupported LOCALE %q", c.Locale)
	}

	if c.EnableDB && c.DatabaseURL == "" {
		return eris.New("config: DATABASE_URL is required when ENABLE_DB=true")
	}
	return nil
}
