// Package config provides application configuration management.
// It loads settings from environment variables (optionally seeded from a
// .env file) and validates them before the server starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	ServerName      string
	InstanceID      string
	StaticDir       string // served under /static
	PublicBaseURL   string // absolute prefix for media links sent to LINE
	CatalogFile     string // optional YAML media catalog override

	// Sessions
	SessionBackend     string
	SessionTTL         time.Duration
	SessionMaxSessions int
	RedisURL           string

	// Generation providers
	LLMProviders   []string // order of the fallback chain
	CohereAPIKey   string
	GroqAPIKey     string
	CerebrasAPIKey string
	GeminiAPIKey   string
	GroqModel      string
	CerebrasModel  string
	GeminiModel    string

	// LINE channel (optional)
	LineChannelToken  string
	LineChannelSecret string

	// Sentry
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string
	SentrySampleRate  float64

	// Better Stack
	BetterStackToken    string
	BetterStackEndpoint string

	// Metrics Authentication
	MetricsAuthEnabled bool
	MetricsUsername    string
	MetricsPassword    string

	// Bot Configuration
	Bot BotConfig
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	bot := DefaultBotConfig()
	bot.GenerationModel = getEnv(EnvGenerationModel, bot.GenerationModel)
	bot.GenerationTemperature = getFloatEnv(EnvGenerationTemp, bot.GenerationTemperature)
	bot.GenerationTimeout = getDurationEnv(EnvGenerationTimeout, bot.GenerationTimeout)
	bot.HistoryTurns = getIntEnv(EnvHistoryTurns, bot.HistoryTurns)
	bot.SurveyURL = getEnv(EnvSurveyURL, bot.SurveyURL)
	bot.SurveyFormURL = getEnv(EnvSurveyFormURL, bot.SurveyFormURL)
	bot.UserRateBurst = getFloatEnv(EnvUserRateBurst, bot.UserRateBurst)
	bot.UserRateRefill = getFloatEnv(EnvUserRateRefill, bot.UserRateRefill)
	bot.LLMRateBurst = getFloatEnv(EnvLLMRateBurst, bot.LLMRateBurst)
	bot.LLMRateRefill = getFloatEnv(EnvLLMRateRefill, bot.LLMRateRefill)
	bot.LLMRateDaily = getIntEnv(EnvLLMRateDaily, bot.LLMRateDaily)

	var locErr error
	if tz := getEnv(EnvTimezone, ""); tz != "" {
		bot.Location, locErr = time.LoadLocation(tz)
		if locErr != nil {
			locErr = fmt.Errorf("%s: %w", EnvTimezone, locErr)
		}
	}

	cfg := &Config{
		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),
		ServerName:      getEnv(EnvServerName, "bolabot"),
		InstanceID:      getEnv(EnvInstanceID, ""),
		StaticDir:       getEnv(EnvStaticDir, "./static"),
		PublicBaseURL:   strings.TrimRight(getEnv(EnvPublicBaseURL, ""), "/"),
		CatalogFile:     getEnv(EnvCatalogFile, ""),

		SessionBackend:     strings.ToLower(getEnv(EnvSessionBackend, SessionBackendMemory)),
		SessionTTL:         getDurationEnv(EnvSessionTTL, 24*time.Hour),
		SessionMaxSessions: getIntEnv(EnvSessionMaxSessions, 10000),
		RedisURL:           getEnv(EnvRedisURL, ""),

		LLMProviders:   getListEnv(EnvLLMProviders, []string{"cohere", "groq", "cerebras", "gemini"}),
		CohereAPIKey:   getEnv(EnvCohereAPIKey, getEnv("CO_API_KEY", "")),
		GroqAPIKey:     getEnv(EnvGroqAPIKey, ""),
		CerebrasAPIKey: getEnv(EnvCerebrasAPIKey, ""),
		GeminiAPIKey:   getEnv(EnvGeminiAPIKey, ""),
		GroqModel:      getEnv(EnvGroqModel, ""),
		CerebrasModel:  getEnv(EnvCerebrasModel, ""),
		GeminiModel:    getEnv(EnvGeminiModel, ""),

		LineChannelToken:  getEnv(EnvLineChannelAccessToken, ""),
		LineChannelSecret: getEnv(EnvLineChannelSecret, ""),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentryRelease:     getEnv(EnvSentryRelease, ""),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		MetricsAuthEnabled: getBoolEnv(EnvMetricsAuthEnabled, false),
		MetricsUsername:    getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword:    getEnv(EnvMetricsPassword, ""),

		Bot: bot,
	}

	if err := errors.Join(locErr, cfg.Validate()); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
	}

	switch c.SessionBackend {
	case SessionBackendMemory:
		if c.SessionMaxSessions < 1 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvSessionMaxSessions, c.SessionMaxSessions))
		}
	case SessionBackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, fmt.Errorf("%s is required when %s=redis", EnvRedisURL, EnvSessionBackend))
		}
	default:
		errs = append(errs, fmt.Errorf("%s must be memory or redis, got %q", EnvSessionBackend, c.SessionBackend))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvSessionTTL, c.SessionTTL))
	}

	if (c.LineChannelToken == "") != (c.LineChannelSecret == "") {
		errs = append(errs, fmt.Errorf("%s and %s must be set together", EnvLineChannelAccessToken, EnvLineChannelSecret))
	}
	if c.MetricsAuthEnabled && c.MetricsPassword == "" {
		errs = append(errs, fmt.Errorf("%s is required when metrics auth is enabled", EnvMetricsPassword))
	}
	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
		errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", EnvSentrySampleRate, c.SentrySampleRate))
	}

	if err := c.Bot.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("bot config: %w", err))
	}

	return errors.Join(errs...)
}

// HasLLMProvider returns true if at least one generation provider is configured.
func (c *Config) HasLLMProvider() bool {
	return c.CohereAPIKey != "" || c.GroqAPIKey != "" || c.CerebrasAPIKey != "" || c.GeminiAPIKey != ""
}

// LINEEnabled reports whether the LINE webhook should be mounted.
func (c *Config) LINEEnabled() bool {
	return c.LineChannelToken != "" && c.LineChannelSecret != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getListEnv splits a comma-separated value, trimming and lowercasing items.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
