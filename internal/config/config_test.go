package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvPort, "")
	t.Setenv(EnvSessionBackend, "")
	t.Setenv(EnvLineChannelAccessToken, "")
	t.Setenv(EnvLineChannelSecret, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "10000" {
		t.Errorf("Expected default port '10000', got '%s'", cfg.Port)
	}
	if cfg.SessionBackend != SessionBackendMemory {
		t.Errorf("Expected memory backend, got %q", cfg.SessionBackend)
	}
	if cfg.Bot.GenerationModel != "command-r" {
		t.Errorf("Expected model command-r, got %q", cfg.Bot.GenerationModel)
	}
	if cfg.Bot.GenerationTemperature != 0.5 {
		t.Errorf("Expected temperature 0.5, got %v", cfg.Bot.GenerationTemperature)
	}
	if cfg.LINEEnabled() {
		t.Error("LINE should be disabled without credentials")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvHistoryTurns, "6")
	t.Setenv(EnvGenerationTimeout, "5s")
	t.Setenv(EnvLLMProviders, " Groq, gemini ,,")
	t.Setenv(EnvTimezone, "Asia/Kuala_Lumpur")
	t.Setenv(EnvPublicBaseURL, "https://bola.example/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Bot.HistoryTurns != 6 {
		t.Errorf("HistoryTurns = %d", cfg.Bot.HistoryTurns)
	}
	if cfg.Bot.GenerationTimeout != 5*time.Second {
		t.Errorf("GenerationTimeout = %v", cfg.Bot.GenerationTimeout)
	}
	if got := strings.Join(cfg.LLMProviders, ","); got != "groq,gemini" {
		t.Errorf("LLMProviders = %q", got)
	}
	if cfg.Bot.Location == nil || cfg.Bot.Location.String() != "Asia/Kuala_Lumpur" {
		t.Errorf("Location = %v", cfg.Bot.Location)
	}
	if cfg.PublicBaseURL != "https://bola.example" {
		t.Errorf("PublicBaseURL = %q", cfg.PublicBaseURL)
	}
}

func TestLoad_BadTimezone(t *testing.T) {
	t.Setenv(EnvTimezone, "Mars/Olympus")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func validConfig() *Config {
	return &Config{
		Port:               "10000",
		ShutdownTimeout:    time.Second,
		SessionBackend:     SessionBackendMemory,
		SessionTTL:         time.Hour,
		SessionMaxSessions: 10,
		SentrySampleRate:   1,
		Bot:                DefaultBotConfig(),
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing port", func(c *Config) { c.Port = "" }, EnvPort},
		{"redis without url", func(c *Config) { c.SessionBackend = SessionBackendRedis }, EnvRedisURL},
		{"redis with url", func(c *Config) {
			c.SessionBackend = SessionBackendRedis
			c.RedisURL = "redis://localhost:6379/0"
		}, ""},
		{"unknown backend", func(c *Config) { c.SessionBackend = "sqlite" }, "memory or redis"},
		{"half LINE credentials", func(c *Config) { c.LineChannelSecret = "s" }, "must be set together"},
		{"metrics auth without password", func(c *Config) { c.MetricsAuthEnabled = true }, EnvMetricsPassword},
		{"bad sample rate", func(c *Config) { c.SentrySampleRate = 2 }, EnvSentrySampleRate},
		{"bot history too small", func(c *Config) { c.Bot.HistoryTurns = 1 }, "history turns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.errContains)
			}
		})
	}
}

func TestConfig_HasLLMProvider(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	if cfg.HasLLMProvider() {
		t.Error("no keys should mean no provider")
	}
	cfg.GeminiAPIKey = "k"
	if !cfg.HasLLMProvider() {
		t.Error("gemini key should enable a provider")
	}
}
