package genai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bolabot/bolabot-go/internal/config"
	"github.com/bolabot/bolabot-go/internal/metrics"
)

// CreateGenerator builds the provider chain from cfg.LLMProviders, skipping
// providers without an API key. It returns nil when none is usable; callers
// then answer with the generation apology.
func CreateGenerator(ctx context.Context, cfg *config.Config, m *metrics.Metrics) *FallbackGenerator {
	keys := map[Provider]string{
		ProviderCohere:   cfg.CohereAPIKey,
		ProviderGroq:     cfg.GroqAPIKey,
		ProviderCerebras: cfg.CerebrasAPIKey,
		ProviderGemini:   cfg.GeminiAPIKey,
	}
	models := map[Provider]string{
		ProviderCohere:   cfg.Bot.GenerationModel,
		ProviderGroq:     cfg.GroqModel,
		ProviderCerebras: cfg.CerebrasModel,
		ProviderGemini:   cfg.GeminiModel,
	}

	var (
		chain []Generator
		seen  = make(map[Provider]bool)
	)
	for _, name := range cfg.LLMProviders {
		p := Provider(strings.ToLower(strings.TrimSpace(name)))
		if seen[p] {
			continue
		}
		seen[p] = true

		key := keys[p]
		if key == "" {
			continue
		}

		var (
			g   Generator
			err error
		)
		switch {
		case p == ProviderGemini:
			g, err = NewGeminiGenerator(ctx, key, models[p])
		case p.IsOpenAICompatible():
			g, err = NewOpenAIGenerator(p, key, models[p])
		default:
			slog.WarnContext(ctx, "unknown generation provider", "provider", p)
			continue
		}
		if err != nil {
			slog.WarnContext(ctx, "failed to create generator", "provider", p, "error", err)
			continue
		}
		chain = append(chain, g)
	}

	if len(chain) == 0 {
		slog.InfoContext(ctx, "no generation provider configured")
		return nil
	}
	providers := make([]string, len(chain))
	for i, g := range chain {
		providers[i] = g.Provider().String()
	}
	slog.InfoContext(ctx, "generation configured", "providers", providers)
	return NewFallbackGenerator(m, chain...)
}
