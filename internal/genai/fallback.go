package genai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bolabot/bolabot-go/internal/metrics"
)

// FallbackGenerator tries generators in order. A generator is skipped to the
// next only when ClassifyError says ActionFallback, and each is called at
// most once per Generate.
type FallbackGenerator struct {
	chain   []Generator
	metrics *metrics.Metrics
}

// NewFallbackGenerator chains gens. m may be nil.
func NewFallbackGenerator(m *metrics.Metrics, gens ...Generator) *FallbackGenerator {
	return &FallbackGenerator{chain: gens, metrics: m}
}

func (f *FallbackGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if f == nil || len(f.chain) == 0 {
		return "", &ProviderError{Err: errors.New("no generation provider configured")}
	}

	var lastErr error
	for i, g := range f.chain {
		if i > 0 {
			prev := f.chain[i-1].Provider()
			if ClassifyError(lastErr) != ActionFallback {
				break
			}
			slog.InfoContext(ctx, "falling back to next generation provider",
				"from", prev,
				"to", g.Provider(),
				"error", lastErr)
			f.metrics.RecordLLMFallback(prev.String(), g.Provider().String())
		}

		start := time.Now()
		text, err := g.Generate(ctx, req)
		if err == nil {
			f.metrics.RecordLLM(g.Provider().String(), "success", time.Since(start).Seconds())
			return text, nil
		}
		f.metrics.RecordLLM(g.Provider().String(), "error", time.Since(start).Seconds())
		lastErr = WrapError(err, g.Provider())
	}
	return "", lastErr
}

// Provider returns the first provider in the chain.
func (f *FallbackGenerator) Provider() Provider {
	if f == nil || len(f.chain) == 0 {
		return ""
	}
	return f.chain[0].Provider()
}

// Len returns the chain length.
func (f *FallbackGenerator) Len() int {
	if f == nil {
		return 0
	}
	return len(f.chain)
}

func (f *FallbackGenerator) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, g := range f.chain {
		if err := g.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
