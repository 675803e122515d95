// Package genai wraps hosted LLM APIs behind a single text-generation
// interface used by the bot's fallback answer.
//
// Cohere, Groq and Cerebras are reached through their OpenAI-compatible
// endpoints with github.com/openai/openai-go/v3. Gemini uses the official
// google.golang.org/genai SDK. Providers are chained in configured order;
// each is called at most once per request.
package genai

import "context"

// Provider identifies an LLM vendor.
type Provider string

const (
	ProviderCohere   Provider = "cohere"
	ProviderGroq     Provider = "groq"
	ProviderCerebras Provider = "cerebras"
	ProviderGemini   Provider = "gemini"
)

// ProviderEndpoint holds base URLs of OpenAI-compatible providers.
var ProviderEndpoint = map[Provider]string{
	ProviderCohere:   "https://api.cohere.ai/compatibility/v1/",
	ProviderGroq:     "https://api.groq.com/openai/v1/",
	ProviderCerebras: "https://api.cerebras.ai/v1/",
}

// DefaultModels is used when no model is configured for a provider.
var DefaultModels = map[Provider]string{
	ProviderCohere:   "command-r",
	ProviderGroq:     "llama-3.3-70b-versatile",
	ProviderCerebras: "llama-3.3-70b",
	ProviderGemini:   "gemini-2.5-flash",
}

// IsOpenAICompatible reports whether p is served through the OpenAI client.
func (p Provider) IsOpenAICompatible() bool {
	_, ok := ProviderEndpoint[p]
	return ok
}

func (p Provider) String() string {
	return string(p)
}

// Role of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one prior conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Request is a single generation call.
type Request struct {
	System      string
	Prompt      string
	History     []Message
	Model       string // Cohere model; other providers use their configured model
	Temperature float64
}

// Generator produces text for a request.
type Generator interface {
	// Generate returns the model's reply. Failures are *ProviderError.
	Generate(ctx context.Context, req Request) (string, error)
	// Provider returns the vendor for metrics and logs.
	Provider() Provider
	// Close releases resources.
	Close() error
}
