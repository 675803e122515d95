package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIGenerator talks to any OpenAI-compatible chat completions endpoint.
type OpenAIGenerator struct {
	client   openai.Client
	model    string
	provider Provider
	// requestModel lets Request.Model override model. Only the Cohere
	// endpoint understands the configured generation model name.
	requestModel bool
}

// NewOpenAIGenerator creates a generator for provider. An empty model uses
// DefaultModels. Extra options are appended after the defaults, so tests can
// point the client at a local server.
func NewOpenAIGenerator(provider Provider, apiKey, model string, opts ...option.RequestOption) (*OpenAIGenerator, error) {
	baseURL, ok := ProviderEndpoint[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported OpenAI-compatible provider: %s", provider)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s: api key is required", provider)
	}
	if model == "" {
		model = DefaultModels[provider]
	}

	reqOpts := append([]option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0), // one attempt per provider
	}, opts...)

	return &OpenAIGenerator{
		client:       openai.NewClient(reqOpts...),
		model:        model,
		provider:     provider,
		requestModel: provider == ProviderCohere,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	model := g.model
	if g.requestModel && req.Model != "" {
		model = req.Model
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	for _, m := range req.History {
		switch m.Role {
		case RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}
	msgs = append(msgs, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:       model,
		Messages:    msgs,
		Temperature: openai.Float(req.Temperature),
	}

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)
	if err != nil {
		slog.WarnContext(ctx, "chat completion failed",
			"provider", g.provider,
			"model", model,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", WrapError(fmt.Errorf("chat completion: %w", err), g.provider)
	}

	if len(resp.Choices) == 0 {
		return "", WrapError(ErrEmptyResponse, g.provider)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", WrapError(ErrEmptyResponse, g.provider)
	}

	slog.DebugContext(ctx, "chat completion done",
		"provider", g.provider,
		"model", model,
		"input_tokens", resp.Usage.PromptTokens,
		"output_tokens", resp.Usage.CompletionTokens,
		"duration_ms", duration.Milliseconds())
	return text, nil
}

func (g *OpenAIGenerator) Provider() Provider { return g.provider }

// Close is a no-op; the openai-go client holds no resources.
func (g *OpenAIGenerator) Close() error { return nil }
