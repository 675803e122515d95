package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newChatServer(t *testing.T, status int, content string, got *chatRequest, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"upstream unavailable","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "command-r",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	t.Parallel()
	var (
		got  chatRequest
		hits atomic.Int32
	)
	srv := newChatServer(t, http.StatusOK, "  Sepak takraw began in Southeast Asia.  ", &got, &hits)

	g, err := NewOpenAIGenerator(ProviderCohere, "key", "", option.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), Request{
		System:      "You are BolaBot.",
		Prompt:      "Give a brief answer to: where is it from",
		History:     []Message{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "hello"}},
		Model:       "command-r-plus",
		Temperature: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sepak takraw began in Southeast Asia.", text)

	assert.Equal(t, "command-r-plus", got.Model, "cohere honors the request model")
	assert.InDelta(t, 0.5, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "Give a brief answer to: where is it from", got.Messages[3].Content)
}

func TestOpenAIGenerator_IgnoresRequestModelForOtherProviders(t *testing.T) {
	t.Parallel()
	var (
		got  chatRequest
		hits atomic.Int32
	)
	srv := newChatServer(t, http.StatusOK, "ok", &got, &hits)

	g, err := NewOpenAIGenerator(ProviderGroq, "key", "", option.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), Request{Prompt: "q", Model: "command-r"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModels[ProviderGroq], got.Model)
}

func TestOpenAIGenerator_ServerErrorIsSingleAttempt(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := newChatServer(t, http.StatusServiceUnavailable, "", nil, &hits)

	g, err := NewOpenAIGenerator(ProviderGroq, "key", "llama", option.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), Request{Prompt: "q"})
	var pErr *ProviderError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, http.StatusServiceUnavailable, pErr.StatusCode)
	assert.Equal(t, ProviderGroq, pErr.Provider)
	assert.Equal(t, ActionFallback, ClassifyError(err))
	assert.Equal(t, int32(1), hits.Load())
}

func TestOpenAIGenerator_EmptyContent(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := newChatServer(t, http.StatusOK, "   ", nil, &hits)

	g, err := NewOpenAIGenerator(ProviderCerebras, "key", "", option.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), Request{Prompt: "q"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestNewOpenAIGenerator_Validation(t *testing.T) {
	t.Parallel()
	_, err := NewOpenAIGenerator(ProviderGemini, "key", "")
	assert.Error(t, err, "gemini is not OpenAI-compatible")
	_, err = NewOpenAIGenerator(ProviderGroq, "", "")
	assert.Error(t, err)
}
