package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/bolabot/bolabot-go/internal/ctxutil"
)

func TestContextHandler_Handle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		setupContext   func(context.Context) context.Context
		expectedFields map[string]string
	}{
		{
			name: "extracts all context values",
			setupContext: func(ctx context.Context) context.Context {
				ctx = ctxutil.WithUserID(ctx, "U12345")
				ctx = ctxutil.WithChannel(ctx, ctxutil.ChannelLINE)
				return ctxutil.WithRequestID(ctx, "req-abc-123")
			},
			expectedFields: map[string]string{
				"user_id":    "U12345",
				"channel":    "line",
				"request_id": "req-abc-123",
			},
		},
		{
			name: "extracts partial context values",
			setupContext: func(ctx context.Context) context.Context {
				return ctxutil.WithUserID(ctx, "U99999")
			},
			expectedFields: map[string]string{"user_id": "U99999"},
		},
		{
			name:           "handles empty context",
			setupContext:   func(ctx context.Context) context.Context { return ctx },
			expectedFields: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			log := slog.New(NewContextHandler(base))

			log.InfoContext(tt.setupContext(context.Background()), "test message")

			output := buf.String()
			for key, value := range tt.expectedFields {
				if !strings.Contains(output, `"`+key+`":"`+value+`"`) {
					t.Errorf("Expected field %s=%s not found in output: %s", key, value, output)
				}
			}
			if len(tt.expectedFields) == 0 {
				for _, field := range []string{"user_id", "channel", "request_id"} {
					if strings.Contains(output, `"`+field+`"`) {
						t.Errorf("Unexpected field %s found in output: %s", field, output)
					}
				}
			}
		})
	}
}

func TestContextHandler_WithAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)
	log := slog.New(NewContextHandler(base)).With("service", "bolabot")

	log.InfoContext(ctxutil.WithUserID(context.Background(), "U1"), "hello")

	out := buf.String()
	if !strings.Contains(out, `"service":"bolabot"`) || !strings.Contains(out, `"user_id":"U1"`) {
		t.Errorf("attrs lost through WithAttrs: %s", out)
	}
}
