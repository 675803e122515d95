package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/bolabot/bolabot-go/internal/logger"
	"github.com/bolabot/bolabot-go/internal/sentry"
)

// HandleFunc invokes a handler.
type HandleFunc func(ctx context.Context, h Handler, m *Message) Response

// Middleware wraps handler invocation.
type Middleware func(next HandleFunc) HandleFunc

func invoke(ctx context.Context, h Handler, m *Message) Response {
	return h.Handle(ctx, m)
}

func applyMiddleware(base HandleFunc, mws ...Middleware) HandleFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// LoggingMiddleware logs handler execution with timing.
func LoggingMiddleware(log *logger.Logger) Middleware {
	return func(next HandleFunc) HandleFunc {
		return func(ctx context.Context, h Handler, m *Message) Response {
			start := time.Now()
			resp := next(ctx, h, m)
			log.WithModule(h.Name()).
				WithField("text_length", len(m.Raw)).
				WithField("duration_ms", time.Since(start).Milliseconds()).
				DebugContext(ctx, "Handler completed")
			return resp
		}
	}
}

// RecoveryMiddleware turns a handler panic into the apology response.
func RecoveryMiddleware(log *logger.Logger) Middleware {
	return func(next HandleFunc) HandleFunc {
		return func(ctx context.Context, h Handler, m *Message) (resp Response) {
			defer func() {
				if r := recover(); r != nil {
					log.WithModule(h.Name()).
						WithField("panic", r).
						WithField("stack", string(debug.Stack())).
						ErrorContext(ctx, "Handler panicked")
					sentry.CaptureExceptionWithContext(ctx, fmt.Errorf("handler %s panicked: %v", h.Name(), r),
						map[string]string{"rule": h.Name()})
					resp = apologyResponse()
				}
			}()
			return next(ctx, h, m)
		}
	}
}
