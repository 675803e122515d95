package genai

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	domerrors "github.com/bolabot/bolabot-go/internal/errors"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when a provider answers with no text.
var ErrEmptyResponse = errors.New("empty response")

// ErrorAction says what the provider chain does after a failure.
type ErrorAction int

const (
	// ActionFallback tries the next provider.
	ActionFallback ErrorAction = iota
	// ActionFail stops the chain.
	ActionFail
)

func (a ErrorAction) String() string {
	switch a {
	case ActionFallback:
		return "fallback"
	case ActionFail:
		return "fail"
	default:
		return "unknown"
	}
}

// ProviderError is the failure type of every Generator.
type ProviderError struct {
	Err        error
	StatusCode int
	Provider   Provider
	Retryable  bool // another provider may succeed
}

func (e *ProviderError) Error() string {
	msg := string(e.Provider) + ": " + e.Err.Error()
	if e.StatusCode > 0 {
		msg += " (status: " + strconv.Itoa(e.StatusCode) + ")"
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is makes every ProviderError match ErrProviderFailure.
func (e *ProviderError) Is(target error) bool {
	return target == domerrors.ErrProviderFailure
}

// ClassifyError decides whether the chain should move on after err.
//
// Cancellation and an expired deadline stop the chain since the remaining
// providers share the same budget. Malformed requests (400, 422) would fail
// everywhere. Everything else, including auth failures, quota, rate limits,
// 5xx and empty responses, is specific to one provider.
func ClassifyError(err error) ErrorAction {
	if err == nil {
		return ActionFail
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ActionFail
	}

	var pErr *ProviderError
	if errors.As(err, &pErr) && pErr.StatusCode > 0 {
		return classifyStatusCode(pErr.StatusCode)
	}
	if code := statusCode(err); code > 0 {
		return classifyStatusCode(code)
	}

	msg := strings.ToLower(err.Error())
	if containsAny(msg, "bad request", "malformed request", "unprocessable") {
		return ActionFail
	}
	return ActionFallback
}

func classifyStatusCode(code int) ErrorAction {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ActionFail
	default:
		return ActionFallback
	}
}

// statusCode extracts the HTTP status from SDK error types.
func statusCode(err error) int {
	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return oaErr.StatusCode
	}
	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	var gErrPtr *genai.APIError
	if errors.As(err, &gErrPtr) {
		return gErrPtr.Code
	}
	return 0
}

// WrapError converts an SDK error into a *ProviderError. A nil err stays nil.
func WrapError(err error, provider Provider) error {
	if err == nil {
		return nil
	}
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return err
	}
	pe := &ProviderError{Err: err, StatusCode: statusCode(err), Provider: provider}
	pe.Retryable = ClassifyError(pe) == ActionFallback
	return pe
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
