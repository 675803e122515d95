// Package topic implements the off-topic gate. The first off-topic message
// in a session is redirected; after that the user has insisted and every
// later message goes through.
package topic

import (
	"context"

	"github.com/bolabot/bolabot-go/internal/bot"
	"github.com/bolabot/bolabot-go/internal/keywords"
	"github.com/bolabot/bolabot-go/internal/session"
)

// RuleGate is the gate's rule name.
const RuleGate = "topic_gate"

const redirectText = "I'm focused only on Sepak Takraw. If you still want an answer, please ask again."

var redirectSuggestions = []string{"Tell me about Sepak Takraw", "What is it?", "Show a video"}

// Handler redirects the first off-topic message of a session.
type Handler struct {
	domain *keywords.DomainMatcher
}

func NewHandler(domain *keywords.DomainMatcher) *Handler {
	return &Handler{domain: domain}
}

func (h *Handler) Name() string { return RuleGate }

func (h *Handler) CanHandle(_ context.Context, m *bot.Message) bool {
	if m.Session == nil || m.Session.Insisted {
		return false
	}
	return !h.domain.Match(m.Clean)
}

func (h *Handler) Handle(_ context.Context, m *bot.Message) bot.Response {
	m.Mutate(func(s *session.Session) { s.Insisted = true })
	return bot.Response{Text: redirectText, Suggestions: bot.Suggest(redirectSuggestions...)}
}
