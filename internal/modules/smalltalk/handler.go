// Package smalltalk implements the conversational rules that do not depend
// on the media catalog: greeting, current time, name capture and the bot's
// own identity.
package smalltalk

import (
	"context"
	"fmt"
	"time"

	"github.com/bolabot/bolabot-go/internal/bot"
	"github.com/bolabot/bolabot-go/internal/keywords"
	"github.com/bolabot/bolabot-go/internal/logger"
	"github.com/bolabot/bolabot-go/internal/nlp"
	"github.com/bolabot/bolabot-go/internal/session"
)

// Rule names.
const (
	RuleGreeting = "greeting"
	RuleTime     = "time"
	RuleName     = "name_capture"
	RuleIdentity = "identity"
)

const (
	greetingText = "Hello! I’m BolaBot, your guide to Sepak Takraw. Ask me anything about the sport."
	identityText = "My name is BolaBot. I'm here to help you explore the sport of Sepak Takraw."
	timeLayout   = "Monday, 02 January 2006 03:04 PM"
	nameFormat   = "Nice to meet you, %s! What would you like to know about Sepak Takraw?"

	nameKey = "smalltalk.name"
)

var (
	greetingSuggestions = []string{"How to play Sepak Takraw?", "What is the history?", "Show me a Sepak Takraw ball."}
	timeSuggestions     = []string{"What is the history of Takraw?", "Show me a video", "Rules of the game"}
	nameSuggestions     = []string{"How to play Sepak Takraw?", "What is the history?", "Show a video"}
	identitySuggestions = []string{"How do you help?", "Tell me a fun fact", "What can you do?"}
)

// GreetingHandler answers a bare hi/hello/hey.
type GreetingHandler struct {
	matcher *keywords.Matcher
}

func NewGreetingHandler(matcher *keywords.Matcher) *GreetingHandler {
	return &GreetingHandler{matcher: matcher}
}

func (h *GreetingHandler) Name() string { return RuleGreeting }

func (h *GreetingHandler) CanHandle(_ context.Context, m *bot.Message) bool {
	return h.matcher.Match(keywords.CategoryGreeting, m.Clean)
}

func (h *GreetingHandler) Handle(context.Context, *bot.Message) bot.Response {
	return bot.Response{Text: greetingText, Suggestions: bot.Suggest(greetingSuggestions...)}
}

// TimeHandler tells the current date and time.
type TimeHandler struct {
	matcher *keywords.Matcher
	loc     *time.Location
	now     func() time.Time
}

// NewTimeHandler creates the time rule. A nil loc uses server local time.
func NewTimeHandler(matcher *keywords.Matcher, loc *time.Location) *TimeHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TimeHandler{matcher: matcher, loc: loc, now: time.Now}
}

func (h *TimeHandler) Name() string { return RuleTime }

func (h *TimeHandler) CanHandle(_ context.Context, m *bot.Message) bool {
	return h.matcher.Match(keywords.CategoryTime, m.Clean)
}

func (h *TimeHandler) Handle(context.Context, *bot.Message) bot.Response {
	now := h.now().In(h.loc).Format(timeLayout)
	return bot.Response{
		Text:        "The current date and time is " + now + ".",
		Suggestions: bot.Suggest(timeSuggestions...),
	}
}

// NameHandler remembers the user's name the first time one is mentioned.
type NameHandler struct {
	extractor nlp.Extractor
	domain    *keywords.DomainMatcher
	logger    *logger.Logger
}

// NewNameHandler creates the name capture rule. Names the domain matcher
// recognizes ("Sepak Takraw", "Thailand") are ignored.
func NewNameHandler(extractor nlp.Extractor, domain *keywords.DomainMatcher, log *logger.Logger) *NameHandler {
	return &NameHandler{extractor: extractor, domain: domain, logger: log.WithModule(RuleName)}
}

func (h *NameHandler) Name() string { return RuleName }

func (h *NameHandler) CanHandle(ctx context.Context, m *bot.Message) bool {
	if m.Session == nil || m.Session.HasName() {
		return false
	}
	name, ok, err := nlp.FirstPerson(ctx, h.extractor, m.Raw)
	if err != nil {
		h.logger.WithError(err).DebugContext(ctx, "Entity extraction failed")
		return false
	}
	if !ok || h.domain.Match(keywords.Normalize(name)) {
		return false
	}
	m.Remember(nameKey, name)
	return true
}

func (h *NameHandler) Handle(_ context.Context, m *bot.Message) bot.Response {
	v, _ := m.Recall(nameKey)
	name, _ := v.(string)
	m.Mutate(func(s *session.Session) { s.Name = name })
	return bot.Response{
		Text:        fmt.Sprintf(nameFormat, name),
		Suggestions: bot.Suggest(nameSuggestions...),
	}
}

// IdentityHandler answers "who are you" questions.
type IdentityHandler struct {
	matcher *keywords.Matcher
}

func NewIdentityHandler(matcher *keywords.Matcher) *IdentityHandler {
	return &IdentityHandler{matcher: matcher}
}

func (h *IdentityHandler) Name() string { return RuleIdentity }

func (h *IdentityHandler) CanHandle(_ context.Context, m *bot.Message) bool {
	return h.matcher.Match(keywords.CategoryIdentity, m.Clean)
}

func (h *IdentityHandler) Handle(context.Context, *bot.Message) bot.Response {
	return bot.Response{Text: identityText, Suggestions: bot.Suggest(identitySuggestions...)}
}
