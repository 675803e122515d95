package bot

import (
	"context"
	"strings"
	"time"

	"github.com/bolabot/bolabot-go/internal/config"
	domerrors "github.com/bolabot/bolabot-go/internal/errors"
	"github.com/bolabot/bolabot-go/internal/genai"
	"github.com/bolabot/bolabot-go/internal/keywords"
	"github.com/bolabot/bolabot-go/internal/logger"
	"github.com/bolabot/bolabot-go/internal/ratelimit"
	"github.com/bolabot/bolabot-go/internal/sentry"
	"github.com/bolabot/bolabot-go/internal/session"
)

// RuleGeneration is the fallback rule name.
const RuleGeneration = "generation"

// Prompts sent to the generation provider.
const (
	SystemPrompt = "You are BolaBot, an expert on Sepak Takraw. " +
		"Answer questions clearly and helpfully about Sepak Takraw."
	detailPrefix = "Explain in detail: "
	briefPrefix  = "Give a brief answer to: "
)

// Fixed generation replies.
const (
	ApologyText      = "Sorry, something went wrong while generating my response."
	LLMRateLimitText = "You've asked a lot of open questions recently. Please try again in a little while."
)

var (
	generationSuggestions = []string{"Show a video", "Show an image", "Tell me more", "Who invented Sepak Takraw?"}
	apologySuggestions    = []string{"Try again", "Ask another question"}
	llmLimitSuggestions   = []string{"Show a video", "Show an image"}
)

var generationErr = domerrors.NewWrapper(RuleGeneration, "generate")

func apologyResponse() Response {
	return Response{Text: ApologyText, Suggestions: Suggest(apologySuggestions...)}
}

// BuildPrompt returns the task prompt for raw input.
func BuildPrompt(raw string, detail bool) string {
	if detail {
		return detailPrefix + raw
	}
	return briefPrefix + raw
}

// Shorten keeps the first two ". "-separated sentences.
func Shorten(text string) string {
	parts := strings.Split(text, ". ")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, ". ")
}

// EnsurePeriod appends "." unless text already ends with one.
func EnsurePeriod(text string) string {
	if strings.HasSuffix(text, ".") {
		return text
	}
	return text + "."
}

// GenerationHandler answers anything the other rules did not, using the
// configured LLM chain and the user's history.
type GenerationHandler struct {
	generator genai.Generator
	limiter   *ratelimit.KeyedLimiter
	matcher   *keywords.Matcher
	cfg       config.BotConfig
	logger    *logger.Logger
}

// GenerationConfig holds GenerationHandler dependencies. A nil Generator
// makes every call answer with the apology.
type GenerationConfig struct {
	Generator  genai.Generator
	LLMLimiter *ratelimit.KeyedLimiter
	Matcher    *keywords.Matcher
	Bot        config.BotConfig
	Logger     *logger.Logger
}

// NewGenerationHandler creates the fallback handler.
func NewGenerationHandler(cfg GenerationConfig) *GenerationHandler {
	matcher := cfg.Matcher
	if matcher == nil {
		matcher = keywords.NewMatcher(keywords.DefaultTable())
	}
	log := cfg.Logger
	if log == nil {
		log = logger.New("info")
	}
	return &GenerationHandler{
		generator: cfg.Generator,
		limiter:   cfg.LLMLimiter,
		matcher:   matcher,
		cfg:       cfg.Bot,
		logger:    log.WithModule(RuleGeneration),
	}
}

func (g *GenerationHandler) Name() string { return RuleGeneration }

func (g *GenerationHandler) CanHandle(context.Context, *Message) bool { return true }

func (g *GenerationHandler) Handle(ctx context.Context, m *Message) Response {
	if g.generator == nil {
		g.logger.WarnContext(ctx, "No generation provider configured")
		return apologyResponse()
	}
	if g.limiter != nil && !g.limiter.Allow(m.UserID) {
		g.logger.WarnContext(ctx, "LLM rate limit exceeded")
		return Response{Text: LLMRateLimitText, Suggestions: Suggest(llmLimitSuggestions...)}
	}

	detail := g.matcher.Match(keywords.CategoryDetail, m.Clean)
	req := genai.Request{
		System:      SystemPrompt,
		Prompt:      BuildPrompt(m.Raw, detail),
		History:     toGenaiHistory(m.Session),
		Model:       g.cfg.GenerationModel,
		Temperature: g.cfg.GenerationTemperature,
	}

	timeout := g.cfg.GenerationTimeout
	if timeout <= 0 {
		timeout = config.GenerationCall
	}
	gctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	text, err := g.generator.Generate(gctx, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = &genai.ProviderError{Err: genai.ErrEmptyResponse, Provider: g.generator.Provider()}
	}
	if err != nil {
		// Provider-side failures do not count against the user's quota.
		if g.limiter != nil && genai.ClassifyError(err) == genai.ActionFallback {
			g.limiter.Refund(m.UserID)
		}
		werr := generationErr.Wrap(err, ApologyText)
		g.logger.WithError(werr).
			WithField("detail", detail).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			ErrorContext(ctx, "Generation failed")
		sentry.CaptureExceptionWithContext(ctx, werr, map[string]string{
			"rule":     RuleGeneration,
			"provider": g.generator.Provider().String(),
		})
		return Response{Text: domerrors.GetUserMessage(werr), Suggestions: Suggest(apologySuggestions...)}
	}

	text = strings.TrimSpace(text)
	limit := g.cfg.HistoryTurns
	raw := m.Raw
	m.Mutate(func(s *session.Session) {
		s.AppendTurns(limit,
			session.Turn{Role: session.RoleUser, Message: raw},
			session.Turn{Role: session.RoleBot, Message: text},
		)
	})

	reply := text
	if !detail {
		reply = Shorten(text)
	}
	return Response{Text: EnsurePeriod(reply), Suggestions: Suggest(generationSuggestions...)}
}

func toGenaiHistory(s *session.Session) []genai.Message {
	if s == nil || len(s.History) == 0 {
		return nil
	}
	out := make([]genai.Message, 0, len(s.History))
	for _, t := range s.History {
		role := genai.RoleUser
		if t.Role == session.RoleBot {
			role = genai.RoleAssistant
		}
		out = append(out, genai.Message{Role: role, Content: t.Message})
	}
	return out
}
