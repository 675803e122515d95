package bot

import (
	"context"
	"strings"
	"time"

	"github.com/bolabot/bolabot-go/internal/config"
	"github.com/bolabot/bolabot-go/internal/ctxutil"
	domerrors "github.com/bolabot/bolabot-go/internal/errors"
	"github.com/bolabot/bolabot-go/internal/keywords"
	"github.com/bolabot/bolabot-go/internal/logger"
	"github.com/bolabot/bolabot-go/internal/metrics"
	"github.com/bolabot/bolabot-go/internal/ratelimit"
	"github.com/bolabot/bolabot-go/internal/session"
)

// DefaultUserID is used when a caller supplies no user ID.
const DefaultUserID = "default_user"

// Rule names for responses produced by the router itself.
const (
	RuleEmpty       = "empty"
	RuleRateLimited = "rate_limited"
)

// Messages the router answers with directly.
const (
	EmptyInputText  = "Please enter a message."
	RateLimitedText = "You're sending messages too quickly. Please wait a moment and try again."
)

// topicRules are the rules whose hits are counted per sub-topic.
var topicRules = map[string]bool{
	RuleGeneration: true,
	"image":        true,
	"video":        true,
}

// Router answers user messages.
type Router struct {
	chain       Chain
	handle      HandleFunc
	sessions    *session.Manager
	locker      *session.Locker
	userLimiter *ratelimit.KeyedLimiter
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

// RouterConfig holds Router dependencies. Limiter and Metrics are optional.
type RouterConfig struct {
	Chain       Chain
	Sessions    *session.Manager
	Locker      *session.Locker
	UserLimiter *ratelimit.KeyedLimiter
	Logger      *logger.Logger
	Metrics     *metrics.Metrics
}

// NewRouter creates a router.
func NewRouter(cfg RouterConfig) *Router {
	locker := cfg.Locker
	if locker == nil {
		locker = session.NewLocker()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.New("info")
	}
	if cfg.Chain.Fallback == nil {
		cfg.Chain.Fallback = NewGenerationHandler(GenerationConfig{Logger: log})
	}
	return &Router{
		chain:       cfg.Chain,
		handle:      applyMiddleware(invoke, RecoveryMiddleware(log), LoggingMiddleware(log)),
		sessions:    cfg.Sessions,
		locker:      locker,
		userLimiter: cfg.UserLimiter,
		logger:      log,
		metrics:     cfg.Metrics,
	}
}

// Chain returns the configured rule chain.
func (r *Router) Chain() Chain { return r.chain }

// normalize splits input into its trimmed and matching forms.
func normalize(input string) (raw, clean string, err error) {
	raw = strings.TrimSpace(input)
	if raw == "" {
		return "", "", domerrors.ErrEmptyInput
	}
	return raw, keywords.Normalize(raw), nil
}

// GetResponse routes one message from userID. It always returns a response.
func (r *Router) GetResponse(ctx context.Context, input, userID string) Response {
	start := time.Now()
	if userID == "" {
		userID = DefaultUserID
	}
	ctx = ctxutil.WithUserID(ctx, userID)

	resp := r.route(ctx, input, userID)

	r.metrics.RecordChat(resp.Rule, time.Since(start).Seconds())
	if topicRules[resp.Rule] {
		r.metrics.RecordTopic(string(keywords.ClassifyTopic(input)))
	}
	return resp
}

func (r *Router) route(ctx context.Context, input, userID string) Response {
	raw, clean, err := normalize(input)
	if domerrors.IsEmptyInput(err) {
		return Response{Text: EmptyInputText, Suggestions: []Suggestion{}, Rule: RuleEmpty}
	}

	if r.userLimiter != nil && !r.userLimiter.Allow(userID) {
		r.logger.WarnContext(ctx, "User rate limit exceeded")
		return Response{Text: RateLimitedText, Suggestions: []Suggestion{}, Rule: RuleRateLimited}
	}

	m := &Message{Raw: raw, Clean: clean, UserID: userID}

	for _, h := range r.chain.PreSession {
		if h.CanHandle(ctx, m) {
			return r.respond(ctx, h, m)
		}
	}

	unlock := r.locker.Lock(userID)
	defer unlock()

	persisted := true
	m.Session, err = r.loadSession(ctx, userID)
	if err != nil {
		r.logger.WithError(err).WarnContext(ctx, "Session load failed, continuing without persistence")
		m.Session = session.New(userID)
		persisted = false
	}

	resp, ok := r.dispatch(ctx, m)
	if !ok {
		resp = r.respond(ctx, r.chain.Fallback, m)
	}

	if persisted && m.Dirty() {
		sctx, cancel := context.WithTimeout(ctxutil.PreserveTracing(ctx), config.SessionStoreOp)
		defer cancel()
		if err := r.sessions.Update(sctx, m.Session, m.replay); err != nil {
			r.logger.WithError(err).WarnContext(ctx, "Session update failed")
		}
	}
	return resp
}

func (r *Router) loadSession(ctx context.Context, userID string) (*session.Session, error) {
	sctx, cancel := context.WithTimeout(ctxutil.PreserveTracing(ctx), config.SessionStoreOp)
	defer cancel()
	return r.sessions.GetOrCreate(sctx, userID)
}

func (r *Router) dispatch(ctx context.Context, m *Message) (Response, bool) {
	for _, h := range r.chain.Session {
		if h.CanHandle(ctx, m) {
			return r.respond(ctx, h, m), true
		}
	}
	return Response{}, false
}

func (r *Router) respond(ctx context.Context, h Handler, m *Message) Response {
	resp := r.handle(ctx, h, m)
	if resp.Rule == "" {
		resp.Rule = h.Name()
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []Suggestion{}
	}
	return resp
}
