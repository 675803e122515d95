// Package modules assembles the rule handlers into the router's chain.
package modules

import (
	"github.com/bolabot/bolabot-go/internal/bot"
	"github.com/bolabot/bolabot-go/internal/catalog"
	"github.com/bolabot/bolabot-go/internal/config"
	"github.com/bolabot/bolabot-go/internal/genai"
	"github.com/bolabot/bolabot-go/internal/keywords"
	"github.com/bolabot/bolabot-go/internal/logger"
	"github.com/bolabot/bolabot-go/internal/modules/media"
	"github.com/bolabot/bolabot-go/internal/modules/smalltalk"
	"github.com/bolabot/bolabot-go/internal/modules/survey"
	"github.com/bolabot/bolabot-go/internal/modules/topic"
	"github.com/bolabot/bolabot-go/internal/nlp"
	"github.com/bolabot/bolabot-go/internal/ratelimit"
)

// Deps are the shared dependencies of the rule handlers. Nil fields get
// built-in defaults, except Generator and LLMLimiter which stay disabled.
type Deps struct {
	Table      keywords.Table
	Catalog    *catalog.Catalog
	Extractor  nlp.Extractor
	Generator  genai.Generator
	LLMLimiter *ratelimit.KeyedLimiter
	Bot        config.BotConfig
	Logger     *logger.Logger
}

// NewChain builds the rule chain in priority order. The first handler
// whose CanHandle returns true answers.
func NewChain(d Deps) bot.Chain {
	if d.Table == nil {
		d.Table = keywords.DefaultTable()
	}
	if d.Catalog == nil {
		d.Catalog = catalog.Default()
	}
	if d.Extractor == nil {
		d.Extractor = nlp.NewDefault()
	}
	if d.Logger == nil {
		d.Logger = logger.New("info")
	}

	matcher := keywords.NewMatcher(d.Table)
	domain := keywords.NewDefaultDomainMatcher(d.Table)

	return bot.Chain{
		PreSession: []bot.Handler{
			survey.NewExitHandler(matcher, d.Bot.SurveyURL),
			survey.NewFollowUpHandler(matcher, d.Bot.SurveyFormURL),
		},
		Session: []bot.Handler{
			smalltalk.NewGreetingHandler(matcher),
			smalltalk.NewTimeHandler(matcher, d.Bot.Location),
			smalltalk.NewNameHandler(d.Extractor, domain, d.Logger),
			smalltalk.NewIdentityHandler(matcher),
			media.NewImageHandler(d.Catalog, matcher),
			topic.NewHandler(domain),
			media.NewVideoHandler(d.Catalog),
			media.NewVideoPromptHandler(matcher),
		},
		Fallback: bot.NewGenerationHandler(bot.GenerationConfig{
			Generator:  d.Generator,
			LLMLimiter: d.LLMLimiter,
			Matcher:    matcher,
			Bot:        d.Bot,
			Logger:     d.Logger,
		}),
	}
}
