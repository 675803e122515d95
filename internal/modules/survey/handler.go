// Package survey implements the goodbye flow: the exit prompt that offers
// the feedback survey and the two follow-up answers.
package survey

import (
	"context"
	"fmt"

	"github.com/bolabot/bolabot-go/internal/bot"
	"github.com/bolabot/bolabot-go/internal/keywords"
)

// Rule names.
const (
	RuleExit     = "exit"
	RuleFollowUp = "survey"
)

const (
	exitText     = "Before you go, would you mind filling out a quick survey to help us improve BolaBot?"
	acceptFormat = "Great! Please click the link below to fill out the survey:<br><a href='%s' target='_blank'>Take the Survey</a>"
	declineText  = "No worries at all! Thanks for chatting with me today."
)

var followUpSuggestions = []string{"Start over", "What can you do?"}

// ExitHandler asks departing users to take the survey.
type ExitHandler struct {
	matcher   *keywords.Matcher
	surveyURL string
}

// NewExitHandler creates the exit rule. surveyURL is attached to the
// "Yes" suggestion and the response's survey link.
func NewExitHandler(matcher *keywords.Matcher, surveyURL string) *ExitHandler {
	return &ExitHandler{matcher: matcher, surveyURL: surveyURL}
}

func (h *ExitHandler) Name() string { return RuleExit }

func (h *ExitHandler) CanHandle(_ context.Context, m *bot.Message) bool {
	return h.matcher.Match(keywords.CategoryExit, m.Clean)
}

func (h *ExitHandler) Handle(context.Context, *bot.Message) bot.Response {
	return bot.Response{
		Text: exitText,
		Suggestions: []bot.Suggestion{
			{Text: "Yes, take me to the survey", Link: h.surveyURL},
			{Text: "No thanks"},
		},
		SurveyLink: h.surveyURL,
	}
}

// FollowUpHandler answers the two exit suggestions.
type FollowUpHandler struct {
	matcher *keywords.Matcher
	formURL string
}

// NewFollowUpHandler creates the survey answer rule. formURL is the link
// embedded in the acceptance text.
func NewFollowUpHandler(matcher *keywords.Matcher, formURL string) *FollowUpHandler {
	return &FollowUpHandler{matcher: matcher, formURL: formURL}
}

func (h *FollowUpHandler) Name() string { return RuleFollowUp }

func (h *FollowUpHandler) CanHandle(_ context.Context, m *bot.Message) bool {
	return h.matcher.Match(keywords.CategorySurveyAccept, m.Clean) ||
		h.matcher.Match(keywords.CategorySurveyDecline, m.Clean)
}

func (h *FollowUpHandler) Handle(_ context.Context, m *bot.Message) bot.Response {
	text := declineText
	if h.matcher.Match(keywords.CategorySurveyAccept, m.Clean) {
		text = fmt.Sprintf(acceptFormat, h.formURL)
	}
	return bot.Response{Text: text, Suggestions: bot.Suggest(followUpSuggestions...)}
}
