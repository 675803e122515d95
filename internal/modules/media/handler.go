// Package media implements the catalog-backed rules: keyword images,
// embedded videos and the prompt for an unspecific video request.
package media

import (
	"context"

	"github.com/bolabot/bolabot-go/internal/bot"
	"github.com/bolabot/bolabot-go/internal/catalog"
	"github.com/bolabot/bolabot-go/internal/keywords"
)

// Rule names.
const (
	RuleImage       = "image"
	RuleVideo       = "video"
	RuleVideoPrompt = "video_prompt"
)

const videoPromptText = "Would you like a tutorial, match highlight, or history video?"

var (
	imageSuggestions       = []string{"Show a spike image", "How do players serve?", "Rules of the game"}
	videoSuggestions       = []string{"Show more videos", "Explain the technique", "Show an image"}
	videoPromptSuggestions = []string{"How to play video", "History of Takraw", "Malaysia vs Thailand"}
)

// ImageHandler shows a catalog image for a keyword, or the generic image
// when the user asks for a picture without naming one.
type ImageHandler struct {
	catalog *catalog.Catalog
	matcher *keywords.Matcher
}

func NewImageHandler(c *catalog.Catalog, matcher *keywords.Matcher) *ImageHandler {
	return &ImageHandler{catalog: c, matcher: matcher}
}

func (h *ImageHandler) Name() string { return RuleImage }

func (h *ImageHandler) CanHandle(_ context.Context, m *bot.Message) bool {
	if _, ok := h.catalog.LookupImage(m.Clean); ok {
		return true
	}
	return h.matcher.Match(keywords.CategoryImageRequest, m.Clean)
}

func (h *ImageHandler) Handle(_ context.Context, m *bot.Message) bot.Response {
	img, ok := h.catalog.LookupImage(m.Clean)
	if !ok {
		img = h.catalog.Generic
	}
	return bot.Response{
		Text:        img.Caption,
		Image:       img.URL,
		Suggestions: bot.Suggest(imageSuggestions...),
	}
}

// VideoHandler embeds the first catalog video whose trigger matches.
type VideoHandler struct {
	catalog *catalog.Catalog
}

func NewVideoHandler(c *catalog.Catalog) *VideoHandler {
	return &VideoHandler{catalog: c}
}

func (h *VideoHandler) Name() string { return RuleVideo }

func (h *VideoHandler) CanHandle(_ context.Context, m *bot.Message) bool {
	_, ok := h.catalog.LookupVideo(m.Clean)
	return ok
}

func (h *VideoHandler) Handle(_ context.Context, m *bot.Message) bot.Response {
	v, _ := h.catalog.LookupVideo(m.Clean)
	return bot.Response{
		Text:        v.Reply,
		IFrame:      v.IFrame(),
		Suggestions: bot.Suggest(videoSuggestions...),
	}
}

// VideoPromptHandler asks which kind of video the user wants.
type VideoPromptHandler struct {
	matcher *keywords.Matcher
}

func NewVideoPromptHandler(matcher *keywords.Matcher) *VideoPromptHandler {
	return &VideoPromptHandler{matcher: matcher}
}

func (h *VideoPromptHandler) Name() string { return RuleVideoPrompt }

func (h *VideoPromptHandler) CanHandle(_ context.Context, m *bot.Message) bool {
	return h.matcher.Match(keywords.CategoryVideo, m.Clean)
}

func (h *VideoPromptHandler) Handle(context.Context, *bot.Message) bot.Response {
	return bot.Response{Text: videoPromptText, Suggestions: bot.Suggest(videoPromptSuggestions...)}
}
