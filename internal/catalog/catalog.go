// Package catalog holds the media the bot can point users at: keyword
// images served from the static directory and embedded YouTube videos.
// Lookups are first-match in slice order.
package catalog

import (
	"fmt"
	"html"
	"strings"
)

// ImageEntry maps a keyword to a static image.
type ImageEntry struct {
	Keyword string `yaml:"keyword"`
	URL     string `yaml:"url"`
	Caption string `yaml:"caption"`
}

// VideoEntry maps trigger phrases to an embedded video.
type VideoEntry struct {
	ID       string   `yaml:"id"`
	Triggers []string `yaml:"triggers"`
	Reply    string   `yaml:"reply"`
	EmbedURL string   `yaml:"embed_url"`
	Title    string   `yaml:"title"`
}

const iframeFormat = `<div class="video-container"><iframe src="%s" title="%s" ` +
	`allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" ` +
	`allowfullscreen></iframe></div>`

// IFrame renders the embed markup for the video.
func (v VideoEntry) IFrame() string {
	return fmt.Sprintf(iframeFormat, html.EscapeString(v.EmbedURL), html.EscapeString(v.Title))
}

// Catalog is the ordered media configuration.
type Catalog struct {
	Images  []ImageEntry `yaml:"images"`
	Generic ImageEntry   `yaml:"generic_image"`
	Videos  []VideoEntry `yaml:"videos"`
}

// LookupImage returns the first image whose keyword occurs in input.
// Input is expected to be normalized already.
func (c *Catalog) LookupImage(input string) (ImageEntry, bool) {
	for _, img := range c.Images {
		if img.Keyword != "" && strings.Contains(input, img.Keyword) {
			return img, true
		}
	}
	return ImageEntry{}, false
}

// LookupVideo returns the first video with a trigger contained in input.
func (c *Catalog) LookupVideo(input string) (VideoEntry, bool) {
	for _, v := range c.Videos {
		for _, trig := range v.Triggers {
			if trig != "" && strings.Contains(input, trig) {
				return v, true
			}
		}
	}
	return VideoEntry{}, false
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Images: []ImageEntry{
			{Keyword: "serve", URL: "/static/images/serve.jpg", Caption: "Here's how a Sepak Takraw serve looks like."},
			{Keyword: "team", URL: "/static/images/team.jpg", Caption: "A typical Sepak Takraw team formation."},
			{Keyword: "spike", URL: "/static/images/spike.jpg", Caption: "A powerful Sepak Takraw spike in action!"},
			{Keyword: "court", URL: "/static/images/court.jpg", Caption: "This is what a Sepak Takraw court looks like."},
			{Keyword: "ball", URL: "/static/images/ball.jpg", Caption: "The official Sepak Takraw ball."},
		},
		Generic: ImageEntry{
			URL:     "/static/images/general.jpg",
			Caption: "Here’s an image related to Sepak Takraw.",
		},
		Videos: []VideoEntry{
			{
				ID:       "how_to_play",
				Triggers: []string{"how to play", "play takraw", "rules", "learn takraw"},
				Reply:    "Here's a great video on how to play Sepak Takraw:",
				EmbedURL: "https://www.youtube.com/embed/N-ZInLq317c",
				Title:    "How to Play Sepak Takraw",
			},
			{
				ID:       "history",
				Triggers: []string{"history", "origin", "where did takraw start", "history of takraw"},
				Reply:    "Here's a video on the history of Sepak Takraw:",
				EmbedURL: "https://www.youtube.com/embed/In2eUbpb8kg",
				Title:    "History of Sepak Takraw",
			},
			{
				ID:       "classic",
				Triggers: []string{"classic", "sea games", "old takraw", "vintage", "highlight"},
				Reply:    "Check out this classic Sepak Takraw match footage:",
				EmbedURL: "https://www.youtube.com/embed/bQ1XvE1sp0Q",
				Title:    "Classic Sepak Takraw Footage",
			},
			{
				ID:       "recent_match",
				Triggers: []string{"latest match", "recent game", "malaysia vs thailand", "finals"},
				Reply:    "Watch this recent high-stakes match between Malaysia and Thailand:",
				EmbedURL: "https://www.youtube.com/embed/pewgkEy1fT0",
				Title:    "Thailand vs Malaysia Final",
			},
			{
				ID:       "ankle_recovery",
				Triggers: []string{"ankle", "sprain", "treatment"},
				Reply:    "Here’s a helpful video on treating ankle sprains at home:",
				EmbedURL: "https://www.youtube.com/embed/_6hjIWhB8Yc",
				Title:    "[RECOVER FASTER!] How To Treat Your Ankle Sprain At Home!",
			},
		},
	}
}
