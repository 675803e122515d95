package config

import (
	"errors"
	"fmt"
	"time"
)

// Survey links used by the exit flow. The form URL is the one embedded in
// the "Take the Survey" anchor; the survey URL is offered as the button link.
const (
	DefaultSurveyURL     = "https://your-survey-link.com"
	DefaultSurveyFormURL = "https://docs.google.com/forms/d/e/1FAIpQLSdBgUQxuZi6AKn4md1vvYQGZf33mGzP85eJpAuvxa29ImiPGA/viewform?usp=sharing&ouid=116108412332228221224"
)

// BotConfig holds the conversation tunables.
type BotConfig struct {
	// Generation
	GenerationModel       string
	GenerationTemperature float64
	GenerationTimeout     time.Duration
	HistoryTurns          int // turns kept per session; a USER+BOT exchange is two turns

	// Survey
	SurveyURL     string
	SurveyFormURL string

	// Rate limits (token bucket)
	UserRateBurst  float64 // burst per user
	UserRateRefill float64 // tokens per second
	LLMRateBurst   float64 // generation burst per user
	LLMRateRefill  float64 // generation tokens per hour
	LLMRateDaily   int     // generation calls per user per day, 0 disables

	// Location for the time rule; nil means server local time.
	Location *time.Location

	// LINE reply constraints
	MaxMessagesPerReply int
	MaxMessageLength    int
}

// DefaultBotConfig returns default configuration values.
func DefaultBotConfig() BotConfig {
	return BotConfig{
		GenerationModel:       "command-r",
		GenerationTemperature: 0.5,
		GenerationTimeout:     GenerationCall,
		HistoryTurns:          20,

		SurveyURL:     DefaultSurveyURL,
		SurveyFormURL: DefaultSurveyFormURL,

		UserRateBurst:  15,
		UserRateRefill: 0.5,
		LLMRateBurst:   30,
		LLMRateRefill:  60,
		LLMRateDaily:   300,

		MaxMessagesPerReply: 5,    // LINE API limit
		MaxMessageLength:    5000, // LINE text message limit
	}
}

// Validate checks if the configuration is valid.
func (c *BotConfig) Validate() error {
	var errs []error
	if c.GenerationModel == "" {
		errs = append(errs, errors.New("generation model is required"))
	}
	if c.GenerationTemperature < 0 || c.GenerationTemperature > 2 {
		errs = append(errs, fmt.Errorf("generation temperature must be within [0, 2], got %v", c.GenerationTemperature))
	}
	if c.GenerationTimeout <= 0 {
		errs = append(errs, fmt.Errorf("generation timeout must be positive, got %v", c.GenerationTimeout))
	}
	if c.HistoryTurns < 2 {
		errs = append(errs, fmt.Errorf("history turns must hold at least one exchange, got %d", c.HistoryTurns))
	}
	if c.UserRateBurst <= 0 || c.UserRateRefill <= 0 {
		errs = append(errs, fmt.Errorf("user rate limit must be positive, got burst=%v refill=%v", c.UserRateBurst, c.UserRateRefill))
	}
	if c.LLMRateBurst <= 0 || c.LLMRateRefill <= 0 {
		errs = append(errs, fmt.Errorf("LLM rate limit must be positive, got burst=%v refill=%v", c.LLMRateBurst, c.LLMRateRefill))
	}
	if c.LLMRateDaily < 0 {
		errs = append(errs, fmt.Errorf("LLM daily limit cannot be negative, got %d", c.LLMRateDaily))
	}
	if c.MaxMessagesPerReply < 1 || c.MaxMessagesPerReply > 5 {
		errs = append(errs, fmt.Errorf("max messages per reply must be 1-5 (LINE API limit), got %d", c.MaxMessagesPerReply))
	}
	return errors.Join(errs...)
}
