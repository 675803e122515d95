// Package webhook receives LINE Messaging API events and answers text
// messages through the bot router.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bolabot/bolabot-go/internal/bot"
	"github.com/bolabot/bolabot-go/internal/config"
	"github.com/bolabot/bolabot-go/internal/ctxutil"
	"github.com/bolabot/bolabot-go/internal/lineutil"
	"github.com/bolabot/bolabot-go/internal/logger"
	"github.com/bolabot/bolabot-go/internal/metrics"
	"github.com/bolabot/bolabot-go/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

// followGreeting is routed on behalf of a user who just added the bot.
const followGreeting = "hello"

// Responder answers one message. *bot.Router implements it.
type Responder interface {
	GetResponse(ctx context.Context, input, userID string) bot.Response
}

// Client is the subset of the LINE Messaging API the handler calls.
type Client interface {
	ReplyMessage(req *messaging_api.ReplyMessageRequest) (*messaging_api.ReplyMessageResponse, error)
	ShowLoadingAnimation(req *messaging_api.ShowLoadingAnimationRequest) (*map[string]interface{}, error)
}

// Handler handles LINE webhook events.
type Handler struct {
	channelSecret string
	client        Client
	responder     Responder
	metrics       *metrics.Metrics
	logger        *logger.Logger
	rateLimiter   *ratelimit.Limiter // LINE API calls across all users
	render        lineutil.RenderOptions
	wg            sync.WaitGroup
}

// HandlerConfig holds configuration for creating a new Handler.
type HandlerConfig struct {
	ChannelSecret string
	Client        Client
	Responder     Responder
	Metrics       *metrics.Metrics
	Logger        *logger.Logger

	PublicBaseURL       string
	MaxMessagesPerReply int
	SenderName          string
	SenderIconURL       string

	// GlobalRateRPS bounds reply calls per second; 0 uses 100.
	GlobalRateRPS float64
}

// NewClient creates a Messaging API client for token.
func NewClient(token string) (*messaging_api.MessagingApiAPI, error) {
	client, err := messaging_api.NewMessagingApiAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create messaging API client: %w", err)
	}
	return client, nil
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.ChannelSecret == "" {
		return nil, errors.New("channel secret is required")
	}
	if cfg.Client == nil || cfg.Responder == nil {
		return nil, errors.New("client and responder are required")
	}
	log := cfg.Logger
	if log == nil {
		log = logger.New("info")
	}
	rps := cfg.GlobalRateRPS
	if rps <= 0 {
		rps = 100
	}
	return &Handler{
		channelSecret: cfg.ChannelSecret,
		client:        cfg.Client,
		responder:     cfg.Responder,
		metrics:       cfg.Metrics,
		logger:        log.WithModule("webhook"),
		rateLimiter:   ratelimit.New(rps, rps),
		render: lineutil.RenderOptions{
			PublicBaseURL: cfg.PublicBaseURL,
			Sender:        lineutil.GetSender(cfg.SenderName, cfg.SenderIconURL),
			MaxMessages:   cfg.MaxMessagesPerReply,
		},
	}, nil
}

// Handle is the Gin handler for the webhook endpoint. It acknowledges the
// request immediately and answers the events in the background.
func (h *Handler) Handle(c *gin.Context) {
	cb, err := webhook.ParseRequest(h.channelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.logger.WarnContext(c.Request.Context(), "Invalid webhook signature")
			c.Status(http.StatusBadRequest)
		} else {
			h.logger.WithError(err).ErrorContext(c.Request.Context(), "Failed to parse webhook request")
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)

	events := make([]webhook.EventInterface, len(cb.Events))
	copy(events, cb.Events)
	base := ctxutil.PreserveTracing(c.Request.Context())

	h.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				h.logger.WithField("panic", r).Error("Panic in async event processing")
			}
		}()
		for _, event := range events {
			h.processEvent(base, event)
		}
	})
}

// processEvent answers one event.
func (h *Handler) processEvent(base context.Context, event webhook.EventInterface) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctxutil.WithChannel(base, ctxutil.ChannelLINE), config.WebhookProcessing)
	defer cancel()

	meta := eventMetaOf(event)
	log := h.logger
	if meta.id != "" {
		ctx = ctxutil.WithRequestID(ctx, meta.id)
		log = log.WithRequestID(meta.id)
	}
	if meta.redelivery {
		log = log.WithField("is_redelivery", true)
	}

	eventType, input, ok := h.extractInput(event)
	if !ok {
		log.WithField("event_type", fmt.Sprintf("%T", event)).Debug("Ignoring event")
		h.metrics.RecordWebhook(eventType, "ignored", time.Since(start).Seconds())
		return
	}
	if meta.replyToken == "" {
		log.Debug("Empty reply token, skipping reply")
		h.metrics.RecordWebhook(eventType, "ignored", time.Since(start).Seconds())
		return
	}

	userID := meta.userID
	if userID == "" {
		userID = meta.chatID
	}
	ctx = ctxutil.WithUserID(ctx, userID)

	if meta.chatID != "" && meta.isUser {
		h.showLoading(ctx, meta.chatID)
	}

	resp := h.responder.GetResponse(ctx, input, userID)
	messages := lineutil.Render(resp, h.render)
	if len(messages) == 0 {
		h.metrics.RecordWebhook(eventType, "empty", time.Since(start).Seconds())
		return
	}

	if err := h.waitForToken(ctx); err != nil {
		log.WithError(err).Warn("Gave up waiting for LINE API quota")
		h.metrics.RecordWebhook(eventType, "reply_error", time.Since(start).Seconds())
		return
	}

	status := "success"
	if _, err := h.client.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: meta.replyToken,
		Messages:   messages,
	}); err != nil {
		status = "reply_error"
		if strings.Contains(err.Error(), "Invalid reply token") {
			log.WithError(err).Debug("Reply token already used or invalid")
		} else {
			log.WithError(err).ErrorContext(ctx, "Failed to send reply")
		}
	}
	h.metrics.RecordWebhook(eventType, status, time.Since(start).Seconds())
	log.WithField("event_type", eventType).
		WithField("rule", resp.Rule).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		InfoContext(ctx, "Event processed")
}

// extractInput returns the text to route for supported events. Group and
// room messages are answered only when they mention the bot.
func (h *Handler) extractInput(event webhook.EventInterface) (eventType, input string, ok bool) {
	switch e := event.(type) {
	case webhook.MessageEvent:
		text, isText := e.Message.(webhook.TextMessageContent)
		if !isText {
			return "message", "", false
		}
		if _, direct := e.Source.(webhook.UserSource); direct {
			return "message", text.Text, true
		}
		if !isBotMentioned(text) {
			return "message", "", false
		}
		return "message", removeBotMentions(text.Text, text.Mention), true
	case webhook.FollowEvent:
		return "follow", followGreeting, true
	default:
		return "other", "", false
	}
}

func (h *Handler) showLoading(ctx context.Context, chatID string) {
	// LINE accepts 5-60 seconds in steps of 5.
	req := &messaging_api.ShowLoadingAnimationRequest{ChatId: chatID, LoadingSeconds: 20}
	if _, err := h.client.ShowLoadingAnimation(req); err != nil {
		h.logger.WithError(err).DebugContext(ctx, "Failed to show loading animation")
	}
}

// waitForToken blocks until the global limiter grants a call or ctx ends.
func (h *Handler) waitForToken(ctx context.Context) error {
	if h.rateLimiter.Allow() {
		return nil
	}
	h.metrics.RecordRateLimiterDrop("global")
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if h.rateLimiter.Allow() {
				return nil
			}
		}
	}
}

// Shutdown waits for all async event processing to complete.
// It returns an error if the context is canceled before completion.
func (h *Handler) Shutdown(ctx context.Context) error {
	c := make(chan struct{})
	go func() {
		defer close(c)
		h.wg.Wait()
	}()

	select {
	case <-c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
