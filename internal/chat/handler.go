// Package chat serves the web chat endpoint.
package chat

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bolabot/bolabot-go/internal/bot"
	"github.com/bolabot/bolabot-go/internal/ctxutil"
	"github.com/bolabot/bolabot-go/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity sources, in resolution order after the request body.
const (
	UserIDHeader = "X-User-ID"
	UserIDCookie = "bolabot_uid"
)

const cookieMaxAge = int(30 * 24 * time.Hour / time.Second)

// maxUserIDLength bounds caller-chosen IDs, which become session keys.
const maxUserIDLength = 128

// Responder answers one message. *bot.Router implements it.
type Responder interface {
	GetResponse(ctx context.Context, input, userID string) bot.Response
}

// Request is the POST /chat body.
type Request struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// Reply is the POST /chat response body.
type Reply struct {
	Reply bot.Response `json:"reply"`
}

// Handler serves POST /chat.
type Handler struct {
	responder    Responder
	logger       *logger.Logger
	secureCookie bool
}

// NewHandler creates the chat handler. secureCookie marks the identity
// cookie Secure, for deployments behind HTTPS.
func NewHandler(responder Responder, log *logger.Logger, secureCookie bool) *Handler {
	if log == nil {
		log = logger.New("info")
	}
	return &Handler{responder: responder, logger: log.WithModule("chat"), secureCookie: secureCookie}
}

// Handle answers one chat message.
func (h *Handler) Handle(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).DebugContext(c.Request.Context(), "Malformed chat request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := h.resolveUserID(c, req.UserID)
	ctx := ctxutil.WithChannel(c.Request.Context(), ctxutil.ChannelWeb)

	resp := h.responder.GetResponse(ctx, req.Message, userID)
	c.JSON(http.StatusOK, Reply{Reply: resp})
}

// resolveUserID picks the caller's identity: body, header, cookie, then a
// fresh ID remembered in the cookie.
func (h *Handler) resolveUserID(c *gin.Context, fromBody string) string {
	for _, id := range []string{fromBody, c.GetHeader(UserIDHeader)} {
		if id = cleanUserID(id); id != "" {
			return id
		}
	}
	if cookie, err := c.Cookie(UserIDCookie); err == nil {
		if id := cleanUserID(cookie); id != "" {
			return id
		}
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(UserIDCookie, id, cookieMaxAge, "/", "", h.secureCookie, true)
	return id
}

func cleanUserID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > maxUserIDLength {
		return ""
	}
	return id
}
