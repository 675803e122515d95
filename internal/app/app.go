// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bolabot/bolabot-go/internal/bot"
	"github.com/bolabot/bolabot-go/internal/buildinfo"
	"github.com/bolabot/bolabot-go/internal/catalog"
	"github.com/bolabot/bolabot-go/internal/chat"
	"github.com/bolabot/bolabot-go/internal/config"
	"github.com/bolabot/bolabot-go/internal/ctxutil"
	"github.com/bolabot/bolabot-go/internal/genai"
	"github.com/bolabot/bolabot-go/internal/logger"
	"github.com/bolabot/bolabot-go/internal/metrics"
	"github.com/bolabot/bolabot-go/internal/modules"
	"github.com/bolabot/bolabot-go/internal/ratelimit"
	"github.com/bolabot/bolabot-go/internal/sentry"
	"github.com/bolabot/bolabot-go/internal/session"
	"github.com/bolabot/bolabot-go/internal/webhook"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg            *config.Config
	logger         *logger.Logger
	metrics        *metrics.Metrics
	registry       *prometheus.Registry
	store          session.Store
	sessions       *session.Manager
	generator      *genai.FallbackGenerator
	llmLimiter     *ratelimit.KeyedLimiter
	userLimiter    *ratelimit.KeyedLimiter
	router         *bot.Router
	webhookHandler *webhook.Handler // nil when LINE is not configured
	engine         *gin.Engine
	server         *http.Server
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log = log.WithField("service", cfg.ServerName)
	instanceID := cfg.InstanceID
	if instanceID == "" {
		instanceID, _ = os.Hostname()
	}
	if instanceID != "" {
		log = log.WithField("instance_id", instanceID)
	}

	// Package-level slog calls pick up context values through ContextHandler.
	slog.SetDefault(log.Logger)
	log.Info("Initializing application...")

	release := cfg.SentryRelease
	if release == "" {
		release = buildinfo.Version
	}
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     release,
		ServerName:  instanceID,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Warn("Sentry initialization failed")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	media, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	store, err := session.NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, config.ReadinessCheckTimeout)
	if err := store.Ping(pingCtx); err != nil {
		log.WithError(err).WithField("backend", cfg.SessionBackend).Warn("Session store not reachable yet")
	}
	cancel()
	sessions := session.NewManager(store, session.ManagerOptions{
		HistoryTurns: cfg.Bot.HistoryTurns,
		Metrics:      m,
	})
	log.WithField("backend", cfg.SessionBackend).WithField("ttl", cfg.SessionTTL).Info("Session store ready")

	generator := genai.CreateGenerator(ctx, cfg, m)
	if generator != nil {
		log.WithField("providers", generator.Len()).Info("Generation enabled")
	} else {
		log.Warn("No generation provider configured; open questions will get an apology")
	}

	llmLimiter := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		Name:          ratelimit.NameLLM,
		Burst:         cfg.Bot.LLMRateBurst,
		RefillRate:    cfg.Bot.LLMRateRefill / 3600.0,
		DailyLimit:    cfg.Bot.LLMRateDaily,
		CleanupPeriod: config.RateLimiterCleanupInterval,
		Metrics:       m,
	})
	userLimiter := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		Name:          ratelimit.NameUser,
		Burst:         cfg.Bot.UserRateBurst,
		RefillRate:    cfg.Bot.UserRateRefill,
		CleanupPeriod: config.RateLimiterCleanupInterval,
		Metrics:       m,
	})

	deps := modules.Deps{
		Catalog:    media,
		LLMLimiter: llmLimiter,
		Bot:        cfg.Bot,
		Logger:     log,
	}
	if generator != nil {
		deps.Generator = generator
	}
	router := bot.NewRouter(bot.RouterConfig{
		Chain:       modules.NewChain(deps),
		Sessions:    sessions,
		UserLimiter: userLimiter,
		Logger:      log,
		Metrics:     m,
	})

	app := &Application{
		cfg:         cfg,
		logger:      log,
		metrics:     m,
		registry:    registry,
		store:       store,
		sessions:    sessions,
		generator:   generator,
		llmLimiter:  llmLimiter,
		userLimiter: userLimiter,
		router:      router,
	}

	if cfg.LINEEnabled() {
		client, err := webhook.NewClient(cfg.LineChannelToken)
		if err != nil {
			return nil, fmt.Errorf("webhook: %w", err)
		}
		app.webhookHandler, err = webhook.NewHandler(webhook.HandlerConfig{
			ChannelSecret:       cfg.LineChannelSecret,
			Client:              client,
			Responder:           router,
			Metrics:             m,
			Logger:              log,
			PublicBaseURL:       cfg.PublicBaseURL,
			MaxMessagesPerReply: cfg.Bot.MaxMessagesPerReply,
			SenderName:          "BolaBot",
		})
		if err != nil {
			return nil, fmt.Errorf("webhook: %w", err)
		}
		log.Info("LINE webhook enabled")
	}

	app.engine = app.buildEngine()
	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.engine,
		ReadHeaderTimeout: config.HTTPRead,
		ReadTimeout:       config.HTTPRead,
		WriteTimeout:      config.HTTPWrite,
		IdleTimeout:       config.HTTPIdle,
	}

	log.Info("Initialization complete")
	return app, nil
}

func (a *Application) buildEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	if sentry.IsEnabled() {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(securityHeadersMiddleware())
	r.Use(loggingMiddleware(a.logger))

	r.GET("/", a.banner)
	r.GET("/livez", a.livenessCheck)
	r.HEAD("/livez", a.livenessCheck)
	r.GET("/readyz", a.readinessCheck)
	r.HEAD("/readyz", a.readinessCheck)
	r.GET("/metrics",
		metricsAuthMiddleware(a.cfg.MetricsAuthEnabled, a.cfg.MetricsUsername, a.cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
	r.Static("/static", a.cfg.StaticDir)
	r.POST("/chat", chat.NewHandler(a.router, a.logger, strings.HasPrefix(a.cfg.PublicBaseURL, "https://")).Handle)
	if a.webhookHandler != nil {
		r.POST("/webhook", a.webhookHandler.Handle)
	}
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (a *Application) Handler() http.Handler { return a.engine }

func (a *Application) banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": a.cfg.ServerName,
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.BuildDate,
		"chat":    "POST /chat",
	})
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func (a *Application) getFeatures() map[string]bool {
	return map[string]bool{
		"generation": a.generator != nil,
		"line":       a.webhookHandler != nil,
		"redis":      a.cfg.SessionBackend == config.SessionBackendRedis,
	}
}

func (a *Application) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), config.ReadinessCheckTimeout)
	defer cancel()

	if err := a.store.Ping(ctx); err != nil {
		a.logger.WithError(err).Warn("Readiness check failed: session store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "session store unavailable",
		})
		return
	}

	count, err := a.sessions.Len(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("Failed to count sessions")
		count = -1
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"features": a.getFeatures(),
		"sessions": count,
	})
}

// Run starts the HTTP server and background jobs and blocks until SIGINT
// or SIGTERM, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		a.updateGauges(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutdown requested")
		return a.shutdown()
	})

	err := g.Wait()
	a.closeResources()
	return err
}

// shutdown stops accepting requests and drains in-flight work.
func (a *Application) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}
	if a.webhookHandler != nil {
		a.logger.Info("Waiting for webhook events to complete...")
		if err := a.webhookHandler.Shutdown(ctx); err != nil {
			a.logger.WithError(err).Warn("Webhook handler shutdown timeout")
		}
	}
	return nil
}

// closeResources releases clients and flushes telemetry.
func (a *Application) closeResources() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Closing resources...")
	if err := a.generator.Close(); err != nil {
		a.logger.WithError(err).WithField("component", "generator").Error("Component close error")
	}
	if err := a.store.Close(); err != nil {
		a.logger.WithError(err).WithField("component", "session_store").Error("Component close error")
	}
	a.llmLimiter.Stop()
	a.userLimiter.Stop()
	sentry.Flush(2 * time.Second)

	a.logger.Info("Shutdown complete")
	if err := a.logger.Shutdown(ctx); err != nil {
		a.logger.WithError(err).Warn("Logger shutdown timed out")
	}
}

// updateGauges periodically records session and limiter sizes.
func (a *Application) updateGauges(ctx context.Context) {
	a.logger.Debug("Gauge job started")
	defer a.logger.Debug("Gauge job stopped")

	ticker := time.NewTicker(config.MetricsUpdateInterval)
	defer ticker.Stop()

	for {
		a.recordGauges(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (a *Application) recordGauges(ctx context.Context) {
	sctx, cancel := context.WithTimeout(ctx, config.SessionStoreOp)
	defer cancel()
	if n, err := a.sessions.Len(sctx); err == nil {
		a.metrics.SetSessionsActive(n)
	} else if ctx.Err() == nil {
		a.logger.WithError(err).Debug("Failed to count sessions")
	}
	a.metrics.SetRateLimiterUsers(ratelimit.NameUser, a.userLimiter.ActiveCount())
	a.metrics.SetRateLimiterUsers(ratelimit.NameLLM, a.llmLimiter.ActiveCount())
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'; img-src 'self'")
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests with status-based log levels:
// 5xx=Error, 4xx=Warn, 404=Debug, 3xx/2xx=Debug.
func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = c.GetHeader("X-Correlation-ID")
		}
		if requestID != "" {
			c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), requestID))
		}

		c.Next()

		status := c.Writer.Status()
		entry := log.WithField("http_method", c.Request.Method).
			WithField("http_path", path).
			WithField("http_status", status).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("client_ip", c.ClientIP())
		if requestID != "" {
			entry = entry.WithRequestID(requestID)
		}

		switch {
		case status >= 500:
			entry.Error("HTTP request failed")
		case status == http.StatusNotFound:
			entry.Debug("HTTP request not found")
		case status >= 400:
			entry.Warn("HTTP request rejected")
		default:
			entry.Debug("HTTP request completed")
		}
	}
}
