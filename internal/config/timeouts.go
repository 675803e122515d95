package config

import "time"

// HTTP server timeouts
const (
	// HTTPRead bounds reading a request. Chat bodies are tiny JSON payloads.
	HTTPRead = 10 * time.Second

	// HTTPWrite must cover a full generation call plus serialization.
	HTTPWrite = 45 * time.Second

	// HTTPIdle is the keep-alive idle timeout.
	HTTPIdle = 120 * time.Second
)

// Conversation timeouts
const (
	// GenerationCall is the default deadline for one provider call.
	GenerationCall = 30 * time.Second

	// WebhookProcessing bounds handling of one LINE event after the 200 OK.
	// The LINE loading animation lasts up to 60s.
	WebhookProcessing = 60 * time.Second

	// SessionStoreOp bounds a single session store round trip.
	SessionStoreOp = 2 * time.Second
)

// Background job intervals
const (
	// MetricsUpdateInterval is how often the session gauge is refreshed.
	MetricsUpdateInterval = time.Minute

	// RateLimiterCleanupInterval is how often idle per-user limiters are dropped.
	RateLimiterCleanupInterval = 5 * time.Minute

	// ReadinessCheckTimeout bounds the /readyz dependency probe.
	ReadinessCheckTimeout = 3 * time.Second
)

// GracefulShutdown is the default time allowed for in-flight requests.
const GracefulShutdown = 30 * time.Second
