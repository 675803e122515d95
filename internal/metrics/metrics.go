// Package metrics defines the Prometheus collectors exported on /metrics.
// All Record* methods are safe to call on a nil *Metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec
	TopicTotal          *prometheus.CounterVec

	// Generation metrics
	LLMTotal         *prometheus.CounterVec
	LLMDuration      *prometheus.HistogramVec
	LLMFallbackTotal *prometheus.CounterVec

	// Session metrics
	SessionsActive        prometheus.Gauge
	SessionConflictsTotal prometheus.Counter

	// Webhook metrics
	WebhookDurationSeconds *prometheus.HistogramVec
	WebhookRequestsTotal   *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
	RateLimiterUsers   *prometheus.GaugeVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		ChatRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bolabot_chat_requests_total",
				Help: "Total chat messages answered, by the rule that answered them",
			},
			[]string{"rule"}, // rule: exit, greeting, video, generation, ...
		),

		ChatDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bolabot_chat_duration_seconds",
				Help:    "End-to-end time to answer a chat message, by rule",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"rule"},
		),

		TopicTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bolabot_topic_total",
				Help: "Sepak Takraw sub-topics seen in routed questions",
			},
			[]string{"topic"}, // topic: rules, history, equipment, ..., none
		),

		LLMTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bolabot_llm_total",
				Help: "Generation calls by provider and outcome",
			},
			[]string{"provider", "status"}, // status: success, timeout, rate_limit, ...
		),

		LLMDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bolabot_llm_duration_seconds",
				Help:    "Generation call latency by provider",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
			},
			[]string{"provider"},
		),

		LLMFallbackTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bolabot_llm_fallback_total",
				Help: "Switches from one generation provider to the next",
			},
			[]string{"from", "to"},
		),

		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bolabot_sessions_active",
			Help: "Conversation sessions currently held in memory",
		}),

		SessionConflictsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bolabot_session_conflicts_total",
			Help: "Session compare-and-swap updates that lost a race",
		}),

		WebhookDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bolabot_webhook_duration_seconds",
				Help:    "LINE webhook event processing duration by event type",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 15, 30},
			},
			[]string{"event_type"}, // event_type: message, follow, postback
		),

		WebhookRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bolabot_webhook_total",
				Help: "LINE webhook events by event type and status",
			},
			[]string{"event_type", "status"}, // status: success, error, ignored
		),

		RateLimiterDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bolabot_rate_limit_dropped_total",
				Help: "Messages rejected by a rate limiter",
			},
			[]string{"limiter"}, // limiter: user, llm
		),

		RateLimiterUsers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bolabot_rate_limiter_users",
				Help: "Users currently tracked by a keyed rate limiter",
			},
			[]string{"limiter"},
		),
	}
}

// RecordChat counts one answered message and its latency.
func (m *Metrics) RecordChat(rule string, duration float64) {
	if m == nil {
		return
	}
	m.ChatRequestsTotal.WithLabelValues(rule).Inc()
	m.ChatDurationSeconds.WithLabelValues(rule).Observe(duration)
}

// RecordTopic counts a classified sub-topic; empty topics are counted as "none".
func (m *Metrics) RecordTopic(topic string) {
	if m == nil {
		return
	}
	if topic == "" {
		topic = "none"
	}
	m.TopicTotal.WithLabelValues(topic).Inc()
}

// RecordLLM records a single provider call.
func (m *Metrics) RecordLLM(provider, status string, duration float64) {
	if m == nil {
		return
	}
	m.LLMTotal.WithLabelValues(provider, status).Inc()
	m.LLMDuration.WithLabelValues(provider).Observe(duration)
}

// RecordLLMFallback records a switch between providers.
func (m *Metrics) RecordLLMFallback(from, to string) {
	if m == nil {
		return
	}
	m.LLMFallbackTotal.WithLabelValues(from, to).Inc()
}

// SetSessionsActive sets the session gauge.
func (m *Metrics) SetSessionsActive(n int) {
	if m == nil {
		return
	}
	m.SessionsActive.Set(float64(n))
}

// RecordSessionConflict counts a lost CAS race.
func (m *Metrics) RecordSessionConflict() {
	if m == nil {
		return
	}
	m.SessionConflictsTotal.Inc()
}

// RecordWebhook records one LINE event.
func (m *Metrics) RecordWebhook(eventType, status string, duration float64) {
	if m == nil {
		return
	}
	m.WebhookRequestsTotal.WithLabelValues(eventType, status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(eventType).Observe(duration)
}

// RecordRateLimiterDrop counts a rejected message.
func (m *Metrics) RecordRateLimiterDrop(limiter string) {
	if m == nil {
		return
	}
	m.RateLimiterDropped.WithLabelValues(limiter).Inc()
}

// SetRateLimiterUsers sets how many users a limiter tracks.
func (m *Metrics) SetRateLimiterUsers(limiter string, n int) {
	if m == nil {
		return
	}
	m.RateLimiterUsers.WithLabelValues(limiter).Set(float64(n))
}
