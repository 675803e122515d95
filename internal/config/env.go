package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "BOLABOT_PORT"
	EnvLogLevel        = "BOLABOT_LOG_LEVEL"
	EnvShutdownTimeout = "BOLABOT_SHUTDOWN_TIMEOUT"
	EnvServerName      = "BOLABOT_SERVER_NAME"
	EnvInstanceID      = "BOLABOT_INSTANCE_ID"
	EnvStaticDir       = "BOLABOT_STATIC_DIR"
	EnvPublicBaseURL   = "BOLABOT_PUBLIC_BASE_URL"
	EnvCatalogFile     = "BOLABOT_CATALOG_FILE"
	EnvTimezone        = "BOLABOT_TIMEZONE"

	// Conversation
	EnvSurveyURL         = "BOLABOT_SURVEY_URL"
	EnvSurveyFormURL     = "BOLABOT_SURVEY_FORM_URL"
	EnvGenerationModel   = "BOLABOT_GENERATION_MODEL"
	EnvGenerationTemp    = "BOLABOT_GENERATION_TEMPERATURE"
	EnvGenerationTimeout = "BOLABOT_GENERATION_TIMEOUT"
	EnvHistoryTurns      = "BOLABOT_HISTORY_TURNS"

	// Sessions
	EnvSessionBackend     = "BOLABOT_SESSION_BACKEND"
	EnvSessionTTL         = "BOLABOT_SESSION_TTL"
	EnvSessionMaxSessions = "BOLABOT_SESSION_MAX"
	EnvRedisURL           = "BOLABOT_REDIS_URL"

	// Rate Limits
	EnvUserRateBurst  = "BOLABOT_USER_RATE_BURST"
	EnvUserRateRefill = "BOLABOT_USER_RATE_REFILL"
	EnvLLMRateBurst   = "BOLABOT_LLM_RATE_BURST"
	EnvLLMRateRefill  = "BOLABOT_LLM_RATE_REFILL"
	EnvLLMRateDaily   = "BOLABOT_LLM_RATE_DAILY"

	// Generation providers
	EnvLLMProviders   = "BOLABOT_LLM_PROVIDERS"
	EnvCohereAPIKey   = "BOLABOT_COHERE_API_KEY"
	EnvGroqAPIKey     = "BOLABOT_GROQ_API_KEY"
	EnvCerebrasAPIKey = "BOLABOT_CEREBRAS_API_KEY"
	EnvGeminiAPIKey   = "BOLABOT_GEMINI_API_KEY"
	EnvGroqModel      = "BOLABOT_GROQ_MODEL"
	EnvCerebrasModel  = "BOLABOT_CEREBRAS_MODEL"
	EnvGeminiModel    = "BOLABOT_GEMINI_MODEL"

	// LINE channel (optional)
	EnvLineChannelAccessToken = "BOLABOT_LINE_CHANNEL_ACCESS_TOKEN"
	EnvLineChannelSecret      = "BOLABOT_LINE_CHANNEL_SECRET"

	// Sentry Feature
	EnvSentryDSN         = "BOLABOT_SENTRY_DSN"
	EnvSentryEnvironment = "BOLABOT_SENTRY_ENVIRONMENT"
	EnvSentryRelease     = "BOLABOT_SENTRY_RELEASE"
	EnvSentrySampleRate  = "BOLABOT_SENTRY_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken    = "BOLABOT_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "BOLABOT_BETTERSTACK_ENDPOINT"

	// Metrics Auth Feature
	EnvMetricsAuthEnabled = "BOLABOT_METRICS_AUTH_ENABLED"
	EnvMetricsUsername    = "BOLABOT_METRICS_USERNAME"
	EnvMetricsPassword    = "BOLABOT_METRICS_PASSWORD"
)
