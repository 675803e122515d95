package session

import (
	"fmt"

	"github.com/bolabot/bolabot-go/internal/config"
)

// NewStore builds the store selected by cfg.SessionBackend.
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		return NewMemoryStore(cfg.SessionMaxSessions, cfg.SessionTTL), nil
	case config.SessionBackendRedis:
		return NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
