package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	domerrors "github.com/bolabot/bolabot-go/internal/errors"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore is an in-process Store bounded by size and TTL. The least
// recently used session is evicted when full.
type MemoryStore struct {
	mu    sync.Mutex // serializes compare-and-swap
	cache *expirable.LRU[string, *Session]
	now   func() time.Time
}

// NewMemoryStore creates a store holding at most maxSessions sessions, each
// expiring ttl after its last write.
func NewMemoryStore(maxSessions int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: expirable.NewLRU[string, *Session](maxSessions, nil, ttl),
		now:   time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, userID string) (*Session, error) {
	s, ok := m.cache.Get(userID)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", userID, domerrors.ErrNotFound)
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cache.Contains(s.UserID) {
		return ErrExists
	}
	now := m.now()
	s.CreatedAt = now
	s.UpdatedAt = now
	s.Version = 1
	m.cache.Add(s.UserID, s.Clone())
	return nil
}

func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.cache.Peek(s.UserID)
	if !ok {
		return fmt.Errorf("session %s: %w", s.UserID, domerrors.ErrNotFound)
	}
	if stored.Version != s.Version {
		return fmt.Errorf("session %s at v%d, have v%d: %w",
			s.UserID, stored.Version, s.Version, domerrors.ErrVersionConflict)
	}
	s.Version++
	s.UpdatedAt = m.now()
	m.cache.Add(s.UserID, s.Clone())
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, userID string) error {
	m.cache.Remove(userID)
	return nil
}

func (m *MemoryStore) Len(_ context.Context) (int, error) {
	return m.cache.Len(), nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error {
	m.cache.Purge()
	return nil
}
