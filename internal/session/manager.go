package session

import (
	"context"
	"errors"
	"fmt"

	domerrors "github.com/bolabot/bolabot-go/internal/errors"
	"github.com/bolabot/bolabot-go/internal/metrics"
)

const defaultMaxRetries = 3

// Manager adds get-or-create and conflict retry on top of a Store.
type Manager struct {
	store        Store
	historyTurns int
	maxRetries   int
	metrics      *metrics.Metrics
}

// ManagerOptions configures a Manager. Zero values use defaults.
type ManagerOptions struct {
	HistoryTurns int              // history bound applied by AppendTurns callers
	MaxRetries   int              // conflict retries per Update
	Metrics      *metrics.Metrics // optional
}

// NewManager wraps store.
func NewManager(store Store, opts ManagerOptions) *Manager {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	return &Manager{
		store:        store,
		historyTurns: opts.HistoryTurns,
		maxRetries:   opts.MaxRetries,
		metrics:      opts.Metrics,
	}
}

// HistoryTurns returns the configured history bound.
func (m *Manager) HistoryTurns() int { return m.historyTurns }

// Store returns the underlying store.
func (m *Manager) Store() Store { return m.store }

// GetOrCreate loads the session for userID, creating an empty one on first
// contact. A concurrent creator on another instance wins and its session is
// returned.
func (m *Manager) GetOrCreate(ctx context.Context, userID string) (*Session, error) {
	s, err := m.store.Get(ctx, userID)
	if err == nil {
		return s, nil
	}
	if !domerrors.IsNotFound(err) {
		return nil, err
	}

	s = New(userID)
	err = m.store.Create(ctx, s)
	if errors.Is(err, ErrExists) {
		return m.store.Get(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Update persists s, whose fields were already changed by mutate. When the
// stored copy moved on in the meantime, the latest version is reloaded,
// mutate is applied to it again and the write is retried. On success s
// holds the persisted state.
func (m *Manager) Update(ctx context.Context, s *Session, mutate func(*Session)) error {
	cur := s
	for attempt := 0; ; attempt++ {
		err := m.store.Update(ctx, cur)
		if err == nil {
			if cur != s {
				*s = *cur
			}
			return nil
		}
		if !domerrors.IsVersionConflict(err) {
			return err
		}
		m.metrics.RecordSessionConflict()
		if attempt >= m.maxRetries {
			return fmt.Errorf("update session %s after %d retries: %w", s.UserID, attempt, err)
		}

		fresh, err := m.store.Get(ctx, s.UserID)
		if err != nil {
			return fmt.Errorf("reload session %s: %w", s.UserID, err)
		}
		if mutate != nil {
			mutate(fresh)
		}
		cur = fresh
	}
}

// Delete removes the session for userID.
func (m *Manager) Delete(ctx context.Context, userID string) error {
	return m.store.Delete(ctx, userID)
}

// Len returns the number of stored sessions.
func (m *Manager) Len(ctx context.Context) (int, error) {
	return m.store.Len(ctx)
}
