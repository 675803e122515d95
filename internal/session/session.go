// Package session keeps per-user conversation state: the detected name,
// bounded chat history and the off-topic insistence flag. Stores are
// swappable (in-process LRU or Redis) and updates are compare-and-swap on
// Version.
package session

import (
	"context"
	"errors"
	"slices"
	"time"
)

// Role identifies who produced a history turn.
type Role string

const (
	RoleUser Role = "USER"
	RoleBot  Role = "BOT"
)

// Turn is one history entry.
type Turn struct {
	Role    Role   `json:"role"`
	Message string `json:"message"`
}

// Session is the state kept for one user.
type Session struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name,omitempty"`
	History   []Turn    `json:"history"`
	Insisted  bool      `json:"insisted"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty session for userID. Stores assign Version and
// timestamps on Create.
func New(userID string) *Session {
	return &Session{UserID: userID, History: []Turn{}}
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.History = slices.Clone(s.History)
	if c.History == nil {
		c.History = []Turn{}
	}
	return &c
}

// HasName reports whether a name has been captured.
func (s *Session) HasName() bool {
	return s.Name != ""
}

// AppendTurns appends turns and drops the oldest entries so that at most
// limit remain. A limit <= 0 keeps everything.
func (s *Session) AppendTurns(limit int, turns ...Turn) {
	s.History = append(s.History, turns...)
	if limit > 0 && len(s.History) > limit {
		s.History = slices.Clone(s.History[len(s.History)-limit:])
	}
}

// ErrExists is returned by Store.Create when the user already has a session.
var ErrExists = errors.New("session already exists")

// Store persists sessions.
//
// Get returns errors.ErrNotFound (internal/errors) for unknown users.
// Create sets Version to 1 and fails with ErrExists on collision.
// Update succeeds only when the stored Version equals s.Version; it then
// increments Version on both copies. A mismatch yields ErrVersionConflict.
type Store interface {
	Get(ctx context.Context, userID string) (*Session, error)
	Create(ctx context.Context, s *Session) error
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, userID string) error
	Len(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Close() error
}
