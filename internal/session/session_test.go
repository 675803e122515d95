package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bolabot/bolabot-go/internal/config"
	domerrors "github.com/bolabot/bolabot-go/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendTurns_Bound(t *testing.T) {
	t.Parallel()
	s := New("u1")
	for i := range 15 {
		s.AppendTurns(6,
			Turn{Role: RoleUser, Message: fmt.Sprintf("q%d", i)},
			Turn{Role: RoleBot, Message: fmt.Sprintf("a%d", i)},
		)
		assert.LessOrEqual(t, len(s.History), 6)
	}
	require.Len(t, s.History, 6)
	assert.Equal(t, "q12", s.History[0].Message)
	assert.Equal(t, "a14", s.History[5].Message)
}

func TestAppendTurns_Unbounded(t *testing.T) {
	t.Parallel()
	s := New("u1")
	s.AppendTurns(0, Turn{Role: RoleUser, Message: "a"}, Turn{Role: RoleBot, Message: "b"})
	s.AppendTurns(0, Turn{Role: RoleUser, Message: "c"})
	assert.Len(t, s.History, 3)
}

func TestClone_Independent(t *testing.T) {
	t.Parallel()
	s := New("u1")
	s.AppendTurns(0, Turn{Role: RoleUser, Message: "hello"})
	c := s.Clone()
	c.History[0].Message = "changed"
	c.Name = "Ali"
	assert.Equal(t, "hello", s.History[0].Message)
	assert.False(t, s.HasName())
	assert.True(t, c.HasName())
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(10, time.Hour)

	_, err := store.Get(ctx, "u1")
	assert.True(t, domerrors.IsNotFound(err))

	s := New("u1")
	require.NoError(t, store.Create(ctx, s))
	assert.Equal(t, int64(1), s.Version)
	assert.ErrorIs(t, store.Create(ctx, New("u1")), ErrExists)

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	got.Name = "Siti"
	require.NoError(t, store.Update(ctx, got))
	assert.Equal(t, int64(2), got.Version)

	// s still carries version 1 and must lose.
	s.Insisted = true
	err = store.Update(ctx, s)
	assert.True(t, domerrors.IsVersionConflict(err))

	latest, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Siti", latest.Name)
	assert.False(t, latest.Insisted)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Delete(ctx, "u1"))
	_, err = store.Get(ctx, "u1")
	assert.True(t, domerrors.IsNotFound(err))
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(10, time.Hour)
	require.NoError(t, store.Create(ctx, New("u1")))

	a, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	a.AppendTurns(0, Turn{Role: RoleUser, Message: "unsaved"})

	b, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, b.History)
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(2, time.Hour)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Create(ctx, New(id)))
	}
	_, err := store.Get(ctx, "a")
	assert.True(t, domerrors.IsNotFound(err))
	_, err = store.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestLocker_SerializesPerKey(t *testing.T) {
	t.Parallel()
	l := NewLocker()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("same")
			defer unlock()
			mu.Lock()
			active++
			maxSeen = max(maxSeen, active)
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, l.Len(), "entries are released")
}

func TestLocker_DifferentKeysDoNotBlock(t *testing.T) {
	t.Parallel()
	l := NewLocker()
	unlockA := l.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := l.Lock("b")
		unlock()
		unlock() // second call is a no-op
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}
	assert.Equal(t, 1, l.Len())
}

// conflictOnce fails the first Update with a version conflict after another
// writer appended a turn.
type conflictOnce struct {
	*MemoryStore
	mu    sync.Mutex
	fired bool
}

func (c *conflictOnce) Update(ctx context.Context, s *Session) error {
	c.mu.Lock()
	fire := !c.fired
	c.fired = true
	c.mu.Unlock()
	if fire {
		other, err := c.MemoryStore.Get(ctx, s.UserID)
		if err != nil {
			return err
		}
		other.AppendTurns(0, Turn{Role: RoleUser, Message: "from elsewhere"})
		if err := c.MemoryStore.Update(ctx, other); err != nil {
			return err
		}
	}
	return c.MemoryStore.Update(ctx, s)
}

func TestManager_UpdateRetriesOnConflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := &conflictOnce{MemoryStore: NewMemoryStore(10, time.Hour)}
	m := NewManager(store, ManagerOptions{HistoryTurns: 20})

	s, err := m.GetOrCreate(ctx, "u1")
	require.NoError(t, err)

	mutate := func(s *Session) { s.Name = "Ali" }
	mutate(s)
	require.NoError(t, m.Update(ctx, s, mutate))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ali", got.Name)
	require.Len(t, got.History, 1, "the concurrent writer's turn survives")
	assert.Equal(t, got.Version, s.Version)
	assert.Equal(t, "Ali", s.Name)
}

func TestManager_GetOrCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewManager(NewMemoryStore(10, time.Hour), ManagerOptions{})

	a, err := m.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	b, err := m.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, a.CreatedAt, b.CreatedAt)
	assert.Equal(t, int64(1), b.Version)

	n, err := m.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewStore(t *testing.T) {
	t.Parallel()
	s, err := NewStore(&config.Config{SessionBackend: config.SessionBackendMemory, SessionMaxSessions: 5, SessionTTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = NewStore(&config.Config{SessionBackend: config.SessionBackendRedis, RedisURL: "not a url"})
	assert.Error(t, err)

	_, err = NewStore(&config.Config{SessionBackend: "disk"})
	assert.Error(t, err)
}
