package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	domerrors "github.com/bolabot/bolabot-go/internal/errors"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore shares sessions between instances. Update uses WATCH/MULTI so
// concurrent writers from different processes cannot overwrite each other.
// Every write refreshes the key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore parses url and returns a store. The connection is checked
// lazily; call Ping to verify it.
func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisStoreWithClient(redis.NewClient(opts), ttl), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

func (r *RedisStore) Get(ctx context.Context, userID string) (*Session, error) {
	val, err := r.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session %s: %w", userID, domerrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", userID, err)
	}
	return decode(val)
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	now := r.now()
	s.CreatedAt = now
	s.UpdatedAt = now
	s.Version = 1

	val, err := sonic.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ok, err := r.client.SetNX(ctx, key(s.UserID), val, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("create session %s: %w", s.UserID, err)
	}
	if !ok {
		return ErrExists
	}
	return nil
}

func (r *RedisStore) Update(ctx context.Context, s *Session) error {
	k := key(s.UserID)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("session %s: %w", s.UserID, domerrors.ErrNotFound)
		}
		if err != nil {
			return err
		}
		stored, err := decode(val)
		if err != nil {
			return err
		}
		if stored.Version != s.Version {
			return fmt.Errorf("session %s at v%d, have v%d: %w",
				s.UserID, stored.Version, s.Version, domerrors.ErrVersionConflict)
		}

		next := s.Clone()
		next.Version++
		next.UpdatedAt = r.now()
		out, err := sonic.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, out, r.ttl)
			return nil
		}); err != nil {
			return err
		}
		s.Version = next.Version
		s.UpdatedAt = next.UpdatedAt
		return nil
	}, k)

	// The key changed between WATCH and EXEC.
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("session %s: %w", s.UserID, domerrors.ErrVersionConflict)
	}
	return err
}

func (r *RedisStore) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, key(userID)).Err()
}

// Len counts session keys with SCAN. It is used for the sessions gauge only.
func (r *RedisStore) Len(ctx context.Context) (int, error) {
	n := 0
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}
	return n, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func key(userID string) string {
	return keyPrefix + userID
}

func decode(val []byte) (*Session, error) {
	var s Session
	if err := sonic.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.History == nil {
		s.History = []Turn{}
	}
	return &s, nil
}
