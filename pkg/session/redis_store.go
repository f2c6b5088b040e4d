package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of Redis. Sessions are stored as JSON
// with a TTL matching their expiry, so DeleteExpired has nothing to do.
//
// Values read back from Redis are generic JSON trees: a []string written to
// Data comes back as []any.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the key prefix (default "session:").
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a session store backed by client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: "session:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create writes session with a TTL matching its expiry.
func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}
	data, ttl, err := s.encode(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.Token), data, ttl).Err()
}

// Get reads the session stored under token.
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	if session.IsExpired() {
		_ = s.client.Del(ctx, s.key(token)).Err()
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// Update overwrites an existing session. Missing keys are not recreated.
func (s *RedisStore) Update(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}
	data, ttl, err := s.encode(session)
	if err != nil {
		return err
	}

	ok, err := s.client.SetXX(ctx, s.key(session.Token), data, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

// DeleteExpired is a no-op: Redis expires keys itself.
func (s *RedisStore) DeleteExpired(ctx context.Context) error {
	return nil
}

func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

func (s *RedisStore) encode(session *Session) ([]byte, time.Duration, error) {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil, 0, ErrSessionExpired
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, 0, errors.Join(ErrInvalidSession, err)
	}
	return data, ttl, nil
}
