package session

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Session is a visitor's server-side state. Data must hold JSON-friendly
// values when a RedisStore is used.
type Session struct {
	ID         uuid.UUID      `json:"id"`
	Token      string         `json:"token"`
	Data       map[string]any `json:"data,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	LastSeenAt time.Time      `json:"last_seen_at"`
	ExpiresAt  time.Time      `json:"expires_at"`
}

// NewSession creates a session identified by token that expires after ttl.
func NewSession(token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.New(),
		Token:      token,
		Data:       map[string]any{},
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(ttl),
	}
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.Data[key]
	return v, ok
}

// GetString returns the string stored under key.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Set stores value under key.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = map[string]any{}
	}
	s.Data[key] = value
}

// Delete removes key.
func (s *Session) Delete(key string) {
	if s == nil {
		return
	}
	delete(s.Data, key)
}

// Clear drops all data, flash bookkeeping included.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Data = map[string]any{}
}

// clone returns a copy whose Data map can be modified independently.
func (s *Session) clone() *Session {
	c := *s
	c.Data = maps.Clone(s.Data)
	if c.Data == nil {
		c.Data = map[string]any{}
	}
	return &c
}
