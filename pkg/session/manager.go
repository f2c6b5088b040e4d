package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrymomot/flashtoast/pkg/cookie"
)

// Manager loads, creates and saves sessions.
type Manager struct {
	store      Store
	ownStore   bool
	transport  Transport
	config     Config
	cookies    *cookie.Manager
	cookieOpts []cookie.Option
}

// New creates a Manager. It panics when neither a transport nor a cookie
// manager is given.
func New(opts ...Option) *Manager {
	m := &Manager{config: DefaultConfig()}
	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
		m.ownStore = true
	}
	if m.transport == nil {
		if m.cookies == nil {
			panic("session: WithCookieManager or WithTransport is required")
		}
		m.transport = NewCookieTransport(m.cookies, m.config.CookieName, m.config.SecureCookies, m.cookieOpts...)
	}
	return m
}

// Ensure returns the request's session, creating one and issuing its token
// when the request has none or it has expired.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	s, err := m.Load(ctx, r)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, ErrSessionExpired), errors.Is(err, ErrInvalidSession):
		_ = m.transport.Revoke(w)
	case !errors.Is(err, ErrSessionNotFound):
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	s = NewSession(token, m.config.IdleTimeout)
	s.ExpiresAt = m.config.expiry(s.CreatedAt, s.CreatedAt)
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	if err := m.transport.Issue(w, s.Token, m.config.IdleTimeout); err != nil {
		_ = m.store.Delete(ctx, s.Token)
		return nil, err
	}
	return s, nil
}

// Load returns the session of r without creating one.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.Token(r)
	if err != nil {
		return nil, err
	}
	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.IsExpired() {
		return nil, ErrSessionExpired
	}
	return s, nil
}

// Save writes s back to the store and slides its idle expiry.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidSession
	}
	now := time.Now()
	s.LastSeenAt = now
	s.ExpiresAt = m.config.expiry(s.CreatedAt, now)
	return m.store.Update(ctx, s)
}

// Destroy deletes the session of r and revokes its token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.Token(r); err == nil {
		if err := m.store.Delete(ctx, token); err != nil {
			return err
		}
	}
	return m.transport.Revoke(w)
}

// Close releases the default in-memory store. Stores passed with WithStore
// are left to the caller.
func (m *Manager) Close() error {
	if c, ok := m.store.(io.Closer); ok && m.ownStore {
		return c.Close()
	}
	return nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
