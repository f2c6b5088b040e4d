package session

import (
	"github.com/dmitrymomot/flashtoast/pkg/cookie"
)

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the session store. Without it an in-memory store is used
// and closed together with the Manager.
func WithStore(store Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithTransport sets how the token travels. The default is a cookie
// transport, which needs WithCookieManager.
func WithTransport(t Transport) Option {
	return func(m *Manager) {
		if t != nil {
			m.transport = t
		}
	}
}

// WithConfig replaces the configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.config = cfg
	}
}

// WithCookieManager sets the cookie manager of the default transport.
func WithCookieManager(mgr *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookies = mgr
		m.cookieOpts = opts
	}
}
