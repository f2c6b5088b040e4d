package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/flashtoast/pkg/cookie"
)

// Transport carries the session token between client and server.
type Transport interface {
	// Token returns the token sent with r, or ErrSessionNotFound.
	Token(r *http.Request) (string, error)
	// Issue sends token to the client, valid for ttl.
	Issue(w http.ResponseWriter, token string, ttl time.Duration) error
	// Revoke tells the client to drop its token.
	Revoke(w http.ResponseWriter) error
}

// CookieTransport keeps the token in an encrypted cookie.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
	secure  bool
	opts    []cookie.Option
}

// NewCookieTransport stores the token in the cookie name. opts are applied
// after the HttpOnly, SameSite=Lax defaults.
func NewCookieTransport(mgr *cookie.Manager, name string, secure bool, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{cookies: mgr, name: name, secure: secure, opts: opts}
}

func (t *CookieTransport) Token(r *http.Request) (string, error) {
	token, err := t.cookies.GetEncrypted(r, t.name)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) Issue(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := []cookie.Option{
		cookie.WithPath("/"),
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	if t.secure {
		opts = append(opts, cookie.WithSecure(true))
	}
	opts = append(opts, t.opts...)
	return t.cookies.SetEncrypted(w, t.name, token, opts...)
}

func (t *CookieTransport) Revoke(w http.ResponseWriter) error {
	t.cookies.Delete(w, t.name)
	return nil
}

// HeaderTransport reads the token from a request header and returns new
// tokens in the same response header, for API clients without cookies.
type HeaderTransport struct {
	name   string
	prefix string
}

// HeaderOption configures a HeaderTransport.
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix sets the value prefix (default "Bearer ").
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

// NewHeaderTransport uses the header name.
func NewHeaderTransport(name string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{name: name, prefix: "Bearer "}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *HeaderTransport) Token(r *http.Request) (string, error) {
	token := strings.TrimPrefix(r.Header.Get(t.name), t.prefix)
	if token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *HeaderTransport) Issue(w http.ResponseWriter, token string, ttl time.Duration) error {
	w.Header().Set(t.name, t.prefix+token)
	if ttl > 0 {
		w.Header().Set(t.name+"-Expires", time.Now().Add(ttl).UTC().Format(http.TimeFormat))
	}
	return nil
}

func (t *HeaderTransport) Revoke(w http.ResponseWriter) error {
	w.Header().Del(t.name)
	w.Header().Del(t.name + "-Expires")
	return nil
}

// CompositeTransport reads the token from the first transport that has one
// and issues new tokens through all of them.
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport combines transports in priority order.
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{transports: transports}
}

func (t *CompositeTransport) Token(r *http.Request) (string, error) {
	for _, tr := range t.transports {
		if token, err := tr.Token(r); err == nil {
			return token, nil
		}
	}
	return "", ErrSessionNotFound
}

func (t *CompositeTransport) Issue(w http.ResponseWriter, token string, ttl time.Duration) error {
	var errs []error
	for _, tr := range t.transports {
		errs = append(errs, tr.Issue(w, token, ttl))
	}
	return errors.Join(errs...)
}

func (t *CompositeTransport) Revoke(w http.ResponseWriter) error {
	var errs []error
	for _, tr := range t.transports {
		errs = append(errs, tr.Revoke(w))
	}
	return errors.Join(errs...)
}
