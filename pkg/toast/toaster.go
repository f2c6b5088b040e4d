package toast

import (
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/flashtoast/pkg/logger"
)

const (
	// DefaultSessionKey is the session key toasts are flashed under.
	DefaultSessionKey = "_toasts"
	// DefaultPropKey is the payload key toasts are shared under.
	DefaultPropKey = "toasts"
)

// Store is the session-side storage a Toaster flashes into.
// *session.Session satisfies it.
type Store interface {
	Get(key string) (any, bool)
	Flash(key string, value any)
}

// Toaster accumulates the toasts of a single request and merges them into
// the session on Flash. It is owned by one request and is not safe for
// concurrent use.
type Toaster struct {
	store      Store
	sessionKey string
	propKey    string
	pending    []Message
	metrics    *Metrics
	logger     *slog.Logger
}

// Option configures a Toaster.
type Option func(*Toaster)

// WithSessionKey sets the session key used for the durable toast list.
func WithSessionKey(key string) Option {
	return func(t *Toaster) {
		if key != "" {
			t.sessionKey = key
		}
	}
}

// WithPropKey sets the payload key the toast list is shared under.
func WithPropKey(key string) Option {
	return func(t *Toaster) {
		if key != "" {
			t.propKey = key
		}
	}
}

// WithToasterMetrics records flashed toasts on m.
func WithToasterMetrics(m *Metrics) Option {
	return func(t *Toaster) {
		t.metrics = m
	}
}

// WithToasterLogger sets the logger used to report undecodable session values.
func WithToasterLogger(l *slog.Logger) Option {
	return func(t *Toaster) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates a Toaster bound to store. A nil store is allowed: Flash then
// only drains the queue and Read always returns an empty list.
func New(store Store, opts ...Option) *Toaster {
	t := &Toaster{
		store:      store,
		sessionKey: DefaultSessionKey,
		propKey:    DefaultPropKey,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Add queues a toast. The optional duration overrides the client default.
func (t *Toaster) Add(text string, level Level, duration ...time.Duration) *Toaster {
	t.pending = append(t.pending, NewMessage(text, level, duration...))
	return t
}

// Success queues a success toast.
func (t *Toaster) Success(text string, duration ...time.Duration) *Toaster {
	return t.Add(text, LevelSuccess, duration...)
}

// Error queues an error toast.
func (t *Toaster) Error(text string, duration ...time.Duration) *Toaster {
	return t.Add(text, LevelError, duration...)
}

// Info queues an info toast.
func (t *Toaster) Info(text string, duration ...time.Duration) *Toaster {
	return t.Add(text, LevelInfo, duration...)
}

// Warning queues a warning toast.
func (t *Toaster) Warning(text string, duration ...time.Duration) *Toaster {
	return t.Add(text, LevelWarning, duration...)
}

// Toast starts a builder for text; the level call commits it.
//
//	t.Toast("Profile saved").Duration(10 * time.Second).Success()
func (t *Toaster) Toast(text string) Pending {
	return Pending{text: text, toaster: t}
}

// Flash appends the pending toasts to the list already stored in the session
// and clears the queue. Existing entries stay first and keep their order.
// With nothing pending the session is left untouched.
func (t *Toaster) Flash() {
	if len(t.pending) == 0 {
		return
	}

	pending := t.pending
	t.pending = nil

	if t.store == nil {
		return
	}

	merged := append(t.Read(), Records(pending)...)
	t.store.Flash(t.sessionKey, merged)

	if t.metrics != nil {
		for _, m := range pending {
			t.metrics.flashed(m.Level)
		}
	}
}

// Read returns the toasts currently stored in the session, or an empty list.
// It never clears anything.
func (t *Toaster) Read() []Record {
	if t.store == nil {
		return []Record{}
	}
	v, ok := t.store.Get(t.sessionKey)
	if !ok {
		return []Record{}
	}
	records, err := DecodeRecords(v)
	if err != nil {
		t.logger.Warn("discarding undecodable toasts",
			logger.Component("toast"),
			logger.Error(err),
			slog.String("session_key", t.sessionKey),
		)
		return []Record{}
	}
	if records == nil {
		return []Record{}
	}
	return records
}

// HasPending reports whether toasts were queued since the last Flash.
func (t *Toaster) HasPending() bool {
	return len(t.pending) > 0
}

// Pending returns a copy of the queued, not yet flashed toasts.
func (t *Toaster) Pending() []Message {
	return slices.Clone(t.pending)
}

// SessionKey returns the session key used for the durable list.
func (t *Toaster) SessionKey() string {
	return t.sessionKey
}

// PropKey returns the payload key the list is shared under.
func (t *Toaster) PropKey() string {
	return t.propKey
}
