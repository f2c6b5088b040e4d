package toast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/flashtoast/pkg/logger"
	"github.com/dmitrymomot/flashtoast/pkg/session"
)

// Sessions loads and persists the session a request's toasts are flashed into.
// *session.Manager satisfies it.
type Sessions interface {
	Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) error
}

type middleware struct {
	sessions   Sessions
	sessionKey string
	propKey    string
	metrics    *Metrics
	logger     *slog.Logger
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middleware)

// WithConfig applies the session and prop keys from cfg.
func WithConfig(cfg Config) MiddlewareOption {
	return func(m *middleware) {
		if cfg.SessionKey != "" {
			m.sessionKey = cfg.SessionKey
		}
		if cfg.PropKey != "" {
			m.propKey = cfg.PropKey
		}
	}
}

// WithLogger sets the middleware logger.
func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(m *middleware) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMetrics records toast counters on metrics.
func WithMetrics(metrics *Metrics) MiddlewareOption {
	return func(m *middleware) {
		m.metrics = metrics
	}
}

// Middleware gives every request a Toaster bound to its session and settles
// the flashed toasts once the handler has written the response:
//
//   - on a redirect, pending toasts are flashed and the stored list is kept
//     for the request the redirect leads to;
//   - when the page received the toasts (Shared, Props, Script or
//     PatchSignals), they are forgotten so they show exactly once;
//   - otherwise pending toasts are flashed for the next request.
//
// The session is then aged and saved. When no session can be established the
// handler still runs with a detached Toaster whose toasts are dropped.
func Middleware(sessions Sessions, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	m := &middleware{
		sessions:   sessions,
		sessionKey: DefaultSessionKey,
		propKey:    DefaultPropKey,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sess, err := m.sessions.Ensure(ctx, w, r)
			if err != nil {
				m.logger.WarnContext(ctx, "toasts disabled for request",
					logger.Component("toast"),
					logger.Error(errors.Join(ErrNoSession, err)),
				)
				st := &requestState{toaster: m.toaster(nil), metrics: m.metrics}
				next.ServeHTTP(w, r.WithContext(withState(ctx, st)))
				return
			}

			st := &requestState{toaster: m.toaster(sess), metrics: m.metrics}
			ctx = withState(session.WithSession(ctx, sess), st)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r.WithContext(ctx))

			m.settle(ctx, sess, st, rec.status)

			if err := m.sessions.Save(ctx, sess); err != nil {
				m.logger.ErrorContext(ctx, "failed to save toasts to session",
					logger.Component("toast"),
					logger.Error(err),
				)
			}
		})
	}
}

func (m *middleware) toaster(store Store) *Toaster {
	return New(store,
		WithSessionKey(m.sessionKey),
		WithPropKey(m.propKey),
		WithToasterMetrics(m.metrics),
		WithToasterLogger(m.logger),
	)
}

func (m *middleware) settle(ctx context.Context, sess *session.Session, st *requestState, status int) {
	switch {
	case isRedirect(status):
		st.toaster.Flash()
		if _, ok := sess.Get(m.sessionKey); ok {
			sess.Keep(m.sessionKey)
			m.metrics.kept()
			m.logger.DebugContext(ctx, "toasts kept across redirect",
				logger.Component("toast"),
				slog.Int("status", status),
			)
		}
	case st.delivered:
		sess.Forget(m.sessionKey)
		// Toasts queued after the page was rendered go to the next one.
		st.toaster.Flash()
	default:
		st.toaster.Flash()
	}
	sess.AgeFlashData()
}

func isRedirect(status int) bool {
	return status >= 300 && status < 400
}

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.wroteHeader = true
	}
	return r.ResponseWriter.Write(b)
}

// Flush keeps streaming responses (SSE) working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
