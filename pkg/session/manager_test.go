package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashtoast/pkg/cookie"
	"github.com/dmitrymomot/flashtoast/pkg/session"
)

func newCookieManager(t *testing.T) *cookie.Manager {
	t.Helper()
	mgr, err := cookie.New([]string{"session-test-secret-that-is-long-enough"})
	require.NoError(t, err)
	return mgr
}

func setupManager(t *testing.T, opts ...session.Option) *session.Manager {
	t.Helper()
	cfg := session.DefaultConfig()
	cfg.CleanupInterval = 0
	m := session.New(append([]session.Option{
		session.WithCookieManager(newCookieManager(t)),
		session.WithConfig(cfg),
	}, opts...)...)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// follow copies the cookies set on w onto a new request.
func follow(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_Ensure(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	w := httptest.NewRecorder()
	first, err := m.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.NotEmpty(t, first.Token)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEqual(t, first.Token, cookies[0].Value, "token is encrypted")

	w2 := httptest.NewRecorder()
	second, err := m.Ensure(ctx, w2, follow(w))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Empty(t, w2.Result().Cookies(), "existing sessions are not reissued")
}

func TestManager_EnsureReplacesUnknownToken(t *testing.T) {
	m := setupManager(t)
	other := setupManager(t)
	ctx := context.Background()

	w := httptest.NewRecorder()
	_, err := other.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	w2 := httptest.NewRecorder()
	sess, err := m.Ensure(ctx, w2, follow(w))
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Len(t, w2.Result().Cookies(), 1)
}

func TestManager_EnsureReplacesExpired(t *testing.T) {
	store := session.NewMemoryStore(0)
	m := setupManager(t, session.WithStore(store))
	ctx := context.Background()

	w := httptest.NewRecorder()
	sess, err := m.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	sess.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Update(ctx, sess))

	fresh, err := m.Ensure(ctx, httptest.NewRecorder(), follow(w))
	require.NoError(t, err)
	assert.NotEqual(t, sess.ID, fresh.ID)
}

func TestManager_Load(t *testing.T) {
	m := setupManager(t)

	_, err := m.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_SaveSlidesExpiry(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.IdleTimeout = time.Minute
	cfg.MaxLifetime = time.Hour
	cfg.CleanupInterval = 0
	m := setupManager(t, session.WithConfig(cfg))
	ctx := context.Background()

	w := httptest.NewRecorder()
	sess, err := m.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), sess.ExpiresAt, time.Second)

	sess.CreatedAt = time.Now().Add(-59*time.Minute - 30*time.Second)
	require.NoError(t, m.Save(ctx, sess))
	assert.WithinDuration(t, sess.CreatedAt.Add(time.Hour), sess.ExpiresAt, time.Millisecond,
		"expiry is capped by the absolute lifetime")

	loaded, err := m.Load(ctx, follow(w))
	require.NoError(t, err)
	assert.True(t, sess.ExpiresAt.Equal(loaded.ExpiresAt))
}

func TestManager_Destroy(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	w := httptest.NewRecorder()
	_, err := m.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	w2 := httptest.NewRecorder()
	require.NoError(t, m.Destroy(ctx, w2, follow(w)))
	cookies := w2.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)

	_, err = m.Load(ctx, follow(w))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_Close(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	m := setupManager(t, session.WithStore(store))
	require.NoError(t, m.Close())

	// A store passed in stays usable.
	require.NoError(t, store.Create(context.Background(), session.NewSession("t", time.Hour)))
	require.NoError(t, store.Close())
}

func TestNew_RequiresTransport(t *testing.T) {
	assert.Panics(t, func() { session.New() })
	assert.NotPanics(t, func() {
		m := session.New(session.WithTransport(session.NewHeaderTransport("X-Session")))
		_ = m.Close()
	})
}

func TestNewFromConfig(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.CookieName = "visitor"
	cfg.CleanupInterval = 0
	m := session.NewFromConfig(cfg, session.WithCookieManager(newCookieManager(t)))
	t.Cleanup(func() { _ = m.Close() })

	w := httptest.NewRecorder()
	_, err := m.Ensure(context.Background(), w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, "visitor", w.Result().Cookies()[0].Name)
}

func TestContext(t *testing.T) {
	_, ok := session.FromContext(context.Background())
	assert.False(t, ok)

	sess := session.NewSession("t", time.Hour)
	got, ok := session.FromContext(session.WithSession(context.Background(), sess))
	assert.True(t, ok)
	assert.Same(t, sess, got)
}
