package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashtoast/pkg/session"
)

func TestCookieTransport(t *testing.T) {
	tr := session.NewCookieTransport(newCookieManager(t), "sid", true)

	_, err := tr.Token(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	w := httptest.NewRecorder()
	require.NoError(t, tr.Issue(w, "abc", time.Hour))
	c := w.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 3600, c.MaxAge)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	token, err := tr.Token(r)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	tampered := httptest.NewRequest(http.MethodGet, "/", nil)
	tampered.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
	_, err = tr.Token(tampered)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestHeaderTransport(t *testing.T) {
	tests := []struct {
		name   string
		opts   []session.HeaderOption
		header string
		want   string
	}{
		{name: "bearer prefix", header: "Bearer abc", want: "abc"},
		{name: "bare value", opts: []session.HeaderOption{session.WithHeaderPrefix("")}, header: "abc", want: "abc"},
		{name: "missing", header: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := session.NewHeaderTransport("X-Session", tt.opts...)
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("X-Session", tt.header)
			}
			token, err := tr.Token(r)
			if tt.want == "" {
				assert.ErrorIs(t, err, session.ErrSessionNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}

	tr := session.NewHeaderTransport("X-Session")
	w := httptest.NewRecorder()
	require.NoError(t, tr.Issue(w, "abc", time.Hour))
	assert.Equal(t, "Bearer abc", w.Header().Get("X-Session"))
	assert.NotEmpty(t, w.Header().Get("X-Session-Expires"))

	require.NoError(t, tr.Revoke(w))
	assert.Empty(t, w.Header().Get("X-Session"))
}

func TestCompositeTransport(t *testing.T) {
	cookies := session.NewCookieTransport(newCookieManager(t), "sid", false)
	header := session.NewHeaderTransport("X-Session", session.WithHeaderPrefix(""))
	tr := session.NewCompositeTransport(cookies, header)

	w := httptest.NewRecorder()
	require.NoError(t, tr.Issue(w, "abc", time.Hour))
	assert.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, "abc", w.Header().Get("X-Session"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Session", "from-header")
	token, err := tr.Token(r)
	require.NoError(t, err)
	assert.Equal(t, "from-header", token)

	_, err = tr.Token(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
