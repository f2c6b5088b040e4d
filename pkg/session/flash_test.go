package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashtoast/pkg/session"
)

func TestSession_FlashLifecycle(t *testing.T) {
	sess := session.NewSession("token", time.Hour)

	sess.Flash("notice", "saved")
	assert.True(t, sess.IsFlashed("notice"))

	// End of the flashing request: the value survives into the next one.
	sess.AgeFlashData()
	v, ok := sess.Get("notice")
	require.True(t, ok)
	assert.Equal(t, "saved", v)

	// End of the next request: gone, bookkeeping included.
	sess.AgeFlashData()
	_, ok = sess.Get("notice")
	assert.False(t, ok)
	assert.False(t, sess.IsFlashed("notice"))
	_, ok = sess.Get("_flash.old")
	assert.False(t, ok)
	_, ok = sess.Get("_flash.new")
	assert.False(t, ok)
}

func TestSession_Keep(t *testing.T) {
	sess := session.NewSession("token", time.Hour)
	sess.Flash("notice", "saved")
	sess.AgeFlashData()

	// A redirect keeps it for one more request.
	sess.Keep("notice")
	sess.AgeFlashData()
	_, ok := sess.Get("notice")
	assert.True(t, ok)

	sess.AgeFlashData()
	_, ok = sess.Get("notice")
	assert.False(t, ok)
}

func TestSession_Forget(t *testing.T) {
	sess := session.NewSession("token", time.Hour)
	sess.Flash("notice", "saved")
	sess.Set("plain", "kept")

	sess.Forget("notice", "plain")

	_, ok := sess.Get("notice")
	assert.False(t, ok)
	_, ok = sess.Get("plain")
	assert.False(t, ok)
	assert.False(t, sess.IsFlashed("notice"))
}

func TestSession_FlashAgainOverwrites(t *testing.T) {
	sess := session.NewSession("token", time.Hour)
	sess.Flash("notice", "first")
	sess.AgeFlashData()

	// Flashing an old key again moves it back to new.
	sess.Flash("notice", "second")
	sess.AgeFlashData()

	v, ok := sess.Get("notice")
	require.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestSession_FlashNil(t *testing.T) {
	var sess *session.Session
	assert.NotPanics(t, func() {
		sess.Flash("k", "v")
		sess.Keep("k")
		sess.Forget("k")
		sess.AgeFlashData()
	})
}

func TestManager_Save(t *testing.T) {
	manager := setupManager(t)
	ctx := context.Background()

	sess, err := manager.Ensure(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	sess.Flash("notice", "saved")
	require.NoError(t, manager.Save(ctx, sess))

	assert.ErrorIs(t, manager.Save(ctx, nil), session.ErrInvalidSession)
}
