package toast_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/starfederation/datastar-go/datastar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashtoast/pkg/toast"
)

func TestShared(t *testing.T) {
	t.Run("nil without toaster", func(t *testing.T) {
		assert.Nil(t, toast.Shared(context.Background()))
		assert.Empty(t, toast.Props(context.Background()))
	})

	t.Run("nil when empty", func(t *testing.T) {
		ctx := toast.WithToaster(context.Background(), toast.New(newSession()))
		assert.Nil(t, toast.Shared(ctx))
		assert.NotContains(t, toast.Props(ctx), "toasts")
	})

	t.Run("flashes pending before reading", func(t *testing.T) {
		tr := toast.New(newSession())
		ctx := toast.WithToaster(context.Background(), tr)
		tr.Success("one")

		records := toast.Shared(ctx)
		require.Len(t, records, 1)
		assert.False(t, tr.HasPending())

		// Reading again within the same request returns the same list.
		assert.Equal(t, records, toast.Shared(ctx))
	})

	t.Run("props use prop key", func(t *testing.T) {
		tr := toast.New(newSession(), toast.WithPropKey("flash"))
		tr.Warning("w")
		props := toast.Props(toast.WithToaster(context.Background(), tr))

		require.Contains(t, props, "flash")
		assert.Len(t, props["flash"], 1)
	})
}

func TestScript(t *testing.T) {
	t.Run("renders json data island", func(t *testing.T) {
		tr := toast.New(newSession())
		tr.Info("<b>hi</b>")
		ctx := toast.WithToaster(context.Background(), tr)

		var buf bytes.Buffer
		require.NoError(t, toast.Script().Render(ctx, &buf))

		out := buf.String()
		assert.Contains(t, out, `<script type="application/json" id="toasts">`)
		assert.Contains(t, out, `"level":"info"`)
		assert.Contains(t, out, `\u003cb\u003ehi\u003c/b\u003e`)
		assert.NotContains(t, out, "<b>")
	})

	t.Run("renders nothing when empty", func(t *testing.T) {
		ctx := toast.WithToaster(context.Background(), toast.New(newSession()))

		var buf bytes.Buffer
		require.NoError(t, toast.Script().Render(ctx, &buf))
		assert.Empty(t, buf.String())
	})
}

func TestPatchSignals(t *testing.T) {
	t.Run("sends toasts as signals", func(t *testing.T) {
		tr := toast.New(newSession())
		tr.Error("boom")
		ctx := toast.WithToaster(context.Background(), tr)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		sse := datastar.NewSSE(w, r)

		require.NoError(t, toast.PatchSignals(ctx, sse))

		body := w.Body.String()
		assert.Contains(t, body, "datastar-patch-signals")
		assert.Contains(t, body, `"toasts":[{"message":"boom","level":"error","duration":null}]`)
	})

	t.Run("sends nothing when empty", func(t *testing.T) {
		ctx := toast.WithToaster(context.Background(), toast.New(newSession()))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		sse := datastar.NewSSE(w, r)

		require.NoError(t, toast.PatchSignals(ctx, sse))
		assert.NotContains(t, w.Body.String(), "datastar-patch-signals")
	})
}
