package toastui_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashtoast/pkg/toastui"
)

func TestProvider(t *testing.T) {
	ctx, store := toastui.NewProvider(context.Background(), toastui.DefaultConfig())
	t.Cleanup(func() { _ = store.Close() })

	assert.Same(t, store, toastui.Use(ctx))

	got, ok := toastui.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, store, got)

	other := toastui.NewStore(toastui.DefaultConfig())
	t.Cleanup(func() { _ = other.Close() })
	assert.Same(t, other, toastui.Use(toastui.WithStore(ctx, other)))
}

func TestUse_PanicsWithoutProvider(t *testing.T) {
	_, ok := toastui.FromContext(context.Background())
	assert.False(t, ok)

	assert.PanicsWithValue(t, toastui.ErrNoProvider, func() {
		toastui.Use(context.Background())
	})
}
