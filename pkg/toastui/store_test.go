package toastui_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashtoast/pkg/toast"
	"github.com/dmitrymomot/flashtoast/pkg/toastui"
)

func newStore(t *testing.T, opts ...toastui.Option) (*toastui.Store, *toastui.ManualScheduler) {
	t.Helper()
	sched := toastui.NewManualScheduler()
	store := toastui.NewStore(toastui.DefaultConfig(),
		toastui.WithScheduler(sched),
		toastui.WithConfigOptions(opts...),
	)
	t.Cleanup(func() { _ = store.Close() })
	return store, sched
}

func messages(items []toastui.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Message
	}
	return out
}

func TestStore_Lifecycle(t *testing.T) {
	store, sched := newStore(t)

	item := store.Success("Saved")
	assert.Equal(t, toast.LevelSuccess, item.Level)
	assert.Nil(t, item.Duration)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, toastui.PhaseEntering, items[0].Phase)

	sched.Frame()
	assert.Equal(t, toastui.PhaseVisible, store.Items()[0].Phase)

	sched.Advance(5*time.Second - time.Millisecond)
	assert.Equal(t, toastui.PhaseVisible, store.Items()[0].Phase)

	sched.Advance(time.Millisecond)
	assert.Equal(t, toastui.PhaseExiting, store.Items()[0].Phase)

	sched.Advance(300 * time.Millisecond)
	assert.Empty(t, store.Items())
	assert.Equal(t, 0, sched.Pending())
}

func TestStore_DurationOverride(t *testing.T) {
	store, sched := newStore(t)

	item := store.Error("Failed", time.Second)
	require.NotNil(t, item.Duration)
	assert.Equal(t, time.Second, *item.Duration)

	sched.Frame()
	sched.Advance(time.Second)
	assert.Equal(t, toastui.PhaseExiting, store.Items()[0].Phase)
}

func TestStore_ZeroDurationIsPersistent(t *testing.T) {
	t.Run("config default", func(t *testing.T) {
		store, sched := newStore(t, toastui.WithDuration(0))
		store.Info("Sticky")
		sched.Frame()

		sched.Advance(time.Hour)
		assert.Equal(t, toastui.PhaseVisible, store.Items()[0].Phase)
		assert.Equal(t, 0, sched.Pending())
	})

	t.Run("item override", func(t *testing.T) {
		store, sched := newStore(t)
		store.Warning("Sticky", 0)
		sched.Frame()

		sched.Advance(time.Hour)
		assert.Equal(t, toastui.PhaseVisible, store.Items()[0].Phase)
	})
}

func TestStore_Dismiss(t *testing.T) {
	store, sched := newStore(t)
	item := store.Info("Hello")
	sched.Frame()

	require.NoError(t, store.Dismiss(item.ID))
	assert.Equal(t, toastui.PhaseExiting, store.Items()[0].Phase)
	// Only the exit timer is left; the display timer was cancelled.
	assert.Equal(t, 1, sched.Pending())

	ctrl, ok := store.Controller(item.ID)
	require.True(t, ok)
	ctrl.TransitionEnd()

	assert.Empty(t, store.Items())
	assert.Equal(t, 0, sched.Pending())

	err := store.Dismiss(item.ID)
	assert.ErrorIs(t, err, toastui.ErrNotFound)
}

func TestStore_DismissWhileEntering(t *testing.T) {
	store, sched := newStore(t, toastui.WithExitDuration(0))
	item := store.Info("Hello")

	require.NoError(t, store.Dismiss(item.ID))
	assert.Empty(t, store.Items())

	sched.Frame()
	assert.Empty(t, store.Items())
}

func TestStore_LateEventsAreIgnored(t *testing.T) {
	store, sched := newStore(t)
	item := store.Info("Hello")
	ctrl, ok := store.Controller(item.ID)
	require.True(t, ok)

	ctrl.TransitionEnd()
	assert.Equal(t, toastui.PhaseEntering, ctrl.Phase())

	sched.Frame()
	ctrl.TransitionEnd()
	assert.Equal(t, toastui.PhaseVisible, ctrl.Phase())

	store.Remove(item.ID)
	ctrl.Dismiss()
	assert.Equal(t, toastui.PhaseVisible, ctrl.Phase())
	assert.Equal(t, 0, sched.Pending())
}

func TestStore_RemoveRacingFrameLeavesNoTimer(t *testing.T) {
	for range 200 {
		store, sched := newStore(t)
		item := store.Info("Hello")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			sched.Frame()
		}()
		go func() {
			defer wg.Done()
			store.Remove(item.ID)
		}()
		wg.Wait()

		require.Equal(t, 0, sched.Pending())
	}
}

func TestStore_EvictsOldest(t *testing.T) {
	store, sched := newStore(t, toastui.WithMaxVisible(2))

	a := store.Info("a")
	store.Info("b")
	store.Info("c")

	assert.Equal(t, []string{"c", "b"}, messages(store.Items()))
	_, ok := store.Controller(a.ID)
	assert.False(t, ok)

	sched.Frame()
	assert.Equal(t, 2, sched.Pending())

	sched.Advance(5 * time.Second)
	sched.Advance(300 * time.Millisecond)
	assert.Empty(t, store.Items())
}

func TestStore_ShrinkingMaxVisibleAppliesOnNextToast(t *testing.T) {
	store, _ := newStore(t)
	for i := range 4 {
		store.Info(fmt.Sprint(i))
	}

	store.Configure(toastui.WithMaxVisible(2))
	assert.Len(t, store.Items(), 4)

	store.Info("4")
	assert.Equal(t, []string{"4", "3"}, messages(store.Items()))
}

func TestStore_Remove(t *testing.T) {
	store, sched := newStore(t)
	a := store.Info("a")
	b := store.Info("b")

	store.Remove(a.ID)
	store.Remove(a.ID)
	store.Remove("toast-unknown")

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)
	// a's frame was cancelled with it.
	assert.Equal(t, 1, sched.Pending())
}

func TestStore_Clear(t *testing.T) {
	store, sched := newStore(t)
	store.Info("a")
	store.Info("b")
	sched.Frame()

	store.Clear()

	assert.Empty(t, store.Items())
	assert.Equal(t, 0, sched.Pending())
}

func TestStore_IDs(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	store := toastui.NewStore(toastui.DefaultConfig(),
		toastui.WithScheduler(toastui.NewManualScheduler()),
		toastui.WithClock(func() time.Time { return now }),
	)
	t.Cleanup(func() { _ = store.Close() })

	a := store.Info("a")
	b := store.Info("b")

	assert.Equal(t, "toast-1-1700000000000", a.ID)
	assert.Equal(t, "toast-2-1700000000000", b.ID)
}

func TestStore_HandleNavigation(t *testing.T) {
	payload := []any{
		map[string]any{"message": "Saved", "level": "success", "duration": nil},
		map[string]any{"message": "Check input", "level": "warning", "duration": float64(1500)},
	}

	t.Run("ingests in order", func(t *testing.T) {
		store, _ := newStore(t)

		n := store.HandleNavigation(toastui.Navigation{ID: "nav-1", Props: map[string]any{"toasts": payload}})
		assert.Equal(t, 2, n)

		items := store.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "Check input", items[0].Message)
		assert.Equal(t, toast.LevelWarning, items[0].Level)
		require.NotNil(t, items[0].Duration)
		assert.Equal(t, 1500*time.Millisecond, *items[0].Duration)
		assert.Equal(t, "Saved", items[1].Message)
		assert.Nil(t, items[1].Duration)
	})

	t.Run("once per navigation", func(t *testing.T) {
		store, _ := newStore(t)
		nav := toastui.Navigation{ID: "nav-1", Props: map[string]any{"toasts": payload}}

		assert.Equal(t, 2, store.HandleNavigation(nav))
		assert.Equal(t, 0, store.HandleNavigation(nav))
		assert.Len(t, store.Items(), 2)

		nav.ID = "nav-2"
		assert.Equal(t, 2, store.HandleNavigation(nav))
		assert.Len(t, store.Items(), 4)
	})

	t.Run("typed records", func(t *testing.T) {
		store, _ := newStore(t)
		recs := []toast.Record{toast.NewMessage("Hi", toast.LevelInfo).Record()}

		n := store.HandleNavigation(toastui.Navigation{ID: "nav", Props: map[string]any{"toasts": recs}})
		assert.Equal(t, 1, n)
	})

	t.Run("custom prop key", func(t *testing.T) {
		store, _ := newStore(t, toastui.WithPropKey("flash"))

		assert.Equal(t, 0, store.HandleNavigation(toastui.Navigation{ID: "a", Props: map[string]any{"toasts": payload}}))
		assert.Equal(t, 2, store.HandleNavigation(toastui.Navigation{ID: "b", Props: map[string]any{"flash": payload}}))
	})

	t.Run("absent or malformed payload", func(t *testing.T) {
		store, _ := newStore(t)

		assert.Equal(t, 0, store.HandleNavigation(toastui.Navigation{ID: "a"}))
		assert.Equal(t, 0, store.HandleNavigation(toastui.Navigation{ID: "b", Props: map[string]any{"toasts": nil}}))
		assert.Equal(t, 0, store.HandleNavigation(toastui.Navigation{ID: "c", Props: map[string]any{"toasts": []any{}}}))
		assert.Equal(t, 0, store.HandleNavigation(toastui.Navigation{ID: "d", Props: map[string]any{"toasts": "oops"}}))
		assert.Empty(t, store.Items())
	})
}

func TestStore_Subscribe(t *testing.T) {
	store, sched := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := store.Subscribe(ctx)
	ch := sub.Receive(ctx)

	next := func() toastui.Snapshot {
		t.Helper()
		select {
		case msg, ok := <-ch:
			require.True(t, ok)
			return msg.Data
		case <-time.After(time.Second):
			t.Fatal("no snapshot")
			return toastui.Snapshot{}
		}
	}

	store.Success("Saved")
	snap := next()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, toastui.PhaseEntering, snap.Items[0].Phase)
	assert.Equal(t, 5, snap.Config.MaxVisible)

	sched.Frame()
	snap = next()
	assert.Equal(t, toastui.PhaseVisible, snap.Items[0].Phase)

	t.Run("late subscribers get the latest snapshot", func(t *testing.T) {
		late := store.Subscribe(ctx)
		defer late.Close()

		select {
		case msg := <-late.Receive(ctx):
			require.Len(t, msg.Data.Items, 1)
			assert.Equal(t, toastui.PhaseVisible, msg.Data.Items[0].Phase)
		case <-time.After(time.Second):
			t.Fatal("no replayed snapshot")
		}
	})

	require.NoError(t, store.Close())
	// Close clears the store before closing subscribers.
	for range ch {
	}
	assert.Empty(t, store.Success("after close").ID)
}

func TestStore_RealScheduler(t *testing.T) {
	store := toastui.NewStore(toastui.Config{
		Duration:     20 * time.Millisecond,
		ExitDuration: 10 * time.Millisecond,
	})
	t.Cleanup(func() { _ = store.Close() })

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Info(fmt.Sprint(i))
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, len(store.Items()), 5)
	assert.Eventually(t, func() bool {
		return len(store.Items()) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
