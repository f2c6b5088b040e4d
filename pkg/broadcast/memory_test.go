package broadcast_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashtoast/pkg/broadcast"
)

func receive[T any](t *testing.T, sub broadcast.Subscriber[T]) T {
	t.Helper()
	select {
	case msg, ok := <-sub.Receive(context.Background()):
		require.True(t, ok, "subscriber closed")
		return msg.Data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	var zero T
	return zero
}

func assertClosed[T any](t *testing.T, sub broadcast.Subscriber[T]) {
	t.Helper()
	select {
	case _, ok := <-sub.Receive(context.Background()):
		assert.False(t, ok, "expected closed channel")
	case <-time.After(time.Second):
		t.Fatal("subscriber not closed")
	}
}

func TestMemoryBroadcaster_Broadcast(t *testing.T) {
	ctx := context.Background()
	b := broadcast.NewMemoryBroadcaster[string](4)
	t.Cleanup(func() { _ = b.Close() })

	s1 := b.Subscribe(ctx)
	s2 := b.Subscribe(ctx)
	assert.Equal(t, 2, b.Len())

	require.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"}))

	assert.Equal(t, "hello", receive(t, s1))
	assert.Equal(t, "hello", receive(t, s2))
}

func TestMemoryBroadcaster_DropsSlowSubscriber(t *testing.T) {
	ctx := context.Background()
	b := broadcast.NewMemoryBroadcaster[int](1)
	t.Cleanup(func() { _ = b.Close() })

	sub := b.Subscribe(ctx)
	require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}))
	require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 2}))

	assert.Equal(t, 1, receive(t, sub))
	assertClosed(t, sub)
	assert.Equal(t, 0, b.Len())
}

func TestMemoryBroadcaster_KeepLatest(t *testing.T) {
	ctx := context.Background()
	b := broadcast.NewMemoryBroadcaster[int](1, broadcast.WithKeepLatest())
	t.Cleanup(func() { _ = b.Close() })

	sub := b.Subscribe(ctx)
	for i := range 5 {
		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: i}))
	}

	assert.Equal(t, 4, receive(t, sub))
	assert.Equal(t, 1, b.Len())
}

func TestMemoryBroadcaster_ReplayLast(t *testing.T) {
	ctx := context.Background()
	b := broadcast.NewMemoryBroadcaster[string](2, broadcast.WithReplayLast())
	t.Cleanup(func() { _ = b.Close() })

	require.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "first"}))
	require.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "second"}))

	late := b.Subscribe(ctx)
	assert.Equal(t, "second", receive(t, late))
}

func TestMemoryBroadcaster_ContextCancel(t *testing.T) {
	b := broadcast.NewMemoryBroadcaster[int](1)
	t.Cleanup(func() { _ = b.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx)
	cancel()

	assertClosed(t, sub)
	assert.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryBroadcaster_Close(t *testing.T) {
	ctx := context.Background()
	b := broadcast.NewMemoryBroadcaster[int](1)

	sub := b.Subscribe(ctx)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	assertClosed(t, sub)
	assert.ErrorIs(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}), broadcast.ErrClosed)
	assertClosed(t, b.Subscribe(ctx))

	// Closing a subscriber twice is fine.
	assert.NoError(t, sub.Close())
}

func TestMemoryBroadcaster_Concurrent(t *testing.T) {
	ctx := context.Background()
	b := broadcast.NewMemoryBroadcaster[int](8, broadcast.WithKeepLatest())
	t.Cleanup(func() { _ = b.Close() })

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := b.Subscribe(ctx)
			_ = sub.Close()
		}()
		go func() {
			defer wg.Done()
			_ = b.Broadcast(ctx, broadcast.Message[int]{Data: i})
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, b.Len())
}
