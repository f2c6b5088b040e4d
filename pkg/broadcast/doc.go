// Package broadcast provides type-safe one-to-many message delivery.
//
//	b := broadcast.NewMemoryBroadcaster[Snapshot](1,
//		broadcast.WithReplayLast(),
//		broadcast.WithKeepLatest(),
//	)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//
//	_ = b.Broadcast(ctx, broadcast.Message[Snapshot]{Data: snap})
//
//	for msg := range sub.Receive(ctx) {
//		render(msg.Data)
//	}
//
// Broadcast never blocks. A subscriber is removed when its context is done,
// when it is closed, when the broadcaster is closed, or (unless
// WithKeepLatest is set) when its buffer is full.
package broadcast
