package toastui

import "context"

type storeKey struct{}

// NewProvider creates a Store and returns a context carrying it.
func NewProvider(ctx context.Context, cfg Config, opts ...StoreOption) (context.Context, *Store) {
	s := NewStore(cfg, opts...)
	return WithStore(ctx, s), s
}

// WithStore returns a copy of ctx carrying s.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store carried by ctx.
func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeKey{}).(*Store)
	return s, ok && s != nil
}

// Use returns the store carried by ctx. It panics when there is none.
func Use(ctx context.Context) *Store {
	s, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoProvider)
	}
	return s
}
