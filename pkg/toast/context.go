package toast

import "context"

type contextKey struct{}

// requestState is the per-request delivery bookkeeping the middleware shares
// with the payload helpers.
type requestState struct {
	toaster   *Toaster
	metrics   *Metrics
	delivered bool
}

func withState(ctx context.Context, st *requestState) context.Context {
	return context.WithValue(ctx, contextKey{}, st)
}

func stateFromContext(ctx context.Context) (*requestState, bool) {
	st, ok := ctx.Value(contextKey{}).(*requestState)
	return st, ok && st != nil
}

// WithToaster adds a toaster to the context.
// The delivery middleware does this for every request.
func WithToaster(ctx context.Context, t *Toaster) context.Context {
	return withState(ctx, &requestState{toaster: t})
}

// FromContext returns the request's toaster.
func FromContext(ctx context.Context) (*Toaster, bool) {
	st, ok := stateFromContext(ctx)
	if !ok {
		return nil, false
	}
	return st.toaster, true
}

// MustFromContext returns the request's toaster or panics when the request
// did not pass through the delivery middleware.
func MustFromContext(ctx context.Context) *Toaster {
	t, ok := FromContext(ctx)
	if !ok {
		panic("toast: toaster not found in context, is toast.Middleware installed?")
	}
	return t
}
