package handler

import (
	"errors"
	"net/http"
)

// HandlerFunc serves one request with its bound request value.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to the client.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind fills v from the request. A binder with nothing to read returns
// ErrNotApplicable and Wrap moves on to the next one.
type Bind func(r *http.Request, v any) error

// ErrorHandler answers for a failed bind or render.
type ErrorHandler func(ctx Context, err error)

type Option func(*options)

type options struct {
	binders []Bind
	onError ErrorHandler
}

// WithBinders appends binders. They run in order against the same value.
func WithBinders(binders ...Bind) Option {
	return func(o *options) { o.binders = append(o.binders, binders...) }
}

// WithErrorHandler replaces the plain-text fallback. Nil is ignored.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		if h != nil {
			o.onError = h
		}
	}
}

func plainError(ctx Context, err error) {
	code := http.StatusInternalServerError
	msg := err.Error()
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		code, msg = httpErr.Code, httpErr.Key
	}
	http.Error(ctx.ResponseWriter(), msg, code)
}

// Wrap adapts h to net/http:
//
//	r.Post("/save", handler.Wrap(save, handler.WithErrorHandler(onError)))
func Wrap[R any](h HandlerFunc[R], opts ...Option) http.HandlerFunc {
	o := options{onError: plainError}
	for _, opt := range opts {
		opt(&o)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range o.binders {
			err := bind(r, &req)
			if errors.Is(err, ErrNotApplicable) {
				continue
			}
			if err != nil {
				o.onError(ctx, err)
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			o.onError(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			o.onError(ctx, err)
		}
	}
}
