package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/flashtoast/pkg/toast"
)

// Context wraps the request and response writer of one call and embeds the
// request's context.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// SSE starts the event stream of a DataStar request on first call and
	// returns nil for other requests. Handlers that stream themselves return
	// Empty rather than another SSE-based Response.
	SSE() *datastar.ServerSentEventGenerator
	// Toasts is the request's toaster. Without toast.Middleware it is a
	// detached toaster whose toasts go nowhere.
	Toasts() *toast.Toaster
}

// NewContext creates a Context for w and r.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{w: w, r: r}
}

type httpContext struct {
	w       http.ResponseWriter
	r       *http.Request
	sse     *datastar.ServerSentEventGenerator
	toaster *toast.Toaster
}

func (c *httpContext) Request() *http.Request {
	return c.r
}

func (c *httpContext) ResponseWriter() http.ResponseWriter {
	return c.w
}

func (c *httpContext) SSE() *datastar.ServerSentEventGenerator {
	if c.sse == nil && IsDataStar(c.r) {
		c.sse = NewSSE(c.w, c.r)
	}
	return c.sse
}

func (c *httpContext) Toasts() *toast.Toaster {
	if c.toaster != nil {
		return c.toaster
	}
	if t, ok := toast.FromContext(c.r.Context()); ok && t != nil {
		c.toaster = t
	} else {
		c.toaster = toast.New(nil)
	}
	return c.toaster
}

func (c *httpContext) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *httpContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *httpContext) Err() error {
	return c.r.Context().Err()
}

func (c *httpContext) Value(key any) any {
	return c.r.Context().Value(key)
}
