package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/flashtoast/pkg/toast"
)

// TemplComponent is the subset of templ.Component responses need.
type TemplComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

// TemplOption configures the element patch of a DataStar response.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the selector the component is patched into.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the component is merged into the DOM.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

type templResponse struct {
	partial TemplComponent
	full    TemplComponent
	options []datastar.PatchElementOption
}

// Render patches the partial component over SSE for DataStar requests and
// writes the full page otherwise. DataStar responses also carry the
// request's toasts as a signal patch; full pages embed them through
// toast.Script.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := NewSSE(w, r)
		if err := sse.PatchElementTempl(t.partial, t.options...); err != nil {
			return err
		}
		return toast.PatchSignals(r.Context(), sse)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.full.Render(r.Context(), w)
}

// Templ renders component as the whole response.
//
//	return handler.Templ(views.Profile(user))
//
// For DataStar requests it is sent as an element patch:
//
//	return handler.Templ(views.TodoItem(todo),
//		handler.WithTarget("#todos"),
//		handler.WithPatchMode(handler.PatchAppend),
//	)
func Templ(component TemplComponent, opts ...TemplOption) Response {
	return templResponse{partial: component, full: component, options: opts}
}

// TemplPartial renders partial for DataStar requests and full otherwise.
func TemplPartial(partial, full TemplComponent, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}
