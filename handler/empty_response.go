package handler

import (
	"net/http"

	"github.com/dmitrymomot/flashtoast/pkg/toast"
)

type emptyResponse struct {
	status int
}

// Render writes the status code. DataStar requests get an event stream that
// only carries the request's toasts.
func (e emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return toast.PatchSignals(r.Context(), NewSSE(w, r))
	}
	w.WriteHeader(e.status)
	return nil
}

// Empty creates a 204 No Content response.
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}

// EmptyWithStatus creates a body-less response with status.
func EmptyWithStatus(status int) Response {
	return emptyResponse{status: status}
}
