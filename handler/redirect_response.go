package handler

import (
	"net/http"
	"net/url"
)

type redirectResponse struct {
	url  string
	back bool
	code int
}

// Render redirects with an HTTP status for regular requests and with a
// script patch for DataStar requests. Toasts already stored in the session
// survive only the HTTP form.
func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	target := rr.url
	if rr.back {
		if ref := r.Header.Get("Referer"); ref != "" && isSameHost(ref, r) {
			target = ref
		}
	}

	if IsDataStar(r) {
		return NewSSE(w, r).Redirect(target)
	}
	http.Redirect(w, r, target, rr.code)
	return nil
}

// Redirect creates a 303 See Other redirect to url.
//
//	ctx.Toasts().Success("Saved")
//	return handler.Redirect("/items")
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

// RedirectWithCode redirects with a specific 3xx status.
func RedirectWithCode(url string, code int) Response {
	return redirectResponse{url: url, code: code}
}

// RedirectBack redirects to the same-host referrer, or to fallback.
func RedirectBack(fallback string) Response {
	return redirectResponse{url: fallback, back: true, code: http.StatusSeeOther}
}

func isSameHost(raw string, r *http.Request) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "", "http", "https":
	default:
		return false
	}
	return u.Host == "" || u.Host == r.Host
}
