// Package toast delivers one-shot notifications from request handlers to the
// next rendered page.
//
// Handlers queue toasts on the request's Toaster. Queued toasts are flashed
// into the session and survive exactly until a page receives them, including
// across any number of redirects:
//
//	r.Use(toast.Middleware(sessions, toast.WithConfig(cfg)))
//
//	func save(w http.ResponseWriter, r *http.Request) {
//		toast.MustFromContext(r.Context()).Success("Profile saved")
//		http.Redirect(w, r, "/profile", http.StatusSeeOther)
//	}
//
// The page then picks the toasts up through Shared, Props, Script (a JSON
// data island for templ pages) or PatchSignals (a DataStar signal patch).
// Once delivered they are forgotten, so a refresh shows nothing.
//
// Each toast serializes as {"message","level","duration"} where level is one
// of success, error, info or warning and duration is milliseconds or null.
package toast
