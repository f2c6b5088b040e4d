// Package handler adapts typed handler functions to net/http and renders
// their responses for both full page loads and DataStar requests.
//
// Responses deliver the request's toasts the way their transport allows.
// DataStar responses patch them in as signals and JSON responses carry them
// in "props". Full templ pages embed them with toast.Script, and redirects
// leave them in the session for the next page.
//
//	save := handler.HandlerFunc[struct{}](
//		func(ctx handler.Context, _ struct{}) handler.Response {
//			if ctx.Request().FormValue("name") == "" {
//				verr := handler.NewValidationError()
//				verr.Add("name", "is required")
//				return handler.Error(verr)
//			}
//			ctx.Toasts().Success("Saved")
//			return handler.RedirectBack("/")
//		},
//	)
//
//	r.Post("/save", handler.Wrap(save,
//		handler.WithErrorHandler(handler.NewErrorHandler(log, handler.ErrorHandlerConfig{})),
//	))
//
// NewErrorHandler turns handler errors into toasts. Failed form submissions
// are sent back to the form with a warning or error toast instead of an
// error page.
package handler
