package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/flashtoast/pkg/logger"
	"github.com/dmitrymomot/flashtoast/pkg/toast"
)

// ErrorPageParams is the data an error page is rendered with.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// ErrorPage renders the page for failed page loads. Plain text is
	// written when it is nil.
	ErrorPage func(ErrorPageParams) templ.Component

	// FallbackURL is where failed form submissions without a usable
	// referrer are sent back to. Defaults to "/".
	FallbackURL string
}

// ErrorInfo is the classification of a handler error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Level      toast.Level
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Message = http.StatusText(httpErr.Code)
	}

	// Validation errors win over a wrapped HTTP error.
	var valErr ValidationError
	if errors.As(err, &valErr) {
		info.StatusCode = http.StatusBadRequest
		info.Message = formatValidationErrors(valErr)
	}

	if info.StatusCode < http.StatusInternalServerError {
		info.Level = toast.LevelWarning
		info.LogLevel = slog.LevelWarn
	} else {
		info.Level = toast.LevelError
		info.LogLevel = slog.LevelError
	}
	return info
}

func formatValidationErrors(e ValidationError) string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	var messages []string
	for _, field := range fields {
		for _, msg := range e[field] {
			messages = append(messages, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	if len(messages) == 0 {
		return "Validation failed"
	}
	return strings.Join(messages, "; ")
}

// isFormSubmission reports whether r is a state-changing request.
func isFormSubmission(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// NewErrorHandler creates the error handler used by Wrap. DataStar requests
// get the error as a toast signal patch. Failed form submissions flash it
// and redirect back, and page loads render ErrorPage.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	if cfg.FallbackURL == "" {
		cfg.FallbackURL = "/"
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		requestID := middleware.GetReqID(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
			logger.Component("error_handler"),
		)

		var renderErr error
		switch {
		case IsDataStar(r):
			ctx.Toasts().Add(info.Message, info.Level)
			renderErr = toast.PatchSignals(r.Context(), ctx.SSE())
		case isFormSubmission(r):
			ctx.Toasts().Add(info.Message, info.Level)
			renderErr = RedirectBack(cfg.FallbackURL).Render(ctx.ResponseWriter(), r)
		default:
			renderErr = renderErrorPage(ctx, cfg, info, requestID)
		}

		if renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}

func renderErrorPage(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string) error {
	w, r := ctx.ResponseWriter(), ctx.Request()
	if cfg.ErrorPage == nil {
		http.Error(w, info.Message, info.StatusCode)
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(info.StatusCode)
	return cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  requestID,
		RetryURL:   r.URL.Path,
	}).Render(r.Context(), w)
}
