// Package demo is the sample application served by flashtoast serve. It
// queues toasts from HTML forms, DataStar actions and a JSON API, and shows
// them on the next page.
package demo

import (
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/flashtoast/handler"
	"github.com/dmitrymomot/flashtoast/pkg/toast"
)

//go:embed static
var static embed.FS

// App holds the demo routes.
type App struct {
	cfg     toast.Config
	log     *slog.Logger
	onError handler.ErrorHandler
}

// New creates the demo app for cfg.
func New(cfg toast.Config, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{
		cfg: cfg,
		log: log,
		onError: handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
			ErrorPage: errorPage(cfg),
		}),
	}
}

// Routes mounts the app on r. r must run behind toast.Middleware.
func (a *App) Routes(r chi.Router) {
	assets, _ := fs.Sub(static, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(assets)))

	r.Get("/", handler.Wrap(a.home, handler.WithErrorHandler(a.onError)))
	r.Post("/toasts", handler.Wrap(a.create,
		handler.WithBinders(bindForm, bindJSON),
		handler.WithErrorHandler(a.onError),
	))

	r.Route("/api", func(r chi.Router) {
		r.Get("/page", handler.Wrap(a.page))
		r.Post("/toasts", handler.Wrap(a.createAPI,
			handler.WithBinders(bindJSON, bindForm),
		))
	})
}

// ToastRequest is a toast submitted by a form, a DataStar action or the API.
type ToastRequest struct {
	Message  string `json:"message"`
	Level    string `json:"level"`
	Duration string `json:"duration"`
}

// Validate checks the request and builds the toast it describes.
func (req ToastRequest) Validate() (toast.Message, error) {
	verr := handler.NewValidationError()

	text := strings.TrimSpace(req.Message)
	if text == "" {
		verr.Add("message", "is required")
	}

	level := toast.LevelInfo
	if req.Level != "" {
		l, err := toast.ParseLevel(req.Level)
		if err != nil {
			verr.Add("level", "must be one of success, error, info, warning")
		}
		level = l
	}

	var duration []time.Duration
	if req.Duration != "" {
		d, err := parseDuration(req.Duration)
		if err != nil || d < 0 {
			verr.Add("duration", "must be a duration such as 5s, or milliseconds")
		}
		duration = append(duration, d)
	}

	if !verr.IsEmpty() {
		return toast.Message{}, verr
	}
	return toast.NewMessage(text, level, duration...), nil
}

// parseDuration accepts Go durations and bare milliseconds.
func parseDuration(s string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}

func (a *App) home(ctx handler.Context, _ struct{}) handler.Response {
	return handler.Templ(homePage(a.cfg))
}

// create queues a toast and sends the browser back to the form, where the
// toast is shown. DataStar submissions get the toast patched in place.
func (a *App) create(ctx handler.Context, req ToastRequest) handler.Response {
	msg, err := req.Validate()
	if err != nil {
		return handler.Error(err)
	}
	ctx.Toasts().Add(msg.Text, msg.Level, durationArgs(msg)...)
	a.log.DebugContext(ctx, "toast queued", slog.String("level", msg.Level.String()))

	if handler.IsDataStar(ctx.Request()) {
		return handler.Templ(resultRow(msg), handler.WithTarget("#last-toast"))
	}
	return handler.RedirectBack("/")
}

func (a *App) page(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(map[string]any{"path": "/"})
}

// createAPI queues a toast and answers with it in the props of the same
// response.
func (a *App) createAPI(ctx handler.Context, req ToastRequest) handler.Response {
	msg, err := req.Validate()
	if err != nil {
		return handler.JSONError(err)
	}
	ctx.Toasts().Add(msg.Text, msg.Level, durationArgs(msg)...)
	return handler.JSON(map[string]any{"queued": 1}, handler.WithJSONStatus(http.StatusCreated))
}

func durationArgs(msg toast.Message) []time.Duration {
	if msg.Duration == nil {
		return nil
	}
	return []time.Duration{*msg.Duration}
}

func bindForm(r *http.Request, v any) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "application/x-www-form-urlencoded" && ct != "multipart/form-data" {
		return handler.ErrNotApplicable
	}
	req, ok := v.(*ToastRequest)
	if !ok {
		return handler.ErrNotApplicable
	}
	if err := r.ParseForm(); err != nil {
		return errors.Join(handler.ErrBadRequest, err)
	}
	req.Message = r.PostFormValue("message")
	req.Level = r.PostFormValue("level")
	req.Duration = r.PostFormValue("duration")
	return nil
}

func bindJSON(r *http.Request, v any) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "application/json" {
		return handler.ErrNotApplicable
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(handler.ErrBadRequest, err)
	}
	return nil
}
