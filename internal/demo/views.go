package demo

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/flashtoast/handler"
	"github.com/dmitrymomot/flashtoast/pkg/toast"
)

const dataStarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// write renders parts in order, stopping at the first error.
func write(ctx context.Context, w io.Writer, parts ...any) error {
	for _, p := range parts {
		var err error
		switch v := p.(type) {
		case string:
			_, err = io.WriteString(w, v)
		case templ.Component:
			err = v.Render(ctx, w)
		default:
			err = fmt.Errorf("demo: cannot render %T", p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func layout(cfg toast.Config, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(ctx, w,
			`<!doctype html><html lang="en"><head><meta charset="utf-8"><title>`,
			templ.EscapeString(title),
			`</title><link rel="stylesheet" href="/static/toasts.css">`,
			`<script type="module" src="`, dataStarScript, `"></script></head><body><main>`,
			body,
			`</main>`,
			toastStack(cfg),
			toast.Script(),
			`</body></html>`,
		)
	})
}

// toastStack renders the delivered toasts the way the client stack shows
// them: newest first, capped at MaxVisible.
func toastStack(cfg toast.Config) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		records := toast.Shared(ctx)
		if len(records) == 0 {
			return nil
		}
		records = slices.Clone(records)
		slices.Reverse(records)
		if len(records) > cfg.MaxVisible {
			records = records[:cfg.MaxVisible]
		}

		a := cfg.Position.Anchor()
		off := cfg.Position.HiddenOffset()
		if err := write(ctx, w, fmt.Sprintf(
			`<ol class="toast-stack" data-vertical="%s" data-horizontal="%s" data-align="%s" data-hidden-x="%d" data-hidden-y="%d">`,
			a.Vertical, a.Horizontal, a.Align, off.X, off.Y,
		)); err != nil {
			return err
		}
		for _, rec := range records {
			ms := rec.DurationOr(cfg.Duration).Milliseconds()
			if err := write(ctx, w,
				`<li class="toast toast-`, rec.Level.String(), `" role="status" data-duration="`, strconv.FormatInt(ms, 10), `">`,
				templ.EscapeString(rec.Message),
				`<button type="button" class="toast-close" aria-label="Dismiss">&times;</button></li>`,
			); err != nil {
				return err
			}
		}
		return write(ctx, w, `</ol>`)
	})
}

func homePage(cfg toast.Config) templ.Component {
	return layout(cfg, "flashtoast", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(ctx, w,
			`<h1>flashtoast</h1>`,
			`<form method="post" action="/toasts">`,
			`<label>Message <input name="message" required></label>`,
			`<label>Level <select name="level">`,
		); err != nil {
			return err
		}
		for _, l := range toast.Levels() {
			if err := write(ctx, w, `<option value="`, l.String(), `">`, l.String(), `</option>`); err != nil {
				return err
			}
		}
		return write(ctx, w,
			`</select></label>`,
			`<label>Duration <input name="duration" placeholder="5s"></label>`,
			`<button type="submit">Show toast</button>`,
			`</form>`,
			`<section data-signals="{message: '', level: 'info', duration: ''}">`,
			`<h2>Without reload</h2>`,
			`<input data-bind-message placeholder="Message">`,
			`<input data-bind-duration placeholder="5s">`,
			`<button data-on-click="@post('/toasts')">Show toast</button>`,
			`<p id="last-toast"></p>`,
			`</section>`,
		)
	}))
}

func errorPage(cfg toast.Config) func(handler.ErrorPageParams) templ.Component {
	return func(p handler.ErrorPageParams) templ.Component {
		return layout(cfg, "Error", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return write(ctx, w,
				`<h1>`, strconv.Itoa(p.StatusCode), `</h1><p>`, templ.EscapeString(p.Error), `</p>`,
				`<p><a href="`, templ.EscapeString(p.RetryURL), `">Try again</a></p>`,
				`<small>request `, templ.EscapeString(p.RequestID), `</small>`,
			)
		}))
	}
}

// resultRow is the element patched in for DataStar submissions.
func resultRow(msg toast.Message) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(ctx, w, `<p id="last-toast">Queued `, msg.Level.String(), `: `, templ.EscapeString(msg.Text), `</p>`)
	})
}
