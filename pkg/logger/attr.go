package logger

import (
	"log/slog"
	"time"
)

// Error returns an "error" attr, or the empty attr for nil so it can be
// passed unconditionally.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID is empty for an empty id.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr { return slog.String("component", name) }

func Event(name string) slog.Attr { return slog.String("event", name) }

func Status(code int) slog.Attr { return slog.Int("status", code) }

func Count(n int) slog.Attr { return slog.Int("count", n) }

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }
