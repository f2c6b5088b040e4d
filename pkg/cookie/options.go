package cookie

import "net/http"

// Options are the attributes written with every cookie. A Manager holds a
// default set; per-call Option values override it for one write.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

type Option func(*Options)

func WithPath(p string) Option            { return func(o *Options) { o.Path = p } }
func WithDomain(d string) Option          { return func(o *Options) { o.Domain = d } }
func WithMaxAge(seconds int) Option       { return func(o *Options) { o.MaxAge = seconds } }
func WithSecure(on bool) Option           { return func(o *Options) { o.Secure = on } }
func WithHTTPOnly(on bool) Option         { return func(o *Options) { o.HttpOnly = on } }
func WithSameSite(s http.SameSite) Option { return func(o *Options) { o.SameSite = s } }

// applyOptions works on a copy; base is never modified.
func applyOptions(base Options, opts []Option) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
