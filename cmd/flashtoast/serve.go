package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/flashtoast/handler"
	"github.com/dmitrymomot/flashtoast/internal/demo"
	"github.com/dmitrymomot/flashtoast/pkg/config"
	"github.com/dmitrymomot/flashtoast/pkg/cookie"
	"github.com/dmitrymomot/flashtoast/pkg/httpserver"
	"github.com/dmitrymomot/flashtoast/pkg/logger"
	"github.com/dmitrymomot/flashtoast/pkg/redis"
	"github.com/dmitrymomot/flashtoast/pkg/session"
	"github.com/dmitrymomot/flashtoast/pkg/toast"
)

// sessionHeader carries the session token for clients without cookies.
const sessionHeader = "X-Session-Token"

type serveOptions struct {
	envFiles  []string
	toastFile string
	useRedis  bool
	addr      string
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the toast demo server",
		Long: `Start the HTTP server.

Configuration comes from the environment (and .env files):
  HTTP_*      listen address and timeouts
  TOAST_*     default duration, position, stack size and keys
  SESSION_*   session lifetime and cookie settings
  COOKIE_*    cookie secrets and attributes
  REDIS_*     session storage, with --redis
  LOG_*       level and format

Examples:
  flashtoast serve
  flashtoast serve --addr=:3000 --toasts=toasts.yaml
  flashtoast serve --redis --env=.env.local`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.envFiles, "env", "e", nil, "Env files to load (default .env)")
	cmd.Flags().StringVarP(&opts.toastFile, "toasts", "t", "", "YAML file with toast settings, instead of TOAST_* variables")
	cmd.Flags().BoolVar(&opts.useRedis, "redis", false, "Store sessions in Redis")
	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Listen address (default from HTTP_ADDR)")

	return cmd
}

func runServe(ctx context.Context, opts serveOptions) error {
	if err := config.LoadEnv(opts.envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var logCfg logger.Config
	if err := config.Load(&logCfg); err != nil {
		return err
	}
	log, err := logger.NewFromConfig(logCfg, logger.WithRequestID(middleware.GetReqID))
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	toastCfg, err := loadToastConfig(opts.toastFile)
	if err != nil {
		return err
	}

	srvCfg, err := httpserver.LoadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		srvCfg.Addr = opts.addr
	}

	sessions, checks, closeSessions, err := openSessions(ctx, log, opts.useRedis)
	if err != nil {
		return err
	}
	defer closeSessions()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := newRouter(routerDeps{
		log:      log,
		toasts:   toastCfg,
		sessions: sessions,
		metrics:  toast.NewMetrics(reg),
		registry: reg,
		checks:   checks,
	})

	srv := httpserver.NewFromConfig(srvCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("toast defaults",
				logger.Duration(toastCfg.Duration),
				slog.String("position", toastCfg.Position.String()),
				slog.Int("max_visible", toastCfg.MaxVisible),
			)
		}),
	)
	return srv.Run(ctx, router)
}

func loadToastConfig(path string) (toast.Config, error) {
	if path != "" {
		return toast.LoadConfigFile(path)
	}
	return toast.LoadConfig()
}

// openSessions builds the session manager. Sessions travel in a cookie for
// browsers and in the X-Session-Token header for API clients.
func openSessions(ctx context.Context, log *slog.Logger, useRedis bool) (*session.Manager, []httpserver.Check, func(), error) {
	var sessCfg session.Config
	if err := config.Load(&sessCfg); err != nil {
		return nil, nil, nil, err
	}

	var cookieCfg cookie.Config
	if err := config.Load(&cookieCfg); err != nil {
		return nil, nil, nil, err
	}
	if len(cookieCfg.SecretList()) == 0 {
		secret, err := randomSecret()
		if err != nil {
			return nil, nil, nil, err
		}
		cookieCfg.Secrets = secret
		log.Warn("COOKIE_SECRETS is not set, sessions will not survive a restart")
	}
	cookieMgr, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return nil, nil, nil, err
	}

	var (
		store  session.Store
		checks []httpserver.Check
		closer = func() {}
	)
	if useRedis {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		store = session.NewRedisStore(client)
		checks = append(checks, redis.Healthcheck(client))
		closer = func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close redis client", logger.Error(err))
			}
		}
		log.Info("sessions stored in redis")
	} else {
		mem := session.NewMemoryStore(sessCfg.CleanupInterval)
		store = mem
		closer = func() { _ = mem.Close() }
	}

	transport := session.NewCompositeTransport(
		session.NewCookieTransport(cookieMgr, sessCfg.CookieName, sessCfg.SecureCookies),
		session.NewHeaderTransport(sessionHeader, session.WithHeaderPrefix("")),
	)
	m := session.NewFromConfig(sessCfg,
		session.WithStore(store),
		session.WithTransport(transport),
	)

	return m, checks, func() {
		_ = m.Close()
		closer()
	}, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// sessionManager is what the router needs from *session.Manager.
type sessionManager interface {
	toast.Sessions
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

type routerDeps struct {
	log      *slog.Logger
	toasts   toast.Config
	sessions sessionManager
	metrics  *toast.Metrics
	registry *prometheus.Registry
	checks   []httpserver.Check
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(demo.RequestLogger(d.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(d.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(d.log, d.checks...))
	r.Handle("/metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))

	// Outside the toast group so the destroyed session is not saved again.
	r.Delete("/session", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		if err := d.sessions.Destroy(ctx, ctx.ResponseWriter(), ctx.Request()); err != nil {
			d.log.ErrorContext(ctx, "failed to destroy session", logger.Error(err))
			return handler.JSONError(err)
		}
		return handler.EmptyWithStatus(http.StatusNoContent)
	}))

	r.Group(func(r chi.Router) {
		r.Use(toast.Middleware(d.sessions,
			toast.WithConfig(d.toasts),
			toast.WithLogger(d.log),
			toast.WithMetrics(d.metrics),
		))
		demo.New(d.toasts, d.log).Routes(r)
	})

	return r
}
