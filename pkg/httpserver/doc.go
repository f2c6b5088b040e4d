// Package httpserver runs an http.Server with graceful shutdown.
//
// Run blocks until its context is cancelled or the process receives SIGINT
// or SIGTERM, then calls http.Server.Shutdown bounded by the shutdown
// timeout. Start and stop hooks run around the server lifecycle.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	r.Get("/healthz", httpserver.HealthCheckHandler(log))
//	r.Get("/readyz", httpserver.HealthCheckHandler(log, redis.Healthcheck(client)))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Listen errors are wrapped in ErrStart and shutdown errors in ErrShutdown.
package httpserver
