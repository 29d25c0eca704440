// Package httpserver runs the collector's HTTP endpoint with bounded
// timeouts and graceful shutdown.
//
// Run blocks until the context is cancelled, SIGINT or SIGTERM is received,
// or the listener fails. Shutdown drains in-flight requests within the
// configured timeout and then runs the stop hooks.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.NewFromConfig(cfg,
//	    httpserver.WithLogger(log),
//	    httpserver.WithStopHook(func() { _ = client.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// HealthHandler turns dependency checks into a JSON readiness endpoint.
//
// Listen and serve failures are joined with ErrStart, shutdown failures with
// ErrShutdown.
package httpserver
