// Package httpserver runs an http.Handler with sane timeouts, structured
// lifecycle logging and graceful shutdown.
//
// Run blocks until its context is cancelled or the process receives SIGINT or
// SIGTERM, then drains connections within the shutdown timeout. Listen errors
// are wrapped with ErrStart and shutdown errors with ErrShutdown.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness (no checks) and readiness (with checks)
// probes.
package httpserver
