// Package httpserver runs an http.Server with graceful shutdown and exposes
// liveness and readiness handlers.
//
// Run binds the listener, serves until the context is cancelled or the
// process receives SIGINT/SIGTERM, then calls Shutdown with the configured
// deadline. Stop hooks run after shutdown so storage pools can be closed in
// order.
//
//	srv := httpserver.New(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(context.Context) error { pool.Close(); return nil }),
//	)
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log, map[string]httpserver.Check{
//		"postgres": pg.Check(pool, time.Second),
//	}))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Start failures wrap ErrStart and shutdown failures wrap ErrShutdown.
package httpserver
