// Package httpserver runs an http.Server until its context is cancelled and
// then shuts it down gracefully.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// Config carries env tags so it can be embedded in an application config
// loaded with pkg/config. HealthCheckHandler provides liveness and readiness
// endpoints.
package httpserver
