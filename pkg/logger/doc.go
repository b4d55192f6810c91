// Package logger builds *slog.Logger instances for the dashboard services.
//
// New applies functional options on top of production-safe defaults (JSON at
// info level on stdout) and wraps the handler with LogHandlerDecorator, which
// runs registered ContextExtractor callbacks on every record so request-scoped
// values end up in the log line without being passed around explicitly.
//
// The attribute helpers in attr.go keep key names consistent across packages:
//
//	log := logger.New(logger.WithEnvironment("production", "dashboard"))
//	log.InfoContext(ctx, "notification published",
//	    logger.NotificationID(id),
//	    logger.Severity(notifications.SeverityInfo),
//	    logger.Duration(5*time.Second),
//	)
//
// Error returns an empty attribute for a nil error, so it can be passed
// unconditionally:
//
//	log.Info("shutdown complete", logger.Error(err))
package logger
