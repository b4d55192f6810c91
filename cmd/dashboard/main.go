package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/dashkit/pkg/config"
	"github.com/dmitrymomot/dashkit/pkg/httpserver"
	"github.com/dmitrymomot/dashkit/pkg/logger"
	"github.com/dmitrymomot/dashkit/pkg/notifications"
	"github.com/dmitrymomot/dashkit/pkg/notifications/notifyhttp"
)

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
			id := middleware.GetReqID(ctx)
			return logger.RequestID(id), id != ""
		}),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("dashboard stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	ids, err := cfg.idGenerator()
	if err != nil {
		return err
	}

	manager := notifications.NewManager(
		notifications.WithIDGenerator(ids),
		notifications.WithManagerLogger(log),
		notifications.WithSubscriberBuffer(cfg.SubscriberBuffer),
	)
	defer manager.Close()

	srv := httpserver.New(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithShutdownHook(func(context.Context) { _ = manager.Close() }),
	)
	return srv.Run(ctx, newRouter(manager, log))
}

func newRouter(manager *notifications.Manager, log *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, manager.Ready))
	r.Mount("/api/notifications", notifyhttp.Router(manager, notifyhttp.WithLogger(log)))

	return r
}
