package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/authkit/pkg/clientip"
	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/requestid"
)

func main() {
	ctx := context.Background()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.environment(), cfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	if err := applyInsecureDefaults(ctx, cfg, log); err != nil {
		log.ErrorContext(ctx, "refusing to start", logger.Error(err))
		os.Exit(1)
	}

	app, err := newApp(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to initialize", logger.Error(err))
		os.Exit(1)
	}

	if err := app.run(ctx); err != nil {
		log.ErrorContext(ctx, "server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
