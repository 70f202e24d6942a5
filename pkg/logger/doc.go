// Package logger builds log/slog loggers with environment-aware defaults and
// provides attribute helpers so every component logs the same keys.
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "authkit"),
//	    logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "account registered",
//	    logger.AccountID(id),
//	    logger.Component("password"),
//	)
//
// Secrets, one-time codes, passwords and tokens must never be passed to a logger.
package logger
