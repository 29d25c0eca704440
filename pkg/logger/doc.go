// Package logger builds the *slog.Logger used across the beacon and the
// collector, plus attribute helpers that keep key names consistent.
//
// New applies Option functions to choose the output format (JSON or text),
// the minimum level, static attributes and ContextExtractor callbacks. The
// resulting handler is wrapped in a LogHandlerDecorator that runs the
// extractors on every record, so request-scoped values such as a device ID
// stored in the context appear without being passed explicitly.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "beacon"),
//	    logger.WithContextExtractors(fingerprint.LoggerExtractor()),
//	)
//
//	log.ErrorContext(ctx, "submission failed",
//	    logger.AppID(cfg.AppID),
//	    logger.Endpoint(cfg.APIURL),
//	    logger.StatusCode(res.StatusCode),
//	    logger.Error(err),
//	)
//
// # Presets
//
// WithEnvironment (and the WithDevelopment / WithProduction shortcuts) set
// level and format per deployment environment and tag records with the
// service and env attributes. Development logs text at debug level,
// staging and production log JSON at info level.
//
// # Attributes
//
// Error, Errors and StatusCode return an empty slog.Attr for zero input, so
// they can be passed unconditionally.
package logger
