// Package environment propagates the deployment environment (development,
// staging, production) through context.Context, HTTP requests and logs.
//
// Parse turns a configuration value into an Environment, WithContext and
// FromContext move it through contexts, Middleware attaches it to every
// request of an HTTP handler, and LoggerExtractor exposes it to the
// logger package:
//
//	env := environment.Parse(cfg.Env)
//	log := logger.New(
//	    logger.WithEnvironment(env, "collector"),
//	    logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
//	handler = environment.Middleware(env)(handler)
package environment
