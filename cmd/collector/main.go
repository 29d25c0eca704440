// Command collector serves the signed fingerprint collection endpoint.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/beacon/pkg/clientip"
	"github.com/dmitrymomot/beacon/pkg/collector"
	"github.com/dmitrymomot/beacon/pkg/config"
	"github.com/dmitrymomot/beacon/pkg/environment"
	"github.com/dmitrymomot/beacon/pkg/fingerprint"
	"github.com/dmitrymomot/beacon/pkg/httpserver"
	"github.com/dmitrymomot/beacon/pkg/logger"
	"github.com/dmitrymomot/beacon/pkg/ratelimiter"
	"github.com/dmitrymomot/beacon/pkg/redis"
	"github.com/dmitrymomot/beacon/pkg/requestid"
	"github.com/dmitrymomot/beacon/pkg/signature"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	SecretKey    string `env:"COLLECTOR_SECRET_KEY,required"`
	MaxBodyBytes int64  `env:"COLLECTOR_MAX_BODY_BYTES" envDefault:"65536"`
	TrustProxy   bool   `env:"COLLECTOR_TRUST_PROXY" envDefault:"false"`

	HTTP      httpserver.Config
	Redis     redis.Config
	RateLimit ratelimiter.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	env := environment.Parse(cfg.Env)
	log := logger.New(
		logger.WithEnvironment(env, "collector"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			fingerprint.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx := environment.WithContext(context.Background(), env)
	if err := run(ctx, cfg, log); err != nil {
		log.ErrorContext(ctx, "collector stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	verifier, err := signature.NewVerifier(cfg.SecretKey)
	if err != nil {
		return err
	}

	var (
		store      collector.Store = collector.NewMemoryStore()
		checks     []httpserver.HealthCheck
		serverOpts = []httpserver.Option{httpserver.WithLogger(log)}
	)
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		store = collector.NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL)
		checks = append(checks, redis.Healthcheck(client))
		serverOpts = append(serverOpts, httpserver.WithStopHook(func() { _ = client.Close() }))
		log.InfoContext(ctx, "using redis store")
	} else {
		log.WarnContext(ctx, "REDIS_URL not set, submissions are kept in memory")
	}

	resolver := clientip.New(clientip.WithoutProxyHeaders())
	if cfg.TrustProxy {
		resolver = clientip.New()
	}

	routerOpts := []collector.Option{
		collector.WithLogger(log),
		collector.WithMaxBodyBytes(cfg.MaxBodyBytes),
		collector.WithResolver(resolver),
		collector.WithHealthChecks(checks...),
	}
	if cfg.RateLimit.Enabled() {
		limits := ratelimiter.NewMemoryStore()
		bucket, err := ratelimiter.NewBucket(limits, cfg.RateLimit)
		if err != nil {
			limits.Close()
			return err
		}
		routerOpts = append(routerOpts, collector.WithRateLimit(bucket))
		serverOpts = append(serverOpts, httpserver.WithStopHook(limits.Close))
	}

	router := collector.NewRouter(verifier, store, routerOpts...)

	env := environment.FromContext(ctx)
	return httpserver.NewFromConfig(cfg.HTTP, serverOpts...).Run(ctx, environment.Middleware(env)(router))
}
