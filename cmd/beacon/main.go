// Command beacon collects a fingerprint of the current host and submits it,
// signed, to the configured endpoint. It is fire-and-forget: the exit code
// is 0 whatever the outcome, which is reported through the log.
package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"github.com/dmitrymomot/beacon/pkg/beacon"
	"github.com/dmitrymomot/beacon/pkg/config"
	"github.com/dmitrymomot/beacon/pkg/environment"
	"github.com/dmitrymomot/beacon/pkg/logger"
	"github.com/dmitrymomot/beacon/pkg/probe"
	"github.com/dmitrymomot/beacon/pkg/transmit"
)

func main() {
	var (
		profile = flag.String("profile", "", "YAML device profile to report instead of the host")
		envName = flag.String("env", "development", "logging environment: development, staging or production")
		envFile = flag.String("env-file", "", "additional .env file to load")
		timeout = flag.Duration("timeout", 0, "bound the delivery request (0 waits for the transport)")
	)
	flag.Parse()

	env := environment.Parse(*envName)
	log := logger.New(logger.WithEnvironment(env, "beacon"))
	logger.SetAsDefault(log)
	ctx := environment.WithContext(context.Background(), env)

	if err := config.LoadEnv(optional(*envFile)...); err != nil {
		log.ErrorContext(ctx, "failed to load env file", logger.Error(err))
	}

	var cfg beacon.Config
	if err := config.Load(&cfg, config.WithPrefix(beacon.EnvPrefix)); err != nil {
		log.ErrorContext(ctx, "failed to read beacon configuration", logger.Error(err))
		return
	}

	p, err := newProbe(*profile)
	if err != nil {
		log.ErrorContext(ctx, "failed to load device profile", slog.String("profile", *profile), logger.Error(err))
		return
	}

	var sendOpts []transmit.SendOption
	if *timeout > 0 {
		sendOpts = append(sendOpts, transmit.WithTimeout(*timeout))
	}

	start := time.Now()
	out := beacon.New(p, beacon.WithLogger(log), beacon.WithSendOptions(sendOpts...)).Run(ctx, cfg)
	log.DebugContext(ctx, "beacon finished", logger.Outcome(string(out.Kind)), logger.Duration(time.Since(start)))
}

func newProbe(profile string) (probe.Probe, error) {
	if profile == "" {
		return probe.NewHost(), nil
	}
	p, err := probe.LoadProfile(profile)
	if err != nil {
		return nil, err
	}
	return probe.NewStatic(p), nil
}

func optional(file string) []string {
	if file == "" {
		return nil
	}
	return []string{file}
}
