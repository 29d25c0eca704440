// Package redis connects the collector to Redis.
//
// Config is populated from REDIS_* environment variables through
// pkg/config. Connect pings the server a bounded number of times before
// handing the client out, and Healthcheck exposes the connection to the
// collector's health endpoint.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	if cfg.Enabled() {
//	    client, err := redis.Connect(ctx, cfg)
//	    if err != nil {
//	        return err
//	    }
//	    defer client.Close()
//	}
//
// Errors are sentinels joined with the underlying go-redis error, so callers
// compare with errors.Is.
package redis
