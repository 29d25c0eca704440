package redis

import "time"

// Config describes the Redis connection used by the collector.
// An empty URL means Redis is not configured.
type Config struct {
	URL            string        `env:"REDIS_URL"`                             // redis://:password@localhost:6379/0
	Attempts       int           `env:"REDIS_CONNECT_ATTEMPTS" envDefault:"3"` // ping attempts before giving up
	AttemptBackoff time.Duration `env:"REDIS_CONNECT_BACKOFF" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"15s"`
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"beacon:"`
	TTL            time.Duration `env:"REDIS_TTL" envDefault:"720h"`
}

// Enabled reports whether a connection URL was supplied.
func (c Config) Enabled() bool {
	return c.URL != ""
}
