// Package config loads application configuration from environment
// variables into tagged Go structs.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for parsing:
//
//   - LoadEnv loads one or more explicit .env files.
//   - Load parses the environment into a struct, loading ./.env once on
//     first use. WithPrefix scopes the variables a struct reads, and
//     WithEnvironment parses a map instead of the process environment.
//   - MustLoad panics on failure, for configuration a binary cannot start
//     without.
//
// Configuration is parsed on every call rather than cached, so a secret
// rotated in the environment is visible to the next Load.
//
// # Usage
//
//	type Config struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	    Key  string `env:"SECRET_KEY,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithPrefix("COLLECTOR_")); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
//   - ErrParsingConfig: a variable is missing or malformed.
//   - ErrLoadingEnvFile: an explicit .env file could not be read.
//   - ErrNilPointer: nil pointer passed to Load/MustLoad.
package config
