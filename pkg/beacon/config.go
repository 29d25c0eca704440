package beacon

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/beacon/pkg/transmit"
)

// EnvPrefix scopes the environment variables Config is loaded from.
const EnvPrefix = "BEACON_"

// Config carries the identifiers and delivery settings of one run.
// All fields are required.
type Config struct {
	AppID     string `env:"APP_ID"`
	UserID    string `env:"USER_ID"`
	PubID     string `env:"PUB_ID"`
	APIURL    string `env:"API_URL"`
	SecretKey string `env:"SECRET_KEY"`
}

// Validate reports every empty field, then checks the endpoint URL.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"appId", c.AppID},
		{"userId", c.UserID},
		{"pubId", c.PubID},
		{"apiUrl", c.APIURL},
		{"secretKey", c.SecretKey},
	}

	var errs []error
	for _, f := range fields {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingField, f.name))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if err := transmit.ValidateEndpoint(c.APIURL); err != nil {
		return errors.Join(ErrInvalidEndpoint, err)
	}
	return nil
}
