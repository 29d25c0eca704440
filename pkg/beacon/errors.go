package beacon

import "errors"

var (
	// ErrMissingField is returned for every required configuration field that is empty.
	ErrMissingField = errors.New("missing required parameter")

	// ErrInvalidEndpoint is returned when APIURL is not an acceptable collection endpoint.
	ErrInvalidEndpoint = errors.New("invalid collection endpoint")
)
