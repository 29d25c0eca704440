package probe

import "errors"

var (
	// ErrUnsupported is returned when a capability cannot be obtained on the current runtime.
	ErrUnsupported = errors.New("capability not supported")

	// ErrFailedToParseProfile is returned when a YAML device profile is malformed.
	ErrFailedToParseProfile = errors.New("failed to parse device profile")

	// ErrFailedToReadProfile is returned when a device profile file cannot be read.
	ErrFailedToReadProfile = errors.New("failed to read device profile")

	// ErrInvalidProfile is returned when a profile parses but carries impossible values.
	ErrInvalidProfile = errors.New("invalid device profile")
)
