package transmit

import "errors"

// Errors returned when a submission cannot be sealed or delivered.
var (
	ErrInvalidURL       = errors.New("invalid endpoint URL")
	ErrInsecureEndpoint = errors.New("endpoint must use https unless it is a loopback host")
	ErrInvalidPayload   = errors.New("invalid submission payload")
	ErrSerialization    = errors.New("failed to serialize record")
	ErrSigning          = errors.New("failed to sign submission")
	ErrTransport        = errors.New("submission transport failure")
	ErrTimeout          = errors.New("submission request timeout")
	ErrUnexpectedStatus = errors.New("endpoint returned non-success status")
)

// IsStatusError reports whether err was caused by a non-2xx response.
func IsStatusError(err error) bool {
	return errors.Is(err, ErrUnexpectedStatus)
}
