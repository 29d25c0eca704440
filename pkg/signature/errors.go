package signature

import "errors"

var (
	ErrInvalidKey         = errors.New("invalid signing key")
	ErrEmptyPayload       = errors.New("payload cannot be empty")
	ErrMissingSignature   = errors.New("signature is missing")
	ErrMalformedSignature = errors.New("signature is not valid base64")
	ErrSignatureMismatch  = errors.New("signature mismatch")
)
