package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
)

// HeaderSignature carries the base64 HMAC-SHA256 digest of the request body.
const HeaderSignature = "X-Signature"

// SigningKey is HMAC-SHA256 key material restricted to producing signatures.
// It has no verification method; receivers use Verifier.
type SigningKey struct {
	key []byte
}

// NewSigningKey imports the shared secret as raw UTF-8 key bytes.
func NewSigningKey(secret string) (SigningKey, error) {
	if secret == "" {
		return SigningKey{}, fmt.Errorf("%w: secret is required", ErrInvalidKey)
	}
	return SigningKey{key: []byte(secret)}, nil
}

// Sign returns base64(HMAC-SHA256(key, payload)) over the exact payload bytes.
func (k SigningKey) Sign(payload []byte) (string, error) {
	if len(k.key) == 0 {
		return "", fmt.Errorf("%w: key was not imported", ErrInvalidKey)
	}
	if len(payload) == 0 {
		return "", ErrEmptyPayload
	}
	return base64.StdEncoding.EncodeToString(digest(k.key, payload)), nil
}

// Verifier checks signatures produced with the same shared secret.
type Verifier struct {
	key []byte
}

// NewVerifier imports the shared secret for verification.
func NewVerifier(secret string) (Verifier, error) {
	if secret == "" {
		return Verifier{}, fmt.Errorf("%w: secret is required", ErrInvalidKey)
	}
	return Verifier{key: []byte(secret)}, nil
}

// Verify recomputes the digest over payload and compares it in constant time.
func (v Verifier) Verify(payload []byte, signature string) error {
	if len(v.key) == 0 {
		return fmt.Errorf("%w: key was not imported", ErrInvalidKey)
	}
	if len(payload) == 0 {
		return ErrEmptyPayload
	}
	if signature == "" {
		return ErrMissingSignature
	}

	got, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSignature, err)
	}
	if !hmac.Equal(digest(v.key, payload), got) {
		return ErrSignatureMismatch
	}
	return nil
}

// VerifyRequest verifies the signature header of r against body.
func (v Verifier) VerifyRequest(r *http.Request, body []byte) error {
	return v.Verify(body, r.Header.Get(HeaderSignature))
}

func digest(key, payload []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(payload)
	return h.Sum(nil)
}
