package collector

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/beacon/pkg/logger"
	"github.com/dmitrymomot/beacon/pkg/signature"
)

// DefaultMaxBodyBytes caps the size of an ingested body.
const DefaultMaxBodyBytes int64 = 64 << 10

// VerifySignature reads at most maxBytes of the body, checks X-Signature
// against those exact bytes and hands a fresh reader over them to next.
// Unsigned or mis-signed requests get 401, oversized bodies 413.
func VerifySignature(v signature.Verifier, maxBytes int64, log *slog.Logger) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	if log == nil {
		log = logger.Discard()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
					return
				}
				writeError(w, http.StatusBadRequest, "failed to read request body")
				return
			}

			if err := v.VerifyRequest(r, body); err != nil {
				log.WarnContext(r.Context(), "signature rejected", logger.Error(err))
				writeError(w, http.StatusUnauthorized, "invalid signature")
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			r.ContentLength = int64(len(body))
			next.ServeHTTP(w, r)
		})
	}
}
