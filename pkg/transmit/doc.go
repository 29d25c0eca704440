// Package transmit seals fingerprint records and delivers them to a
// collection endpoint.
//
// This is a low-level package: it reports every failure as an error and
// leaves logging and swallowing to the caller (see pkg/beacon).
//
// # Sealing
//
// Seal marshals a record exactly once and signs those bytes with a
// signature.SigningKey. The resulting Submission keeps both, so the body
// that is sent is byte-for-byte the body that was signed. Re-marshalling the
// record for the request would risk a different key order and a signature
// the receiver cannot verify.
//
// # Delivery
//
//	sub, err := transmit.Seal(record, key)
//	if err != nil {
//	    return err
//	}
//	result, err := transmit.NewSender().Send(ctx, "https://collect.example/ingest", sub)
//
// Send issues exactly one POST with:
//
//	Content-Type: application/json
//	X-Signature: base64(HMAC-SHA256(secret, body))
//	User-Agent: beacon/1.0
//
// There are no retries and no timeout unless WithTimeout is passed. Only the
// status line of the response matters; a non-2xx status is returned as
// ErrUnexpectedStatus with a short, single-line excerpt of the response body.
//
// # Endpoint Policy
//
// ValidateEndpoint accepts absolute http and https URLs. Plain http is
// refused with ErrInsecureEndpoint unless the host is loopback, which keeps
// local development and tests working without letting a signed fingerprint
// travel over the network in clear text.
//
// # Errors
//
//   - ErrInvalidURL, ErrInsecureEndpoint: endpoint rejected before any I/O.
//   - ErrSerialization, ErrSigning: Seal failures.
//   - ErrTransport, ErrTimeout: the request did not complete.
//   - ErrUnexpectedStatus: the endpoint answered with a non-2xx status.
package transmit
