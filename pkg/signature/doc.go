// Package signature authenticates beacon submissions with HMAC-SHA256.
//
// The sending side imports the shared secret into a SigningKey, which can
// only sign. The digest is computed over the exact bytes that are sent as
// the request body and travels base64-encoded in the X-Signature header:
//
//	key, err := signature.NewSigningKey(secret)
//	if err != nil {
//	    return err
//	}
//	sig, err := key.Sign(body)
//	req.Header.Set(signature.HeaderSignature, sig)
//
// A receiver holding the same secret recomputes the digest over the raw
// body bytes it received, without decoding and re-encoding the JSON:
//
//	v, _ := signature.NewVerifier(secret)
//	if err := v.VerifyRequest(r, body); err != nil {
//	    http.Error(w, "invalid signature", http.StatusUnauthorized)
//	    return
//	}
//
// Comparison uses hmac.Equal, so verification time does not depend on how
// many leading bytes match.
//
// # Errors
//
//   - ErrInvalidKey: empty secret or zero-value key.
//   - ErrEmptyPayload: nothing to sign or verify.
//   - ErrMissingSignature / ErrMalformedSignature: header absent or not base64.
//   - ErrSignatureMismatch: digest differs.
package signature
