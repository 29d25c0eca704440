// Package beacon collects a device fingerprint and submits it, signed, to a
// collection endpoint.
//
// A run is a strict sequence with no retries:
//
//  1. Config.Validate: appId, userId, pubId, apiUrl and secretKey must all
//     be non-empty and apiUrl must pass transmit.ValidateEndpoint. On
//     failure nothing is collected and nothing is sent.
//  2. fingerprint.Collect: reads the environment through a probe.Probe.
//  3. SignAndSend: imports the secret as a sign-only key, serializes the
//     record once, signs those bytes and POSTs them with X-Signature.
//
// Run blocks until the attempt has finished, so returning from Run means
// "attempt finished", not "attempt succeeded".
//
// # Usage
//
//	b := beacon.New(probe.NewHost(),
//	    beacon.WithLogger(log),
//	)
//	b.Run(ctx, beacon.Config{
//	    AppID:     "a1",
//	    UserID:    "u1",
//	    PubID:     "p1",
//	    APIURL:    "https://collect.example/ingest",
//	    SecretKey: secret,
//	})
//
// # Error Handling
//
// Run and SignAndSend never return errors. Each failure becomes an Outcome
// tagged with its Kind:
//
//   - KindConfigError: missing parameter or rejected endpoint.
//   - KindCryptoError: key import, serialization or signing failed.
//   - KindTransportError: the request did not complete.
//   - KindStatusError: the endpoint answered with a non-2xx status.
//
// Every Outcome goes through one reporting path: delivered runs are logged
// at info level, all others exactly once at error level, and then the
// optional WithOnOutcome hook is invoked. The returned Outcome can be
// ignored.
package beacon
