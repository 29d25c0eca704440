// Package fingerprint collects the identity record a beacon submits for a
// device/browser instance.
//
// Collect reads the environment through a probe.Probe and returns a flat
// Record combining navigator identification, display geometry, the audio
// subsystem and graphics identification strings with the caller-supplied
// app, user and publisher identifiers.
//
// # Architecture
//
//   - Record: the value object that is serialized as the request body. Its
//     struct field order is the JSON key order. Display, audio and graphics
//     values live in embedded pointer groups (Screen, Audio, WebGL), so each
//     group is either fully present or fully omitted from the JSON.
//   - Collect: never fails. A capability the probe cannot provide leaves
//     its group absent and is reported at debug level through WithLogger.
//     Audio and graphics contexts are released on every exit path.
//   - DeviceID: a SHA-256 based 32-character hex identifier computed over
//     the device attributes only, for receivers that need a stable key.
//   - Context helpers: SetDeviceIDToContext / GetDeviceIDFromContext and a
//     logger extractor for request-scoped device IDs.
//
// # Usage
//
//	rec := fingerprint.Collect(ctx, probe.NewHost(), fingerprint.Identity{
//	    AppID:  "a1",
//	    UserID: "u1",
//	    PubID:  "p1",
//	})
//
//	body, _ := json.Marshal(rec)
//
// # Error Handling
//
// Collect has no error return by contract. Records are created fresh for
// every call and are never cached.
package fingerprint
