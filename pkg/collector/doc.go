// Package collector is the receiving side of a beacon: an HTTP endpoint
// that verifies X-Signature over the raw body and stores the fingerprint.
//
// Signature verification runs before any decoding, over exactly the bytes
// that were received. Verified records are decoded strictly (unknown
// fields are rejected), keyed by fingerprint.DeviceID and saved together
// with the client address.
//
//	v, _ := signature.NewVerifier(secret)
//	router := collector.NewRouter(v, collector.NewMemoryStore(),
//	    collector.WithLogger(log),
//	)
//
// Responses of POST /ingest:
//
//	202  stored, body {"id": "<uuid>", "deviceId": "<hex>"}
//	400  unreadable or malformed JSON
//	401  missing or invalid signature
//	413  body larger than the configured cap
//	422  appId, userId or pubId missing, or a screen, audio or webgl
//	     group only partly present
//	500  store failure
//
// MemoryStore serves tests and single-instance deployments; RedisStore
// shares state between collector replicas.
package collector
