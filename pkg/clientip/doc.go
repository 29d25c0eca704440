// Package clientip resolves the address a fingerprint submission came from.
//
// A Resolver checks proxy headers in order (CF-Connecting-IP,
// X-Forwarded-For, X-Real-IP by default) and falls back to the TCP peer
// address. Comma-separated lists yield their first valid entry. Addresses
// are normalized, so IPv4-mapped IPv6 addresses come back as plain IPv4.
//
// Middleware stores the resolved address in the request context, where the
// collector picks it up for each stored submission and LoggerExtractor adds
// it to log records:
//
//	r.Use(clientip.Middleware(clientip.New(clientip.WithoutProxyHeaders())))
//
// Resolution never fails: an empty string means no valid address was found.
package clientip
