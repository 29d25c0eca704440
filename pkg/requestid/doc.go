// Package requestid correlates collector log lines belonging to one request.
//
// Middleware accepts a caller supplied X-Request-ID when it is at most 128
// characters of [a-zA-Z0-9_-], otherwise it generates a UUID. The ID is
// echoed in the response header and made available through FromContext and
// LoggerExtractor.
package requestid
