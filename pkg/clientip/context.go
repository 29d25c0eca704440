package clientip

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/beacon/pkg/logger"
)

type clientIPContextKey struct{}

// SetIPToContext stores the client IP in ctx.
func SetIPToContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// GetIPFromContext returns the client IP stored in ctx, or "".
func GetIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

// LoggerExtractor adds "client_ip" to log records whose context carries one.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		ip := GetIPFromContext(ctx)
		return logger.ClientIP(ip), ip != ""
	}
}
