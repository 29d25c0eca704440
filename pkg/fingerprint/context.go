package fingerprint

import (
	"context"
	"log/slog"
)

type deviceIDContextKey struct{}

func SetDeviceIDToContext(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDContextKey{}, deviceID)
}

func GetDeviceIDFromContext(ctx context.Context) string {
	deviceID, _ := ctx.Value(deviceIDContextKey{}).(string)
	return deviceID
}

// LoggerExtractor returns a logger context extractor adding the device ID
// stored in the context under the key "device_id".
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := GetDeviceIDFromContext(ctx); id != "" {
			return slog.String("device_id", id), true
		}
		return slog.Attr{}, false
	}
}
