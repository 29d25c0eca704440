package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/beacon/pkg/logger"
)

// HealthCheck is a dependency probe, e.g. redis.Healthcheck.
type HealthCheck func(context.Context) error

// HealthHandler answers 200 {"status":"ok"} when every check passes and
// 503 {"status":"unavailable"} otherwise. Without checks it is a liveness
// probe.
func HealthHandler(log *slog.Logger, checks ...HealthCheck) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		status, body := http.StatusOK, "ok"
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				status, body = http.StatusServiceUnavailable, "unavailable"
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": body})
	}
}
