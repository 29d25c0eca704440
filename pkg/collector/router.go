package collector

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/beacon/pkg/clientip"
	"github.com/dmitrymomot/beacon/pkg/fingerprint"
	"github.com/dmitrymomot/beacon/pkg/httpserver"
	"github.com/dmitrymomot/beacon/pkg/logger"
	"github.com/dmitrymomot/beacon/pkg/ratelimiter"
	"github.com/dmitrymomot/beacon/pkg/requestid"
	"github.com/dmitrymomot/beacon/pkg/signature"
)

// Option configures the collector router.
type Option func(*handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(h *handler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

// WithResolver sets how client addresses are resolved.
func WithResolver(r *clientip.Resolver) Option {
	return func(h *handler) {
		if r != nil {
			h.resolver = r
		}
	}
}

// WithHealthChecks adds dependency checks to GET /health.
func WithHealthChecks(checks ...httpserver.HealthCheck) Option {
	return func(h *handler) {
		h.checks = append(h.checks, checks...)
	}
}

// WithRateLimit throttles POST /ingest per client address.
func WithRateLimit(b *ratelimiter.Bucket) Option {
	return func(h *handler) {
		h.limiter = b
	}
}

// WithClock replaces time.Now for submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *handler) {
		if now != nil {
			h.now = now
		}
	}
}

type handler struct {
	store    Store
	logger   *slog.Logger
	maxBody  int64
	resolver *clientip.Resolver
	checks   []httpserver.HealthCheck
	limiter  *ratelimiter.Bucket
	now      func() time.Time
}

// NewRouter mounts the collection endpoint:
//
//	POST /ingest              signed fingerprint, 202 {"id","deviceId"}
//	GET  /devices/{deviceID}  latest submission for a device
//	GET  /health              readiness
func NewRouter(v signature.Verifier, store Store, opts ...Option) http.Handler {
	h := &handler{
		store:    store,
		logger:   logger.Discard(),
		maxBody:  DefaultMaxBodyBytes,
		resolver: clientip.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(logger.Component("collector"))

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(clientip.Middleware(h.resolver))

	r.Get("/health", httpserver.HealthHandler(h.logger, h.checks...))
	r.Get("/devices/{deviceID}", h.latest)

	var ingest []func(http.Handler) http.Handler
	if h.limiter != nil {
		ingest = append(ingest, ratelimiter.Middleware(h.limiter, ratelimiter.ByClientIP, h.logger))
	}
	ingest = append(ingest, VerifySignature(v, h.maxBody, h.logger))
	r.With(ingest...).Post("/ingest", h.ingest)

	return r
}

type ingestResponse struct {
	ID       string `json:"id"`
	DeviceID string `json:"deviceId"`
}

func (h *handler) ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	rec, err := decodeRecord(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed fingerprint")
		return
	}
	if err := checkGroups(body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if rec.AppID == "" || rec.UserID == "" || rec.PubID == "" {
		writeError(w, http.StatusUnprocessableEntity, "appId, userId and pubId are required")
		return
	}

	deviceID := fingerprint.DeviceID(rec)
	ctx = fingerprint.SetDeviceIDToContext(ctx, deviceID)

	sub := Submission{
		ID:         uuid.NewString(),
		DeviceID:   deviceID,
		Record:     rec,
		ClientIP:   clientip.GetIPFromContext(ctx),
		ReceivedAt: h.now().UTC(),
	}
	attrs := []slog.Attr{
		logger.SubmissionID(sub.ID),
		logger.DeviceID(deviceID),
		logger.AppID(rec.AppID),
		logger.PubID(rec.PubID),
		logger.ClientIP(sub.ClientIP),
	}

	if err := h.store.Save(ctx, sub); err != nil {
		h.logger.LogAttrs(ctx, slog.LevelError, "failed to store fingerprint", append(attrs, logger.Error(err))...)
		writeError(w, http.StatusInternalServerError, "failed to store fingerprint")
		return
	}

	h.logger.LogAttrs(ctx, slog.LevelInfo, "fingerprint received", attrs...)
	writeJSON(w, http.StatusAccepted, ingestResponse{ID: sub.ID, DeviceID: deviceID})
}

func (h *handler) latest(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "deviceID")
	sub, err := h.store.Latest(r.Context(), deviceID)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "unknown device")
	case err != nil:
		h.logger.ErrorContext(r.Context(), "failed to read submission", logger.DeviceID(deviceID), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to read submission")
	default:
		writeJSON(w, http.StatusOK, sub)
	}
}

// decodeRecord rejects unknown fields and trailing data.
func decodeRecord(body []byte) (fingerprint.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	var rec fingerprint.Record
	if err := dec.Decode(&rec); err != nil {
		return fingerprint.Record{}, err
	}
	if dec.More() {
		return fingerprint.Record{}, errors.New("unexpected data after fingerprint")
	}
	return rec, nil
}

// recordGroups lists the keys of each optional record group, which must be
// sent together or not at all.
var recordGroups = []struct {
	name string
	keys []string
}{
	{"screen", []string{"screenWidth", "screenHeight", "colorDepth"}},
	{"audio", []string{"sampleRate", "channelCount"}},
	{"webgl", []string{"webglVendor", "webglRenderer", "webglVersion", "shadingLanguageVersion"}},
}

// checkGroups reports a group that is only partly present in body. A null
// value counts as absent.
func checkGroups(body []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return err
	}
	for _, g := range recordGroups {
		present := 0
		for _, k := range g.keys {
			if v, ok := fields[k]; ok && string(v) != "null" {
				present++
			}
		}
		if present != 0 && present != len(g.keys) {
			return fmt.Errorf("%w: %s", ErrIncompleteGroup, g.name)
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
