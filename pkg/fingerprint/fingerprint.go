package fingerprint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrymomot/beacon/pkg/logger"
	"github.com/dmitrymomot/beacon/pkg/probe"
)

// Record is the flat identity record submitted to the collection endpoint.
// Field order is the serialization order. Screen, Audio and WebGL groups
// are jointly present or jointly absent.
type Record struct {
	Language            string   `json:"language"`
	Platform            string   `json:"platform"`
	UserAgent           string   `json:"userAgent"`
	Vendor              string   `json:"vendor"`
	MaxTouchPoints      int      `json:"maxTouchPoints"`
	HardwareConcurrency int      `json:"hardwareConcurrency"`
	DeviceMemory        *float64 `json:"deviceMemory,omitempty"`

	*Screen
	*Audio
	*WebGL

	AppID  string `json:"appId"`
	UserID string `json:"userId"`
	PubID  string `json:"pubId"`
}

// Screen is the display geometry group.
type Screen struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	ColorDepth   int `json:"colorDepth"`
}

// Audio is the audio subsystem group.
type Audio struct {
	SampleRate   float64 `json:"sampleRate"`
	ChannelCount int     `json:"channelCount"`
}

// WebGL is the graphics identification group.
type WebGL struct {
	WebGLVendor            string `json:"webglVendor"`
	WebGLRenderer          string `json:"webglRenderer"`
	WebGLVersion           string `json:"webglVersion"`
	ShadingLanguageVersion string `json:"shadingLanguageVersion"`
}

// Identity carries the caller-supplied identifiers attached to every record.
type Identity struct {
	AppID  string
	UserID string
	PubID  string
}

// Option configures Collect.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger receiving debug entries for unavailable capabilities.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Collect reads the environment through p and returns a fresh record
// carrying the given identity. It never fails: a capability that cannot be
// read leaves its group absent. Transient audio and graphics contexts are
// released before Collect returns.
func Collect(ctx context.Context, p probe.Probe, id Identity, opts ...Option) Record {
	o := &options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	rec := Record{
		AppID:  id.AppID,
		UserID: id.UserID,
		PubID:  id.PubID,
	}

	if nav, err := p.Navigator(ctx); err != nil {
		degraded(ctx, o.logger, "navigator", err)
	} else {
		rec.Language = nav.Language
		rec.Platform = nav.Platform
		rec.UserAgent = nav.UserAgent
		rec.Vendor = nav.Vendor
		rec.MaxTouchPoints = max(nav.MaxTouchPoints, 0)
		rec.HardwareConcurrency = max(nav.HardwareConcurrency, 0)
		if m := nav.DeviceMemory; m != nil && finite(*m) {
			rec.DeviceMemory = m
		} else if m != nil {
			degraded(ctx, o.logger, "navigator.device_memory", probe.ErrUnsupported)
		}
	}

	rec.Screen = collectScreen(ctx, p, o.logger)
	rec.Audio = collectAudio(ctx, p, o.logger)
	rec.WebGL = collectWebGL(ctx, p, o.logger)

	return rec
}

func collectScreen(ctx context.Context, p probe.Probe, log *slog.Logger) *Screen {
	d, err := p.Display(ctx)
	if err != nil {
		degraded(ctx, log, "display", err)
		return nil
	}
	if d.Width <= 0 || d.Height <= 0 {
		degraded(ctx, log, "display", probe.ErrUnsupported)
		return nil
	}
	return &Screen{ScreenWidth: d.Width, ScreenHeight: d.Height, ColorDepth: d.ColorDepth}
}

func collectAudio(ctx context.Context, p probe.Probe, log *slog.Logger) *Audio {
	ac, err := p.OpenAudio(ctx)
	if err != nil {
		degraded(ctx, log, "audio", err)
		return nil
	}
	defer func() {
		if err := ac.Close(); err != nil {
			degraded(ctx, log, "audio.close", err)
		}
	}()

	rate, err := ac.SampleRate()
	if err != nil {
		degraded(ctx, log, "audio.sample_rate", err)
		return nil
	}
	channels, err := ac.MaxChannelCount()
	if err != nil {
		degraded(ctx, log, "audio.channel_count", err)
		return nil
	}
	if channels <= 0 {
		degraded(ctx, log, "audio.channel_count", probe.ErrUnsupported)
		return nil
	}
	if !finite(rate) {
		degraded(ctx, log, "audio.sample_rate", probe.ErrUnsupported)
		return nil
	}
	return &Audio{SampleRate: rate, ChannelCount: channels}
}

func collectWebGL(ctx context.Context, p probe.Probe, log *slog.Logger) *WebGL {
	gc, err := p.OpenGraphics(ctx)
	if err != nil {
		degraded(ctx, log, "graphics", err)
		return nil
	}
	defer func() {
		if err := gc.Release(); err != nil {
			degraded(ctx, log, "graphics.release", err)
		}
	}()

	params, err := gc.Parameters()
	if err != nil {
		degraded(ctx, log, "graphics.parameters", err)
		return nil
	}
	return &WebGL{
		WebGLVendor:            params.Vendor,
		WebGLRenderer:          params.Renderer,
		WebGLVersion:           params.Version,
		ShadingLanguageVersion: params.ShadingLanguageVersion,
	}
}

// finite reports whether f can be encoded as a JSON number.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func degraded(ctx context.Context, log *slog.Logger, capability string, err error) {
	log.DebugContext(ctx, "capability unavailable",
		slog.String("capability", capability),
		logger.Error(err),
	)
}

// DeviceID derives a 32-character hex identifier from the device attributes
// of a record. Caller identifiers are excluded, so the same device yields
// the same ID across apps, users and publishers.
func DeviceID(r Record) string {
	components := []string{
		r.UserAgent,
		r.Language,
		r.Platform,
		r.Vendor,
		strconv.Itoa(r.MaxTouchPoints),
		strconv.Itoa(r.HardwareConcurrency),
	}
	if r.DeviceMemory != nil {
		components = append(components, strconv.FormatFloat(*r.DeviceMemory, 'g', -1, 64))
	}
	if s := r.Screen; s != nil {
		components = append(components, strconv.Itoa(s.ScreenWidth)+"x"+strconv.Itoa(s.ScreenHeight)+"x"+strconv.Itoa(s.ColorDepth))
	}
	if a := r.Audio; a != nil {
		components = append(components, strconv.FormatFloat(a.SampleRate, 'g', -1, 64)+"/"+strconv.Itoa(a.ChannelCount))
	}
	if g := r.WebGL; g != nil {
		components = append(components, g.WebGLVendor, g.WebGLRenderer, g.WebGLVersion, g.ShadingLanguageVersion)
	}

	var filtered []string
	for _, comp := range components {
		if comp != "" {
			filtered = append(filtered, comp)
		}
	}

	hash := sha256.Sum256([]byte(strings.Join(filtered, "|")))
	return hex.EncodeToString(hash[:16])
}
