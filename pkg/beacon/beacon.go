package beacon

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/beacon/pkg/fingerprint"
	"github.com/dmitrymomot/beacon/pkg/logger"
	"github.com/dmitrymomot/beacon/pkg/probe"
	"github.com/dmitrymomot/beacon/pkg/signature"
	"github.com/dmitrymomot/beacon/pkg/transmit"
)

// Option configures a Beacon.
type Option func(*Beacon)

// WithLogger sets the logger every outcome is reported to.
func WithLogger(l *slog.Logger) Option {
	return func(b *Beacon) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithSender replaces the transmit.Sender, e.g. to use a custom HTTP client.
func WithSender(s *transmit.Sender) Option {
	return func(b *Beacon) {
		if s != nil {
			b.sender = s
		}
	}
}

// WithSendOptions passes options to every delivery.
func WithSendOptions(opts ...transmit.SendOption) Option {
	return func(b *Beacon) {
		b.sendOpts = append(b.sendOpts, opts...)
	}
}

// WithOnOutcome registers a hook called once per run, after logging.
func WithOnOutcome(fn func(Outcome)) Option {
	return func(b *Beacon) {
		b.onOutcome = fn
	}
}

// Beacon runs the collect, sign and send pipeline. It holds no per-run
// state and is safe for concurrent use.
type Beacon struct {
	probe     probe.Probe
	sender    *transmit.Sender
	sendOpts  []transmit.SendOption
	logger    *slog.Logger
	onOutcome func(Outcome)
}

// New creates a Beacon reading the environment through p.
func New(p probe.Probe, opts ...Option) *Beacon {
	b := &Beacon{
		probe:  p,
		sender: transmit.NewSender(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With(logger.Component("beacon"))
	return b
}

// Run validates cfg, collects a fingerprint and submits it, returning once
// the attempt has finished. Nothing is collected or sent when cfg is
// incomplete. Failures are logged, never returned as errors.
func (b *Beacon) Run(ctx context.Context, cfg Config) Outcome {
	if err := cfg.Validate(); err != nil {
		return b.report(ctx, Outcome{Kind: KindConfigError, Err: err},
			logger.AppID(cfg.AppID),
			logger.PubID(cfg.PubID),
		)
	}

	rec := fingerprint.Collect(ctx, b.probe, fingerprint.Identity{
		AppID:  cfg.AppID,
		UserID: cfg.UserID,
		PubID:  cfg.PubID,
	}, fingerprint.WithLogger(b.logger))

	return b.SignAndSend(ctx, rec, cfg.APIURL, cfg.SecretKey)
}

// SignAndSend serializes rec once, signs those bytes with secretKey and
// POSTs them to endpoint in a single attempt. Every failure is tagged,
// logged and swallowed.
func (b *Beacon) SignAndSend(ctx context.Context, rec fingerprint.Record, endpoint, secretKey string) Outcome {
	out := Outcome{SubmissionID: uuid.NewString()}
	attrs := []slog.Attr{
		logger.AppID(rec.AppID),
		logger.PubID(rec.PubID),
		logger.Endpoint(endpoint),
	}

	key, err := signature.NewSigningKey(secretKey)
	if err != nil {
		out.Kind, out.Err = KindCryptoError, err
		return b.report(ctx, out, attrs...)
	}

	sub, err := transmit.Seal(rec, key)
	if err != nil {
		out.Kind, out.Err = KindCryptoError, err
		return b.report(ctx, out, attrs...)
	}

	res, err := b.sender.Send(ctx, endpoint, sub, b.sendOpts...)
	out.StatusCode = res.StatusCode
	out.Duration = res.Duration
	out.Err = err
	switch {
	case err == nil:
		out.Kind = KindDelivered
	case transmit.IsStatusError(err):
		out.Kind = KindStatusError
	default:
		out.Kind = KindTransportError
	}
	return b.report(ctx, out, attrs...)
}

// report is the single sink for outcomes.
func (b *Beacon) report(ctx context.Context, out Outcome, attrs ...slog.Attr) Outcome {
	attrs = append(attrs, logger.Outcome(string(out.Kind)))
	if out.SubmissionID != "" {
		attrs = append(attrs, logger.SubmissionID(out.SubmissionID))
	}
	if out.Duration > 0 {
		attrs = append(attrs, logger.Duration(out.Duration))
	}
	attrs = append(attrs, logger.StatusCode(out.StatusCode), logger.Error(out.Err))

	level := slog.LevelError
	if out.OK() {
		level = slog.LevelInfo
	}
	b.logger.LogAttrs(ctx, level, out.Kind.message(), attrs...)

	if b.onOutcome != nil {
		b.onOutcome(out)
	}
	return out
}

// Run executes one pass with the host probe and the default logger.
func Run(ctx context.Context, cfg Config) {
	New(probe.NewHost()).Run(ctx, cfg)
}
