package beacon

import "time"

// Kind classifies how a run ended.
type Kind string

const (
	KindDelivered      Kind = "delivered"
	KindConfigError    Kind = "config_error"
	KindCryptoError    Kind = "crypto_error"
	KindTransportError Kind = "transport_error"
	KindStatusError    Kind = "status_error"
)

// Outcome describes a finished run. It is informational: a failed run is
// already logged when the Outcome is returned.
type Outcome struct {
	Kind         Kind
	SubmissionID string
	StatusCode   int
	Duration     time.Duration
	Err          error
}

// OK reports whether the endpoint accepted the submission.
func (o Outcome) OK() bool {
	return o.Kind == KindDelivered
}

func (k Kind) message() string {
	switch k {
	case KindDelivered:
		return "fingerprint delivered"
	case KindConfigError:
		return "missing or invalid beacon parameters"
	case KindCryptoError:
		return "failed to serialize or sign fingerprint"
	case KindStatusError:
		return "collection endpoint rejected fingerprint"
	default:
		return "failed to send fingerprint"
	}
}
