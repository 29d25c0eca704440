package transmit

import (
	"net/http"
	"time"
)

// DeliveryResult describes the single delivery attempt of a submission.
type DeliveryResult struct {
	Success    bool
	StatusCode int
	Duration   time.Duration
	Error      error
}

// DeliveryHook is called after the delivery attempt.
type DeliveryHook func(result DeliveryResult)

type sendOptions struct {
	timeout    time.Duration
	headers    map[string]string
	httpClient *http.Client
	onDelivery DeliveryHook
}

// No timeout by default: the request lives as long as ctx and the client allow.
func defaultSendOptions() *sendOptions {
	return &sendOptions{
		headers: make(map[string]string),
	}
}

// SendOption is a functional option for configuring a send.
type SendOption func(*sendOptions)

// WithTimeout bounds the request duration. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) SendOption {
	return func(o *sendOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHeader adds a custom header. Content-Type and X-Signature cannot be overridden.
func WithHeader(key, value string) SendOption {
	return func(o *sendOptions) {
		if key != "" && value != "" {
			o.headers[key] = value
		}
	}
}

// WithHTTPClient sets a custom HTTP client for the request.
func WithHTTPClient(client *http.Client) SendOption {
	return func(o *sendOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithOnDelivery sets a callback invoked after the delivery attempt.
func WithOnDelivery(hook DeliveryHook) SendOption {
	return func(o *sendOptions) {
		o.onDelivery = hook
	}
}
