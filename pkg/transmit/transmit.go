package transmit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/beacon/pkg/signature"
)

// UserAgent identifies the beacon to collection endpoints.
const UserAgent = "beacon/1.0"

// Submission is a serialized record together with the signature computed
// over exactly those bytes. Body is sent as-is and must not be re-encoded.
type Submission struct {
	Body      []byte
	Signature string
}

// Seal serializes record once and signs the resulting bytes.
func Seal(record any, key signature.SigningKey) (Submission, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return Submission{}, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	sig, err := key.Sign(body)
	if err != nil {
		return Submission{}, fmt.Errorf("%w: %w", ErrSigning, err)
	}
	return Submission{Body: body, Signature: sig}, nil
}

// ValidateEndpoint accepts absolute http(s) URLs with a host. Plain http
// is only accepted for loopback hosts.
func ValidateEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("%w: URL is required", ErrInvalidURL)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	if u.Scheme == "http" && !isLoopback(u.Hostname()) {
		return fmt.Errorf("%w: %s", ErrInsecureEndpoint, u.Hostname())
	}
	return nil
}

func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// Sender delivers sealed submissions. It never retries.
// Zero value is not usable; use NewSender to create instances.
type Sender struct {
	client *http.Client
}

// NewSender creates a sender using http.DefaultClient.
func NewSender() *Sender {
	return &Sender{client: http.DefaultClient}
}

// NewSenderWithClient creates a sender with a custom HTTP client.
func NewSenderWithClient(client *http.Client) *Sender {
	if client == nil {
		return NewSender()
	}
	return &Sender{client: client}
}

// Send POSTs sub.Body to endpoint with the Content-Type and X-Signature
// headers in a single attempt. Any non-2xx status is reported as
// ErrUnexpectedStatus.
func (s *Sender) Send(ctx context.Context, endpoint string, sub Submission, opts ...SendOption) (DeliveryResult, error) {
	if err := ValidateEndpoint(endpoint); err != nil {
		return DeliveryResult{Error: err}, err
	}
	if len(sub.Body) == 0 {
		err := fmt.Errorf("%w: body cannot be empty", ErrInvalidPayload)
		return DeliveryResult{Error: err}, err
	}
	if sub.Signature == "" {
		err := fmt.Errorf("%w: signature cannot be empty", ErrInvalidPayload)
		return DeliveryResult{Error: err}, err
	}

	options := defaultSendOptions()
	for _, opt := range opts {
		opt(options)
	}

	client := s.client
	if options.httpClient != nil {
		client = options.httpClient
	}

	result, err := s.deliver(ctx, client, endpoint, sub, options)
	if options.onDelivery != nil {
		options.onDelivery(result)
	}
	return result, err
}

func (s *Sender) deliver(ctx context.Context, client *http.Client, endpoint string, sub Submission, options *sendOptions) (DeliveryResult, error) {
	start := time.Now()
	result := DeliveryResult{}

	reqCtx := ctx
	if options.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, options.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(sub.Body))
	if err != nil {
		result.Duration = time.Since(start)
		result.Error = fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
		return result, result.Error
	}

	for k, v := range options.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signature.HeaderSignature, sub.Signature)

	resp, err := client.Do(req)
	result.Duration = time.Since(start)

	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			result.Error = fmt.Errorf("%w: %w", ErrTimeout, err)
		} else {
			result.Error = fmt.Errorf("%w: %w", ErrTransport, err)
		}
		return result, result.Error
	}

	defer func() { _ = resp.Body.Close() }()
	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300

	// 64KB is plenty for an error excerpt
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024*64))

	if !result.Success {
		errMsg := fmt.Sprintf("status %d", resp.StatusCode)
		if len(body) > 0 {
			// Single line, truncated, so it is safe to log
			bodyStr := strings.ReplaceAll(string(body), "\n", " ")
			if len(bodyStr) > 200 {
				bodyStr = bodyStr[:200] + "..."
			}
			errMsg += ": " + bodyStr
		}
		result.Error = fmt.Errorf("%w: %s", ErrUnexpectedStatus, errMsg)
		return result, result.Error
	}

	return result, nil
}
