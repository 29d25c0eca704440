package transmit_test

import (
	"context"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beacon/pkg/signature"
	"github.com/dmitrymomot/beacon/pkg/transmit"
)

type sample struct {
	AppID string `json:"appId"`
	Score int    `json:"score"`
}

func mustKey(t *testing.T, secret string) signature.SigningKey {
	t.Helper()
	key, err := signature.NewSigningKey(secret)
	require.NoError(t, err)
	return key
}

func TestSeal(t *testing.T) {
	t.Parallel()

	t.Run("signs the serialized bytes", func(t *testing.T) {
		t.Parallel()

		sub, err := transmit.Seal(sample{AppID: "a1", Score: 3}, mustKey(t, "s3cr3t"))
		require.NoError(t, err)
		assert.Equal(t, `{"appId":"a1","score":3}`, string(sub.Body))

		v, err := signature.NewVerifier("s3cr3t")
		require.NoError(t, err)
		assert.NoError(t, v.Verify(sub.Body, sub.Signature))
	})

	t.Run("serialization failure", func(t *testing.T) {
		t.Parallel()

		_, err := transmit.Seal(map[string]float64{"x": math.NaN()}, mustKey(t, "s3cr3t"))
		assert.ErrorIs(t, err, transmit.ErrSerialization)
	})

	t.Run("signing failure", func(t *testing.T) {
		t.Parallel()

		_, err := transmit.Seal(sample{AppID: "a1"}, signature.SigningKey{})
		assert.ErrorIs(t, err, transmit.ErrSigning)
		assert.ErrorIs(t, err, signature.ErrInvalidKey)
	})
}

func TestSender_Send_Success(t *testing.T) {
	t.Parallel()

	sub, err := transmit.Seal(sample{AppID: "a1"}, mustKey(t, "s3cr3t"))
	require.NoError(t, err)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, transmit.UserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, sub.Signature, r.Header.Get(signature.HeaderSignature))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, sub.Body, body)

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	var results []transmit.DeliveryResult
	result, err := transmit.NewSender().Send(context.Background(), server.URL, sub,
		transmit.WithHeader("X-Trace", "t1"),
		transmit.WithOnDelivery(func(r transmit.DeliveryResult) { results = append(results, r) }),
	)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, http.StatusAccepted, result.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
}

func TestSender_Send_CustomHeadersCannotOverrideSignature(t *testing.T) {
	t.Parallel()

	sub, err := transmit.Seal(sample{AppID: "a1"}, mustKey(t, "s3cr3t"))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, sub.Signature, r.Header.Get(signature.HeaderSignature))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "t1", r.Header.Get("X-Trace"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err = transmit.NewSender().Send(context.Background(), server.URL, sub,
		transmit.WithHeader(signature.HeaderSignature, "forged"),
		transmit.WithHeader("Content-Type", "text/plain"),
		transmit.WithHeader("X-Trace", "t1"),
	)
	require.NoError(t, err)
}

func TestSender_Send_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
	}{
		{"bad request", http.StatusBadRequest},
		{"unauthorized", http.StatusUnauthorized},
		{"server error", http.StatusInternalServerError},
		{"redirect without location", http.StatusMultipleChoices},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope\nsecond line"))
			}))
			defer server.Close()

			sub, err := transmit.Seal(sample{AppID: "a1"}, mustKey(t, "s3cr3t"))
			require.NoError(t, err)

			result, err := transmit.NewSender().Send(context.Background(), server.URL, sub)
			require.Error(t, err)
			assert.True(t, transmit.IsStatusError(err))
			assert.False(t, result.Success)
			assert.Equal(t, tt.status, result.StatusCode)
			assert.NotContains(t, err.Error(), "\n")
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retries")
		})
	}
}

func TestSender_Send_TruncatesLongErrorBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	sub, err := transmit.Seal(sample{AppID: "a1"}, mustKey(t, "s3cr3t"))
	require.NoError(t, err)

	_, err = transmit.NewSender().Send(context.Background(), server.URL, sub)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "...")
	assert.Less(t, len(err.Error()), 300)
}

func TestSender_Send_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	sub, err := transmit.Seal(sample{AppID: "a1"}, mustKey(t, "s3cr3t"))
	require.NoError(t, err)

	result, err := transmit.NewSender().Send(context.Background(), url, sub)
	assert.ErrorIs(t, err, transmit.ErrTransport)
	assert.False(t, result.Success)
	assert.Zero(t, result.StatusCode)
}

func TestSender_Send_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	sub, err := transmit.Seal(sample{AppID: "a1"}, mustKey(t, "s3cr3t"))
	require.NoError(t, err)

	_, err = transmit.NewSender().Send(context.Background(), server.URL, sub, transmit.WithTimeout(50*time.Millisecond))
	assert.ErrorIs(t, err, transmit.ErrTimeout)
}

func TestSender_Send_InvalidInput(t *testing.T) {
	t.Parallel()

	sub, err := transmit.Seal(sample{AppID: "a1"}, mustKey(t, "s3cr3t"))
	require.NoError(t, err)
	sender := transmit.NewSender()

	_, err = sender.Send(context.Background(), "", sub)
	assert.ErrorIs(t, err, transmit.ErrInvalidURL)

	_, err = sender.Send(context.Background(), "http://127.0.0.1:1/ingest", transmit.Submission{Signature: "x"})
	assert.ErrorIs(t, err, transmit.ErrInvalidPayload)

	_, err = sender.Send(context.Background(), "http://127.0.0.1:1/ingest", transmit.Submission{Body: []byte("{}")})
	assert.ErrorIs(t, err, transmit.ErrInvalidPayload)
}

func TestValidateEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url     string
		wantErr error
	}{
		{"https://collect.example/ingest", nil},
		{"http://localhost:8080/ingest", nil},
		{"http://127.0.0.1:9000/ingest", nil},
		{"http://[::1]:9000/ingest", nil},
		{"http://collect.example/ingest", transmit.ErrInsecureEndpoint},
		{"ftp://collect.example/ingest", transmit.ErrInvalidURL},
		{"/relative/path", transmit.ErrInvalidURL},
		{"https://", transmit.ErrInvalidURL},
		{"://bad", transmit.ErrInvalidURL},
		{"", transmit.ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			err := transmit.ValidateEndpoint(tt.url)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
