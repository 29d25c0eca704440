package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beacon/pkg/logger"
)

func TestNewLogHandlerDecorator(t *testing.T) {
	t.Parallel()

	t.Run("no extractors returns the wrapped handler", func(t *testing.T) {
		t.Parallel()
		next := slog.NewJSONHandler(&bytes.Buffer{}, nil)
		assert.Same(t, next, logger.NewLogHandlerDecorator(next))
		assert.Same(t, next, logger.NewLogHandlerDecorator(next, nil, nil))
	})

	t.Run("adds extracted attributes and skips empty ones", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		h := logger.NewLogHandlerDecorator(slog.NewJSONHandler(buf, nil),
			func(context.Context) (slog.Attr, bool) { return logger.DeviceID("d1"), true },
			func(context.Context) (slog.Attr, bool) { return logger.ClientIP(""), true },
			func(context.Context) (slog.Attr, bool) { return logger.RequestID("r1"), false },
		)
		require.IsType(t, &logger.LogHandlerDecorator{}, h)

		slog.New(h).With(slog.String("k", "v")).InfoContext(context.Background(), "msg")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "d1", entry["device_id"])
		assert.Equal(t, "v", entry["k"])
		assert.NotContains(t, entry, "request_id")
		assert.NotContains(t, entry, "")
	})
}
