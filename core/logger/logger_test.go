package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dashboard/core/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNewPresets(t *testing.T) {
	t.Parallel()

	t.Run("production is json at info", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithProduction("dashboard"), logger.WithOutput(&buf))

		log.Debug("hidden")
		assert.Zero(t, buf.Len())

		log.Info("visible")
		m := decode(t, &buf)
		assert.Equal(t, "visible", m["msg"])
		assert.Equal(t, "dashboard", m["service"])
		assert.Equal(t, "production", m["env"])
	})

	t.Run("development is text at debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("dashboard"), logger.WithOutput(&buf))

		log.Debug("details")
		assert.Contains(t, buf.String(), "msg=details")
		assert.Contains(t, buf.String(), "service=dashboard")
	})

	t.Run("later options override presets", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithDevelopment("dashboard"),
			logger.WithLevel(slog.LevelWarn),
			logger.WithJSONFormatter(),
			logger.WithOutput(&buf),
		)
		log.Info("hidden")
		assert.Zero(t, buf.Len())

		log.Warn("shown")
		assert.Equal(t, "WARN", decode(t, &buf)["level"])
	})
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	type key struct{}
	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextValue("session_id", key{}),
	).With(logger.Component("auth"))

	ctx := context.WithValue(context.Background(), key{}, "abc")
	log.InfoContext(ctx, "validated")

	m := decode(t, &buf)
	assert.Equal(t, "abc", m["session_id"])
	assert.Equal(t, "auth", m["component"])

	buf.Reset()
	log.InfoContext(context.Background(), "no session")
	assert.NotContains(t, decode(t, &buf), "session_id")
}

func TestAttrHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.SessionID("").Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.True(t, logger.ClientIP("").Equal(slog.Attr{}))
	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
	assert.True(t, logger.Key("k", nil).Equal(slog.Attr{}))

	assert.Equal(t, "session_id", logger.SessionID("abc").Key)
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)
	assert.Equal(t, "latency", logger.Latency(time.Second).Key)
	assert.Equal(t, int64(404), logger.StatusCode(404).Value.Int64())

	errs := logger.Errors(nil, errors.New("b"))
	require.Equal(t, slog.KindGroup, errs.Value.Kind())
	assert.Equal(t, "1", errs.Value.Group()[0].Key)
}
