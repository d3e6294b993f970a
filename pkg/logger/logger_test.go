package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates JSON logger", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("skipped")
		assert.Empty(t, buf.String())
	})

	t.Run("includes static attributes", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test")))
		log.Info("msg")
		assert.Equal(t, "test", decode(t, buf)["svc"])
	})

	t.Run("extracts context values", func(t *testing.T) {
		t.Parallel()
		type key string
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextValue("request_id", key("rid")),
		)
		ctx := context.WithValue(context.Background(), key("rid"), "42")
		log.With(logger.Form("contact")).InfoContext(ctx, "validated")

		entry := decode(t, buf)
		assert.Equal(t, "42", entry["request_id"])
		assert.Equal(t, "contact", entry["form"])
	})

	t.Run("service attribute", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithService("formkit"), logger.WithService(""), logger.WithOutput(buf))
		log.Info("msg")
		assert.Equal(t, "formkit", decode(t, buf)["service"])
	})

	t.Run("extractors survive groups", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(context.Context) (slog.Attr, bool) {
				return slog.String("lang", "de"), true
			}),
		)
		log.WithGroup("form").Info("msg", slog.String("name", "contact"))
		assert.Equal(t, map[string]any{"name": "contact", "lang": "de"}, decode(t, buf)["form"])
	})
}

func TestWithContext_NoExtractors(t *testing.T) {
	t.Parallel()

	h := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	assert.Same(t, h, logger.WithContext(h, nil))
}

func TestParse(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := logger.Parse("debug", "TEXT", buf)
	require.NoError(t, err)
	log.Debug("hello")
	assert.Contains(t, buf.String(), "level=DEBUG")

	_, err = logger.Parse("loud", "json", buf)
	assert.Error(t, err)

	_, err = logger.Parse("info", "xml", buf)
	assert.Error(t, err)

	f, err := logger.ParseFormat(" Json ")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatJSON, f)
}

func TestWithFormatPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	l, err := logger.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = logger.ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = logger.ParseLevel("loud")
	assert.Error(t, err)
}
