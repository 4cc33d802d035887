package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	l := newLogger()

	formatter, ok := l.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestGetLogger(t *testing.T) {
	t.Run("falls back to global entry", func(t *testing.T) {
		entry := G(context.Background())
		assert.Equal(t, L.Logger, entry.Logger)
	})

	t.Run("returns entry stored in context", func(t *testing.T) {
		custom := logrus.NewEntry(logrus.New()).WithField("template", "review.toml")
		ctx := WithLogger(context.Background(), custom)

		entry := G(ctx)
		assert.Equal(t, "review.toml", entry.Data["template"])
	})

	t.Run("ignores foreign values under the key", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), loggerKey{}, "not-a-logger")
		entry := G(ctx)
		assert.Equal(t, L.Logger, entry.Logger)
	})
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	applyFormat(l, "json")

	ctx := WithLogger(context.Background(), logrus.NewEntry(l))
	G(ctx).WithField("path", "/tmp/x").Info("wrote output")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["logLevel"])
	assert.Equal(t, "wrote output", line["message"])
	assert.Equal(t, "/tmp/x", line["path"])

	ts, ok := line["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339Nano, ts)
	assert.NoError(t, err)
}

func TestConfigure(t *testing.T) {
	original := L.Logger.GetLevel()
	originalFormatter := L.Logger.Formatter
	t.Cleanup(func() {
		L.Logger.SetLevel(original)
		L.Logger.Formatter = originalFormatter
	})

	require.NoError(t, Configure("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, L.Logger.Formatter)

	require.NoError(t, Configure("", "fmt"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, L.Logger.Formatter)

	err := Configure("loud", "fmt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
