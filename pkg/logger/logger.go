// Package logger provides context-scoped structured logging on top of logrus.
// Diagnostic output goes here; operator-facing progress lines belong to the
// presenter package.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// G is shorthand for GetLogger.
	G = GetLogger
	// L is the process-wide entry returned when a context carries no logger.
	L = logrus.NewEntry(newLogger())
)

type loggerKey struct{}

// WithLogger returns a copy of ctx that carries the given entry.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, entry.WithContext(ctx))
}

// GetLogger returns the entry stored in ctx, or L bound to ctx.
func GetLogger(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(loggerKey{}).(*logrus.Entry); ok {
		return entry
	}
	return L.WithContext(ctx)
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	applyFormat(l, "fmt")
	return l
}

func applyFormat(l *logrus.Logger, format string) {
	switch format {
	case "json":
		l.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "logLevel",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: time.RFC3339Nano,
		}
	default:
		l.Formatter = &logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		}
	}
}

// Configure applies level and format to the global logger. An empty level
// leaves the current level in place.
func Configure(level, format string) error {
	if level != "" {
		if err := SetLogLevel(level); err != nil {
			return err
		}
	}
	SetLogFormat(format)
	return nil
}

// SetLogLevel sets the level of the global logger.
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	L.Logger.SetLevel(lvl)
	return nil
}

// SetLogFormat switches the global logger between "fmt" and "json".
func SetLogFormat(format string) {
	applyFormat(L.Logger, format)
}

// SetLogOutput redirects the global logger.
func SetLogOutput(w io.Writer) {
	L.Logger.SetOutput(w)
}
