package utils

import (
	"log/slog"
	"strings"
	"time"
)

// ErrAttr returns a slog attribute for an error.
func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}

// SlogReplacer normalizes time and duration attributes to human-readable
// strings. All other attributes pass through unchanged.
func SlogReplacer(_ []string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindTime:
		a.Value = slog.StringValue(a.Value.Time().Format(time.DateTime))
	case slog.KindDuration:
		a.Value = slog.StringValue(a.Value.Duration().String())
	default:
	}

	return a
}

// LogOnError runs fn and logs msg with the returned error, if any.
// Intended for deferred Close calls.
func LogOnError(l *slog.Logger, fn func() error, msg string) {
	if err := fn(); err != nil {
		l.Error(msg, ErrAttr(err))
	}
}

// SlogWriter adapts an io.Writer to a slog logger, line by line.
type SlogWriter struct {
	logger *slog.Logger
}

// NewSlogWriter creates a writer that logs each non-empty line at info level.
func NewSlogWriter(l *slog.Logger) *SlogWriter {
	return &SlogWriter{logger: l}
}

func (w *SlogWriter) Write(p []byte) (int, error) {
	for line := range strings.SplitSeq(string(p), "\n") {
		if line == "" {
			continue
		}

		w.logger.Info(line)
	}

	return len(p), nil
}
