package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// badgerLogger routes badger's printf-style logging into slog.
// Badger is chatty at info level, so info is demoted to debug.
type badgerLogger struct {
	l *slog.Logger
}

func (b badgerLogger) Errorf(format string, args ...any) {
	b.l.Error(line(format, args))
}

func (b badgerLogger) Warningf(format string, args ...any) {
	b.l.Warn(line(format, args))
}

func (b badgerLogger) Infof(format string, args ...any) {
	b.l.Debug(line(format, args))
}

func (b badgerLogger) Debugf(format string, args ...any) {
	b.l.Debug(line(format, args))
}

func line(format string, args []any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
