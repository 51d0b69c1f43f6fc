package server

import (
	stdlog "log"
	"strings"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/rs/zerolog"
)

// errorLogWriter writes net/http's internal errors (TLS handshakes, broken
// connections) as warnings.
type errorLogWriter struct {
	logger *logger.Logger
}

func (w errorLogWriter) Write(p []byte) (int, error) {
	w.logger.Warn().Msg(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func newStdErrorLog(l *logger.Logger) *stdlog.Logger {
	child := l.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("component", "net/http")
	})
	return stdlog.New(errorLogWriter{logger: child}, "", 0)
}
