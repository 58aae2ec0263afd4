package errors

import (
	"log/slog"
	"os"
)

// LogHandler is an ErrorHandler that writes structured log records.
type LogHandler struct {
	// Verbose includes stack traces of recovered panics.
	Verbose bool

	logger *slog.Logger
}

// NewLogHandler returns a handler logging through logger.
// A nil logger logs text records to stderr.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &LogHandler{logger: logger}
}

// Logger returns the underlying logger.
func (h *LogHandler) Logger() *slog.Logger {
	return h.logger
}

// HandleWarning logs a TreeError at warn level.
func (h *LogHandler) HandleWarning(err *TreeError) {
	if err == nil {
		return
	}
	attrs := []any{slog.String("op", err.Op), slog.String("kind", err.Kind.String())}
	if err.Widget != "" {
		attrs = append(attrs, slog.String("widget", err.Widget), slog.Uint64("id", err.ID))
	}
	h.logger.Warn(err.Err.Error(), attrs...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{slog.String("op", err.Op), slog.Any("value", err.Value)}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger.Error("recovered panic", attrs...)
}
