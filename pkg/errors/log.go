package errors

import (
	"go.uber.org/zap"

	"github.com/go-drift/controls/internal/logging"
)

// LogHandler is an ErrorHandler that writes to the package logger.
type LogHandler struct {
	// Verbose enables stack traces on panics.
	Verbose bool
}

// HandleError logs a ControlError at warn level.
func (h *LogHandler) HandleError(err *ControlError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Node != "" {
		fields = append(fields, zap.String("node", err.Node))
	}
	logging.Warn("control error", fields...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	logging.Error("control panic", fields...)
}
