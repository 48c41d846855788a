package errors

import "github.com/rs/zerolog"

// LogHandler is an ErrorHandler that writes structured log events.
type LogHandler struct {
	// Logger receives the events.
	Logger zerolog.Logger
	// Verbose adds stack traces to panic events.
	Verbose bool
}

// HandleError logs a ChoreoError at error level.
func (h *LogHandler) HandleError(err *ChoreoError) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().
		Str("op", err.Op).
		Stringer("kind", err.Kind).
		Err(err.Err)
	if err.Segment != 0 {
		ev = ev.Int("segment", err.Segment)
	}
	ev.Msg("choreography error")
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().
		Str("op", err.Op).
		Stringer("kind", KindPanic).
		Interface("value", err.Value)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("recovered panic")
}
