// Package errors defines the error taxonomy of the choreography engine and a
// pluggable handler that callback panics and playback failures are reported to.
//
// Authoring and scheduling mistakes are programmer errors and are returned
// immediately: [InvalidOffsetError], [InvalidPropertyError],
// [UnscheduledChainError] and [StructuralMutationError]. Each matches its sentinel with errors.Is:
//
//	if errors.Is(err, choreoerrors.ErrInvalidOffset) { ... }
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Sentinels matched by the concrete error types through errors.Is.
var (
	ErrInvalidOffset      = stderrors.New("invalid offset")
	ErrUnscheduled        = stderrors.New("chain is not scheduled")
	ErrStructuralMutation = stderrors.New("structural mutation during playback")
	ErrInvalidProperty    = stderrors.New("invalid property")
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidOffset indicates a negative duration, delay or offset.
	KindInvalidOffset
	// KindUnscheduled indicates use of a chain without a current schedule.
	KindUnscheduled
	// KindStructuralMutation indicates a chain edit during build or evaluate.
	KindStructuralMutation
	// KindDocument indicates a malformed choreography document.
	KindDocument
	// KindStorage indicates a preset store failure.
	KindStorage
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindInvalidProperty indicates a track of the wrong value type.
	KindInvalidProperty
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidOffset:
		return "invalid-offset"
	case KindUnscheduled:
		return "unscheduled"
	case KindStructuralMutation:
		return "structural-mutation"
	case KindDocument:
		return "document"
	case KindStorage:
		return "storage"
	case KindPanic:
		return "panic"
	case KindInvalidProperty:
		return "invalid-property"
	default:
		return "unknown"
	}
}

// ChoreoError wraps an error with the operation that produced it.
type ChoreoError struct {
	// Op is the operation that failed (e.g., "choreography.Chain.Build").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Segment is the id of the segment involved, or zero.
	Segment int
	// Err is the underlying error.
	Err error
	// Timestamp is when the error was reported.
	Timestamp time.Time
}

func (e *ChoreoError) Error() string {
	if e.Segment != 0 {
		return fmt.Sprintf("%s [%s] segment=%d: %v", e.Op, e.Kind, e.Segment, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ChoreoError) Unwrap() error {
	return e.Err
}

// InvalidOffsetError reports a negative timing value. Values are never
// clamped: a clamped offset would silently corrupt the total duration.
type InvalidOffsetError struct {
	// Segment is the id of the offending segment, or zero for stagger specs
	// validated outside a chain.
	Segment int
	// Field names the value: "duration", "delay", "offset" or "stagger".
	Field string
	// Value is the rejected value.
	Value float64
}

func (e *InvalidOffsetError) Error() string {
	if e.Segment != 0 {
		return fmt.Sprintf("segment %d: invalid %s %v", e.Segment, e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s %v", e.Field, e.Value)
}

// Is reports whether target is ErrInvalidOffset.
func (e *InvalidOffsetError) Is(target error) bool {
	return target == ErrInvalidOffset
}

// InvalidPropertyError reports a property used with the wrong kind of
// track, such as a scalar track for a color.
type InvalidPropertyError struct {
	// Segment is the id of the offending segment.
	Segment int
	// Property is the property name.
	Property string
	// Op is the authoring call that rejected it.
	Op string
}

func (e *InvalidPropertyError) Error() string {
	return fmt.Sprintf("segment %d: %s: %s is not a scalar property", e.Segment, e.Op, e.Property)
}

// Is reports whether target is ErrInvalidProperty.
func (e *InvalidPropertyError) Is(target error) bool {
	return target == ErrInvalidProperty
}

// UnscheduledChainError reports evaluation of a chain that was never built,
// or whose schedule went stale after a structural edit.
type UnscheduledChainError struct {
	Reason string
}

func (e *UnscheduledChainError) Error() string {
	return "chain is not scheduled: " + e.Reason
}

// Is reports whether target is ErrUnscheduled.
func (e *UnscheduledChainError) Is(target error) bool {
	return target == ErrUnscheduled
}

// StructuralMutationError reports a chain edit attempted while a build or
// evaluate pass was in flight, typically from an event callback.
type StructuralMutationError struct {
	// Op is the rejected edit (e.g., "Append").
	Op string
}

func (e *StructuralMutationError) Error() string {
	return fmt.Sprintf("%s: chain edited while a build or evaluate pass is in flight", e.Op)
}

// Is reports whether target is ErrStructuralMutation.
func (e *StructuralMutationError) Is(target error) bool {
	return target == ErrStructuralMutation
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "choreography.Player.tick").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// KindOf returns the kind of the first ChoreoError in err's chain, falling
// back to the kind implied by the concrete error types.
func KindOf(err error) ErrorKind {
	var ce *ChoreoError
	if stderrors.As(err, &ce) {
		return ce.Kind
	}
	switch {
	case err == nil:
		return KindUnknown
	case stderrors.Is(err, ErrInvalidOffset):
		return KindInvalidOffset
	case stderrors.Is(err, ErrUnscheduled):
		return KindUnscheduled
	case stderrors.Is(err, ErrStructuralMutation):
		return KindStructuralMutation
	case stderrors.Is(err, ErrInvalidProperty):
		return KindInvalidProperty
	}
	var pe *PanicError
	if stderrors.As(err, &pe) {
		return KindPanic
	}
	return KindUnknown
}

// ErrorHandler receives errors reported during playback.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *ChoreoError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
