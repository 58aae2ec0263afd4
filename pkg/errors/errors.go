// Package errors provides structured error reporting for the widget runtime.
//
// Two kinds of problems are distinguished. Configuration warnings (a
// negative spacer, a non-positive flex factor, a flex child in an unbounded
// container) are reported through the global handler and auto-corrected by
// the caller. Invariant violations (a container that forgot to recurse into
// a child, a missing place-child call) are programmer errors: the runtime
// panics with an [*InvariantError] in debug builds.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindLayout indicates a questionable layout configuration.
	KindLayout
	// KindConfig indicates an invalid widget or runtime configuration value.
	KindConfig
	// KindInvariant indicates a broken tree invariant.
	KindInvariant
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindLayout:
		return "layout"
	case KindConfig:
		return "config"
	case KindInvariant:
		return "invariant"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// TreeError is a recoverable problem attributed to a widget.
type TreeError struct {
	// Op is the operation that detected the problem (e.g., "widgets.Flex.Layout").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Widget is the short type name of the widget involved, if any.
	Widget string
	// ID is the widget id involved, or zero.
	ID uint64
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *TreeError) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("%s [%s] widget=%s#%d: %v", e.Op, e.Kind, e.Widget, e.ID, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TreeError) Unwrap() error {
	return e.Err
}

// InvariantError describes a broken tree invariant. It is the panic value of
// every safety-rail failure.
type InvariantError struct {
	// Widget is the short type name of the widget whose method broke the invariant.
	Widget string
	// ID is that widget's id.
	ID uint64
	// Method is the pass method that was running (e.g., "layout").
	Method string
	// Msg describes the violation.
	Msg string
}

func (e *InvariantError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("error in '%s' #%d during %s: %s", e.Widget, e.ID, e.Method, e.Msg)
	}
	return fmt.Sprintf("error in '%s' #%d: %s", e.Widget, e.ID, e.Msg)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.RenderRoot.Edit").
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

// ErrorHandler receives problems reported by the runtime.
type ErrorHandler interface {
	// HandleWarning is called for recoverable configuration problems.
	HandleWarning(err *TreeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
