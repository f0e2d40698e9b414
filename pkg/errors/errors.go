// Package errors provides structured error reporting for the controls packages.
//
// Interaction never fails: controls tolerate missing, disabled, or already
// current targets by doing nothing. The types here cover the outer edges
// where something can genuinely go wrong (malformed markup, illegal tree
// structure, a listener that panics) and route them to a global handler.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindStructure indicates an illegal parent/child relationship.
	KindStructure
	// KindMarkup indicates a malformed markup document.
	KindMarkup
	// KindAttribute indicates an attribute value that could not be used.
	KindAttribute
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindStructure:
		return "structure"
	case KindMarkup:
		return "markup"
	case KindAttribute:
		return "attribute"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ErrIllegalChild is returned when a node role may not contain another role.
var ErrIllegalChild = errors.New("illegal child role")

// ErrUnknownRole is returned when a role tag is not recognized.
var ErrUnknownRole = errors.New("unknown role")

// ControlError represents a structured error raised by a control or loader.
type ControlError struct {
	// Op is the operation that failed (e.g., "node.Append").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Node identifies the node involved, if any.
	Node string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ControlError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s [%s] node=%s: %v", e.Op, e.Kind, e.Node, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ControlError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "node.Dispatch").
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

// ErrorHandler receives errors reported by the controls packages.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *ControlError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ErrCycle is returned when a node would become its own ancestor.
var ErrCycle = errors.New("node would become its own ancestor")

// ErrInvalidValue is returned when an attribute value is out of its domain.
var ErrInvalidValue = errors.New("invalid attribute value")
