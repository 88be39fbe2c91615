// Package errors provides structured error handling for the mediasync library.
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
	// KindElement indicates a playback-surface error.
	KindElement
	// KindAdapter indicates a streaming-adapter error.
	KindAdapter
	// KindConfig indicates an options or configuration error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindAdapter:
		return "adapter"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// SyncError represents a structured error in the mediasync library.
type SyncError struct {
	// Op is the operation that failed (e.g., "media.Controller.play").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Source is the media source URL involved, if applicable.
	Source string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *SyncError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s [%s] source=%s: %v", e.Op, e.Kind, e.Source, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "media.Store.notify").
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

// ErrorHandler receives errors reported by the mediasync library.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *SyncError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
