package errors

import (
	stderrors "errors"
	"fmt"
)

// ClassifiedError is a booktest failure with a kind, a human-readable message
// describing the attempted operation, optional structured context and the
// underlying cause.
type ClassifiedError struct {
	kind    Kind
	message string
	cause   error
	context ErrorContext
}

// Error implements the standard error interface.
func (e *ClassifiedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap implements Go 1.13+ error unwrapping.
func (e *ClassifiedError) Unwrap() error {
	return e.cause
}

// Kind returns the error kind.
func (e *ClassifiedError) Kind() Kind {
	return e.kind
}

// Message returns the message of this link only, without the cause.
func (e *ClassifiedError) Message() string {
	return e.message
}

// Cause returns the underlying error.
func (e *ClassifiedError) Cause() error {
	return e.cause
}

// Context returns the error context.
func (e *ClassifiedError) Context() ErrorContext {
	return e.context
}

// Path returns the filesystem path the error is about, if any.
func (e *ClassifiedError) Path() string {
	p, _ := e.context.GetString("path")
	return p
}

// Is matches another ClassifiedError of the same kind, so sentinel-style
// comparisons such as errors.Is(err, errors.Sentinel(KindScaffoldFailure)) work.
func (e *ClassifiedError) Is(target error) bool {
	if other, ok := target.(*ClassifiedError); ok {
		return e.kind == other.kind && (other.message == "" || e.message == other.message)
	}
	return false
}

// Sentinel returns a message-less ClassifiedError usable as an errors.Is target
// matching every error of the given kind.
func Sentinel(kind Kind) error {
	return &ClassifiedError{kind: kind}
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var ce *ClassifiedError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// KindOf returns the kind of the first ClassifiedError in err's chain, or
// KindInternal when none is present.
func KindOf(err error) Kind {
	if ce, ok := AsClassified(err); ok {
		return ce.kind
	}
	return KindInternal
}

// HasKind reports whether err's chain contains a ClassifiedError of kind.
func HasKind(err error, kind Kind) bool {
	for err != nil {
		if ce, ok := err.(*ClassifiedError); ok && ce.kind == kind {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}
