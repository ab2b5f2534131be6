// Package errors provides the classified error type used across booktest.
//
// Every failure the harness pipeline can surface maps to one Kind (configuration
// decoding, directory creation, file read/write, manifest parse/serialize, process
// spawn, scaffold failure, test failure). Errors are built with a fluent builder and
// keep their cause reachable through Unwrap, so callers can walk the causal chain.
//
// Example usage:
//
//	err := errors.NewError(errors.KindFileWrite, "unable to copy across chapter").
//		WithPath(dst).
//		WithCause(ioErr).
//		Build()
package errors
