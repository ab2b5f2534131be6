package errors

import "fmt"

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	kind    Kind
	message string
	cause   error
	context ErrorContext
}

// NewError creates a new ErrorBuilder with the specified kind and message.
func NewError(kind Kind, message string) *ErrorBuilder {
	return &ErrorBuilder{
		kind:    kind,
		message: message,
		context: make(ErrorContext),
	}
}

// WrapError creates a new ErrorBuilder that wraps an existing error.
func WrapError(err error, kind Kind, message string) *ErrorBuilder {
	return NewError(kind, message).WithCause(err)
}

// WithCause sets the underlying error.
func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.cause = err
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.context = b.context.Set(key, value)
	return b
}

// WithPath records the offending filesystem path.
func (b *ErrorBuilder) WithPath(path string) *ErrorBuilder {
	return b.WithContext("path", path)
}

// Build creates the final ClassifiedError.
func (b *ErrorBuilder) Build() *ClassifiedError {
	return &ClassifiedError{
		kind:    b.kind,
		message: b.message,
		cause:   b.cause,
		context: b.context,
	}
}

// Convenience constructors for the failure modes of the pipeline.

// ConfigDeserialization reports a malformed configuration section.
func ConfigDeserialization(section string, cause error) *ClassifiedError {
	return WrapError(cause, KindConfigDeserialization, fmt.Sprintf("unable to deserialize the %q configuration section", section)).
		WithContext("section", section).
		Build()
}

// DirectoryCreation reports a failure to create path.
func DirectoryCreation(path string, cause error) *ClassifiedError {
	return WrapError(cause, KindDirectoryCreation, fmt.Sprintf("unable to create directory %s", path)).
		WithPath(path).
		Build()
}

// FileWrite reports a failure to write path.
func FileWrite(path string, cause error) *ClassifiedError {
	return WrapError(cause, KindFileWrite, fmt.Sprintf("unable to write %s", path)).
		WithPath(path).
		Build()
}

// FileRead reports a failure to read path.
func FileRead(path string, cause error) *ClassifiedError {
	return WrapError(cause, KindFileRead, fmt.Sprintf("unable to read %s", path)).
		WithPath(path).
		Build()
}

// ManifestParse reports a manifest at path that is not valid structured text.
func ManifestParse(path string, cause error) *ClassifiedError {
	return WrapError(cause, KindManifestParse, fmt.Sprintf("couldn't parse %s", path)).
		WithPath(path).
		Build()
}

// ManifestSerialize reports a manifest document that could not be encoded.
func ManifestSerialize(path string, cause error) *ClassifiedError {
	return WrapError(cause, KindManifestSerialize, fmt.Sprintf("couldn't serialize %s", path)).
		WithPath(path).
		Build()
}

// ProcessSpawn reports an external binary that could not be launched.
func ProcessSpawn(binary string, cause error) *ClassifiedError {
	return WrapError(cause, KindProcessSpawn, fmt.Sprintf("unable to invoke %s", binary)).
		WithContext("binary", binary).
		Build()
}

// ScaffoldFailure reports an init subcommand that ran and exited non-zero.
func ScaffoldFailure(dir string, cause error) *ClassifiedError {
	return WrapError(cause, KindScaffoldFailure, "could not initialize project").
		WithPath(dir).
		Build()
}

// TestExecutionFailure reports a test subcommand that ran and exited non-zero.
func TestExecutionFailure(dir string, exitCode int, cause error) *ClassifiedError {
	return WrapError(cause, KindTestExecutionFailure, "the tests failed").
		WithPath(dir).
		WithContext("exit_code", exitCode).
		Build()
}
