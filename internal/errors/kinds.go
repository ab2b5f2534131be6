package errors

import "maps"

// Kind classifies a booktest failure.
type Kind string

const (
	// KindConfigDeserialization reports a malformed configuration section.
	KindConfigDeserialization Kind = "config_deserialization"

	// Filesystem failures. Each names the offending path.
	KindDirectoryCreation Kind = "directory_creation"
	KindFileWrite         Kind = "file_write"
	KindFileRead          Kind = "file_read"

	// Manifest document failures.
	KindManifestParse     Kind = "manifest_parse"
	KindManifestSerialize Kind = "manifest_serialize"

	// External toolchain failures.
	KindProcessSpawn         Kind = "process_spawn"          // binary missing or unlaunchable
	KindScaffoldFailure      Kind = "scaffold_failure"       // init ran, exited non-zero
	KindTestExecutionFailure Kind = "test_execution_failure" // test ran, exited non-zero

	// KindInternal is returned by KindOf for errors that were never classified.
	KindInternal Kind = "internal"
)

// IsFilesystem reports whether the kind is an I/O failure on the target directory.
func (k Kind) IsFilesystem() bool {
	switch k {
	case KindDirectoryCreation, KindFileWrite, KindFileRead:
		return true
	default:
		return false
	}
}

// IsToolchain reports whether the kind originates from the external toolchain.
func (k Kind) IsToolchain() bool {
	switch k {
	case KindProcessSpawn, KindScaffoldFailure, KindTestExecutionFailure:
		return true
	default:
		return false
	}
}

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, exists := c[key]
	return value, exists
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	if value, exists := c.Get(key); exists {
		if str, ok := value.(string); ok {
			return str, true
		}
	}
	return "", false
}

// Merge combines two contexts, with other taking precedence.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	if c == nil {
		return other
	}
	if other == nil {
		return c
	}
	result := make(ErrorContext, len(c)+len(other))
	maps.Copy(result, c)
	maps.Copy(result, other)
	return result
}
