// Package workspace manages the target project directory of a harness run,
// supporting both ephemeral (temporary) and persistent (caller-supplied) modes.
//
// Ephemeral mode creates a fresh process-scoped directory under the system temp
// dir (e.g., booktest-1234567) and removes it completely on Cleanup.
//
// Persistent mode uses the caller's destination as-is. It is created when missing
// and never deleted, which lets a later run resume in the same directory.
package workspace
