package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyChapter    = "chapter"
	KeyCrate      = "crate"
	KeyBinary     = "binary"
	KeyArgs       = "args"
	KeyExitCode   = "exit_code"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Chapter(p string) slog.Attr      { return slog.String(KeyChapter, p) }
func Crate(name string) slog.Attr     { return slog.String(KeyCrate, name) }
func Binary(b string) slog.Attr       { return slog.String(KeyBinary, b) }
func Args(a []string) slog.Attr       { return slog.Any(KeyArgs, a) }
func ExitCode(c int) slog.Attr        { return slog.Int(KeyExitCode, c) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
