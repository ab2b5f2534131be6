package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Exit codes returned by the booktest CLI.
const (
	ExitSuccess     = 0
	ExitTestFailure = 1 // tests failed, or an unclassified error
	ExitConfigError = 2
	ExitToolchain   = 3 // cargo missing, unlaunchable or unable to scaffold
	ExitFilesystem  = 4 // I/O or manifest failure in the target project
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter writing to stderr.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
	}
}

// WithOutput redirects the formatted error output (used by tests).
func (a *CLIErrorAdapter) WithOutput(w io.Writer) *CLIErrorAdapter {
	a.out = w
	return a
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	kind := KindOf(err)
	switch {
	case kind == KindConfigDeserialization:
		return ExitConfigError
	case kind.IsToolchain() && kind != KindTestExecutionFailure:
		return ExitToolchain
	case kind.IsFilesystem(), kind == KindManifestParse, kind == KindManifestSerialize:
		return ExitFilesystem
	default:
		return ExitTestFailure
	}
}

// FormatError formats an error for display. The full causal chain is always
// shown since the root cause is usually the actionable part.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return FormatChain(err)
}

// Report logs err (when warranted), prints its chain and returns the exit code
// without exiting, so callers control process termination.
func (a *CLIErrorAdapter) Report(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if a.shouldLog(err) {
		a.logError(err)
	}
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	return a.ExitCodeFor(err)
}

// HandleError processes an error and exits the program with the appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	os.Exit(a.Report(err))
}

// shouldLog determines if an error should be logged in addition to being printed.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}
	return KindOf(err) == KindInternal
}

func (a *CLIErrorAdapter) logError(err error) {
	ce, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}
	attrs := []slog.Attr{slog.String("kind", string(ce.Kind()))}
	if p := ce.Path(); p != "" {
		attrs = append(attrs, slog.String("path", p))
	}
	a.logger.LogAttrs(context.Background(), slog.LevelError, ce.Message(), attrs...)
}
