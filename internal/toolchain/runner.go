package toolchain

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"

	"git.home.luguber.info/inful/booktest/internal/errors"
	"git.home.luguber.info/inful/booktest/internal/logfields"
)

// Invocation describes one external process run.
type Invocation struct {
	Binary string
	Args   []string
	Dir    string
	// SuppressStdin connects stdin to the null device.
	SuppressStdin bool
	// InheritStdio forwards stdout and stderr to this process's streams.
	InheritStdio bool
	// Env overrides (or adds) variables on top of the current environment.
	Env map[string]string
	// Unset removes variables from the inherited environment.
	Unset []string
}

// String renders the invocation as a shell-like command line for logs.
func (inv Invocation) String() string {
	return strings.Join(append([]string{inv.Binary}, inv.Args...), " ")
}

// Runner launches an Invocation and waits for it to finish.
//
// A process that could not be started yields a KindProcessSpawn error. A
// process that ran and exited non-zero yields an *ExitError.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// ExitError reports a process that ran to completion with a non-zero status.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// AsExitError reports whether err carries a non-zero exit status.
func AsExitError(err error) (*ExitError, bool) {
	var ee *ExitError
	if stderrors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

// ExecRunner runs invocations with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by real processes.
func NewExecRunner() *ExecRunner { return &ExecRunner{} }

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) error {
	cmd := exec.CommandContext(ctx, inv.Binary, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = buildEnv(os.Environ(), inv.Env, inv.Unset)
	if !inv.SuppressStdin {
		cmd.Stdin = os.Stdin
	}
	if inv.InheritStdio {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	slog.Debug("Invoking external process", logfields.Binary(inv.Binary), logfields.Args(inv.Args), logfields.Path(inv.Dir))
	err := cmd.Run()
	if err == nil {
		return nil
	}
	var ee *exec.ExitError
	if stderrors.As(err, &ee) {
		return &ExitError{Code: ee.ExitCode(), Err: err}
	}
	return errors.ProcessSpawn(inv.Binary, err)
}

// buildEnv applies overrides and removals to base, returning a sorted KEY=VALUE
// list.
func buildEnv(base []string, set map[string]string, unset []string) []string {
	vars := make(map[string]string, len(base)+len(set))
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		vars[k] = v
	}
	for _, k := range unset {
		delete(vars, k)
	}
	for k, v := range set {
		vars[k] = v
	}

	env := make([]string, 0, len(vars))
	for k, v := range vars {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}
