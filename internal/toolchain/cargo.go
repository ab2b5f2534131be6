package toolchain

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/booktest/internal/errors"
	"git.home.luguber.info/inful/booktest/internal/logfields"
)

// DefaultBinary is the build tool looked up on PATH.
const DefaultBinary = "cargo"

// Cargo wraps the two build tool subcommands the harness needs.
type Cargo struct {
	runner Runner
	binary string
}

// NewCargo returns a Cargo using runner. An empty binary means DefaultBinary.
func NewCargo(runner Runner, binary string) *Cargo {
	if runner == nil {
		runner = NewExecRunner()
	}
	if binary == "" {
		binary = DefaultBinary
	}
	return &Cargo{runner: runner, binary: binary}
}

// Binary returns the build tool executable name.
func (c *Cargo) Binary() string { return c.binary }

// InitInvocation describes the library scaffolding run for dir.
func (c *Cargo) InitInvocation(dir, crateName string, quiet bool) Invocation {
	args := []string{"init", "--lib", "--name", crateName}
	if quiet {
		args = append(args, "--quiet")
	}
	args = append(args, dir)
	return Invocation{
		Binary:        c.binary,
		Args:          args,
		SuppressStdin: true,
		InheritStdio:  true,
		Env:           map[string]string{"CARGO_TERM_VERBOSE": "false"},
		Unset:         []string{"RUST_LOG"},
	}
}

// TestInvocation describes the test run inside dir.
func (c *Cargo) TestInvocation(dir string, quiet bool) Invocation {
	args := []string{"test"}
	if quiet {
		args = append(args, "--quiet")
	}
	return Invocation{
		Binary:        c.binary,
		Args:          args,
		Dir:           dir,
		SuppressStdin: true,
		InheritStdio:  true,
	}
}

// Init scaffolds a library project in dir.
func (c *Cargo) Init(ctx context.Context, dir, crateName string, quiet bool) error {
	slog.Info("Initializing crate", logfields.Path(dir), logfields.Crate(crateName))
	err := c.runner.Run(ctx, c.InitInvocation(dir, crateName, quiet))
	if err == nil {
		return nil
	}
	if ee, ok := AsExitError(err); ok {
		slog.Error("Crate initialization failed", logfields.Path(dir), logfields.ExitCode(ee.Code))
		return errors.ScaffoldFailure(dir, ee)
	}
	return spawnError(c.binary, err)
}

// Test runs the project's tests in dir.
func (c *Cargo) Test(ctx context.Context, dir string, quiet bool) error {
	slog.Info("Running the tests", logfields.Path(dir))
	err := c.runner.Run(ctx, c.TestInvocation(dir, quiet))
	if err == nil {
		return nil
	}
	if ee, ok := AsExitError(err); ok {
		return errors.TestExecutionFailure(dir, ee.Code, ee)
	}
	return spawnError(c.binary, err)
}

func spawnError(binary string, err error) error {
	if errors.HasKind(err, errors.KindProcessSpawn) {
		return err
	}
	return errors.ProcessSpawn(binary, err)
}
