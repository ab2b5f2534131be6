package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/booktest/cmd/booktest/commands"
	"git.home.luguber.info/inful/booktest/internal/errors"
	"git.home.luguber.info/inful/booktest/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("booktest"),
		kong.Description("Compile and run the Rust code examples of an mdBook as doc tests."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("%s (commit %s, built %s, mdBook %s)", version.Version, version.GitCommit, version.BuildTime, version.HostVersion)},
	)

	g := &commands.Global{Ctx: ctx, Fs: afero.NewOsFs(), Stdin: os.Stdin}
	err := parser.Run(g, cli)
	stop()

	os.Exit(errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(err))
}
