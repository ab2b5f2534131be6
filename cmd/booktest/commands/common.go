package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/booktest/internal/config"
	"git.home.luguber.info/inful/booktest/internal/logfields"
	"git.home.luguber.info/inful/booktest/internal/metrics"
	"git.home.luguber.info/inful/booktest/internal/pipeline"
	"git.home.luguber.info/inful/booktest/internal/renderer"
	"git.home.luguber.info/inful/booktest/internal/toolchain"
)

// Global carries process-wide dependencies into subcommands.
type Global struct {
	Ctx   context.Context
	Fs    afero.Fs
	Stdin io.Reader
	// Runner overrides the build tool process runner (tests).
	Runner toolchain.Runner
}

func (g *Global) context() context.Context {
	if g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) fs() afero.Fs {
	if g.Fs == nil {
		return afero.NewOsFs()
	}
	return g.Fs
}

// CLI definition & global flags.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Test   TestCmd   `cmd:"" help:"Test the code examples of a book directory"`
	Render RenderCmd `cmd:"" help:"Run as an mdBook backend, reading the render context from stdin"`
	Watch  WatchCmd  `cmd:"" help:"Re-run the tests whenever the book changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	config.LoadEnvFiles()
	return nil
}

// RunOptions are the per-invocation knobs shared by test, render and watch.
type RunOptions struct {
	Keep        bool   `help:"Keep the temporary project directory after the run"`
	Report      string `help:"Write a YAML run report to this file" type:"path"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this file" type:"path"`
}

// runRenderer drives rc through the test renderer, then persists the report and
// metrics when requested. Persistence failures are logged, not returned.
func runRenderer(g *Global, rc *pipeline.RenderContext, opts RunOptions) error {
	var rec *metrics.PrometheusRecorder
	var capture reportCapture
	pipeOpts := []pipeline.Option{
		pipeline.WithFs(g.fs()),
		pipeline.WithKeepWorkspace(opts.Keep),
		pipeline.WithObserver(&capture),
	}
	if g.Runner != nil {
		pipeOpts = append(pipeOpts, pipeline.WithRunner(g.Runner))
	}
	if opts.MetricsFile != "" {
		rec = metrics.NewPrometheusRecorder(prom.NewRegistry())
		pipeOpts = append(pipeOpts, pipeline.WithRecorder(rec))
	}

	err := renderer.NewTest(pipeline.New(pipeOpts...)).Render(g.context(), rc)

	if opts.Report != "" && capture.report != nil {
		if serr := capture.report.Save(g.fs(), opts.Report); serr != nil {
			slog.Warn("Failed to write run report", logfields.Path(opts.Report), logfields.Error(serr))
		}
	}
	if rec != nil {
		if werr := rec.WriteTextfile(opts.MetricsFile); werr != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(opts.MetricsFile), logfields.Error(werr))
		}
	}
	return err
}

// reportCapture keeps the report of the last completed run.
type reportCapture struct {
	pipeline.NoopObserver
	report *pipeline.Report
}

func (c *reportCapture) OnRunComplete(r *pipeline.Report) { c.report = r }
