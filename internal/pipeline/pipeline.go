package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/booktest/internal/book"
	"git.home.luguber.info/inful/booktest/internal/config"
	"git.home.luguber.info/inful/booktest/internal/logfields"
	"git.home.luguber.info/inful/booktest/internal/metrics"
	"git.home.luguber.info/inful/booktest/internal/toolchain"
	"git.home.luguber.info/inful/booktest/internal/version"
	"git.home.luguber.info/inful/booktest/internal/workspace"
)

// Pipeline runs the harness stages against a render context.
type Pipeline struct {
	fs            afero.Fs
	cargo         *toolchain.Cargo
	observer      Observer
	recorder      metrics.Recorder
	keepWorkspace bool
	tempBase      string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFs sets the filesystem every project file is written through.
func WithFs(fs afero.Fs) Option { return func(p *Pipeline) { p.fs = fs } }

// WithRunner sets the process runner used for the build tool.
func WithRunner(r toolchain.Runner) Option {
	return func(p *Pipeline) { p.cargo = toolchain.NewCargo(r, p.cargo.Binary()) }
}

// WithCargo sets the build tool wrapper.
func WithCargo(c *toolchain.Cargo) Option { return func(p *Pipeline) { p.cargo = c } }

// WithObserver registers a stage observer.
func WithObserver(o Observer) Option { return func(p *Pipeline) { p.observer = o } }

// WithRecorder registers a metrics recorder.
func WithRecorder(r metrics.Recorder) Option { return func(p *Pipeline) { p.recorder = r } }

// WithKeepWorkspace leaves a temporary target directory on disk after the run.
func WithKeepWorkspace(keep bool) Option { return func(p *Pipeline) { p.keepWorkspace = keep } }

// WithTempBase sets the parent of temporary target directories.
func WithTempBase(dir string) Option { return func(p *Pipeline) { p.tempBase = dir } }

// New constructs a Pipeline backed by the OS filesystem and the real build tool
// unless overridden by opts.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		fs:       afero.NewOsFs(),
		cargo:    toolchain.NewCargo(nil, ""),
		observer: NoopObserver{},
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.observer == nil {
		p.observer = NoopObserver{}
	}
	if p.recorder == nil {
		p.recorder = metrics.NoopRecorder{}
	}
	return p
}

// runState carries what stages produce and consume during one run.
type runState struct {
	rc        *RenderContext
	logger    *slog.Logger
	report    *Report
	workspace *workspace.Manager
	state     StageName

	cfg      config.Config
	dir      string
	crate    string
	chapters []*book.Chapter
}

// Stages returns the stage sequence in execution order.
func (p *Pipeline) Stages() []StageDef {
	return []StageDef{
		{StageConfiguring, p.stageConfigure},
		{StageScaffolding, p.stageScaffold},
		{StageMaterializing, p.stageMaterialize},
		{StageManifestWriting, p.stageWriteManifest},
		{StageExecuting, p.stageExecute},
	}
}

// Run executes every stage for rc. The returned Report is never nil; the error
// is the first stage failure wrapped in a *StageError.
func (p *Pipeline) Run(ctx context.Context, rc *RenderContext) (*Report, error) {
	if rc == nil {
		rc = NewRenderContext("", "", "", nil, nil)
	}
	if rc.Book == nil {
		rc.Book = &book.Book{}
	}
	runID := uuid.NewString()
	rs := &runState{
		rc:     rc,
		logger: slog.Default().With(logfields.RunID(runID)),
		report: newReport(runID, version.Version),
	}
	rs.report.HostVersion = rc.Version
	rs.report.BookTitle = rc.Book.Title

	rs.logger.Info("Starting test run", slog.String("book", rc.Book.Title), logfields.Path(rc.Root))

	err := p.runStages(ctx, rs, p.Stages())
	if rs.workspace != nil {
		rs.report.KeptDirectory = rs.workspace.Persistent() || p.keepWorkspace
		if cerr := rs.workspace.Cleanup(); cerr != nil {
			rs.logger.Warn("Failed to remove temporary directory", logfields.Error(cerr))
		}
	}
	rs.report.finish(err)

	p.recorder.ObserveRunDuration(rs.report.Duration())
	p.recorder.IncRunOutcome(outcomeLabel(rs.report.Outcome))
	p.observer.OnRunComplete(rs.report)

	if err != nil {
		rs.logger.Error("Test run failed",
			logfields.Stage(string(rs.state)),
			logfields.Error(err),
			logfields.DurationMS(float64(rs.report.Duration().Milliseconds())))
		return rs.report, err
	}
	rs.logger.Info("Test run complete", slog.String("summary", rs.report.Summary()))
	return rs.report, nil
}

// Run executes the pipeline with default settings and reports only the error.
func Run(ctx context.Context, rc *RenderContext) error {
	_, err := New().Run(ctx, rc)
	return err
}
