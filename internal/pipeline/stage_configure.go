package pipeline

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/booktest/internal/config"
	"git.home.luguber.info/inful/booktest/internal/logfields"
	"git.home.luguber.info/inful/booktest/internal/manifest"
	"git.home.luguber.info/inful/booktest/internal/toolchain"
	"git.home.luguber.info/inful/booktest/internal/workspace"
)

// stageConfigure resolves the harness configuration and creates the target
// directory.
func (p *Pipeline) stageConfigure(_ context.Context, rs *runState) error {
	cfg, err := config.Resolve(config.Raw(rs.rc.Config))
	if err != nil {
		return err
	}
	rs.cfg = cfg
	rs.crate = toolchain.CrateName(rs.rc.Book.Title)
	rs.chapters = rs.rc.Book.Chapters()
	rs.logger.Debug("Resolved configuration",
		logfields.Crate(rs.crate),
		logfields.Count(len(rs.chapters)),
		slog.Any("dependencies", cfg.Dependencies),
		slog.Bool("quiet", cfg.Quiet))

	if rs.rc.Destination != "" {
		rs.workspace = workspace.NewPersistentManager(rs.rc.Destination).WithFs(p.fs)
	} else {
		rs.workspace = workspace.NewManager(p.tempBase).WithFs(p.fs)
		if p.keepWorkspace {
			rs.workspace.Keep()
		}
	}
	if err := rs.workspace.Create(); err != nil {
		return err
	}
	rs.dir = rs.workspace.GetPath()

	rs.report.Crate = rs.crate
	rs.report.Directory = rs.dir
	rs.report.Chapters = len(rs.chapters)
	rs.report.Dependencies = manifest.DependencyNames(cfg.Dependencies)
	return nil
}
