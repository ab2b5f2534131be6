package pipeline

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/booktest/internal/logfields"
	"git.home.luguber.info/inful/booktest/internal/manifest"
)

// stageScaffold initializes a library project unless the target directory
// already holds a manifest.
func (p *Pipeline) stageScaffold(ctx context.Context, rs *runState) error {
	exists, err := manifest.Exists(p.fs, filepath.Join(rs.dir, manifest.FileName))
	if err != nil {
		return err
	}
	if exists {
		rs.logger.Info("Project already initialized, skipping scaffolding", logfields.Path(rs.dir))
		return errSkipped
	}
	return p.cargo.Init(ctx, rs.dir, rs.crate, rs.cfg.Quiet)
}
