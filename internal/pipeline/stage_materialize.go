package pipeline

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/booktest/internal/buildscript"
	"git.home.luguber.info/inful/booktest/internal/materialize"
)

func (p *Pipeline) stageMaterialize(_ context.Context, rs *runState) error {
	return materialize.Materialize(p.fs, rs.chapters, filepath.Join(rs.dir, buildscript.SourceDir))
}
