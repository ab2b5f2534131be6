package pipeline

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/booktest/internal/buildscript"
	"git.home.luguber.info/inful/booktest/internal/manifest"
)

// stageWriteManifest declares the dependencies, generates the build script and
// makes the library entrypoint include the generated tests.
func (p *Pipeline) stageWriteManifest(_ context.Context, rs *runState) error {
	if err := manifest.Update(p.fs, filepath.Join(rs.dir, manifest.FileName), rs.cfg.Dependencies); err != nil {
		return err
	}

	paths := make([]string, 0, len(rs.chapters))
	for _, ch := range rs.chapters {
		paths = append(paths, ch.Path)
	}
	if err := buildscript.Generate(p.fs, paths, filepath.Join(rs.dir, manifest.BuildScript)); err != nil {
		return err
	}

	return EnsureInclude(p.fs, filepath.Join(rs.dir, buildscript.SourceDir, EntrypointFile))
}
