// Package renderer exposes the pipeline to a documentation host as a named
// output backend.
package renderer

import (
	"context"

	"git.home.luguber.info/inful/booktest/internal/pipeline"
)

// Renderer is a host output backend. The host selects it by Name and hands it
// one render context per build.
type Renderer interface {
	Name() string
	Render(ctx context.Context, rc *pipeline.RenderContext) error
}

// Name is the backend name the host configures under [output.test].
const Name = "test"

// Test runs the doc-test pipeline for every render.
type Test struct {
	pipeline *pipeline.Pipeline
}

// NewTest returns the test renderer. A nil pipeline means pipeline.New().
func NewTest(p *pipeline.Pipeline) *Test {
	if p == nil {
		p = pipeline.New()
	}
	return &Test{pipeline: p}
}

func (t *Test) Name() string { return Name }

func (t *Test) Render(ctx context.Context, rc *pipeline.RenderContext) error {
	_, err := t.pipeline.Run(ctx, rc)
	return err
}

var _ Renderer = (*Test)(nil)
