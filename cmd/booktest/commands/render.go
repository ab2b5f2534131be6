package commands

import (
	"os"
)

// RenderCmd implements the 'render' command: the mdBook backend entrypoint.
//
//	[output.test]
//	command = "booktest render"
type RenderCmd struct {
	RunOptions
}

func (r *RenderCmd) Run(g *Global, _ *CLI) error {
	in := g.Stdin
	if in == nil {
		in = os.Stdin
	}
	rc, err := DecodeRenderContext(in)
	if err != nil {
		return err
	}
	return runRenderer(g, rc, r.RunOptions)
}
