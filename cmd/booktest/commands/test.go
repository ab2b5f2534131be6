package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/booktest/internal/logfields"
)

// TestCmd implements the 'test' command.
type TestCmd struct {
	BookDir string `arg:"" optional:"" name:"book-dir" help:"Book root directory (containing book.toml)" default:"." type:"path"`
	Dest    string `short:"d" help:"Target project directory; kept after the run. Defaults to a temporary directory" type:"path"`
	RunOptions
}

func (t *TestCmd) Run(g *Global, _ *CLI) error {
	rc, err := LoadRenderContext(g.fs(), t.BookDir, t.Dest)
	if err != nil {
		return err
	}
	slog.Info("Testing book", slog.String("book", describe(rc)), logfields.Path(t.BookDir))
	return runRenderer(g, rc, t.RunOptions)
}
