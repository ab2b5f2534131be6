package pipeline

import (
	"git.home.luguber.info/inful/booktest/internal/book"
	"git.home.luguber.info/inful/booktest/internal/config"
)

// RenderContext is everything the host hands a renderer for one run.
type RenderContext struct {
	// Version is the host version the context was produced by.
	Version string
	// Root is the book's root directory.
	Root string
	// Destination is the caller-chosen target directory. Empty means a
	// temporary directory is used and removed afterwards.
	Destination string
	Book        *book.Book
	// Config is the book's raw configuration document.
	Config map[string]any
}

// NewRenderContext assembles a RenderContext. The book title falls back to
// book.title from cfg when b has none.
func NewRenderContext(version, root, destination string, b *book.Book, cfg map[string]any) *RenderContext {
	if b == nil {
		b = &book.Book{}
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	if b.Title == "" {
		b.Title = config.Raw(cfg).BookTitle()
	}
	return &RenderContext{
		Version:     version,
		Root:        root,
		Destination: destination,
		Book:        b,
		Config:      cfg,
	}
}
