package book

import (
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/booktest/internal/errors"
)

// Loader reads a book's table of contents and chapter files from a filesystem.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a Loader backed by fs (the OS filesystem when nil).
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// Load parses srcDir/SUMMARY.md and reads the content of every listed chapter.
func (l *Loader) Load(srcDir, title string) (*Book, error) {
	summaryPath := filepath.Join(srcDir, SummaryFile)
	data, err := afero.ReadFile(l.fs, summaryPath)
	if err != nil {
		return nil, errors.FileRead(summaryPath, err)
	}

	items, err := ParseSummary(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.KindFileRead, "invalid table of contents").
			WithPath(summaryPath).
			Build()
	}

	b := &Book{Title: title, Items: items}
	for _, ch := range b.Chapters() {
		p := filepath.Join(srcDir, filepath.FromSlash(ch.Path))
		content, err := afero.ReadFile(l.fs, p)
		if err != nil {
			return nil, errors.FileRead(p, err)
		}
		ch.Content = string(content)
	}
	return b, nil
}
