package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/booktest/internal/book"
	"git.home.luguber.info/inful/booktest/internal/config"
	"git.home.luguber.info/inful/booktest/internal/errors"
	"git.home.luguber.info/inful/booktest/internal/pipeline"
	"git.home.luguber.info/inful/booktest/internal/version"
)

// LoadRenderContext builds a render context from a book directory on fs. A
// missing book.toml is treated as an empty configuration.
func LoadRenderContext(fs afero.Fs, bookDir, destination string) (*pipeline.RenderContext, error) {
	raw := config.Raw{}
	bookFile := filepath.Join(bookDir, config.BookFile)
	exists, err := afero.Exists(fs, bookFile)
	if err != nil {
		return nil, errors.FileRead(bookFile, err)
	}
	if exists {
		if raw, err = config.LoadFile(fs, bookFile); err != nil {
			return nil, err
		}
	}

	b, err := book.NewLoader(fs).Load(filepath.Join(bookDir, raw.SourceDir()), raw.BookTitle())
	if err != nil {
		return nil, err
	}
	return pipeline.NewRenderContext(version.HostVersion, bookDir, destination, b, raw), nil
}

// hostRenderContext is the JSON document the host writes to a backend's stdin.
type hostRenderContext struct {
	Version     string         `json:"version"`
	Root        string         `json:"root"`
	Book        book.Book      `json:"book"`
	Config      map[string]any `json:"config"`
	Destination string         `json:"destination"`
}

// DecodeRenderContext reads a host render context from r.
func DecodeRenderContext(r io.Reader) (*pipeline.RenderContext, error) {
	var hc hostRenderContext
	if err := json.NewDecoder(r).Decode(&hc); err != nil {
		return nil, errors.WrapError(err, errors.KindConfigDeserialization, "unable to parse the render context").Build()
	}
	if hc.Version != "" && hc.Version != version.HostVersion {
		slog.Warn("Render context produced by a different mdBook version",
			slog.String("host_version", hc.Version),
			slog.String("expected", version.HostVersion))
	}
	return pipeline.NewRenderContext(hc.Version, hc.Root, hc.Destination, &hc.Book, hc.Config), nil
}

func describe(rc *pipeline.RenderContext) string {
	return fmt.Sprintf("%q (%d chapters)", rc.Book.Title, len(rc.Book.Chapters()))
}
