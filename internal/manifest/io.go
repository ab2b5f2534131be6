package manifest

import (
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/booktest/internal/errors"
	"git.home.luguber.info/inful/booktest/internal/logfields"
)

// Load reads and parses the manifest at path. An empty file yields an empty document.
func Load(fs afero.Fs, path string) (Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.FileRead(path, err)
	}
	doc := Document{}
	if err := toml.Unmarshal(data, (*map[string]any)(&doc)); err != nil {
		return nil, errors.ManifestParse(path, err)
	}
	return doc, nil
}

// Save serializes doc and replaces the file at path with it.
func Save(fs afero.Fs, path string, doc Document) error {
	data, err := toml.Marshal(map[string]any(doc))
	if err != nil {
		return errors.ManifestSerialize(path, err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return errors.FileWrite(path, err)
	}
	slog.Debug("Saved manifest", logfields.Path(path))
	return nil
}

// Update loads the manifest at path, applies Transform with deps and saves it.
func Update(fs afero.Fs, path string, deps []string) error {
	doc, err := Load(fs, path)
	if err != nil {
		return err
	}
	return Save(fs, path, Transform(doc, deps))
}

// Exists reports whether a manifest file is present at path.
func Exists(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.FileRead(path, err)
}
