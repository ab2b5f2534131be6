// Package materialize copies book chapters into the generated project's source
// directory, mirroring each chapter's relative path.
package materialize

import (
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/booktest/internal/book"
	"git.home.luguber.info/inful/booktest/internal/errors"
	"git.home.luguber.info/inful/booktest/internal/logfields"
)

// Materialize writes every chapter to srcRoot/<chapter path>, in order,
// creating missing parent directories and overwriting existing files. It stops
// at the first chapter that cannot be written; chapters after it are not
// attempted.
func Materialize(fs afero.Fs, chapters []*book.Chapter, srcRoot string) error {
	for _, ch := range chapters {
		if err := materializeChapter(fs, ch, srcRoot); err != nil {
			return err
		}
	}
	slog.Debug("Copied across book chapters", logfields.Count(len(chapters)), logfields.Path(srcRoot))
	return nil
}

func materializeChapter(fs afero.Fs, ch *book.Chapter, srcRoot string) error {
	dst, err := Destination(srcRoot, ch.Path)
	if err != nil {
		return errors.FileWrite(ch.Path, err)
	}
	slog.Debug("Copying across chapter", slog.String("name", ch.Name), logfields.Chapter(ch.Path))

	dir := filepath.Dir(dst)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapError(err, errors.KindDirectoryCreation, fmt.Sprintf("unable to create directory %s for %s", dir, ch.Path)).
			WithPath(dir).
			WithContext("chapter", ch.Path).
			Build()
	}
	if err := afero.WriteFile(fs, dst, []byte(ch.Content), 0o644); err != nil {
		return errors.WrapError(err, errors.KindFileWrite, fmt.Sprintf("unable to copy across %s", ch.Path)).
			WithPath(dst).
			WithContext("chapter", ch.Path).
			Build()
	}
	return nil
}

// Destination resolves a chapter path below srcRoot. Absolute paths and paths
// escaping srcRoot are rejected.
func Destination(srcRoot, chapterPath string) (string, error) {
	if chapterPath == "" {
		return "", fmt.Errorf("chapter has no path")
	}
	slashed := filepath.ToSlash(chapterPath)
	if path.IsAbs(slashed) || filepath.IsAbs(chapterPath) {
		return "", fmt.Errorf("chapter path %q is absolute", chapterPath)
	}
	cleaned := path.Clean(slashed)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("chapter path %q escapes the source directory", chapterPath)
	}
	return filepath.Join(srcRoot, filepath.FromSlash(cleaned)), nil
}
