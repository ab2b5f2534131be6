// Package buildscript generates the build script that registers every book
// chapter with the doc-test harness.
package buildscript

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"text/template"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/booktest/internal/errors"
	"git.home.luguber.info/inful/booktest/internal/logfields"
)

//go:embed build_template.rs.tmpl
var buildTemplate string

var tpl = template.Must(template.New("build.rs").Option("missingkey=error").Parse(buildTemplate))

// SourceDir is the directory, relative to the project root, that chapter paths
// are resolved against.
const SourceDir = "src"

// Render produces the build script text for the given chapter paths. Each path
// appears exactly once, in the order given, as src/<path> with forward slashes.
func Render(chapterPaths []string) (string, error) {
	quoted := make([]string, 0, len(chapterPaths))
	for _, p := range chapterPaths {
		quoted = append(quoted, RustString(SourcePath(p)))
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, map[string]any{"Files": strings.Join(quoted, ", ")}); err != nil {
		return "", fmt.Errorf("render build script: %w", err)
	}
	return buf.String(), nil
}

// Generate renders the build script and writes it to dest, replacing any
// existing file.
func Generate(fs afero.Fs, chapterPaths []string, dest string) error {
	content, err := Render(chapterPaths)
	if err != nil {
		return errors.WrapError(err, errors.KindInternal, "unable to generate build.rs").Build()
	}
	if err := afero.WriteFile(fs, dest, []byte(content), 0o644); err != nil {
		return errors.FileWrite(dest, err)
	}
	slog.Debug("Wrote build script", logfields.Path(dest), logfields.Count(len(chapterPaths)))
	return nil
}

// SourcePath joins a chapter path onto SourceDir using forward slashes.
func SourcePath(chapterPath string) string {
	return path.Join(SourceDir, strings.ReplaceAll(chapterPath, `\`, "/"))
}

// RustString quotes s as a Rust string literal.
func RustString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
