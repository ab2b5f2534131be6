package pipeline

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/booktest/internal/errors"
	"git.home.luguber.info/inful/booktest/internal/logfields"
)

// EntrypointFile is the library entrypoint under the source directory.
const EntrypointFile = "lib.rs"

// IncludeLine pulls the generated doc tests into the library's test build.
const IncludeLine = `#[cfg(test)] include!(concat!(env!("OUT_DIR"), "/skeptic-tests.rs"));`

// EnsureInclude appends IncludeLine to the entrypoint at path unless a line
// equal to it is already present.
func EnsureInclude(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.WrapError(err, errors.KindFileRead, "unable to open "+EntrypointFile).WithPath(path).Build()
	}
	for _, line := range bytes.Split(data, []byte("\n")) {
		if string(bytes.TrimSpace(line)) == IncludeLine {
			slog.Debug("Entrypoint already includes the generated tests", logfields.Path(path))
			return nil
		}
	}

	f, err := fs.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.WrapError(err, errors.KindFileWrite, "unable to open "+EntrypointFile).WithPath(path).Build()
	}
	var buf bytes.Buffer
	if len(data) > 0 && data[len(data)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(IncludeLine)
	buf.WriteByte('\n')
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return errors.FileWrite(path, err)
	}
	if err := f.Close(); err != nil {
		return errors.FileWrite(path, err)
	}
	return nil
}
