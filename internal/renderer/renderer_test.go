package renderer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/booktest/internal/book"
	"git.home.luguber.info/inful/booktest/internal/errors"
	"git.home.luguber.info/inful/booktest/internal/pipeline"
	"git.home.luguber.info/inful/booktest/internal/toolchain"
)

type scriptedRunner struct {
	fs      afero.Fs
	testErr error
	args    [][]string
}

func (r *scriptedRunner) Run(_ context.Context, inv toolchain.Invocation) error {
	r.args = append(r.args, inv.Args)
	if inv.Args[0] == "init" {
		dir := inv.Args[len(inv.Args)-1]
		if err := afero.WriteFile(r.fs, filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"x\"\n"), 0o644); err != nil {
			return err
		}
		return afero.WriteFile(r.fs, filepath.Join(dir, "src", "lib.rs"), nil, 0o644)
	}
	return r.testErr
}

func TestTest_Name(t *testing.T) {
	assert.Equal(t, "test", NewTest(nil).Name())
}

func TestTest_RenderDelegatesToPipeline(t *testing.T) {
	t.Setenv("BOOKTEST_QUIET", "")
	t.Setenv("BOOKTEST_DEPENDENCIES", "")
	fs := afero.NewMemMapFs()
	runner := &scriptedRunner{fs: fs, testErr: &toolchain.ExitError{Code: 101}}
	r := NewTest(pipeline.New(pipeline.WithFs(fs), pipeline.WithRunner(runner)))

	b := &book.Book{Title: "Guide", Items: []book.Item{{Chapter: &book.Chapter{Name: "a", Path: "a.md", Content: "x"}}}}
	err := r.Render(context.Background(), pipeline.NewRenderContext("0.4.40", "/book", "/out", b, nil))

	require.Error(t, err)
	assert.Equal(t, errors.KindTestExecutionFailure, errors.KindOf(err))
	require.Len(t, runner.args, 2)
	assert.Equal(t, "init", runner.args[0][0])
	assert.Equal(t, "test", runner.args[1][0])
}
