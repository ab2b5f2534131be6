package pipeline

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/booktest/internal/errors"
)

func TestEnsureInclude(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		want     string
	}{
		{"empty file", "", IncludeLine + "\n"},
		{"trailing newline", "pub fn f() {}\n", "pub fn f() {}\n" + IncludeLine + "\n"},
		{"no trailing newline", "pub fn f() {}", "pub fn f() {}\n" + IncludeLine + "\n"},
		{"already present", "pub fn f() {}\n" + IncludeLine + "\n", "pub fn f() {}\n" + IncludeLine + "\n"},
		{"present with indentation", "  " + IncludeLine + "\n", "  " + IncludeLine + "\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "src/lib.rs", []byte(tc.existing), 0o644))

			require.NoError(t, EnsureInclude(fs, "src/lib.rs"))
			require.NoError(t, EnsureInclude(fs, "src/lib.rs"))

			got, err := afero.ReadFile(fs, "src/lib.rs")
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestEnsureInclude_Errors(t *testing.T) {
	err := EnsureInclude(afero.NewMemMapFs(), "src/lib.rs")
	require.Error(t, err)
	assert.Equal(t, errors.KindFileRead, errors.KindOf(err))

	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "src/lib.rs", []byte("pub fn f() {}\n"), 0o644))
	err = EnsureInclude(afero.NewReadOnlyFs(base), "src/lib.rs")
	require.Error(t, err)
	assert.Equal(t, errors.KindFileWrite, errors.KindOf(err))
}
