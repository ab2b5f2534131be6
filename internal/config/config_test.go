package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/booktest/internal/errors"
)

func TestFromRaw_DefaultsWhenSectionMissing(t *testing.T) {
	cfg, err := FromRaw(Raw{"book": map[string]any{"title": "x"}})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.Quiet)
	assert.NotNil(t, cfg.Dependencies)
}

func TestFromRaw_DecodesSection(t *testing.T) {
	raw := Raw{"output": map[string]any{"test": map[string]any{
		"dependencies": []any{"bitflags", "serde"},
		"quiet":        false,
		"command":      "booktest render", // host-owned key, ignored
	}}}

	cfg, err := FromRaw(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"bitflags", "serde"}, cfg.Dependencies)
	assert.False(t, cfg.Quiet)
}

func TestFromRaw_PartialSectionKeepsDefaults(t *testing.T) {
	raw := Raw{"output": map[string]any{"test": map[string]any{
		"dependencies": []any{"bitflags"},
	}}}

	cfg, err := FromRaw(raw)
	require.NoError(t, err)
	assert.True(t, cfg.Quiet)
}

func TestFromRaw_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
	}{
		{"section is not a table", Raw{"output": map[string]any{"test": "yes"}}},
		{"quiet is a string", Raw{"output": map[string]any{"test": map[string]any{"quiet": "loud"}}}},
		{"dependencies is a table", Raw{"output": map[string]any{"test": map[string]any{"dependencies": map[string]any{"a": 1}}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromRaw(tc.raw)
			require.Error(t, err)
			assert.Equal(t, errors.KindConfigDeserialization, errors.KindOf(err))
		})
	}
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := `[book]
title = "My Book"
src = "chapters"

[output.test]
dependencies = ["bitflags"]
quiet = false
`
	require.NoError(t, afero.WriteFile(fs, "book/book.toml", []byte(doc), 0o644))

	raw, err := LoadFile(fs, "book/book.toml")
	require.NoError(t, err)
	assert.Equal(t, "My Book", raw.BookTitle())
	assert.Equal(t, "chapters", raw.SourceDir())

	cfg, err := FromRaw(raw)
	require.NoError(t, err)
	assert.Equal(t, Config{Dependencies: []string{"bitflags"}, Quiet: false}, cfg)
}

func TestLoadFile_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := LoadFile(fs, "missing.toml")
	assert.Equal(t, errors.KindFileRead, errors.KindOf(err))

	require.NoError(t, afero.WriteFile(fs, "bad.toml", []byte("[book\ntitle ="), 0o644))
	_, err = LoadFile(fs, "bad.toml")
	assert.Equal(t, errors.KindConfigDeserialization, errors.KindOf(err))
	assert.Contains(t, err.Error(), "bad.toml")
}

func TestRaw_Accessors(t *testing.T) {
	raw := Raw{"book": map[string]any{"title": 42}}
	assert.Equal(t, "", raw.BookTitle())
	assert.Equal(t, "src", raw.SourceDir())

	_, ok := raw.Lookup("book.title.deeper")
	assert.False(t, ok)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvQuiet:        "false",
		EnvDependencies: " rand, ,serde ",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	base := Config{Dependencies: []string{"bitflags"}, Quiet: true}
	cfg, err := ApplyEnv(base, lookup)
	require.NoError(t, err)

	assert.False(t, cfg.Quiet)
	assert.Equal(t, []string{"bitflags", "rand", "serde"}, cfg.Dependencies)
	assert.Equal(t, []string{"bitflags"}, base.Dependencies, "input must not be mutated")
}

func TestApplyEnv_InvalidQuiet(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == EnvQuiet {
			return "sometimes", true
		}
		return "", false
	}
	_, err := ApplyEnv(Default(), lookup)
	require.Error(t, err)
	assert.Equal(t, errors.KindConfigDeserialization, errors.KindOf(err))
}
