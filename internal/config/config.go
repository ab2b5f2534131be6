// Package config resolves the harness configuration from a book's raw
// configuration document (book.toml or the host's render context) and the
// process environment.
package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"git.home.luguber.info/inful/booktest/internal/errors"
)

// Section is the dotted key of the harness configuration table.
const Section = "output.test"

// Config is the harness configuration. It is resolved once per run and treated
// as read-only afterwards.
type Config struct {
	// Dependencies are crate names added to the generated project's manifest.
	Dependencies []string `mapstructure:"dependencies"`
	// Quiet suppresses the toolchain's own output.
	Quiet bool `mapstructure:"quiet"`
}

// Default returns the configuration used when no section is present.
func Default() Config {
	return Config{
		Dependencies: []string{},
		Quiet:        true,
	}
}

// FromRaw decodes the output.test section of raw over the defaults. A missing
// section yields Default(); keys the harness does not know are ignored.
func FromRaw(raw Raw) (Config, error) {
	cfg := Default()

	section, ok := raw.Lookup(Section)
	if !ok || section == nil {
		return cfg, nil
	}
	if _, isTable := section.(map[string]any); !isTable {
		return Config{}, errors.ConfigDeserialization(Section, fmt.Errorf("expected a table, got %T", section))
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return Config{}, errors.ConfigDeserialization(Section, err)
	}
	if err := dec.Decode(section); err != nil {
		return Config{}, errors.ConfigDeserialization(Section, err)
	}
	if cfg.Dependencies == nil {
		cfg.Dependencies = []string{}
	}
	return cfg, nil
}

// Raw is an untyped configuration document: nested tables of string keys.
type Raw map[string]any

// Lookup resolves a dotted key path such as "output.test".
func (r Raw) Lookup(dotted string) (any, bool) {
	var cur any = map[string]any(r)
	for _, part := range strings.Split(dotted, ".") {
		table, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = table[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// String resolves a dotted key to a string, returning "" when absent or not a string.
func (r Raw) String(dotted string) string {
	v, ok := r.Lookup(dotted)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// BookTitle returns book.title, or "" when the book has none.
func (r Raw) BookTitle() string {
	return r.String("book.title")
}

// SourceDir returns book.src relative to the book root, defaulting to "src".
func (r Raw) SourceDir() string {
	if s := r.String("book.src"); s != "" {
		return s
	}
	return "src"
}
