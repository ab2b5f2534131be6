package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/booktest/internal/errors"
	"git.home.luguber.info/inful/booktest/internal/logfields"
)

// BookFile is the name of a book's configuration document.
const BookFile = "book.toml"

// Environment variables overriding the configuration document.
const (
	EnvQuiet        = "BOOKTEST_QUIET"        // bool
	EnvDependencies = "BOOKTEST_DEPENDENCIES" // comma separated, appended
)

// LoadFile reads and parses a TOML configuration document.
func LoadFile(fs afero.Fs, path string) (Raw, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.FileRead(path, err)
	}
	raw := Raw{}
	if err := toml.Unmarshal(data, (*map[string]any)(&raw)); err != nil {
		return nil, errors.WrapError(err, errors.KindConfigDeserialization, "couldn't parse "+path).
			WithPath(path).
			Build()
	}
	return raw, nil
}

// LoadEnvFiles loads .env and .env.local from the working directory when they
// exist. Variables already present in the environment are not overwritten.
func LoadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load environment file", logfields.Path(name), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(name))
	}
}

// ApplyEnv returns cfg with environment overrides applied. lookup is usually
// os.LookupEnv.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) (Config, error) {
	if v, ok := lookup(EnvQuiet); ok && v != "" {
		quiet, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errors.ConfigDeserialization(EnvQuiet, err)
		}
		cfg.Quiet = quiet
	}
	if v, ok := lookup(EnvDependencies); ok {
		deps := append([]string{}, cfg.Dependencies...)
		for _, d := range strings.Split(v, ",") {
			if d = strings.TrimSpace(d); d != "" {
				deps = append(deps, d)
			}
		}
		cfg.Dependencies = deps
	}
	return cfg, nil
}

// Resolve decodes raw and applies environment overrides: the single entry
// point used by the pipeline's configuring state.
func Resolve(raw Raw) (Config, error) {
	cfg, err := FromRaw(raw)
	if err != nil {
		return Config{}, err
	}
	return ApplyEnv(cfg, os.LookupEnv)
}
