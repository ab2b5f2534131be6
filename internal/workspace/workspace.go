package workspace

import (
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/booktest/internal/errors"
	"git.home.luguber.info/inful/booktest/internal/logfields"
)

// Manager owns the provenance of a run's working directory.
type Manager struct {
	fs         afero.Fs
	baseDir    string
	dir        string
	persistent bool // caller-supplied destination: never removed
	keep       bool // ephemeral directory retained for inspection
}

// NewManager creates a workspace manager with an ephemeral temporary directory
// under baseDir (os.TempDir() when empty).
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{fs: afero.NewOsFs(), baseDir: baseDir}
}

// NewPersistentManager creates a workspace manager that uses dir directly.
// The directory is not cleaned up on Cleanup().
func NewPersistentManager(dir string) *Manager {
	return &Manager{fs: afero.NewOsFs(), dir: dir, persistent: true}
}

// WithFs makes the manager operate on fs instead of the OS filesystem.
func (m *Manager) WithFs(fs afero.Fs) *Manager {
	if fs != nil {
		m.fs = fs
	}
	return m
}

// Keep makes Cleanup leave an ephemeral directory on disk.
func (m *Manager) Keep() *Manager {
	m.keep = true
	return m
}

// Persistent reports whether the directory belongs to the caller.
func (m *Manager) Persistent() bool {
	return m.persistent
}

// Create creates the workspace directory.
// For ephemeral mode: creates a unique temporary directory.
// For persistent mode: ensures the destination exists.
func (m *Manager) Create() error {
	if m.persistent {
		if err := m.fs.MkdirAll(m.dir, 0o750); err != nil {
			return errors.DirectoryCreation(m.dir, err)
		}
		slog.Debug("Using persistent workspace", logfields.Path(m.dir))
		return nil
	}

	dir, err := afero.TempDir(m.fs, m.baseDir, "booktest-")
	if err != nil {
		return errors.DirectoryCreation(m.baseDir, err)
	}
	m.dir = dir
	slog.Debug("Created workspace", logfields.Path(dir))
	return nil
}

// GetPath returns the path to the workspace directory.
func (m *Manager) GetPath() string {
	return m.dir
}

// Cleanup removes an ephemeral workspace directory. Persistent and kept
// workspaces are left untouched.
func (m *Manager) Cleanup() error {
	if m.dir == "" {
		return nil
	}

	if m.persistent {
		slog.Debug("Skipping cleanup for persistent workspace", logfields.Path(m.dir))
		return nil
	}
	if m.keep {
		slog.Info("Keeping workspace", logfields.Path(m.dir))
		return nil
	}

	if err := m.fs.RemoveAll(m.dir); err != nil {
		return errors.WrapError(err, errors.KindDirectoryCreation, "failed to cleanup workspace").
			WithPath(m.dir).
			Build()
	}

	slog.Debug("Cleaned up workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}
