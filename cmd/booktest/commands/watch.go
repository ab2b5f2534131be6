package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/booktest/internal/errors"
	"git.home.luguber.info/inful/booktest/internal/logfields"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BookDir  string        `arg:"" optional:"" name:"book-dir" help:"Book root directory (containing book.toml)" default:"." type:"path"`
	Dest     string        `short:"d" required:"" help:"Target project directory, reused across runs" type:"path"`
	Debounce time.Duration `help:"Quiet period after the last change before re-running" default:"500ms"`
	RunOptions
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx := g.context()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	ignore := newIgnoreFilter(w.Dest)
	addDirsRecursive(watcher, w.BookDir, ignore)

	reporter := errors.NewCLIErrorAdapter(root.Verbose, slog.Default())
	runOnce := func() {
		rc, err := LoadRenderContext(g.fs(), w.BookDir, w.Dest)
		if err == nil {
			err = runRenderer(g, rc, w.RunOptions)
		}
		if err != nil {
			reporter.Report(err)
			return
		}
		slog.Info("All book examples passed")
	}

	runOnce()
	rerun, trigger := newDebouncer(w.Debounce)
	slog.Info("Watching for changes", logfields.Path(w.BookDir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignore(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					addDirsRecursive(watcher, ev.Name, ignore)
				}
			}
			slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-rerun:
			slog.Info("Change detected; re-running tests")
			runOnce()
		}
	}
}

// newDebouncer returns a channel that receives once per burst of trigger calls,
// after d has passed without another call.
func newDebouncer(d time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		})
	}
	return fire, trigger
}

// newIgnoreFilter skips hidden and editor temporary files, and everything
// under the target directory so the run's own writes never retrigger it.
func newIgnoreFilter(dest string) func(path string) bool {
	dest = filepath.Clean(dest)
	return func(path string) bool {
		path = filepath.Clean(path)
		if dest != "." && (path == dest || strings.HasPrefix(path, dest+string(filepath.Separator))) {
			return true
		}
		base := filepath.Base(path)
		return strings.HasPrefix(base, ".") ||
			strings.HasSuffix(base, "~") ||
			strings.HasSuffix(base, ".swp") ||
			strings.HasSuffix(base, ".tmp")
	}
}

func addDirsRecursive(w *fsnotify.Watcher, root string, ignore func(string) bool) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && ignore(path) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

