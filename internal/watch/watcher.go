// Package watch reruns a build when site sources change on disk.
package watch

import (
	"context"
	"crypto/sha256"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/issueblog/internal/foundation/errors"
	"git.home.luguber.info/inful/issueblog/internal/logfields"
)

// DefaultDebounce collapses editor save bursts into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Handler is called once per settled batch of changes.
type Handler func(ctx context.Context) error

// Watcher observes directories and single files. A settled batch only
// reaches the handler when file contents differ from the last snapshot, so
// the build rewriting a watched file does not retrigger itself.
type Watcher struct {
	dirs     []string
	files    map[string]bool
	debounce time.Duration
	handler  Handler
	watcher  *fsnotify.Watcher

	mu   sync.Mutex
	last map[string][sha256.Size]byte
}

// New watches every path in dirs (non-recursively) and each path in files.
func New(dirs, files []string, debounce time.Duration, handler Handler) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create file watcher").Build()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		debounce: debounce,
		handler:  handler,
		watcher:  fw,
		files:    map[string]bool{},
	}
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			_ = fw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve watch path").Build()
		}
		w.dirs = append(w.dirs, abs)
	}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve watch path").Build()
		}
		w.files[abs] = true
	}
	return w, nil
}

// Run blocks until ctx is done, calling the handler after each settled
// batch of relevant changes. Handler errors are logged, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	watched := map[string]bool{}
	add := func(dir string) error {
		if watched[dir] {
			return nil
		}
		watched[dir] = true
		if err := w.watcher.Add(dir); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
				WithContext("path", dir).
				Build()
		}
		slog.Info("Watching", logfields.Path(dir))
		return nil
	}
	for _, d := range w.dirs {
		if err := add(d); err != nil {
			return err
		}
	}
	// Parent directories survive editors that replace files by rename.
	for f := range w.files {
		if err := add(filepath.Dir(f)); err != nil {
			return err
		}
	}

	w.setSnapshot(w.snapshot())

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev.Name) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		case <-fire:
			w.settle(ctx)
		}
	}
}

func (w *Watcher) settle(ctx context.Context) {
	current := w.snapshot()
	if w.unchanged(current) {
		slog.Debug("Contents unchanged, skipping rebuild")
		return
	}
	if err := w.handler(ctx); err != nil {
		slog.Error("Rebuild failed", logfields.Error(err))
	}
	w.setSnapshot(w.snapshot())
}

func (w *Watcher) relevant(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if w.files[abs] {
		return true
	}
	dir := filepath.Dir(abs)
	for _, d := range w.dirs {
		if dir == d {
			return true
		}
	}
	return false
}

// snapshot hashes the regular files directly inside the watched dirs and
// the watched files. Missing entries are left out.
func (w *Watcher) snapshot() map[string][sha256.Size]byte {
	out := map[string][sha256.Size]byte{}
	hash := func(path string) {
		data, err := os.ReadFile(path)
		if err != nil {
			return
		}
		out[path] = sha256.Sum256(data)
	}
	for _, d := range w.dirs {
		entries, err := os.ReadDir(d)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.Type()&fs.ModeType == 0 {
				hash(filepath.Join(d, e.Name()))
			}
		}
	}
	for f := range w.files {
		hash(f)
	}
	return out
}

func (w *Watcher) setSnapshot(s map[string][sha256.Size]byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.last = s
}

func (w *Watcher) unchanged(s map[string][sha256.Size]byte) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(s) != len(w.last) {
		return false
	}
	for k, v := range s {
		if prev, ok := w.last[k]; !ok || prev != v {
			return false
		}
	}
	return true
}
