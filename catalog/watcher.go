package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/faraid/engine"
)

// defaultDebounce is how long the watcher waits for further writes
// before reloading; editors often emit several events per save.
const defaultDebounce = 500 * time.Millisecond

// Watcher holds the active catalog snapshot and hot-reloads it when
// the backing YAML file changes. An invalid file never replaces the
// active snapshot: the watcher logs the validation failure and keeps
// serving the last good catalog.
//
// Snapshot is safe for concurrent use; every computation takes its own
// immutable snapshot reference, so a reload mid-flight never changes
// rule application within an already running pipeline.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger

	mu       sync.RWMutex
	snapshot *engine.Snapshot

	watcher *fsnotify.Watcher
}

// NewWatcher loads the catalog at path and prepares hot reloading.
// The initial load must succeed; a service should not start on a
// broken catalog.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	snap, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     path,
		debounce: defaultDebounce,
		logger:   logger,
		snapshot: snap,
	}, nil
}

// Snapshot returns the active catalog snapshot.
func (w *Watcher) Snapshot() *engine.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot
}

// Start begins watching the catalog file until ctx is cancelled.
// The parent directory is watched, not the file itself, so saves that
// replace the file (rename-over) are still observed.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.watcher = fw

	go w.loop(ctx)

	w.logger.Info("Catalog watcher started", "path", w.path)
	return nil
}

// loop debounces file events and reloads the catalog.
func (w *Watcher) loop(ctx context.Context) {
	defer w.watcher.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Catalog watch error", "error", err)

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		}
	}
}

// reload revalidates the file and swaps the active snapshot on
// success.
func (w *Watcher) reload() {
	snap, err := LoadFile(w.path)
	if err != nil {
		w.logger.Error("Catalog reload rejected, keeping active snapshot",
			"path", w.path, "error", err)
		return
	}

	w.mu.Lock()
	w.snapshot = snap
	w.mu.Unlock()

	w.logger.Info("Catalog reloaded", "path", w.path, "heir_types", snap.TypeCount())
}
