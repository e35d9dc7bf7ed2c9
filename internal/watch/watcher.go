// Package watch re-runs a callback whenever a watched file settles after a
// change. decode-serial uses it to keep a decoded CSV current while a
// logic analyzer keeps overwriting its export.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/barbiani/slib-tools/pkg/log"
)

// DefaultDebounce is the delay to wait after a file change before re-running.
const DefaultDebounce = 100 * time.Millisecond

// Watcher monitors a single file and runs a callback after its changes
// settle. Editors and exporters often replace files wholesale, so the
// parent directory is watched and events are filtered by name.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   log.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Watcher for path. A non-positive debounce falls back to
// DefaultDebounce, a nil logger to the discarding one.
func New(path string, debounce time.Duration, logger log.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{path: path, debounce: debounce, logger: logger}
}

// Run executes fn once, then once more after every settled change to the
// file, until ctx is cancelled. Triggers are coalesced through a single
// token, so fn never runs concurrently with itself and a burst of events
// produces one re-run.
func (w *Watcher) Run(ctx context.Context, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	defer w.stopTimer()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	base := filepath.Base(w.path)
	trigger := make(chan struct{}, 1)

	fn()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-trigger:
			w.logger.Info("input changed, decoding again", log.String("file", w.path))
			fn()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(trigger)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", log.Err(err))
		}
	}
}

// schedule arms the debounce timer, restarting it if already armed. When
// the timer fires it deposits at most one pending token.
func (w *Watcher) schedule(trigger chan<- struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
}
