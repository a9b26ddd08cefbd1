// Package watch regenerates an SBOM whenever a components manifest file
// changes, adapted from the teacher's VendorSyncer.WatchConfig
// (internal/core/watch_service.go): same fsnotify setup, same debounce,
// generalized from a single hardcoded config path to an arbitrary watched
// path and callback.
package watch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay is the quiet period after the last detected write before
// the callback fires, matching the teacher's debounce window.
const DebounceDelay = 1 * time.Second

// Watcher watches a single file path and invokes a callback on change.
type Watcher struct {
	path   string
	logger *log.Logger
}

// New returns a Watcher for path. A nil logger is replaced by one that
// writes to stderr.
func New(path string, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	return &Watcher{path: path, logger: logger}
}

// Run blocks, watching w.path and calling onChange every time a debounced
// write/create event settles, until the watcher errors out or stop is
// closed. onChange errors are logged, not returned, so one failed
// regeneration doesn't end the watch.
func (w *Watcher) Run(stop <-chan struct{}, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.path); err != nil {
		return fmt.Errorf("watch: add %s: %w", w.path, err)
	}
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: add directory %s: %w", dir, err)
	}

	w.logger.Printf("Watching for changes to %s", w.path)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&fsnotify.Write != fsnotify.Write && event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(DebounceDelay, func() {
				if _, err := os.Stat(w.path); err != nil {
					w.logger.Printf("[WARNING] watched file is inaccessible: %v", err)
					return
				}
				if err := onChange(); err != nil {
					w.logger.Printf("[ERROR] regeneration failed: %v", err)
					return
				}
				w.logger.Printf("Regenerated SBOM after change to %s", filepath.Base(w.path))
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("[WARNING] watch error: %v", err)
		}
	}
}
