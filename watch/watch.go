// Package watch reruns schema generation when conversion inputs
// change on disk.
package watch

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ome-nbo-tools/ome-nbo-formatter/errors"
)

// Watcher observes a fixed set of input files and fires a debounced
// callback when any of them is written or recreated.
type Watcher struct {
	watcher        *fsnotify.Watcher
	log            *zap.SugaredLogger
	onChange       func()
	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// New creates a watcher over the given paths. Empty and duplicate
// paths are skipped; at least one watchable path is required.
func New(paths []string, debounce time.Duration, onChange func(), log *zap.SugaredLogger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if onChange == nil {
		return nil, errors.New("onChange callback is required")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	seen := make(map[string]bool)
	added := 0
	for _, path := range paths {
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		if err := fw.Add(path); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", path)
		}
		added++
	}
	if added == 0 {
		fw.Close()
		return nil, errors.New("no paths to watch")
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &Watcher{
		watcher:        fw,
		log:            log,
		onChange:       onChange,
		debouncePeriod: debounce,
	}, nil
}

// Start begins watching for input changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// watchLoop monitors file system events
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only regenerate on Write or Create events
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				w.log.Infow("Input change detected",
					"file", event.Name,
					"op", event.Op.String())
				w.scheduleChange()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnw("Watcher error",
				"error", err)
		}
	}
}

// scheduleChange debounces rapid file changes before firing the callback
func (w *Watcher) scheduleChange() {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Cancel existing timer if any
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.onChange)
}

// Stop stops watching for input changes
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
