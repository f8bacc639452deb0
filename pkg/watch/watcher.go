// The watch package re-runs a function every time one of a set of input files
// changes. Bursts of events on the same files are debounced into a single run.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vertex-lab/linkrank/pkg/loader"
	"github.com/vertex-lab/linkrank/pkg/utils/logger"
)

const DefaultDebounce = 200 * time.Millisecond

// Watcher monitors input files using fsnotify.
type Watcher struct {
	// the absolute paths of the watched files
	files    map[string]struct{}
	debounce time.Duration
	watcher  *fsnotify.Watcher

	Log *logger.Aggregate
}

// NewWatcher() returns a Watcher for the specified files. The parent directory
// of each file is watched, so that files replaced by a rename are still seen.
func NewWatcher(files []string, debounce time.Duration) (*Watcher, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(files)),
		debounce: debounce,
		watcher:  fw,
	}

	dirs := make(map[string]struct{})
	for _, file := range files {
		if loader.IsNetworkResource(file) {
			fw.Close()
			return nil, fmt.Errorf("%w: %v", ErrNotWatchable, file)
		}

		path, err := filepath.Abs(file)
		if err != nil {
			fw.Close()
			return nil, err
		}

		w.files[path] = struct{}{}
		dirs[filepath.Dir(path)] = struct{}{}
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %v: %w", dir, err)
		}
	}

	return w, nil
}

// Run() calls onChange after each burst of changes to the watched files, until
// the context is cancelled. Errors returned by onChange are logged and don't
// stop the watcher. Run closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	defer w.watcher.Close()

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	var lastEvent time.Time
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if !w.isWatched(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.Log.Info("Watcher: %v changed (%v)", event.Name, event.Op)
				lastEvent = time.Now()
				pending = true
			}

		case <-ticker.C:
			if !pending || time.Since(lastEvent) < w.debounce {
				continue
			}

			pending = false
			if err := onChange(ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.Log.Error("Watcher: recomputation failed: %v", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Log.Warn("Watcher: %v", err)
		}
	}
}

func (w *Watcher) isWatched(name string) bool {
	_, exists := w.files[filepath.Clean(name)]
	return exists
}

//--------------------------ERROR-CODES--------------------------

var ErrNoFiles = errors.New("no files to watch")
var ErrNotWatchable = errors.New("network resources can't be watched")
