// Package observer watches the data directory for rewritten JSON resources so
// the dashboard can tell connected clients to refresh.
package observer

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FeedChangeCallback is called with the set of resource files that changed.
type FeedChangeCallback func(changedFiles []string)

// FeedWatcher monitors one data directory for JSON writes. The producer
// rewrites files via temp + rename, so changes arrive as rename/create bursts
// that get debounced into a single callback.
type FeedWatcher struct {
	watcher  *fsnotify.Watcher
	callback FeedChangeCallback
	debounce time.Duration

	pending map[string]struct{}
	timer   *time.Timer
	mu      sync.Mutex

	cancel context.CancelFunc
}

// NewFeedWatcher creates a watcher for dir.
func NewFeedWatcher(dir string, callback FeedChangeCallback) (*FeedWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	return &FeedWatcher{
		watcher:  watcher,
		callback: callback,
		debounce: 500 * time.Millisecond,
		pending:  make(map[string]struct{}),
	}, nil
}

// Start begins watching for file changes.
func (fw *FeedWatcher) Start(ctx context.Context) {
	ctx, fw.cancel = context.WithCancel(ctx)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				fw.handleEvent(event)
			case _, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				// Keep watching.
			}
		}
	}()
}

// Stop stops watching for file changes.
func (fw *FeedWatcher) Stop() {
	if fw.cancel != nil {
		fw.cancel()
	}
	fw.watcher.Close()
}

func (fw *FeedWatcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".json") {
		return
	}
	// Temp files from the producer's atomic writes are noise.
	if strings.Contains(filepath.Base(event.Name), ".tmp-") {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.pending[event.Name] = struct{}{}

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, fw.flush)
}

func (fw *FeedWatcher) flush() {
	fw.mu.Lock()
	pending := fw.pending
	fw.pending = make(map[string]struct{})
	fw.mu.Unlock()

	if fw.callback == nil || len(pending) == 0 {
		return
	}

	files := make([]string, 0, len(pending))
	for f := range pending {
		files = append(files, f)
	}
	fw.callback(files)
}

// SetDebounce sets the debounce duration for batching file changes.
func (fw *FeedWatcher) SetDebounce(d time.Duration) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.debounce = d
}
