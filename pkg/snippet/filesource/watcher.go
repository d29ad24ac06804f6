package filesource

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last file event
// before reloading. Editors write files in bursts; one reload per burst.
const DefaultDebounce = 100 * time.Millisecond

// Watch blocks, reloading the source whenever a snippet file changes,
// until the context is cancelled. Reload failures are logged and the
// previous snapshot stays live; onReload, when non-nil, runs after every
// successful reload (the server hooks cache invalidation here).
func (s *Source) Watch(ctx context.Context, debounce time.Duration, onReload func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}

	s.logger.Info("watching snippet files", "dir", s.dir, "debounce", debounce)

	pending := newDebouncer(debounce)
	defer pending.stop()

	reload := func() {
		if err := s.Reload(); err != nil {
			s.logger.Error("snippet reload failed, keeping previous snapshot", "error", err)
			return
		}
		if onReload != nil {
			onReload()
		}
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("snippet watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			if !yamlFile(filepath.Base(event.Name)) {
				continue
			}
			s.logger.Debug("snippet file event", "path", event.Name, "op", event.Op.String())
			pending.trigger(reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			s.logger.Error("snippet watcher error", "error", err)
		}
	}
}

// debouncer collapses rapid event bursts into one callback after a quiet
// period.
type debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	stopped  bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
