package ruleset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period after the last file event before a
// reload fires. Editors often produce bursts of writes for one save.
const defaultDebounce = 100 * time.Millisecond

// Watcher watches a ruleset directory and triggers reloads on change, with
// debouncing to prevent reload storms.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce *debouncer
}

// NewWatcher creates a watcher over dir.
func NewWatcher(dir string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		watcher:  fsw,
		logger:   logger.With("component", "ruleset_watcher"),
		debounce: newDebouncer(defaultDebounce),
	}, nil
}

// Run processes file events until ctx is cancelled, calling onReload after
// each debounced change. Reload errors are logged, not fatal: the previous
// ruleset set stays active.
func (w *Watcher) Run(ctx context.Context, onReload func() error) error {
	w.logger.Info("ruleset watcher started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("ruleset watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !shouldProcessEvent(event) {
				continue
			}
			w.logger.Debug("ruleset file event", "path", event.Name, "op", event.Op.String())
			w.debounce.trigger(func() {
				if err := onReload(); err != nil {
					w.logger.Error("ruleset reload failed", "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			// Keep watching despite transient errors.
			w.logger.Error("ruleset watcher error", "error", err)
		}
	}
}

// Close releases the underlying fsnotify watcher and any pending debounce.
func (w *Watcher) Close() error {
	w.debounce.stop()
	return w.watcher.Close()
}

// shouldProcessEvent filters events down to meaningful YAML changes.
func shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return ext == ".yaml" || ext == ".yml"
}

// debouncer collapses rapid event bursts into one callback after a quiet
// period.
type debouncer struct {
	interval time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	callback func()
	stopped  bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		cb := d.callback
		stopped := d.stopped
		d.mu.Unlock()
		if cb != nil && !stopped {
			cb()
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
