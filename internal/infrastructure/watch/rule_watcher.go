package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RuleWatcher watches the workspace rule directory and invokes onReload
// when a rule file is created, written or renamed. Editors often write
// via temp-file renames, so events are debounced before reloading.
type RuleWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
	onReload func()
	logger   *slog.Logger
}

// NewRuleWatcher creates a watcher over dir. A zero debounce defaults
// to 500ms.
func NewRuleWatcher(dir string, debounce time.Duration, onReload func(), logger *slog.Logger) (*RuleWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RuleWatcher{
		watcher:  w,
		dir:      dir,
		debounce: debounce,
		onReload: onReload,
		logger:   logger,
	}, nil
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *RuleWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	debouncer := NewDebouncer(w.debounce, func() {
		if w.onReload != nil {
			w.onReload()
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !isRuleChange(event) {
				continue
			}
			w.logger.Debug("rule file changed", "path", event.Name, "op", event.Op.String())
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// isRuleChange filters the event stream down to YAML rule files being
// created, written or renamed into place.
func isRuleChange(event fsnotify.Event) bool {
	switch ext := filepath.Ext(event.Name); ext {
	case ".yaml", ".yml":
	default:
		return false
	}
	return event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Rename)
}
