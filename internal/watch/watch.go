// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs an action whenever a watched file is written.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Action is invoked after the watched file changes.
type Action func(ctx context.Context) error

// Watcher watches a single file. The parent directory is watched rather
// than the file itself so that editors which replace the file on save
// (write to temp, rename) keep triggering events.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Logger   *slog.Logger

	// ready, when set, is closed once the watch is registered.
	ready chan struct{}
}

// Run invokes action once immediately and then after every write or
// create of Path, until ctx is cancelled. Action errors are logged and do
// not stop the watch.
func (w *Watcher) Run(ctx context.Context, action Action) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	target, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", w.Path, err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	if w.ready != nil {
		close(w.ready)
	}

	logger := w.logger()
	w.fire(ctx, action, logger)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-timer.C:
			w.fire(ctx, action, logger)
		}
	}
}

func (w *Watcher) fire(ctx context.Context, action Action, logger *slog.Logger) {
	if err := action(ctx); err != nil {
		logger.Error("watch action failed", "path", w.Path, "error", err)
	}
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}
