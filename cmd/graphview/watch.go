package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/phanxgames/graphview"
)

// reloadDelay coalesces the burst of events editors emit on save.
const reloadDelay = 100 * time.Millisecond

// watchFile calls reload after path is written or recreated, once per
// burst of changes. The parent directory is watched so atomic-rename saves
// are seen. Watching stops when ctx is done.
func watchFile(ctx context.Context, path string, delay time.Duration, reload func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	go watchLoop(ctx, w, abs, delay, reload)
	return nil
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, target string, delay time.Duration, reload func()) {
	defer func() { _ = w.Close() }()
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(delay, reload)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			graphview.Logger().Warn("watcher error", "error", err)
		}
	}
}
