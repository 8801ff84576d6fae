package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	applog "webbuilder/internal/log"
)

const reloadDebounce = 200 * time.Millisecond

// Watch reloads path whenever it changes and passes the new config to
// onChange. The parent directory is watched so editors that replace the
// file on save are picked up. Watch returns once the watcher is running;
// it stops when ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(AppConfig)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}

	l := applog.WithOperation(applog.WithComponent("config"), "watch")
	go func() {
		defer w.Close()
		var timer *time.Timer
		// reload runs on the timer goroutine and may start after ctx is done.
		reload := func() {
			if ctx.Err() != nil {
				return
			}
			cfg, err := LoadFile(abs)
			if err != nil {
				l.Warn("config reload failed", "path", abs, "err", err)
				return
			}
			if ctx.Err() != nil {
				return
			}
			l.Info("config reloaded", "path", abs)
			onChange(cfg)
		}
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, reload)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.Warn("config watcher error", "err", err)
			}
		}
	}()
	return nil
}
