// Package watch drives rebuilds from filesystem events. It watches a
// source tree recursively, coalesces event bursts with a debounce window,
// and invokes a callback once per quiet period.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the tree must stay quiet before a rebuild
// fires. Editors typically emit several events per save.
const DefaultDebounce = 300 * time.Millisecond

// Run watches root until ctx is canceled, calling rebuild after each
// debounced change burst. Newly created directories are added to the
// watch; watch errors are logged and skipped rather than fatal, since a
// transient event-queue overflow should not kill a long-running session.
func Run(ctx context.Context, logger *slog.Logger, root string, debounce time.Duration, rebuild func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, root); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New subdirectories need their own watch.
				_ = addRecursive(watcher, event.Name)
			}
			if !pending {
				timer.Reset(debounce)
				pending = true
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-timer.C:
			pending = false
			rebuild()
		}
	}
}

// addRecursive registers path and every directory beneath it. Non-directory
// paths are ignored.
func addRecursive(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == path {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(p)
	})
}
