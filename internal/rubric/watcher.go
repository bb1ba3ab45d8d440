package rubric

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangedCallback is called after the rubric file changes on disk.
type ChangedCallback func(path string)

// Watch observes the rubric definition file until ctx is cancelled and calls
// cb (debounced) when it is written, created, or replaced. The loaded rubric
// itself stays immutable for the life of the process; the callback only lets
// UI clients know a restart is needed to pick up the new definition.
//
// The parent directory is watched rather than the file, since editors
// typically replace files via rename.
func Watch(ctx context.Context, path string, logger *slog.Logger, cb ChangedCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(path)

	logger.Info("rubric watcher: started", slog.String("path", target))

	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(200 * time.Millisecond)
				fire = debounce.C
			} else {
				debounce.Reset(200 * time.Millisecond)
			}

		case <-fire:
			logger.Warn("rubric definition changed on disk; restart to apply",
				slog.String("path", target))
			if cb != nil {
				cb(target)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("rubric watcher error", slog.String("error", err.Error()))
		}
	}
}
