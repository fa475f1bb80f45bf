package palette

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounce = 250 * time.Millisecond

// Watch reloads path into store whenever the file changes, until ctx is
// done. The parent directory is watched so editors that replace the file
// are picked up. A file that fails to parse leaves the previous table
// active.
func Watch(ctx context.Context, path string, store *Store, logger *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("palette watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("palette watcher: watch %s: %w", dir, err)
	}
	logger.Info("watching palette", zap.String("path", path))

	target := filepath.Clean(path)
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("palette watcher error", zap.Error(err))
		case <-timer.C:
			p, err := ReadFile(path)
			if err != nil {
				logger.Warn("palette reload failed, keeping previous table", zap.String("path", path), zap.Error(err))
				continue
			}
			store.Replace(p)
			logger.Info("palette reloaded", zap.String("path", path), zap.Int("categories", len(p.Colors)))
		}
	}
}
