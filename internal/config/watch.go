package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the config file whenever it changes and hands the new scoring
// section to apply. Invalid files are logged and skipped. Watch returns when
// ctx is done.
func Watch(ctx context.Context, path string, logger *zap.Logger, apply func(ScoringConfig)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	// editors replace files on save, so watch the directory
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				logger.Warn("ignoring invalid config change", zap.String("path", path), zap.Error(err))
				continue
			}
			logger.Info("scoring config reloaded", zap.String("path", path))
			apply(cfg.Scoring)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("config watcher error", zap.Error(err))
		}
	}
}
