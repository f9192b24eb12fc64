package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"idlewatch/internal/settings"
)

// WatchSettingsFile delivers reloaded settings whenever the file at
// configPath is written or recreated. The watch is placed on the parent
// directory so editors that replace the file atomically are still seen.
// The returned channel closes when ctx is done.
func WatchSettingsFile(ctx context.Context, configPath string) (<-chan settings.Settings, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch config directory: %w", err)
	}

	updates := make(chan settings.Settings, 1)
	go func() {
		defer close(updates)
		defer func() {
			_ = watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(configPath) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				reloaded, err := LoadSettingsFile(configPath)
				if err != nil {
					continue
				}
				select {
				case updates <- reloaded:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return updates, nil
}
