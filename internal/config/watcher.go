package config

import (
	"fmt"
	"path/filepath"

	"cartscout/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the config file and delivers a freshly loaded Config on
// every successful change. Reloads that fail to parse or validate are logged
// and dropped; the previous config stays in effect. The returned stop
// function releases the watcher.
func Watch(path string) (<-chan *Config, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create config watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace the file on save,
	// which would drop a direct file watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("watch config directory: %w", err)
	}

	updates := make(chan *Config, 1)
	go func() {
		defer close(updates)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != path {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					logging.Config("reload of %s failed, keeping current config: %v", path, err)
					continue
				}
				logging.Config("reloaded %s", path)
				select {
				case updates <- cfg:
				default:
					// Consumer hasn't drained the last update yet; drop.
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Config("config watcher error: %v", err)
			}
		}
	}()

	return updates, func() { watcher.Close() }, nil
}
