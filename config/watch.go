// ABOUTME: Live reload of the config file using filesystem notifications
// ABOUTME: Watches the config directory and swaps the shared config after each write

package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// reloadDebounce lets editors finish atomic writes before the file is read
const reloadDebounce = 100 * time.Millisecond

// Watch reloads path into shared whenever it is created or written, until ctx is done.
// The directory is watched rather than the file so editors that replace the file are seen.
// onReload, if set, is called after every reload attempt; a failed reload keeps the old config.
func Watch(ctx context.Context, path string, shared *SharedConfig, onReload func(Config, error)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve config path %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()

		return errors.Wrapf(err, "failed to watch config directory for %s", path)
	}

	go func() {
		defer func() { _ = watcher.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Clean(event.Name) != target || (!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create)) {
					continue
				}

				time.Sleep(reloadDebounce)

				cfg, err := LoadConfig(target)
				if err == nil {
					shared.Update(cfg)
				}

				if onReload != nil {
					onReload(cfg, err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				if onReload != nil {
					onReload(shared.Get(), errors.Wrap(err, "config watcher"))
				}
			}
		}
	}()

	return nil
}
