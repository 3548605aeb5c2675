package main

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/emojidecoded/decoder/interpret"
)

// watchCatalog reloads the catalog export whenever the content pipeline
// rewrites it, handing each freshly built immutable Catalog to swap. The
// parent directory is watched rather than the file itself because atomic
// writers replace the file by rename. A reload that fails to parse keeps
// the previous catalog in place.
func watchCatalog(ctx context.Context, logger *slog.Logger, path string, swap func(*interpret.Catalog)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				catalog, err := interpret.LoadCatalog(path)
				if err != nil {
					logger.Warn("catalog reload failed", "path", path, "error", err)
					continue
				}
				swap(catalog)
				logger.Info("catalog reloaded", "path", path, "entries", catalog.Len())
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("catalog watcher error", "error", err)
			}
		}
	}()
	return nil
}
