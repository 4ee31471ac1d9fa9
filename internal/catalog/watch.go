package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sandevgo/sanibot/pkg/log"
)

// Watcher reloads the catalog when its dataset file changes on disk.
// The parent directory is watched because editors and deploy scripts
// usually replace the file instead of writing it in place.
type Watcher struct {
	catalog *Catalog
	watcher *fsnotify.Watcher
}

func NewWatcher(catalog *Catalog) *Watcher {
	return &Watcher{catalog: catalog}
}

func (w *Watcher) Start(ctx context.Context) error {
	if w.catalog.path == "" {
		return fmt.Errorf("catalog is not file-backed")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create dataset watcher: %w", err)
	}
	w.watcher = fw

	dir := filepath.Dir(w.catalog.path)
	base := filepath.Base(w.catalog.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logger := log.FromCtx(ctx)
	logger.Info().Str("path", w.catalog.path).Msg("watching dataset for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := w.catalog.Reload(); err != nil {
				logger.Error().Err(err).Msg("dataset reload failed, keeping previous snapshot")
				continue
			}
			snap := w.catalog.Snapshot()
			logger.Info().
				Int("facilities", len(snap.Facilities)).
				Int("faq", len(snap.FAQs)).
				Msg("dataset reloaded")
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("dataset watcher error")
		}
	}
}

func (w *Watcher) Shutdown(ctx context.Context) error {
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
