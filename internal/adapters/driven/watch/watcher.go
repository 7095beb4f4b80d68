// Package watch notices changes other processes make to a file-backed
// content cache and asks the content service to reload.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/shubhraaj/sitecms/internal/logger"
	"github.com/shubhraaj/sitecms/internal/metrics"
)

// DefaultDebounce coalesces bursts of file events into one reload.
const DefaultDebounce = 200 * time.Millisecond

// Reloader re-reads the cache and reports whether it changed.
type Reloader interface {
	Reload(ctx context.Context) (bool, error)
}

// Watcher watches the cache file and its SQLite side files.
type Watcher struct {
	path     string
	reloader Reloader
	debounce time.Duration
	log      zerolog.Logger
}

// New creates a watcher for the cache file at path.
func New(path string, reloader Reloader) *Watcher {
	return &Watcher{
		path:     filepath.Clean(path),
		reloader: reloader,
		debounce: DefaultDebounce,
		log:      logger.WithComponent("watch"),
	}
}

// Run watches until ctx is cancelled. The containing directory is watched
// because SQLite and bbolt replace or append to side files.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	// Record the starting contents.
	if _, err := w.reloader.Reload(ctx); err != nil {
		w.log.Warn().Err(err).Msg("initial cache read failed")
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watch error")

		case <-timer.C:
			changed, err := w.reloader.Reload(ctx)
			if err != nil {
				w.log.Warn().Err(err).Msg("reload after external change failed")
				continue
			}
			if changed {
				metrics.ExternalChangesTotal.Inc()
			}
		}
	}
}

// relevant reports whether event touches the cache file or a side file
// such as cache.db-wal.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == w.path || strings.HasPrefix(name, w.path+"-")
}
