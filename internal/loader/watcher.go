package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"finitefield.org/portfolio-web/internal/debounce"
)

// WatchDelay collapses the burst of events an editor save produces.
const WatchDelay = 250 * time.Millisecond

// Watcher reloads a Store when its local data file changes.
type Watcher struct {
	path   string
	store  *Store
	logger *zap.Logger
	delay  time.Duration
}

// NewWatcher returns a watcher for a store backed by a FileSource.
func NewWatcher(store *Store, logger *zap.Logger) (*Watcher, error) {
	if store == nil || store.loader == nil {
		return nil, errors.New("loader: watcher requires a store")
	}
	fs, ok := store.loader.Source().(FileSource)
	if !ok {
		return nil, fmt.Errorf("loader: source %q is not a local file", store.loader.Source().Name())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{path: fs.Name(), store: store, logger: logger, delay: WatchDelay}, nil
}

// Run watches until ctx is done. The containing directory is watched so
// files replaced by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("loader: create watcher: %w", err)
	}
	defer fw.Close()

	abs, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("loader: watch %s: %w", filepath.Dir(abs), err)
	}

	reload := debounce.New(w.delay, func() {
		res := w.store.Reload(context.WithoutCancel(ctx))
		w.logger.Info("portfolio data reloaded",
			zap.String("source", res.Source),
			zap.Bool("fallback", res.Fallback),
		)
	})
	defer reload.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			reload.Trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("data watcher error", zap.Error(err))
		}
	}
}
