package params

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// LoadFunc reads the controls section from the file at path.
type LoadFunc func(path string) (Controls, error)

// Watcher re-applies the controls from a config file into a Store whenever the file changes.
// Bursts of events are debounced into a single reload.
type Watcher struct {
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	store    *Store
	load     LoadFunc
	path     string
	debounce time.Duration

	wg sync.WaitGroup
}

// WatcherBuilderOption is a functional option for configuring a Watcher.
type WatcherBuilderOption func(*Watcher)

// WithDebounce sets how long the watcher waits after the last event before reloading. Defaults to 200ms.
//
// Parameters:
//   - d: the debounce window
//
// Returns:
//   - WatcherBuilderOption: option function to apply
func WithDebounce(d time.Duration) WatcherBuilderOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger reload results are reported to.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - WatcherBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) WatcherBuilderOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a Watcher for path. The containing directory is watched so editors that
// replace the file on save are still observed.
//
// Parameters:
//   - path: the config file to watch
//   - store: the store to apply reloaded controls to
//   - load: reads the controls from path
//   - options: WatcherBuilderOption functions
//
// Returns:
//   - *Watcher: the watcher, not yet started
//   - error: error if the file watcher cannot be created
func NewWatcher(path string, store *Store, load LoadFunc, options ...WatcherBuilderOption) (*Watcher, error) {
	if store == nil || load == nil {
		panic("params: NewWatcher requires a non-nil Store and LoadFunc")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		logger:   zap.NewNop(),
		watcher:  fw,
		store:    store,
		load:     load,
		path:     filepath.Clean(path),
		debounce: 200 * time.Millisecond,
	}
	for _, opt := range options {
		opt(w)
	}
	return w, nil
}

// Start begins watching. Events are processed on a background goroutine until ctx is done or Stop is called.
//
// Parameters:
//   - ctx: cancels the watch loop
//
// Returns:
//   - error: error if the directory cannot be watched
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching controls", zap.String("path", w.path))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer timer.Stop()
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if w.shouldProcessEvent(event) {
					timer.Reset(w.debounce)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Error("controls watcher error", zap.Error(err))
			case <-timer.C:
				w.reload()
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Stop closes the underlying watcher and waits for the watch loop to exit.
//
// Returns:
//   - error: error from closing the file watcher
func (w *Watcher) Stop() error {
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}

func (w *Watcher) reload() {
	c, err := w.load(w.path)
	if err != nil {
		w.logger.Error("failed to reload controls", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.store.Apply(c)
	w.logger.Info("controls reloaded", zap.String("path", w.path))
}
