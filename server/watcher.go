package server

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/shopcanvas/shopcanvas/config"
	"github.com/shopcanvas/shopcanvas/debounce"
	"github.com/shopcanvas/shopcanvas/logging"
	"github.com/sirupsen/logrus"
)

// ConfigWatcher reloads the shopcanvas config file while the server runs.
// Rapid editor write bursts are coalesced through the same debouncer the
// store editor uses for autosave.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	deb      *debounce.Debouncer[string]
	path     string
	onReload func(*config.Config)
	log      *logrus.Entry
}

// NewConfigWatcher watches the directory containing path for changes to the
// config file. onReload receives each successfully parsed config.
func NewConfigWatcher(path string, quiet time.Duration, onReload func(*config.Config)) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Editors replace files rather than writing in place, so watch the
	// directory and filter by name.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	if quiet <= 0 {
		quiet = 250 * time.Millisecond
	}

	return &ConfigWatcher{
		watcher:  watcher,
		deb:      debounce.New[string](quiet),
		path:     path,
		onReload: onReload,
		log:      logging.NewLogger("config-watcher"),
	}, nil
}

// Start blocks until the context is cancelled.
func (w *ConfigWatcher) Start(ctx context.Context) {
	defer w.deb.Stop()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			w.deb.Set(event.Name)

		case name := <-w.deb.C:
			w.reload(name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Error("Watcher error")

		case <-ctx.Done():
			w.watcher.Close()
			return
		}
	}
}

func (w *ConfigWatcher) reload(name string) {
	cfg, err := config.Load(w.path)
	if err != nil {
		// A half-written file is expected mid-edit; the next settle retries.
		w.log.WithError(err).Warn("Config reload failed")
		return
	}
	w.log.WithField("file", filepath.Base(name)).Info("Config reloaded")
	if w.onReload != nil {
		w.onReload(cfg)
	}
}

// Close stops the watcher and releases resources.
func (w *ConfigWatcher) Close() error {
	w.deb.Stop()
	return w.watcher.Close()
}
