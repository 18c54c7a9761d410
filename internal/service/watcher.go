package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ModelLoader is implemented by Classifier
type ModelLoader interface {
	LoadFromFile(path string) error
}

// ModelWatcher reloads a classifier whenever its model file is rewritten
type ModelWatcher struct {
	path    string
	loader  ModelLoader
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	reloads chan struct{} // receives after every reload attempt, for tests
}

// NewModelWatcher creates a watcher for the model file at path
func NewModelWatcher(path string, loader ModelLoader, logger *zap.Logger) (*ModelWatcher, error) {
	resolved, err := ResolveModelPath(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// The directory is watched because atomic saves replace the file by rename.
	if err := watcher.Add(filepath.Dir(resolved)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(resolved), err)
	}

	return &ModelWatcher{
		path:    resolved,
		loader:  loader,
		watcher: watcher,
		logger:  logger,
		reloads: make(chan struct{}, 1),
	}, nil
}

// Start processes file events until ctx is cancelled. Run it in a goroutine.
func (w *ModelWatcher) Start(ctx context.Context) {
	defer w.watcher.Close()

	w.logger.Info("Watching model file", zap.String("path", w.path))

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Model watcher error", zap.Error(err))

		case <-ctx.Done():
			w.logger.Debug("Model watcher stopping")
			return
		}
	}
}

func (w *ModelWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	if err := w.loader.LoadFromFile(w.path); err != nil {
		w.logger.Warn("Failed to reload model", zap.String("path", w.path), zap.Error(err))
	} else {
		w.logger.Info("Reloaded model", zap.String("path", w.path))
	}

	select {
	case w.reloads <- struct{}{}:
	default:
	}
}
