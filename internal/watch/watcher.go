// Package watch re-runs a callback whenever the bundle file is rewritten,
// e.g. by the wrapped CLI's auto-updater.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hollegjx/mycode-statusline/internal/event"
	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/utils"
)

// Handler is invoked with the watched path after changes settle.
type Handler func(ctx context.Context, path string) error

// Watcher watches one file through its parent directory, so atomic
// replace-by-rename is seen too.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  Handler
	events   *event.Manager

	watcher   *fsnotify.Watcher
	debouncer utils.Debouncer
	fire      chan struct{}

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a watcher for path. events may be nil.
func New(path string, debounce time.Duration, handler Handler, events *event.Manager) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve '%s': %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch '%s': %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		handler:  handler,
		events:   events,
		watcher:  fw,
		fire:     make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}, nil
}

// Start runs the event loop in the background until ctx ends or Stop.
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.loop(ctx)
	logger.Debugf("Watch: watching %s (debounce %v)", w.path, w.debounce)
}

// Stop ends the loop, waits for it, and releases the fsnotify watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.debouncer.Stop()
		w.wg.Wait()
		w.watcher.Close()
		logger.Debugf("Watch: stopped")
	})
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("Watch: %v", err)
		case <-w.fire:
			if w.events != nil {
				w.events.Dispatch(event.TypeBundleChanged, event.BundleChangedData{FilePath: w.path})
			}
			if err := w.handler(ctx, w.path); err != nil {
				logger.Errorf("Watch: handler for %s failed: %v", w.path, err)
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}
	logger.DebugTagf("watch", "Watch: %s %s", ev.Op, ev.Name)
	w.debouncer.Debounce(w.debounce, func() {
		select {
		case w.fire <- struct{}{}:
		default: // a run is already queued
		}
	})
}
