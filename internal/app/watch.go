package app

import (
	"context"
	"errors"

	"github.com/hollegjx/mycode-statusline/internal/event"
	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/watch"
)

// Watch patches path once and then again every time it is rewritten, until
// ctx is cancelled.
func (a *App) Watch(ctx context.Context, path string) error {
	if _, err := a.Patch(path, PatchOptions{}); err != nil && !errors.Is(err, ErrPatchFailed) {
		return err
	}

	a.events.Subscribe(event.TypeBundleChanged, func(e event.Event) bool {
		if data, ok := e.Data.(event.BundleChangedData); ok {
			a.printer.Printf("%s changed, re-patching\n", data.FilePath)
		}
		return false
	})

	w, err := watch.New(path, a.cfg.Watch.Debounce, a.repatch, a.events)
	if err != nil {
		return err
	}
	w.Start(ctx)
	defer w.Stop()

	a.printer.Printf("watching %s (ctrl-c to stop)\n", path)
	<-ctx.Done()
	return nil
}

func (a *App) repatch(_ context.Context, path string) error {
	_, err := a.Patch(path, PatchOptions{})
	if errors.Is(err, ErrPatchFailed) {
		logger.Warnf("App: %v", err)
		return nil
	}
	return err
}
