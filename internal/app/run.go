package app

import (
	"context"
	"errors"

	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/wrapper"
)

// Target returns the bundle to patch for the wrapped binary: the configured
// target, or the .js file the binary resolves to.
func (a *App) Target(binary string) (string, error) {
	if a.cfg.Wrapper.Target != "" {
		return a.cfg.Wrapper.Target, nil
	}
	return wrapper.ResolveBundle(binary)
}

// Run finds the wrapped binary, patches its bundle when configured to, and
// launches it with args. Patch problems are reported but never stop the
// launch. It returns the child's exit code.
func (a *App) Run(ctx context.Context, args []string) (int, error) {
	bin, err := wrapper.FindBinary(a.cfg.Wrapper.Binary)
	if err != nil {
		return -1, err
	}

	if a.cfg.Wrapper.PatchBeforeLaunch {
		a.patchBeforeLaunch(bin)
	}

	l := wrapper.NewLauncher(bin, args)
	l.PTY = a.cfg.Wrapper.PTY
	return l.Run(ctx)
}

func (a *App) patchBeforeLaunch(bin string) {
	target, err := a.Target(bin)
	if err != nil {
		a.printer.Warnf("skipping patch: %v", err)
		return
	}
	if _, err := a.Patch(target, PatchOptions{}); err != nil {
		if !errors.Is(err, ErrPatchFailed) {
			a.printer.Warnf("patch failed: %v", err)
		}
		logger.Warnf("App: patch before launch: %v", err)
	}
}
