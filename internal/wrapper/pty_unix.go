//go:build !windows

package wrapper

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/hollegjx/mycode-statusline/internal/logger"
)

func runPTY(cmd *exec.Cmd, stdin io.Reader, stdout io.Writer, ic Interceptor) (int, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return -1, fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		winch := make(chan os.Signal, 1)
		signal.Notify(winch, syscall.SIGWINCH)
		go func() {
			for range winch {
				if err := pty.InheritSize(f, ptmx); err != nil {
					logger.Debugf("Wrapper: resize pty: %v", err)
				}
			}
		}()
		winch <- syscall.SIGWINCH
		defer func() { signal.Stop(winch); close(winch) }()

		oldState, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return -1, fmt.Errorf("MakeRaw: %w", err)
		}
		defer term.Restore(int(f.Fd()), oldState)
	}

	// Reading stdin blocks until the user types, so this copy is not joined.
	go func() {
		if err := copyThrough(ptmx, stdin, ic.Input); err != nil {
			logger.Debugf("Wrapper: stdin copy ended: %v", err)
		}
	}()

	var waitErr error
	var g errgroup.Group
	g.Go(func() error {
		err := copyThrough(stdout, ptmx, ic.Output)
		// Linux reports EIO on the master once the child side closes.
		if errors.Is(err, syscall.EIO) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		waitErr = cmd.Wait()
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Warnf("Wrapper: output copy failed: %v", err)
	}
	return exitCode(waitErr)
}
