package wrapper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/hollegjx/mycode-statusline/internal/config"
	"github.com/hollegjx/mycode-statusline/internal/logger"
)

// Interceptor sees every chunk passing between the terminal and a child
// running under a pseudo-terminal.
type Interceptor interface {
	Input(p []byte) []byte
	Output(p []byte) []byte
}

// PassThrough forwards bytes unchanged.
type PassThrough struct{}

func (PassThrough) Input(p []byte) []byte  { return p }
func (PassThrough) Output(p []byte) []byte { return p }

// Launcher runs the wrapped binary.
type Launcher struct {
	Binary      string
	Args        []string
	Version     string
	PTY         bool
	Interceptor Interceptor

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewLauncher returns a launcher wired to the process's own stdio.
func NewLauncher(binary string, args []string) *Launcher {
	return &Launcher{
		Binary:      binary,
		Args:        args,
		Version:     config.Version,
		Interceptor: PassThrough{},
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Environ returns the current environment plus the wrapper markers.
func Environ(version string) []string {
	return append(os.Environ(),
		config.WrapperEnv+"=1",
		config.VersionEnv+"="+version,
	)
}

// Run starts the binary and waits for it. A non-zero exit is returned as the
// exit code with a nil error; err is reserved for failures to launch.
func (l *Launcher) Run(ctx context.Context) (int, error) {
	cmd := exec.CommandContext(ctx, l.Binary, l.Args...)
	cmd.Env = Environ(l.Version)
	logger.Infof("Wrapper: launching %s %v (pty=%v)", l.Binary, l.Args, l.PTY)

	if l.PTY {
		ic := l.Interceptor
		if ic == nil {
			ic = PassThrough{}
		}
		return runPTY(cmd, l.Stdin, l.Stdout, ic)
	}

	cmd.Stdin, cmd.Stdout, cmd.Stderr = l.Stdin, l.Stdout, l.Stderr
	return exitCode(cmd.Run())
}

func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("failed to run wrapped binary: %w", err)
}

// copyThrough copies src to dst, passing each chunk through fn.
func copyThrough(dst io.Writer, src io.Reader, fn func([]byte) []byte) error {
	buf := make([]byte, 32*1024)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(fn(buf[:n])); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
