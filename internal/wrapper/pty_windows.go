//go:build windows

package wrapper

import (
	"errors"
	"io"
	"os/exec"
)

func runPTY(cmd *exec.Cmd, stdin io.Reader, stdout io.Writer, ic Interceptor) (int, error) {
	return -1, errors.New("pty mode is not supported on windows")
}
