// Package wrapper finds the wrapped CLI and its JavaScript bundle, and
// launches it with the wrapper environment markers set.
package wrapper

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hollegjx/mycode-statusline/internal/logger"
)

var (
	ErrBinaryNotFound = errors.New("wrapped binary not found")
	ErrBundleNotFound = errors.New("bundle not found")
)

// candidatePaths lists install locations checked after PATH.
func candidatePaths(name, goos string, getenv func(string) string) []string {
	switch goos {
	case "windows":
		if appdata := getenv("APPDATA"); appdata != "" {
			return []string{filepath.Join(appdata, "npm", name+".cmd")}
		}
		return nil
	case "darwin":
		return []string{"/usr/local/bin/" + name, "/opt/homebrew/bin/" + name}
	default:
		return []string{"/usr/local/bin/" + name, "/usr/bin/" + name}
	}
}

// FindBinary returns the absolute path of name, searching PATH first and then
// the usual npm global install locations. A name with a path separator is
// only checked for existence.
func FindBinary(name string) (string, error) {
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		if isFile(name) {
			return filepath.Abs(name)
		}
		return "", fmt.Errorf("%w: %s", ErrBinaryNotFound, name)
	}
	if p, err := exec.LookPath(name); err == nil {
		logger.Debugf("Wrapper: found %s on PATH at %s", name, p)
		return filepath.Abs(p)
	}
	for _, p := range candidatePaths(name, runtime.GOOS, os.Getenv) {
		if isFile(p) {
			logger.Debugf("Wrapper: found %s at %s", name, p)
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s is not on PATH or in a known install location", ErrBinaryNotFound, name)
}

// ResolveBundle follows the binary's symlinks; the target must be a .js file.
func ResolveBundle(binary string) (string, error) {
	target, err := filepath.EvalSymlinks(binary)
	if err != nil {
		return "", fmt.Errorf("failed to resolve '%s': %w", binary, err)
	}
	if !strings.EqualFold(filepath.Ext(target), ".js") {
		return "", fmt.Errorf("%w: %s resolves to %s, set wrapper.target", ErrBundleNotFound, binary, target)
	}
	return target, nil
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
