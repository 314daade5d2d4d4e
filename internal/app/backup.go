package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hollegjx/mycode-statusline/internal/buffer"
	"github.com/hollegjx/mycode-statusline/internal/logger"
)

// ErrNoBackup is returned by Restore when there is nothing to restore from.
var ErrNoBackup = errors.New("no backup found")

// BackupPath returns where the pristine copy of path is kept.
func (a *App) BackupPath(path string) string {
	return path + a.cfg.Patch.BackupSuffix
}

// backup writes original next to path unless backups are off or one already
// exists. It returns the backup path when one is in place.
func (a *App) backup(path, original string) (string, error) {
	if !a.cfg.Patch.Backup {
		return "", nil
	}
	dst := a.BackupPath(path)
	if _, err := os.Stat(dst); err == nil {
		logger.Debugf("App: keeping existing backup %s", dst)
		return dst, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to check backup '%s': %w", dst, err)
	}

	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := buffer.New(dst, original).Save(""); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.Chmod(dst, mode); err != nil {
		return "", fmt.Errorf("failed to set mode on backup: %w", err)
	}
	a.printer.Printf("backup written to %s\n", dst)
	return dst, nil
}

// Restore copies the backup of path back over it.
func (a *App) Restore(path string) error {
	src := a.BackupPath(path)
	b, err := buffer.Load(src)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNoBackup, src)
	}
	if err != nil {
		return err
	}
	if err := b.Save(path); err != nil {
		return fmt.Errorf("failed to restore '%s': %w", path, err)
	}
	a.printer.Printf("restored %s from %s\n", path, src)
	return nil
}
