// internal/buffer/source_buffer.go
package buffer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/hollegjx/mycode-statusline/internal/types"
)

// ErrInvalidEncoding is returned by Load when the file is not valid UTF-8.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

// SourceBuffer holds the whole bundle as a single string.
// It is read once on Load and written once on Save.
type SourceBuffer struct {
	content  string
	filePath string
	mode     os.FileMode
	modified bool // Track if buffer has unsaved changes
}

// New creates a buffer from in-memory content.
func New(filePath, content string) *SourceBuffer {
	return &SourceBuffer{
		content:  content,
		filePath: filePath,
		mode:     0644,
	}
}

// Load reads filePath into a new buffer.
func Load(filePath string) (*SourceBuffer, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat '%s': %w", filePath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("'%s' is a directory", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", filePath, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("'%s': %w", filePath, ErrInvalidEncoding)
	}

	return &SourceBuffer{
		content:  string(data),
		filePath: filePath,
		mode:     info.Mode().Perm(),
	}, nil
}

// String returns the current content.
func (sb *SourceBuffer) String() string {
	return sb.content
}

// Len returns the content length in bytes.
func (sb *SourceBuffer) Len() int {
	return len(sb.content)
}

// Slice returns content[start:end] with both bounds clipped to the buffer.
func (sb *SourceBuffer) Slice(start, end int) string {
	start, end = clip(start, len(sb.content)), clip(end, len(sb.content))
	if start >= end {
		return ""
	}
	return sb.content[start:end]
}

// Replace splices text over [start, end). The buffer is left untouched when
// the range is invalid.
func (sb *SourceBuffer) Replace(start, end int, text string) (types.Edit, error) {
	if start < 0 || end < start || end > len(sb.content) {
		return types.Edit{}, fmt.Errorf("invalid range [%d,%d) for buffer of %d bytes", start, end, len(sb.content))
	}

	sb.content = sb.content[:start] + text + sb.content[end:]
	sb.modified = true

	return types.Edit{
		StartIndex:  start,
		OldEndIndex: end,
		NewEndIndex: start + len(text),
	}, nil
}

// Save writes the content to filePath, or to the loaded path when filePath is
// empty. The write goes to a temporary file in the same directory which is
// then renamed over the target, so the target is never left half-written.
func (sb *SourceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" { // Allow overriding path during save
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	mode := sb.mode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for '%s': %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(sb.content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set mode on '%s': %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace '%s': %w", path, err)
	}

	sb.filePath = path
	sb.modified = false
	return nil
}

// FilePath returns the path the buffer was loaded from or last saved to.
func (sb *SourceBuffer) FilePath() string {
	return sb.filePath
}

// IsModified returns true if the buffer has unsaved changes.
func (sb *SourceBuffer) IsModified() bool {
	return sb.modified
}

func clip(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// Ensure SourceBuffer satisfies the Buffer interface
var _ Buffer = (*SourceBuffer)(nil)
