// internal/buffer/buffer.go
package buffer

import "github.com/hollegjx/mycode-statusline/internal/types"

// Buffer defines the operations the patch pipeline needs from the bundle text.
type Buffer interface {
	String() string
	Len() int
	Slice(start, end int) string
	Replace(start, end int, text string) (types.Edit, error)
	Save(filePath string) error
	FilePath() string
	IsModified() bool
}
