package anchor

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollegjx/mycode-statusline/internal/types"
)

func TestLocate_Literal(t *testing.T) {
	content := `a{key:"esc"}b{key:"esc"}c`
	matches, err := Locate(content, Literal(`{key:"esc"}`))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].Start)
	assert.Equal(t, 12, matches[0].End)
	assert.Equal(t, 13, matches[1].Start)
}

func TestLocate_NotFound(t *testing.T) {
	_, err := Locate("nothing here", Literal("Context low ("))
	assert.ErrorIs(t, err, types.ErrAnchorNotFound)

	_, err = Locate("anything", Anchor{})
	assert.ErrorIs(t, err, types.ErrAnchorNotFound, "empty anchor never matches")
}

func TestLocate_Secondary(t *testing.T) {
	far := `{key:"esc"}` + string(make([]byte, 300)) + `"to interrupt"`
	tests := []struct {
		name    string
		content string
		want    []int
		wantErr error
	}{
		{"within bound", `x{key:"esc"},"foo","to interrupt"`, []int{1}, nil},
		{"too far", far, nil, types.ErrSecondaryAnchorMissing},
		{"only second qualifies", `{key:"esc"}` + string(make([]byte, 300)) + `{key:"esc"}"to interrupt"`, []int{311}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Literal(`{key:"esc"}`).WithSecondary(`"to interrupt"`, 200)
			matches, err := Locate(tt.content, a)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			var starts []int
			for _, m := range matches {
				starts = append(starts, m.Start)
			}
			assert.Equal(t, tt.want, starts)
		})
	}
}

func TestLocate_RegexCapture(t *testing.T) {
	re := regexp.MustCompile(`var\s+([a-zA-Z0-9_]+)\s*=`)
	matches, err := Locate("var ab=1;var  cd =2", Regexp(re))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "ab", matches[0].Captured)
	assert.Equal(t, "cd", matches[1].Captured)
}

func TestPick(t *testing.T) {
	matches := []Match{{Start: 1}, {Start: 5}, {Start: 9}}

	m, ok := Pick(matches, Forward)
	require.True(t, ok)
	assert.Equal(t, 1, m.Start)

	m, ok = Pick(matches, Backward)
	require.True(t, ok)
	assert.Equal(t, 9, m.Start)

	_, ok = Pick(nil, Forward)
	assert.False(t, ok)
}

func TestFind_UsesDirection(t *testing.T) {
	a := Literal("ab")
	a.Direction = Backward
	m, err := Find("ab ab ab", a)
	require.NoError(t, err)
	assert.Equal(t, 6, m.Start)
}
