package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollegjx/mycode-statusline/internal/buffer"
	"github.com/hollegjx/mycode-statusline/internal/patch"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

func TestCountErrors(t *testing.T) {
	c := NewSyntaxChecker(0)
	defer c.Close()
	assert.Equal(t, DefaultMargin, c.Margin)

	n, err := c.CountErrors(context.Background(), []byte(`h.createElement(X,{verbose:true});`))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = c.CountErrors(context.Background(), []byte(`h.createElement(X,{verbose:true);`))
	require.NoError(t, err)
	assert.Positive(t, n)
}

func TestVerify_CleanSplice(t *testing.T) {
	c := NewSyntaxChecker(100)
	defer c.Close()

	before := `h.createElement(X,{spinnerTip:1,overrideMessage:2,verbose:false});`
	s := patch.NewSession(buffer.New("cli.js", before), patch.WithVerifier(c))
	res := s.Run(patch.VerbosePatch{Value: true})

	require.Equal(t, patch.Applied, res.State)
	assert.Empty(t, res.Warnings)
}

func TestVerify_BrokenSplice(t *testing.T) {
	c := NewSyntaxChecker(100)
	defer c.Close()

	before := `f({a:1});g();`
	op := types.Operation{Name: "broken", Start: 5, End: 7, OldText: "1}", NewText: "1"}
	after := before[:op.Start] + op.NewText + before[op.End:]

	warnings := c.Verify(before, after, op)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "near byte 5")
}

func TestClipAround(t *testing.T) {
	assert.Equal(t, "bcd", clipAround("abcde", 2, 3, 1))
	assert.Equal(t, "abcde", clipAround("abcde", 0, 5, 50))
	assert.Equal(t, "", clipAround("abc", 10, 12, 1))
}
