// Package verify re-parses the neighbourhood of a splice and warns when the
// edit made the JavaScript around it less well-formed. It only reports;
// locating never depends on it.
package verify

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

// DefaultMargin is how many bytes either side of a splice are parsed.
const DefaultMargin = 2000

// SyntaxChecker compares tree-sitter error counts before and after a splice.
type SyntaxChecker struct {
	Margin int

	mu     sync.Mutex
	parser *sitter.Parser
}

// NewSyntaxChecker creates a checker parsing margin bytes around each edit.
func NewSyntaxChecker(margin int) *SyntaxChecker {
	if margin <= 0 {
		margin = DefaultMargin
	}
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	return &SyntaxChecker{Margin: margin, parser: parser}
}

// Verify returns a warning when the splice added ERROR or MISSING nodes.
func (c *SyntaxChecker) Verify(before, after string, op types.Operation) []string {
	oldSrc := clipAround(before, op.Start, op.End, c.Margin)
	newSrc := clipAround(after, op.Start, op.Start+len(op.NewText), c.Margin)

	oldErrs, err := c.CountErrors(context.Background(), []byte(oldSrc))
	if err != nil {
		logger.Warnf("Verify: parse before %s failed: %v", op.Name, err)
		return nil
	}
	newErrs, err := c.CountErrors(context.Background(), []byte(newSrc))
	if err != nil {
		logger.Warnf("Verify: parse after %s failed: %v", op.Name, err)
		return nil
	}

	logger.DebugTagf("apply", "Verify: %s error nodes %d -> %d", op.Name, oldErrs, newErrs)
	if newErrs > oldErrs {
		return []string{fmt.Sprintf("splice added %d syntax error node(s) near byte %d", newErrs-oldErrs, op.Start)}
	}
	return nil
}

// CountErrors parses src as JavaScript and counts ERROR and MISSING nodes.
func (c *SyntaxChecker) CountErrors(ctx context.Context, src []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tree, err := c.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return 0, fmt.Errorf("failed to parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return 0, nil
	}

	count := 0
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type() == "ERROR" || n.IsMissing() {
			count++
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if child := n.Child(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return count, nil
}

// Close releases the parser.
func (c *SyntaxChecker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parser.Close()
}

func clipAround(s string, start, end, margin int) string {
	from := start - margin
	if from < 0 {
		from = 0
	}
	to := end + margin
	if to > len(s) {
		to = len(s)
	}
	if from > to {
		return ""
	}
	return s[from:to]
}
