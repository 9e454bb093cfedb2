package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFencedRegions(t *testing.T) {
	t.Run("single block", func(t *testing.T) {
		doc := "before\n```\nspawn agent x to y\n```\nafter\n"
		regs := fencedRegions(doc)
		require.Len(t, regs, 1)
		assert.Equal(t, len("before\n"), regs[0].start)
		assert.Equal(t, len(doc)-len("after\n"), regs[0].end)
	})

	t.Run("tilde fence", func(t *testing.T) {
		doc := "~~~\ncode\n~~~\n"
		regs := fencedRegions(doc)
		require.Len(t, regs, 1)
		assert.Equal(t, region{start: 0, end: len(doc)}, regs[0])
	})

	t.Run("unterminated block runs to end", func(t *testing.T) {
		doc := "intro\n```go\nfunc main() {}\n"
		regs := fencedRegions(doc)
		require.Len(t, regs, 1)
		assert.Equal(t, region{start: len("intro\n"), end: len(doc)}, regs[0])
	})

	t.Run("closing fence must be at least as long", func(t *testing.T) {
		doc := "````\ncode\n```\nmore\n````\n"
		regs := fencedRegions(doc)
		require.Len(t, regs, 1)
		assert.Equal(t, region{start: 0, end: len(doc)}, regs[0])
	})
}

func TestInlineRegions(t *testing.T) {
	t.Run("single span", func(t *testing.T) {
		doc := "run `npm test` now"
		regs := inlineRegions(doc, nil)
		require.Len(t, regs, 1)
		assert.Equal(t, "`npm test`", doc[regs[0].start:regs[0].end])
	})

	t.Run("double backticks close only on double", func(t *testing.T) {
		doc := "see ``a ` b`` here"
		regs := inlineRegions(doc, nil)
		require.Len(t, regs, 1)
		assert.Equal(t, "``a ` b``", doc[regs[0].start:regs[0].end])
	})

	t.Run("unclosed span runs to end", func(t *testing.T) {
		doc := "broken `rest of line"
		regs := inlineRegions(doc, nil)
		require.Len(t, regs, 1)
		assert.Equal(t, region{start: len("broken "), end: len(doc)}, regs[0])
	})

	t.Run("backticks inside a fenced block are skipped", func(t *testing.T) {
		doc := "```\na `b` c\n```\n"
		regs := inlineRegions(doc, fencedRegions(doc))
		assert.Empty(t, regs)
	})
}
