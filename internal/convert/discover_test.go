package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillport/internal/construct"
)

func TestPlatformForPath(t *testing.T) {
	cases := []struct {
		path     string
		platform construct.Platform
		ok       bool
	}{
		{".claude/skills/review/SKILL.md", construct.PlatformClaude, true},
		{".claude/commands/commit.md", construct.PlatformClaude, true},
		{"CLAUDE.md", construct.PlatformClaude, true},
		{"project/CLAUDE.md", construct.PlatformClaude, true},
		{".cursor/rules/typescript.mdc", construct.PlatformCursor, true},
		{".github/copilot-instructions.md", construct.PlatformCopilot, true},
		{".github/instructions/frontend.instructions.md", construct.PlatformCopilot, true},
		{"README.md", "", false},
		{".claude/skills/review/notes.md", "", false},
		{".cursor/rules/typescript.md", "", false},
		{"docs/copilot-instructions.md", "", false},
	}
	for _, tc := range cases {
		platform, ok := PlatformForPath(tc.path)
		assert.Equal(t, tc.ok, ok, "path %s", tc.path)
		assert.Equal(t, tc.platform, platform, "path %s", tc.path)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".claude", "skills", "review", "SKILL.md"), "body\n")
	writeTestFile(t, filepath.Join(root, ".cursor", "rules", "ts.mdc"), "body\n")
	writeTestFile(t, filepath.Join(root, "README.md"), "not convertible\n")
	writeTestFile(t, filepath.Join(root, "node_modules", ".cursor", "rules", "dep.mdc"), "skipped\n")

	docs, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, construct.PlatformClaude, docs[0].Platform)
	assert.Equal(t, construct.PlatformCursor, docs[1].Platform)
}

func TestDocumentName(t *testing.T) {
	assert.Equal(t, "header-name", DocumentName(".cursor/rules/x.mdc", "header-name"))
	assert.Equal(t, "review", DocumentName(".claude/skills/review/SKILL.md", ""))
	assert.Equal(t, "ts", DocumentName(".cursor/rules/ts.mdc", ""))
	assert.Equal(t, "frontend", DocumentName(".github/instructions/frontend.instructions.md", ""))
}

func TestTargetRelPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".claude", "skills", "x", "SKILL.md"), TargetRelPath("x", construct.PlatformClaude))
	assert.Equal(t, filepath.Join(".cursor", "rules", "x.mdc"), TargetRelPath("x", construct.PlatformCursor))
	assert.Equal(t, filepath.Join(".github", "instructions", "x.instructions.md"), TargetRelPath("x", construct.PlatformCopilot))
}
