package transform

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillport/internal/construct"
	"skillport/internal/detect"
	"skillport/internal/taxonomy"
)

func mustTransform(t *testing.T, target construct.Platform, doc string, opts ...Option) *construct.Result {
	t.Helper()
	tr, err := New(target, opts...)
	require.NoError(t, err)
	res, err := tr.Transform(detect.Analyze(doc))
	require.NoError(t, err)
	return res
}

func TestNewRejectsUnknownTarget(t *testing.T) {
	_, err := New("gemini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target platform")
}

// Every construct kind in the taxonomy must have a policy for every
// target platform. A hole here is a configuration error at runtime.
func TestPolicyTableIsComplete(t *testing.T) {
	for _, def := range taxonomy.All() {
		for _, target := range construct.Targets() {
			_, ok := policyFor(def.Kind, target)
			assert.True(t, ok, "no policy for %s on %s", def.Kind, target)
		}
	}
}

func TestMissingPolicyFailsWholeCall(t *testing.T) {
	tr, err := New(construct.PlatformCursor)
	require.NoError(t, err)

	a := &construct.Analysis{
		Source: "x",
		Constructs: []*construct.Construct{
			{Kind: "bogus", Raw: "x", Span: construct.Span{Start: 0, End: 1}},
		},
	}
	_, err = tr.Transform(a)
	require.Error(t, err)

	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, construct.Kind("bogus"), ce.Kind)
	assert.Equal(t, construct.PlatformCursor, ce.Target)
}

func TestPassThroughIsIdentity(t *testing.T) {
	doc := "spawn agent reviewer to check style.\n" +
		"You may use the Read and Grep tools.\n" +
		"run /review on the staged diff.\n"

	res := mustTransform(t, construct.PlatformClaude, doc)
	assert.Equal(t, doc, res.Content, "native constructs must survive byte for byte")
	assert.Empty(t, res.Warnings)
}

func TestAgentSpawnDegradesToSequentialStep(t *testing.T) {
	res := mustTransform(t, construct.PlatformCursor, "spawn agent reviewer to check style\n")

	assert.Contains(t, res.Content, "Perform the following review step directly: check style")
	assert.Contains(t, res.Content, "*(this platform cannot delegate to sub-agents)*")
	assert.NotContains(t, res.Content, "spawn agent")

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, construct.KindAgentSpawn, res.Warnings[0].Kind)
	assert.Equal(t, construct.SeverityDegraded, res.Warnings[0].Severity)
}

func TestParallelDispatchRewrittenSequential(t *testing.T) {
	res := mustTransform(t, construct.PlatformCursor, "run the build and the test suite in parallel\n")
	assert.Contains(t, res.Content, "run the build and the test suite, one after another")
	assert.Empty(t, res.Warnings, "literal rewrites carry no warning")
}

func TestExtendedThinkingRemoved(t *testing.T) {
	res := mustTransform(t, construct.PlatformCursor, "ultrathink about the migration plan\n")

	assert.NotContains(t, res.Content, "ultrathink")
	assert.Contains(t, res.Content, "about the migration plan")

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, construct.SeverityUnsupported, res.Warnings[0].Severity)
	assert.Equal(t, construct.KindExtendedThinking, res.Warnings[0].Kind)
}

func TestMemoryImportDegradedOnCopilot(t *testing.T) {
	res := mustTransform(t, construct.PlatformCopilot, "@docs/style.md\n")

	assert.Contains(t, res.Content, "read docs/style.md first")
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, construct.SeverityDegraded, res.Warnings[0].Severity)
}

func fileListDoc(n int) string {
	files := make([]string, n)
	for i := range files {
		files[i] = fmt.Sprintf("a%d.go", i+1)
	}
	return "update " + strings.Join(files, ", ") + "\n"
}

func TestDecomposeSplitsOverLimit(t *testing.T) {
	res := mustTransform(t, construct.PlatformCopilot, fileListDoc(15))

	assert.Contains(t, res.Content, "one batch at a time")
	assert.Contains(t, res.Content, "Part 1 of 2:")
	assert.Contains(t, res.Content, "Part 2 of 2:")
	assert.Contains(t, res.Content, "a10.go")
	assert.Contains(t, res.Content, "a11.go")

	require.Len(t, res.Warnings, 1)
	w := res.Warnings[0]
	assert.Equal(t, construct.SeverityInfo, w.Severity)
	assert.Equal(t, construct.KindMultiFileRef, w.Kind)
	assert.Contains(t, w.Message, "15 file references exceed the target working-set limit of 10")
}

func TestDecomposeWithinLimitIsPassThrough(t *testing.T) {
	doc := fileListDoc(3)
	res := mustTransform(t, construct.PlatformCopilot, doc)
	assert.Equal(t, doc, res.Content)
	assert.Empty(t, res.Warnings)
}

func TestDecomposeUnlimitedTarget(t *testing.T) {
	doc := fileListDoc(40)
	res := mustTransform(t, construct.PlatformClaude, doc)
	assert.Equal(t, doc, res.Content)
	assert.Empty(t, res.Warnings)
}

func TestDecomposeHonorsLimitOverride(t *testing.T) {
	res := mustTransform(t, construct.PlatformCursor, fileListDoc(3), WithWorkingSetLimit(2))

	assert.Contains(t, res.Content, "Part 1 of 2: a1.go, a2.go")
	assert.Contains(t, res.Content, "Part 2 of 2: a3.go")
	require.Len(t, res.Warnings, 1)
}

// Children are rewritten before the parent, and the parent's rewrite
// operates on the substituted text.
func TestNestedRewriteInnermostFirst(t *testing.T) {
	doc := "spawn agent tester to run the command npm test\n"

	t.Run("cursor keeps the pass-through child intact", func(t *testing.T) {
		res := mustTransform(t, construct.PlatformCursor, doc)
		assert.Contains(t, res.Content, "Perform the following test step directly: run the command npm test")
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, construct.KindAgentSpawn, res.Warnings[0].Kind)
	})

	t.Run("copilot degrades the child inside the parent rewrite", func(t *testing.T) {
		res := mustTransform(t, construct.PlatformCopilot, doc)
		assert.Contains(t, res.Content, "Perform the following test step directly: run the command npm test")
		assert.Contains(t, res.Content, "command execution is not guaranteed here")

		require.Len(t, res.Warnings, 2)
		assert.Equal(t, construct.KindShellExec, res.Warnings[0].Kind, "child warning is emitted first")
		assert.Equal(t, construct.KindAgentSpawn, res.Warnings[1].Kind)
	})
}

func TestProseBetweenConstructsUnchanged(t *testing.T) {
	doc := "Intro paragraph.\n\nenter plan mode before touching the schema\n\nClosing note.\n"
	res := mustTransform(t, construct.PlatformCopilot, doc)

	assert.True(t, strings.HasPrefix(res.Content, "Intro paragraph.\n\n"))
	assert.True(t, strings.HasSuffix(res.Content, "Closing note.\n"))
	assert.NotContains(t, res.Content, "plan mode")
}

func TestWorkspaceRefRewrites(t *testing.T) {
	doc := "search #codebase for existing helpers first\n"

	res := mustTransform(t, construct.PlatformCursor, doc)
	assert.Contains(t, res.Content, "search @codebase for existing helpers")

	res = mustTransform(t, construct.PlatformClaude, doc)
	assert.Contains(t, res.Content, "search the entire repository for existing helpers")
}

func TestStepLabel(t *testing.T) {
	assert.Equal(t, "review", stepLabel("reviewer"))
	assert.Equal(t, "test", stepLabel("tester"))
	assert.Equal(t, "audit", stepLabel("auditor"))
	assert.Equal(t, "security-audit", stepLabel("Security-Auditor"))
}

func TestDefaultWorkingSetLimits(t *testing.T) {
	assert.Equal(t, 0, DefaultWorkingSetLimit(construct.PlatformClaude))
	assert.Equal(t, 25, DefaultWorkingSetLimit(construct.PlatformCursor))
	assert.Equal(t, 10, DefaultWorkingSetLimit(construct.PlatformCopilot))
}
