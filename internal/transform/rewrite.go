package transform

import (
	"fmt"
	"regexp"
	"strings"

	"skillport/internal/construct"
	"skillport/internal/taxonomy"
)

// defaultWorkingSetLimit is the documented simultaneous-file cap per
// target platform. Zero means unlimited. Overridable per Transformer
// via WithWorkingSetLimit (the config layer feeds user overrides in).
var defaultWorkingSetLimit = map[construct.Platform]int{
	construct.PlatformClaude:  0,
	construct.PlatformCursor:  25,
	construct.PlatformCopilot: 10,
}

// DefaultWorkingSetLimit exposes the built-in cap for a target.
func DefaultWorkingSetLimit(p construct.Platform) int {
	return defaultWorkingSetLimit[p]
}

// ----- literal rewriters ----------------------------------------------------

// rewriteAgentSpawnSequential turns a delegation instruction into a
// direct sequential step.
func rewriteAgentSpawnSequential(c *construct.Construct, body string) string {
	task := c.Value("task")
	agent := c.Value("agent")
	// Children were already rewritten into body; re-derive the task
	// text from it so their rewrites are preserved.
	if task != "" {
		if idx := strings.Index(strings.ToLower(body), " to "); idx >= 0 {
			task = strings.TrimSpace(body[idx+4:])
		}
	}
	switch {
	case task != "" && agent != "":
		return fmt.Sprintf("Perform the following %s step directly: %s", stepLabel(agent), task)
	case task != "":
		return "Perform the following step directly: " + task
	case agent != "":
		return fmt.Sprintf("Perform the %s work directly, as a sequential step", stepLabel(agent))
	default:
		return "Perform the delegated work directly, as a sequential step"
	}
}

// stepLabel trims agent-naming suffixes so "reviewer" reads as a
// "review step" rather than a "reviewer step".
func stepLabel(agent string) string {
	l := strings.ToLower(agent)
	for _, suffix := range []string{"er", "or"} {
		if trimmed, ok := strings.CutSuffix(l, suffix); ok && len(trimmed) >= 3 {
			return trimmed
		}
	}
	return l
}

var (
	inParallelRe   = regexp.MustCompile(`(?i)\s*\bin\s+parallel\b`)
	concurrentlyRe = regexp.MustCompile(`(?i)\bconcurrently\s+`)
)

// rewriteSequential converts parallel phrasing into sequential-step
// phrasing.
func rewriteSequential(_ *construct.Construct, body string) string {
	out := inParallelRe.ReplaceAllString(body, ", one after another")
	out = concurrentlyRe.ReplaceAllString(out, "")
	if out == body {
		return "sequentially, " + body
	}
	return out
}

// rewriteSlashCommand replaces a slash-command invocation with a named
// workflow reference.
func rewriteSlashCommand(c *construct.Construct, body string) string {
	cmd := strings.TrimPrefix(c.Value("command"), "/")
	if cmd == "" {
		return body
	}
	return fmt.Sprintf("follow the %s workflow", cmd)
}

// rewriteMemoryImport turns an @path import into an explicit read
// instruction.
func rewriteMemoryImport(c *construct.Construct, body string) string {
	path := c.Value("path")
	if path == "" {
		return body
	}
	return fmt.Sprintf("read %s first", path)
}

// rewriteGlobAsApplyTo converts cursor glob scoping into copilot
// applyTo phrasing.
func rewriteGlobAsApplyTo(c *construct.Construct, body string) string {
	glob := c.Value("glob")
	if glob == "" {
		return body
	}
	return "applyTo: " + glob
}

// rewriteApplyToAsGlob converts copilot applyTo scoping into cursor
// glob phrasing.
func rewriteApplyToAsGlob(c *construct.Construct, body string) string {
	glob := c.Value("glob")
	if glob == "" {
		return body
	}
	return "applies to files matching " + glob
}

// rewriteRuleReference spells out an @Rule mention.
func rewriteRuleReference(c *construct.Construct, body string) string {
	rule := c.Value("rule")
	if rule == "" {
		return body
	}
	return fmt.Sprintf("follow the %s guidance", rule)
}

// rewriteManualInvoke maps cursor's manual rule invocation onto
// explicit skill invocation.
func rewriteManualInvoke(_ *construct.Construct, _ string) string {
	return "invoke the matching skill explicitly when this situation applies"
}

var codebaseTagRe = regexp.MustCompile(`(?i)#codebase\b`)

// rewriteWorkspaceRefProse spells #codebase out as prose.
func rewriteWorkspaceRefProse(_ *construct.Construct, body string) string {
	return codebaseTagRe.ReplaceAllString(body, "the entire repository")
}

// rewriteWorkspaceRefCursor maps #codebase onto cursor's @codebase tag.
func rewriteWorkspaceRefCursor(_ *construct.Construct, body string) string {
	return codebaseTagRe.ReplaceAllString(body, "@codebase")
}

// ----- decomposition --------------------------------------------------------

// decompose splits a multi-file reference that exceeds the target's
// working-set limit into explicitly labeled batches. Within the limit
// it behaves as pass-through with no warning.
func (t *Transformer) decompose(c *construct.Construct, body string) (string, []construct.Warning) {
	files := taxonomy.SplitFileList(c.Value("files"))
	if t.limit <= 0 || len(files) <= t.limit {
		return body, nil
	}

	parts := (len(files) + t.limit - 1) / t.limit
	var b strings.Builder
	b.WriteString("the following file batches, one batch at a time")
	for i := 0; i < parts; i++ {
		lo := i * t.limit
		hi := lo + t.limit
		if hi > len(files) {
			hi = len(files)
		}
		b.WriteString(fmt.Sprintf("; Part %d of %d: %s", i+1, parts, strings.Join(files[lo:hi], ", ")))
	}

	warn := construct.Warning{
		Kind:     c.Kind,
		Severity: construct.SeverityInfo,
		Message: fmt.Sprintf("%d file references exceed the target working-set limit of %d; split into %d batches",
			len(files), t.limit, parts),
	}
	return b.String(), []construct.Warning{warn}
}
