// Package construct defines the shared data model for the conversion
// pipeline: platforms, detected constructs, content analyses, and
// transformation results. Everything here is a plain immutable value;
// the detection and transformation engines never mutate an Analysis
// after it is built.
package construct

import (
	"fmt"
	"sort"
)

// Platform identifies an AI-assistant platform that owns constructs
// and can be a conversion target.
type Platform string

const (
	PlatformClaude   Platform = "claude"
	PlatformCursor   Platform = "cursor"
	PlatformCopilot  Platform = "copilot"
	PlatformAgnostic Platform = "agnostic"
)

// Targets lists the platforms a document can be converted to.
// PlatformAgnostic owns constructs but is never a target.
func Targets() []Platform {
	return []Platform{PlatformClaude, PlatformCursor, PlatformCopilot}
}

// ParseTarget validates a target platform identifier from user input.
func ParseTarget(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformClaude, PlatformCursor, PlatformCopilot:
		return Platform(s), nil
	}
	return "", fmt.Errorf("unknown target platform %q (expected one of: claude, cursor, copilot)", s)
}

func (p Platform) String() string { return string(p) }

// Kind is the unique name of a construct type in the taxonomy.
type Kind string

const (
	KindAgentSpawn       Kind = "agent-spawn"
	KindParallelDispatch Kind = "parallel-dispatch"
	KindToolAllowance    Kind = "tool-allowance"
	KindToolDenial       Kind = "tool-denial"
	KindSlashCommand     Kind = "slash-command"
	KindHookTrigger      Kind = "hook-trigger"
	KindMemoryImport     Kind = "memory-import"
	KindExtendedThinking Kind = "extended-thinking"
	KindMCPTool          Kind = "mcp-tool"
	KindPlanMode         Kind = "plan-mode"
	KindGlobScope        Kind = "glob-scope"
	KindRuleAttachment   Kind = "rule-attachment"
	KindAutoAttach       Kind = "auto-attach"
	KindManualInvoke     Kind = "manual-invoke"
	KindApplyToScope     Kind = "apply-to-scope"
	KindWorkspaceRef     Kind = "workspace-ref"
	KindMultiFileRef     Kind = "multi-file-ref"
	KindShellExec        Kind = "shell-exec"
)

// Provenance records which part of the document a construct came from.
type Provenance string

const (
	ProvenanceHeader Provenance = "header"
	ProvenanceBody   Provenance = "body"
)

// Span is a half-open byte range [Start, End) in the scanned document,
// with the 1-based line number of its first byte.
type Span struct {
	Start int
	End   int
	Line  int
}

// Len returns the span length in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether other lies fully within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Disjoint reports whether the two spans share no bytes.
func (s Span) Disjoint(other Span) bool {
	return s.End <= other.Start || other.End <= s.Start
}

// Intersects reports whether the two spans share at least one byte.
func (s Span) Intersects(other Span) bool { return !s.Disjoint(other) }

// Construct is one detected occurrence of a taxonomy construct.
// Children are fully contained within the parent span; the final
// accepted set never contains partial overlaps.
type Construct struct {
	Kind       Kind
	Platform   Platform
	Provenance Provenance
	Span       Span

	// Raw is the exact matched text.
	Raw string

	// Values holds construct-specific extracted sub-values
	// (agent name, glob pattern, file list, ...). May be nil.
	Values map[string]string

	// Children are nested constructs, sorted by start offset.
	Children []*Construct
}

// Value returns the named extracted sub-value, or "".
func (c *Construct) Value(name string) string {
	if c.Values == nil {
		return ""
	}
	return c.Values[name]
}

// Analysis is the result of scanning one document body: the original
// text plus the conflict-resolved top-level constructs in offset order.
// It is created fresh per scan and consumed exactly once.
type Analysis struct {
	Source     string
	Constructs []*Construct
}

// Walk visits every construct in the analysis depth-first, parents
// before children, in offset order.
func (a *Analysis) Walk(fn func(*Construct)) {
	var visit func(cs []*Construct)
	visit = func(cs []*Construct) {
		for _, c := range cs {
			fn(c)
			visit(c.Children)
		}
	}
	visit(a.Constructs)
}

// Count returns the total number of constructs, nested included.
func (a *Analysis) Count() int {
	n := 0
	a.Walk(func(*Construct) { n++ })
	return n
}

// Severity grades a transformation warning.
type Severity string

const (
	SeverityInfo        Severity = "informational"
	SeverityDegraded    Severity = "degraded"
	SeverityUnsupported Severity = "unsupported"
)

// Warning records a lossy or noteworthy transformation decision.
type Warning struct {
	Kind     Kind
	Severity Severity
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Severity, w.Kind, w.Message)
}

// Result is the terminal output of a transformation: the rewritten
// body and the warnings accumulated in encounter order.
type Result struct {
	Content  string
	Warnings []Warning
}

// SortByStart orders constructs by start offset, recursively.
func SortByStart(cs []*Construct) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].Span.Start < cs[j].Span.Start
	})
	for _, c := range cs {
		SortByStart(c.Children)
	}
}
