package transform

import (
	"fmt"

	"skillport/internal/construct"
)

// Strategy is the closed set of rewrite-strategy variants.
type Strategy string

const (
	StrategyPass      Strategy = "pass-through"
	StrategyRewrite   Strategy = "literal-rewrite"
	StrategyDegrade   Strategy = "annotated-degrade"
	StrategyDecompose Strategy = "decomposition"
	StrategyRemove    Strategy = "removal"
)

// RewriteFunc produces the target-platform phrasing for a construct.
// body is the raw match with any children already rewritten.
type RewriteFunc func(c *construct.Construct, body string) string

// Policy is one cell of the (construct kind, target platform) table.
type Policy struct {
	Strategy Strategy

	// Rewrite is used by literal-rewrite and annotated-degrade.
	// Nil means identity.
	Rewrite RewriteFunc

	// Note is the advisory appended to annotated-degrade output.
	Note string

	// Warn overrides the default warning message.
	Warn string
}

func (p Policy) rewrite(c *construct.Construct, body string) string {
	if p.Rewrite == nil {
		return body
	}
	return p.Rewrite(c, body)
}

func (p Policy) warnMessage(c *construct.Construct, target construct.Platform) string {
	if p.Warn != "" {
		return p.Warn
	}
	switch p.Strategy {
	case StrategyRemove:
		return fmt.Sprintf("%s has no equivalent on %s; instruction removed", c.Kind, target)
	default:
		return fmt.Sprintf("%s cannot be enforced on %s; kept as advisory text", c.Kind, target)
	}
}

// policyFor looks up the rewrite policy for a construct kind on a
// target platform.
func policyFor(kind construct.Kind, target construct.Platform) (Policy, bool) {
	row, ok := policies[kind]
	if !ok {
		return Policy{}, false
	}
	p, ok := row[target]
	return p, ok
}

// policies is the full rewrite-policy table. Every construct kind in
// the taxonomy must carry a policy for every target platform; the
// taxonomy tests enforce the pairing so drift fails in CI rather than
// at conversion time.
var policies = map[construct.Kind]map[construct.Platform]Policy{
	construct.KindAgentSpawn: {
		construct.PlatformClaude: {Strategy: StrategyPass},
		construct.PlatformCursor: {
			Strategy: StrategyDegrade,
			Rewrite:  rewriteAgentSpawnSequential,
			Note:     "this platform cannot delegate to sub-agents",
			Warn:     "agent delegation is unsupported on the target; rewritten as a direct sequential step",
		},
		construct.PlatformCopilot: {
			Strategy: StrategyDegrade,
			Rewrite:  rewriteAgentSpawnSequential,
			Note:     "this platform cannot delegate to sub-agents",
			Warn:     "agent delegation is unsupported on the target; rewritten as a direct sequential step",
		},
	},
	construct.KindParallelDispatch: {
		construct.PlatformClaude:  {Strategy: StrategyPass},
		construct.PlatformCursor:  {Strategy: StrategyRewrite, Rewrite: rewriteSequential},
		construct.PlatformCopilot: {Strategy: StrategyRewrite, Rewrite: rewriteSequential},
	},
	construct.KindToolAllowance: {
		construct.PlatformClaude: {Strategy: StrategyPass},
		construct.PlatformCursor: {
			Strategy: StrategyDegrade,
			Note:     "tool permissions are not enforced on this platform",
		},
		construct.PlatformCopilot: {
			Strategy: StrategyDegrade,
			Note:     "tool permissions are not enforced on this platform",
		},
	},
	construct.KindToolDenial: {
		construct.PlatformClaude: {Strategy: StrategyPass},
		construct.PlatformCursor: {
			Strategy: StrategyDegrade,
			Note:     "this restriction is advisory only here; the platform cannot block tools",
		},
		construct.PlatformCopilot: {
			Strategy: StrategyDegrade,
			Note:     "this restriction is advisory only here; the platform cannot block tools",
		},
	},
	construct.KindSlashCommand: {
		construct.PlatformClaude:  {Strategy: StrategyPass},
		construct.PlatformCursor:  {Strategy: StrategyRewrite, Rewrite: rewriteSlashCommand},
		construct.PlatformCopilot: {Strategy: StrategyRewrite, Rewrite: rewriteSlashCommand},
	},
	construct.KindHookTrigger: {
		construct.PlatformClaude: {Strategy: StrategyPass},
		construct.PlatformCursor: {
			Strategy: StrategyDegrade,
			Note:     "no hook mechanism on this platform; perform this step yourself",
		},
		construct.PlatformCopilot: {
			Strategy: StrategyDegrade,
			Note:     "no hook mechanism on this platform; perform this step yourself",
		},
	},
	construct.KindMemoryImport: {
		construct.PlatformClaude: {Strategy: StrategyPass},
		construct.PlatformCursor: {Strategy: StrategyPass},
		construct.PlatformCopilot: {
			Strategy: StrategyDegrade,
			Rewrite:  rewriteMemoryImport,
			Note:     "referenced files are not loaded automatically on this platform",
		},
	},
	construct.KindExtendedThinking: {
		construct.PlatformClaude: {Strategy: StrategyPass},
		construct.PlatformCursor: {
			Strategy: StrategyRemove,
			Warn:     "extended-thinking keywords have no effect on the target platform; removed",
		},
		construct.PlatformCopilot: {
			Strategy: StrategyRemove,
			Warn:     "extended-thinking keywords have no effect on the target platform; removed",
		},
	},
	construct.KindMCPTool: {
		construct.PlatformClaude: {Strategy: StrategyPass},
		construct.PlatformCursor: {Strategy: StrategyPass},
		construct.PlatformCopilot: {
			Strategy: StrategyDegrade,
			Note:     "MCP tools are unavailable here; perform the equivalent action manually",
		},
	},
	construct.KindPlanMode: {
		construct.PlatformClaude: {Strategy: StrategyPass},
		construct.PlatformCursor: {
			Strategy: StrategyRemove,
			Warn:     "plan mode does not exist on the target platform; instruction removed",
		},
		construct.PlatformCopilot: {
			Strategy: StrategyRemove,
			Warn:     "plan mode does not exist on the target platform; instruction removed",
		},
	},
	construct.KindGlobScope: {
		construct.PlatformCursor: {Strategy: StrategyPass},
		construct.PlatformClaude: {
			Strategy: StrategyDegrade,
			Note:     "file scoping is advisory here; the platform applies instructions globally",
		},
		construct.PlatformCopilot: {Strategy: StrategyRewrite, Rewrite: rewriteGlobAsApplyTo},
	},
	construct.KindRuleAttachment: {
		construct.PlatformCursor: {Strategy: StrategyPass},
		construct.PlatformClaude: {Strategy: StrategyRewrite, Rewrite: rewriteRuleReference},
		construct.PlatformCopilot: {
			Strategy: StrategyDegrade,
			Rewrite:  rewriteRuleReference,
			Note:     "linked rules are not attached automatically on this platform",
		},
	},
	construct.KindAutoAttach: {
		construct.PlatformCursor: {Strategy: StrategyPass},
		construct.PlatformClaude: {
			Strategy: StrategyDegrade,
			Note:     "no automatic attachment here; include this document explicitly",
		},
		construct.PlatformCopilot: {
			Strategy: StrategyDegrade,
			Note:     "no automatic attachment here; include this document explicitly",
		},
	},
	construct.KindManualInvoke: {
		construct.PlatformCursor: {Strategy: StrategyPass},
		construct.PlatformClaude: {Strategy: StrategyRewrite, Rewrite: rewriteManualInvoke},
		construct.PlatformCopilot: {
			Strategy: StrategyDegrade,
			Note:     "manual rule invocation does not exist here; restate the guidance where needed",
		},
	},
	construct.KindApplyToScope: {
		construct.PlatformCopilot: {Strategy: StrategyPass},
		construct.PlatformCursor:  {Strategy: StrategyRewrite, Rewrite: rewriteApplyToAsGlob},
		construct.PlatformClaude: {
			Strategy: StrategyDegrade,
			Note:     "file scoping is advisory here; the platform applies instructions globally",
		},
	},
	construct.KindWorkspaceRef: {
		construct.PlatformCopilot: {Strategy: StrategyPass},
		construct.PlatformClaude:  {Strategy: StrategyRewrite, Rewrite: rewriteWorkspaceRefProse},
		construct.PlatformCursor:  {Strategy: StrategyRewrite, Rewrite: rewriteWorkspaceRefCursor},
	},
	construct.KindMultiFileRef: {
		construct.PlatformClaude:  {Strategy: StrategyDecompose},
		construct.PlatformCursor:  {Strategy: StrategyDecompose},
		construct.PlatformCopilot: {Strategy: StrategyDecompose},
	},
	construct.KindShellExec: {
		construct.PlatformClaude: {Strategy: StrategyPass},
		construct.PlatformCursor: {Strategy: StrategyPass},
		construct.PlatformCopilot: {
			Strategy: StrategyDegrade,
			Note:     "command execution is not guaranteed here; run this manually if needed",
		},
	},
}
