package taxonomy

import (
	"regexp"

	"skillport/internal/construct"
)

// fileToken matches a single path-like token with a recognizable source
// extension. Used by the multi-file-ref patterns; the extension list
// keeps abbreviations like "e.g." from matching.
const fileToken = `[\w./-]+\.(?:go|ts|tsx|js|jsx|py|md|mdc|json|yaml|yml|rs|java|rb|sh|css|html|sql|proto)`

// fileSep separates tokens in a file enumeration ("a.go, b.go and c.go").
const fileSep = `(?:\s*,\s*(?:and\s+)?|\s+and\s+)`

// globToken matches a glob pattern, ending on a non-dot so a trailing
// sentence period is not swallowed.
const globToken = `[\w*./?{}\[\]-]*[\w*?\]}]`

// DefaultCatalog is the construct catalogue. Declaration order is the
// order All() reports; detection itself is order-independent.
var DefaultCatalog = []*Def{
	// ----- claude-owned ------------------------------------------------
	{
		Kind: construct.KindAgentSpawn, Platform: construct.PlatformClaude,
		Patterns: []string{
			`(?i)\b(?:spawn|launch|dispatch)\s+(?:an?\s+)?(?:sub-?agent|agent)\s+(?P<agent>[\w-]+)\s+to\s+(?P<task>[^.\n]+)`,
			`(?i)\b(?:spawn|launch|dispatch)\s+(?:an?\s+)?(?:sub-?agent|agent)\s+to\s+(?P<task>[^.\n]+)`,
			`(?i)\b(?:spawn|launch|dispatch)\s+(?:an?\s+)?(?:sub-?agent|agent)\s+(?P<agent>[\w-]+)\b`,
			`(?i)\buse\s+the\s+(?P<agent>[\w-]+)\s+(?:sub-?agent|agent)\b(?:\s+to\s+(?P<task>[^.\n]+))?`,
		},
		Examples: []string{
			"spawn agent reviewer to check style",
			"launch a subagent to run the full test suite",
			"use the security-auditor subagent to scan the diff",
		},
	},
	{
		Kind: construct.KindParallelDispatch, Platform: construct.PlatformClaude,
		Patterns: []string{
			`(?i)\b(?:run|launch|execute|perform)\s[^.\n]*?\bin\s+parallel\b`,
			`(?i)\bconcurrently\s+(?:run|launch|execute)\b[^.\n]*`,
			`(?i)\bin\s+parallel\b`,
		},
		Examples: []string{
			"run the build and the test suite in parallel",
			"concurrently launch one research agent per module",
		},
	},
	{
		Kind: construct.KindToolAllowance, Platform: construct.PlatformClaude,
		Patterns: []string{
			`(?i)\byou\s+(?:may|can|are\s+allowed\s+to)\s+use\s+the\s+(?P<tools>[\w, -]+?)\s+tools?\b`,
			`(?i)\ballowed[ -]tools?\s*:\s*(?P<tools>[^\n]+)`,
		},
		Examples: []string{
			"You may use the Read and Grep tools",
			"allowed-tools: Bash(git:*), Read",
		},
	},
	{
		Kind: construct.KindToolDenial, Platform: construct.PlatformClaude,
		Patterns: []string{
			`(?i)\b(?:never|do\s+not|don't)\s+use\s+the\s+(?P<tools>[\w, -]+?)\s+tools?\b`,
			`(?i)\bdisallowed[ -]tools?\s*:\s*(?P<tools>[^\n]+)`,
		},
		Examples: []string{
			"Never use the WebFetch tool",
			"do not use the Bash tool for file edits",
		},
	},
	{
		Kind: construct.KindSlashCommand, Platform: construct.PlatformClaude,
		Patterns: []string{
			`(?i)\b(?:run|invoke|use|call)\s+(?P<command>/[a-z][\w:-]*)\b`,
		},
		Examples: []string{
			"run /review on the staged diff",
			"invoke /commit once the tests pass",
		},
	},
	{
		Kind: construct.KindHookTrigger, Platform: construct.PlatformClaude,
		Patterns: []string{
			`(?i)\b(?:after|before)\s+(?:every|each)\s+(?P<event>edit|commit|write|save|tool\s+use|file\s+change)\b[^.\n]*?\b(?:run|execute)\s+(?P<action>[^.\n]+)`,
		},
		Examples: []string{
			"After every edit, run the formatter",
			"before each commit run gofmt on the changed files",
		},
	},
	{
		Kind: construct.KindMemoryImport, Platform: construct.PlatformClaude,
		Patterns: []string{
			`@(?P<path>[\w./~-]+\.(?:md|txt|mdc))\b`,
		},
		Examples: []string{
			"@docs/style.md",
			"see @CLAUDE.md for repository conventions",
		},
	},
	{
		Kind: construct.KindExtendedThinking, Platform: construct.PlatformClaude,
		// Short but unambiguous keywords; bias lets them win partial
		// overlaps against longer generic matches.
		SpecificityBias: 20,
		Patterns: []string{
			`(?i)\bultrathink\b`,
			`(?i)\bthink\s+(?:hard(?:er)?|deeply|longer)\b`,
		},
		Examples: []string{
			"ultrathink about the migration plan",
			"think harder before choosing a locking strategy",
		},
	},
	{
		Kind: construct.KindMCPTool, Platform: construct.PlatformClaude,
		SpecificityBias: 20,
		Patterns: []string{
			`\bmcp__(?P<server>[A-Za-z0-9-]+)__(?P<tool>[A-Za-z0-9_-]+)\b`,
		},
		Examples: []string{
			"mcp__github__create_issue",
			"use mcp__memory__search to recall prior context",
		},
	},
	{
		Kind: construct.KindPlanMode, Platform: construct.PlatformClaude,
		Patterns: []string{
			`(?i)\b(?:enter|use|switch\s+to|start\s+in)\s+plan\s+mode\b`,
		},
		Examples: []string{
			"enter plan mode before touching the schema",
			"start in plan mode for any multi-file change",
		},
	},

	// ----- cursor-owned ------------------------------------------------
	{
		Kind: construct.KindGlobScope, Platform: construct.PlatformCursor,
		Patterns: []string{
			`(?i)\bapplies?\s+(?:only\s+)?to\s+(?:all\s+)?files?\s+matching\s+(?P<glob>` + globToken + `)`,
			`(?i)\bfor\s+(?:all\s+)?files?\s+matching\s+(?P<glob>` + globToken + `)`,
		},
		Examples: []string{
			"applies to files matching **/*.ts",
			"for all files matching src/**/*.tsx",
		},
	},
	{
		Kind: construct.KindRuleAttachment, Platform: construct.PlatformCursor,
		TrimTrail: " \t,;:!?)",
		Patterns: []string{
			`@(?P<rule>[A-Z][A-Za-z0-9-]*)(?:[\s,;:!?)]|$)`,
		},
		Examples: []string{
			"follow @TestingRules when writing specs",
			"see @ApiConventions",
		},
	},
	{
		Kind: construct.KindAutoAttach, Platform: construct.PlatformCursor,
		Patterns: []string{
			`(?i)\bautomatically\s+attach(?:e[sd]|ing)?\b[^.\n]*`,
			`(?i)\bauto-?attach(?:e[sd]|ing)?\s+(?:when|to|for)\b[^.\n]*`,
		},
		Examples: []string{
			"this rule is automatically attached when editing TypeScript files",
			"auto-attach when working under src/server",
		},
	},
	{
		Kind: construct.KindManualInvoke, Platform: construct.PlatformCursor,
		Patterns: []string{
			`(?i)\b(?:invoke|reference|mention)\s+this\s+rule\s+manually\b[^.\n]*`,
			`(?i)\bmanually\s+(?:invoke|reference|mention)\s+this\s+rule\b[^.\n]*`,
		},
		Examples: []string{
			"invoke this rule manually when refactoring",
			"you must manually reference this rule in chat",
		},
	},

	// ----- copilot-owned -----------------------------------------------
	{
		Kind: construct.KindApplyToScope, Platform: construct.PlatformCopilot,
		Patterns: []string{
			`(?i)\bapply\s?to\s*:\s*(?P<glob>` + globToken + `)`,
		},
		Examples: []string{
			"applyTo: **/*.ts",
			"apply to: src/**",
		},
	},
	{
		Kind: construct.KindWorkspaceRef, Platform: construct.PlatformCopilot,
		Patterns: []string{
			`(?i)#codebase\b`,
			`(?i)\b(?:the\s+)?(?:entire|whole)\s+(?:workspace|codebase|repository)\b`,
		},
		Examples: []string{
			"search #codebase for existing helpers first",
			"consider the entire workspace before adding a dependency",
		},
	},

	// ----- platform-agnostic -------------------------------------------
	{
		Kind: construct.KindMultiFileRef, Platform: construct.PlatformAgnostic,
		Patterns: []string{
			`(?i)\b(?P<files>` + fileToken + `(?:` + fileSep + fileToken + `)+)`,
		},
		Examples: []string{
			"update auth.go, handler.go, and router.go",
			"keep config.yaml and main.go in sync",
		},
	},
	{
		Kind: construct.KindShellExec, Platform: construct.PlatformAgnostic,
		Patterns: []string{
			`(?i)\b(?:run|execute)\s+the\s+(?:command|script)\s+(?P<command>[^.\n]+)`,
			`(?i)\brun\s+(?P<command>(?:npm|yarn|pnpm|go|make|cargo|pytest|git|gofmt|eslint|prettier)\b[^.\n,]*)`,
		},
		Examples: []string{
			"run the command npm test",
			"run go vet before pushing",
		},
	},
}

var fileSepRe = regexp.MustCompile(fileSep)

// SplitFileList splits a multi-file-ref "files" value into individual
// paths.
func SplitFileList(s string) []string {
	parts := fileSepRe.Split(s, -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
