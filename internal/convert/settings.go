package convert

import (
	"encoding/json"
	"sort"
	"strings"

	"skillport/internal/construct"
)

// ClaudeSettings is the platform settings file derived from tool
// permission constructs when converting to claude.
type ClaudeSettings struct {
	Permissions ClaudePermissions `json:"permissions"`
}

// ClaudePermissions holds allow/deny tool lists.
type ClaudePermissions struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// Merge folds another settings value in, deduplicating entries.
func (s *ClaudeSettings) Merge(other *ClaudeSettings) {
	if other == nil {
		return
	}
	s.Permissions.Allow = mergeLists(s.Permissions.Allow, other.Permissions.Allow)
	s.Permissions.Deny = mergeLists(s.Permissions.Deny, other.Permissions.Deny)
}

// Empty reports whether no permissions were derived.
func (s *ClaudeSettings) Empty() bool {
	return len(s.Permissions.Allow) == 0 && len(s.Permissions.Deny) == 0
}

// Marshal renders the settings file content.
func (s *ClaudeSettings) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// SettingsFromAnalysis derives claude permissions from the tool
// allowance and denial constructs of a body analysis.
func SettingsFromAnalysis(a *construct.Analysis) *ClaudeSettings {
	s := &ClaudeSettings{}
	a.Walk(func(c *construct.Construct) {
		tools := splitToolList(c.Value("tools"))
		switch c.Kind {
		case construct.KindToolAllowance:
			s.Permissions.Allow = mergeLists(s.Permissions.Allow, tools)
		case construct.KindToolDenial:
			s.Permissions.Deny = mergeLists(s.Permissions.Deny, tools)
		}
	})
	return s
}

// splitToolList breaks a matched tool enumeration ("Read, Grep and
// Bash(git:*)") into individual tool names.
func splitToolList(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' })
	var out []string
	for _, f := range fields {
		for _, part := range strings.Split(f, " and ") {
			if p := strings.TrimSpace(part); p != "" && !strings.EqualFold(p, "and") {
				out = append(out, p)
			}
		}
	}
	return out
}

func mergeLists(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[v] = true
	}
	for _, v := range src {
		if !seen[v] {
			dst = append(dst, v)
			seen[v] = true
		}
	}
	sort.Strings(dst)
	return dst
}
