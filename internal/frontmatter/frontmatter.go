// Package frontmatter parses and renders the structured YAML headers of
// workflow documents. Header conversion is plain schema mapping between
// the per-platform frontmatter dialects; fields the target platform
// cannot express surface as warnings, same as body constructs.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"skillport/internal/construct"
)

// Meta is the platform-neutral header model.
type Meta struct {
	Name        string
	Description string
	Model       string

	// AllowedTools carries claude tool permissions.
	AllowedTools []string

	// Globs carries file-scoping patterns (cursor globs / copilot
	// applyTo).
	Globs []string

	// AlwaysApply marks a cursor rule that attaches unconditionally.
	AlwaysApply bool
}

// StringList accepts either a YAML scalar ("a, b") or a sequence.
type StringList []string

func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = splitCommaList(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	return fmt.Errorf("expected string or list, got yaml kind %d", node.Kind)
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Per-platform frontmatter dialects.
type claudeHeader struct {
	Name         string     `yaml:"name,omitempty"`
	Description  string     `yaml:"description,omitempty"`
	AllowedTools StringList `yaml:"allowed-tools,omitempty"`
	Model        string     `yaml:"model,omitempty"`
}

type cursorHeader struct {
	Description string     `yaml:"description,omitempty"`
	Globs       StringList `yaml:"globs,omitempty"`
	AlwaysApply bool       `yaml:"alwaysApply"`
}

type copilotHeader struct {
	ApplyTo     string `yaml:"applyTo,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Split separates a leading YAML frontmatter block from the body.
// Documents without a header return ok=false and the full text as body.
func Split(doc string) (header, body string, ok bool) {
	if !strings.HasPrefix(doc, "---") {
		return "", doc, false
	}
	parts := strings.SplitN(doc, "---", 3)
	if len(parts) < 3 {
		return "", doc, false
	}
	return parts[1], strings.TrimPrefix(parts[2], "\n"), true
}

// Parse reads a document's header in the source platform's dialect and
// returns the neutral Meta plus the body. A missing header yields an
// empty Meta, not an error.
func Parse(doc string, source construct.Platform) (*Meta, string, error) {
	header, body, ok := Split(doc)
	if !ok {
		return &Meta{}, body, nil
	}

	meta := &Meta{}
	switch source {
	case construct.PlatformClaude:
		var h claudeHeader
		if err := yaml.Unmarshal([]byte(header), &h); err != nil {
			return nil, "", fmt.Errorf("parse claude frontmatter: %w", err)
		}
		meta.Name = h.Name
		meta.Description = h.Description
		meta.AllowedTools = h.AllowedTools
		meta.Model = h.Model
	case construct.PlatformCursor:
		var h cursorHeader
		if err := yaml.Unmarshal([]byte(header), &h); err != nil {
			return nil, "", fmt.Errorf("parse cursor frontmatter: %w", err)
		}
		meta.Description = h.Description
		meta.Globs = h.Globs
		meta.AlwaysApply = h.AlwaysApply
	case construct.PlatformCopilot:
		var h copilotHeader
		if err := yaml.Unmarshal([]byte(header), &h); err != nil {
			return nil, "", fmt.Errorf("parse copilot frontmatter: %w", err)
		}
		meta.Description = h.Description
		if h.ApplyTo != "" {
			meta.Globs = splitCommaList(h.ApplyTo)
		}
	default:
		return nil, "", fmt.Errorf("unknown source platform %q", source)
	}
	return meta, body, nil
}

// Render emits the header block for the target platform, warning about
// fields the target cannot express.
func Render(meta *Meta, target construct.Platform) (string, []construct.Warning, error) {
	var warnings []construct.Warning
	var out any

	switch target {
	case construct.PlatformClaude:
		out = claudeHeader{
			Name:         meta.Name,
			Description:  meta.Description,
			AllowedTools: StringList(meta.AllowedTools),
			Model:        meta.Model,
		}
		if len(meta.Globs) > 0 {
			warnings = append(warnings, construct.Warning{
				Kind:     construct.KindGlobScope,
				Severity: construct.SeverityDegraded,
				Message:  "header file-scoping globs dropped; claude applies skills globally",
			})
		}
	case construct.PlatformCursor:
		out = cursorHeader{
			Description: meta.Description,
			Globs:       StringList(meta.Globs),
			AlwaysApply: meta.AlwaysApply,
		}
		if len(meta.AllowedTools) > 0 {
			warnings = append(warnings, construct.Warning{
				Kind:     construct.KindToolAllowance,
				Severity: construct.SeverityDegraded,
				Message:  "header tool permissions dropped; cursor does not enforce tool lists",
			})
		}
	case construct.PlatformCopilot:
		out = copilotHeader{
			ApplyTo:     strings.Join(meta.Globs, ", "),
			Description: meta.Description,
		}
		if len(meta.AllowedTools) > 0 {
			warnings = append(warnings, construct.Warning{
				Kind:     construct.KindToolAllowance,
				Severity: construct.SeverityDegraded,
				Message:  "header tool permissions dropped; copilot does not enforce tool lists",
			})
		}
	default:
		return "", nil, fmt.Errorf("unknown target platform %q", target)
	}

	encoded, err := yaml.Marshal(out)
	if err != nil {
		return "", nil, fmt.Errorf("render %s frontmatter: %w", target, err)
	}
	return "---\n" + string(encoded) + "---\n", warnings, nil
}
