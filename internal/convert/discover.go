package convert

import (
	"io/fs"
	"path/filepath"
	"strings"

	"skillport/internal/construct"
)

// Document is one convertible document found on disk.
type Document struct {
	Path     string
	Platform construct.Platform
}

// PlatformForPath classifies a document path by the platform layout it
// lives in.
func PlatformForPath(path string) (construct.Platform, bool) {
	p := filepath.ToSlash(path)
	base := filepath.Base(p)

	switch {
	case strings.Contains(p, ".claude/skills/") && base == "SKILL.md":
		return construct.PlatformClaude, true
	case strings.Contains(p, ".claude/commands/") && strings.HasSuffix(base, ".md"):
		return construct.PlatformClaude, true
	case base == "CLAUDE.md":
		return construct.PlatformClaude, true
	case strings.Contains(p, ".cursor/rules/") && strings.HasSuffix(base, ".mdc"):
		return construct.PlatformCursor, true
	case base == "copilot-instructions.md" && strings.Contains(p, ".github/"):
		return construct.PlatformCopilot, true
	case strings.Contains(p, ".github/instructions/") && strings.HasSuffix(base, ".instructions.md"):
		return construct.PlatformCopilot, true
	}
	return "", false
}

// Discover walks root and returns every convertible document, sorted by
// path (WalkDir order is lexical).
func Discover(root string) ([]Document, error) {
	var docs []Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip VCS and dependency directories.
			switch d.Name() {
			case ".git", "node_modules", "vendor":
				return filepath.SkipDir
			}
			return nil
		}
		if platform, ok := PlatformForPath(path); ok {
			docs = append(docs, Document{Path: path, Platform: platform})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// DocumentName derives the output document name: header name first,
// then the path (skill directory name for SKILL.md, file stem
// otherwise).
func DocumentName(path, metaName string) string {
	if metaName != "" {
		return metaName
	}
	base := filepath.Base(path)
	if base == "SKILL.md" {
		return filepath.Base(filepath.Dir(path))
	}
	base = strings.TrimSuffix(base, ".instructions.md")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TargetRelPath maps a document name onto the target platform's layout,
// relative to the output root.
func TargetRelPath(name string, target construct.Platform) string {
	switch target {
	case construct.PlatformClaude:
		return filepath.Join(".claude", "skills", name, "SKILL.md")
	case construct.PlatformCursor:
		return filepath.Join(".cursor", "rules", name+".mdc")
	case construct.PlatformCopilot:
		return filepath.Join(".github", "instructions", name+".instructions.md")
	}
	return name + ".md"
}
