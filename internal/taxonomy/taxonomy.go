// Package taxonomy holds the closed catalogue of platform constructs the
// detection engine recognizes. The catalogue is defined as Go data
// structures to avoid parsing fragility: each entry carries its owning
// platform, compiled detection patterns, and canonical examples.
//
// The catalogue is loaded once at process start and never mutated.
// Adding a construct kind means adding a Def to DefaultCatalog; no
// engine code changes.
package taxonomy

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"skillport/internal/construct"
)

// =============================================================================
// DEFINITIONS
// =============================================================================

// Def is one construct kind in the taxonomy.
type Def struct {
	Kind     construct.Kind
	Platform construct.Platform

	// Patterns are the detection rules, as regexp sources. A candidate
	// is emitted per match; named capture groups become extracted
	// sub-values on the candidate.
	Patterns []string

	// Examples are canonical occurrences. Every Def carries at least
	// two; they double as self-tests for the patterns.
	Examples []string

	// SpecificityBias is added to the match-length weight during
	// conflict resolution. It lets a semantically specific but
	// textually short construct outrank a longer generic match.
	// Zero for most constructs.
	SpecificityBias int

	// TrimTrail lists bytes stripped from the end of each match span.
	// Needed when a pattern has to consume a delimiter to bound the
	// match but the delimiter is not part of the construct.
	TrimTrail string

	compiled []*regexp.Regexp
}

// Match is one candidate span produced by a Def's detection rule.
// Line is filled in by the detection engine, which knows the document's
// line table.
type Match struct {
	Def    *Def
	Span   construct.Span
	Raw    string
	Values map[string]string
}

// Weight is the candidate's specificity weight: matched length plus the
// construct's bias. Longer, more specific matches outrank shorter
// generic ones.
func (m Match) Weight() int { return m.Span.Len() + m.Def.SpecificityBias }

// Matches runs the detection rule over the full text. Pure function of
// its input; no external state.
func (d *Def) Matches(text string) []Match {
	var out []Match
	for _, re := range d.compiled {
		locs := re.FindAllStringSubmatchIndex(text, -1)
		names := re.SubexpNames()
		for _, loc := range locs {
			start, end := loc[0], loc[1]
			for end > start && strings.IndexByte(d.TrimTrail, text[end-1]) >= 0 {
				end--
			}
			if end <= start {
				continue
			}
			m := Match{
				Def:  d,
				Span: construct.Span{Start: start, End: end},
				Raw:  text[start:end],
			}
			for gi, name := range names {
				if name == "" || 2*gi+1 >= len(loc) {
					continue
				}
				s, e := loc[2*gi], loc[2*gi+1]
				if s < 0 {
					continue
				}
				if m.Values == nil {
					m.Values = make(map[string]string)
				}
				m.Values[name] = strings.TrimSpace(text[s:e])
			}
			out = append(out, m)
		}
	}
	return out
}

// =============================================================================
// REGISTRY
// =============================================================================

var (
	registry map[construct.Kind]*Def
	ordered  []*Def
)

func init() {
	if err := load(DefaultCatalog); err != nil {
		panic(fmt.Sprintf("taxonomy: invalid default catalog: %v", err))
	}
}

// load compiles and indexes a catalogue. Called once from init; kept
// separate so tests can validate alternate catalogues.
func load(defs []*Def) error {
	reg := make(map[construct.Kind]*Def, len(defs))
	ord := make([]*Def, 0, len(defs))
	for _, d := range defs {
		if _, dup := reg[d.Kind]; dup {
			return fmt.Errorf("duplicate construct kind %q", d.Kind)
		}
		if len(d.Examples) < 2 {
			return fmt.Errorf("construct %q needs at least two examples", d.Kind)
		}
		d.compiled = d.compiled[:0]
		for _, src := range d.Patterns {
			re, err := regexp.Compile(src)
			if err != nil {
				return fmt.Errorf("construct %q pattern %q: %w", d.Kind, src, err)
			}
			d.compiled = append(d.compiled, re)
		}
		reg[d.Kind] = d
		ord = append(ord, d)
	}
	registry = reg
	ordered = ord
	return nil
}

// Lookup returns the Def for a construct kind.
func Lookup(kind construct.Kind) (*Def, bool) {
	d, ok := registry[kind]
	return d, ok
}

// All returns the catalogue in declaration order. The returned slice is
// shared; callers must not modify it.
func All() []*Def { return ordered }

// Kinds returns all construct kind names, sorted.
func Kinds() []construct.Kind {
	ks := make([]construct.Kind, 0, len(ordered))
	for _, d := range ordered {
		ks = append(ks, d.Kind)
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i] < ks[j] })
	return ks
}
