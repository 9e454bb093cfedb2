// Package detect implements the detection engine: it scans a raw
// document body with every taxonomy construct's detection rule, drops
// candidates that touch verbatim code regions, resolves overlaps into a
// containment forest, and emits a construct.Analysis.
//
// Detection never fails. Malformed input degrades to over-exclusion or
// zero constructs, never to an error.
package detect

import (
	"sort"
	"strings"

	"skillport/internal/construct"
	"skillport/internal/taxonomy"
)

// Analyze scans a document body and returns its content analysis.
// Pure and reentrant; the taxonomy is read-only shared state.
func Analyze(doc string) *construct.Analysis {
	regs := verbatimRegions(doc)
	lines := lineStarts(doc)

	var cands []taxonomy.Match
	for _, def := range taxonomy.All() {
		for _, m := range def.Matches(doc) {
			if touchesVerbatim(m.Span, regs) {
				continue
			}
			cands = append(cands, m)
		}
	}

	accepted := resolve(cands)
	return &construct.Analysis{
		Source:     doc,
		Constructs: buildForest(doc, accepted, lines),
	}
}

// touchesVerbatim reports whether the span intersects any verbatim
// region, even partially. Conservative: a construct that touches code
// is never emitted.
func touchesVerbatim(s construct.Span, regs []region) bool {
	for _, r := range regs {
		if r.intersects(s.Start, s.End) {
			return true
		}
	}
	return false
}

// resolve performs greedy interval selection with nesting. Candidates
// are considered in descending specificity weight (ties: earlier start,
// then shorter span, then kind name), and a candidate is accepted only
// if it is disjoint from, or in a strict containment relation with,
// every already-accepted span. Same-kind overlaps collapse to the
// stronger match.
func resolve(cands []taxonomy.Match) []taxonomy.Match {
	sort.SliceStable(cands, func(i, j int) bool {
		wi, wj := cands[i].Weight(), cands[j].Weight()
		if wi != wj {
			return wi > wj
		}
		if cands[i].Span.Start != cands[j].Span.Start {
			return cands[i].Span.Start < cands[j].Span.Start
		}
		if cands[i].Span.End != cands[j].Span.End {
			return cands[i].Span.End < cands[j].Span.End
		}
		return cands[i].Def.Kind < cands[j].Def.Kind
	})

	var accepted []taxonomy.Match
next:
	for _, c := range cands {
		for _, a := range accepted {
			if a.Span.Disjoint(c.Span) {
				continue
			}
			if a.Def.Kind == c.Def.Kind {
				// Same construct matched twice over shared text;
				// the stronger match already represents it.
				continue next
			}
			if a.Span == c.Span {
				// Identical spans cannot nest strictly.
				continue next
			}
			if a.Span.Contains(c.Span) || c.Span.Contains(a.Span) {
				continue
			}
			// Partial overlap: the earlier (stronger) candidate wins.
			continue next
		}
		accepted = append(accepted, c)
	}
	return accepted
}

// buildForest turns the accepted spans into a containment forest sorted
// by start offset, with line numbers resolved.
func buildForest(doc string, accepted []taxonomy.Match, lines []int) []*construct.Construct {
	sort.Slice(accepted, func(i, j int) bool {
		if accepted[i].Span.Start != accepted[j].Span.Start {
			return accepted[i].Span.Start < accepted[j].Span.Start
		}
		return accepted[i].Span.End > accepted[j].Span.End
	})

	var top []*construct.Construct
	var stack []*construct.Construct
	for _, m := range accepted {
		node := &construct.Construct{
			Kind:       m.Def.Kind,
			Platform:   m.Def.Platform,
			Provenance: construct.ProvenanceBody,
			Span: construct.Span{
				Start: m.Span.Start,
				End:   m.Span.End,
				Line:  lineAt(lines, m.Span.Start),
			},
			Raw:    m.Raw,
			Values: m.Values,
		}
		for len(stack) > 0 && !stack[len(stack)-1].Span.Contains(node.Span) {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			top = append(top, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return top
}

// lineStarts returns the byte offset of each line start.
func lineStarts(doc string) []int {
	starts := []int{0}
	for i := 0; i < len(doc); {
		n := strings.IndexByte(doc[i:], '\n')
		if n < 0 {
			break
		}
		i += n + 1
		starts = append(starts, i)
	}
	return starts
}

// lineAt returns the 1-based line number containing the byte offset.
func lineAt(starts []int, off int) int {
	return sort.SearchInts(starts, off+1)
}
