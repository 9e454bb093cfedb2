package detect

import (
	"strings"
)

// region is a verbatim byte range [start, end) that detection must not
// touch: a fenced code block or an inline code span.
type region struct {
	start int
	end   int
}

func (r region) intersects(start, end int) bool {
	return start < r.end && r.start < end
}

// verbatimRegions locates all fenced code blocks and inline code spans.
// Unterminated markers extend to the end of the document: over-excluding
// beats detecting constructs inside what the author meant as code.
func verbatimRegions(text string) []region {
	fenced := fencedRegions(text)
	regs := append([]region{}, fenced...)
	regs = append(regs, inlineRegions(text, fenced)...)
	return regs
}

// fencedRegions finds ``` / ~~~ fenced blocks, line-oriented.
func fencedRegions(text string) []region {
	var regs []region
	offset := 0
	openAt := -1
	var fenceChar byte
	fenceLen := 0

	for offset <= len(text) {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		var next int
		var line string
		if lineEnd < 0 {
			line = text[offset:]
			next = len(text) + 1 // terminate loop
		} else {
			line = text[offset : offset+lineEnd]
			next = offset + lineEnd + 1
		}

		trimmed := strings.TrimLeft(line, " \t")
		c, n := fenceMarker(trimmed)
		if openAt < 0 {
			if n >= 3 {
				openAt = offset
				fenceChar = c
				fenceLen = n
			}
		} else if c == fenceChar && n >= fenceLen && strings.TrimRight(trimmed, string(c)) == "" {
			// Closing fence: at least as long as the opener, nothing
			// but fence characters on the line.
			end := next
			if end > len(text) {
				end = len(text)
			}
			regs = append(regs, region{start: openAt, end: end})
			openAt = -1
		}

		offset = next
	}

	if openAt >= 0 {
		regs = append(regs, region{start: openAt, end: len(text)})
	}
	return regs
}

// fenceMarker returns the fence character and run length at the start
// of a trimmed line, or (0, 0).
func fenceMarker(line string) (byte, int) {
	if line == "" {
		return 0, 0
	}
	c := line[0]
	if c != '`' && c != '~' {
		return 0, 0
	}
	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	return c, n
}

// inlineRegions finds inline backtick spans outside fenced blocks. A
// span opened by a run of n backticks closes at the next run of exactly
// n; an unclosed opener extends to the end of the document.
func inlineRegions(text string, fenced []region) []region {
	var regs []region
	i := 0
	for i < len(text) {
		if inside(i, fenced) {
			i = skipPast(i, fenced)
			continue
		}
		if text[i] != '`' {
			i++
			continue
		}
		n := runLen(text, i)
		close := findRun(text, i+n, n)
		if close < 0 {
			regs = append(regs, region{start: i, end: len(text)})
			break
		}
		regs = append(regs, region{start: i, end: close + n})
		i = close + n
	}
	return regs
}

func inside(pos int, regs []region) bool {
	for _, r := range regs {
		if pos >= r.start && pos < r.end {
			return true
		}
	}
	return false
}

func skipPast(pos int, regs []region) int {
	for _, r := range regs {
		if pos >= r.start && pos < r.end {
			return r.end
		}
	}
	return pos + 1
}

func runLen(text string, i int) int {
	n := 0
	for i+n < len(text) && text[i+n] == '`' {
		n++
	}
	return n
}

// findRun returns the offset of the next backtick run of exactly length
// n at or after from, or -1.
func findRun(text string, from, n int) int {
	for i := from; i < len(text); {
		if text[i] != '`' {
			i++
			continue
		}
		l := runLen(text, i)
		if l == n {
			return i
		}
		i += l
	}
	return -1
}
