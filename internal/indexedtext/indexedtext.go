// Package indexedtext maps raw character offsets into (line, column)
// coordinates, the way the teacher's lexer tracks line/column while
// scanning but as a standalone, substring-preserving index (spec.md
// §4.1).
package indexedtext

import "sort"

// Text holds raw source text plus a cached sorted table of line-start
// offsets.
type Text struct {
	raw        string
	lineStart  []int // lineStart[i] is the offset (into raw) of line i+1's first character
	base       int   // offset of raw[0] within the original outermost text
	lineOffset int    // number of lines preceding this view in the original text
}

// New builds a Text over s.
func New(s string) *Text {
	t := &Text{raw: s}
	t.index()
	return t
}

func (t *Text) index() {
	t.lineStart = []int{0}
	for i := 0; i < len(t.raw); i++ {
		if t.raw[i] == '\n' {
			t.lineStart = append(t.lineStart, i+1)
		}
	}
}

// Lines returns the number of lines in the text (always >= 1).
func (t *Text) Lines() int { return len(t.lineStart) }

// Chars returns the number of characters (bytes) in the text.
func (t *Text) Chars() int { return len(t.raw) }

// LineLength returns the length of line n (1-indexed, absolute across
// substring views), excluding its trailing newline.
func (t *Text) LineLength(n int) int {
	return len(t.GetLine(n))
}

// GetLine returns line n (1-indexed, absolute across substring views)
// without its trailing newline. Out-of-range n clamps to the nearest
// valid line.
func (t *Text) GetLine(n int) string {
	n -= t.lineOffset
	if n < 1 {
		n = 1
	}
	if n > len(t.lineStart) {
		n = len(t.lineStart)
	}
	start := t.lineStart[n-1]
	end := len(t.raw)
	if n < len(t.lineStart) {
		end = t.lineStart[n] - 1 // exclude the '\n'
	}
	if end < start {
		end = start
	}
	return t.raw[start:end]
}

// LinePosition converts a character offset (relative to this Text's
// own raw string) into a 1-indexed (line, column) pair. The line number
// is absolute across substring views; on a view's first line the column
// counts from the view's own start.
//
// Out-of-range queries do not fail: an offset at or past end-of-text
// returns the terminal position, one column past the last character of
// the last line (spec.md §4.1, §9 open question #2).
func (t *Text) LinePosition(charOffset int) (line, column int) {
	if charOffset < 0 {
		charOffset = 0
	}
	if charOffset >= len(t.raw) {
		last := len(t.lineStart)
		return last + t.lineOffset, len(t.raw) - t.lineStart[last-1] + 1
	}
	i := sort.Search(len(t.lineStart), func(i int) bool { return t.lineStart[i] > charOffset })
	line = i + t.lineOffset
	column = charOffset - t.lineStart[i-1] + 1
	return line, column
}

// Substring returns a view of the text starting at charOffset, sharing
// the newline table's absolute positioning so that LinePosition and
// GetLine calls on the returned Text report the same absolute line
// numbers as the original, and CharOffset arithmetic compensates for
// the cut.
func (t *Text) Substring(charOffset int) *Text {
	if charOffset < 0 {
		charOffset = 0
	}
	if charOffset > len(t.raw) {
		charOffset = len(t.raw)
	}
	preceding := sort.Search(len(t.lineStart), func(i int) bool { return t.lineStart[i] > charOffset }) - 1
	sub := &Text{
		raw:        t.raw[charOffset:],
		base:       t.base + charOffset,
		lineOffset: t.lineOffset + preceding,
	}
	sub.index()
	return sub
}

// CharOffset translates a charOffset within this (possibly substring)
// view back into an offset in the original outermost Text.
func (t *Text) CharOffset(viewOffset int) int {
	return t.base + viewOffset
}

// Raw returns the view's own text (not the original outermost text).
func (t *Text) Raw() string { return t.raw }
