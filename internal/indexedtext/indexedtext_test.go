package indexedtext

import "testing"

func TestLinePosition(t *testing.T) {
	txt := New("abc\ndef\nghi")
	cases := []struct {
		offset     int
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 2, 1},
		{7, 2, 4}, // second '\n' is at offset 7, ending line 2
		{10, 3, 3},
		{11, 3, 4}, // end-of-text clamps to terminal position
		{1000, 3, 4},
	}
	for _, c := range cases {
		line, col := txt.LinePosition(c.offset)
		if line != c.line || col != c.col {
			t.Errorf("LinePosition(%d) = (%d,%d); want (%d,%d)", c.offset, line, col, c.line, c.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	txt := New("abc\ndef\nghi")
	if got := txt.GetLine(1); got != "abc" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := txt.GetLine(2); got != "def" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := txt.GetLine(3); got != "ghi" {
		t.Errorf("GetLine(3) = %q", got)
	}
	// Out of range clamps.
	if got := txt.GetLine(99); got != "ghi" {
		t.Errorf("GetLine(99) = %q", got)
	}
}

func TestSubstringPreservesOffsets(t *testing.T) {
	txt := New("abc\ndef\nghi")
	sub := txt.Substring(4) // starts at "def\nghi"
	if got := sub.Raw(); got != "def\nghi" {
		t.Fatalf("Raw() = %q", got)
	}
	// Offset 0 in the substring is offset 4 in the original ("d").
	line, col := sub.LinePosition(0)
	if line != 2 || col != 1 {
		t.Errorf("sub.LinePosition(0) = (%d,%d); want (2,1)", line, col)
	}
	// Offset 4 in the substring ("g") is line 3 col 1, same as if we'd
	// queried the original Text at offset 8.
	line, col = sub.LinePosition(4)
	if line != 3 || col != 1 {
		t.Errorf("sub.LinePosition(4) = (%d,%d); want (3,1)", line, col)
	}
	if got := sub.CharOffset(4); got != 8 {
		t.Errorf("sub.CharOffset(4) = %d; want 8", got)
	}
	if got := sub.GetLine(2); got != "def" {
		t.Errorf("sub.GetLine(2) = %q; want %q (absolute line numbering)", got, "def")
	}
}

func TestSingleLineNoTrailingNewline(t *testing.T) {
	txt := New("just one line")
	if txt.Lines() != 1 {
		t.Fatalf("Lines() = %d; want 1", txt.Lines())
	}
	line, col := txt.LinePosition(4)
	if line != 1 || col != 5 {
		t.Errorf("LinePosition(4) = (%d,%d); want (1,5)", line, col)
	}
}
