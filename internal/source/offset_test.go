package source

import (
	"testing"

	"swiftformat/internal/token"
)

// "let x = 1\n\tfoo()\nbar"
func sampleTokens() []token.Token {
	return []token.Token{
		token.NewKeyword("let"), token.NewSpace(" "), token.NewIdentifier("x"), token.NewSpace(" "),
		token.NewOperator("=", token.FixityInfix), token.NewSpace(" "), token.NewNumber("1"),
		token.NewLinebreak("\n", 1),
		token.NewSpace("\t"), token.NewIdentifier("foo"), token.NewStartOfScope("("), token.NewEndOfScope(")"),
		token.NewLinebreak("\n", 2),
		token.NewIdentifier("bar"),
	}
}

func TestOffsetForToken(t *testing.T) {
	toks := sampleTokens()
	cases := []struct {
		index int
		tab   int
		want  Offset
	}{
		{0, 4, Offset{Line: 1, Column: 0}},
		{2, 4, Offset{Line: 1, Column: 4}},
		{6, 4, Offset{Line: 1, Column: 8}},
		{9, 4, Offset{Line: 2, Column: 4}},
		{9, 2, Offset{Line: 2, Column: 2}},
		{10, 4, Offset{Line: 2, Column: 7}},
		{13, 4, Offset{Line: 3, Column: 0}},
		{14, 4, Offset{Line: 3, Column: 3}},
	}
	for _, tc := range cases {
		if got := OffsetForToken(toks, tc.index, tc.tab); got != tc.want {
			t.Errorf("OffsetForToken(%d, tab %d) = %+v, want %+v", tc.index, tc.tab, got, tc.want)
		}
	}
}

func TestTokenIndexRoundTrip(t *testing.T) {
	toks := sampleTokens()
	for _, tab := range []int{1, 2, 4, 8} {
		for i := range toks {
			off := OffsetForToken(toks, i, tab)
			if got := TokenIndex(toks, off, tab); got != i {
				t.Errorf("tab %d: TokenIndex(OffsetForToken(%d)=%v) = %d", tab, i, off, got)
			}
		}
	}
}

func TestTokenIndexPastEnd(t *testing.T) {
	toks := sampleTokens()
	if got := TokenIndex(toks, Offset{Line: 9}, 4); got != len(toks) {
		t.Fatalf("missing line should map to end, got %d", got)
	}
	if got := TokenIndex(toks, Offset{Line: 1, Column: 99}, 4); got != 7 {
		t.Fatalf("column past end should stop at linebreak, got %d", got)
	}
}

func TestTokenRange(t *testing.T) {
	toks := sampleTokens()
	r := TokenRange(toks, 2, 2)
	if r != (Range{Start: 8, End: 13}) {
		t.Fatalf("TokenRange(2, 2) = %v", r)
	}
	r = TokenRange(toks, 1, 3)
	if r != (Range{Start: 0, End: len(toks)}) {
		t.Fatalf("TokenRange(1, 3) = %v", r)
	}
}

func TestRemapOffset(t *testing.T) {
	// original line 2 was split in two and line 1 was shortened
	rewritten := []token.Token{
		token.NewKeyword("let"), token.NewSpace(" "), token.NewIdentifier("x"),
		token.NewLinebreak("\n", 1),
		token.NewIdentifier("foo"),
		token.NewLinebreak("\n", 2),
		token.NewStartOfScope("("), token.NewEndOfScope(")"),
		token.NewLinebreak("\n", 2),
		token.NewIdentifier("bar"),
	}
	cases := []struct {
		in, want Offset
	}{
		{Offset{Line: 1, Column: 8}, Offset{Line: 1, Column: 5}},
		{Offset{Line: 2, Column: 2}, Offset{Line: 2, Column: 2}},
		{Offset{Line: 3, Column: 1}, Offset{Line: 4, Column: 1}},
		{Offset{Line: 7, Column: 0}, Offset{Line: 4, Column: 0}},
	}
	for _, tc := range cases {
		if got := RemapOffset(tc.in, rewritten, 4); got != tc.want {
			t.Errorf("RemapOffset(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestLines(t *testing.T) {
	lines := Lines(sampleTokens())
	want := []string{"let x = 1", "\tfoo()", "bar"}
	if len(lines) != len(want) {
		t.Fatalf("Lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i+1, lines[i], want[i])
		}
	}
	if LineForToken(sampleTokens(), 9) != 2 || LineForToken(sampleTokens(), 0) != 1 {
		t.Fatal("unexpected LineForToken")
	}
}

func TestRangeAdjust(t *testing.T) {
	r := Range{Start: 4, End: 8}
	if got := r.Inserted(2, 3); got != (Range{Start: 7, End: 11}) {
		t.Fatalf("insert before: %v", got)
	}
	if got := r.Inserted(8, 1); got != (Range{Start: 4, End: 9}) {
		t.Fatalf("insert at end: %v", got)
	}
	if got := r.Removed(0, 2); got != (Range{Start: 2, End: 6}) {
		t.Fatalf("remove before: %v", got)
	}
	if got := r.Removed(6, 10); got != (Range{Start: 4, End: 6}) {
		t.Fatalf("remove overlapping end: %v", got)
	}
	if !r.Contains(4) || r.Contains(8) {
		t.Fatal("unexpected Contains")
	}
}
