package source

import (
	"fmt"

	"swiftformat/internal/token"
)

// Offset is a position in source text.
type Offset struct {
	Line   int // 1-based
	Column int // display columns from line start; 0 is before the first token
}

func (o Offset) String() string {
	return fmt.Sprintf("%d:%d", o.Line, o.Column+1)
}

// OffsetForToken returns the position of the token at index. Scanning runs
// backwards from index to the nearest linebreak, summing display widths.
func OffsetForToken(tokens []token.Token, index, tabWidth int) Offset {
	index = min(max(index, 0), len(tokens))
	column := 0
	for i := index - 1; i >= 0; i-- {
		tok := tokens[i]
		if tok.IsLinebreak() {
			return Offset{Line: tok.Line + 1, Column: column}
		}
		column += tok.Width(tabWidth)
	}
	return Offset{Line: 1, Column: column}
}

// TokenIndex returns the index of the token at off. If the line does not exist
// the result is len(tokens); if the column lies beyond the end of the line the
// result is the index of the line's terminating linebreak.
func TokenIndex(tokens []token.Token, off Offset, tabWidth int) int {
	i := 0
	if off.Line > 1 {
		found := false
		for j, tok := range tokens {
			if tok.IsLinebreak() && tok.Line+1 >= off.Line {
				i = j + 1
				found = true
				break
			}
		}
		if !found {
			return len(tokens)
		}
	}
	column := 0
	for i < len(tokens) && column < off.Column {
		tok := tokens[i]
		if tok.IsLinebreak() {
			break
		}
		column += tok.Width(tabWidth)
		i++
	}
	return i
}

// TokenRange converts the inclusive line span [firstLine, lastLine] into a
// half-open token index range.
func TokenRange(tokens []token.Token, firstLine, lastLine int) Range {
	start := TokenIndex(tokens, Offset{Line: firstLine}, 1)
	end := TokenIndex(tokens, Offset{Line: lastLine + 1}, 1)
	return Range{Start: start, End: max(start, end)}
}

// RemapOffset maps an offset measured against the original source onto the
// rewritten token sequence. The line is the rewritten line that now carries
// the original line; the column is clamped to that line's width.
func RemapOffset(off Offset, rewritten []token.Token, tabWidth int) Offset {
	line := 1
	width := 0
	for _, tok := range rewritten {
		if tok.IsLinebreak() {
			if tok.Line >= off.Line {
				break
			}
			line++
			width = 0
			continue
		}
		width += tok.Width(tabWidth)
	}
	return Offset{Line: line, Column: min(max(off.Column, 0), width)}
}
