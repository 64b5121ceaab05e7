package rules

import (
	"swiftformat/internal/buffer"
	"swiftformat/internal/source"
	"swiftformat/internal/token"
)

func fullRange(b *buffer.Buffer) source.Range {
	return source.Range{Start: 0, End: b.Len()}
}

// firstOnLine returns the index of the first non-space token on the line
// starting at i, which may be the line's linebreak or Len().
func firstOnLine(b *buffer.Buffer, i int) int {
	if b.At(i).IsSpace() {
		return i + 1
	}
	return i
}

// lineTokens copies the tokens in [start, end).
func lineTokens(b *buffer.Buffer, start, end int) []token.Token {
	return append([]token.Token(nil), b.Tokens()[start:end]...)
}
