package buffer

import (
	"swiftformat/internal/source"
	"swiftformat/internal/token"
)

// IndexAfter returns the first index > i whose token matches, or -1.
func (b *Buffer) IndexAfter(i int, match func(token.Token) bool) int {
	return b.IndexIn(source.Range{Start: i + 1, End: len(b.tokens)}, match)
}

// IndexBefore returns the last index < i whose token matches, or -1.
func (b *Buffer) IndexBefore(i int, match func(token.Token) bool) int {
	return b.LastIndexIn(source.Range{Start: 0, End: i}, match)
}

// IndexIn returns the first index in r whose token matches, or -1.
func (b *Buffer) IndexIn(r source.Range, match func(token.Token) bool) int {
	r = r.Clamp(len(b.tokens))
	for i := r.Start; i < r.End; i++ {
		if match(b.tokens[i]) {
			return i
		}
	}
	return -1
}

// LastIndexIn returns the last index in r whose token matches, or -1.
func (b *Buffer) LastIndexIn(r source.Range, match func(token.Token) bool) int {
	r = r.Clamp(len(b.tokens))
	for i := r.End - 1; i >= r.Start; i-- {
		if match(b.tokens[i]) {
			return i
		}
	}
	return -1
}

func notSpace(t token.Token) bool  { return !t.IsSpace() }
func notTrivia(t token.Token) bool { return !t.IsTrivia() }

// NextNonSpace returns the index of the next token after i that is not
// horizontal space, or -1.
func (b *Buffer) NextNonSpace(i int) int { return b.IndexAfter(i, notSpace) }

// PrevNonSpace returns the index of the closest token before i that is not
// horizontal space, or -1.
func (b *Buffer) PrevNonSpace(i int) int { return b.IndexBefore(i, notSpace) }

// NextNonTrivia skips spaces, linebreaks and comments forwards.
func (b *Buffer) NextNonTrivia(i int) int { return b.IndexAfter(i, notTrivia) }

// PrevNonTrivia skips spaces, linebreaks and comments backwards.
func (b *Buffer) PrevNonTrivia(i int) int { return b.IndexBefore(i, notTrivia) }

// EndOfScope returns the index of the delimiter closing the scope opened at
// i, or -1 if i is not an opening delimiter or the scope is unbalanced.
func (b *Buffer) EndOfScope(i int) int {
	open, ok := b.Token(i)
	if !ok || !open.IsStartOfScope("") {
		return -1
	}
	depth := 0
	for j := i + 1; j < len(b.tokens); j++ {
		switch tok := b.tokens[j]; tok.Kind {
		case token.StartOfScope:
			depth++
		case token.EndOfScope:
			if depth == 0 {
				if tok.Text == token.ClosingDelimiter(open.Text) {
					return j
				}
				return -1
			}
			depth--
		}
	}
	return -1
}

// StartOfScope returns the index of the innermost opening delimiter that
// encloses i, or -1 at top level. A closing delimiter belongs to the scope it
// closes; an opening delimiter belongs to the enclosing scope.
func (b *Buffer) StartOfScope(i int) int {
	depth := 0
	for j := min(i, len(b.tokens)) - 1; j >= 0; j-- {
		switch b.tokens[j].Kind {
		case token.EndOfScope:
			depth++
		case token.StartOfScope:
			if depth == 0 {
				return j
			}
			depth--
		}
	}
	return -1
}

// StartOfLine returns the index of the first token on the line containing i.
func (b *Buffer) StartOfLine(i int) int {
	lb := b.IndexBefore(min(i, len(b.tokens)), token.Token.IsLinebreak)
	return lb + 1
}

// EndOfLine returns the index of the linebreak ending the line containing i,
// or Len() for the last line.
func (b *Buffer) EndOfLine(i int) int {
	if lb := b.IndexIn(source.Range{Start: max(i, 0), End: len(b.tokens)}, token.Token.IsLinebreak); lb >= 0 {
		return lb
	}
	return len(b.tokens)
}

// IsBlankLine reports whether the line containing i holds only spaces.
func (b *Buffer) IsBlankLine(i int) bool {
	start, end := b.StartOfLine(i), b.EndOfLine(i)
	return b.IndexIn(source.Range{Start: start, End: end}, notSpace) < 0
}
