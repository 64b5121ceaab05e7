package buffer

import (
	"slices"

	"swiftformat/internal/config"
	"swiftformat/internal/source"
	"swiftformat/internal/token"
)

// Buffer is a token sequence plus the per-pass change and error logs.
type Buffer struct {
	tokens  []token.Token
	opts    config.Options
	track   bool
	rng     *source.Range
	lines   *lineSpan
	rule    string
	help    string
	moving  bool
	group   int // start of the ReplaceRange in progress, -1 outside one
	changes []Change
	errs    []error
	edits   int
	cursors []int // ForEach positions, innermost last
}

type lineSpan struct{ first, last int }

// New copies tokens into a new buffer. When rng is non-nil, ForEach only
// visits tokens inside it and only changes on the lines it covers are
// recorded; searches still see the whole buffer.
func New(tokens []token.Token, opts config.Options, trackChanges bool, rng *source.Range) *Buffer {
	b := &Buffer{
		tokens: slices.Clone(tokens),
		opts:   opts,
		track:  trackChanges,
		group:  -1,
	}
	if rng != nil {
		r := rng.Clamp(len(b.tokens))
		b.rng = &r
		first := source.LineForToken(b.tokens, r.Start)
		last := first
		if r.End > r.Start {
			last = source.LineForToken(b.tokens, r.End-1)
		}
		b.lines = &lineSpan{first: first, last: last}
	}
	return b
}

// Options returns a copy of the active configuration.
func (b *Buffer) Options() config.Options { return b.opts }

// Len returns the number of tokens.
func (b *Buffer) Len() int { return len(b.tokens) }

// Tokens returns the current token sequence. The slice must not be modified
// and is invalidated by the next mutation.
func (b *Buffer) Tokens() []token.Token { return b.tokens }

// Token returns the token at i, or false if i is out of bounds.
func (b *Buffer) Token(i int) (token.Token, bool) {
	if i < 0 || i >= len(b.tokens) {
		return token.Token{}, false
	}
	return b.tokens[i], true
}

// At returns the token at i or the zero token when i is out of bounds.
func (b *Buffer) At(i int) token.Token {
	tok, _ := b.Token(i)
	return tok
}

// Range returns the restriction range, adjusted for mutations so far.
func (b *Buffer) Range() (source.Range, bool) {
	if b.rng == nil {
		return source.Range{Start: 0, End: len(b.tokens)}, false
	}
	return *b.rng, true
}

// Edits returns the number of mutations applied so far, whether or not they
// were tracked as changes. Mutations that cancel out still count.
func (b *Buffer) Edits() int { return b.edits }

// InRange reports whether i lies inside the restriction range. Without a
// range every index is in range.
func (b *Buffer) InRange(i int) bool {
	if b.rng == nil {
		return true
	}
	return b.rng.Contains(i)
}

// OriginalLine returns the original source line of the token at index.
func (b *Buffer) OriginalLine(index int) int {
	return source.LineForToken(b.tokens, index)
}

// Linebreak returns a configured linebreak token suitable for insertion at
// index.
func (b *Buffer) Linebreak(index int) token.Token {
	return token.NewLinebreak(b.opts.Linebreak, b.OriginalLine(index))
}

// ForEach calls fn for every token inside the restriction range that matches.
// fn may mutate the buffer: the walk continues after the token fn was called
// with, wherever it moved to. A nil match visits every token.
func (b *Buffer) ForEach(match func(token.Token) bool, fn func(i int, tok token.Token)) {
	r, _ := b.Range()
	b.cursors = append(b.cursors, r.Start)
	top := len(b.cursors) - 1
	defer func() { b.cursors = b.cursors[:top] }()
	for {
		end := len(b.tokens)
		if b.rng != nil {
			end = b.rng.End
		}
		i := b.cursors[top]
		if i >= end {
			return
		}
		tok := b.tokens[i]
		if match == nil || match(tok) {
			fn(i, tok)
		}
		b.cursors[top]++
	}
}
