package rules

import (
	"swiftformat/internal/buffer"
	"swiftformat/internal/token"
)

var spaceInsideBraces = New(
	"spaceInsideBraces",
	"Add space inside curly braces.",
	func(b *buffer.Buffer) {
		b.ForEach(isBrace, func(i int, tok token.Token) {
			if tok.Kind == token.StartOfScope {
				next, ok := b.Token(i + 1)
				if !ok || next.IsSpaceOrLinebreak() || next.IsEndOfScope("}") {
					return
				}
				b.Insert(i+1, token.NewSpace(" "))
				return
			}
			prev, ok := b.Token(i - 1)
			if !ok || prev.IsSpaceOrLinebreak() || prev.IsStartOfScope("{") {
				return
			}
			b.Insert(i, token.NewSpace(" "))
		})
	},
)

func isBrace(t token.Token) bool {
	return t.IsStartOfScope("{") || t.IsEndOfScope("}")
}

var consecutiveSpaces = New(
	"consecutiveSpaces",
	"Replace consecutive spaces with a single space.",
	func(b *buffer.Buffer) {
		b.ForEach(token.Token.IsSpace, func(i int, tok token.Token) {
			if tok.Text == "" {
				b.Remove(i)
				return
			}
			if tok.Text == " " {
				return
			}
			prev, ok := b.Token(i - 1)
			if !ok || prev.IsLinebreak() {
				return // indentation
			}
			next, ok := b.Token(i + 1)
			if !ok || next.IsLinebreak() || next.IsComment() {
				return
			}
			if prev.IsComment() && prev.IsMultiline() {
				return
			}
			b.Replace(i, token.NewSpace(" "))
		})
	},
)

var trailingSpace = New(
	"trailingSpace",
	"Remove trailing space at end of a line.",
	func(b *buffer.Buffer) {
		blankOnly := b.Options().TrimWhitespace == "nonblank-lines"
		b.ForEach(token.Token.IsSpace, func(i int, _ token.Token) {
			if next, ok := b.Token(i + 1); ok && !next.IsLinebreak() {
				return
			}
			if blankOnly {
				if prev, ok := b.Token(i - 1); !ok || prev.IsLinebreak() {
					return
				}
			}
			b.Remove(i)
		})
	},
	WithOptions("trimwhitespace"),
)
