package rules

import (
	"swiftformat/internal/buffer"
	"swiftformat/internal/token"
)

var linebreaks = New(
	"linebreaks",
	"Use specified linebreak character for all linebreaks (CR, LF or CRLF).",
	func(b *buffer.Buffer) {
		want := b.Options().Linebreak
		b.ForEach(token.Token.IsLinebreak, func(i int, tok token.Token) {
			if tok.Text != want {
				b.Replace(i, token.NewLinebreak(want, tok.Line))
			}
		})
	},
	WithOptions("linebreaks"),
)

var linebreakAtEndOfFile = New(
	"linebreakAtEndOfFile",
	"Add empty blank line at end of file.",
	func(b *buffer.Buffer) {
		if b.Options().FragmentMode || b.Len() == 0 {
			return
		}
		last := b.LastIndexIn(fullRange(b), func(t token.Token) bool { return !t.IsSpaceOrLinebreak() })
		if last < 0 {
			return
		}
		if r, ok := b.Range(); ok && r.End < b.Len() && !b.InRange(last) {
			return
		}
		b.ReplaceRange(last+1, b.Len(), b.Linebreak(last+1))
	},
	WithOptions("linebreaks"),
)

var consecutiveBlankLines = New(
	"consecutiveBlankLines",
	"Replace consecutive blank lines with a single blank line.",
	func(b *buffer.Buffer) {
		limit := b.Options().MaxBlankLines
		b.ForEach(token.Token.IsLinebreak, func(i int, _ token.Token) {
			var blanks []int // linebreaks ending each following blank line
			for j := i; ; {
				k := b.NextNonSpace(j)
				if k < 0 || !b.At(k).IsLinebreak() {
					break
				}
				blanks = append(blanks, k)
				j = k
			}
			if excess := len(blanks) - limit; excess > 0 {
				b.RemoveRange(i+1, blanks[excess-1]+1)
			}
		})
	},
	WithOptions("maxblanklines"),
)
