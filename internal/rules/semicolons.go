package rules

import (
	"swiftformat/internal/buffer"
	"swiftformat/internal/token"
)

var semicolons = New(
	"semicolons",
	"Remove semicolons.",
	func(b *buffer.Buffer) {
		b.ForEach(func(t token.Token) bool { return t.IsOperator(";") }, func(i int, _ token.Token) {
			next := b.IndexAfter(i, func(t token.Token) bool { return !t.IsSpaceOrComment() })
			if next >= 0 && !b.At(next).IsLinebreak() && !b.At(next).IsEndOfScope("}") {
				return // separates statements on one line
			}
			if next >= 0 && b.At(next).IsLinebreak() {
				// keep `;` when the following line would otherwise continue this one
				if after := b.NextNonTrivia(next); after >= 0 {
					if t := b.At(after); t.IsStartOfScope("(") || t.IsStartOfScope("[") {
						return
					}
				}
			}
			end := i + 1
			if prev, ok := b.Token(i - 1); ok && prev.IsSpace() && (end == b.Len() || b.At(end).IsLinebreak()) {
				b.RemoveRange(i-1, end)
				return
			}
			b.Remove(i)
		})
	},
	DisabledByDefault(),
)
