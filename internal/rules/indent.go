package rules

import (
	"strings"

	"swiftformat/internal/buffer"
	"swiftformat/internal/token"
)

type indentScope struct {
	level    int // indent level of lines inside the scope
	isSwitch bool
}

var indent = New(
	"indent",
	"Indent code in accordance with the scope level.",
	func(b *buffer.Buffer) {
		unit := b.Options().Indent
		var stack []indentScope
		level := 0
		for i := 0; i < b.Len(); i++ {
			if i == 0 || b.At(i-1).IsLinebreak() {
				first := firstOnLine(b, i)
				tok, ok := b.Token(first)
				if !ok || tok.IsLinebreak() || tok.IsConflictMarker() {
					continue
				}
				level = lineLevel(stack, tok)
				i = setIndent(b, i, strings.Repeat(unit, level))
			}
			tok := b.At(i)
			switch tok.Kind {
			case token.StartOfScope:
				stack = append(stack, indentScope{
					level:    level + 1,
					isSwitch: tok.Text == "{" && b.At(firstOnLine(b, b.StartOfLine(i))).IsKeyword("switch"),
				})
			case token.EndOfScope:
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		}
	},
	WithOptions("indent"),
)

func lineLevel(stack []indentScope, first token.Token) int {
	var top indentScope
	if len(stack) > 0 {
		top = stack[len(stack)-1]
	}
	switch {
	case first.Kind == token.EndOfScope:
		return max(top.level-1, 0)
	case top.isSwitch && (first.IsKeyword("case") || first.IsKeyword("default")):
		return top.level - 1
	case first.IsOperator(".") || (first.Kind == token.Operator && first.Fixity == token.FixityInfix):
		return top.level + 1 // continuation
	}
	return top.level
}

// setIndent makes the indentation of the line starting at start equal to
// want and returns the index of the first token after it. Lines outside the
// restriction range are left alone.
func setIndent(b *buffer.Buffer, start int, want string) int {
	tok := b.At(start)
	if !tok.IsSpace() {
		if want == "" || !b.InRange(start) {
			return start
		}
		b.Insert(start, token.NewSpace(want))
		return start + 1
	}
	switch {
	case tok.Text == want || !b.InRange(start):
		return start + 1
	case want == "":
		b.Remove(start)
		return start
	}
	b.Replace(start, token.NewSpace(want))
	return start + 1
}
