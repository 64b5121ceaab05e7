package rules

import (
	"slices"
	"strings"

	"swiftformat/internal/buffer"
	"swiftformat/internal/token"
)

type importLine struct {
	start, end int // [start, end) excludes the linebreak
	key        string
	tokens     []token.Token
}

var sortImports = New(
	"sortImports",
	"Sort import statements alphabetically.",
	func(b *buffer.Buffer) {
		byLength := b.Options().ImportGrouping == "length"
		var block []importLine
		flush := func() {
			if len(block) > 1 && b.InRange(block[0].start) {
				reorderImports(b, block, byLength)
			}
			block = block[:0]
		}
		for start := 0; start < b.Len(); {
			end := b.EndOfLine(start)
			if key, ok := importKey(b, start, end); ok {
				block = append(block, importLine{start: start, end: end, key: key, tokens: lineTokens(b, start, end)})
			} else {
				flush()
			}
			start = end + 1
		}
		flush()
	},
	WithOptions("importgrouping"),
	RunOnlyOnce(),
)

// importKey returns the module path of an import line. Attributes and
// modifiers before the keyword are allowed.
func importKey(b *buffer.Buffer, start, end int) (string, bool) {
	i := firstOnLine(b, start)
	for i < end {
		tok := b.At(i)
		switch {
		case tok.IsKeyword("import"):
			return strings.TrimSpace(token.Concat(b.Tokens()[i+1 : end])), true
		case tok.Kind == token.Keyword && (strings.HasPrefix(tok.Text, "@") || slices.Contains(buffer.ACLModifiers, tok.Text)):
			i = b.NextNonSpace(i)
			if i < 0 {
				return "", false
			}
		default:
			return "", false
		}
	}
	return "", false
}

func compareImports(byLength bool) func(a, b importLine) int {
	return func(a, b importLine) int {
		if byLength && len(a.key) != len(b.key) {
			return len(a.key) - len(b.key)
		}
		if c := strings.Compare(strings.ToLower(a.key), strings.ToLower(b.key)); c != 0 {
			return c
		}
		return strings.Compare(a.key, b.key)
	}
}

// reorderImports permutes line contents inside the block while every
// linebreak stays where it was, so original line numbers remain ordered.
func reorderImports(b *buffer.Buffer, block []importLine, byLength bool) {
	sorted := slices.Clone(block)
	slices.SortStableFunc(sorted, compareImports(byLength))
	b.Moving(func() {
		for k := len(block) - 1; k >= 0; k-- {
			b.ReplaceRange(block[k].start, block[k].end, sorted[k].tokens...)
		}
	})
}
