package source

import (
	"strings"

	"swiftformat/internal/token"
)

// Render concatenates token text.
func Render(tokens []token.Token) string {
	return token.Concat(tokens)
}

// Lines renders tokens split at linebreak tokens. The result always has
// one more element than there are linebreak tokens; linebreak text is not
// included. Line breaks embedded in multiline tokens do not split.
func Lines(tokens []token.Token) []string {
	lines := make([]string, 0, 16)
	var b strings.Builder
	for _, tok := range tokens {
		if tok.IsLinebreak() {
			lines = append(lines, b.String())
			b.Reset()
			continue
		}
		b.WriteString(tok.Text)
	}
	return append(lines, b.String())
}

// LineForToken returns the original line of the token at index. This is the
// line recorded by the closest preceding linebreak, plus one.
func LineForToken(tokens []token.Token, index int) int {
	index = min(index, len(tokens))
	for i := index - 1; i >= 0; i-- {
		if tokens[i].IsLinebreak() {
			return tokens[i].Line + 1
		}
	}
	return 1
}
