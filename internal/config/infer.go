package config

import (
	"strings"

	"swiftformat/internal/token"
)

// InferIndent guesses the indent unit from the most common increase in
// indentation between consecutive code lines. Blank and comment-only lines
// are ignored. If most indented lines start with a tab the result is a tab.
func InferIndent(tokens []token.Token) (string, bool) {
	increments := make(map[int]int)
	tabs, spaces := 0, 0
	prev := 0
	for i := 0; i < len(tokens); i++ {
		if i > 0 && !tokens[i-1].IsLinebreak() {
			continue
		}
		first := i
		width := 0
		if tokens[i].IsSpace() {
			first = i + 1
		}
		if first >= len(tokens) || tokens[first].IsLinebreak() || tokens[first].IsComment() {
			continue
		}
		if first > i {
			text := tokens[i].Text
			if strings.Contains(text, "\t") {
				tabs++
				continue
			}
			spaces++
			width = len(text)
		}
		if width > prev {
			increments[width-prev]++
		}
		prev = width
	}
	if tabs > spaces {
		return "\t", true
	}
	best, bestCount := 0, 0
	for inc, count := range increments {
		if count > bestCount || (count == bestCount && inc < best) {
			best, bestCount = inc, count
		}
	}
	if best == 0 {
		return "", false
	}
	return strings.Repeat(" ", best), true
}

// InferLinebreak returns the most common linebreak sequence.
func InferLinebreak(tokens []token.Token) (string, bool) {
	counts := make(map[string]int, 3)
	for _, tok := range tokens {
		if tok.IsLinebreak() {
			counts[tok.Text]++
		}
	}
	best, bestCount := "", 0
	for _, lb := range []string{"\n", "\r\n", "\r"} {
		if counts[lb] > bestCount {
			best, bestCount = lb, counts[lb]
		}
	}
	return best, bestCount > 0
}
