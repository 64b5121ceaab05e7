package format

import (
	"sort"
	"strings"

	"swiftformat/internal/buffer"
	"swiftformat/internal/source"
	"swiftformat/internal/token"
)

type lineSpan struct{ first, last int }

func (s *lineSpan) contains(line int) bool {
	return line >= s.first && line <= s.last
}

// spanOf returns the original lines covered by r.
func spanOf(tokens []token.Token, r source.Range) *lineSpan {
	r = r.Clamp(len(tokens))
	first := source.LineForToken(tokens, r.Start)
	last := first
	if r.End > r.Start {
		last = source.LineForToken(tokens, r.End-1)
	}
	return &lineSpan{first: first, last: last}
}

// finalizeChanges orders changes by line then rule, drops exact duplicates and
// drops changes to lines whose text ended up identical to the input, unless
// the change is a structural move.
func finalizeChanges(changes []buffer.Change, original, final []token.Token, span *lineSpan) []buffer.Change {
	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].Line != changes[j].Line {
			return changes[i].Line < changes[j].Line
		}
		return changes[i].Rule < changes[j].Rule
	})
	before := linesByOrigin(original)
	after := linesByOrigin(final)
	seen := make(map[buffer.Change]bool, len(changes))
	out := make([]buffer.Change, 0, len(changes))
	for _, c := range changes {
		if seen[c] || (span != nil && !span.contains(c.Line)) {
			continue
		}
		seen[c] = true
		if !c.IsMove {
			if old, ok := before[c.Line]; ok && old == after[c.Line] {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// linesByOrigin renders tokens line by line, keyed by the original line each
// linebreak terminates, linebreak included. Text split by inserted linebreaks
// stays under one key; a deleted line has no key.
func linesByOrigin(tokens []token.Token) map[int]string {
	out := make(map[int]string)
	var sb strings.Builder
	last := 0
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
		if tok.IsLinebreak() {
			out[tok.Line] += sb.String()
			sb.Reset()
			last = tok.Line
		}
	}
	if sb.Len() > 0 {
		out[last+1] += sb.String()
	}
	return out
}
