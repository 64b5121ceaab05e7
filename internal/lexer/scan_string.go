package lexer

import (
	"strings"

	"swiftformat/internal/token"
)

func (lx *Lexer) isRawStringStart() bool {
	var n uint32
	for lx.cursor.PeekAt(n) == '#' {
		n++
	}
	return lx.cursor.PeekAt(n) == '"'
}

// scanString lexes "...", """...""" and their raw #"..."# forms as a single
// token. Interpolations are kept inside the literal; nested parentheses and
// nested strings within \( ) are tracked so a quote inside an interpolation
// does not terminate the literal.
func (lx *Lexer) scanString() {
	m := lx.cursor.Mark()
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	multiline := lx.cursor.HasPrefix(`"""`)
	if multiline {
		lx.cursor.BumpN(3)
	} else {
		lx.cursor.Bump()
	}
	quote := `"`
	if multiline {
		quote = `"""`
	}
	closing := quote + strings.Repeat("#", hashes)
	escape := `\` + strings.Repeat("#", hashes)

	for !lx.cursor.EOF() {
		switch {
		case lx.cursor.HasPrefix(closing):
			lx.cursor.BumpN(len(closing))
			lx.emit(token.NewString(lx.cursor.TextFrom(m)))
			return
		case lx.cursor.HasPrefix(escape + "("):
			lx.cursor.BumpN(len(escape) + 1)
			if !lx.skipInterpolation(multiline) {
				lx.emit(token.NewError(lx.cursor.TextFrom(m)))
				return
			}
		case lx.cursor.HasPrefix(escape):
			lx.cursor.BumpN(len(escape))
			if !lx.cursor.EOF() {
				lx.bumpCountingLines()
			}
		case !multiline && (lx.cursor.Peek() == '\n' || lx.cursor.Peek() == '\r'):
			lx.emit(token.NewError(lx.cursor.TextFrom(m)))
			return
		default:
			lx.bumpCountingLines()
		}
	}
	lx.emit(token.NewError(lx.cursor.TextFrom(m)))
}

// skipInterpolation consumes up to and including the ")" closing an
// interpolation. It returns false if the input ends first.
func (lx *Lexer) skipInterpolation(multiline bool) bool {
	depth := 1
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == '(':
			depth++
			lx.cursor.Bump()
		case b == ')':
			depth--
			lx.cursor.Bump()
			if depth == 0 {
				return true
			}
		case b == '"':
			lx.cursor.Bump()
			for !lx.cursor.EOF() && lx.cursor.Peek() != '"' {
				if lx.cursor.Peek() == '\\' {
					lx.cursor.Bump()
				}
				lx.bumpCountingLines()
			}
			lx.cursor.Bump()
		case !multiline && (b == '\n' || b == '\r'):
			return false
		default:
			lx.bumpCountingLines()
		}
	}
	return false
}
