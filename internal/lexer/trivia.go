package lexer

import "swiftformat/internal/token"

func (lx *Lexer) scanSpace() {
	m := lx.cursor.Mark()
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\v', '\f':
			lx.cursor.Bump()
			continue
		}
		break
	}
	lx.emit(token.NewSpace(lx.cursor.TextFrom(m)))
}

func (lx *Lexer) scanLinebreak() {
	m := lx.cursor.Mark()
	if lx.cursor.Bump() == '\r' {
		lx.cursor.Eat('\n')
	}
	lx.emit(token.NewLinebreak(lx.cursor.TextFrom(m), lx.line))
	lx.line++
}

func (lx *Lexer) scanLineComment() {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if b := lx.cursor.Peek(); b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
	}
	lx.emit(token.NewComment(lx.cursor.TextFrom(m)))
}

// Block comments nest.
func (lx *Lexer) scanBlockComment() {
	m := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	depth := 1
	for depth > 0 {
		if lx.cursor.EOF() {
			lx.emit(token.NewError(lx.cursor.TextFrom(m)))
			return
		}
		switch {
		case lx.cursor.HasPrefix("/*"):
			depth++
			lx.cursor.BumpN(2)
		case lx.cursor.HasPrefix("*/"):
			depth--
			lx.cursor.BumpN(2)
		default:
			lx.bumpCountingLines()
		}
	}
	lx.emit(token.NewComment(lx.cursor.TextFrom(m)))
}

// bumpCountingLines consumes one byte, tracking line breaks embedded in
// multiline tokens so that later linebreak tokens carry correct lines.
func (lx *Lexer) bumpCountingLines() {
	switch lx.cursor.Bump() {
	case '\n':
		lx.line++
	case '\r':
		lx.cursor.Eat('\n')
		lx.line++
	}
}
