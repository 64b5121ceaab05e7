package lexer

import "swiftformat/internal/token"

// scanOperator lexes a run of operator characters. Runs stop before comment
// openers. A run may only contain '.' if it starts with '.'. A '?' or '!'
// glued to the preceding operand is always a single postfix operator.
func (lx *Lexer) scanOperator() {
	m := lx.cursor.Mark()
	first := lx.cursor.Peek()
	leftBound := lx.leftBound()
	if (first == '?' || first == '!') && leftBound {
		lx.cursor.Bump()
		lx.emit(token.NewOperator(lx.cursor.TextFrom(m), token.FixityPostfix))
		return
	}
	dotted := first == '.'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isOperatorByte(b) || (b == '.' && !dotted) {
			break
		}
		if lx.cursor.Off > uint32(m) && (lx.cursor.HasPrefix("//") || lx.cursor.HasPrefix("/*")) {
			break
		}
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(m)
	lx.emit(token.NewOperator(text, fixity(leftBound, lx.rightBound())))
}

func fixity(left, right bool) token.Fixity {
	switch {
	case left && !right:
		return token.FixityPostfix
	case right && !left:
		return token.FixityPrefix
	default:
		return token.FixityInfix
	}
}

// leftBound reports whether the operator touches an operand on its left.
func (lx *Lexer) leftBound() bool {
	prev, ok := lx.last()
	if !ok {
		return false
	}
	switch prev.Kind {
	case token.Space, token.Linebreak, token.StartOfScope, token.Comment:
		return false
	case token.Operator:
		return !(prev.Text == "," || prev.Text == ";" || prev.Text == ":")
	}
	return true
}

// rightBound reports whether the byte after the operator begins an operand.
func (lx *Lexer) rightBound() bool {
	if lx.cursor.EOF() {
		return false
	}
	switch lx.cursor.Peek() {
	case ' ', '\t', '\n', '\r', '\v', '\f', ')', ']', '}', ',', ';', ':':
		return false
	}
	if lx.cursor.HasPrefix("//") || lx.cursor.HasPrefix("/*") {
		return false
	}
	return true
}
