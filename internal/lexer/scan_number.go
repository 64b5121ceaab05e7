package lexer

import "swiftformat/internal/token"

// scanNumber accepts decimal, 0x, 0o and 0b literals with underscores,
// fractions and exponents. Validation is lenient: malformed digits are
// swallowed into the literal rather than reported.
func (lx *Lexer) scanNumber() {
	m := lx.cursor.Mark()
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.BumpN(2)
			lx.consumeDigits(isHex)
			if lx.cursor.Peek() == '.' && isHex(lx.cursor.PeekAt(1)) {
				lx.cursor.Bump()
				lx.consumeDigits(isHex)
			}
			if b := lx.cursor.Peek(); b == 'p' || b == 'P' {
				lx.consumeExponent()
			}
			lx.emit(token.NewNumber(lx.cursor.TextFrom(m)))
			return
		case 'o', 'O', 'b', 'B':
			lx.cursor.BumpN(2)
			lx.consumeDigits(isDec)
			lx.emit(token.NewNumber(lx.cursor.TextFrom(m)))
			return
		}
	}
	lx.consumeDigits(isDec)
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.consumeDigits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.consumeExponent()
	}
	lx.emit(token.NewNumber(lx.cursor.TextFrom(m)))
}

func (lx *Lexer) consumeDigits(ok func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if !ok(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) consumeExponent() {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	if !isDec(lx.cursor.Peek()) {
		// "1.e" style suffix is not an exponent
		lx.cursor.Reset(m)
		return
	}
	lx.consumeDigits(isDec)
}
