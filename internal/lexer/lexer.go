// Package lexer turns Swift-like source text into a token.Token sequence.
//
// The lexer never fails: text it cannot classify becomes a token.Error and
// lexing continues, so the caller decides whether errors are fatal.
// Concatenating the returned tokens always reproduces the input exactly.
package lexer

import (
	"swiftformat/internal/token"
)

// Lexer holds the state of a single tokenization.
type Lexer struct {
	cursor Cursor
	line   int
	tokens []token.Token
	scopes []string // open delimiters
}

// Tokenize lexes src in one go.
func Tokenize(src string) []token.Token {
	lx := New([]byte(src))
	return lx.Run()
}

// New creates a lexer over src.
func New(src []byte) *Lexer {
	return &Lexer{
		cursor: NewCursor(src),
		line:   1,
		tokens: make([]token.Token, 0, len(src)/3+1),
	}
}

// Run lexes all remaining input and returns the tokens.
func (lx *Lexer) Run() []token.Token {
	for !lx.cursor.EOF() {
		lx.next()
	}
	if len(lx.scopes) > 0 {
		// unclosed delimiter
		lx.emit(token.NewError(""))
	}
	return lx.tokens
}

func (lx *Lexer) emit(tok token.Token) {
	lx.tokens = append(lx.tokens, tok)
}

func (lx *Lexer) last() (token.Token, bool) {
	if len(lx.tokens) == 0 {
		return token.Token{}, false
	}
	return lx.tokens[len(lx.tokens)-1], true
}

func (lx *Lexer) next() {
	ch := lx.cursor.Peek()
	switch {
	case ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f':
		lx.scanSpace()
	case ch == '\n' || ch == '\r':
		lx.scanLinebreak()
	case lx.cursor.HasPrefix("\uFEFF"):
		m := lx.cursor.Mark()
		lx.cursor.BumpN(3)
		lx.emit(token.NewSpace(lx.cursor.TextFrom(m)))
	case lx.cursor.HasPrefix("//"):
		lx.scanLineComment()
	case lx.cursor.HasPrefix("/*"):
		lx.scanBlockComment()
	case ch == '"' || (ch == '#' && lx.isRawStringStart()):
		lx.scanString()
	case isDec(ch):
		lx.scanNumber()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		lx.scanIdentOrKeyword()
	case ch == '`':
		lx.scanBacktickIdent()
	case ch == '@' || ch == '#':
		lx.scanAttributeOrDirective()
	case ch == '$':
		lx.scanDollarIdent()
	case ch == '(' || ch == '[' || ch == '{':
		lx.cursor.Bump()
		lx.scopes = append(lx.scopes, string(ch))
		lx.emit(token.NewStartOfScope(string(ch)))
	case ch == ')' || ch == ']' || ch == '}':
		lx.scanClose()
	case ch == ',' || ch == ';' || ch == ':':
		lx.cursor.Bump()
		lx.emit(token.NewOperator(string(ch), token.FixityInfix))
	case isOperatorByte(ch):
		lx.scanOperator()
	default:
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.emit(token.NewError(lx.cursor.TextFrom(m)))
	}
}

func (lx *Lexer) scanClose() {
	ch := string(lx.cursor.Bump())
	n := len(lx.scopes)
	if n == 0 || token.ClosingDelimiter(lx.scopes[n-1]) != ch {
		lx.emit(token.NewError(ch))
		return
	}
	lx.scopes = lx.scopes[:n-1]
	lx.emit(token.NewEndOfScope(ch))
}
