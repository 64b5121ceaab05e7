package lexer

import (
	"unicode"
	"unicode/utf8"

	"swiftformat/internal/token"
)

var keywords = map[string]struct{}{
	// declarations
	"associatedtype": {}, "class": {}, "deinit": {}, "enum": {}, "extension": {},
	"func": {}, "import": {}, "init": {}, "inout": {}, "let": {}, "operator": {},
	"precedencegroup": {}, "protocol": {}, "struct": {}, "subscript": {},
	"typealias": {}, "var": {}, "actor": {}, "macro": {},
	// modifiers
	"open": {}, "public": {}, "package": {}, "internal": {}, "fileprivate": {}, "private": {},
	"static": {}, "final": {}, "override": {}, "mutating": {}, "nonmutating": {},
	"lazy": {}, "weak": {}, "unowned": {}, "required": {}, "convenience": {},
	"dynamic": {}, "indirect": {}, "nonisolated": {},
	// statements
	"break": {}, "case": {}, "catch": {}, "continue": {}, "default": {}, "defer": {},
	"do": {}, "else": {}, "fallthrough": {}, "for": {}, "guard": {}, "if": {},
	"in": {}, "repeat": {}, "return": {}, "throw": {}, "switch": {}, "where": {},
	"while": {},
	// expressions
	"as": {}, "Any": {}, "false": {}, "is": {}, "nil": {}, "self": {}, "Self": {},
	"super": {}, "throws": {}, "rethrows": {}, "true": {}, "try": {}, "await": {},
}

// IsKeyword reports whether text is lexed as a keyword.
func IsKeyword(text string) bool {
	_, ok := keywords[text]
	return ok
}

func (lx *Lexer) scanIdentOrKeyword() {
	m := lx.cursor.Mark()
	lx.consumeIdentTail()
	text := lx.cursor.TextFrom(m)
	if text == "" {
		// invalid UTF-8 or a non-identifier rune
		_, size := utf8.DecodeRune(lx.cursor.src[lx.cursor.Off:lx.cursor.Limit])
		lx.cursor.BumpN(max(size, 1))
		lx.emit(token.NewError(lx.cursor.TextFrom(m)))
		return
	}
	if IsKeyword(text) && !lx.afterDot() {
		lx.emit(token.NewKeyword(text))
		return
	}
	lx.emit(token.NewIdentifier(text))
}

// consumeIdentTail consumes identifier characters, decoding UTF-8 runes.
func (lx *Lexer) consumeIdentTail() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b < utf8RuneSelf {
			return
		}
		r, size := utf8.DecodeRune(lx.cursor.src[lx.cursor.Off:lx.cursor.Limit])
		if r == utf8.RuneError || r == '\uFEFF' || unicode.IsSpace(r) {
			return
		}
		lx.cursor.BumpN(size)
	}
}

// afterDot reports whether the previous token is a member-access dot, in which
// case keywords such as `.default` or `.init` are plain identifiers.
func (lx *Lexer) afterDot() bool {
	prev, ok := lx.last()
	return ok && prev.IsOperator(".")
}

func (lx *Lexer) scanBacktickIdent() {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '`' {
			lx.cursor.Bump()
			lx.emit(token.NewIdentifier(lx.cursor.TextFrom(m)))
			return
		}
		if b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
	}
	lx.emit(token.NewError(lx.cursor.TextFrom(m)))
}

// @attributes are keywords; #directives and #keywords are keywords too,
// except for unknown #names which are identifiers (e.g. freestanding macros).
func (lx *Lexer) scanAttributeOrDirective() {
	m := lx.cursor.Mark()
	sigil := lx.cursor.Bump()
	lx.consumeIdentTail()
	text := lx.cursor.TextFrom(m)
	if len(text) == 1 {
		lx.emit(token.NewError(text))
		return
	}
	if sigil == '@' {
		lx.emit(token.NewKeyword(text))
		return
	}
	switch text {
	case "#if", "#else", "#elseif", "#endif", "#available", "#unavailable",
		"#selector", "#keyPath", "#file", "#line", "#function", "#column":
		lx.emit(token.NewKeyword(text))
	default:
		lx.emit(token.NewIdentifier(text))
	}
}

func (lx *Lexer) scanDollarIdent() {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.consumeIdentTail()
	lx.emit(token.NewIdentifier(lx.cursor.TextFrom(m)))
}
