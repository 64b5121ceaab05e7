package token

import (
	"fmt"
	"strings"
)

// Token is a single lexical unit.
type Token struct {
	Kind   Kind
	Text   string
	Fixity Fixity // operators only
	Line   int    // linebreaks only: 1-based line terminated by this token
}

// NewSpace returns a whitespace token.
func NewSpace(text string) Token { return Token{Kind: Space, Text: text} }

// NewLinebreak returns a linebreak token terminating the given 1-based line.
func NewLinebreak(text string, line int) Token {
	return Token{Kind: Linebreak, Text: text, Line: line}
}

// NewIdentifier returns an identifier token.
func NewIdentifier(text string) Token { return Token{Kind: Identifier, Text: text} }

// NewKeyword returns a keyword token.
func NewKeyword(text string) Token { return Token{Kind: Keyword, Text: text} }

// NewOperator returns an operator token with the given fixity.
func NewOperator(text string, fixity Fixity) Token {
	return Token{Kind: Operator, Text: text, Fixity: fixity}
}

// NewStartOfScope returns an opening delimiter token.
func NewStartOfScope(text string) Token { return Token{Kind: StartOfScope, Text: text} }

// NewEndOfScope returns a closing delimiter token.
func NewEndOfScope(text string) Token { return Token{Kind: EndOfScope, Text: text} }

// NewComment returns a comment token. Text includes the comment markers.
func NewComment(text string) Token { return Token{Kind: Comment, Text: text} }

// NewString returns a string literal token. Text includes the quotes.
func NewString(text string) Token { return Token{Kind: StringLit, Text: text} }

// NewNumber returns a number literal token.
func NewNumber(text string) Token { return Token{Kind: NumberLit, Text: text} }

// NewError returns an error marker covering the unparseable text.
func NewError(text string) Token { return Token{Kind: Error, Text: text} }

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

func (t Token) IsSpace() bool { return t.Kind == Space }
func (t Token) IsLinebreak() bool { return t.Kind == Linebreak }
func (t Token) IsComment() bool { return t.Kind == Comment }
func (t Token) IsError() bool { return t.Kind == Error }

// IsSpaceOrLinebreak reports whether the token is whitespace of any kind.
func (t Token) IsSpaceOrLinebreak() bool {
	return t.Kind == Space || t.Kind == Linebreak
}

// IsSpaceOrComment reports whether the token is horizontal space or a comment.
func (t Token) IsSpaceOrComment() bool {
	return t.Kind == Space || t.Kind == Comment
}

// IsTrivia reports whether the token is whitespace, a linebreak or a comment.
func (t Token) IsTrivia() bool {
	return t.Kind == Space || t.Kind == Linebreak || t.Kind == Comment
}

// IsKeyword reports whether the token is the keyword text.
func (t Token) IsKeyword(text string) bool { return t.Is(Keyword, text) }

// IsOperator reports whether the token is the operator text, regardless of fixity.
func (t Token) IsOperator(text string) bool { return t.Is(Operator, text) }

// IsStartOfScope reports whether the token opens a scope with the given
// delimiter. An empty delimiter matches any opening token.
func (t Token) IsStartOfScope(text string) bool {
	return t.Kind == StartOfScope && (text == "" || t.Text == text)
}

// IsEndOfScope reports whether the token closes a scope with the given
// delimiter. An empty delimiter matches any closing token.
func (t Token) IsEndOfScope(text string) bool {
	return t.Kind == EndOfScope && (text == "" || t.Text == text)
}

// IsMultiline reports whether the token text itself contains a line break.
// Linebreak tokens are not multiline tokens.
func (t Token) IsMultiline() bool {
	return t.Kind != Linebreak && strings.ContainsAny(t.Text, "\r\n")
}

var conflictMarkers = [...]string{"<<<<<<<", "=======", ">>>>>>>"}

// IsConflictMarker reports whether the token is a version-control merge
// conflict marker.
func (t Token) IsConflictMarker() bool {
	if t.Kind != Operator {
		return false
	}
	for _, m := range conflictMarkers {
		if strings.HasPrefix(t.Text, m) {
			return true
		}
	}
	return false
}

// String renders the token for debugging.
func (t Token) String() string {
	switch t.Kind {
	case Linebreak:
		return fmt.Sprintf("linebreak(%q, %d)", t.Text, t.Line)
	case Operator:
		return fmt.Sprintf("operator(%q, %s)", t.Text, t.Fixity)
	default:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	}
}

// ClosingDelimiter returns the closing delimiter for an opening one, or "".
func ClosingDelimiter(open string) string {
	switch open {
	case "(":
		return ")"
	case "[":
		return "]"
	case "{":
		return "}"
	}
	return ""
}

// Concat renders a token sequence back to source text.
func Concat(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
