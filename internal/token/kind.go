package token

// Kind represents the category of a token.
type Kind uint8

const (
	// Space is a run of spaces and/or tabs.
	Space Kind = iota
	// Linebreak is a single "\n", "\r\n" or "\r".
	Linebreak
	// Identifier is a name, including backtick-escaped names and #directives.
	Identifier
	// Keyword is a reserved word or an @attribute.
	Keyword
	// Operator is an operator or punctuation symbol together with its fixity.
	Operator
	// StartOfScope is an opening delimiter: ( [ {
	StartOfScope
	// EndOfScope is a closing delimiter: ) ] }
	EndOfScope
	// Comment is a complete line or block comment.
	Comment
	// StringLit is a complete string literal, possibly spanning lines.
	StringLit
	// NumberLit is a numeric literal.
	NumberLit
	// Error marks text the lexer could not make sense of.
	Error
)

func (k Kind) String() string {
	switch k {
	case Space:
		return "space"
	case Linebreak:
		return "linebreak"
	case Identifier:
		return "identifier"
	case Keyword:
		return "keyword"
	case Operator:
		return "operator"
	case StartOfScope:
		return "startOfScope"
	case EndOfScope:
		return "endOfScope"
	case Comment:
		return "comment"
	case StringLit:
		return "string"
	case NumberLit:
		return "number"
	case Error:
		return "error"
	}
	return "unknown"
}

// Fixity describes how an operator binds to its operands.
type Fixity uint8

const (
	// FixityNone is used by every non-operator token.
	FixityNone Fixity = iota
	FixityPrefix
	FixityInfix
	FixityPostfix
)

func (f Fixity) String() string {
	switch f {
	case FixityPrefix:
		return "prefix"
	case FixityInfix:
		return "infix"
	case FixityPostfix:
		return "postfix"
	default:
		return ""
	}
}
