package lexer_test

import (
	"slices"
	"strings"
	"testing"

	"swiftformat/internal/lexer"
	"swiftformat/internal/token"
)

func kindsAndTexts(toks []token.Token) []string {
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.String())
	}
	return out
}

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"if(x){y()}",
		"let x = 1\r\nvar y = \"a\\(b(\"c\"))\"\n",
		"/* outer /* inner */ still */ foo // trailing\n",
		"let s = \"\"\"\n  multi\n  line\n  \"\"\"\nbar\n",
		"let r = #\"raw \"quoted\" \\#(x)\"#\n",
		"x?.y ?? z!\n@objc public func `default`() -> Int { 0x1F_FF + 1.5e-3 }\n",
		"\uFEFFimport Foundation\n",
		"<<<<<<< HEAD\nfoo\n=======\nbar\n>>>>>>> other\n",
	}
	for _, in := range inputs {
		toks := lexer.Tokenize(in)
		if got := token.Concat(toks); got != in {
			t.Errorf("round trip mismatch\nwant %q\ngot  %q", in, got)
		}
	}
}

func TestTokenizeBasic(t *testing.T) {
	toks := lexer.Tokenize("if(x){y()}")
	want := []token.Token{
		token.NewKeyword("if"),
		token.NewStartOfScope("("), token.NewIdentifier("x"), token.NewEndOfScope(")"),
		token.NewStartOfScope("{"),
		token.NewIdentifier("y"), token.NewStartOfScope("("), token.NewEndOfScope(")"),
		token.NewEndOfScope("}"),
	}
	if !slices.Equal(toks, want) {
		t.Fatalf("unexpected tokens:\n%s", strings.Join(kindsAndTexts(toks), "\n"))
	}
}

func TestLinebreakLines(t *testing.T) {
	toks := lexer.Tokenize("a\n/* x\ny */\nb\r\nc\rd")
	var lines []int
	for _, tok := range toks {
		if tok.IsLinebreak() {
			lines = append(lines, tok.Line)
		}
	}
	if !slices.Equal(lines, []int{1, 3, 4, 5}) {
		t.Fatalf("linebreak lines = %v", lines)
	}
}

func TestOperatorFixity(t *testing.T) {
	cases := []struct {
		src    string
		op     string
		fixity token.Fixity
	}{
		{"a + b", "+", token.FixityInfix},
		{"a+b", "+", token.FixityInfix},
		{"-a", "-", token.FixityPrefix},
		{"(!a)", "!", token.FixityPrefix},
		{"a! ", "!", token.FixityPostfix},
		{"a?.b", "?", token.FixityPostfix},
		{"a?.b", ".", token.FixityInfix},
		{"a ?? b", "??", token.FixityInfix},
		{"0..<n", "..<", token.FixityInfix},
		{"x++ ", "++", token.FixityPostfix},
		{"f(a, b)", ",", token.FixityInfix},
	}
	for _, tc := range cases {
		found := false
		for _, tok := range lexer.Tokenize(tc.src) {
			if tok.IsOperator(tc.op) {
				found = true
				if tok.Fixity != tc.fixity {
					t.Errorf("%q: %s fixity = %s, want %s", tc.src, tc.op, tok.Fixity, tc.fixity)
				}
				break
			}
		}
		if !found {
			t.Errorf("%q: operator %q not found in %v", tc.src, tc.op, kindsAndTexts(lexer.Tokenize(tc.src)))
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := lexer.Tokenize("public extension Foo { static let `default` = .init; @available(*) #if DEBUG }")
	assertKind := func(text string, kind token.Kind) {
		t.Helper()
		for _, tok := range toks {
			if tok.Text == text {
				if tok.Kind != kind {
					t.Errorf("%q kind = %s, want %s", text, tok.Kind, kind)
				}
				return
			}
		}
		t.Errorf("%q not found", text)
	}
	assertKind("public", token.Keyword)
	assertKind("extension", token.Keyword)
	assertKind("Foo", token.Identifier)
	assertKind("`default`", token.Identifier)
	assertKind("init", token.Identifier)
	assertKind("@available", token.Keyword)
	assertKind("#if", token.Keyword)
	assertKind("DEBUG", token.Identifier)
}

func TestErrorTokens(t *testing.T) {
	cases := map[string]string{
		"unterminated string": "let s = \"abc\n",
		"unbalanced close":    "foo())",
		"unclosed scope":      "func f() {",
		"unterminated block":  "/* never ends",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			toks := lexer.Tokenize(src)
			if !slices.ContainsFunc(toks, token.Token.IsError) {
				t.Fatalf("expected error token in %v", kindsAndTexts(toks))
			}
			if got := token.Concat(toks); got != src {
				t.Fatalf("round trip mismatch: %q", got)
			}
		})
	}
}

func TestConflictMarkersAreOperators(t *testing.T) {
	toks := lexer.Tokenize("<<<<<<< HEAD\n")
	if len(toks) == 0 || !toks[0].IsConflictMarker() {
		t.Fatalf("expected conflict marker, got %v", kindsAndTexts(toks))
	}
}
