package buffer

import (
	"strings"

	"swiftformat/internal/token"
)

// Declaration is a structural unit recovered by scanning the buffer. It is a
// snapshot: any mutation invalidates every index it holds.
type Declaration struct {
	Keyword      string // "func", "extension", "var", ...
	Name         string
	Start        int // first modifier or attribute, or KeywordIndex
	KeywordIndex int
	OpenBrace    int // -1 if the declaration has no body
	CloseBrace   int // -1 if the declaration has no body
	Parent       int // index into the slice returned by Declarations, -1 at top level
}

// HasBody reports whether the declaration has a braced body.
func (d Declaration) HasBody() bool { return d.OpenBrace >= 0 && d.CloseBrace >= 0 }

var declarationKeywords = map[string]bool{
	"actor": true, "associatedtype": true, "class": true, "deinit": true, "enum": true,
	"extension": true, "func": true, "import": true, "init": true, "let": true,
	"macro": true, "operator": true, "precedencegroup": true, "protocol": true,
	"struct": true, "subscript": true, "typealias": true, "var": true,
}

// ACLModifiers are the access control keywords, most to least visible.
var ACLModifiers = []string{"open", "public", "package", "internal", "fileprivate", "private"}

var modifierKeywords = map[string]bool{
	"open": true, "public": true, "package": true, "internal": true, "fileprivate": true,
	"private": true, "static": true, "class": true, "final": true, "override": true,
	"mutating": true, "nonmutating": true, "lazy": true, "weak": true, "unowned": true,
	"required": true, "convenience": true, "dynamic": true, "indirect": true,
	"nonisolated": true,
}

// IsDeclarationKeyword reports whether tok introduces a declaration. `class`
// followed by another declaration keyword or modifier is a modifier.
func (b *Buffer) IsDeclarationKeyword(i int) bool {
	tok := b.At(i)
	if tok.Kind != token.Keyword || !declarationKeywords[tok.Text] {
		return false
	}
	if tok.Text == "class" {
		next := b.At(b.NextNonTrivia(i))
		if next.Kind == token.Keyword && (declarationKeywords[next.Text] || modifierKeywords[next.Text]) {
			return false
		}
	}
	return true
}

// Modifiers returns the indices of the modifiers and attributes preceding the
// declaration keyword at i, in source order.
func (b *Buffer) Modifiers(i int) []int {
	var out []int
	j := b.PrevNonTrivia(i)
	for j >= 0 {
		tok := b.tokens[j]
		switch {
		case tok.Kind == token.Keyword && modifierKeywords[tok.Text]:
			out = append(out, j)
		case tok.Kind == token.Keyword && strings.HasPrefix(tok.Text, "@"):
			out = append(out, j)
		case tok.IsEndOfScope(")"):
			// modifier arguments: private(set), @available(...)
			open := b.StartOfScope(j)
			prev := b.PrevNonTrivia(open)
			if open < 0 || prev < 0 || b.tokens[prev].Kind != token.Keyword {
				return reverse(out)
			}
			out = append(out, prev)
			j = b.PrevNonTrivia(prev)
			continue
		default:
			return reverse(out)
		}
		j = b.PrevNonTrivia(j)
	}
	return reverse(out)
}

func reverse(s []int) []int {
	for l, r := 0, len(s)-1; l < r; l, r = l+1, r-1 {
		s[l], s[r] = s[r], s[l]
	}
	return s
}

type openScope struct {
	index int
	decl  int // declaration owning this brace, -1 otherwise
}

// Declarations scans the buffer and returns every declaration in source
// order. Nesting is expressed by Parent indices into the result; no tree is
// built or retained.
func (b *Buffer) Declarations() []Declaration {
	var (
		decls   []Declaration
		stack   []openScope
		pending = -1 // declaration waiting for its body
		pendAt  = 0  // scope depth at which pending was declared
	)
	parent := func() int {
		for k := len(stack) - 1; k >= 0; k-- {
			if stack[k].decl >= 0 {
				return stack[k].decl
			}
		}
		return -1
	}
	for i := 0; i < len(b.tokens); i++ {
		tok := b.tokens[i]
		switch {
		case tok.Kind == token.StartOfScope:
			owner := -1
			if tok.Text == "{" && pending >= 0 && len(stack) == pendAt {
				owner = pending
				decls[pending].OpenBrace = i
				pending = -1
			}
			stack = append(stack, openScope{index: i, decl: owner})
		case tok.Kind == token.EndOfScope:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.decl >= 0 {
				decls[top.decl].CloseBrace = i
			}
			if pending >= 0 && len(stack) < pendAt {
				pending = -1
			}
		case pending >= 0 && len(stack) == pendAt && (tok.IsOperator("=") || tok.IsOperator(";")):
			pending = -1
		case pending >= 0 && len(stack) == pendAt && tok.IsLinebreak() && decls[pending].Keyword == "var":
			// a stored property ends at the end of its line
			if !b.At(b.NextNonTrivia(i)).IsStartOfScope("{") {
				pending = -1
			}
		case b.IsDeclarationKeyword(i):
			d := Declaration{
				Keyword:      tok.Text,
				KeywordIndex: i,
				Start:        i,
				OpenBrace:    -1,
				CloseBrace:   -1,
				Parent:       parent(),
			}
			if mods := b.Modifiers(i); len(mods) > 0 {
				d.Start = mods[0]
			}
			if n := b.NextNonTrivia(i); n >= 0 {
				if next := b.tokens[n]; next.Kind == token.Identifier || next.Kind == token.Operator {
					d.Name = next.Text
				}
			}
			decls = append(decls, d)
			pending = -1
			switch tok.Text {
			case "import", "let", "typealias", "associatedtype":
			default:
				pending = len(decls) - 1
				pendAt = len(stack)
			}
		}
	}
	return decls
}
