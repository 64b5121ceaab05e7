// Package token defines the lexical token model shared by the lexer, the token
// buffer and the formatting rules.
// Invariants:
//   - Token is a plain comparable value; two tokens are equal iff their Kind,
//     Text, Fixity and Line are equal.
//   - Tokens carry no parent/sibling references. Inserting or removing tokens
//     elsewhere in a sequence never changes the meaning of a token.
//   - Linebreak tokens record the 1-based source line they terminate. Rules that
//     insert linebreaks copy the line of the surrounding code so that change
//     reports keep pointing at original lines.
//   - Concatenating Token.Text over a sequence reproduces the source text.
package token
