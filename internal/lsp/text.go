package lsp

import (
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const maxUInteger = ^protocol.UInteger(0)

func toUInteger(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[protocol.UInteger](n)
	if err != nil {
		return maxUInteger
	}
	return v
}

func toInt(n protocol.UInteger) int {
	v, err := safecast.Conv[int](n)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return v
}

// applyChanges replays content changes in order. Whole-document changes
// replace the text; ranged changes splice it.
func applyChanges(text string, changes []any) string {
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			start := offsetForPosition(text, c.Range.Start)
			end := max(offsetForPosition(text, c.Range.End), start)
			text = text[:start] + c.Text + text[end:]
		}
	}
	return text
}

// offsetForPosition converts a line and UTF-16 character position to a
// byte offset, clamping to the line and the text.
func offsetForPosition(text string, pos protocol.Position) int {
	want := toInt(pos.Line)
	line := 0
	i := 0
	for i < len(text) && line < want {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	if line < want {
		return len(text)
	}
	character := toInt(pos.Character)
	utf16Units := 0
	for i < len(text) && utf16Units < character {
		if text[i] == '\n' || text[i] == '\r' {
			break
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if utf16Units+need > character {
			break
		}
		utf16Units += need
		i += size
	}
	return i
}

// endPosition returns the position just past the last character of text.
func endPosition(text string) protocol.Position {
	line := 0
	units := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case r == '\n':
			line++
			units = 0
		case r == '\r' && (i+1 >= len(text) || text[i+1] != '\n'):
			line++
			units = 0
		case r == '\r':
		case r > 0xFFFF:
			units += 2
		default:
			units++
		}
		i += size
	}
	return protocol.Position{Line: toUInteger(line), Character: toUInteger(units)}
}

// wholeDocumentEdit replaces all of before with after. It returns no edits
// when the two are equal.
func wholeDocumentEdit(before, after string) []protocol.TextEdit {
	if before == after {
		return []protocol.TextEdit{}
	}
	return []protocol.TextEdit{{
		Range:   protocol.Range{Start: protocol.Position{}, End: endPosition(before)},
		NewText: after,
	}}
}
