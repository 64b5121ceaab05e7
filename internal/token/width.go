package token

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// Width returns the number of display columns the token occupies.
// Each tab counts as tabWidth columns wherever it starts; everything else is measured by East-Asian
// display width of its NFC form. Linebreaks are zero width.
func (t Token) Width(tabWidth int) int {
	switch t.Kind {
	case Linebreak:
		return 0
	case Space:
		w := 0
		for _, r := range t.Text {
			if r == '\t' {
				w += tabWidth
			} else {
				w++
			}
		}
		return w
	}
	return TextWidth(t.Text, tabWidth)
}

// TextWidth measures arbitrary text the same way Width measures tokens.
func TextWidth(text string, tabWidth int) int {
	w := 0
	ascii := true
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '\t':
			w += tabWidth
		case c >= 0x80:
			ascii = false
		default:
			w++
		}
		if !ascii {
			break
		}
	}
	if ascii {
		return w
	}
	w = 0
	for _, r := range norm.NFC.String(text) {
		if r == '\t' {
			w += tabWidth
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}
