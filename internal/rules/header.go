package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"swiftformat/internal/buffer"
	"swiftformat/internal/config"
	"swiftformat/internal/token"
)

// ErrMissingFileInfo reports a header template placeholder whose metadata was
// not supplied.
var ErrMissingFileInfo = errors.New("missing file info")

var fileHeader = New(
	"fileHeader",
	"Use specified source file header template for all files.",
	applyFileHeader,
	WithOptions("header", "linebreaks"),
	WithPreflight(checkHeaderInfo),
)

func checkHeaderInfo(opts config.Options) error {
	tmpl := opts.FileHeader
	if tmpl == "" || tmpl == "strip" {
		return nil
	}
	info := opts.FileInfo
	var missing []string
	need := func(placeholder string, present bool) {
		if strings.Contains(tmpl, placeholder) && !present {
			missing = append(missing, placeholder)
		}
	}
	need("{file}", info.FilePath != "")
	need("{created}", !info.Created.IsZero())
	need("{author}", info.Author != "")
	need("{author.name}", info.Author != "")
	need("{author.email}", info.Email != "")
	if len(missing) > 0 {
		return fmt.Errorf("%w: header template uses %s", ErrMissingFileInfo, strings.Join(missing, ", "))
	}
	return nil
}

// expandHeader substitutes the template placeholders and turns every line
// into a comment unless the template is already one.
func expandHeader(opts config.Options, now time.Time) string {
	info := opts.FileInfo
	author := info.Author
	if info.Email != "" {
		author += " <" + info.Email + ">"
	}
	created := ""
	if !info.Created.IsZero() {
		created = info.Created.Format("2006-01-02")
	}
	text := strings.NewReplacer(
		"{file}", info.FileName(),
		"{year}", strconv.Itoa(now.Year()),
		"{created}", created,
		"{author.name}", info.Author,
		"{author.email}", info.Email,
		"{author}", author,
	).Replace(opts.FileHeader)
	text = strings.TrimRight(text, "\n")
	if strings.HasPrefix(text, "//") || strings.HasPrefix(text, "/*") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = "//"
		} else {
			lines[i] = "// " + line
		}
	}
	return strings.Join(lines, "\n")
}

func applyFileHeader(b *buffer.Buffer) {
	opts := b.Options()
	if opts.FileHeader == "" || opts.FragmentMode {
		return
	}
	start := b.IndexIn(fullRange(b), func(t token.Token) bool { return !t.IsSpaceOrLinebreak() })
	if start < 0 {
		return
	}
	if !b.InRange(start) {
		return
	}
	headerEnd, found := existingHeader(b, start)
	bodyStart := start
	if found {
		bodyStart = b.IndexAfter(headerEnd-1, func(t token.Token) bool { return !t.IsSpaceOrLinebreak() })
		if bodyStart < 0 {
			bodyStart = b.Len()
		}
	}
	if opts.FileHeader == "strip" {
		if found {
			b.RemoveRange(0, bodyStart)
		}
		return
	}
	var want []token.Token
	text := expandHeader(opts, time.Now())
	if strings.HasPrefix(text, "/*") {
		want = append(want, token.NewComment(text))
	} else {
		for k, line := range strings.Split(text, "\n") {
			if k > 0 {
				want = append(want, b.Linebreak(0))
			}
			want = append(want, token.NewComment(line))
		}
	}
	want = append(want, b.Linebreak(0))
	if bodyStart < b.Len() {
		want = append(want, b.Linebreak(0))
	}
	if token.Concat(want) == token.Concat(b.Tokens()[:bodyStart]) {
		return
	}
	b.ReplaceRange(0, bodyStart, want...)
}

// existingHeader finds the comment block starting at start. It counts as a
// file header only when a blank line or the end of file follows it; a comment
// attached to code is documentation. The returned index is one past the last
// comment of the block.
func existingHeader(b *buffer.Buffer, start int) (int, bool) {
	if !b.At(start).IsComment() {
		return 0, false
	}
	end := start
	for i := start; i < b.Len(); i++ {
		tok := b.At(i)
		switch {
		case tok.IsComment():
			end = i + 1
		case tok.IsSpace():
		case tok.IsLinebreak():
			if next := b.NextNonSpace(i); next < 0 || b.At(next).IsLinebreak() {
				return end, true
			}
		default:
			return 0, false
		}
	}
	return end, true
}
