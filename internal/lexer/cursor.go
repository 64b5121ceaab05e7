package lexer

import (
	"fmt"

	"fortio.org/safecast"
)

// Cursor is a byte position in the source being lexed.
type Cursor struct {
	src   []byte
	Off   uint32
	Limit uint32
}

// NewCursor creates a cursor over src.
func NewCursor(src []byte) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("source too large: %w", err))
	}
	return Cursor{src: src, Limit: limit}
}

// EOF reports whether the cursor reached the end of input.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.Off]
}

// PeekAt returns the byte n positions ahead or 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.src[c.Off+n]
}

// HasPrefix reports whether the remaining input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.src[c.Off:c.Limit]
	return len(rest) >= len(s) && string(rest[:len(s)]) == s
}

// Bump advances one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.Off]
	c.Off++
	return b
}

// BumpN advances n bytes, stopping at EOF.
func (c *Cursor) BumpN(n int) {
	for ; n > 0 && !c.EOF(); n-- {
		c.Off++
	}
}

// Eat consumes b if it is the next byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// Mark is a saved cursor position.
type Mark uint32

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// TextFrom returns the text consumed since m.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.src[uint32(m):c.Off])
}

// Reset moves the cursor back to m.
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
