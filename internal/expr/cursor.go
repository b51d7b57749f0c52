package expr

import (
	"fmt"

	"fortio.org/safecast"
)

// cursor walks the bytes of a Source.
type cursor struct {
	text  []byte
	off   uint32
	limit uint32
}

func newCursor(src *Source) cursor {
	limit, err := safecast.Conv[uint32](len(src.Text))
	if err != nil {
		panic(fmt.Errorf("len source text overflow: %w", err))
	}
	return cursor{text: src.Text, limit: limit}
}

func (c *cursor) eof() bool { return c.off >= c.limit }

// peek returns the current byte or 0 at the end.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.text[c.off]
}

// peek2 returns the current and the next byte.
func (c *cursor) peek2() (b0, b1 byte, ok bool) {
	if c.off+1 >= c.limit {
		return 0, 0, false
	}
	return c.text[c.off], c.text[c.off+1], true
}

func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.text[c.off]
	c.off++
	return b
}

// eat consumes the next byte if it equals b.
func (c *cursor) eat(b byte) bool {
	if !c.eof() && c.text[c.off] == b {
		c.off++
		return true
	}
	return false
}

func (c *cursor) spanFrom(start uint32) Span {
	return Span{Start: start, End: c.off}
}
