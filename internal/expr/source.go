package expr

import (
	"bytes"
	"fmt"
	"sort"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// Source is one normalized calculator script.
type Source struct {
	Name string
	Text []byte
	// lineStarts holds the byte offset of every line start.
	lineStarts []uint32
}

// fractionSlash is U+2044, which NFKC produces for vulgar fractions like ½.
var fractionSlash = []byte("⁄")

// NewSource normalizes text to NFKC, so full-width digits and operators read
// as their ASCII forms and "½" reads as "1/2".
func NewSource(name string, text []byte) *Source {
	t := norm.NFKC.Bytes(text)
	t = bytes.ReplaceAll(t, fractionSlash, []byte("/"))

	starts := []uint32{0}
	for i, b := range t {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i + 1)
			if err != nil {
				panic(fmt.Errorf("source %s too large: %w", name, err))
			}
			starts = append(starts, off)
		}
	}
	return &Source{Name: name, Text: t, lineStarts: starts}
}

// NewSourceString is NewSource for string input.
func NewSourceString(name, text string) *Source {
	return NewSource(name, []byte(text))
}

// Position is a 1-based line and column plus the byte offset.
type Position struct {
	Offset uint32
	Line   int
	Col    int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Position resolves a byte offset.
func (s *Source) Position(off uint32) Position {
	i := sort.Search(len(s.lineStarts), func(i int) bool { return s.lineStarts[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return Position{Offset: off, Line: i + 1, Col: int(off-s.lineStarts[i]) + 1}
}

// Slice returns the text covered by sp.
func (s *Source) Slice(sp Span) string {
	end := min(int(sp.End), len(s.Text))
	start := min(int(sp.Start), end)
	return string(s.Text[start:end])
}

// Span is a half-open byte range in a Source.
type Span struct {
	Start, End uint32
}

// Cover returns the smallest span containing both s and o.
func (s Span) Cover(o Span) Span {
	return Span{Start: min(s.Start, o.Start), End: max(s.End, o.End)}
}
