package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

type palette struct {
	header *color.Color
	source *color.Color
	value  *color.Color
	neg    *color.Color
	err    *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		header: mk(color.Bold, color.FgMagenta),
		source: mk(color.Faint),
		value:  mk(color.FgCyan),
		neg:    mk(color.FgYellow),
		err:    mk(color.Bold, color.FgRed),
	}
}

// Pretty writes an aligned "source = value" listing per file. Column width
// is measured in terminal cells so wide characters line up.
func Pretty(w io.Writer, files []File, opts Options) error {
	bw := bufio.NewWriter(w)
	p := newPalette(opts.Color)

	for i, f := range files {
		if f.Path != "" {
			if i > 0 {
				bw.WriteByte('\n')
			}
			p.header.Fprintf(bw, "== %s\n", f.Path)
		}

		width := 0
		if opts.ShowSource {
			for _, r := range f.Results {
				width = max(width, runewidth.StringWidth(oneLine(r.Source)))
			}
			if opts.Width > 0 {
				width = min(width, opts.Width)
			}
		}

		for _, r := range f.Results {
			if opts.ShowSource {
				src := fit(oneLine(r.Source), width)
				p.source.Fprint(bw, runewidth.FillRight(src, width))
				bw.WriteString(" = ")
			}
			c := p.value
			if r.Value.Sign() < 0 {
				c = p.neg
			}
			c.Fprint(bw, r.Text())
			bw.WriteByte('\n')
		}

		if f.Err != nil {
			p.err.Fprint(bw, "error:")
			bw.WriteString(" " + f.Err.Error() + "\n")
		}
	}
	return bw.Flush()
}

// oneLine collapses continuation lines inside a statement.
func oneLine(s string) string {
	if !strings.ContainsAny(s, "\\\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\\\n", " ")
	return strings.Join(strings.Fields(s), " ")
}

func fit(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
