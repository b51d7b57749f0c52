// Package render writes evaluation results as a pretty table, NDJSON or a
// msgpack stream.
package render

import (
	"fmt"
	"io"
	"strings"

	"bigfrac/internal/expr"
)

// Format selects an output encoding.
type Format uint8

const (
	FormatPretty Format = iota
	FormatJSON
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat converts "pretty", "json" or "msgpack" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "pretty", "":
		return FormatPretty, nil
	case "json", "ndjson":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return FormatPretty, fmt.Errorf("unsupported format %q (must be pretty, json or msgpack)", s)
	}
}

// File groups the results of one script. Path is empty for inline
// expressions.
type File struct {
	Path    string
	Results []expr.Result
	Err     error
}

// Options tune the pretty renderer.
type Options struct {
	Color      bool
	ShowSource bool // print "source = value" instead of just the value
	Width      int  // maximum source column width, 0 = unlimited
}

// Write renders files in the given format.
func Write(w io.Writer, format Format, files []File, opts Options) error {
	switch format {
	case FormatJSON:
		return JSON(w, files)
	case FormatMsgpack:
		return Msgpack(w, files)
	default:
		return Pretty(w, files, opts)
	}
}
