package render

import (
	"errors"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"bigfrac/internal/expr"
)

// packedRecord carries the value itself so it goes through the BigInt or
// Fraction msgpack encoder.
type packedRecord struct {
	File   string `msgpack:"file,omitempty"`
	Source string `msgpack:"source,omitempty"`
	Value  any    `msgpack:"value,omitempty"`
	Mode   string `msgpack:"mode,omitempty"`
	Error  string `msgpack:"error,omitempty"`
}

// Msgpack writes a stream of msgpack maps, one per result or error. In int
// mode the value is a bignum.BigInt, otherwise a fraction.Fraction; both
// encode as their canonical text.
func Msgpack(w io.Writer, files []File) error {
	enc := msgpack.NewEncoder(w)
	for _, f := range files {
		for _, r := range f.Results {
			rec := packedRecord{File: f.Path, Source: r.Source, Value: r.Value, Mode: r.Mode.String()}
			if r.Mode == expr.ModeInt {
				rec.Value = r.Value.Num()
			}
			if err := enc.Encode(&rec); err != nil {
				return err
			}
		}
		if f.Err != nil {
			if err := enc.Encode(&packedRecord{File: f.Path, Error: f.Err.Error()}); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadMsgpack decodes a stream written by Msgpack. Values come back as their
// canonical text.
func ReadMsgpack(r io.Reader) ([]Record, error) {
	dec := msgpack.NewDecoder(r)
	var out []Record
	for {
		var rec struct {
			File   string `msgpack:"file"`
			Source string `msgpack:"source"`
			Value  string `msgpack:"value"`
			Mode   string `msgpack:"mode"`
			Error  string `msgpack:"error"`
		}
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		out = append(out, Record(rec))
	}
}
