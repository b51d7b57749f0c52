package fraction

import (
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"bigfrac/internal/bignum"
)

var (
	_ msgpack.CustomEncoder = Fraction{}
	_ msgpack.CustomDecoder = (*Fraction)(nil)
)

// Parse converts "N" or "N/D" into a reduced Fraction. Each part follows
// bignum.Parse, so an empty part is zero and "3/" has a zero denominator.
func Parse(s string) (Fraction, error) {
	numText, denText, hasSlash := strings.Cut(s, "/")
	if strings.Contains(denText, "/") {
		return Fraction{}, fmt.Errorf("%w: %q", bignum.ErrInvalidFormat, s)
	}
	num, err := bignum.Parse(numText)
	if err != nil {
		return Fraction{}, err
	}
	if !hasSlash {
		return FromInt(num), nil
	}
	den, err := bignum.Parse(denText)
	if err != nil {
		return Fraction{}, err
	}
	return New(num, den)
}

// MustParse is like Parse but panics if the text cannot be parsed.
func MustParse(s string) Fraction {
	f, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return f
}

// Set parses s and rebinds *f to the reduced result. On error *f is left
// unchanged.
func (f *Fraction) Set(s string) error {
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Fraction) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Fraction) UnmarshalText(text []byte) error {
	return f.Set(string(text))
}

// EncodeMsgpack writes the fraction as its canonical "num/den" string.
func (f Fraction) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(f.String())
}

// DecodeMsgpack reads a fraction written by EncodeMsgpack.
func (f *Fraction) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return fmt.Errorf("decode fraction: %w", err)
	}
	return f.Set(s)
}
