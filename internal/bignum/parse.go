package bignum

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Parse converts decimal text into a BigInt.
//
// Accepted forms are an optional leading '-' followed by one or more ASCII
// digits. The empty string denotes zero. Leading zeros are stripped and
// negative zero collapses to zero.
func Parse(s string) (BigInt, error) {
	if s == "" {
		return BigInt{}, nil
	}
	body := s
	neg := false
	if body[0] == '-' {
		neg = true
		body = body[1:]
	}
	if body == "" {
		return BigInt{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	mag := make(Digits, len(body))
	for k := range len(body) {
		ch := body[len(body)-1-k]
		if ch < '0' || ch > '9' {
			return BigInt{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		mag[k] = ch - '0'
	}
	return newInt(mag, neg), nil
}

// MustParse is like Parse but panics if the text cannot be parsed.
// It simplifies initialization of package-level values and test tables.
func MustParse(s string) BigInt {
	i, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return i
}

// FromInt64 creates a BigInt from an int64 through its decimal text.
func FromInt64(v int64) BigInt {
	return MustParse(strconv.FormatInt(v, 10))
}

// FromUint64 creates a BigInt from a uint64 through its decimal text.
func FromUint64(v uint64) BigInt {
	return MustParse(strconv.FormatUint(v, 10))
}

// String renders the integer as '-'? followed by its digits, most significant
// first.
func (i BigInt) String() string {
	d := i.digits()
	var sb strings.Builder
	sb.Grow(len(d) + 1)
	if i.IsNeg() {
		sb.WriteByte('-')
	}
	for k := len(d) - 1; k >= 0; k-- {
		sb.WriteByte('0' + d[k])
	}
	return sb.String()
}

// Int64 converts the integer to int64 if it fits.
func (i BigInt) Int64() (int64, bool) {
	d := i.digits()
	// More than 20 digits cannot fit in a uint64.
	if len(d) > 20 {
		return 0, false
	}
	var mag uint64
	for k := len(d) - 1; k >= 0; k-- {
		if mag > (math.MaxUint64-uint64(d[k]))/10 {
			return 0, false
		}
		mag = mag*10 + uint64(d[k])
	}
	if !i.IsNeg() {
		v, err := safecast.Conv[int64](mag)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	// Negative: allow magnitude up to 2^63.
	const minMag = uint64(1) << 63
	switch {
	case mag > minMag:
		return 0, false
	case mag == minMag:
		return -1 << 63, true
	default:
		return -int64(mag), true //nolint:gosec // G115: mag < 2^63 checked above.
	}
}
