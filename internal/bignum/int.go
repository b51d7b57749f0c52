// Package bignum implements arbitrary-precision signed decimal integers.
package bignum

// BigInt represents a big signed decimal integer.
//
// The zero value is a valid zero. Values are immutable: every operation
// returns a new BigInt and never touches the digits of its operands.
type BigInt struct {
	neg bool
	// mag is the magnitude, least significant digit first. A nil mag is zero.
	mag Digits
}

var (
	one      = BigInt{mag: Digits{1}}
	minusOne = BigInt{neg: true, mag: Digits{1}}
)

// Zero returns a zero BigInt.
func Zero() BigInt { return BigInt{} }

// One returns the BigInt 1.
func One() BigInt { return one }

// newInt builds a BigInt from a magnitude and sign, normalizing both.
// The caller hands over ownership of mag.
func newInt(mag Digits, neg bool) BigInt {
	mag = normDigits(mag)
	if isZeroDigits(mag) {
		return BigInt{}
	}
	return BigInt{neg: neg, mag: mag}
}

// FromDigits creates a BigInt from a least-significant-first magnitude and a
// sign flag. The digits are copied; values outside 0-9 are rejected.
func FromDigits(mag Digits, neg bool) (BigInt, error) {
	for _, d := range mag {
		if d > 9 {
			return BigInt{}, ErrInvalidFormat
		}
	}
	return newInt(cloneDigits(mag), neg), nil
}

func (i BigInt) digits() Digits {
	if len(i.mag) == 0 {
		return Digits{0}
	}
	return i.mag
}

// IsZero reports whether the integer is zero.
func (i BigInt) IsZero() bool {
	return isZeroDigits(i.digits())
}

// IsNeg reports whether the integer is strictly negative.
func (i BigInt) IsNeg() bool {
	return i.neg && !i.IsZero()
}

// Sign returns -1, 0, or 1.
func (i BigInt) Sign() int {
	switch {
	case i.IsZero():
		return 0
	case i.neg:
		return -1
	default:
		return 1
	}
}

// Len returns the number of decimal digits in the magnitude.
func (i BigInt) Len() int {
	return len(i.digits())
}

// Digits returns a copy of the magnitude, least significant digit first.
func (i BigInt) Digits() Digits {
	return cloneDigits(i.digits())
}

// Abs returns |i|.
func (i BigInt) Abs() BigInt {
	return BigInt{mag: i.mag}
}

// Pos returns i unchanged (unary plus).
func (i BigInt) Pos() BigInt { return i }

// Neg returns -i.
func (i BigInt) Neg() BigInt {
	return i.Mul(minusOne)
}

// Cmp compares two BigInt values and returns -1, 0, or 1.
func (i BigInt) Cmp(j BigInt) int {
	switch {
	case !i.IsNeg() && !j.IsNeg():
		return DigitsCmp(i.digits(), j.digits())
	case i.IsNeg() && j.IsNeg():
		return -DigitsCmp(i.digits(), j.digits())
	case i.IsNeg():
		return -1
	default:
		return 1
	}
}

// Equal reports whether i == j.
func (i BigInt) Equal(j BigInt) bool { return i.Cmp(j) == 0 }

// Less reports whether i < j.
func (i BigInt) Less(j BigInt) bool { return i.Cmp(j) < 0 }

// LessEq reports whether i <= j.
func (i BigInt) LessEq(j BigInt) bool { return i.Cmp(j) <= 0 }

// Greater reports whether i > j.
func (i BigInt) Greater(j BigInt) bool { return i.Cmp(j) > 0 }

// GreaterEq reports whether i >= j.
func (i BigInt) GreaterEq(j BigInt) bool { return i.Cmp(j) >= 0 }

// Add returns i + j.
func (i BigInt) Add(j BigInt) BigInt {
	a, b := i.digits(), j.digits()
	if i.IsNeg() == j.IsNeg() {
		return newInt(DigitsAdd(a, b), i.IsNeg())
	}

	switch cmp := DigitsCmp(a, b); {
	case cmp == 0:
		return BigInt{}
	case cmp > 0:
		diff, _ := DigitsSub(a, b) //nolint:errcheck // a > b checked above.
		return newInt(diff, i.IsNeg())
	default:
		diff, _ := DigitsSub(b, a) //nolint:errcheck // b > a checked above.
		return newInt(diff, j.IsNeg())
	}
}

// Sub returns i - j.
func (i BigInt) Sub(j BigInt) BigInt {
	return i.Add(j.flip())
}

// flip negates the sign flag without going through multiplication.
func (i BigInt) flip() BigInt {
	if i.IsZero() {
		return BigInt{}
	}
	return BigInt{neg: !i.neg, mag: i.mag}
}

// Mul returns i * j.
func (i BigInt) Mul(j BigInt) BigInt {
	return newInt(DigitsMul(i.digits(), j.digits()), i.IsNeg() != j.IsNeg())
}

// Quo returns i / j truncated toward zero.
func (i BigInt) Quo(j BigInt) (BigInt, error) {
	if j.IsZero() {
		return BigInt{}, ErrDivisionByZero
	}
	a, b := i.digits(), j.digits()
	if len(a) < len(b) {
		return BigInt{}, nil
	}
	q, err := DigitsQuo(a, b)
	if err != nil {
		return BigInt{}, err
	}
	return newInt(q, i.IsNeg() != j.IsNeg()), nil
}

// Rem returns i - (i/j)*j. The result has the sign of i or is zero.
func (i BigInt) Rem(j BigInt) (BigInt, error) {
	q, err := i.Quo(j)
	if err != nil {
		return BigInt{}, err
	}
	return i.Sub(q.Mul(j)), nil
}

// QuoRem returns the truncated quotient and the matching remainder.
func (i BigInt) QuoRem(j BigInt) (q, r BigInt, err error) {
	q, err = i.Quo(j)
	if err != nil {
		return BigInt{}, BigInt{}, err
	}
	return q, i.Sub(q.Mul(j)), nil
}

// Inc returns i + 1.
func (i BigInt) Inc() BigInt { return i.Add(one) }

// Dec returns i - 1.
func (i BigInt) Dec() BigInt { return i.Sub(one) }

// Pow returns i raised to the power e by square-and-multiply.
func (i BigInt) Pow(e uint) BigInt {
	result := one
	base := i
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		e >>= 1
		if e == 0 {
			break
		}
		base = base.Mul(base)
	}
	return result
}
