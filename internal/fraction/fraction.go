// Package fraction implements exact rational numbers kept in lowest terms.
package fraction

import (
	"fmt"

	"bigfrac/internal/bignum"
)

// Fraction is a rational number num/den with den > 0 and gcd(|num|, den) = 1.
//
// The zero value is 0/1. Values are immutable.
type Fraction struct {
	num bignum.BigInt
	// den is zero only in the zero value, where it stands for 1.
	den bignum.BigInt
}

var (
	one      = Fraction{num: bignum.One(), den: bignum.One()}
	minusOne = Fraction{num: bignum.One().Neg(), den: bignum.One()}
)

// Zero returns 0/1.
func Zero() Fraction { return Fraction{} }

// One returns 1/1.
func One() Fraction { return one }

// New returns num/den in lowest terms. A zero denominator yields
// bignum.ErrDivisionByZero.
func New(num, den bignum.BigInt) (Fraction, error) {
	if den.IsZero() {
		return Fraction{}, fmt.Errorf("%w: denominator of %s/%s", bignum.ErrDivisionByZero, num, den)
	}
	return reduce(num, den), nil
}

// MustNew is like New but panics on a zero denominator.
func MustNew(num, den bignum.BigInt) Fraction {
	f, err := New(num, den)
	if err != nil {
		panic(fmt.Sprintf("MustNew(%s, %s) failed: %v", num, den, err))
	}
	return f
}

// FromInt returns n/1.
func FromInt(n bignum.BigInt) Fraction {
	return Fraction{num: n, den: bignum.One()}
}

// FromInt64 returns num/den in lowest terms.
func FromInt64(num, den int64) (Fraction, error) {
	return New(bignum.FromInt64(num), bignum.FromInt64(den))
}

// Num returns the numerator.
func (f Fraction) Num() bignum.BigInt { return f.num }

// Den returns the denominator, always positive.
func (f Fraction) Den() bignum.BigInt {
	if f.den.IsZero() {
		return bignum.One()
	}
	return f.den
}

// IsZero reports whether f == 0.
func (f Fraction) IsZero() bool { return f.num.IsZero() }

// IsInt reports whether the denominator is 1.
func (f Fraction) IsInt() bool { return f.Den().Equal(bignum.One()) }

// Sign returns -1, 0, or 1.
func (f Fraction) Sign() int { return f.num.Sign() }

// Trunc returns num/den truncated toward zero.
func (f Fraction) Trunc() bignum.BigInt {
	q, _ := f.num.Quo(f.Den()) //nolint:errcheck // den is positive.
	return q
}

// String renders the fraction as "num/den".
func (f Fraction) String() string {
	return f.num.String() + "/" + f.Den().String()
}
