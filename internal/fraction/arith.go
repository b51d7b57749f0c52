package fraction

import (
	"fmt"

	"bigfrac/internal/bignum"
)

// Add returns f + g.
func (f Fraction) Add(g Fraction) Fraction {
	num := f.num.Mul(g.Den()).Add(f.Den().Mul(g.num))
	return reduce(num, f.Den().Mul(g.Den()))
}

// Sub returns f - g.
func (f Fraction) Sub(g Fraction) Fraction {
	num := f.num.Mul(g.Den()).Sub(f.Den().Mul(g.num))
	return reduce(num, f.Den().Mul(g.Den()))
}

// Mul returns f * g.
func (f Fraction) Mul(g Fraction) Fraction {
	return reduce(f.num.Mul(g.num), f.Den().Mul(g.Den()))
}

// Quo returns f / g. Dividing by zero yields bignum.ErrDivisionByZero.
func (f Fraction) Quo(g Fraction) (Fraction, error) {
	if g.IsZero() {
		return Fraction{}, fmt.Errorf("%w: %s / %s", bignum.ErrDivisionByZero, f, g)
	}
	return reduce(f.num.Mul(g.Den()), f.Den().Mul(g.num)), nil
}

// Inc returns f + 1.
func (f Fraction) Inc() Fraction { return f.Add(one) }

// Dec returns f - 1.
func (f Fraction) Dec() Fraction { return f.Sub(one) }

// Pos returns f unchanged (unary plus).
func (f Fraction) Pos() Fraction { return f }

// Neg returns -f.
func (f Fraction) Neg() Fraction { return f.Mul(minusOne) }

// Abs returns |f|.
func (f Fraction) Abs() Fraction {
	return Fraction{num: f.num.Abs(), den: f.den}
}

// Cmp compares f and g by the sign of f - g and returns -1, 0, or 1.
func (f Fraction) Cmp(g Fraction) int {
	return f.Sub(g).num.Sign()
}

// Equal reports whether f == g.
func (f Fraction) Equal(g Fraction) bool { return f.Sub(g).num.IsZero() }

// Less reports whether f < g.
func (f Fraction) Less(g Fraction) bool { return f.Cmp(g) < 0 }

// LessEq reports whether f <= g.
func (f Fraction) LessEq(g Fraction) bool { return f.Cmp(g) <= 0 }

// Greater reports whether f > g.
func (f Fraction) Greater(g Fraction) bool { return f.Cmp(g) > 0 }

// GreaterEq reports whether f >= g.
func (f Fraction) GreaterEq(g Fraction) bool { return f.Cmp(g) >= 0 }

// Pow returns f raised to a non-negative integer power.
func (f Fraction) Pow(e uint) Fraction {
	// num and den are coprime, so their powers are too.
	return Fraction{num: f.num.Pow(e), den: f.Den().Pow(e)}
}
