package fraction

import "bigfrac/internal/bignum"

// gcd returns the greatest common divisor of |a| and |b| by repeated
// remainder-taking. gcd(0, 0) is 0.
func gcd(a, b bignum.BigInt) bignum.BigInt {
	a, b = a.Abs(), b.Abs()
	for !a.IsZero() && !b.IsZero() {
		if a.Greater(b) {
			a, _ = a.Rem(b) //nolint:errcheck // b is non-zero.
		} else {
			b, _ = b.Rem(a) //nolint:errcheck // a is non-zero.
		}
	}
	return a.Add(b)
}

// reduce divides num and den by their gcd and moves the sign onto the
// numerator. den must be non-zero.
func reduce(num, den bignum.BigInt) Fraction {
	g := gcd(num, den)
	num, _ = num.Quo(g) //nolint:errcheck // g >= 1 since den != 0.
	den, _ = den.Quo(g) //nolint:errcheck // g >= 1 since den != 0.
	if den.IsNeg() {
		num, den = num.Neg(), den.Neg()
	}
	return Fraction{num: num, den: den}
}
