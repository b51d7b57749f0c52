package bignum

import "errors"

var (
	// ErrDivisionByZero indicates an attempt to divide by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidFormat indicates text that is not a decimal integer.
	ErrInvalidFormat = errors.New("invalid numeric format")
	// ErrUnderflow indicates a magnitude subtraction with minuend < subtrahend.
	ErrUnderflow = errors.New("unsigned underflow")
)

// Digits is an unsigned decimal magnitude, least significant digit first.
//
// Canonical zero is the single-digit sequence [0]; no other value carries
// a most-significant zero digit.
type Digits []uint8

// normDigits strips most-significant zeros. It never mutates the backing array
// and always returns at least one digit.
func normDigits(d Digits) Digits {
	n := len(d)
	for n > 1 && d[n-1] == 0 {
		n--
	}
	if n == 0 {
		return Digits{0}
	}
	return d[:n]
}

func isZeroDigits(d Digits) bool {
	d = normDigits(d)
	return len(d) == 1 && d[0] == 0
}

// DigitsCmp compares two magnitudes and returns -1, 0, or 1.
func DigitsCmp(a, b Digits) int {
	a = normDigits(a)
	b = normDigits(b)
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// DigitsAdd returns a + b.
func DigitsAdd(a, b Digits) Digits {
	a = normDigits(a)
	b = normDigits(b)
	if len(a) < len(b) {
		a, b = b, a
	}

	out := make(Digits, 0, len(a)+1)
	var carry uint8
	for i := range a {
		sum := a[i] + carry
		if i < len(b) {
			sum += b[i]
		}
		carry = 0
		if sum >= 10 {
			sum -= 10
			carry = 1
		}
		out = append(out, sum)
	}
	if carry != 0 {
		out = append(out, carry)
	}
	return normDigits(out)
}

// DigitsSub returns minuend - subtrahend. The minuend must not be smaller
// than the subtrahend.
func DigitsSub(minuend, subtrahend Digits) (Digits, error) {
	if DigitsCmp(minuend, subtrahend) < 0 {
		return nil, ErrUnderflow
	}
	a := normDigits(minuend)
	b := normDigits(subtrahend)

	work := make(Digits, len(a))
	copy(work, a)
	out := make(Digits, len(a))
	for i := range work {
		diff := int(work[i])
		if i < len(b) {
			diff -= int(b[i])
		}
		if diff < 0 {
			diff += 10
			// Borrow walks up through zeros; the precondition guarantees a
			// non-zero digit above.
			for j := i + 1; j < len(work); j++ {
				if work[j] > 0 {
					work[j]--
					break
				}
				work[j] = 9
			}
		}
		out[i] = uint8(diff) //nolint:gosec // G115: diff is in [0, 9].
	}
	return normDigits(out), nil
}

// DigitsMul returns a * b using the schoolbook method.
func DigitsMul(a, b Digits) Digits {
	a = normDigits(a)
	b = normDigits(b)
	if isZeroDigits(a) || isZeroDigits(b) {
		return Digits{0}
	}

	acc := make([]uint64, len(a)+len(b)+1)
	for i := range a {
		if a[i] == 0 {
			continue
		}
		for j := range b {
			acc[i+j] += uint64(a[i]) * uint64(b[j])
		}
	}

	out := make(Digits, len(acc))
	var carry uint64
	for k := range acc {
		v := acc[k] + carry
		out[k] = uint8(v % 10) //nolint:gosec // G115: v%10 fits in a digit.
		carry = v / 10
	}
	return normDigits(out)
}

// DigitsQuo returns the truncated quotient dividend / divisor.
func DigitsQuo(dividend, divisor Digits) (Digits, error) {
	q, _, err := DigitsQuoRem(dividend, divisor)
	return q, err
}

// DigitsQuoRem performs schoolbook long division one dividend digit at a time,
// most significant first. Each quotient digit is found by trial increment.
func DigitsQuoRem(dividend, divisor Digits) (q, r Digits, err error) {
	a := normDigits(dividend)
	b := normDigits(divisor)
	if isZeroDigits(b) {
		return nil, nil, ErrDivisionByZero
	}
	if DigitsCmp(a, b) < 0 {
		return Digits{0}, cloneDigits(a), nil
	}

	quot := make(Digits, len(a))
	rem := Digits{0}
	for i := len(a) - 1; i >= 0; i-- {
		// current = rem*10 + a[i]
		cur := make(Digits, 0, len(rem)+1)
		cur = append(cur, a[i])
		cur = normDigits(append(cur, rem...))

		var digit uint8
		prod := Digits{0}
		for digit < 9 {
			next := DigitsAdd(prod, b)
			if DigitsCmp(next, cur) > 0 {
				break
			}
			prod = next
			digit++
		}
		quot[i] = digit
		rem, err = DigitsSub(cur, prod)
		if err != nil {
			return nil, nil, err
		}
	}
	return normDigits(quot), rem, nil
}

func cloneDigits(d Digits) Digits {
	out := make(Digits, len(d))
	copy(out, d)
	return out
}
