package bignum

// The helpers below rebind a caller-owned variable to a freshly computed value.
// No digits are modified in place.

// PreInc advances *p by one and returns the new value.
func PreInc(p *BigInt) BigInt {
	*p = p.Inc()
	return *p
}

// PreDec steps *p back by one and returns the new value.
func PreDec(p *BigInt) BigInt {
	*p = p.Dec()
	return *p
}

// PostInc advances *p by one and returns the value it held before.
func PostInc(p *BigInt) BigInt {
	old := *p
	*p = old.Inc()
	return old
}

// PostDec steps *p back by one and returns the value it held before.
func PostDec(p *BigInt) BigInt {
	old := *p
	*p = old.Dec()
	return old
}
