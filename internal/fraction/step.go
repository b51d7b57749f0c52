package fraction

// PreInc advances *p by one and returns the new value.
func PreInc(p *Fraction) Fraction {
	*p = p.Inc()
	return *p
}

// PreDec steps *p back by one and returns the new value.
func PreDec(p *Fraction) Fraction {
	*p = p.Dec()
	return *p
}

// PostInc advances *p by one and returns the value it held before.
func PostInc(p *Fraction) Fraction {
	old := *p
	*p = old.Inc()
	return old
}

// PostDec steps *p back by one and returns the value it held before.
func PostDec(p *Fraction) Fraction {
	old := *p
	*p = old.Dec()
	return old
}
