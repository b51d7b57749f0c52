package expr

// Binary operator precedence; higher binds tighter.
const (
	precAssign         = 1 // = += -= *= /= %=
	precEquality       = 2 // == !=
	precComparison     = 3 // < <= > >=
	precAdditive       = 4 // + -
	precMultiplicative = 5 // * / %
)

// binaryPrec returns the precedence of a binary operator and whether it is
// right associative. Non-operators return -1. Power is handled below unary
// operators, outside this table.
func binaryPrec(k Kind) (int, bool) {
	switch {
	case k.IsAssign():
		return precAssign, true
	case k == EqEq, k == BangEq:
		return precEquality, false
	case k == Lt, k == LtEq, k == Gt, k == GtEq:
		return precComparison, false
	case k == Plus, k == Minus:
		return precAdditive, false
	case k == Star, k == Slash, k == Percent:
		return precMultiplicative, false
	default:
		return -1, false
	}
}
