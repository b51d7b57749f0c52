package expr

// Kind is the category of a token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF
	Newline
	Semicolon

	Number // 123
	Ident  // x, total_2, _

	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Caret   // ^
	LParen  // (
	RParen  // )

	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	PlusPlus      // ++
	MinusMinus    // --

	EqEq   // ==
	BangEq // !=
	Lt     // <
	LtEq   // <=
	Gt     // >
	GtEq   // >=
)

var kindNames = [...]string{
	Invalid:       "invalid",
	EOF:           "end of input",
	Newline:       "newline",
	Semicolon:     ";",
	Number:        "number",
	Ident:         "identifier",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Caret:         "^",
	LParen:        "(",
	RParen:        ")",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	PlusPlus:      "++",
	MinusMinus:    "--",
	EqEq:          "==",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsAssign reports whether k is = or a compound assignment.
func (k Kind) IsAssign() bool { return k >= Assign && k <= PercentAssign }

// binaryOf maps a compound assignment to its arithmetic operator.
func (k Kind) binaryOf() Kind {
	switch k {
	case PlusAssign:
		return Plus
	case MinusAssign:
		return Minus
	case StarAssign:
		return Star
	case SlashAssign:
		return Slash
	case PercentAssign:
		return Percent
	default:
		return Invalid
	}
}

// Token is one lexed token.
type Token struct {
	Kind Kind
	Span Span
	Text string
}
