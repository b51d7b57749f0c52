package expr

// lexer turns a Source into tokens with one token of lookahead.
type lexer struct {
	src  *Source
	cur  cursor
	look *Token
}

func newLexer(src *Source) *lexer {
	return &lexer{src: src, cur: newCursor(src)}
}

// peek returns the next token without consuming it.
func (lx *lexer) peek() Token {
	if lx.look == nil {
		t := lx.scan()
		lx.look = &t
	}
	return *lx.look
}

// next consumes and returns the next token. After EOF it keeps returning EOF.
func (lx *lexer) next() Token {
	t := lx.peek()
	lx.look = nil
	return t
}

func (lx *lexer) scan() Token {
	lx.skipBlanks()
	start := lx.cur.off
	if lx.cur.eof() {
		return Token{Kind: EOF, Span: Span{Start: start, End: start}}
	}

	ch := lx.cur.peek()
	switch {
	case ch == '\n':
		lx.cur.bump()
		return lx.token(Newline, start)
	case isDigit(ch):
		for isDigit(lx.cur.peek()) {
			lx.cur.bump()
		}
		return lx.token(Number, start)
	case isIdentStart(ch):
		for isIdentContinue(lx.cur.peek()) {
			lx.cur.bump()
		}
		return lx.token(Ident, start)
	}
	return lx.scanOperator(start)
}

func (lx *lexer) scanOperator(start uint32) Token {
	ch := lx.cur.bump()
	kind := Invalid
	switch ch {
	case ';':
		kind = Semicolon
	case '(':
		kind = LParen
	case ')':
		kind = RParen
	case '^':
		kind = Caret
	case '+':
		kind = lx.pick(Plus, '=', PlusAssign, '+', PlusPlus)
	case '-':
		kind = lx.pick(Minus, '=', MinusAssign, '-', MinusMinus)
	case '*':
		kind = lx.pick(Star, '=', StarAssign, 0, Invalid)
	case '/':
		kind = lx.pick(Slash, '=', SlashAssign, 0, Invalid)
	case '%':
		kind = lx.pick(Percent, '=', PercentAssign, 0, Invalid)
	case '=':
		kind = lx.pick(Assign, '=', EqEq, 0, Invalid)
	case '<':
		kind = lx.pick(Lt, '=', LtEq, 0, Invalid)
	case '>':
		kind = lx.pick(Gt, '=', GtEq, 0, Invalid)
	case '!':
		if lx.cur.eat('=') {
			kind = BangEq
		}
	}
	if kind == Invalid {
		// Swallow the rest of a multi-byte rune so the error shows it whole.
		for !lx.cur.eof() && lx.cur.peek()&0xC0 == 0x80 {
			lx.cur.bump()
		}
	}
	return lx.token(kind, start)
}

// pick returns twoA when the next byte is a, twoB when it is b, else one.
func (lx *lexer) pick(one Kind, a byte, twoA Kind, b byte, twoB Kind) Kind {
	switch {
	case lx.cur.eat(a):
		return twoA
	case b != 0 && lx.cur.eat(b):
		return twoB
	default:
		return one
	}
}

func (lx *lexer) token(kind Kind, start uint32) Token {
	sp := lx.cur.spanFrom(start)
	return Token{Kind: kind, Span: sp, Text: lx.src.Slice(sp)}
}

// skipBlanks skips spaces, tabs, carriage returns and # comments, stopping
// before a newline.
func (lx *lexer) skipBlanks() {
	for !lx.cur.eof() {
		switch lx.cur.peek() {
		case ' ', '\t', '\r':
			lx.cur.bump()
		case '#':
			for !lx.cur.eof() && lx.cur.peek() != '\n' {
				lx.cur.bump()
			}
		case '\\':
			// Line continuation.
			if b0, b1, ok := lx.cur.peek2(); ok && b0 == '\\' && b1 == '\n' {
				lx.cur.bump()
				lx.cur.bump()
				continue
			}
			return
		default:
			return
		}
	}
}

func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isIdentStart(b byte) bool { return b == '_' || (b|0x20 >= 'a' && b|0x20 <= 'z') }
func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
