package expr

import (
	"fmt"

	"bigfrac/internal/bignum"
)

type parser struct {
	src *Source
	lx  *lexer
}

// Parse parses a whole script. Statements are separated by newlines or
// semicolons; blank statements are skipped.
func Parse(src *Source) (*Program, error) {
	p := &parser{src: src, lx: newLexer(src)}
	prog := &Program{Source: src}
	for {
		switch p.lx.peek().Kind {
		case EOF:
			return prog, nil
		case Newline, Semicolon:
			p.lx.next()
			continue
		}

		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		switch tok := p.lx.peek(); tok.Kind {
		case EOF, Newline, Semicolon:
		default:
			return nil, p.errorf(tok, "unexpected %s after expression", describe(tok))
		}
		prog.Stmts = append(prog.Stmts, Stmt{X: x, Text: src.Slice(x.Span())})
	}
}

// ParseString parses text under the given source name.
func ParseString(name, text string) (*Program, error) {
	return Parse(NewSourceString(name, text))
}

func (p *parser) parseExpr() (Expr, error) {
	return p.parseBinary(0)
}

// parseBinary is a Pratt loop over the operator table.
func (p *parser) parseBinary(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		opTok := p.lx.peek()
		prec, rightAssoc := binaryPrec(opTok.Kind)
		if prec < 0 || prec < minPrec {
			return left, nil
		}
		p.lx.next()

		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}

		sp := left.Span().Cover(right.Span())
		if opTok.Kind.IsAssign() {
			id, ok := left.(*IdentExpr)
			if !ok || id.Name == "_" {
				return nil, p.errorf(opTok, "cannot assign to %q", p.src.Slice(left.Span()))
			}
			left = &AssignExpr{Sp: sp, Op: opTok.Kind, Name: id, Value: right}
			continue
		}
		left = &BinaryExpr{Sp: sp, Op: opTok.Kind, OpPos: opTok.Span.Start, X: left, Y: right}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	tok := p.lx.peek()
	switch tok.Kind {
	case Plus, Minus:
		p.lx.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Sp: tok.Span.Cover(x.Span()), Op: tok.Kind, X: x}, nil

	case PlusPlus, MinusMinus:
		p.lx.next()
		name := p.lx.next()
		if name.Kind != Ident || name.Text == "_" {
			return nil, p.errorf(name, "%s needs a variable, found %s", tok.Kind, describe(name))
		}
		id := &IdentExpr{Sp: name.Span, Name: name.Text}
		return &StepExpr{Sp: tok.Span.Cover(name.Span), Op: tok.Kind, Name: id}, nil
	}
	return p.parsePower()
}

// parsePower handles right-associative ^, which binds tighter than unary
// minus on its left: -2^2 is -(2^2).
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	opTok := p.lx.peek()
	if opTok.Kind != Caret {
		return base, nil
	}
	p.lx.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{
		Sp:    base.Span().Cover(exp.Span()),
		Op:    Caret,
		OpPos: opTok.Span.Start,
		X:     base,
		Y:     exp,
	}, nil
}

func (p *parser) parsePostfix() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	tok := p.lx.peek()
	if tok.Kind != PlusPlus && tok.Kind != MinusMinus {
		return x, nil
	}
	id, ok := x.(*IdentExpr)
	if !ok || id.Name == "_" {
		return nil, p.errorf(tok, "%s needs a variable, found %q", tok.Kind, p.src.Slice(x.Span()))
	}
	p.lx.next()
	return &StepExpr{Sp: id.Sp.Cover(tok.Span), Op: tok.Kind, Postfix: true, Name: id}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.lx.next()
	switch tok.Kind {
	case Number:
		v, err := bignum.Parse(tok.Text)
		if err != nil {
			return nil, p.wrap(tok, err)
		}
		return &NumberLit{Sp: tok.Span, Value: v}, nil

	case Ident:
		return &IdentExpr{Sp: tok.Span, Name: tok.Text}, nil

	case LParen:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		closing := p.lx.next()
		if closing.Kind != RParen {
			return nil, p.errorf(closing, "expected ), found %s", describe(closing))
		}
		return &ParenExpr{Sp: tok.Span.Cover(closing.Span), X: x}, nil

	default:
		return nil, p.errorf(tok, "expected expression, found %s", describe(tok))
	}
}

func (p *parser) errorf(tok Token, format string, args ...any) *Error {
	return newError(p.src, tok.Span.Start, ErrSyntax, format, args...)
}

func (p *parser) wrap(tok Token, err error) *Error {
	return newError(p.src, tok.Span.Start, err, "")
}

func describe(tok Token) string {
	switch tok.Kind {
	case EOF, Newline:
		return tok.Kind.String()
	case Invalid:
		return fmt.Sprintf("invalid character %q", tok.Text)
	default:
		return fmt.Sprintf("%q", tok.Text)
	}
}
