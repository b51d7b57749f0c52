package expr

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"bigfrac/internal/bignum"
	"bigfrac/internal/fraction"
	"bigfrac/internal/trace"
)

var (
	trueValue  = fraction.One()
	falseValue = fraction.Zero()
)

// Run parses and evaluates text in env.
func Run(ctx context.Context, env *Env, name, text string) ([]Result, error) {
	prog, err := ParseString(name, text)
	if err != nil {
		return nil, err
	}
	return env.Eval(ctx, prog)
}

// Eval evaluates every statement in order. It returns the results of the
// statements that completed before the first error together with that error.
// Variables assigned before the failure stay assigned.
func (e *Env) Eval(ctx context.Context, prog *Program) ([]Result, error) {
	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	var results []Result
	for _, st := range prog.Stmts {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		span := trace.Begin(tr, trace.ScopeStmt, "stmt", parent)
		ev := evaluator{env: e, src: prog.Source, tr: tr, span: span.ID()}
		v, err := ev.eval(st.X)
		if err != nil {
			span.WithExtra("error", err.Error()).End(st.Text)
			return results, err
		}
		if span.Recording() {
			span.WithExtra("value", ev.text(v))
		}
		span.End(st.Text)

		if st.Silent() {
			continue
		}
		e.last, e.hasLast = v, true
		results = append(results, Result{Source: st.Text, Value: v, Mode: e.mode})
	}
	return results, nil
}

type evaluator struct {
	env  *Env
	src  *Source
	tr   trace.Tracer
	span uint64
}

func (ev *evaluator) eval(x Expr) (fraction.Fraction, error) {
	switch x := x.(type) {
	case *NumberLit:
		return fraction.FromInt(x.Value), nil

	case *IdentExpr:
		v, ok := ev.env.Get(x.Name)
		if !ok {
			return fraction.Fraction{}, newError(ev.src, x.Sp.Start, ErrUndefined, "%s", x.Name)
		}
		return v, nil

	case *ParenExpr:
		return ev.eval(x.X)

	case *UnaryExpr:
		v, err := ev.eval(x.X)
		if err != nil {
			return fraction.Fraction{}, err
		}
		if x.Op == Minus {
			return v.Neg(), nil
		}
		return v.Pos(), nil

	case *BinaryExpr:
		a, err := ev.eval(x.X)
		if err != nil {
			return fraction.Fraction{}, err
		}
		b, err := ev.eval(x.Y)
		if err != nil {
			return fraction.Fraction{}, err
		}
		return ev.binary(x.Op, a, b, x.OpPos)

	case *AssignExpr:
		return ev.assign(x)

	case *StepExpr:
		return ev.step(x)
	}
	return fraction.Fraction{}, fmt.Errorf("unexpected node %T", x)
}

func (ev *evaluator) assign(x *AssignExpr) (fraction.Fraction, error) {
	v, err := ev.eval(x.Value)
	if err != nil {
		return fraction.Fraction{}, err
	}
	if x.Op != Assign {
		cur, ok := ev.env.Get(x.Name.Name)
		if !ok {
			return fraction.Fraction{}, newError(ev.src, x.Name.Sp.Start, ErrUndefined, "%s", x.Name.Name)
		}
		if v, err = ev.binary(x.Op.binaryOf(), cur, v, x.Name.Sp.End); err != nil {
			return fraction.Fraction{}, err
		}
	}
	ev.env.Set(x.Name.Name, v)
	return v, nil
}

func (ev *evaluator) step(x *StepExpr) (fraction.Fraction, error) {
	cur, ok := ev.env.Get(x.Name.Name)
	if !ok {
		return fraction.Fraction{}, newError(ev.src, x.Name.Sp.Start, ErrUndefined, "%s", x.Name.Name)
	}
	var res fraction.Fraction
	switch {
	case x.Op == PlusPlus && x.Postfix:
		res = fraction.PostInc(&cur)
	case x.Op == PlusPlus:
		res = fraction.PreInc(&cur)
	case x.Postfix:
		res = fraction.PostDec(&cur)
	default:
		res = fraction.PreDec(&cur)
	}
	ev.env.Set(x.Name.Name, cur)
	return res, nil
}

func (ev *evaluator) binary(op Kind, a, b fraction.Fraction, pos uint32) (fraction.Fraction, error) {
	v, err := ev.apply(op, a, b)
	if err != nil {
		return fraction.Fraction{}, newError(ev.src, pos, err, "%s %s %s", ev.text(a), op, ev.text(b))
	}
	if ev.tr.Level().ShouldEmit(trace.ScopeOp) {
		detail := fmt.Sprintf("%s %s %s = %s", ev.text(a), op, ev.text(b), ev.text(v))
		trace.Point(ev.tr, trace.ScopeOp, op.String(), detail, ev.span)
	}
	return v, nil
}

func (ev *evaluator) apply(op Kind, a, b fraction.Fraction) (fraction.Fraction, error) {
	switch op {
	case Plus:
		return a.Add(b), nil
	case Minus:
		return a.Sub(b), nil
	case Star:
		return a.Mul(b), nil
	case Slash:
		if ev.env.mode == ModeInt {
			q, err := a.Num().Quo(b.Num())
			return fraction.FromInt(q), err
		}
		q, err := a.Quo(b)
		if errors.Is(err, bignum.ErrDivisionByZero) {
			// binary already names both operands.
			err = bignum.ErrDivisionByZero
		}
		return q, err
	case Percent:
		if !a.IsInt() || !b.IsInt() {
			return fraction.Fraction{}, ErrNotInteger
		}
		r, err := a.Num().Rem(b.Num())
		return fraction.FromInt(r), err
	case Caret:
		return pow(a, b)
	case EqEq:
		return truth(a.Equal(b)), nil
	case BangEq:
		return truth(!a.Equal(b)), nil
	case Lt:
		return truth(a.Less(b)), nil
	case LtEq:
		return truth(a.LessEq(b)), nil
	case Gt:
		return truth(a.Greater(b)), nil
	case GtEq:
		return truth(a.GreaterEq(b)), nil
	}
	return fraction.Fraction{}, fmt.Errorf("%w: operator %s", ErrSyntax, op)
}

func pow(base, exp fraction.Fraction) (fraction.Fraction, error) {
	if !exp.IsInt() {
		return fraction.Fraction{}, ErrNotInteger
	}
	n, ok := exp.Num().Int64()
	if !ok {
		return fraction.Fraction{}, fmt.Errorf("%w: %s is too large", ErrExponent, exp.Num())
	}
	e, err := safecast.Conv[uint](n)
	if err != nil {
		return fraction.Fraction{}, fmt.Errorf("%w: %d is negative", ErrExponent, n)
	}
	return base.Pow(e), nil
}

func truth(b bool) fraction.Fraction {
	if b {
		return trueValue
	}
	return falseValue
}

func (ev *evaluator) text(v fraction.Fraction) string {
	return Result{Value: v, Mode: ev.env.mode}.Text()
}
