// Package testkit holds checks shared by parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"bigfrac/internal/expr"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed
// program:
// 1) every node span is non-empty and within the source text
// 2) every child span is contained in its parent span
// 3) statements appear in source order without overlapping
// 4) a statement's text is exactly the slice of its span
func CheckSpanInvariants(prog *expr.Program) error {
	if prog == nil || prog.Source == nil {
		return fmt.Errorf("nil program or source")
	}
	size, err := safecast.Conv[uint32](len(prog.Source.Text))
	if err != nil {
		return fmt.Errorf("source length overflow: %w", err)
	}

	var prevEnd uint32
	for i, st := range prog.Stmts {
		sp := st.X.Span()
		if sp.Start < prevEnd {
			return fmt.Errorf("statement %d starts at %d before previous end %d", i, sp.Start, prevEnd)
		}
		prevEnd = sp.End
		if got := prog.Source.Slice(sp); got != st.Text {
			return fmt.Errorf("statement %d text %q does not match span text %q", i, st.Text, got)
		}
		if err := checkNode(st.X, expr.Span{Start: 0, End: size}); err != nil {
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}
	return nil
}

func checkNode(x expr.Expr, parent expr.Span) error {
	sp := x.Span()
	if sp.End <= sp.Start {
		return fmt.Errorf("empty span %v for %T", sp, x)
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("span %v of %T escapes parent %v", sp, x, parent)
	}

	var children []expr.Expr
	switch n := x.(type) {
	case *expr.NumberLit, *expr.IdentExpr:
	case *expr.ParenExpr:
		children = []expr.Expr{n.X}
	case *expr.UnaryExpr:
		children = []expr.Expr{n.X}
	case *expr.BinaryExpr:
		if n.OpPos < n.X.Span().End || n.OpPos >= n.Y.Span().Start {
			return fmt.Errorf("operator position %d not between operands %v and %v", n.OpPos, n.X.Span(), n.Y.Span())
		}
		children = []expr.Expr{n.X, n.Y}
	case *expr.AssignExpr:
		children = []expr.Expr{n.Name, n.Value}
	case *expr.StepExpr:
		children = []expr.Expr{n.Name}
	default:
		return fmt.Errorf("unknown node %T", x)
	}
	for _, c := range children {
		if err := checkNode(c, sp); err != nil {
			return err
		}
	}
	return nil
}
