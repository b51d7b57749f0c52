package testkit

import (
	"strings"
	"testing"

	"bigfrac/internal/expr"
)

func TestCheckSpanInvariants(t *testing.T) {
	scripts := []string{
		"1",
		"x = 4/9; x * 3/2",
		"-(2 + 3) ^ 2 ^ 1 >= _",
		"a += 1\nb = a++ - --a\n",
		"  # lead\n(((7)))  ",
	}
	for _, s := range scripts {
		prog, err := expr.ParseString("t", s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if err := CheckSpanInvariants(prog); err != nil {
			t.Errorf("%q: %v", s, err)
		}
	}
}

func TestCheckSpanInvariantsCatchesBrokenSpans(t *testing.T) {
	prog, err := expr.ParseString("t", "1 + 2")
	if err != nil {
		t.Fatal(err)
	}
	bin := prog.Stmts[0].X.(*expr.BinaryExpr)
	bin.Y.(*expr.NumberLit).Sp = expr.Span{Start: 4, End: 9}
	err = CheckSpanInvariants(prog)
	if err == nil || !strings.Contains(err.Error(), "escapes parent") {
		t.Fatalf("expected containment error, got %v", err)
	}

	if err := CheckSpanInvariants(nil); err == nil {
		t.Fatal("expected error for nil program")
	}
}
