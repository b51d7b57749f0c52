package expr

import "bigfrac/internal/bignum"

// Expr is a node of the expression tree.
type Expr interface {
	Span() Span
	exprNode()
}

type (
	// NumberLit is a decimal integer literal.
	NumberLit struct {
		Sp    Span
		Value bignum.BigInt
	}

	// IdentExpr reads a variable; "_" reads the last printed value.
	IdentExpr struct {
		Sp   Span
		Name string
	}

	// ParenExpr is a parenthesised expression.
	ParenExpr struct {
		Sp Span
		X  Expr
	}

	// UnaryExpr is +x or -x.
	UnaryExpr struct {
		Sp Span
		Op Kind
		X  Expr
	}

	// BinaryExpr is x op y for arithmetic and comparison operators.
	BinaryExpr struct {
		Sp    Span
		Op    Kind
		OpPos uint32
		X, Y  Expr
	}

	// AssignExpr is name = value or a compound form such as name += value.
	AssignExpr struct {
		Sp    Span
		Op    Kind
		Name  *IdentExpr
		Value Expr
	}

	// StepExpr is ++name, --name, name++ or name--.
	StepExpr struct {
		Sp      Span
		Op      Kind // PlusPlus or MinusMinus
		Postfix bool
		Name    *IdentExpr
	}
)

func (e *NumberLit) Span() Span  { return e.Sp }
func (e *IdentExpr) Span() Span  { return e.Sp }
func (e *ParenExpr) Span() Span  { return e.Sp }
func (e *UnaryExpr) Span() Span  { return e.Sp }
func (e *BinaryExpr) Span() Span { return e.Sp }
func (e *AssignExpr) Span() Span { return e.Sp }
func (e *StepExpr) Span() Span   { return e.Sp }

func (*NumberLit) exprNode()  {}
func (*IdentExpr) exprNode()  {}
func (*ParenExpr) exprNode()  {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*AssignExpr) exprNode() {}
func (*StepExpr) exprNode()   {}

// Stmt is one top-level expression statement.
type Stmt struct {
	X    Expr
	Text string // source text of the statement
}

// Silent reports whether the statement prints nothing: top-level
// assignments and increments only update variables.
func (s Stmt) Silent() bool {
	switch s.X.(type) {
	case *AssignExpr, *StepExpr:
		return true
	default:
		return false
	}
}

// Program is a parsed script.
type Program struct {
	Source *Source
	Stmts  []Stmt
}
