package analyzer

import "odds/pkg/ast"

// TExpr pairs a checked expression with its resolved type.
type TExpr struct {
	Expr Expr
	Ty   Type
}

// Expr is implemented by every typed-expression variant.
type Expr interface {
	isExpr()
}

type exprMarker struct{}

func (exprMarker) isExpr() {}

// NumLit, StringLit, BoolLit and VoidLit carry the literal's value
// straight through from the source AST.
type NumLit struct {
	exprMarker
	Value float64
}

type StringLit struct {
	exprMarker
	Value string
}

type BoolLit struct {
	exprMarker
	Value bool
}

type VoidLit struct{ exprMarker }

// Id is an already-resolved identifier reference.
type Id struct {
	exprMarker
	UName string
}

// Unop is a checked unary operator application.
type Unop struct {
	exprMarker
	Op      ast.UnaryOperator
	Operand TExpr
}

// Binop is a checked binary operator application.
type Binop struct {
	exprMarker
	Left  TExpr
	Op    ast.BinaryOperator
	Right TExpr
}

// Assign binds a fresh unique name to the checked value of Right.
type Assign struct {
	exprMarker
	UName string
	Right TExpr
}

// Call is a checked function invocation.
type Call struct {
	exprMarker
	Callee TExpr
	Args   []TExpr
}

// List is a checked list literal.
type List struct {
	exprMarker
	Elements []TExpr
}

// FdeclExpr wraps a checked function declaration where it appears as
// an expression (assignment right-hand side or anonymous literal).
type FdeclExpr struct {
	exprMarker
	Decl *FDecl
}

// If is a checked conditional expression.
type If struct {
	exprMarker
	Cond TExpr
	Then TExpr
	Else TExpr
}

// FDecl is a checked function declaration.
type FDecl struct {
	UName  string
	Params []string
	Body   []Stmt
	Ret    TExpr
	IsAnon bool
}

// Stmt is the sole statement form: an expression evaluated for effect.
type Stmt struct {
	Expr TExpr
}
