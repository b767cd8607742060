package analyzer

import (
	"errors"
	"testing"

	"odds/pkg/ast"
)

func run(t *testing.T, stmts ...ast.Statement) ([]Stmt, error) {
	t.Helper()
	return CheckProgram(&ast.Program{Statements: stmts})
}

func lastTExpr(t *testing.T, out []Stmt) TExpr {
	t.Helper()
	if len(out) == 0 {
		t.Fatalf("expected at least one statement, got none")
	}
	return out[len(out)-1].Expr
}

func semanticErrorKind(t *testing.T, err error) ErrorKind {
	t.Helper()
	var se *SemanticError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SemanticError, got %T: %v", err, err)
	}
	return se.Kind
}

// `do 1 + 2` is accepted; the top-level expression's type is Num.
func TestScenarioArithmeticAccepted(t *testing.T) {
	out, err := run(t, ast.DoStmt(ast.Bin(ast.Num(1), ast.OpAdd, ast.Num(2))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := lastTExpr(t, out).Ty.(NumType); !ok {
		t.Fatalf("expected Num, got %s", lastTExpr(t, out).Ty.Name())
	}
}

// `do foo = (x) -> do y = x + 1 return y` is accepted; foo has type
// Func{[Num], Num} and its parameter is refined to Num.
func TestScenarioParamRefinedThroughBody(t *testing.T) {
	fdecl := ast.Anon([]string{"x"},
		[]ast.Statement{ast.DoStmt(ast.Asn("y", ast.Bin(ast.ID("x"), ast.OpAdd, ast.Num(1))))},
		ast.ID("y"),
	)
	out, err := run(t, ast.DoStmt(ast.Asn("foo", fdecl)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ft, ok := lastTExpr(t, out).Ty.(FuncType)
	if !ok {
		t.Fatalf("expected Func, got %s", lastTExpr(t, out).Ty.Name())
	}
	if len(ft.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(ft.Params))
	}
	if _, ok := ft.Params[0].(NumType); !ok {
		t.Fatalf("expected param Num, got %s", ft.Params[0].Name())
	}
	if _, ok := ft.Ret.(NumType); !ok {
		t.Fatalf("expected return Num, got %s", ft.Ret.Name())
	}
}

// `do id = (x) -> return x` is rejected with UnconstrainedReturn — x
// stays Unconst, generalizes to Any, and an Any return is invalid.
func TestScenarioIdentityRejectedUnconstrainedReturn(t *testing.T) {
	fdecl := ast.Anon([]string{"x"}, nil, ast.ID("x"))
	_, err := run(t, ast.DoStmt(ast.Asn("id", fdecl)))
	if err == nil {
		t.Fatalf("expected UnconstrainedReturn, got success")
	}
	if kind := semanticErrorKind(t, err); kind != UnconstrainedReturn {
		t.Fatalf("expected UnconstrainedReturn, got %s", kind)
	}
}

// `do p = print("hi")` is rejected with AssignToVoid.
func TestScenarioAssignVoidRejected(t *testing.T) {
	_, err := run(t, ast.DoStmt(ast.Asn("p", ast.CallExpr(ast.ID("print"), ast.Str("hi")))))
	if err == nil {
		t.Fatalf("expected AssignToVoid, got success")
	}
	if kind := semanticErrorKind(t, err); kind != AssignToVoid {
		t.Fatalf("expected AssignToVoid, got %s", kind)
	}
}

// `do l = [1, 2, true]` is rejected with ListElementTypeError.
func TestScenarioListElementMismatch(t *testing.T) {
	_, err := run(t, ast.DoStmt(ast.Asn("l", ast.Lst(ast.Num(1), ast.Num(2), ast.Bool(true)))))
	if err == nil {
		t.Fatalf("expected ListElementTypeError, got success")
	}
	if kind := semanticErrorKind(t, err); kind != ListElementTypeError {
		t.Fatalf("expected ListElementTypeError, got %s", kind)
	}
}

// `do f = (x) -> return if x then 1 else "two"` is rejected with
// IfBranchMismatch.
func TestScenarioIfBranchMismatch(t *testing.T) {
	fdecl := ast.Anon([]string{"x"}, nil, ast.IfExpr(ast.ID("x"), ast.Num(1), ast.Str("two")))
	_, err := run(t, ast.DoStmt(ast.Asn("f", fdecl)))
	if err == nil {
		t.Fatalf("expected IfBranchMismatch, got success")
	}
	if kind := semanticErrorKind(t, err); kind != IfBranchMismatch {
		t.Fatalf("expected IfBranchMismatch, got %s", kind)
	}
}

// `do n = EUL * 2` is accepted; n has type Num.
func TestScenarioBuiltinConstantArithmetic(t *testing.T) {
	out, err := run(t, ast.DoStmt(ast.Asn("n", ast.Bin(ast.ID("EUL"), ast.OpMul, ast.Num(2)))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := lastTExpr(t, out).Ty.(NumType); !ok {
		t.Fatalf("expected Num, got %s", lastTExpr(t, out).Ty.Name())
	}
}

// `do g = (x) -> return g(x) + 1` is accepted via recursion
// pre-registration; the `+ 1` constrains g's return type to Num. The
// formal `x` is only ever passed opaquely to the recursive call — it
// is never used as an arithmetic operand itself — so nothing in the
// call-checking or fdecl-reconciliation logic ever ties it to a
// concrete type, and per the general rule that unconstrained
// parameters of user functions generalize to Any at closure time, it
// generalizes to Any. See DESIGN.md for more on this.
func TestScenarioRecursivePreRegistration(t *testing.T) {
	fdecl := ast.Anon([]string{"x"}, nil,
		ast.Bin(ast.CallExpr(ast.ID("g"), ast.ID("x")), ast.OpAdd, ast.Num(1)),
	)
	out, err := run(t, ast.DoStmt(ast.Asn("g", fdecl)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ft, ok := lastTExpr(t, out).Ty.(FuncType)
	if !ok {
		t.Fatalf("expected Func, got %s", lastTExpr(t, out).Ty.Name())
	}
	if _, ok := ft.Ret.(NumType); !ok {
		t.Fatalf("expected return Num, got %s", ft.Ret.Name())
	}
	if len(ft.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(ft.Params))
	}
	if _, ok := ft.Params[0].(AnyType); !ok {
		t.Fatalf("expected param Any, got %s", ft.Params[0].Name())
	}
}

func TestScenarioFdeclReassignDuringRecursionRejected(t *testing.T) {
	// A function identifier cannot be redefined while its signature is
	// still in progress (its ret is still Unconst mid-body-check).
	body := []ast.Statement{
		ast.DoStmt(ast.Asn("g", ast.Anon([]string{"y"}, nil, ast.Num(3)))),
	}
	fdecl := ast.Anon([]string{"x"}, body, ast.CallExpr(ast.ID("g"), ast.ID("x")))
	_, err := run(t, ast.DoStmt(ast.Asn("g", fdecl)))
	if err == nil {
		t.Fatalf("expected FdeclReassign, got success")
	}
	if kind := semanticErrorKind(t, err); kind != FdeclReassign {
		t.Fatalf("expected FdeclReassign, got %s", kind)
	}
}
