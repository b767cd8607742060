// Package printer renders a checked Odds program back to source text
// with a direct, type-switch-driven recursive tree walk over the typed
// AST.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"odds/pkg/analyzer"
)

// Print renders a checked statement list as Odds source text, one
// statement per line.
func Print(stmts []analyzer.Stmt) string {
	var b strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("do ")
		b.WriteString(printTExpr(stmt.Expr))
	}
	return b.String()
}

func printTExpr(te analyzer.TExpr) string {
	return printExpr(te.Expr)
}

func printExpr(e analyzer.Expr) string {
	switch v := e.(type) {
	case analyzer.NumLit:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	case analyzer.StringLit:
		return strconv.Quote(v.Value)
	case analyzer.BoolLit:
		if v.Value {
			return "true"
		}
		return "false"
	case analyzer.VoidLit:
		return "void"
	case analyzer.Id:
		return v.UName
	case analyzer.Unop:
		return fmt.Sprintf("%s%s", v.Op, printOperand(v.Operand))
	case analyzer.Binop:
		return fmt.Sprintf("%s %s %s", printOperand(v.Left), v.Op, printOperand(v.Right))
	case analyzer.Assign:
		return fmt.Sprintf("%s = %s", v.UName, printTExpr(v.Right))
	case analyzer.Call:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = printTExpr(a)
		}
		return fmt.Sprintf("%s(%s)", printOperand(v.Callee), strings.Join(args, ", "))
	case analyzer.List:
		elems := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = printTExpr(el)
		}
		return fmt.Sprintf("[%s]", strings.Join(elems, ", "))
	case analyzer.FdeclExpr:
		return printFDecl(v.Decl)
	case analyzer.If:
		return fmt.Sprintf("if %s then %s else %s", printTExpr(v.Cond), printTExpr(v.Then), printTExpr(v.Else))
	default:
		return fmt.Sprintf("<unprintable %T>", e)
	}
}

// printOperand renders an operator operand or a call's callee,
// wrapping compound expressions in parentheses so the printed text
// parses back to the same tree.
func printOperand(te analyzer.TExpr) string {
	switch te.Expr.(type) {
	case analyzer.Unop, analyzer.Binop, analyzer.Assign, analyzer.If, analyzer.FdeclExpr:
		return "(" + printTExpr(te) + ")"
	default:
		return printTExpr(te)
	}
}

func printFDecl(f *analyzer.FDecl) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(strings.Join(f.Params, ", "))
	b.WriteString(") ->")
	for _, stmt := range f.Body {
		b.WriteString(" do ")
		b.WriteString(printTExpr(stmt.Expr))
	}
	b.WriteString(" return ")
	b.WriteString(printTExpr(f.Ret))
	return b.String()
}
