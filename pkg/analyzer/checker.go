// Package analyzer implements the Odds semantic analyzer: scope
// resolution, bidirectional type inference with unification-style
// constraining, and alpha-renaming, producing a typed AST from the
// parser's output.
package analyzer

import "odds/pkg/ast"

// checkStatement checks the sole statement form, Do(e): check e, emit
// Do(te).
func checkStatement(env *Environment, stmt ast.Statement) (*Environment, Stmt, error) {
	do, ok := stmt.(*ast.Do)
	if !ok {
		return env, Stmt{}, &SemanticError{Kind: UndefinedVariable, Message: "unrecognized statement form", Node: stmt}
	}
	env, te, err := checkExpr(env, do.Expr)
	if err != nil {
		return env, Stmt{}, err
	}
	return env, Stmt{Expr: te}, nil
}

// checkStatements threads env left to right across a statement list.
func checkStatements(env *Environment, stmts []ast.Statement) (*Environment, []Stmt, error) {
	out := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		var (
			stmt Stmt
			err  error
		)
		env, stmt, err = checkStatement(env, s)
		if err != nil {
			return env, nil, err
		}
		out = append(out, stmt)
	}
	return env, out, nil
}

// CheckProgram is the analyzer's entry point: it runs the statement
// list against the root environment and returns either the typed
// statement list or the first SemanticError encountered. The final
// environment is discarded — analysis has no observable effect beyond
// the error/success signal.
func CheckProgram(program *ast.Program) ([]Stmt, error) {
	env := RootEnvironment()
	_, stmts, err := checkStatements(env, program.Statements)
	if err != nil {
		return nil, err
	}
	return stmts, nil
}
