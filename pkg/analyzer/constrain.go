package analyzer

import "odds/pkg/ast"

// constrainTExpr requests that a checked expression's type be
// narrowed to tReq. It is deliberately one-level: only the
// structurally constrainable forms below are acted on. Compound
// expressions are returned re-typed but otherwise untouched — deeper
// propagation would break equality's heterogeneity policy, which
// deliberately leaves both of its operands unconstrained.
func constrainTExpr(env *Environment, te TExpr, tReq Type, node ast.Node) (TExpr, error) {
	if !isUnconst(te.Ty) && !typesEqual(te.Ty, tReq) {
		return TExpr{}, errConstraintConflict(tReq, te.Ty, node)
	}

	switch e := te.Expr.(type) {
	case Id:
		if err := env.UpdateType(e.UName, tReq); err != nil {
			return TExpr{}, err
		}
	case FdeclExpr:
		if err := env.UpdateType(e.Decl.UName, tReq); err != nil {
			return TExpr{}, err
		}
	case Call:
		if calleeID, ok := e.Callee.Expr.(Id); ok {
			if calleeVar, found := env.LookupUName(calleeID.UName); found {
				if ft, isFunc := calleeVar.Ty.(FuncType); isFunc {
					if !isUnconst(ft.Ret) && !typesEqual(ft.Ret, tReq) {
						return TExpr{}, errConstraintConflict(tReq, ft.Ret, node)
					}
					newFt := FuncType{Params: ft.Params, Ret: tReq}
					if err := env.UpdateType(calleeVar.UName, newFt); err != nil {
						return TExpr{}, err
					}
				}
			}
		}
	}

	return TExpr{Expr: te.Expr, Ty: tReq}, nil
}
