package analyzer

import "odds/pkg/ast"

// checkFdeclAssign type-checks a function declaration: it pre-registers
// the function's name with an all-Unconst signature so recursive calls
// resolve, checks the body and return expression against that
// signature, reconciles each parameter's accumulated constraints back
// into the published type, and re-checks the return expression before
// finalizing. It is reached either from an Assign whose right-hand side
// is a function literal (id is the assignment target) or directly from
// an anonymous function literal (id == "anon", isAnon == true).
func checkFdeclAssign(env *Environment, id string, isAnon bool, decl *ast.Fdecl) (*Environment, TExpr, error) {
	if existing, ok := env.LookupScope(id); ok {
		if ft, isFunc := existing.Ty.(FuncType); isFunc && isUnconst(ft.Ret) {
			return env, TExpr{}, errFdeclReassign(id, decl)
		}
	}

	preParams := make([]Type, len(decl.Params))
	for i := range preParams {
		preParams[i] = UnconstType{}
	}
	outer, uname := env.AddToScope(id, FuncType{Params: preParams, Ret: UnconstType{}})

	local := outer
	paramUNames := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		var pUName string
		local, pUName = local.AddToParam(p)
		paramUNames[i] = pUName
	}

	local, bodyStmts, err := checkStatements(local, decl.Body)
	if err != nil {
		return env, TExpr{}, err
	}

	local, retTExpr, err := checkExpr(local, decl.Ret)
	if err != nil {
		return env, TExpr{}, err
	}

	funcVar, _ := local.LookupScope(id)
	funcTy := funcVar.Ty.(FuncType)

	refinedParams := make([]Type, len(decl.Params))
	for i, pUName := range paramUNames {
		paramVar, ok := local.LookupUName(pUName)
		if !ok {
			return env, TExpr{}, errUndefinedVariable(pUName, decl)
		}
		merged, err := Meet(paramVar.Ty, funcTy.Params[i])
		if err != nil {
			return env, TExpr{}, errRecursiveTypeMismatch(decl.Params[i], decl)
		}
		refined := Generalize(merged)
		if !typesEqual(refined, paramVar.Ty) {
			paramVar.Ty = refined
		}
		refinedParams[i] = refined
	}

	// Re-check the return expression so it reflects the parameter
	// constraints reconciled above.
	local, retTExpr, err = checkExpr(local, decl.Ret)
	if err != nil {
		return env, TExpr{}, err
	}

	if !isConcreteReturnable(retTExpr.Ty) {
		return env, TExpr{}, errUnconstrainedReturn(id, decl)
	}

	finalTy := FuncType{Params: refinedParams, Ret: retTExpr.Ty}
	if err := outer.UpdateType(uname, finalTy); err != nil {
		return env, TExpr{}, err
	}

	result := &FDecl{
		UName:  uname,
		Params: paramUNames,
		Body:   bodyStmts,
		Ret:    retTExpr,
		IsAnon: isAnon,
	}
	return outer, TExpr{Expr: FdeclExpr{Decl: result}, Ty: finalTy}, nil
}
