package analyzer

import "odds/pkg/ast"

// checkCall type-checks a function call: it resolves the callee's
// signature (synthesizing one on the fly if the callee is still
// Unconst), checks arity, and reconciles each argument's type against
// its formal slot, refining and republishing the callee's signature
// when an argument narrows an Unconst parameter.
func checkCall(env *Environment, call *ast.Call) (*Environment, TExpr, error) {
	env, callee, err := checkExpr(env, call.Callee)
	if err != nil {
		return env, TExpr{}, err
	}

	var functy FuncType
	switch t := callee.Ty.(type) {
	case FuncType:
		functy = t
	case UnconstType:
		params := make([]Type, len(call.Arguments))
		for i := range params {
			params[i] = UnconstType{}
		}
		functy = FuncType{Params: params, Ret: UnconstType{}}
		callee, err = constrainTExpr(env, callee, functy, call)
		if err != nil {
			return env, TExpr{}, err
		}
	default:
		return env, TExpr{}, errCallNonFunction(callee.Ty, call)
	}

	if len(call.Arguments) != len(functy.Params) {
		return env, TExpr{}, errCallArity(len(functy.Params), len(call.Arguments), call)
	}

	argTExprs := make([]TExpr, len(call.Arguments))
	refinedParams := make([]Type, len(functy.Params))
	copy(refinedParams, functy.Params)
	changed := false

	for i, argExpr := range call.Arguments {
		var arg TExpr
		env, arg, err = checkExpr(env, argExpr)
		if err != nil {
			return env, TExpr{}, err
		}
		pi := functy.Params[i]
		if typesEqual(arg.Ty, pi) {
			argTExprs[i] = arg
			continue
		}
		if _, isAny := pi.(AnyType); isAny {
			argTExprs[i] = arg
			continue
		}
		piPrime, err := Meet(arg.Ty, pi)
		if err != nil {
			return env, TExpr{}, errCallArgType(i, pi, arg.Ty, call)
		}
		if !typesEqual(piPrime, pi) {
			refinedParams[i] = piPrime
			changed = true
		}
		if !typesEqual(arg.Ty, piPrime) {
			arg, err = constrainTExpr(env, arg, piPrime, call)
			if err != nil {
				return env, TExpr{}, err
			}
		}
		argTExprs[i] = arg
	}

	if changed {
		newFuncTy := FuncType{Params: refinedParams, Ret: functy.Ret}
		if err := updateCalleeType(env, callee, newFuncTy); err != nil {
			return env, TExpr{}, err
		}
		env, callee, err = checkExpr(env, call.Callee)
		if err != nil {
			return env, TExpr{}, err
		}
	}

	return env, TExpr{Expr: Call{Callee: callee, Args: argTExprs}, Ty: functy.Ret}, nil
}

// updateCalleeType mutates the Var backing an Id or Fdecl callee
// directly, bypassing constrainTExpr's equal-or-Unconst precondition —
// a refined parameter list is neither Unconst nor structurally equal
// to the callee's prior Func type, so the generic guard would reject
// exactly the update this step exists to make.
func updateCalleeType(env *Environment, callee TExpr, ty FuncType) error {
	switch e := callee.Expr.(type) {
	case Id:
		return env.UpdateType(e.UName, ty)
	case FdeclExpr:
		return env.UpdateType(e.Decl.UName, ty)
	default:
		return nil
	}
}
