package analyzer

import "odds/pkg/ast"

var arithmeticOps = map[ast.BinaryOperator]bool{
	ast.OpAdd: true, ast.OpSub: true, ast.OpMul: true,
	ast.OpDiv: true, ast.OpMod: true, ast.OpPow: true,
}

var orderOps = map[ast.BinaryOperator]bool{
	ast.OpLt: true, ast.OpLe: true, ast.OpGt: true, ast.OpGe: true,
}

var equalityOps = map[ast.BinaryOperator]bool{
	ast.OpEq: true, ast.OpNe: true,
}

var logicalOps = map[ast.BinaryOperator]bool{
	ast.OpAnd: true, ast.OpOr: true,
}

// checkExpr is the recursive-descent expression checker: one case per
// AST node kind. It returns the environment as it stands after
// checking expr, since declarations (Assign, Fdecl) extend scope for
// whatever follows.
func checkExpr(env *Environment, expr ast.Expression) (*Environment, TExpr, error) {
	switch e := expr.(type) {
	case *ast.NumLit:
		return env, TExpr{Expr: NumLit{Value: e.Value}, Ty: NumType{}}, nil
	case *ast.StringLit:
		return env, TExpr{Expr: StringLit{Value: e.Value}, Ty: StringType{}}, nil
	case *ast.BoolLit:
		return env, TExpr{Expr: BoolLit{Value: e.Value}, Ty: BoolType{}}, nil
	case *ast.VoidLit:
		return env, TExpr{Expr: VoidLit{}, Ty: VoidType{}}, nil
	case *ast.Identifier:
		v, ok := env.Lookup(e.Name)
		if !ok {
			return env, TExpr{}, errUndefinedVariable(e.Name, e)
		}
		return env, TExpr{Expr: Id{UName: v.UName}, Ty: v.Ty}, nil
	case *ast.Unop:
		return checkUnop(env, e)
	case *ast.Binop:
		return checkBinop(env, e)
	case *ast.Assign:
		return checkAssign(env, e)
	case *ast.Call:
		return checkCall(env, e)
	case *ast.List:
		return checkList(env, e)
	case *ast.Fdecl:
		return checkFdeclAssign(env, "anon", true, e)
	case *ast.If:
		return checkIf(env, e)
	default:
		return env, TExpr{}, &SemanticError{Kind: UndefinedVariable, Message: "unrecognized expression form", Node: expr}
	}
}

func checkUnop(env *Environment, u *ast.Unop) (*Environment, TExpr, error) {
	env, operand, err := checkExpr(env, u.Operand)
	if err != nil {
		return env, TExpr{}, err
	}

	switch u.Operator {
	case ast.OpNot:
		if isUnconst(operand.Ty) {
			operand, err = constrainTExpr(env, operand, BoolType{}, u)
			if err != nil {
				return env, TExpr{}, err
			}
		} else if _, ok := operand.Ty.(BoolType); !ok {
			return env, TExpr{}, errUnopType(u.Operator, operand.Ty, u)
		}
		return env, TExpr{Expr: Unop{Op: u.Operator, Operand: operand}, Ty: BoolType{}}, nil
	case ast.OpNeg:
		if isUnconst(operand.Ty) {
			operand, err = constrainTExpr(env, operand, NumType{}, u)
			if err != nil {
				return env, TExpr{}, err
			}
		} else if _, ok := operand.Ty.(NumType); !ok {
			return env, TExpr{}, errUnopType(u.Operator, operand.Ty, u)
		}
		return env, TExpr{Expr: Unop{Op: u.Operator, Operand: operand}, Ty: NumType{}}, nil
	default:
		return env, TExpr{}, errUnopType(u.Operator, operand.Ty, u)
	}
}

func checkBinop(env *Environment, b *ast.Binop) (*Environment, TExpr, error) {
	env, left, err := checkExpr(env, b.Left)
	if err != nil {
		return env, TExpr{}, err
	}
	env, right, err := checkExpr(env, b.Right)
	if err != nil {
		return env, TExpr{}, err
	}

	switch {
	case arithmeticOps[b.Operator]:
		left, right, err = constrainBothTo(env, left, right, NumType{}, b)
		if err != nil {
			return env, TExpr{}, err
		}
		return env, TExpr{Expr: Binop{Left: left, Op: b.Operator, Right: right}, Ty: NumType{}}, nil
	case orderOps[b.Operator]:
		left, right, err = constrainBothTo(env, left, right, NumType{}, b)
		if err != nil {
			return env, TExpr{}, err
		}
		return env, TExpr{Expr: Binop{Left: left, Op: b.Operator, Right: right}, Ty: BoolType{}}, nil
	case equalityOps[b.Operator]:
		// Equality is intentionally heterogeneous: no constraining.
		return env, TExpr{Expr: Binop{Left: left, Op: b.Operator, Right: right}, Ty: BoolType{}}, nil
	case logicalOps[b.Operator]:
		left, right, err = constrainBothTo(env, left, right, BoolType{}, b)
		if err != nil {
			return env, TExpr{}, err
		}
		return env, TExpr{Expr: Binop{Left: left, Op: b.Operator, Right: right}, Ty: BoolType{}}, nil
	default:
		return env, TExpr{}, errBinopType(b.Operator, left.Ty, right.Ty, b)
	}
}

// constrainBothTo requires both operands be want or Unconst, constraining
// whichever are Unconst. It reports BinopTypeError (not ConstraintConflict)
// when an operand is neither, since that is a source-level type mismatch
// rather than a downstream constraint contradiction.
func constrainBothTo(env *Environment, left, right TExpr, want Type, node ast.Node) (TExpr, TExpr, error) {
	if isUnconst(left.Ty) {
		var err error
		left, err = constrainTExpr(env, left, want, node)
		if err != nil {
			return left, right, err
		}
	} else if !typesEqual(left.Ty, want) {
		return left, right, errBinopTypeNode(want, left.Ty, right.Ty, node)
	}
	if isUnconst(right.Ty) {
		var err error
		right, err = constrainTExpr(env, right, want, node)
		if err != nil {
			return left, right, err
		}
	} else if !typesEqual(right.Ty, want) {
		return left, right, errBinopTypeNode(want, left.Ty, right.Ty, node)
	}
	return left, right, nil
}

func errBinopTypeNode(want, left, right Type, node ast.Node) *SemanticError {
	if b, ok := node.(*ast.Binop); ok {
		return errBinopType(b.Operator, left, right, node)
	}
	return errBinopType("", left, right, node)
}

func checkAssign(env *Environment, a *ast.Assign) (*Environment, TExpr, error) {
	if fdecl, ok := a.Right.(*ast.Fdecl); ok {
		return checkFdeclAssign(env, a.Name, false, fdecl)
	}

	env, rhs, err := checkExpr(env, a.Right)
	if err != nil {
		return env, TExpr{}, err
	}
	if _, isVoid := rhs.Ty.(VoidType); isVoid {
		return env, TExpr{}, errAssignToVoid(a.Name, a)
	}
	env, uname := env.AddToScope(a.Name, rhs.Ty)
	return env, TExpr{Expr: Assign{UName: uname, Right: rhs}, Ty: rhs.Ty}, nil
}

func checkList(env *Environment, l *ast.List) (*Environment, TExpr, error) {
	elems := make([]TExpr, len(l.Elements))
	var elemType Type
	for i, el := range l.Elements {
		var te TExpr
		var err error
		env, te, err = checkExpr(env, el)
		if err != nil {
			return env, TExpr{}, err
		}
		elems[i] = te
		if elemType == nil && !isUnconst(te.Ty) {
			elemType = te.Ty
		}
	}

	if elemType == nil {
		return env, TExpr{Expr: List{Elements: elems}, Ty: ListType{Elem: UnconstType{}}}, nil
	}

	for i, te := range elems {
		if isUnconst(te.Ty) {
			constrained, err := constrainTExpr(env, te, elemType, l)
			if err != nil {
				return env, TExpr{}, err
			}
			elems[i] = constrained
		} else if !typesEqual(te.Ty, elemType) {
			return env, TExpr{}, errListElementType(elemType, te.Ty, l)
		}
	}

	return env, TExpr{Expr: List{Elements: elems}, Ty: ListType{Elem: elemType}}, nil
}

func checkIf(env *Environment, ifExpr *ast.If) (*Environment, TExpr, error) {
	env, cond, err := checkExpr(env, ifExpr.Cond)
	if err != nil {
		return env, TExpr{}, err
	}
	if isUnconst(cond.Ty) {
		cond, err = constrainTExpr(env, cond, BoolType{}, ifExpr)
		if err != nil {
			return env, TExpr{}, err
		}
	} else if _, ok := cond.Ty.(BoolType); !ok {
		return env, TExpr{}, errExpectedBool(cond.Ty, ifExpr)
	}

	env, then, err := checkExpr(env, ifExpr.Then)
	if err != nil {
		return env, TExpr{}, err
	}
	env, els, err := checkExpr(env, ifExpr.Else)
	if err != nil {
		return env, TExpr{}, err
	}

	t, meetErr := Meet(then.Ty, els.Ty)
	if meetErr != nil {
		return env, TExpr{}, errIfBranchMismatch(then.Ty, els.Ty, ifExpr)
	}
	if isUnconst(t) {
		return env, TExpr{}, errUnconstrainedIf(ifExpr)
	}

	then, err = constrainTExpr(env, then, t, ifExpr)
	if err != nil {
		return env, TExpr{}, err
	}
	els, err = constrainTExpr(env, els, t, ifExpr)
	if err != nil {
		return env, TExpr{}, err
	}

	return env, TExpr{Expr: If{Cond: cond, Then: then, Else: els}, Ty: t}, nil
}
