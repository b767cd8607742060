package analyzer

import "fmt"

// Type is the tagged sum of types the checker reasons about.
type Type interface {
	Name() string
	isType()
}

// NumType is the type of every numeric literal, integer or floating.
type NumType struct{}

func (NumType) Name() string { return "Num" }
func (NumType) isType()      {}

// StringType is the type of string literals.
type StringType struct{}

func (StringType) Name() string { return "String" }
func (StringType) isType()      {}

// BoolType is the type of boolean literals.
type BoolType struct{}

func (BoolType) Name() string { return "Bool" }
func (BoolType) isType()      {}

// VoidType is the type of the sole void value.
type VoidType struct{}

func (VoidType) Name() string { return "Void" }
func (VoidType) isType()      {}

// AnyType is the top type: accepted in place of any type at a call
// site, used by built-ins such as print and by generalized unused
// formal parameters.
type AnyType struct{}

func (AnyType) Name() string { return "Any" }
func (AnyType) isType()      {}

// UnconstType is the inference placeholder meaning "not yet
// constrained". It must never survive into a fully analyzed program's
// externally visible type positions.
type UnconstType struct{}

func (UnconstType) Name() string { return "Unconst" }
func (UnconstType) isType()      {}

// ListType is a homogeneous list of Elem.
type ListType struct {
	Elem Type
}

func (l ListType) Name() string { return fmt.Sprintf("List(%s)", l.Elem.Name()) }
func (ListType) isType()        {}

// FuncType is a first-class function type.
type FuncType struct {
	Params []Type
	Ret    Type
}

func (f FuncType) Name() string {
	s := "Func{["
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Name()
	}
	return s + "], " + f.Ret.Name() + "}"
}
func (FuncType) isType() {}

func isUnconst(t Type) bool {
	_, ok := t.(UnconstType)
	return ok
}

// typesEqual is structural equality: List and Func compare their
// members recursively, everything else compares by dynamic type.
func typesEqual(a, b Type) bool {
	switch at := a.(type) {
	case ListType:
		bt, ok := b.(ListType)
		return ok && typesEqual(at.Elem, bt.Elem)
	case FuncType:
		bt, ok := b.(FuncType)
		if !ok || len(at.Params) != len(bt.Params) {
			return false
		}
		for i := range at.Params {
			if !typesEqual(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return typesEqual(at.Ret, bt.Ret)
	default:
		return fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b)
	}
}

// isConcreteReturnable reports whether t is fit to be a function's
// finalized return type: not Any, and not List(Unconst).
func isConcreteReturnable(t Type) bool {
	if _, ok := t.(AnyType); ok {
		return false
	}
	if lt, ok := t.(ListType); ok && isUnconst(lt.Elem) {
		return false
	}
	return true
}

// Meet computes the most-constrained type compatible with both t1 and
// t2: Unconst yields to whatever the other side already knows, Func
// types meet element-wise, and anything else must already agree.
func Meet(t1, t2 Type) (Type, error) {
	if isUnconst(t1) {
		return t2, nil
	}
	if isUnconst(t2) {
		return t1, nil
	}
	f1, ok1 := t1.(FuncType)
	f2, ok2 := t2.(FuncType)
	if ok1 && ok2 {
		if len(f1.Params) != len(f2.Params) {
			return nil, &SemanticError{Kind: ConstraintConflict, Message: fmt.Sprintf("cannot meet %s and %s: parameter count mismatch", f1.Name(), f2.Name())}
		}
		params := make([]Type, len(f1.Params))
		for i := range f1.Params {
			p, err := Meet(f1.Params[i], f2.Params[i])
			if err != nil {
				return nil, err
			}
			params[i] = p
		}
		ret, err := Meet(f1.Ret, f2.Ret)
		if err != nil {
			return nil, err
		}
		return FuncType{Params: params, Ret: ret}, nil
	}
	if typesEqual(t1, t2) {
		return t1, nil
	}
	return nil, &SemanticError{Kind: ConstraintConflict, Message: fmt.Sprintf("cannot meet %s and %s", t1.Name(), t2.Name())}
}

// Generalize replaces every Unconst inside t with Any, recursing into
// Func parameters and return type. Ground types are unchanged.
func Generalize(t Type) Type {
	switch tt := t.(type) {
	case UnconstType:
		return AnyType{}
	case FuncType:
		params := make([]Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = Generalize(p)
		}
		return FuncType{Params: params, Ret: Generalize(tt.Ret)}
	case ListType:
		return ListType{Elem: Generalize(tt.Elem)}
	default:
		return t
	}
}
