package analyzer

import (
	"fmt"

	"odds/pkg/ast"
)

// ErrorKind is the closed taxonomy of semantic-error conditions.
type ErrorKind string

const (
	UndefinedVariable    ErrorKind = "UndefinedVariable"
	UnopTypeError        ErrorKind = "UnopTypeError"
	BinopTypeError       ErrorKind = "BinopTypeError"
	ExpectedBool         ErrorKind = "ExpectedBool"
	AssignToVoid         ErrorKind = "AssignToVoid"
	ListElementTypeError ErrorKind = "ListElementTypeError"
	CallNonFunction      ErrorKind = "CallNonFunction"
	CallArityMismatch    ErrorKind = "CallArityMismatch"
	CallArgTypeMismatch  ErrorKind = "CallArgTypeMismatch"
	RecursiveTypeMismatch ErrorKind = "RecursiveTypeMismatch"
	UnconstrainedReturn  ErrorKind = "UnconstrainedReturn"
	FdeclReassign        ErrorKind = "FdeclReassign"
	ConstraintConflict   ErrorKind = "ConstraintConflict"
	UnconstrainedIf      ErrorKind = "UnconstrainedIf"
	IfBranchMismatch     ErrorKind = "IfBranchMismatch"
)

// SemanticError is the single error type the analyzer raises. Analysis
// aborts on the first one — there is no multi-error accumulation.
type SemanticError struct {
	Kind    ErrorKind
	Message string
	Node    ast.Node
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func errUndefinedVariable(name string, node ast.Node) *SemanticError {
	return &SemanticError{Kind: UndefinedVariable, Message: fmt.Sprintf("undefined variable %q", name), Node: node}
}

func errUnopType(op ast.UnaryOperator, got Type, node ast.Node) *SemanticError {
	return &SemanticError{Kind: UnopTypeError, Message: fmt.Sprintf("operator %q cannot apply to %s", op, got.Name()), Node: node}
}

func errBinopType(op ast.BinaryOperator, left, right Type, node ast.Node) *SemanticError {
	return &SemanticError{Kind: BinopTypeError, Message: fmt.Sprintf("operator %q cannot apply to %s and %s", op, left.Name(), right.Name()), Node: node}
}

func errExpectedBool(got Type, node ast.Node) *SemanticError {
	return &SemanticError{Kind: ExpectedBool, Message: fmt.Sprintf("if condition must be Bool, found %s", got.Name()), Node: node}
}

func errAssignToVoid(name string, node ast.Node) *SemanticError {
	return &SemanticError{Kind: AssignToVoid, Message: fmt.Sprintf("cannot assign Void value to %q", name), Node: node}
}

func errListElementType(want, got Type, node ast.Node) *SemanticError {
	return &SemanticError{Kind: ListElementTypeError, Message: fmt.Sprintf("list element must be %s, found %s", want.Name(), got.Name()), Node: node}
}

func errCallNonFunction(got Type, node ast.Node) *SemanticError {
	return &SemanticError{Kind: CallNonFunction, Message: fmt.Sprintf("cannot call value of type %s", got.Name()), Node: node}
}

func errCallArity(want, got int, node ast.Node) *SemanticError {
	return &SemanticError{Kind: CallArityMismatch, Message: fmt.Sprintf("expected %d argument(s), found %d", want, got), Node: node}
}

func errCallArgType(index int, want, got Type, node ast.Node) *SemanticError {
	return &SemanticError{Kind: CallArgTypeMismatch, Message: fmt.Sprintf("argument %d: expected %s, found %s", index, want.Name(), got.Name()), Node: node}
}

func errRecursiveTypeMismatch(param string, node ast.Node) *SemanticError {
	return &SemanticError{Kind: RecursiveTypeMismatch, Message: fmt.Sprintf("parameter %q's inferred type conflicts with its recursive use", param), Node: node}
}

func errUnconstrainedReturn(name string, node ast.Node) *SemanticError {
	return &SemanticError{Kind: UnconstrainedReturn, Message: fmt.Sprintf("function %q's return type could not be constrained", name), Node: node}
}

func errFdeclReassign(name string, node ast.Node) *SemanticError {
	return &SemanticError{Kind: FdeclReassign, Message: fmt.Sprintf("function %q is still being defined and cannot be reassigned", name), Node: node}
}

func errConstraintConflict(want, got Type, node ast.Node) *SemanticError {
	return &SemanticError{Kind: ConstraintConflict, Message: fmt.Sprintf("cannot constrain %s to %s", got.Name(), want.Name()), Node: node}
}

func errUnconstrainedIf(node ast.Node) *SemanticError {
	return &SemanticError{Kind: UnconstrainedIf, Message: "if branches are both unconstrained", Node: node}
}

func errIfBranchMismatch(then, els Type, node ast.Node) *SemanticError {
	return &SemanticError{Kind: IfBranchMismatch, Message: fmt.Sprintf("if branches disagree: %s vs %s", then.Name(), els.Name()), Node: node}
}
