package analyzer

import (
	"fmt"
	"strings"
)

// Var is a binding record: the alpha-renamed name used in the output
// AST, and its type. Ty is mutated in place as constraints are
// discovered deep in the tree — an Environment is threaded value-style
// but a Var it hands out is shared-mutable.
type Var struct {
	UName string
	Ty    Type
}

// unameCounter is the process-wide monotonic counter backing every
// minted unique name. It is not safe for concurrent use — the
// analyzer runs a single pass over a single program at a time.
var unameCounter int

func freshUName(source string) string {
	unameCounter++
	return fmt.Sprintf("%s_%d", source, unameCounter)
}

// sourceOf recovers the original source name from a uname by trimming
// the trailing "_<N>" suffix.
func sourceOf(uname string) string {
	i := strings.LastIndex(uname, "_")
	if i < 0 {
		return uname
	}
	return uname[:i]
}

// Environment holds two logically disjoint binding maps: ordinary
// scope bindings, and the formal parameters of the function currently
// being analyzed.
type Environment struct {
	scope  map[string]*Var
	params map[string]*Var
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{scope: make(map[string]*Var), params: make(map[string]*Var)}
}

// Extend returns a shallow copy of e sharing the same underlying Var
// pointers — mutations to a Var's Ty are visible through either copy,
// but inserting a new key into the copy does not affect e.
func (e *Environment) Extend() *Environment {
	next := NewEnvironment()
	for k, v := range e.scope {
		next.scope[k] = v
	}
	for k, v := range e.params {
		next.params[k] = v
	}
	return next
}

// Lookup searches scope then params.
func (e *Environment) Lookup(id string) (*Var, bool) {
	if v, ok := e.scope[id]; ok {
		return v, true
	}
	if v, ok := e.params[id]; ok {
		return v, true
	}
	return nil, false
}

// LookupScope searches scope only, ignoring params.
func (e *Environment) LookupScope(id string) (*Var, bool) {
	v, ok := e.scope[id]
	return v, ok
}

// AddToScope mints a fresh uname and inserts Var{uname, ty} into scope
// under id, overwriting any prior binding (shadowing). It never touches
// params.
func (e *Environment) AddToScope(id string, ty Type) (*Environment, string) {
	next := e.Extend()
	uname := freshUName(id)
	next.scope[id] = &Var{UName: uname, Ty: ty}
	return next, uname
}

// AddToParam mints a fresh uname and inserts Var{uname, Unconst} into
// params under id, removing id from scope — a parameter and an
// outer-scope binding of the same source name never coexist.
func (e *Environment) AddToParam(id string) (*Environment, string) {
	next := e.Extend()
	delete(next.scope, id)
	uname := freshUName(id)
	next.params[id] = &Var{UName: uname, Ty: UnconstType{}}
	return next, uname
}

// LookupUName locates the Var whose minted name is exactly uname,
// checking scope and params by source prefix and then confirming the
// uname itself matches. A plain Lookup(sourceOf(uname)) is not
// equivalent: if a later statement shadows the same source name with a
// new scope entry (e.g. a parameter reassigned inside its own
// function's body), Lookup would silently return that shadowing Var
// instead of the one uname actually names.
func (e *Environment) LookupUName(uname string) (*Var, bool) {
	source := sourceOf(uname)
	if v, ok := e.scope[source]; ok && v.UName == uname {
		return v, true
	}
	if v, ok := e.params[source]; ok && v.UName == uname {
		return v, true
	}
	return nil, false
}

// UpdateType locates the Var backing uname via LookupUName and mutates
// its Ty field in place.
func (e *Environment) UpdateType(uname string, ty Type) error {
	v, ok := e.LookupUName(uname)
	if !ok {
		return errUndefinedVariable(uname, nil)
	}
	v.Ty = ty
	return nil
}
