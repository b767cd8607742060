package analyzer

import (
	"strconv"
	"testing"
)

func TestRootEnvironmentBuiltins(t *testing.T) {
	env := RootEnvironment()

	eul, ok := env.Lookup("EUL")
	if !ok {
		t.Fatalf("expected EUL in root environment")
	}
	if _, ok := eul.Ty.(NumType); !ok {
		t.Fatalf("expected EUL : Num, got %s", eul.Ty.Name())
	}

	printVar, ok := env.Lookup("print")
	if !ok {
		t.Fatalf("expected print in root environment")
	}
	ft, ok := printVar.Ty.(FuncType)
	if !ok {
		t.Fatalf("expected print : Func, got %s", printVar.Ty.Name())
	}
	if len(ft.Params) != 1 {
		t.Fatalf("expected print to take 1 param, got %d", len(ft.Params))
	}
	if _, ok := ft.Params[0].(AnyType); !ok {
		t.Fatalf("expected print's param to be Any, got %s", ft.Params[0].Name())
	}
	if _, ok := ft.Ret.(VoidType); !ok {
		t.Fatalf("expected print's return to be Void, got %s", ft.Ret.Name())
	}
}

func TestAddToScopeShadowsAndMintsUniqueName(t *testing.T) {
	env := NewEnvironment()
	env, uname1 := env.AddToScope("x", NumType{})
	env, uname2 := env.AddToScope("x", StringType{})

	if uname1 == uname2 {
		t.Fatalf("expected distinct unames, got %q twice", uname1)
	}
	v, ok := env.Lookup("x")
	if !ok {
		t.Fatalf("expected x in scope")
	}
	if v.UName != uname2 {
		t.Fatalf("expected shadowing binding %q, got %q", uname2, v.UName)
	}
	if _, ok := v.Ty.(StringType); !ok {
		t.Fatalf("expected shadowed x : String, got %s", v.Ty.Name())
	}
}

func TestAddToParamRemovesScopeBinding(t *testing.T) {
	env := NewEnvironment()
	env, _ = env.AddToScope("x", NumType{})
	env, uname := env.AddToParam("x")

	v, ok := env.Lookup("x")
	if !ok {
		t.Fatalf("expected x to still resolve via params")
	}
	if v.UName != uname {
		t.Fatalf("expected param binding %q, got %q", uname, v.UName)
	}
	if _, ok := env.params["x"]; !ok {
		t.Fatalf("expected x present in params map")
	}
	if _, ok := env.scope["x"]; ok {
		t.Fatalf("expected x removed from scope map")
	}
}

func TestUpdateTypeMutatesSharedVar(t *testing.T) {
	env := NewEnvironment()
	env, uname := env.AddToScope("x", UnconstType{})
	branched := env.Extend()

	if err := env.UpdateType(uname, NumType{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, _ := branched.Lookup("x")
	if _, ok := v.Ty.(NumType); !ok {
		t.Fatalf("expected mutation visible through extended environment, got %s", v.Ty.Name())
	}
}

func TestUpdateTypeUndefinedVariable(t *testing.T) {
	env := NewEnvironment()
	if err := env.UpdateType("nonexistent_1", NumType{}); err == nil {
		t.Fatalf("expected UndefinedVariable error")
	}
}

func TestUniqueNamesAreMonotonicAndRecoverable(t *testing.T) {
	env := NewEnvironment()
	env, u1 := env.AddToScope("foo", NumType{})
	_, u2 := env.AddToScope("foo", NumType{})

	if sourceOf(u1) != "foo" || sourceOf(u2) != "foo" {
		t.Fatalf("expected both unames to recover source %q, got %q and %q", "foo", u1, u2)
	}
	if u1 == u2 {
		t.Fatalf("expected distinct unames for repeated introductions of %q", "foo")
	}
	n1, _ := strconv.Atoi(u1[len(sourceOf(u1))+1:])
	n2, _ := strconv.Atoi(u2[len(sourceOf(u2))+1:])
	if n2 <= n1 {
		t.Fatalf("expected %q to be minted after %q", u2, u1)
	}
}
