package scope

import (
	"strings"
	"testing"

	"github.com/pontaoski/minic/types"
)

var (
	tInt    = types.Typ[types.Integer]
	tDouble = types.Typ[types.Float]
	tChar   = types.Typ[types.Char]
)

func TestVariableDelegation(t *testing.T) {
	global := New(nil, Global, "")
	if err := global.PushVariable("x", tInt); err != nil {
		t.Fatal(err)
	}
	fn := New(global, Function, "f")
	block := New(fn, Block, "")

	got, err := block.MatchVariable("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !types.Identical(got, tInt) {
		t.Errorf("got %s, want int", got)
	}

	_, err = block.MatchVariable("y")
	if err == nil || err.Error() != "undefined variable 'y'" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestShadowingAndRedefinition(t *testing.T) {
	global := New(nil, Global, "")
	if err := global.PushVariable("x", tInt); err != nil {
		t.Fatal(err)
	}
	if err := global.PushVariable("x", tDouble); err == nil || !strings.Contains(err.Error(), "redefinition of 'x'") {
		t.Errorf("expected redefinition error, got %v", err)
	}

	inner := New(global, Block, "")
	if err := inner.PushVariable("x", tDouble); err != nil {
		t.Errorf("shadowing in a nested scope should be allowed: %v", err)
	}
	got, _ := inner.MatchVariable("x")
	if !types.Identical(got, tDouble) {
		t.Errorf("inner binding should win, got %s", got)
	}
}

func TestStructs(t *testing.T) {
	global := New(nil, Global, "")
	s := types.NewStruct("S")
	if err := global.PushStruct("S", s); err != nil {
		t.Fatal(err)
	}
	if err := global.PushStruct("S", types.NewStruct("S")); err == nil {
		t.Error("expected redefinition error")
	}
	got, err := New(global, Block, "").MatchStruct("S")
	if err != nil || got != s {
		t.Errorf("got %v, %v", got, err)
	}
	if _, err := global.MatchStruct("T"); err == nil || err.Error() != "undefined struct 'T'" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestOverloadResolution(t *testing.T) {
	global := New(nil, Global, "")
	fInt := types.NewFunc(tInt, tInt)
	fDouble := types.NewFunc(tInt, tDouble)
	global.PushFunction("f", fInt)
	global.PushFunction("f", fDouble)

	got, err := global.MatchFunction("f", []types.Type{tInt})
	if err != nil || got != fInt {
		t.Errorf("expected f(int), got %v, %v", got, err)
	}
	got, err = global.MatchFunction("f", []types.Type{types.NewConst(tDouble)})
	if err != nil || got != fDouble {
		t.Errorf("expected f(double), got %v, %v", got, err)
	}

	_, err = global.MatchFunction("f", []types.Type{tChar})
	if err == nil || err.Error() != "no matching overload for call to 'f'" {
		t.Errorf("unexpected error %v", err)
	}
	_, err = global.MatchFunction("f", nil)
	if err == nil || err.Error() != "no matching overload for call to 'f'" {
		t.Errorf("arity mismatch: unexpected error %v", err)
	}

	global.PushFunction("f", types.NewFunc(types.Typ[types.Void], tInt))
	_, err = global.MatchFunction("f", []types.Type{tInt})
	if err == nil || err.Error() != "ambiguous call to 'f'" {
		t.Errorf("unexpected error %v", err)
	}

	_, err = global.MatchFunction("g", nil)
	if err == nil || err.Error() != "undefined function 'g'" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestInnerOverloadSetHidesOuter(t *testing.T) {
	global := New(nil, Global, "")
	global.PushFunction("f", types.NewFunc(tInt, tInt))
	inner := New(global, Block, "")
	inner.PushFunction("f", types.NewFunc(tInt, tDouble))

	if _, err := inner.MatchFunction("f", []types.Type{tInt}); err == nil {
		t.Error("the inner overload set should hide the outer one")
	}
	if _, err := New(global, Block, "").MatchFunction("f", []types.Type{tInt}); err != nil {
		t.Errorf("sibling scope should see the global set: %v", err)
	}
}

func TestNamespaces(t *testing.T) {
	global := New(nil, Global, "")
	ns := New(global, Namespace, "N")
	if err := global.PushNamespace("N", ns); err != nil {
		t.Fatal(err)
	}
	if err := ns.PushVariable("v", tInt); err != nil {
		t.Fatal(err)
	}
	got, err := New(global, Block, "").MatchNamespace("N")
	if err != nil || got != ns {
		t.Fatalf("got %v, %v", got, err)
	}
	if _, ok := got.LookupVariable("v"); !ok {
		t.Error("expected v in namespace scope")
	}
	if _, ok := global.LookupVariable("v"); ok {
		t.Error("namespace members should not leak into the enclosing scope")
	}
}

func TestResolveType(t *testing.T) {
	reg := types.NewRegistry()
	global := New(nil, Global, "")
	point := types.NewStruct("Point")
	global.PushStruct("Point", point)

	got, err := New(global, Block, "").ResolveType(reg, "Point")
	if err != nil || got != point {
		t.Errorf("got %v, %v", got, err)
	}
	got, err = global.ResolveType(reg, "long")
	if err != nil || !types.Identical(got, tInt) {
		t.Errorf("got %v, %v", got, err)
	}
	if _, err := global.ResolveType(reg, "Widget"); err == nil || err.Error() != "unknown type 'Widget'" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestString(t *testing.T) {
	global := New(nil, Global, "")
	global.PushVariable("x", tInt)
	global.PushFunction("f", types.NewFunc(tInt, tInt))
	out := global.String()
	for _, want := range []string{"scope global", "x: int", "func f: int(int)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestMatchLocalFunction(t *testing.T) {
	global := New(nil, Global, "")
	global.PushFunction("f", types.NewFunc(tInt, tInt))
	ns := New(global, Namespace, "N")

	if _, err := ns.MatchFunction("f", []types.Type{tInt}); err != nil {
		t.Errorf("unqualified lookup should reach the global set: %v", err)
	}
	if _, err := ns.MatchLocalFunction("f", []types.Type{tInt}); err == nil || err.Error() != "undefined function 'f'" {
		t.Errorf("qualified lookup must stay in the namespace, got %v", err)
	}
	ns.PushFunction("f", types.NewFunc(tDouble, tDouble))
	got, err := ns.MatchLocalFunction("f", []types.Type{tDouble})
	if err != nil || !types.Identical(got.Result, tDouble) {
		t.Errorf("got %v, %v", got, err)
	}
}
