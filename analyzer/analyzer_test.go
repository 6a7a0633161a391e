package analyzer

import (
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/minic/ast"
	"github.com/pontaoski/minic/parser"
	"github.com/pontaoski/minic/scope"
	"github.com/pontaoski/minic/types"
)

// analyze parses src and runs the analyzer on it.
func analyze(t *testing.T, src string) (*Result, []string) {
	t.Helper()
	unit, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res := Analyze(types.NewRegistry(), unit)
	var msgs []string
	for _, d := range res.Diagnostics {
		msgs = append(msgs, d.Msg)
	}
	return res, msgs
}

func expectNoErrors(t *testing.T, src string) *Result {
	t.Helper()
	res, msgs := analyze(t, src)
	if len(msgs) > 0 {
		t.Errorf("unexpected errors:\n%s", strings.Join(msgs, "\n"))
	}
	return res
}

// expectErrors checks that the diagnostics contain each of the given
// substrings.
func expectErrors(t *testing.T, src string, want ...string) []string {
	t.Helper()
	_, msgs := analyze(t, src)
	if len(msgs) == 0 {
		t.Errorf("expected errors containing %v, got none", want)
		return nil
	}
	text := strings.Join(msgs, "\n")
	for _, w := range want {
		if !strings.Contains(text, w) {
			t.Errorf("expected error containing %q, got:\n%s", w, text)
		}
	}
	return msgs
}

// expectExactly checks the complete list of diagnostics.
func expectExactly(t *testing.T, src string, want ...string) {
	t.Helper()
	_, msgs := analyze(t, src)
	if len(msgs) != len(want) {
		t.Fatalf("got %d diagnostics, want %d:\n%s", len(msgs), len(want), strings.Join(msgs, "\n"))
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Errorf("diagnostic %d: got %q, want %q", i, msgs[i], want[i])
		}
	}
}

func TestFunctionRegistration(t *testing.T) {
	res := expectNoErrors(t, `int f(int a) { return a; }`)
	set := res.Global.LookupFunctions("f")
	if len(set) != 1 {
		t.Fatalf("expected one signature for f, got %d", len(set))
	}
	want := types.NewFunc(types.Typ[types.Integer], types.Typ[types.Integer])
	if !types.Identical(set[0], want) {
		t.Errorf("got %s, want %s", set[0], want)
	}
	if !res.OK() {
		t.Error("unit should be accepted")
	}
}

func TestRedefinition(t *testing.T) {
	expectExactly(t, "int x;\nint x;", "redefinition of 'x'")
	expectNoErrors(t, "int x; int main() { int x = 1; { int x = 2; } return x; }")
}

func TestScopeDelegation(t *testing.T) {
	expectNoErrors(t, `
int main() {
	int x = 1;
	{
		{ int y = x; }
	}
	return x;
}`)
	expectExactly(t, `
int main() {
	int x = 1;
	{ int y = x + z; }
	return x;
}`, "undefined variable 'z'")
	expectExactly(t, "int main() { { int inner = 1; } return inner; }", "undefined variable 'inner'")
}

func TestOverloads(t *testing.T) {
	expectNoErrors(t, `
int f(int a) { return a; }
int f(double d) { return 1; }
int g() { return f(1) + f(2.0); }
`)
	expectExactly(t, `
int f(int a) { return a; }
int f(double d) { return 1; }
int g() { return f('c'); }
`, "no matching overload for call to 'f'")
	expectExactly(t, `
int h(int a);
int h(const int a);
int k() { return h(1); }
`, "ambiguous call to 'h'")
	expectExactly(t, "int k() { return nothing(1); }", "undefined function 'nothing'")
	expectExactly(t, "int f(int a); int k() { return f(1, 2); }", "no matching overload for call to 'f'")
}

func TestFunctionDeclarations(t *testing.T) {
	expectNoErrors(t, `
int fact(int n) { return n <= 1 ? 1 : n * fact(n - 1); }
int proto(int);
int proto(int a) { return a; }
void nothing(void) {}
`)
	expectErrors(t, "int g() { return 1; } int g() { return 2; }", "redefinition of function 'g'")
	expectErrors(t, "int f(int); double f(int);", "conflicting types for 'f'")
	expectErrors(t, "int f(int a, int a) { return a; }", "redefinition of 'a'")
	expectErrors(t, "int f(void x);", "parameter 'x' declared void")
	expectErrors(t, "int outer() { int inner() { return 1; } return 0; }", "function definition of 'inner' is not allowed here")
}

func TestReturns(t *testing.T) {
	expectExactly(t, "void f() { return 1; }", "void function 'f' should not return a value")
	expectExactly(t, "int g() { return; }", "non-void function 'g' should return a value")
	expectExactly(t, "struct S { int a; }; int h(S s) { return s; }",
		"cannot return a value of type 'S' from function 'h' returning 'int'")
	expectExactly(t, "return 1;", "return statement outside of a function")
	expectNoErrors(t, "double f() { return 1; } int *p() { return nullptr; } void v() { return; }")
}

func TestBreakContinue(t *testing.T) {
	expectNoErrors(t, `
int main() {
	while (1) { break; }
	for (;;) continue;
	do { if (1) break; } while (0);
	return 0;
}`)
	expectExactly(t, "int main() { break; }", "'break' statement not in loop")
	expectExactly(t, "int main() { if (1) continue; return 0; }", "'continue' statement not in loop")
}

func TestStructs(t *testing.T) {
	expectNoErrors(t, `
struct P { int x; P *next; };
int main() {
	P p;
	p.x = 1;
	p.next = nullptr;
	return p.x;
}`)
	expectErrors(t, "struct Q { Q inner; };", "field 'inner' has incomplete type 'Q'")
	expectErrors(t, "struct S { int a; }; int main() { S s; return s.b; }", "no member named 'b' in 'S'")
	expectErrors(t, "struct S { int a; int a; };", "duplicate member 'a'")
	expectErrors(t, "struct S { int a; }; struct S { int b; };", "redefinition of 'S'")
	expectErrors(t, "int main() { int x = 1; return x.y; }", "member reference base type 'int' is not a structure")
	expectErrors(t, "Widget w;", "unknown type 'Widget'")
}

func TestStructuralStructTypes(t *testing.T) {
	expectNoErrors(t, `
struct A { int x; double y; };
struct B { double y; int x; };
int take(A a) { return a.x; }
int main() {
	B b;
	return take(b);
}`)
	expectErrors(t, `
struct A { int x; double y; };
struct C { int x; };
int take(A a) { return a.x; }
int main() {
	C c;
	return take(c);
}`, "no matching overload for call to 'take'")
}

func TestConstAndAssignment(t *testing.T) {
	expectExactly(t, "const int c = 1; int main() { c = 2; return 0; }",
		"cannot assign to 'c' of const-qualified type 'const int'")
	expectExactly(t, "const int d;", "const variable 'd' requires an initializer")
	expectExactly(t, "int main() { 1 = 2; return 0; }", "expression is not assignable")
	expectExactly(t, "struct S { int a; }; int main() { int x = 0; S s; x = s; return 0; }",
		"cannot assign a value of type 'S' to 'int'")
	expectExactly(t, "int a[2]; int b[2]; int main() { a = b; return 0; }", "array type 'int[2]' is not assignable")
	expectExactly(t, "void v;", "variable 'v' declared void")
	expectNoErrors(t, "int main() { int x = 1; x += 2; x *= 3.5; x++; --x; return x; }")
}

func TestPointers(t *testing.T) {
	expectNoErrors(t, `
int main() {
	int x = 1;
	int *p = &x;
	*p = 2;
	p = nullptr;
	const int *q = &x;
	if (p == q) return 1;
	int a[3] = {1, 2, 3};
	int *r = a;
	return *r + r[1] + a[2];
}`)
	expectErrors(t, "int main() { int x = 1; const int *q = &x; *q = 3; return 0; }", "const-qualified")
	expectErrors(t, "int main() { int x = 1; return *x; }", "indirection requires a pointer operand")
	expectErrors(t, "int main() { int *p = &1; return 0; }", "cannot take the address of an rvalue")
	expectErrors(t, "int main() { double *d = nullptr; int *p = d; return 0; }",
		"cannot initialize 'p' of type 'int*' with a value of type 'double*'")
}

func TestOperators(t *testing.T) {
	expectNoErrors(t, `
int main() {
	bool b = 1 < 2 && 2.5 >= 1;
	int m = 7 % 3;
	double d = 2 ** 0.5;
	int t = ~m;
	bool n = !b;
	int c = b ? 1 : 2;
	int comma = (1, 2);
	return m;
}`)
	expectErrors(t, `int main() { int s = "x" + 1; return 0; }`, "invalid operands to binary expression '+'")
	expectErrors(t, "int main() { double d = 1.5 % 2; return 0; }", "invalid operands to binary expression '%'")
	expectErrors(t, "struct S { int a; }; int main() { S s; if (s) return 1; return 0; }",
		"if condition of type 'S' is not a scalar")
	expectErrors(t, "struct S { int a; }; int main() { S s; return 1 ? s : 2; }", "incompatible operand types")
	expectErrors(t, "int main() { int x = 1; return x(); }", "called object of type 'int' is not a function")
}

func TestArrays(t *testing.T) {
	expectNoErrors(t, `
int a[2 + 1] = {1, 2, 3};
int b[] = {1, 2};
char buf[sizeof(long) * 2];
int main() { a[0] = b[1]; return a[2]; }
`)
	expectExactly(t, "int a[3] = {1, 2, 3, 4};", "too many initializers for array 'a' of size 3")
	expectExactly(t, "int n = 3; int b[n];", "not a constant expression")
	expectExactly(t, "int c[0];", "array 'c' must have a positive size")
	expectExactly(t, "int c[1.5];", "size of array 'c' has non-integer type")
	expectExactly(t, "int g[2.0 ** 5000];", "floating point overflow in constant expression")
	expectExactly(t, "int d[];", "array 'd' has unknown size")
	expectExactly(t, "struct S { int a; }; S s; int e[2] = {1, s};",
		"cannot initialize an element of 'e' of type 'int' with a value of type 'S'")
	expectExactly(t, "int f[2]; int main() { return f[1.5]; }", "array subscript of type 'double' is not an integer")
}

func TestStaticAssert(t *testing.T) {
	expectNoErrors(t, `
static_assert(sizeof(long) == 8, "long is 64 bits");
struct S { int a; char b; };
static_assert(sizeof(S) == 5);
int main() { static_assert(2 ** 3 == 8, "pow"); return 0; }
`)
	expectExactly(t, `static_assert(1 + 1 == 3, "math is broken");`, "static assertion failed: math is broken")
	expectExactly(t, `static_assert(0);`, "static assertion failed")
	expectExactly(t, `int x = 1; static_assert(x, "m");`, "not a constant expression")
	expectExactly(t, `static_assert(1 / 0, "m");`, "division by zero in constant expression")
}

func TestNamespaces(t *testing.T) {
	expectNoErrors(t, `
namespace N {
	int k = 2;
	int sq(int x) { return x * x; }
}
namespace N { int m = k; }
int main() { return N::sq(N::k) + N::m; }
`)
	expectExactly(t, "namespace N { int k = 1; } int main() { return N::missing; }", "undefined variable 'N::missing'")
	expectExactly(t, "int main() { return M::x; }", "undefined namespace 'M'")
	expectExactly(t, "int g(int a); namespace N { int k = 1; } int main() { return N::g(1); }", "undefined function 'N::g'")
	expectExactly(t, "namespace N { int k = 1; } int main() { return k; }", "undefined variable 'k'")
}

func TestEveryTopLevelItemIsVisited(t *testing.T) {
	expectExactly(t, "int a = b;\nint c = d;\nint e = 1;",
		"undefined variable 'b'",
		"undefined variable 'd'")
}

func TestInvalidOperandsDoNotCascade(t *testing.T) {
	expectExactly(t, `
int main() {
	int y = missing + 1 * 2;
	int z = -(missing2) < y ? y : 0;
	return y + z;
}`, "undefined variable 'missing'", "undefined variable 'missing2'")
}

func TestDiagnosticOffsets(t *testing.T) {
	res, _ := analyze(t, "int x = 1;\nint y = nope;")
	if len(res.Diagnostics) != 1 {
		t.Fatalf("unexpected diagnostics %s", repr.String(res.Diagnostics))
	}
	// int(0) x(1) =(2) 1(3) ;(4) int(5) y(6) =(7) nope(8)
	if got := res.Diagnostics[0].Offset; got != 8 {
		t.Errorf("got offset %d, want 8", got)
	}
}

func TestInfo(t *testing.T) {
	res := expectNoErrors(t, "struct S { int a; }; S s; double d = 1 + 2.5; int main() { return s.a; }")

	var sum *ast.BinaryExpr
	for e := range res.Info.Types {
		if b, ok := e.(*ast.BinaryExpr); ok {
			sum = b
		}
	}
	if sum == nil {
		t.Fatal("binary expression not recorded")
	}
	if got := res.Info.TypeOf(sum); !types.Identical(got, types.Typ[types.Float]) {
		t.Errorf("1 + 2.5: got %s, want double", got)
	}

	var structs, funcs int
	for n, typ := range res.Info.Defs {
		switch n.(type) {
		case *ast.StructDecl:
			if _, ok := typ.(*types.Struct); ok {
				structs++
			}
		case *ast.FuncDecl:
			if _, ok := typ.(*types.Func); ok {
				funcs++
			}
		}
	}
	if structs != 1 || funcs != 1 {
		t.Errorf("got %d struct and %d func definitions", structs, funcs)
	}

	var fnScopes int
	for _, s := range res.Info.Scopes {
		if s.Kind() == scope.Function {
			fnScopes++
		}
	}
	// The function and its body share one scope.
	if fnScopes != 2 {
		t.Errorf("got %d function scope entries, want 2", fnScopes)
	}
}

func TestSharedGlobal(t *testing.T) {
	reg := types.NewRegistry()
	a := New(reg)

	first, err := parser.ParseString("int helper(int x) { return x; }")
	if err != nil {
		t.Fatal(err)
	}
	second, err := parser.ParseString("int main() { return helper(1); }")
	if err != nil {
		t.Fatal(err)
	}
	if res := a.Analyze(first); !res.OK() {
		t.Fatalf("unexpected diagnostics %s", repr.String(res.Diagnostics))
	}
	if res := a.Analyze(second); !res.OK() {
		t.Fatalf("declarations of earlier units should be visible: %s", repr.String(res.Diagnostics))
	}

	global := scope.New(nil, scope.Global, "")
	global.PushVariable("outside", types.Typ[types.Integer])
	third, _ := parser.ParseString("int y = outside;")
	if res := New(reg, WithGlobal(global)).Analyze(third); !res.OK() {
		t.Errorf("expected the provided global scope to be used: %s", repr.String(res.Diagnostics))
	}
}

func TestClosingGlobalScopePanics(t *testing.T) {
	a := New(types.NewRegistry())
	a.scope = a.global
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	a.closeScope()
}

func TestRegistryAliases(t *testing.T) {
	reg := types.NewRegistry()
	if err := reg.Alias("i32", "int"); err != nil {
		t.Fatal(err)
	}
	unit, err := parser.ParseString("i32 x = 1; int f(int a) { return a; } int y = f(x);")
	if err != nil {
		t.Fatal(err)
	}
	if res := Analyze(reg, unit); !res.OK() {
		t.Errorf("unexpected diagnostics %s", repr.String(res.Diagnostics))
	}
}
