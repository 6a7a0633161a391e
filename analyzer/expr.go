package analyzer

import (
	"github.com/pontaoski/minic/ast"
	"github.com/pontaoski/minic/errors"
	"github.com/pontaoski/minic/scope"
	"github.com/pontaoski/minic/token"
	"github.com/pontaoski/minic/types"
)

// expr checks e, records its type and returns it. Errors are reported once;
// an expression whose operand is already invalid is invalid too without a
// further diagnostic.
func (a *Analyzer) expr(e ast.Expr) types.Type {
	return a.record(e, a.exprInternal(e))
}

func (a *Analyzer) exprInternal(e ast.Expr) types.Type {
	switch e := e.(type) {
	case *ast.IntLit:
		return types.Typ[types.Integer]
	case *ast.FloatLit:
		return types.Typ[types.Float]
	case *ast.CharLit:
		return types.Typ[types.Char]
	case *ast.StringLit:
		return types.Typ[types.String]
	case *ast.BoolLit:
		return types.Typ[types.Bool]
	case *ast.NullLit:
		return types.Typ[types.NullPointer]

	case *ast.Ident:
		t, err := a.scope.MatchVariable(e.Name)
		if err != nil {
			a.report(e, err)
			return invalid
		}
		return t

	case *ast.ParenExpr:
		return a.expr(e.X)

	case *ast.BinaryExpr:
		return a.binary(e)

	case *ast.PrefixExpr:
		return a.prefix(e)

	case *ast.PostfixExpr:
		x := a.expr(e.X)
		if types.IsInvalid(x) {
			return invalid
		}
		return a.incDec(e, e.Op, e.X, x)

	case *ast.CallExpr:
		return a.call(e)

	case *ast.IndexExpr:
		return a.index(e)

	case *ast.MemberExpr:
		return a.member(e)

	case *ast.ScopeExpr:
		ns := a.namespace(e.X)
		if ns == nil {
			return invalid
		}
		t, ok := ns.LookupVariable(e.Name)
		if !ok {
			a.report(e, errors.Undefined("variable", qualified(e)))
			return invalid
		}
		return t

	case *ast.TernaryExpr:
		return a.ternary(e)

	case *ast.SizeofExpr:
		a.sizeof(e)
		return types.Typ[types.Integer]
	}

	a.errorf(e, "unexpected expression %T", e)
	return invalid
}

func (a *Analyzer) binary(e *ast.BinaryExpr) types.Type {
	if e.Op == token.COMMA {
		a.expr(e.X)
		return a.expr(e.Y)
	}

	x := a.expr(e.X)
	y := a.expr(e.Y)
	if types.IsInvalid(x) || types.IsInvalid(y) {
		return invalid
	}

	if e.Op.IsAssign() {
		return a.assign(e, x, y)
	}

	if t := binaryResult(e.Op, x, y); t != nil {
		return t
	}
	a.errorf(e, "invalid operands to binary expression '%s' ('%s' and '%s')", e.Op, x, y)
	return invalid
}

// binaryResult returns the type of x op y, or nil if the operands are not
// valid for op.
func binaryResult(op token.Kind, x, y types.Type) types.Type {
	switch op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.POWER:
		if types.IsArithmetic(x) && types.IsArithmetic(y) {
			return types.Arithmetic(x, y)
		}
		if op == token.PLUS || op == token.MINUS {
			return pointerArithmetic(op, x, y)
		}

	case token.PERCENT:
		if types.IsIntegral(x) && types.IsIntegral(y) {
			return types.Typ[types.Integer]
		}

	case token.EQ, token.NE:
		if types.IsArithmetic(x) && types.IsArithmetic(y) {
			return types.Typ[types.Bool]
		}
		if comparablePointers(x, y) {
			return types.Typ[types.Bool]
		}

	case token.LT, token.GT, token.LE, token.GE:
		if types.IsArithmetic(x) && types.IsArithmetic(y) {
			return types.Typ[types.Bool]
		}
		if types.IsPointer(x) && types.IsPointer(y) && comparablePointers(x, y) {
			return types.Typ[types.Bool]
		}

	case token.AND_AND, token.OR_OR:
		if types.IsScalar(x) && types.IsScalar(y) {
			return types.Typ[types.Bool]
		}
	}
	return nil
}

// pointerArithmetic covers p + n, n + p, p - n and p - q.
func pointerArithmetic(op token.Kind, x, y types.Type) types.Type {
	px, py := types.IsPointer(x), types.IsPointer(y)
	switch {
	case px && types.IsIntegral(y):
		return types.Unqualified(x)
	case py && types.IsIntegral(x) && op == token.PLUS:
		return types.Unqualified(y)
	case px && py && op == token.MINUS && comparablePointers(x, y):
		return types.Typ[types.Integer]
	}
	return nil
}

func comparablePointers(x, y types.Type) bool {
	if types.IsNull(x) {
		return types.IsPointer(y) || types.IsNull(y)
	}
	if types.IsNull(y) {
		return types.IsPointer(x)
	}
	px, ok := types.Unqualified(x).(*types.Pointer)
	if !ok {
		return false
	}
	py, ok := types.Unqualified(y).(*types.Pointer)
	if !ok {
		return false
	}
	return types.Identical(types.Unqualified(px.Base), types.Unqualified(py.Base))
}

// lvalue reports whether e designates an object.
func (a *Analyzer) lvalue(e ast.Expr) bool {
	switch e := ast.Unparen(e).(type) {
	case *ast.Ident, *ast.IndexExpr, *ast.MemberExpr, *ast.ScopeExpr:
		return true
	case *ast.PrefixExpr:
		return e.Op == token.STAR || e.Op == token.INC || e.Op == token.DEC
	}
	return false
}

// modifiable reports, as a diagnostic, why the object e of type t cannot
// be written to.
func (a *Analyzer) modifiable(e ast.Expr, t types.Type) bool {
	switch {
	case !a.lvalue(e):
		a.errorf(e, "expression is not assignable")
	case types.IsConst(t):
		a.errorf(e, "cannot assign to '%s' of const-qualified type '%s'", ast.ExprString(e), t)
	default:
		if _, ok := types.Unqualified(t).(*types.Array); ok {
			a.errorf(e, "array type '%s' is not assignable", t)
			return false
		}
		return true
	}
	return false
}

func (a *Analyzer) assign(e *ast.BinaryExpr, x, y types.Type) types.Type {
	if !a.modifiable(e.X, x) {
		return invalid
	}
	if e.Op == token.ASSIGN {
		if !types.AssignableTo(y, x) {
			a.errorf(e, "cannot assign a value of type '%s' to '%s'", y, x)
			return invalid
		}
		return x
	}

	t := binaryResult(e.Op.BinaryOf(), x, y)
	if t == nil || !types.AssignableTo(t, x) {
		a.errorf(e, "invalid operands to compound assignment '%s' ('%s' and '%s')", e.Op, x, y)
		return invalid
	}
	return x
}

func (a *Analyzer) incDec(e ast.Expr, op token.Kind, operand ast.Expr, t types.Type) types.Type {
	if !types.IsArithmetic(t) && !types.IsPointer(t) {
		a.errorf(e, "cannot apply '%s' to a value of type '%s'", op, t)
		return invalid
	}
	if !a.modifiable(operand, t) {
		return invalid
	}
	return t
}

func (a *Analyzer) prefix(e *ast.PrefixExpr) types.Type {
	x := a.expr(e.X)
	if types.IsInvalid(x) {
		return invalid
	}

	switch e.Op {
	case token.INC, token.DEC:
		return a.incDec(e, e.Op, e.X, x)

	case token.PLUS, token.MINUS:
		if types.IsArithmetic(x) {
			return types.Arithmetic(x, x)
		}

	case token.NOT:
		if types.IsScalar(x) {
			return types.Typ[types.Bool]
		}

	case token.TILDE:
		if types.IsIntegral(x) {
			return types.Typ[types.Integer]
		}

	case token.STAR:
		switch u := types.Unqualified(x).(type) {
		case *types.Pointer:
			if types.IsVoid(u.Base) {
				a.errorf(e, "indirection of a pointer to void")
				return invalid
			}
			return u.Base
		case *types.Array:
			return u.Elem
		}
		a.errorf(e, "indirection requires a pointer operand ('%s' invalid)", x)
		return invalid

	case token.AMP:
		if !a.lvalue(e.X) {
			a.errorf(e, "cannot take the address of an rvalue of type '%s'", x)
			return invalid
		}
		return types.NewPointer(x)
	}

	a.errorf(e, "invalid argument type '%s' to unary expression '%s'", x, e.Op)
	return invalid
}

func (a *Analyzer) call(e *ast.CallExpr) types.Type {
	args := make([]types.Type, len(e.Args))
	ok := true
	for i, arg := range e.Args {
		args[i] = a.expr(arg)
		if types.IsInvalid(args[i]) {
			ok = false
		}
	}

	var (
		fn  *types.Func
		err error
	)
	switch f := ast.Unparen(e.Fun).(type) {
	case *ast.Ident:
		if !ok {
			return invalid
		}
		if t, verr := a.scope.MatchVariable(f.Name); verr == nil && !a.hasFunction(f.Name) {
			a.errorf(e.Fun, "called object of type '%s' is not a function", t)
			return invalid
		}
		fn, err = a.scope.MatchFunction(f.Name, args)
	case *ast.ScopeExpr:
		ns := a.namespace(f.X)
		if ns == nil || !ok {
			return invalid
		}
		fn, err = ns.MatchLocalFunction(f.Name, args)
		if err != nil && len(ns.LookupFunctions(f.Name)) == 0 {
			err = errors.Undefined("function", qualified(f))
		}
	default:
		t := a.expr(e.Fun)
		if !types.IsInvalid(t) {
			a.errorf(e.Fun, "called object of type '%s' is not a function", t)
		}
		return invalid
	}

	if err != nil {
		a.report(e, err)
		return invalid
	}
	a.record(e.Fun, fn)
	return fn.Result
}

func (a *Analyzer) hasFunction(name string) bool {
	for s := a.scope; s != nil; s = s.Parent() {
		if len(s.LookupFunctions(name)) > 0 {
			return true
		}
	}
	return false
}

// namespace resolves the left operand of '::' to a namespace scope.
func (a *Analyzer) namespace(e ast.Expr) *scope.Scope {
	switch e := e.(type) {
	case *ast.Ident:
		ns, err := a.scope.MatchNamespace(e.Name)
		if err != nil {
			a.report(e, err)
			return nil
		}
		return ns
	case *ast.ScopeExpr:
		outer := a.namespace(e.X)
		if outer == nil {
			return nil
		}
		ns, ok := outer.LookupNamespace(e.Name)
		if !ok {
			a.report(e, errors.Undefined("namespace", qualified(e)))
			return nil
		}
		return ns
	}
	a.errorf(e, "'%s' is not a namespace", ast.ExprString(e))
	return nil
}

func qualified(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.ScopeExpr:
		return qualified(e.X) + "::" + e.Name
	}
	return ast.ExprString(e)
}

func (a *Analyzer) index(e *ast.IndexExpr) types.Type {
	x := a.expr(e.X)
	i := a.expr(e.Index)
	if types.IsInvalid(x) || types.IsInvalid(i) {
		return invalid
	}

	var elem types.Type
	switch u := types.Unqualified(x).(type) {
	case *types.Array:
		elem = u.Elem
	case *types.Pointer:
		elem = u.Base
	default:
		a.errorf(e, "subscripted value of type '%s' is not an array or pointer", x)
		return invalid
	}
	if !types.IsIntegral(i) {
		a.errorf(e.Index, "array subscript of type '%s' is not an integer", i)
		return invalid
	}
	return elem
}

func (a *Analyzer) member(e *ast.MemberExpr) types.Type {
	x := a.expr(e.X)
	if types.IsInvalid(x) {
		return invalid
	}
	st, ok := types.Unqualified(x).(*types.Struct)
	if !ok {
		a.errorf(e, "member reference base type '%s' is not a structure", x)
		return invalid
	}
	t, ok := st.Member(e.Name)
	if !ok {
		a.errorf(e, "no member named '%s' in '%s'", e.Name, st)
		return invalid
	}
	if types.IsConst(x) && !types.IsInvalid(t) {
		return types.NewConst(t)
	}
	return t
}

func (a *Analyzer) ternary(e *ast.TernaryExpr) types.Type {
	a.cond(e.Cond, "conditional operator")
	x := a.expr(e.Then)
	y := a.expr(e.Else)
	if types.IsInvalid(x) || types.IsInvalid(y) {
		return invalid
	}

	switch {
	case types.IsArithmetic(x) && types.IsArithmetic(y):
		if types.Identical(types.Unqualified(x), types.Unqualified(y)) {
			return types.Unqualified(x)
		}
		return types.Arithmetic(x, y)
	case types.Identical(types.Unqualified(x), types.Unqualified(y)):
		return types.Unqualified(x)
	case types.IsNull(x) && types.IsPointer(y):
		return types.Unqualified(y)
	case types.IsPointer(x) && types.IsNull(y):
		return types.Unqualified(x)
	}
	a.errorf(e, "incompatible operand types ('%s' and '%s')", x, y)
	return invalid
}

// sizeof checks the operand of a sizeof expression. A parenthesized name
// that is not a variable is taken as a type name.
func (a *Analyzer) sizeof(e *ast.SizeofExpr) {
	if e.X == nil {
		t := a.resolve(e, e.Type)
		a.checkSized(e, t)
		return
	}
	if id, ok := ast.Unparen(e.X).(*ast.Ident); ok {
		if _, err := a.scope.MatchVariable(id.Name); err != nil {
			if t, err := a.scope.ResolveType(a.reg, id.Name); err == nil {
				a.checkSized(e, t)
				return
			}
		}
	}
	t := a.expr(e.X)
	if !types.IsInvalid(t) {
		a.checkSized(e, t)
	}
}

func (a *Analyzer) checkSized(e *ast.SizeofExpr, t types.Type) {
	if types.IsInvalid(t) {
		return
	}
	if _, err := a.reg.Sizeof(t); err != nil {
		a.errorf(e, "invalid application of 'sizeof': %s", err)
	}
}
