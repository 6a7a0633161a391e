package analyzer

import (
	"go/constant"

	"github.com/pontaoski/minic/ast"
	"github.com/pontaoski/minic/scope"
	"github.com/pontaoski/minic/types"
)

func (a *Analyzer) decl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.VarDecl:
		a.varDecl(d)
	case *ast.FuncDecl:
		a.funcDecl(d)
	case *ast.StructDecl:
		a.structDecl(d)
	case *ast.ArrayDecl:
		a.arrayDecl(d)
	case *ast.NamespaceDecl:
		a.namespaceDecl(d)
	case *ast.ParamDecl:
		a.errorf(d, "parameter declaration outside of a function")
	default:
		a.errorf(d, "unexpected declaration %T", d)
	}
}

func (a *Analyzer) varDecl(d *ast.VarDecl) {
	base := a.resolve(d, d.Type)
	for _, v := range d.Vars {
		name := v.Declarator.Ident()
		t := declared(base, v.Declarator, d.Const)

		if types.IsVoid(t) {
			a.errorf(v, "variable '%s' declared void", name)
			t = invalid
		}

		if v.Init != nil {
			it := a.expr(v.Init)
			if !types.IsInvalid(t) && !types.IsInvalid(it) && !types.AssignableTo(it, t) {
				a.errorf(v.Init, "cannot initialize '%s' of type '%s' with a value of type '%s'", name, t, it)
			}
		} else if d.Const && !types.IsInvalid(t) && !types.IsPointer(t) {
			a.errorf(v, "const variable '%s' requires an initializer", name)
		}

		a.info.Defs[v] = t
		if err := a.scope.PushVariable(name, t); err != nil {
			a.report(v, err)
		}
	}
}

func (a *Analyzer) funcDecl(d *ast.FuncDecl) {
	name := d.Name.Ident()
	if k := a.scope.Kind(); d.Body != nil && (k == scope.Function || k == scope.Block) {
		a.errorf(d, "function definition of '%s' is not allowed here", name)
		return
	}

	result := declared(a.resolve(d, d.Type), d.Name, false)

	enclosing := a.scope
	if d.Body != nil {
		a.openScope(d, scope.Function, name)
		a.info.Scopes[d.Body] = a.scope
	}

	var params []types.Type
	for _, p := range d.Params {
		params = append(params, a.param(p, d.Body != nil))
	}

	fn := types.NewFunc(result, params...)
	fn = a.declareFunc(d, enclosing, name, fn)
	a.info.Defs[d] = fn

	if d.Body == nil {
		return
	}

	a.fn, a.fnName = fn, name
	a.stmts(d.Body.List)
	a.fn, a.fnName = nil, ""
	a.closeScope()
}

// param resolves one parameter and, for definitions, binds it in the
// function scope.
func (a *Analyzer) param(p *ast.ParamDecl, bind bool) types.Type {
	name := p.Var.Declarator.Ident()
	t := declared(a.resolve(p, p.Type), p.Var.Declarator, p.Const)
	if types.IsVoid(t) {
		a.errorf(p, "parameter '%s' declared void", name)
		t = invalid
	}
	if p.Var.Init != nil {
		a.errorf(p.Var.Init, "default arguments are not supported")
	}
	a.info.Defs[p.Var] = t
	if bind && name != "" {
		if err := a.scope.PushVariable(name, t); err != nil {
			a.report(p, err)
		}
	}
	return t
}

// declareFunc adds fn to the overload set of name in s. A redeclaration
// with the same parameters reuses the existing signature.
func (a *Analyzer) declareFunc(d *ast.FuncDecl, s *scope.Scope, name string, fn *types.Func) *types.Func {
	for _, prev := range s.LookupFunctions(name) {
		if !sameParams(prev, fn) {
			continue
		}
		if !types.Identical(prev.Result, fn.Result) {
			a.errorf(d, "conflicting types for '%s'", name)
			return fn
		}
		if d.Body != nil {
			if a.defined[prev] {
				a.errorf(d, "redefinition of function '%s'", name)
			}
			a.defined[prev] = true
		}
		return prev
	}
	s.PushFunction(name, fn)
	if d.Body != nil {
		a.defined[fn] = true
	}
	return fn
}

func sameParams(x, y *types.Func) bool {
	if len(x.Params) != len(y.Params) {
		return false
	}
	for i := range x.Params {
		if !types.Identical(x.Params[i], y.Params[i]) {
			return false
		}
	}
	return true
}

func (a *Analyzer) structDecl(d *ast.StructDecl) {
	st := types.NewStruct(d.Name)
	if err := a.scope.PushStruct(d.Name, st); err != nil {
		a.report(d, err)
	}
	a.info.Defs[d] = st

	for _, m := range d.Members {
		base := a.resolve(m, m.Type)
		for _, v := range m.Vars {
			name := v.Declarator.Ident()
			t := declared(base, v.Declarator, m.Const)
			switch {
			case types.IsVoid(t):
				a.errorf(v, "field '%s' has incomplete type 'void'", name)
				t = invalid
			case types.Unqualified(t) == st:
				a.errorf(v, "field '%s' has incomplete type '%s'", name, d.Name)
				t = invalid
			}
			if v.Init != nil {
				a.errorf(v.Init, "field '%s' cannot have an initializer", name)
			}
			a.info.Defs[v] = t
			if !st.AddMember(name, t) {
				a.errorf(v, "duplicate member '%s'", name)
			}
		}
	}
}

func (a *Analyzer) arrayDecl(d *ast.ArrayDecl) {
	elem := a.resolve(d, d.Type)
	if types.IsVoid(elem) {
		a.errorf(d, "array '%s' has element type void", d.Name)
		elem = invalid
	}
	if d.Const && !types.IsInvalid(elem) {
		elem = types.NewConst(elem)
	}

	n := int64(-1)
	switch {
	case d.Size != nil:
		n = a.arraySize(d)
	case d.HasInit:
		n = int64(len(d.Init))
	default:
		a.errorf(d, "array '%s' has unknown size", d.Name)
	}
	if n == 0 {
		a.errorf(d, "array '%s' must have a positive size", d.Name)
	}
	if n > 0 && int64(len(d.Init)) > n {
		a.errorf(d.Init[n], "too many initializers for array '%s' of size %d", d.Name, n)
	}

	for _, e := range d.Init {
		et := a.expr(e)
		if !types.IsInvalid(elem) && !types.IsInvalid(et) && !types.AssignableTo(et, elem) {
			a.errorf(e, "cannot initialize an element of '%s' of type '%s' with a value of type '%s'", d.Name, elem, et)
		}
	}

	var t types.Type = invalid
	if !types.IsInvalid(elem) {
		t = types.NewArray(elem, d.Size, n)
	}
	a.info.Defs[d] = t
	if err := a.scope.PushVariable(d.Name, t); err != nil {
		a.report(d, err)
	}
}

// arraySize evaluates the size of d. It returns -1 after reporting an error
// and 0 for sizes that are not positive.
func (a *Analyzer) arraySize(d *ast.ArrayDecl) int64 {
	v, err := EvalConst(d.Size, a.reg, a.scope)
	if err != nil {
		a.report(d.Size, err)
		return -1
	}
	if v.Kind() != constant.Int {
		a.errorf(d.Size, "size of array '%s' has non-integer type", d.Name)
		return -1
	}
	n, exact := constant.Int64Val(v)
	if !exact {
		a.errorf(d.Size, "array '%s' is too large", d.Name)
		return -1
	}
	if n <= 0 {
		return 0
	}
	return n
}

func (a *Analyzer) namespaceDecl(d *ast.NamespaceDecl) {
	switch a.scope.Kind() {
	case scope.Function, scope.Block:
		a.errorf(d, "namespace '%s' can only be declared at namespace scope", d.Name)
		return
	}

	ns, ok := a.scope.LookupNamespace(d.Name)
	if !ok {
		ns = scope.New(a.scope, scope.Namespace, d.Name)
		if err := a.scope.PushNamespace(d.Name, ns); err != nil {
			a.report(d, err)
		}
	}
	a.enter(d, ns)
	for _, inner := range d.Decls {
		a.decl(inner)
	}
	a.closeScope()
}
