// Package analyzer implements the semantic pass over a parsed translation
// unit. It resolves names through a chain of scopes, checks types
// structurally and collects every diagnostic it finds instead of stopping
// at the first one.
package analyzer

import (
	"github.com/pontaoski/minic/ast"
	"github.com/pontaoski/minic/errors"
	"github.com/pontaoski/minic/scope"
	"github.com/pontaoski/minic/types"
)

var invalid types.Type = types.Typ[types.Invalid]

// Info holds the annotations recorded while analyzing.
type Info struct {
	// Types maps every checked expression to its static type. Expressions
	// that failed to check map to the invalid type.
	Types map[ast.Expr]types.Type

	// Defs maps declaring nodes to the type they declare: init-declarators
	// of variables and parameters, functions, structs and arrays.
	Defs map[ast.Node]types.Type

	// Scopes maps functions, blocks, for statements and namespaces to the
	// scope they open.
	Scopes map[ast.Node]*scope.Scope
}

func newInfo() *Info {
	return &Info{
		Types:  make(map[ast.Expr]types.Type),
		Defs:   make(map[ast.Node]types.Type),
		Scopes: make(map[ast.Node]*scope.Scope),
	}
}

// TypeOf returns the recorded type of e, or nil.
func (i *Info) TypeOf(e ast.Expr) types.Type {
	return i.Types[e]
}

// Result is the outcome of analyzing one translation unit.
type Result struct {
	Diagnostics []*errors.SemanticError
	Info        *Info
	Global      *scope.Scope
}

// OK reports whether the unit was accepted.
func (r *Result) OK() bool {
	return len(r.Diagnostics) == 0
}

type Option func(*Analyzer)

// WithGlobal makes the analyzer declare into an existing global scope, so
// several units can see each other's declarations.
func WithGlobal(global *scope.Scope) Option {
	return func(a *Analyzer) {
		a.global = global
	}
}

// Analyzer is the semantic checker. One Analyzer may analyze several units
// in sequence; they share its global scope.
type Analyzer struct {
	reg    *types.Registry
	global *scope.Scope

	// per-unit state
	scope *scope.Scope
	info  *Info
	diags []*errors.SemanticError

	// function context
	fn     *types.Func
	fnName string

	loopDepth int

	// signatures that already have a body
	defined map[*types.Func]bool
}

func New(reg *types.Registry, opts ...Option) *Analyzer {
	a := &Analyzer{
		reg:     reg,
		defined: make(map[*types.Func]bool),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.global == nil {
		a.global = scope.New(nil, scope.Global, "")
	}
	return a
}

// Global returns the global scope declarations are made in.
func (a *Analyzer) Global() *scope.Scope {
	return a.global
}

// Analyze checks every top-level item of unit and returns the collected
// diagnostics. The unit is accepted iff no diagnostic was reported.
func (a *Analyzer) Analyze(unit *ast.TranslationUnit) *Result {
	a.scope = a.global
	a.info = newInfo()
	a.diags = nil
	a.fn = nil
	a.loopDepth = 0

	a.info.Scopes[unit] = a.global
	for _, item := range unit.Items {
		a.stmt(item)
	}
	if a.scope != a.global {
		panic("analyzer: unbalanced scopes after analysis")
	}

	return &Result{
		Diagnostics: a.diags,
		Info:        a.info,
		Global:      a.global,
	}
}

// Analyze checks unit against a fresh global scope.
func Analyze(reg *types.Registry, unit *ast.TranslationUnit) *Result {
	return New(reg).Analyze(unit)
}

func (a *Analyzer) errorf(n ast.Node, format string, args ...interface{}) {
	a.diags = append(a.diags, errors.Semantic(n.Pos(), format, args...))
}

// report records err, locating it at n unless it already carries an offset.
func (a *Analyzer) report(n ast.Node, err error) {
	if serr, ok := err.(*errors.SemanticError); ok {
		a.diags = append(a.diags, serr.At(n.Pos()))
		return
	}
	a.errorf(n, "%s", err)
}

func (a *Analyzer) openScope(n ast.Node, kind scope.Kind, name string) *scope.Scope {
	s := scope.New(a.scope, kind, name)
	a.enter(n, s)
	return s
}

func (a *Analyzer) enter(n ast.Node, s *scope.Scope) {
	a.scope = s
	a.info.Scopes[n] = s
}

func (a *Analyzer) closeScope() {
	if a.scope == a.global || a.scope.Parent() == nil {
		panic("analyzer: closing the global scope")
	}
	a.scope = a.scope.Parent()
}

// resolve turns a declared type name into a type, reporting unknown names.
func (a *Analyzer) resolve(n ast.Node, name string) types.Type {
	t, err := a.scope.ResolveType(a.reg, name)
	if err != nil {
		a.report(n, err)
		return invalid
	}
	return t
}

// declared applies a declarator and const qualifier to a base type. The
// qualifier binds to the base type, so "const int *p" points to const int.
func declared(base types.Type, d ast.Declarator, isConst bool) types.Type {
	if types.IsInvalid(base) {
		return invalid
	}
	if isConst {
		base = types.NewConst(base)
	}
	if _, ok := d.(*ast.PointerDeclarator); ok {
		return types.NewPointer(base)
	}
	return base
}

func (a *Analyzer) record(e ast.Expr, t types.Type) types.Type {
	a.info.Types[e] = t
	return t
}
