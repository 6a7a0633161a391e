package analyzer

import (
	"go/constant"

	"github.com/pontaoski/minic/ast"
	"github.com/pontaoski/minic/scope"
	"github.com/pontaoski/minic/types"
)

func (a *Analyzer) stmts(list []ast.Stmt) {
	for _, s := range list {
		a.stmt(s)
	}
}

func (a *Analyzer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.EmptyStmt:

	case *ast.DeclStmt:
		a.decl(s.Decl)

	case *ast.ExprStmt:
		a.expr(s.X)

	case *ast.CompoundStmt:
		a.openScope(s, scope.Block, "")
		a.stmts(s.List)
		a.closeScope()

	case *ast.IfStmt:
		a.cond(s.Cond, "if")
		a.body(s.Then)
		if s.Else != nil {
			a.body(s.Else)
		}

	case *ast.WhileStmt:
		a.cond(s.Cond, "while")
		a.loop(s.Body)

	case *ast.DoWhileStmt:
		a.loop(s.Body)
		a.cond(s.Cond, "do-while")

	case *ast.ForStmt:
		a.openScope(s, scope.Block, "")
		if s.Init != nil {
			a.stmt(s.Init)
		}
		if s.Cond != nil {
			a.cond(s.Cond, "for")
		}
		if s.Post != nil {
			a.expr(s.Post)
		}
		a.loop(s.Body)
		a.closeScope()

	case *ast.ReturnStmt:
		a.returnStmt(s)

	case *ast.BreakStmt:
		if a.loopDepth == 0 {
			a.errorf(s, "'break' statement not in loop")
		}

	case *ast.ContinueStmt:
		if a.loopDepth == 0 {
			a.errorf(s, "'continue' statement not in loop")
		}

	case *ast.StaticAssertStmt:
		a.staticAssert(s)

	default:
		a.errorf(s, "unexpected statement %T", s)
	}
}

// body checks a branch or loop body. A declaration used directly as the
// body gets a scope of its own.
func (a *Analyzer) body(s ast.Stmt) {
	if _, ok := s.(*ast.DeclStmt); !ok {
		a.stmt(s)
		return
	}
	a.openScope(s, scope.Block, "")
	a.stmt(s)
	a.closeScope()
}

func (a *Analyzer) loop(s ast.Stmt) {
	a.loopDepth++
	a.body(s)
	a.loopDepth--
}

func (a *Analyzer) cond(e ast.Expr, what string) {
	t := a.expr(e)
	if !types.IsInvalid(t) && !types.IsScalar(t) {
		a.errorf(e, "%s condition of type '%s' is not a scalar", what, t)
	}
}

func (a *Analyzer) returnStmt(s *ast.ReturnStmt) {
	if a.fn == nil {
		a.errorf(s, "return statement outside of a function")
		if s.X != nil {
			a.expr(s.X)
		}
		return
	}

	result := a.fn.Result
	if s.X == nil {
		if !types.IsVoid(result) && !types.IsInvalid(result) {
			a.errorf(s, "non-void function '%s' should return a value", a.fnName)
		}
		return
	}

	t := a.expr(s.X)
	switch {
	case types.IsInvalid(t) || types.IsInvalid(result):
	case types.IsVoid(result):
		a.errorf(s.X, "void function '%s' should not return a value", a.fnName)
	case !types.AssignableTo(t, result):
		a.errorf(s.X, "cannot return a value of type '%s' from function '%s' returning '%s'", t, a.fnName, result)
	}
}

func (a *Analyzer) staticAssert(s *ast.StaticAssertStmt) {
	v, err := EvalConst(s.Cond, a.reg, a.scope)
	if err != nil {
		a.report(s.Cond, err)
		return
	}
	if truthy(v) {
		return
	}
	if s.Message == "" {
		a.errorf(s, "static assertion failed")
		return
	}
	a.errorf(s, "static assertion failed: %s", s.Message)
}

// truthy reports whether a constant counts as true in a condition.
func truthy(v constant.Value) bool {
	if v.Kind() == constant.Bool {
		return constant.BoolVal(v)
	}
	return constant.Sign(v) != 0
}
