package analyzer

import (
	"go/constant"
	gotoken "go/token"
	"math"

	"github.com/pontaoski/minic/ast"
	"github.com/pontaoski/minic/errors"
	"github.com/pontaoski/minic/scope"
	"github.com/pontaoski/minic/token"
	"github.com/pontaoski/minic/types"
)

// EvalConst evaluates a constant expression. Integer, character and boolean
// operands evaluate exactly; a float operand makes the result a float.
// sizeof operands are resolved against sc, which may be nil.
//
// Anything that needs a runtime value, such as an identifier or a call,
// fails with "not a constant expression".
func EvalConst(e ast.Expr, reg *types.Registry, sc *scope.Scope) (constant.Value, error) {
	ev := evaluator{reg: reg, scope: sc}
	return ev.eval(e)
}

type evaluator struct {
	reg   *types.Registry
	scope *scope.Scope
}

func notConstant(e ast.Expr) error {
	return errors.NotConstant().At(e.Pos())
}

func (ev *evaluator) eval(e ast.Expr) (constant.Value, error) {
	switch e := e.(type) {
	case *ast.IntLit:
		return constant.MakeInt64(e.Value), nil
	case *ast.FloatLit:
		return constant.MakeFloat64(e.Value), nil
	case *ast.CharLit:
		return constant.MakeInt64(int64(e.Value)), nil
	case *ast.BoolLit:
		return constant.MakeBool(e.Value), nil
	case *ast.ParenExpr:
		return ev.eval(e.X)
	case *ast.PrefixExpr:
		return ev.unary(e)
	case *ast.BinaryExpr:
		return ev.binary(e)
	case *ast.TernaryExpr:
		c, err := ev.eval(e.Cond)
		if err != nil {
			return nil, err
		}
		if truthy(c) {
			return ev.eval(e.Then)
		}
		return ev.eval(e.Else)
	case *ast.SizeofExpr:
		return ev.sizeof(e)
	}
	return nil, notConstant(e)
}

// numeric widens booleans to integers for arithmetic.
func numeric(v constant.Value) constant.Value {
	if v.Kind() == constant.Bool {
		if constant.BoolVal(v) {
			return constant.MakeInt64(1)
		}
		return constant.MakeInt64(0)
	}
	return v
}

func (ev *evaluator) unary(e *ast.PrefixExpr) (constant.Value, error) {
	x, err := ev.eval(e.X)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case token.PLUS:
		return numeric(x), nil
	case token.MINUS:
		return constant.UnaryOp(gotoken.SUB, numeric(x), 0), nil
	case token.NOT:
		return constant.MakeBool(!truthy(x)), nil
	case token.TILDE:
		x = numeric(x)
		if x.Kind() != constant.Int {
			return nil, errors.Semantic(e.Pos(), "invalid operand to '~' in constant expression")
		}
		return constant.UnaryOp(gotoken.XOR, x, 0), nil
	}
	return nil, notConstant(e)
}

var comparisons = map[token.Kind]gotoken.Token{
	token.EQ: gotoken.EQL,
	token.NE: gotoken.NEQ,
	token.LT: gotoken.LSS,
	token.GT: gotoken.GTR,
	token.LE: gotoken.LEQ,
	token.GE: gotoken.GEQ,
}

var arithmetic = map[token.Kind]gotoken.Token{
	token.PLUS:  gotoken.ADD,
	token.MINUS: gotoken.SUB,
	token.STAR:  gotoken.MUL,
}

func (ev *evaluator) binary(e *ast.BinaryExpr) (constant.Value, error) {
	switch e.Op {
	case token.AND_AND, token.OR_OR:
		return ev.logical(e)
	case token.COMMA:
		return nil, notConstant(e)
	}
	if e.Op.IsAssign() {
		return nil, notConstant(e)
	}

	x, err := ev.eval(e.X)
	if err != nil {
		return nil, err
	}
	y, err := ev.eval(e.Y)
	if err != nil {
		return nil, err
	}
	x, y = numeric(x), numeric(y)
	ints := x.Kind() == constant.Int && y.Kind() == constant.Int

	if op, ok := comparisons[e.Op]; ok {
		return constant.MakeBool(constant.Compare(x, op, y)), nil
	}
	if op, ok := arithmetic[e.Op]; ok {
		return constant.BinaryOp(x, op, y), nil
	}

	switch e.Op {
	case token.SLASH:
		if constant.Sign(y) == 0 {
			return nil, errors.Semantic(e.Pos(), "division by zero in constant expression")
		}
		if ints {
			return constant.BinaryOp(x, gotoken.QUO_ASSIGN, y), nil
		}
		return constant.BinaryOp(x, gotoken.QUO, y), nil
	case token.PERCENT:
		if !ints {
			return nil, errors.Semantic(e.Pos(), "invalid operands to '%%' in constant expression")
		}
		if constant.Sign(y) == 0 {
			return nil, errors.Semantic(e.Pos(), "division by zero in constant expression")
		}
		return constant.BinaryOp(x, gotoken.REM, y), nil
	case token.POWER:
		return power(e, x, y, ints)
	}
	return nil, notConstant(e)
}

const maxExactExponent = 4096

// power computes x ** y. Integer operands with a small non-negative
// exponent are evaluated exactly, everything else as a float.
func power(e *ast.BinaryExpr, x, y constant.Value, ints bool) (constant.Value, error) {
	if ints {
		if n, ok := constant.Int64Val(y); ok && n >= 0 && n <= maxExactExponent {
			result := constant.MakeInt64(1)
			for ; n > 0; n >>= 1 {
				if n&1 == 1 {
					result = constant.BinaryOp(result, gotoken.MUL, x)
				}
				x = constant.BinaryOp(x, gotoken.MUL, x)
			}
			return result, nil
		}
	}
	fx, _ := constant.Float64Val(x)
	fy, _ := constant.Float64Val(y)
	r := math.Pow(fx, fy)
	switch {
	case math.IsInf(r, 0):
		return nil, errors.Semantic(e.Pos(), "floating point overflow in constant expression")
	case math.IsNaN(r):
		return nil, errors.Semantic(e.Pos(), "invalid operands to '**' in constant expression")
	}
	return constant.MakeFloat64(r), nil
}

func (ev *evaluator) logical(e *ast.BinaryExpr) (constant.Value, error) {
	x, err := ev.eval(e.X)
	if err != nil {
		return nil, err
	}
	if e.Op == token.AND_AND && !truthy(x) {
		return constant.MakeBool(false), nil
	}
	if e.Op == token.OR_OR && truthy(x) {
		return constant.MakeBool(true), nil
	}
	y, err := ev.eval(e.Y)
	if err != nil {
		return nil, err
	}
	return constant.MakeBool(truthy(y)), nil
}

func (ev *evaluator) sizeof(e *ast.SizeofExpr) (constant.Value, error) {
	var t types.Type
	switch {
	case e.X == nil:
		t = ev.lookupType(e.Type)
	default:
		id, ok := ast.Unparen(e.X).(*ast.Ident)
		if !ok {
			return nil, notConstant(e)
		}
		if ev.scope != nil {
			if vt, err := ev.scope.MatchVariable(id.Name); err == nil {
				t = vt
				break
			}
		}
		t = ev.lookupType(id.Name)
	}
	if t == nil {
		return nil, notConstant(e)
	}
	n, err := ev.reg.Sizeof(t)
	if err != nil {
		return nil, errors.Semantic(e.Pos(), "invalid application of 'sizeof': %s", err)
	}
	return constant.MakeInt64(n), nil
}

func (ev *evaluator) lookupType(name string) types.Type {
	if ev.scope != nil {
		if t, err := ev.scope.ResolveType(ev.reg, name); err == nil {
			return t
		}
		return nil
	}
	if b, ok := ev.reg.Lookup(name); ok {
		return b.Type
	}
	return nil
}
