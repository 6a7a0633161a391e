package types

// Identical reports whether x and y are structurally the same type: the same
// variant with recursively identical components. Struct names and array
// sizes do not take part.
func Identical(x, y Type) bool {
	return identical(x, y, nil)
}

// pair is a struct comparison in progress. Revisiting one assumes equality,
// which lets self-referential structs terminate.
type pair struct {
	x, y *Struct
	prev *pair
}

func (p *pair) seen(x, y *Struct) bool {
	for ; p != nil; p = p.prev {
		if (p.x == x && p.y == y) || (p.x == y && p.y == x) {
			return true
		}
	}
	return false
}

func identical(x, y Type, p *pair) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}

	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.Kind == y.Kind
		}
	case *Func:
		if y, ok := y.(*Func); ok {
			return identicalFuncs(x, y, p)
		}
	case *Struct:
		if y, ok := y.(*Struct); ok {
			return identicalStructs(x, y, p)
		}
	case *Pointer:
		if y, ok := y.(*Pointer); ok {
			return identical(x.Base, y.Base, p)
		}
	case *LValueRef:
		if y, ok := y.(*LValueRef); ok {
			return identical(x.Base, y.Base, p)
		}
	case *RValueRef:
		if y, ok := y.(*RValueRef); ok {
			return identical(x.Base, y.Base, p)
		}
	case *Array:
		if y, ok := y.(*Array); ok {
			return identical(x.Elem, y.Elem, p)
		}
	case *Const:
		if y, ok := y.(*Const); ok {
			return identical(x.Base, y.Base, p)
		}
	}
	return false
}

func identicalFuncs(x, y *Func, p *pair) bool {
	if x.ConstMethod != y.ConstMethod {
		return false
	}
	if len(x.Params) != len(y.Params) {
		return false
	}
	for i := range x.Params {
		if !identical(x.Params[i], y.Params[i], p) {
			return false
		}
	}
	return identical(x.Result, y.Result, p)
}

func identicalStructs(x, y *Struct, p *pair) bool {
	if p.seen(x, y) {
		return true
	}
	if len(x.members) != len(y.members) {
		return false
	}
	p = &pair{x: x, y: y, prev: p}
	for name, xt := range x.members {
		yt, ok := y.members[name]
		if !ok || !identical(xt, yt, p) {
			return false
		}
	}
	return true
}

// Unqualified strips const qualifiers and references.
func Unqualified(t Type) Type {
	for {
		switch u := t.(type) {
		case *Const:
			t = u.Base
		case *LValueRef:
			t = u.Base
		case *RValueRef:
			t = u.Base
		default:
			return t
		}
	}
}

func basicKind(t Type) (BasicKind, bool) {
	b, ok := Unqualified(t).(*Basic)
	if !ok {
		return Invalid, false
	}
	return b.Kind, true
}

func IsInvalid(t Type) bool {
	k, ok := basicKind(t)
	return t == nil || (ok && k == Invalid)
}

func IsVoid(t Type) bool {
	k, ok := basicKind(t)
	return ok && k == Void
}

func IsFundamental(t Type) bool {
	k, ok := basicKind(t)
	return ok && k != Invalid
}

func IsIntegral(t Type) bool {
	k, ok := basicKind(t)
	return ok && (k == Bool || k == Char || k == Integer)
}

func IsArithmetic(t Type) bool {
	k, ok := basicKind(t)
	return ok && (k == Bool || k == Char || k == Integer || k == Float)
}

func IsFloat(t Type) bool {
	k, ok := basicKind(t)
	return ok && k == Float
}

func IsPointer(t Type) bool {
	_, ok := Unqualified(t).(*Pointer)
	return ok
}

func IsNull(t Type) bool {
	k, ok := basicKind(t)
	return ok && k == NullPointer
}

// IsScalar reports whether t can be used as a condition.
func IsScalar(t Type) bool {
	return IsArithmetic(t) || IsPointer(t) || IsNull(t)
}

func IsConst(t Type) bool {
	for {
		switch u := t.(type) {
		case *Const:
			return true
		case *LValueRef:
			t = u.Base
		case *RValueRef:
			t = u.Base
		default:
			return false
		}
	}
}

// AssignableTo reports whether a value of type v may initialize or be
// assigned to an object of type t. Numeric conversions between arithmetic
// types are implicit, nullptr converts to any pointer and arrays decay to
// pointers to their element type.
func AssignableTo(v, t Type) bool {
	v, t = Unqualified(v), Unqualified(t)
	if Identical(v, t) {
		return true
	}
	if IsArithmetic(v) && IsArithmetic(t) {
		return true
	}
	if tp, ok := t.(*Pointer); ok {
		if IsNull(v) {
			return true
		}
		if va, ok := v.(*Array); ok {
			return Identical(Unqualified(va.Elem), Unqualified(tp.Base))
		}
		if vp, ok := v.(*Pointer); ok {
			// T* converts to const T*, never the reverse.
			if IsConst(vp.Base) && !IsConst(tp.Base) {
				return false
			}
			return Identical(Unqualified(vp.Base), Unqualified(tp.Base))
		}
	}
	return false
}

// Arithmetic returns the result type of an arithmetic operator applied to
// operands of types x and y.
func Arithmetic(x, y Type) Type {
	if IsFloat(x) || IsFloat(y) {
		return Typ[Float]
	}
	return Typ[Integer]
}
