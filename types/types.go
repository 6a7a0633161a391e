// Package types describes the static types of minic programs. Types are
// value-less descriptors compared structurally with Identical.
package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pontaoski/minic/ast"
)

// Type is implemented by every type descriptor in this package.
type Type interface {
	String() string
	aType()
}

type typ struct{}

func (typ) aType() {}

type BasicKind int

const (
	Invalid BasicKind = iota
	Void
	NullPointer
	Bool
	Char
	Integer
	Float
	String
)

// Basic is a fundamental type. Name is the spelling it was declared with
// ("long" and "int" are both Integer) and does not take part in identity.
type Basic struct {
	typ
	Kind BasicKind
	Name string
}

func (b *Basic) String() string { return b.Name }

// Typ holds one canonical Basic per kind.
var Typ = map[BasicKind]*Basic{
	Invalid:     {Kind: Invalid, Name: "invalid type"},
	Void:        {Kind: Void, Name: "void"},
	NullPointer: {Kind: NullPointer, Name: "nullptr_t"},
	Bool:        {Kind: Bool, Name: "bool"},
	Char:        {Kind: Char, Name: "char"},
	Integer:     {Kind: Integer, Name: "int"},
	Float:       {Kind: Float, Name: "double"},
	String:      {Kind: String, Name: "string"},
}

// Func is a function signature. Two signatures are identical when their
// parameters and results are; ConstMethod must match as well, so a const
// member function never matches a plain one.
type Func struct {
	typ
	Result      Type
	Params      []Type
	ConstMethod bool
}

func NewFunc(result Type, params ...Type) *Func {
	return &Func{Result: result, Params: params}
}

func (f *Func) String() string {
	var params []string
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	s := fmt.Sprintf("%s(%s)", f.Result, strings.Join(params, ", "))
	if f.ConstMethod {
		s += " const"
	}
	return s
}

// Struct is a record type. Member order is kept for printing and layout
// only; identity ignores it.
type Struct struct {
	typ
	Name    string
	members map[string]Type
	order   []string
	methods map[string]*Func
}

func NewStruct(name string) *Struct {
	return &Struct{
		Name:    name,
		members: make(map[string]Type),
		methods: make(map[string]*Func),
	}
}

// AddMember adds a member and reports false if the name is already taken.
func (s *Struct) AddMember(name string, t Type) bool {
	if _, ok := s.members[name]; ok {
		return false
	}
	s.members[name] = t
	s.order = append(s.order, name)
	return true
}

func (s *Struct) Member(name string) (Type, bool) {
	t, ok := s.members[name]
	return t, ok
}

// Members returns member names in declaration order.
func (s *Struct) Members() []string {
	return s.order
}

func (s *Struct) NumMembers() int { return len(s.order) }

func (s *Struct) AddMethod(name string, f *Func) {
	s.methods[name] = f
}

func (s *Struct) Method(name string) (*Func, bool) {
	f, ok := s.methods[name]
	return f, ok
}

// Methods returns method names sorted alphabetically.
func (s *Struct) Methods() []string {
	var names []string
	for name := range s.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Struct) String() string {
	if s.Name != "" {
		return s.Name
	}
	var fields []string
	for _, name := range s.order {
		fields = append(fields, fmt.Sprintf("%s %s", s.members[name], name))
	}
	return fmt.Sprintf("struct { %s }", strings.Join(fields, "; "))
}

type Pointer struct {
	typ
	Base Type
}

func (p *Pointer) String() string { return p.Base.String() + "*" }

type LValueRef struct {
	typ
	Base Type
}

func (r *LValueRef) String() string { return r.Base.String() + "&" }

type RValueRef struct {
	typ
	Base Type
}

func (r *RValueRef) String() string { return r.Base.String() + "&&" }

// Array is a fixed-size array. Len is the evaluated size, or -1 when the
// size is absent or not yet known.
type Array struct {
	typ
	Elem Type
	Size ast.Expr
	Len  int64
}

func (a *Array) String() string {
	if a.Len < 0 {
		return a.Elem.String() + "[]"
	}
	return fmt.Sprintf("%s[%d]", a.Elem, a.Len)
}

type Const struct {
	typ
	Base Type
}

func (c *Const) String() string { return "const " + c.Base.String() }

func NewPointer(base Type) *Pointer { return &Pointer{Base: base} }

func NewConst(base Type) Type {
	if _, ok := base.(*Const); ok {
		return base
	}
	return &Const{Base: base}
}

func NewArray(elem Type, size ast.Expr, n int64) *Array {
	return &Array{Elem: elem, Size: size, Len: n}
}
