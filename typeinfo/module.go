package typeinfo

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/pontaoski/minic/analyzer"
	"github.com/pontaoski/minic/reader"
	"github.com/pontaoski/minic/scope"
	"github.com/pontaoski/minic/types"
)

// Symbol is the name of the global holding the encoded Info.
const Symbol = reader.Symbol

type lowering struct {
	reg     *types.Registry
	structs map[*types.Struct]*lltypes.StructType
}

// Module lowers the global declarations of result to an LLVM module: a
// named struct type per struct, an external declaration per function
// overload and global variable, and an immutable global holding info.
func Module(info Info, result *analyzer.Result, reg *types.Registry) (*ir.Module, error) {
	m := ir.NewModule()
	l := &lowering{reg: reg, structs: make(map[*types.Struct]*lltypes.StructType)}

	// every struct is named before any field is lowered so members can
	// point back at their own struct
	var order []*types.Struct
	walk(result.Global, "", func(s *scope.Scope, prefix string) {
		for _, name := range s.Structs() {
			st, _ := s.LookupStruct(name)
			t := lltypes.NewStruct()
			t.SetName(qualify(prefix, name))
			m.TypeDefs = append(m.TypeDefs, t)
			l.structs[st] = t
			order = append(order, st)
		}
	})
	for _, st := range order {
		fields, err := l.fields(st)
		if err != nil {
			return nil, err
		}
		l.structs[st].Fields = fields
	}

	var err error
	walk(result.Global, "", func(s *scope.Scope, prefix string) {
		if err != nil {
			return
		}
		for _, name := range s.Functions() {
			set := s.LookupFunctions(name)
			for _, f := range set {
				if err = l.declare(m, qualify(prefix, name), f, len(set) > 1); err != nil {
					return
				}
			}
		}
		for _, name := range s.Variables() {
			t, _ := s.LookupVariable(name)
			var ll lltypes.Type
			if ll, err = l.lower(t); err != nil {
				return
			}
			g := m.NewGlobal(qualify(prefix, name), ll)
			g.Linkage = enum.LinkageExternal
		}
	})
	if err != nil {
		return nil, err
	}

	data, err := Marshal(info)
	if err != nil {
		return nil, err
	}
	g := m.NewGlobalDef(Symbol, constant.NewCharArray(append(data, 0)))
	g.Immutable = true

	return m, nil
}

func walk(s *scope.Scope, prefix string, fn func(*scope.Scope, string)) {
	fn(s, prefix)
	for _, name := range s.Namespaces() {
		ns, _ := s.LookupNamespace(name)
		walk(ns, qualify(prefix, name), fn)
	}
}

// declare adds an external function declaration. Overloaded names carry
// their parameter list so each overload gets a distinct symbol.
func (l *lowering) declare(m *ir.Module, name string, f *types.Func, overloaded bool) error {
	ret, err := l.lower(f.Result)
	if err != nil {
		return err
	}
	var params []*ir.Param
	for i, p := range f.Params {
		t, err := l.lower(p)
		if err != nil {
			return err
		}
		params = append(params, ir.NewParam(fmt.Sprintf("p%d", i), t))
	}
	if overloaded {
		name += mangle(f)
	}
	m.NewFunc(name, ret, params...)
	return nil
}

func mangle(f *types.Func) string {
	s := "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}

func (l *lowering) fields(st *types.Struct) ([]lltypes.Type, error) {
	var fields []lltypes.Type
	for _, name := range st.Members() {
		t, _ := st.Member(name)
		ll, err := l.lower(t)
		if err != nil {
			return nil, fmt.Errorf("member '%s' of '%s': %w", name, st, err)
		}
		fields = append(fields, ll)
	}
	return fields, nil
}

func (l *lowering) lower(t types.Type) (lltypes.Type, error) {
	switch t := t.(type) {
	case *types.Basic:
		if t.Kind == types.Invalid {
			return nil, fmt.Errorf("cannot lower an invalid type")
		}
		if b, ok := l.reg.Lookup(t.Name); ok {
			return b.LLVM, nil
		}
		if b, ok := l.reg.Lookup(types.Typ[t.Kind].Name); ok {
			return b.LLVM, nil
		}
		return nil, fmt.Errorf("type '%s' has no LLVM representation", t)
	case *types.Const:
		return l.lower(t.Base)
	case *types.Pointer:
		if types.IsVoid(t.Base) {
			return lltypes.NewPointer(lltypes.I8), nil
		}
		base, err := l.lower(t.Base)
		if err != nil {
			return nil, err
		}
		return lltypes.NewPointer(base), nil
	case *types.LValueRef:
		return l.lower(types.NewPointer(t.Base))
	case *types.RValueRef:
		return l.lower(types.NewPointer(t.Base))
	case *types.Array:
		elem, err := l.lower(t.Elem)
		if err != nil {
			return nil, err
		}
		if t.Len < 0 {
			return lltypes.NewPointer(elem), nil
		}
		return lltypes.NewArray(uint64(t.Len), elem), nil
	case *types.Struct:
		if st, ok := l.structs[t]; ok {
			return st, nil
		}
		fields, err := l.fields(t)
		if err != nil {
			return nil, err
		}
		return lltypes.NewStruct(fields...), nil
	case *types.Func:
		ret, err := l.lower(t.Result)
		if err != nil {
			return nil, err
		}
		var params []lltypes.Type
		for _, p := range t.Params {
			pt, err := l.lower(p)
			if err != nil {
				return nil, err
			}
			params = append(params, pt)
		}
		return lltypes.NewPointer(lltypes.NewFunc(ret, params...)), nil
	}
	return nil, fmt.Errorf("type '%s' has no LLVM representation", t)
}
