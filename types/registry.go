package types

import (
	"fmt"
	"sort"

	lltypes "github.com/llir/llvm/ir/types"
)

// Builtin describes one entry of the builtin type table.
type Builtin struct {
	Type Type
	Size int64
	LLVM lltypes.Type
}

// Registry is the table of builtin type names. It is built explicitly and
// handed to the analyzer; nothing in this package mutates a shared table.
type Registry struct {
	builtins map[string]Builtin
}

var (
	llString  = lltypes.NewStruct(lltypes.I64, lltypes.NewPointer(lltypes.I8))
	llVoidPtr = lltypes.NewPointer(lltypes.I8)
)

// NewRegistry returns a registry holding the default builtin types.
func NewRegistry() *Registry {
	r := &Registry{builtins: make(map[string]Builtin)}
	r.add("void", Void, 0, lltypes.Void)
	r.add("bool", Bool, 1, lltypes.I1)
	r.add("char", Char, 1, lltypes.I8)
	r.add("short", Integer, 2, lltypes.I16)
	r.add("int", Integer, 4, lltypes.I32)
	r.add("long", Integer, 8, lltypes.I64)
	r.add("float", Float, 4, lltypes.Float)
	r.add("double", Float, 8, lltypes.Double)
	r.add("string", String, 16, llString)
	r.add("nullptr_t", NullPointer, 8, llVoidPtr)
	return r
}

func (r *Registry) add(name string, kind BasicKind, size int64, ll lltypes.Type) {
	t := Typ[kind]
	if t.Name != name {
		t = &Basic{Kind: kind, Name: name}
	}
	r.builtins[name] = Builtin{Type: t, Size: size, LLVM: ll}
}

// Lookup returns the builtin type registered under name.
func (r *Registry) Lookup(name string) (Builtin, bool) {
	b, ok := r.builtins[name]
	return b, ok
}

// Alias registers name as another spelling of the builtin target.
func (r *Registry) Alias(name, target string) error {
	if _, ok := r.builtins[name]; ok {
		return fmt.Errorf("type '%s' is already defined", name)
	}
	b, ok := r.builtins[target]
	if !ok {
		return fmt.Errorf("cannot alias '%s' to unknown type '%s'", name, target)
	}
	r.builtins[name] = b
	return nil
}

// Names returns the registered names sorted alphabetically.
func (r *Registry) Names() []string {
	var names []string
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const pointerSize = 8

// Sizeof returns the storage size of t in bytes. Structs are laid out
// without padding.
func (r *Registry) Sizeof(t Type) (int64, error) {
	switch t := t.(type) {
	case *Basic:
		if b, ok := r.builtins[t.Name]; ok {
			return b.Size, nil
		}
		if b, ok := r.builtins[Typ[t.Kind].Name]; ok {
			return b.Size, nil
		}
	case *Pointer:
		return pointerSize, nil
	case *Const:
		return r.Sizeof(t.Base)
	case *LValueRef, *RValueRef:
		return pointerSize, nil
	case *Array:
		if t.Len < 0 {
			return 0, fmt.Errorf("array of unknown size has no size")
		}
		n, err := r.Sizeof(t.Elem)
		return n * t.Len, err
	case *Struct:
		var total int64
		for _, name := range t.order {
			n, err := r.Sizeof(t.members[name])
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	}
	return 0, fmt.Errorf("type '%s' has no size", t)
}
