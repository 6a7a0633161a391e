// Package scope implements the lexical symbol environment: a chain of
// scopes holding variables, structs, overloaded functions and namespaces.
package scope

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pontaoski/minic/errors"
	"github.com/pontaoski/minic/types"
)

type Kind int

const (
	Global Kind = iota
	Function
	Block
	Namespace
)

func (k Kind) String() string {
	switch k {
	case Global:
		return "global"
	case Function:
		return "function"
	case Block:
		return "block"
	case Namespace:
		return "namespace"
	}
	return "unknown"
}

// Scope is one lexical binding environment. The parent link is used for
// lookup only; a scope never owns its parent.
type Scope struct {
	parent     *Scope
	kind       Kind
	name       string
	vars       map[string]types.Type
	varOrder   []string
	structs    map[string]*types.Struct
	funcs      map[string][]*types.Func
	namespaces map[string]*Scope
}

// New returns a scope enclosed by parent, which is nil for the global scope.
func New(parent *Scope, kind Kind, name string) *Scope {
	return &Scope{
		parent:     parent,
		kind:       kind,
		name:       name,
		vars:       make(map[string]types.Type),
		structs:    make(map[string]*types.Struct),
		funcs:      make(map[string][]*types.Func),
		namespaces: make(map[string]*Scope),
	}
}

func (s *Scope) Parent() *Scope { return s.parent }
func (s *Scope) Kind() Kind     { return s.kind }
func (s *Scope) Name() string   { return s.name }

// PushVariable binds name in this scope. Names may not be redeclared at the
// same level.
func (s *Scope) PushVariable(name string, t types.Type) error {
	if _, ok := s.vars[name]; ok {
		return errors.Redefinition(name)
	}
	s.vars[name] = t
	s.varOrder = append(s.varOrder, name)
	return nil
}

func (s *Scope) PushStruct(name string, t *types.Struct) error {
	if _, ok := s.structs[name]; ok {
		return errors.Redefinition(name)
	}
	s.structs[name] = t
	return nil
}

// PushFunction adds a signature to name's overload set.
func (s *Scope) PushFunction(name string, t *types.Func) {
	s.funcs[name] = append(s.funcs[name], t)
}

// PushNamespace records the scope of a namespace for qualified lookup.
func (s *Scope) PushNamespace(name string, ns *Scope) error {
	if _, ok := s.namespaces[name]; ok {
		return errors.Redefinition(name)
	}
	s.namespaces[name] = ns
	return nil
}

func (s *Scope) MatchVariable(name string) (types.Type, error) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.vars[name]; ok {
			return t, nil
		}
	}
	return nil, errors.Undefined("variable", name)
}

func (s *Scope) MatchStruct(name string) (*types.Struct, error) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.structs[name]; ok {
			return t, nil
		}
	}
	return nil, errors.Undefined("struct", name)
}

func (s *Scope) MatchNamespace(name string) (*Scope, error) {
	for sc := s; sc != nil; sc = sc.parent {
		if ns, ok := sc.namespaces[name]; ok {
			return ns, nil
		}
	}
	return nil, errors.Undefined("namespace", name)
}

// MatchFunction resolves a call of name with the given argument types. The
// nearest scope declaring name decides: its overloads are filtered by arity
// and by structural identity of each unqualified parameter and argument.
func (s *Scope) MatchFunction(name string, args []types.Type) (*types.Func, error) {
	for sc := s; sc != nil; sc = sc.parent {
		if set, ok := sc.funcs[name]; ok {
			return resolveOverload(name, set, args)
		}
	}
	return nil, errors.Undefined("function", name)
}

// MatchLocalFunction is MatchFunction restricted to the overloads declared
// in s itself. Qualified calls such as N::f(x) use it.
func (s *Scope) MatchLocalFunction(name string, args []types.Type) (*types.Func, error) {
	set, ok := s.funcs[name]
	if !ok {
		return nil, errors.Undefined("function", name)
	}
	return resolveOverload(name, set, args)
}

func resolveOverload(name string, set []*types.Func, args []types.Type) (*types.Func, error) {
	var candidates []*types.Func
	for _, f := range set {
		if Accepts(f, args) {
			candidates = append(candidates, f)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, errors.NoMatchingOverload(name)
	case 1:
		return candidates[0], nil
	}
	return nil, errors.AmbiguousCall(name)
}

// Accepts reports whether f can be called with arguments of the given types.
func Accepts(f *types.Func, args []types.Type) bool {
	if len(f.Params) != len(args) {
		return false
	}
	for i, p := range f.Params {
		if !types.Identical(types.Unqualified(p), types.Unqualified(args[i])) {
			return false
		}
	}
	return true
}

// LookupVariable searches this scope only.
func (s *Scope) LookupVariable(name string) (types.Type, bool) {
	t, ok := s.vars[name]
	return t, ok
}

func (s *Scope) LookupStruct(name string) (*types.Struct, bool) {
	t, ok := s.structs[name]
	return t, ok
}

// LookupFunctions returns the overload set declared in this scope only.
func (s *Scope) LookupFunctions(name string) []*types.Func {
	return s.funcs[name]
}

func (s *Scope) LookupNamespace(name string) (*Scope, bool) {
	ns, ok := s.namespaces[name]
	return ns, ok
}

// Variables returns variable names in declaration order.
func (s *Scope) Variables() []string { return s.varOrder }

func sortedKeys(m interface{}) []string {
	var names []string
	switch m := m.(type) {
	case map[string]*types.Struct:
		for name := range m {
			names = append(names, name)
		}
	case map[string][]*types.Func:
		for name := range m {
			names = append(names, name)
		}
	case map[string]*Scope:
		for name := range m {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Structs returns struct names sorted alphabetically.
func (s *Scope) Structs() []string { return sortedKeys(s.structs) }

// Functions returns function names sorted alphabetically.
func (s *Scope) Functions() []string { return sortedKeys(s.funcs) }

// Namespaces returns namespace names sorted alphabetically.
func (s *Scope) Namespaces() []string { return sortedKeys(s.namespaces) }

func (s *Scope) String() string {
	var buf strings.Builder
	s.writeTo(&buf, 0)
	return buf.String()
}

func (s *Scope) writeTo(buf *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(buf, "%sscope %s %s {\n", prefix, s.kind, s.name)
	for _, name := range s.Structs() {
		fmt.Fprintf(buf, "%s  struct %s\n", prefix, name)
	}
	for _, name := range s.varOrder {
		fmt.Fprintf(buf, "%s  %s: %s\n", prefix, name, s.vars[name])
	}
	for _, name := range s.Functions() {
		for _, f := range s.funcs[name] {
			fmt.Fprintf(buf, "%s  func %s: %s\n", prefix, name, f)
		}
	}
	for _, name := range s.Namespaces() {
		s.namespaces[name].writeTo(buf, indent+1)
	}
	fmt.Fprintf(buf, "%s}\n", prefix)
}
