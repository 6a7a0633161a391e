package scope

import (
	"github.com/pontaoski/minic/errors"
	"github.com/pontaoski/minic/types"
)

// ResolveType turns a declared type name into a type. Structs visible from s
// take precedence over the builtin table.
func (s *Scope) ResolveType(reg *types.Registry, name string) (types.Type, error) {
	if st, err := s.MatchStruct(name); err == nil {
		return st, nil
	}
	if b, ok := reg.Lookup(name); ok {
		return b.Type, nil
	}
	return nil, errors.UnknownType(name)
}
