// Package typeinfo exports the checked declarations of a translation unit.
// The export is JSON that can be embedded into an LLVM module and read back
// out of the compiled object with the reader package.
package typeinfo

import (
	"encoding/json"

	"github.com/pontaoski/minic/analyzer"
	"github.com/pontaoski/minic/reader"
	"github.com/pontaoski/minic/scope"
	"github.com/pontaoski/minic/types"
)

// Info maps qualified global names to type strings. Names declared inside
// a namespace are qualified with "::".
type Info struct {
	Package   string              `json:"package,omitempty"`
	Functions map[string][]string `json:"functions"`
	Structs   map[string]Struct   `json:"structs"`
	Variables map[string]string   `json:"variables"`
}

type Struct struct {
	Fields []Field `json:"fields"`
	Size   int64   `json:"size"`
}

type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Build collects every struct, function overload and variable declared at
// global or namespace scope.
func Build(result *analyzer.Result, reg *types.Registry) Info {
	info := Info{
		Functions: make(map[string][]string),
		Structs:   make(map[string]Struct),
		Variables: make(map[string]string),
	}
	collect(&info, result.Global, "", reg)
	return info
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "::" + name
}

func collect(info *Info, s *scope.Scope, prefix string, reg *types.Registry) {
	for _, name := range s.Structs() {
		st, _ := s.LookupStruct(name)
		out := Struct{}
		for _, field := range st.Members() {
			t, _ := st.Member(field)
			out.Fields = append(out.Fields, Field{Name: field, Type: t.String()})
		}
		// an unsized member leaves Size at zero
		if n, err := reg.Sizeof(st); err == nil {
			out.Size = n
		}
		info.Structs[qualify(prefix, name)] = out
	}
	for _, name := range s.Functions() {
		for _, f := range s.LookupFunctions(name) {
			info.Functions[qualify(prefix, name)] = append(info.Functions[qualify(prefix, name)], f.String())
		}
	}
	for _, name := range s.Variables() {
		t, _ := s.LookupVariable(name)
		info.Variables[qualify(prefix, name)] = t.String()
	}
	for _, name := range s.Namespaces() {
		ns, _ := s.LookupNamespace(name)
		collect(info, ns, qualify(prefix, name), reg)
	}
}

// Marshal encodes info as JSON.
func Marshal(info Info) ([]byte, error) {
	return json.Marshal(info)
}

// Unmarshal decodes JSON produced by Marshal.
func Unmarshal(data []byte) (info Info, err error) {
	err = json.Unmarshal(data, &info)
	return
}

// ReadFile loads the type information embedded in a compiled shared object.
func ReadFile(path string) (Info, error) {
	data, err := reader.ReadTypeInfo(path)
	if err != nil {
		return Info{}, err
	}
	return Unmarshal([]byte(data))
}
