//go:build cgo

// Package reader loads the type information embedded in a compiled minic
// shared object.
package reader

import "github.com/coreos/pkg/dlopen"

import "C"

// Symbol is the global a compiled module stores its type information in.
const Symbol = "__minic_types"

// ReadTypeInfo opens the shared object at from and returns the
// NUL-terminated string stored in Symbol.
func ReadTypeInfo(from string) (string, error) {
	handle, err := dlopen.GetHandle([]string{from})
	if err != nil {
		return "", err
	}
	defer handle.Close()

	sym, err := handle.GetSymbolPointer(Symbol)
	if err != nil {
		return "", err
	}

	str := C.GoString((*C.char)(sym))
	return str, nil
}
