//go:build !cgo

package reader

import "github.com/ztrue/tracerr"

const Symbol = "__minic_types"

func ReadTypeInfo(from string) (string, error) {
	return "", tracerr.Errorf("cannot read %s: reading type information requires a cgo build", from)
}
