// Command tool generates the marker methods that close the ast node
// interfaces. Its input lists, per interface, the marker method and the
// node types implementing it:
//
//	Expr marks exprNode: BinaryExpr, Ident;
//
// Usage: tool <input> <output> <package>
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type SumDecls struct {
	Sums []*Sum `@@*`
}

type Sum struct {
	Interface string   `@Ident "marks"`
	Marker    string   `@Ident ":"`
	Members   []string `@Ident ("," @Ident)* ";"`
}

var parser = participle.MustBuild(&SumDecls{})

func Parse(data []byte) (*SumDecls, error) {
	decls := &SumDecls{}
	if err := parser.ParseBytes(data, decls); err != nil {
		return nil, err
	}
	seen := make(map[string]string)
	for _, sum := range decls.Sums {
		for _, member := range sum.Members {
			key := member + "." + sum.Marker
			if other, ok := seen[key]; ok {
				return nil, fmt.Errorf("%s is listed twice for %s (in %s and %s)", member, sum.Marker, other, sum.Interface)
			}
			seen[key] = sum.Interface
		}
	}
	return decls, nil
}

func GenerateMarkers(pkgname, source string, t *SumDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment(fmt.Sprintf("Code generated by tool from %s. DO NOT EDIT.", source))

	for _, sum := range t.Sums {
		for _, member := range sum.Members {
			f.Func().Params(Op("*").Id(member)).Id(sum.Marker).Params().Block()
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: tool <input> <output> <package>")
		os.Exit(2)
	}
	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	decls, err := Parse(inData)
	if err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateMarkers(pkgname, filepath.Base(in), decls)), 0644)
	if err != nil {
		panic(err)
	}
}
