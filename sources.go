package main

import (
	"log"
	"os"

	"github.com/pontaoski/minic/analyzer"
	"github.com/pontaoski/minic/ast"
	"github.com/pontaoski/minic/config"
	"github.com/pontaoski/minic/errors"
	"github.com/pontaoski/minic/lexer"
	"github.com/pontaoski/minic/parser"
	"github.com/pontaoski/minic/token"
	"github.com/pontaoski/minic/types"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

type source struct {
	path string
	toks []token.Token
	unit *ast.TranslationUnit
}

func lexFile(path string) ([]token.Token, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	defer handle.Close()

	return lexer.Lex(handle, path)
}

func parseFile(path string) (*source, error) {
	toks, err := lexFile(path)
	if err != nil {
		return nil, err
	}
	unit, err := parser.Parse(toks)
	if err != nil {
		return nil, err
	}
	return &source{path: path, toks: toks, unit: unit}, nil
}

// module is the set of files checked together, along with the manifest
// they came from, if any.
type module struct {
	manifest *config.Manifest
	reg      *types.Registry
	files    []string
}

// loadModule resolves the files to work on. Explicit arguments win over
// the manifest's source globs; the manifest's type aliases apply either way.
func loadModule(c *cli.Context) (*module, error) {
	mod := &module{reg: types.NewRegistry(), files: c.Args().Slice()}

	path := c.String("manifest")
	if path == "" {
		found, err := config.Find(".")
		if err != nil && len(mod.files) == 0 {
			return nil, err
		}
		path = found
	}
	if path != "" {
		m, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if err := m.Apply(mod.reg); err != nil {
			return nil, err
		}
		mod.manifest = m
		verbosef("using manifest %s for package %s", path, m.Package)
	}

	if len(mod.files) == 0 {
		files, err := mod.manifest.SourceFiles(".")
		if err != nil {
			return nil, err
		}
		mod.files = files
	}
	return mod, nil
}

func (mod *module) packageName() string {
	if mod.manifest == nil {
		return ""
	}
	return mod.manifest.Package
}

// checkModule parses and analyzes every file against one global scope.
// Syntax errors stop at the file they occur in; semantic diagnostics are
// collected from all files.
func checkModule(mod *module, p *printer) (*analyzer.Result, int, error) {
	a := analyzer.New(mod.reg)
	var last *analyzer.Result
	count := 0

	for _, path := range mod.files {
		verbosef("checking %s", path)
		src, err := parseFile(path)
		if err != nil {
			syn, ok := tracerr.Unwrap(err).(*errors.SyntaxError)
			if !ok || traceErrors {
				return nil, 0, err
			}
			p.syntax(syn)
			count++
			continue
		}
		last = a.Analyze(src.unit)
		for _, d := range last.Diagnostics {
			p.diagnostic(src.toks, src.path, d)
		}
		count += len(last.Diagnostics)
	}
	if last == nil {
		last = &analyzer.Result{Global: a.Global()}
	}
	return last, count, nil
}

var verbose, traceErrors bool

func verbosef(format string, args ...interface{}) {
	if verbose {
		log.Printf(format, args...)
	}
}
