package parser

import (
	"github.com/pontaoski/minic/ast"
	"github.com/pontaoski/minic/token"
)

// isDeclaration decides from the current two tokens whether a declaration
// starts here. A user-defined type name is only recognised when followed
// directly by an identifier, so "T *p;" is read as an expression.
func (p *Parser) isDeclaration() bool {
	tok := p.peek()
	switch {
	case tok.Kind == token.CONST, tok.Kind == token.NAMESPACE, tok.Kind == token.STRUCT:
		return true
	case tok.Kind.IsTypeKeyword():
		return true
	case tok.Kind == token.IDENT && p.peekAtIs(1, token.IDENT):
		return true
	}
	return false
}

type shape int

const (
	shapeVariable shape = iota
	shapeFunction
	shapeArray
)

// shapeAt inspects the fixed window after a type name starting n tokens
// ahead: an optional '*', the declared name, then '(' or '['.
func (p *Parser) shapeAt(n int) shape {
	if p.peekAtIs(n, token.STAR) {
		n++
	}
	if !p.peekAtIs(n, token.IDENT) {
		return shapeVariable
	}
	switch p.peekAt(n + 1).Kind {
	case token.LPAREN:
		return shapeFunction
	case token.LBRACK:
		return shapeArray
	}
	return shapeVariable
}

// typeNameWidth is the number of tokens the type name at offset n spans.
func (p *Parser) typeNameWidth(n int) int {
	if p.peekAtIs(n, token.STRUCT) {
		return 2
	}
	return 1
}

func (p *Parser) parseDeclaration() ast.Decl {
	switch {
	case p.peekIs(token.NAMESPACE):
		return p.parseNamespace()
	case p.peekIs(token.STRUCT) && p.peekAtIs(2, token.LBRACE):
		return p.parseStruct()
	}

	isConst := false
	n := 0
	if p.peekIs(token.CONST) {
		isConst = true
		n = 1
	}

	switch p.shapeAt(n + p.typeNameWidth(n)) {
	case shapeFunction:
		if isConst {
			p.failf("const qualified return types are not supported")
		}
		return p.parseFunction()
	case shapeArray:
		if p.peekAtIs(n+p.typeNameWidth(n), token.STAR) {
			p.failf("arrays of pointers are not supported")
		}
		return p.parseArray()
	}
	decl := p.parseVarDecl()
	p.lexExpecting(token.SEMICOLON)
	return decl
}

// parseTypeName reads a single-token type name, or "struct Name".
func (p *Parser) parseTypeName() string {
	tok := p.peek()
	switch {
	case tok.Kind.IsTypeKeyword():
		p.next()
		return tok.Text
	case tok.Kind == token.IDENT:
		p.next()
		return tok.Text
	case tok.Kind == token.STRUCT:
		p.next()
		return p.lexExpecting(token.IDENT).Text
	}
	p.failf("expected a type name, got %s", tok)
	return ""
}

func (p *Parser) parseDeclarator() ast.Declarator {
	at := p.at()
	if p.peekIs(token.STAR) {
		p.next()
		name := p.lexExpecting(token.IDENT)
		return &ast.PointerDeclarator{At: at, Name: name.Text}
	}
	name := p.lexExpecting(token.IDENT)
	return &ast.SimpleDeclarator{At: at, Name: name.Text}
}

func (p *Parser) parseInitDeclarator() *ast.InitDeclarator {
	d := &ast.InitDeclarator{At: p.at(), Declarator: p.parseDeclarator()}
	if p.peekIs(token.ASSIGN) {
		p.next()
		d.Init = p.parseAssignment()
	}
	return d
}

// parseVarDecl parses "[const] T d1 [= e1], d2 [= e2] ..." without the
// terminating semicolon.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	decl := &ast.VarDecl{At: p.at()}
	if p.peekIs(token.CONST) {
		p.next()
		decl.Const = true
	}
	decl.Type = p.parseTypeName()
	for {
		decl.Vars = append(decl.Vars, p.parseInitDeclarator())
		if !p.peekIs(token.COMMA) {
			return decl
		}
		p.next()
	}
}

func (p *Parser) parseFunction() *ast.FuncDecl {
	fn := &ast.FuncDecl{At: p.at()}
	fn.Type = p.parseTypeName()
	fn.Name = p.parseDeclarator()

	p.lexExpecting(token.LPAREN)
	if p.peekIs(token.VOID) && p.peekAtIs(1, token.RPAREN) {
		p.next()
	}
	if !p.peekIs(token.RPAREN) {
		for {
			fn.Params = append(fn.Params, p.parseParam())
			if !p.peekIs(token.COMMA) {
				break
			}
			p.next()
		}
	}
	p.lexExpecting(token.RPAREN)

	if p.peekIs(token.SEMICOLON) {
		p.next()
		return fn
	}
	fn.Body = p.parseCompound()
	return fn
}

func (p *Parser) parseParam() *ast.ParamDecl {
	param := &ast.ParamDecl{At: p.at()}
	if p.peekIs(token.CONST) {
		p.next()
		param.Const = true
	}
	param.Type = p.parseTypeName()

	// Unnamed parameters are allowed in prototypes.
	if p.peekIs(token.COMMA, token.RPAREN) || (p.peekIs(token.STAR) && p.peekAtIs(1, token.COMMA, token.RPAREN)) {
		at := p.at()
		var d ast.Declarator = &ast.SimpleDeclarator{At: at}
		if p.peekIs(token.STAR) {
			p.next()
			d = &ast.PointerDeclarator{At: at}
		}
		param.Var = &ast.InitDeclarator{At: at, Declarator: d}
		return param
	}
	param.Var = p.parseInitDeclarator()
	return param
}

func (p *Parser) parseArray() *ast.ArrayDecl {
	arr := &ast.ArrayDecl{At: p.at()}
	if p.peekIs(token.CONST) {
		p.next()
		arr.Const = true
	}
	arr.Type = p.parseTypeName()
	arr.Name = p.lexExpecting(token.IDENT).Text

	p.lexExpecting(token.LBRACK)
	if !p.peekIs(token.RBRACK) {
		arr.Size = p.parseAssignment()
	}
	p.lexExpecting(token.RBRACK)

	if p.peekIs(token.ASSIGN) {
		p.next()
		arr.HasInit = true
		arr.Init = p.parseInitializerList()
	}
	p.lexExpecting(token.SEMICOLON)
	return arr
}

func (p *Parser) parseInitializerList() []ast.Expr {
	var elems []ast.Expr
	p.lexExpecting(token.LBRACE)
	for !p.peekIs(token.RBRACE) {
		elems = append(elems, p.parseAssignment())
		if !p.peekIs(token.COMMA) {
			break
		}
		p.next()
	}
	p.lexExpecting(token.RBRACE)
	return elems
}

func (p *Parser) parseStruct() *ast.StructDecl {
	st := &ast.StructDecl{At: p.at()}
	p.lexExpecting(token.STRUCT)
	st.Name = p.lexExpecting(token.IDENT).Text
	p.lexExpecting(token.LBRACE)
	for !p.peekIs(token.RBRACE) {
		st.Members = append(st.Members, p.parseVarDecl())
		p.lexExpecting(token.SEMICOLON)
	}
	p.lexExpecting(token.RBRACE)
	p.lexExpecting(token.SEMICOLON)
	return st
}

func (p *Parser) parseNamespace() *ast.NamespaceDecl {
	ns := &ast.NamespaceDecl{At: p.at()}
	p.lexExpecting(token.NAMESPACE)
	ns.Name = p.lexExpecting(token.IDENT).Text
	p.lexExpecting(token.LBRACE)
	for !p.peekIs(token.RBRACE) {
		if !p.isDeclaration() {
			p.failf("expected a declaration in namespace %s, got %s", ns.Name, p.peek())
		}
		ns.Decls = append(ns.Decls, p.parseDeclaration())
	}
	p.lexExpecting(token.RBRACE)
	return ns
}
