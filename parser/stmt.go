package parser

import (
	"github.com/pontaoski/minic/ast"
	"github.com/pontaoski/minic/token"
)

func (p *Parser) parseStatement() ast.Stmt {
	if p.isDeclaration() {
		at := p.at()
		return &ast.DeclStmt{At: at, Decl: p.parseDeclaration()}
	}

	at := p.at()
	switch p.peek().Kind {
	case token.LBRACE:
		return p.parseCompound()
	case token.SEMICOLON:
		p.next()
		return &ast.EmptyStmt{At: at}
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		p.next()
		p.lexExpecting(token.LPAREN)
		cond := p.parseExpression()
		p.lexExpecting(token.RPAREN)
		return &ast.WhileStmt{At: at, Cond: cond, Body: p.parseStatement()}
	case token.DO:
		p.next()
		body := p.parseStatement()
		p.lexExpecting(token.WHILE)
		p.lexExpecting(token.LPAREN)
		cond := p.parseExpression()
		p.lexExpecting(token.RPAREN)
		p.lexExpecting(token.SEMICOLON)
		return &ast.DoWhileStmt{At: at, Body: body, Cond: cond}
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		p.next()
		ret := &ast.ReturnStmt{At: at}
		if !p.peekIs(token.SEMICOLON) {
			ret.X = p.parseExpression()
		}
		p.lexExpecting(token.SEMICOLON)
		return ret
	case token.BREAK:
		p.next()
		p.lexExpecting(token.SEMICOLON)
		return &ast.BreakStmt{At: at}
	case token.CONTINUE:
		p.next()
		p.lexExpecting(token.SEMICOLON)
		return &ast.ContinueStmt{At: at}
	case token.STATIC_ASSERT:
		return p.parseStaticAssert()
	}

	x := p.parseExpression()
	p.lexExpecting(token.SEMICOLON)
	return &ast.ExprStmt{At: at, X: x}
}

// parseCompound parses a brace-enclosed statement list.
func (p *Parser) parseCompound() *ast.CompoundStmt {
	block := &ast.CompoundStmt{At: p.at()}
	p.lexExpecting(token.LBRACE)
	for !p.peekIs(token.RBRACE) {
		if p.peekIs(token.EOF) {
			p.lexExpecting(token.RBRACE)
		}
		block.List = append(block.List, p.parseStatement())
	}
	p.lexExpecting(token.RBRACE)
	return block
}

func (p *Parser) parseIf() *ast.IfStmt {
	stmt := &ast.IfStmt{At: p.at()}
	p.lexExpecting(token.IF)
	p.lexExpecting(token.LPAREN)
	stmt.Cond = p.parseExpression()
	p.lexExpecting(token.RPAREN)
	stmt.Then = p.parseStatement()
	if p.peekIs(token.ELSE) {
		p.next()
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseFor() *ast.ForStmt {
	stmt := &ast.ForStmt{At: p.at()}
	p.lexExpecting(token.FOR)
	p.lexExpecting(token.LPAREN)

	switch {
	case p.peekIs(token.SEMICOLON):
		p.next()
	case p.isDeclaration():
		at := p.at()
		if p.peekIs(token.NAMESPACE, token.STRUCT) && !p.peekAtIs(2, token.IDENT) {
			p.failf("expected a variable declaration in for initializer, got %s", p.peek())
		}
		stmt.Init = &ast.DeclStmt{At: at, Decl: p.parseDeclaration()}
	default:
		at := p.at()
		stmt.Init = &ast.ExprStmt{At: at, X: p.parseExpression()}
		p.lexExpecting(token.SEMICOLON)
	}

	if !p.peekIs(token.SEMICOLON) {
		stmt.Cond = p.parseExpression()
	}
	p.lexExpecting(token.SEMICOLON)

	if !p.peekIs(token.RPAREN) {
		stmt.Post = p.parseExpression()
	}
	p.lexExpecting(token.RPAREN)

	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseStaticAssert() *ast.StaticAssertStmt {
	stmt := &ast.StaticAssertStmt{At: p.at()}
	p.lexExpecting(token.STATIC_ASSERT)
	p.lexExpecting(token.LPAREN)
	stmt.Cond = p.parseAssignment()
	if p.peekIs(token.COMMA) {
		p.next()
		stmt.Message = p.lexExpecting(token.STRING).Text
	}
	p.lexExpecting(token.RPAREN)
	p.lexExpecting(token.SEMICOLON)
	return stmt
}
