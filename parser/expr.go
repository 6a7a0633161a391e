package parser

import (
	"strconv"

	"github.com/pontaoski/minic/ast"
	"github.com/pontaoski/minic/token"
)

// parseExpression parses the comma tier, the loosest binding one.
func (p *Parser) parseExpression() ast.Expr {
	at := p.at()
	x := p.parseAssignment()
	for p.peekIs(token.COMMA) {
		p.next()
		x = &ast.BinaryExpr{At: at, Op: token.COMMA, X: x, Y: p.parseAssignment()}
	}
	return x
}

func (p *Parser) parseAssignment() ast.Expr {
	at := p.at()
	x := p.parseTernary()
	if p.peek().Kind.IsAssign() {
		op := p.next()
		return &ast.BinaryExpr{At: at, Op: op.Kind, X: x, Y: p.parseAssignment()}
	}
	return x
}

// parseTernary parses the then-branch as a comma expression and the
// else-branch as an assignment, so a ternary can sit in an argument list.
func (p *Parser) parseTernary() ast.Expr {
	at := p.at()
	cond := p.parseLogicalOr()
	if !p.peekIs(token.QUESTION) {
		return cond
	}
	p.next()
	then := p.parseExpression()
	p.lexExpecting(token.COLON)
	return &ast.TernaryExpr{At: at, Cond: cond, Then: then, Else: p.parseAssignment()}
}

func (p *Parser) parseLogicalOr() ast.Expr {
	at := p.at()
	x := p.parseLogicalAnd()
	for p.peekIs(token.OR_OR) {
		p.next()
		x = &ast.BinaryExpr{At: at, Op: token.OR_OR, X: x, Y: p.parseLogicalAnd()}
	}
	return x
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	at := p.at()
	x := p.parseComparison()
	for p.peekIs(token.AND_AND) {
		p.next()
		x = &ast.BinaryExpr{At: at, Op: token.AND_AND, X: x, Y: p.parseComparison()}
	}
	return x
}

// parseComparison handles equality and relational operators as a single
// right-recursive tier: a < b < c groups as a < (b < c).
func (p *Parser) parseComparison() ast.Expr {
	at := p.at()
	x := p.parseAdditive()
	if p.peek().Kind.IsComparison() {
		op := p.next()
		return &ast.BinaryExpr{At: at, Op: op.Kind, X: x, Y: p.parseComparison()}
	}
	return x
}

func (p *Parser) parseAdditive() ast.Expr {
	at := p.at()
	x := p.parseMultiplicative()
	for p.peekIs(token.PLUS, token.MINUS) {
		op := p.next()
		x = &ast.BinaryExpr{At: at, Op: op.Kind, X: x, Y: p.parseMultiplicative()}
	}
	return x
}

func (p *Parser) parseMultiplicative() ast.Expr {
	at := p.at()
	x := p.parsePower()
	for p.peekIs(token.STAR, token.SLASH, token.PERCENT) {
		op := p.next()
		x = &ast.BinaryExpr{At: at, Op: op.Kind, X: x, Y: p.parsePower()}
	}
	return x
}

func (p *Parser) parsePower() ast.Expr {
	at := p.at()
	x := p.parsePrefix()
	if p.peekIs(token.POWER) {
		p.next()
		return &ast.BinaryExpr{At: at, Op: token.POWER, X: x, Y: p.parsePower()}
	}
	return x
}

func (p *Parser) parsePrefix() ast.Expr {
	at := p.at()
	switch p.peek().Kind {
	case token.INC, token.DEC, token.PLUS, token.MINUS, token.NOT, token.TILDE, token.STAR, token.AMP:
		op := p.next()
		return &ast.PrefixExpr{At: at, Op: op.Kind, X: p.parsePrefix()}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	at := p.at()
	x := p.parsePrimary()
	for {
		switch p.peek().Kind {
		case token.LPAREN:
			p.next()
			call := &ast.CallExpr{At: at, Fun: x}
			for !p.peekIs(token.RPAREN) {
				call.Args = append(call.Args, p.parseAssignment())
				if !p.peekIs(token.COMMA) {
					break
				}
				p.next()
			}
			p.lexExpecting(token.RPAREN)
			x = call
		case token.LBRACK:
			p.next()
			index := p.parseExpression()
			p.lexExpecting(token.RBRACK)
			x = &ast.IndexExpr{At: at, X: x, Index: index}
		case token.DOT:
			p.next()
			x = &ast.MemberExpr{At: at, X: x, Name: p.lexExpecting(token.IDENT).Text}
		case token.SCOPE:
			p.next()
			x = &ast.ScopeExpr{At: at, X: x, Name: p.lexExpecting(token.IDENT).Text}
		case token.INC, token.DEC:
			op := p.next()
			x = &ast.PostfixExpr{At: at, Op: op.Kind, X: x}
		default:
			return x
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	at := p.at()
	tok := p.peek()
	switch tok.Kind {
	case token.INT:
		p.next()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.pos--
			p.failf("integer literal %s out of range", tok.Text)
		}
		return &ast.IntLit{At: at, Value: v}
	case token.FLOAT:
		p.next()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.pos--
			p.failf("malformed floating point literal %s", tok.Text)
		}
		return &ast.FloatLit{At: at, Value: v}
	case token.CHAR:
		p.next()
		return &ast.CharLit{At: at, Value: []rune(tok.Text)[0]}
	case token.STRING:
		lit := &ast.StringLit{At: at}
		for p.peekIs(token.STRING) {
			lit.Value += p.next().Text
		}
		return lit
	case token.TRUE, token.FALSE:
		p.next()
		return &ast.BoolLit{At: at, Value: tok.Kind == token.TRUE}
	case token.NULLPTR:
		p.next()
		return &ast.NullLit{At: at}
	case token.IDENT:
		p.next()
		return &ast.Ident{At: at, Name: tok.Text}
	case token.LPAREN:
		p.next()
		x := p.parseExpression()
		p.lexExpecting(token.RPAREN)
		return &ast.ParenExpr{At: at, X: x}
	case token.SIZEOF:
		return p.parseSizeof()
	}
	p.failf("expected an expression, got %s", tok)
	return nil
}

// parseSizeof parses sizeof(type), sizeof(expr) and sizeof expr. A lone
// identifier in parentheses is kept as an expression; the analyzer decides
// whether it names a type.
func (p *Parser) parseSizeof() *ast.SizeofExpr {
	expr := &ast.SizeofExpr{At: p.at()}
	p.lexExpecting(token.SIZEOF)
	if p.peekIs(token.LPAREN) && (p.peekAt(1).Kind.IsTypeKeyword() || p.peekAtIs(1, token.STRUCT)) {
		p.next()
		expr.Type = p.parseTypeName()
		p.lexExpecting(token.RPAREN)
		return expr
	}
	expr.X = p.parsePrefix()
	return expr
}
