package parser

import (
	"fmt"

	"github.com/pontaoski/minic/ast"
	"github.com/pontaoski/minic/errors"
	"github.com/pontaoski/minic/lexer"
	"github.com/pontaoski/minic/token"
	"github.com/ztrue/tracerr"
)

// Parser turns a token sequence into a translation unit. It stops at the
// first grammar violation; there is no recovery.
type Parser struct {
	toks []token.Token
	pos  int
	unit ast.TranslationUnit
}

func NewParser(toks []token.Token) Parser {
	return Parser{toks: toks}
}

// Parse parses a complete token sequence. On failure the returned error
// wraps a *errors.SyntaxError and no tree is returned.
func Parse(toks []token.Token) (*ast.TranslationUnit, error) {
	p := NewParser(toks)
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return &p.unit, nil
}

// ParseString lexes and parses src.
func ParseString(src string) (*ast.TranslationUnit, error) {
	toks, err := lexer.LexString(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

func (p *Parser) Parse() (err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				p.unit = ast.TranslationUnit{}
				err = tracerr.Wrap(errors.Syntax(rerr))
			} else {
				panic(r)
			}
		}
	}()
	for !p.peekIs(token.EOF) {
		p.unit.Items = append(p.unit.Items, p.parseStatement())
	}
	return nil
}

// Unit returns the tree built by a successful Parse.
func (p *Parser) Unit() *ast.TranslationUnit {
	return &p.unit
}

func (p *Parser) peekAt(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	if len(p.toks) > 0 {
		last := p.toks[len(p.toks)-1]
		return token.Token{Kind: token.EOF, Location: token.SingleCharSpan(last.Location.To)}
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekIs(k ...token.Kind) bool {
	return p.peekAtIs(0, k...)
}

func (p *Parser) peekAtIs(n int, k ...token.Kind) bool {
	tok := p.peekAt(n)
	for _, kind := range k {
		if tok.Kind == kind {
			return true
		}
	}
	return false
}

func (p *Parser) next() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *Parser) lexExpecting(k ...token.Kind) token.Token {
	if p.peekIs(k...) {
		return p.next()
	}
	if len(k) == 1 {
		panic(errors.ExpectedKindGotKind{
			Expected: k[0],
			Got:      p.peek(),
			Offset:   p.pos,
		})
	}
	panic(errors.ExpectedOneOfKindGotKind{
		Expected: k,
		Got:      p.peek(),
		Offset:   p.pos,
	})
}

func (p *Parser) failf(format string, args ...interface{}) {
	panic(&errors.SyntaxError{
		Msg:    fmt.Sprintf(format, args...),
		Offset: p.pos,
		Token:  p.peek(),
	})
}

func (p *Parser) at() ast.At {
	return ast.At{Offset: p.pos}
}
