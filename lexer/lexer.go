package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pontaoski/minic/token"
	"github.com/ztrue/tracerr"
)

type Lexer struct {
	pos    token.Position
	reader *bufio.Reader
	last   int
}

// LexError reports a character sequence that does not form a token.
type LexError struct {
	Msg      string
	Location token.Position
}

func (e LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Msg)
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    token.Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

// Lex tokenizes everything readable from reader. The returned slice always
// ends with an EOF token.
func Lex(reader io.Reader, filename string) ([]token.Token, error) {
	return NewLexer(reader, filename).All()
}

func LexString(src string) ([]token.Token, error) {
	return Lex(strings.NewReader(src), "stdin")
}

func (l *Lexer) All() (toks []token.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			toks = nil
			err = tracerr.Wrap(rerr)
		}
	}()
	for {
		tok := l.Lex()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) fail(format string, args ...interface{}) {
	panic(LexError{Msg: fmt.Sprintf(format, args...), Location: l.pos})
}

func (l *Lexer) read() (rune, bool) {
	r, size, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, false
		}
		panic(err)
	}
	l.last = l.pos.Column
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 0
	} else {
		l.pos.Column += size
	}
	return r, true
}

func (l *Lexer) backup(r rune) {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}
	if r == '\n' {
		l.pos.Line--
	}
	l.pos.Column = l.last
}

func (l *Lexer) peekIs(want rune) bool {
	r, ok := l.read()
	if !ok {
		return false
	}
	if r == want {
		return true
	}
	l.backup(r)
	return false
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

func (l *Lexer) lexIdent(first rune) string {
	var b strings.Builder
	b.WriteRune(first)
	for {
		r, ok := l.read()
		if !ok {
			return b.String()
		}
		if !otherChar(r) {
			l.backup(r)
			return b.String()
		}
		b.WriteRune(r)
	}
}

func (l *Lexer) lexNumber(first rune) (token.Kind, string) {
	var b strings.Builder
	b.WriteRune(first)
	kind := token.INT
	if first == '.' {
		kind = token.FLOAT
	}
	for {
		r, ok := l.read()
		if !ok {
			return kind, b.String()
		}
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' && kind == token.INT:
			kind = token.FLOAT
			b.WriteRune(r)
		case (r == 'e' || r == 'E') && !strings.ContainsAny(b.String(), "eE"):
			kind = token.FLOAT
			b.WriteRune(r)
			if s, ok := l.read(); ok {
				if s == '+' || s == '-' {
					b.WriteRune(s)
				} else {
					l.backup(s)
				}
			}
		default:
			l.backup(r)
			return kind, b.String()
		}
	}
}

func (l *Lexer) escape() rune {
	r, ok := l.read()
	if !ok {
		l.fail("unterminated escape sequence")
	}
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\', '\'', '"':
		return r
	}
	l.fail("unknown escape sequence \\%c", r)
	return 0
}

func (l *Lexer) lexQuoted(quote rune) string {
	var b strings.Builder
	for {
		r, ok := l.read()
		if !ok || r == '\n' {
			l.fail("unterminated literal")
		}
		switch r {
		case quote:
			return b.String()
		case '\\':
			b.WriteRune(l.escape())
		default:
			b.WriteRune(r)
		}
	}
}

func (l *Lexer) skipLine() {
	for {
		r, ok := l.read()
		if !ok || r == '\n' {
			return
		}
	}
}

func (l *Lexer) skipBlock() {
	for {
		r, ok := l.read()
		if !ok {
			l.fail("unterminated comment")
		}
		if r == '*' && l.peekIs('/') {
			return
		}
	}
}

// operators lists the punctuation recognised by the lexer; two character
// forms are matched before their one character prefixes.
var operators = map[rune][]struct {
	text string
	kind token.Kind
}{
	'+': {{"++", token.INC}, {"+=", token.PLUS_ASSIGN}, {"+", token.PLUS}},
	'-': {{"--", token.DEC}, {"-=", token.MINUS_ASSIGN}, {"-", token.MINUS}},
	'*': {{"**", token.POWER}, {"*=", token.STAR_ASSIGN}, {"*", token.STAR}},
	'/': {{"/=", token.SLASH_ASSIGN}, {"/", token.SLASH}},
	'%': {{"%=", token.PERCENT_ASSIGN}, {"%", token.PERCENT}},
	'=': {{"==", token.EQ}, {"=", token.ASSIGN}},
	'!': {{"!=", token.NE}, {"!", token.NOT}},
	'<': {{"<<", token.SHL}, {"<=", token.LE}, {"<", token.LT}},
	'>': {{">>", token.SHR}, {">=", token.GE}, {">", token.GT}},
	'&': {{"&&", token.AND_AND}, {"&", token.AMP}},
	'|': {{"||", token.OR_OR}, {"|", token.PIPE}},
	':': {{"::", token.SCOPE}, {":", token.COLON}},
	'^': {{"^", token.CARET}},
	'~': {{"~", token.TILDE}},
	'[': {{"[", token.LBRACK}},
	']': {{"]", token.RBRACK}},
	'.': {{".", token.DOT}},
	'(': {{"(", token.LPAREN}},
	')': {{")", token.RPAREN}},
	'{': {{"{", token.LBRACE}},
	'}': {{"}", token.RBRACE}},
	',': {{",", token.COMMA}},
	';': {{";", token.SEMICOLON}},
	'?': {{"?", token.QUESTION}},
}

func (l *Lexer) Lex() token.Token {
	for {
		r, ok := l.read()
		if !ok {
			return token.Token{Kind: token.EOF, Location: token.SingleCharSpan(l.pos)}
		}
		from := l.pos

		switch {
		case unicode.IsSpace(r):
			continue
		case r == '/':
			if n, ok := l.read(); ok {
				switch n {
				case '/':
					l.skipLine()
					continue
				case '*':
					l.skipBlock()
					continue
				}
				l.backup(n)
			}
		case firstChar(r):
			lit := l.lexIdent(r)
			kind := token.IDENT
			if kw, ok := token.Keywords[lit]; ok {
				kind = kw
			}
			return token.Token{Kind: kind, Text: lit, Location: token.Span{From: from, To: l.pos}}
		case unicode.IsDigit(r):
			kind, lit := l.lexNumber(r)
			return token.Token{Kind: kind, Text: lit, Location: token.Span{From: from, To: l.pos}}
		case r == '"':
			lit := l.lexQuoted('"')
			return token.Token{Kind: token.STRING, Text: lit, Location: token.Span{From: from, To: l.pos}}
		case r == '\'':
			lit := l.lexQuoted('\'')
			if len([]rune(lit)) != 1 {
				l.fail("character literal must contain exactly one character")
			}
			return token.Token{Kind: token.CHAR, Text: lit, Location: token.Span{From: from, To: l.pos}}
		}

		if r == '.' {
			if n, ok := l.read(); ok {
				l.backup(n)
				if unicode.IsDigit(n) {
					kind, lit := l.lexNumber(r)
					return token.Token{Kind: kind, Text: lit, Location: token.Span{From: from, To: l.pos}}
				}
			}
		}

		if cands, ok := operators[r]; ok {
			for _, cand := range cands {
				if l.matchRest(cand.text[1:]) {
					return token.Token{Kind: cand.kind, Text: cand.text, Location: token.Span{From: from, To: l.pos}}
				}
			}
		}

		l.fail("unexpected character %q", r)
	}
}

// matchRest reports whether the operator continues with rest, consuming it
// if so. Operators are at most two runes long.
func (l *Lexer) matchRest(rest string) bool {
	if rest == "" {
		return true
	}
	return l.peekIs([]rune(rest)[0])
}
