package lexer

import (
	"strings"
	"testing"

	"github.com/pontaoski/minic/token"
)

func kinds(toks []token.Token) []token.Kind {
	var ret []token.Kind
	for _, t := range toks {
		ret = append(ret, t.Kind)
	}
	return ret
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"int x = 10;", []token.Kind{token.INT_KW, token.IDENT, token.ASSIGN, token.INT, token.SEMICOLON, token.EOF}},
		{"a += b ** c--", []token.Kind{token.IDENT, token.PLUS_ASSIGN, token.IDENT, token.POWER, token.IDENT, token.DEC, token.EOF}},
		{"N::f(x.y[0])", []token.Kind{token.IDENT, token.SCOPE, token.IDENT, token.LPAREN, token.IDENT, token.DOT, token.IDENT, token.LBRACK, token.INT, token.RBRACK, token.RPAREN, token.EOF}},
		{"a<=b && c!=d || !e", []token.Kind{token.IDENT, token.LE, token.IDENT, token.AND_AND, token.IDENT, token.NE, token.IDENT, token.OR_OR, token.NOT, token.IDENT, token.EOF}},
		{"x ? y : z", []token.Kind{token.IDENT, token.QUESTION, token.IDENT, token.COLON, token.IDENT, token.EOF}},
		{"a << 1 >> 2 & 3 | 4 ^ ~5", []token.Kind{token.IDENT, token.SHL, token.INT, token.SHR, token.INT, token.AMP, token.INT, token.PIPE, token.INT, token.CARET, token.TILDE, token.INT, token.EOF}},
		{"static_assert(sizeof(int) == 4, \"size\");", []token.Kind{token.STATIC_ASSERT, token.LPAREN, token.SIZEOF, token.LPAREN, token.INT_KW, token.RPAREN, token.EQ, token.INT, token.COMMA, token.STRING, token.RPAREN, token.SEMICOLON, token.EOF}},
		{"// comment\nint /* block\n comment */ y;", []token.Kind{token.INT_KW, token.IDENT, token.SEMICOLON, token.EOF}},
		{"a / b /= c", []token.Kind{token.IDENT, token.SLASH, token.IDENT, token.SLASH_ASSIGN, token.IDENT, token.EOF}},
		{"true false nullptr", []token.Kind{token.TRUE, token.FALSE, token.NULLPTR, token.EOF}},
		{"", []token.Kind{token.EOF}},
	}

	for _, tt := range tests {
		toks, err := LexString(tt.input)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.input, err)
			continue
		}
		got := kinds(toks)
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: token %d is %s, want %s", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestLiterals(t *testing.T) {
	toks, err := LexString(`42 3.5 1e3 .25 'a' '\n' "hi\tthere"`)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.INT, "42"},
		{token.FLOAT, "3.5"},
		{token.FLOAT, "1e3"},
		{token.FLOAT, ".25"},
		{token.CHAR, "a"},
		{token.CHAR, "\n"},
		{token.STRING, "hi\tthere"},
		{token.EOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d: got %s %q, want %s %q", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestPositions(t *testing.T) {
	toks, err := Lex(strings.NewReader("int x;\n  y = 1;"), "pos.mc")
	if err != nil {
		t.Fatal(err)
	}
	y := toks[3]
	if y.Text != "y" {
		t.Fatalf("expected y, got %s", y)
	}
	if y.Location.From.Line != 2 || y.Location.From.Column != 3 || y.Location.From.Filename != "pos.mc" {
		t.Errorf("unexpected position %s", y.Location.From)
	}
}

func TestLexErrors(t *testing.T) {
	for _, input := range []string{"int $x;", `"unterminated`, "'ab'", "/* open"} {
		if _, err := LexString(input); err == nil {
			t.Errorf("%q: expected an error", input)
		}
	}
}
