package token

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type Kind int

const (
	EOF Kind = iota
	ILLEGAL

	// literals
	INT
	FLOAT
	CHAR
	STRING
	TRUE
	FALSE
	NULLPTR

	IDENT

	// type keywords
	VOID
	BOOL
	CHAR_KW
	SHORT
	INT_KW
	LONG
	FLOAT_KW
	DOUBLE

	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POWER

	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN

	EQ
	NE
	LT
	GT
	LE
	GE

	AND_AND
	OR_OR
	NOT

	AMP
	PIPE
	CARET
	TILDE
	SHL
	SHR

	INC
	DEC

	LBRACK
	RBRACK
	DOT
	SCOPE

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COMMA
	SEMICOLON
	COLON
	QUESTION

	CONST
	STRUCT
	NAMESPACE
	IF
	ELSE
	WHILE
	DO
	FOR
	RETURN
	BREAK
	CONTINUE
	STATIC_ASSERT
	SIZEOF
)

var names = map[Kind]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	INT:     "INT",
	FLOAT:   "FLOAT",
	CHAR:    "CHAR",
	STRING:  "STRING",
	TRUE:    "true",
	FALSE:   "false",
	NULLPTR: "nullptr",

	IDENT: "IDENT",

	VOID:     "void",
	BOOL:     "bool",
	CHAR_KW:  "char",
	SHORT:    "short",
	INT_KW:   "int",
	LONG:     "long",
	FLOAT_KW: "float",
	DOUBLE:   "double",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	POWER:   "**",

	ASSIGN:         "=",
	PLUS_ASSIGN:    "+=",
	MINUS_ASSIGN:   "-=",
	STAR_ASSIGN:    "*=",
	SLASH_ASSIGN:   "/=",
	PERCENT_ASSIGN: "%=",

	EQ: "==",
	NE: "!=",
	LT: "<",
	GT: ">",
	LE: "<=",
	GE: ">=",

	AND_AND: "&&",
	OR_OR:   "||",
	NOT:     "!",

	AMP:   "&",
	PIPE:  "|",
	CARET: "^",
	TILDE: "~",
	SHL:   "<<",
	SHR:   ">>",

	INC: "++",
	DEC: "--",

	LBRACK: "[",
	RBRACK: "]",
	DOT:    ".",
	SCOPE:  "::",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	COMMA:     ",",
	SEMICOLON: ";",
	COLON:     ":",
	QUESTION:  "?",

	CONST:         "const",
	STRUCT:        "struct",
	NAMESPACE:     "namespace",
	IF:            "if",
	ELSE:          "else",
	WHILE:         "while",
	DO:            "do",
	FOR:           "for",
	RETURN:        "return",
	BREAK:         "break",
	CONTINUE:      "continue",
	STATIC_ASSERT: "static_assert",
	SIZEOF:        "sizeof",
}

// Keywords maps reserved words to their kinds.
var Keywords = map[string]Kind{
	"true":          TRUE,
	"false":         FALSE,
	"nullptr":       NULLPTR,
	"void":          VOID,
	"bool":          BOOL,
	"char":          CHAR_KW,
	"short":         SHORT,
	"int":           INT_KW,
	"long":          LONG,
	"float":         FLOAT_KW,
	"double":        DOUBLE,
	"const":         CONST,
	"struct":        STRUCT,
	"namespace":     NAMESPACE,
	"if":            IF,
	"else":          ELSE,
	"while":         WHILE,
	"do":            DO,
	"for":           FOR,
	"return":        RETURN,
	"break":         BREAK,
	"continue":      CONTINUE,
	"static_assert": STATIC_ASSERT,
	"sizeof":        SIZEOF,
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTypeKeyword reports whether k names a builtin type.
func (k Kind) IsTypeKeyword() bool {
	return k >= VOID && k <= DOUBLE
}

// IsAssign reports whether k is = or a compound assignment operator.
func (k Kind) IsAssign() bool {
	return k >= ASSIGN && k <= PERCENT_ASSIGN
}

// IsComparison reports whether k is an equality or relational operator.
func (k Kind) IsComparison() bool {
	return k >= EQ && k <= GE
}

// BinaryOf returns the arithmetic operator of a compound assignment, or k itself.
func (k Kind) BinaryOf() Kind {
	switch k {
	case PLUS_ASSIGN:
		return PLUS
	case MINUS_ASSIGN:
		return MINUS
	case STAR_ASSIGN:
		return STAR
	case SLASH_ASSIGN:
		return SLASH
	case PERCENT_ASSIGN:
		return PERCENT
	}
	return k
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

type Token struct {
	Kind     Kind
	Text     string
	Location Span
}

func (t Token) String() string {
	switch t.Kind {
	case INT, FLOAT, CHAR, STRING, IDENT, ILLEGAL:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	}
	return t.Kind.String()
}
