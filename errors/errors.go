package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/minic/token"
)

// SyntaxError is the single error a failed parse reports. Offset is the
// index of the offending token in the token sequence.
type SyntaxError struct {
	Msg    string
	Offset int
	Token  token.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d (%s): %s", e.Offset, e.Token.Location.From, e.Msg)
}

type ExpectedKindGotKind struct {
	Expected token.Kind
	Got      token.Token
	Offset   int
}

func (e ExpectedKindGotKind) Error() string {
	return fmt.Sprintf("got %s, expected %s. %s", e.Got, e.Expected, e.Got.Location)
}

type ExpectedOneOfKindGotKind struct {
	Expected []token.Kind
	Got      token.Token
	Offset   int
}

func (e ExpectedOneOfKindGotKind) Error() string {
	var s []string
	for _, k := range e.Expected {
		s = append(s, k.String())
	}
	return fmt.Sprintf("got %s, expected one of [%s]. %s", e.Got, strings.Join(s, " "), e.Got.Location)
}

// Syntax converts the expectation failures raised inside the parser into a
// SyntaxError. Other errors are returned unchanged.
func Syntax(err error) error {
	switch e := err.(type) {
	case ExpectedKindGotKind:
		return &SyntaxError{Msg: e.Error(), Offset: e.Offset, Token: e.Got}
	case ExpectedOneOfKindGotKind:
		return &SyntaxError{Msg: e.Error(), Offset: e.Offset, Token: e.Got}
	}
	return err
}

// SemanticError is one diagnostic reported by the analyzer.
type SemanticError struct {
	Msg    string
	Offset int
}

func (e *SemanticError) Error() string {
	return e.Msg
}

func Semantic(offset int, format string, args ...interface{}) *SemanticError {
	return &SemanticError{Msg: fmt.Sprintf(format, args...), Offset: offset}
}

func Undefined(kind, name string) *SemanticError {
	return Semantic(-1, "undefined %s '%s'", kind, name)
}

func Redefinition(name string) *SemanticError {
	return Semantic(-1, "redefinition of '%s'", name)
}

func UnknownType(name string) *SemanticError {
	return Semantic(-1, "unknown type '%s'", name)
}

func NoMatchingOverload(name string) *SemanticError {
	return Semantic(-1, "no matching overload for call to '%s'", name)
}

func AmbiguousCall(name string) *SemanticError {
	return Semantic(-1, "ambiguous call to '%s'", name)
}

func NotConstant() *SemanticError {
	return Semantic(-1, "not a constant expression")
}

// At returns a copy of e located at offset, keeping an already known offset.
func (e *SemanticError) At(offset int) *SemanticError {
	if e.Offset >= 0 {
		return e
	}
	return &SemanticError{Msg: e.Msg, Offset: offset}
}
