// Package ast declares the syntax tree produced by the parser.
//
// Each syntactic family (declarations, statements, expressions, declarators)
// is a closed interface; the unexported marker methods, generated from
// nodes.sum into markers_gen.go, keep the set of variants fixed. Nodes carry
// no behaviour beyond their position: consumers switch over the concrete
// types, usually through Walk or Inspect.
package ast

//go:generate go run ../tool nodes.sum markers_gen.go ast

import "github.com/pontaoski/minic/token"

// Node is implemented by every tree node. Pos returns the index of the
// node's first token in the token sequence it was parsed from.
type Node interface {
	Pos() int
}

type Decl interface {
	Node
	declNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type Declarator interface {
	Node
	declaratorNode()
	Ident() string
}

type At struct {
	Offset int
}

func (a At) Pos() int { return a.Offset }

// Declarators

type SimpleDeclarator struct {
	At
	Name string
}

type PointerDeclarator struct {
	At
	Name string
}

func (d *SimpleDeclarator) Ident() string  { return d.Name }
func (d *PointerDeclarator) Ident() string { return d.Name }

// InitDeclarator pairs a declarator with its optional initializer.
type InitDeclarator struct {
	At
	Declarator Declarator
	Init       Expr
}

// Declarations

type VarDecl struct {
	At
	Type  string
	Vars  []*InitDeclarator
	Const bool
}

type ParamDecl struct {
	At
	Type  string
	Var   *InitDeclarator
	Const bool
}

type FuncDecl struct {
	At
	Type   string
	Name   Declarator
	Params []*ParamDecl
	// Body is nil for a prototype.
	Body *CompoundStmt
}

type StructDecl struct {
	At
	Name    string
	Members []*VarDecl
}

type ArrayDecl struct {
	At
	Type  string
	Const bool
	Name  string
	Size  Expr
	Init  []Expr

	// HasInit distinguishes "= {}" from no initializer.
	HasInit bool
}

type NamespaceDecl struct {
	At
	Name  string
	Decls []Decl
}

// Statements

type CompoundStmt struct {
	At
	List []Stmt
}

type DeclStmt struct {
	At
	Decl Decl
}

type ExprStmt struct {
	At
	X Expr
}

type EmptyStmt struct {
	At
}

type IfStmt struct {
	At
	Cond Expr
	Then Stmt
	Else Stmt
}

type WhileStmt struct {
	At
	Cond Expr
	Body Stmt
}

type DoWhileStmt struct {
	At
	Body Stmt
	Cond Expr
}

type ForStmt struct {
	At
	Init Stmt
	Cond Expr
	Post Expr
	Body Stmt
}

type ReturnStmt struct {
	At
	X Expr
}

type BreakStmt struct {
	At
}

type ContinueStmt struct {
	At
}

type StaticAssertStmt struct {
	At
	Cond    Expr
	Message string
}

// Expressions

type BinaryExpr struct {
	At
	Op token.Kind
	X  Expr
	Y  Expr
}

type PrefixExpr struct {
	At
	Op token.Kind
	X  Expr
}

// PostfixExpr is a postfix increment or decrement.
type PostfixExpr struct {
	At
	Op token.Kind
	X  Expr
}

type CallExpr struct {
	At
	Fun  Expr
	Args []Expr
}

type IndexExpr struct {
	At
	X     Expr
	Index Expr
}

type MemberExpr struct {
	At
	X    Expr
	Name string
}

// ScopeExpr is a namespace access X::Name.
type ScopeExpr struct {
	At
	X    Expr
	Name string
}

type IntLit struct {
	At
	Value int64
}

type FloatLit struct {
	At
	Value float64
}

type CharLit struct {
	At
	Value rune
}

type StringLit struct {
	At
	Value string
}

type BoolLit struct {
	At
	Value bool
}

type NullLit struct {
	At
}

type Ident struct {
	At
	Name string
}

type ParenExpr struct {
	At
	X Expr
}

type TernaryExpr struct {
	At
	Cond Expr
	Then Expr
	Else Expr
}

// SizeofExpr holds either a type name or an operand expression, never both.
type SizeofExpr struct {
	At
	Type string
	X    Expr
}

// TranslationUnit is the ordered top-level sequence of one source input.
// Top-level declarations are wrapped in DeclStmt.
type TranslationUnit struct {
	Items []Stmt
}

func (*TranslationUnit) Pos() int { return 0 }

// Unparen strips any number of enclosing parentheses.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}
