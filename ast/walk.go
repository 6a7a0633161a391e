package ast

import "fmt"

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree rooted at node in depth-first order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *TranslationUnit:
		for _, s := range n.Items {
			Walk(v, s)
		}

	case *SimpleDeclarator, *PointerDeclarator:
		// leaves

	case *InitDeclarator:
		Walk(v, n.Declarator)
		if n.Init != nil {
			Walk(v, n.Init)
		}

	case *VarDecl:
		for _, d := range n.Vars {
			Walk(v, d)
		}

	case *ParamDecl:
		Walk(v, n.Var)

	case *FuncDecl:
		Walk(v, n.Name)
		for _, p := range n.Params {
			Walk(v, p)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}

	case *StructDecl:
		for _, m := range n.Members {
			Walk(v, m)
		}

	case *ArrayDecl:
		if n.Size != nil {
			Walk(v, n.Size)
		}
		for _, e := range n.Init {
			Walk(v, e)
		}

	case *NamespaceDecl:
		for _, d := range n.Decls {
			Walk(v, d)
		}

	case *CompoundStmt:
		for _, s := range n.List {
			Walk(v, s)
		}

	case *DeclStmt:
		Walk(v, n.Decl)

	case *ExprStmt:
		Walk(v, n.X)

	case *EmptyStmt, *BreakStmt, *ContinueStmt:
		// leaves

	case *IfStmt:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		if n.Else != nil {
			Walk(v, n.Else)
		}

	case *WhileStmt:
		Walk(v, n.Cond)
		Walk(v, n.Body)

	case *DoWhileStmt:
		Walk(v, n.Body)
		Walk(v, n.Cond)

	case *ForStmt:
		if n.Init != nil {
			Walk(v, n.Init)
		}
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
		if n.Post != nil {
			Walk(v, n.Post)
		}
		Walk(v, n.Body)

	case *ReturnStmt:
		if n.X != nil {
			Walk(v, n.X)
		}

	case *StaticAssertStmt:
		Walk(v, n.Cond)

	case *BinaryExpr:
		Walk(v, n.X)
		Walk(v, n.Y)

	case *PrefixExpr:
		Walk(v, n.X)

	case *PostfixExpr:
		Walk(v, n.X)

	case *CallExpr:
		Walk(v, n.Fun)
		for _, a := range n.Args {
			Walk(v, a)
		}

	case *IndexExpr:
		Walk(v, n.X)
		Walk(v, n.Index)

	case *MemberExpr:
		Walk(v, n.X)

	case *ScopeExpr:
		Walk(v, n.X)

	case *IntLit, *FloatLit, *CharLit, *StringLit, *BoolLit, *NullLit, *Ident:
		// leaves

	case *ParenExpr:
		Walk(v, n.X)

	case *TernaryExpr:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		Walk(v, n.Else)

	case *SizeofExpr:
		if n.X != nil {
			Walk(v, n.X)
		}

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree in depth-first order, calling f for each node
// and then f(nil) after its children. Children are skipped when f returns
// false.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
