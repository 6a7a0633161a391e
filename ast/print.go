package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes an indented dump of the tree rooted at node to w.
func Fprint(w io.Writer, node Node) error {
	out := &output{w: w}
	Walk(&printer{out: out}, node)
	return out.err
}

type output struct {
	w   io.Writer
	err error
}

type printer struct {
	out   *output
	depth int
}

func (p *printer) Visit(node Node) Visitor {
	if node == nil || p.out.err != nil {
		return nil
	}
	_, p.out.err = fmt.Fprintf(p.out.w, "%s%s\n", strings.Repeat("  ", p.depth), label(node))
	return &printer{out: p.out, depth: p.depth + 1}
}

func declarator(d Declarator) string {
	if _, ok := d.(*PointerDeclarator); ok {
		return "*" + d.Ident()
	}
	return d.Ident()
}

func constPrefix(c bool) string {
	if c {
		return "const "
	}
	return ""
}

func label(node Node) string {
	switch n := node.(type) {
	case *TranslationUnit:
		return "TranslationUnit"
	case *SimpleDeclarator:
		return "SimpleDeclarator " + n.Name
	case *PointerDeclarator:
		return "PointerDeclarator " + n.Name
	case *InitDeclarator:
		return "InitDeclarator " + declarator(n.Declarator)
	case *VarDecl:
		return "VarDecl " + constPrefix(n.Const) + n.Type
	case *ParamDecl:
		return "ParamDecl " + constPrefix(n.Const) + n.Type
	case *FuncDecl:
		if n.Body == nil {
			return fmt.Sprintf("FuncDecl %s %s (prototype)", n.Type, declarator(n.Name))
		}
		return fmt.Sprintf("FuncDecl %s %s", n.Type, declarator(n.Name))
	case *StructDecl:
		return "StructDecl " + n.Name
	case *ArrayDecl:
		return fmt.Sprintf("ArrayDecl %s%s %s", constPrefix(n.Const), n.Type, n.Name)
	case *NamespaceDecl:
		return "NamespaceDecl " + n.Name
	case *StaticAssertStmt:
		return "StaticAssertStmt " + strconv.Quote(n.Message)
	case *BinaryExpr:
		return "BinaryExpr " + n.Op.String()
	case *PrefixExpr:
		return "PrefixExpr " + n.Op.String()
	case *PostfixExpr:
		return "PostfixExpr " + n.Op.String()
	case *MemberExpr:
		return "MemberExpr ." + n.Name
	case *ScopeExpr:
		return "ScopeExpr ::" + n.Name
	case *IntLit, *FloatLit, *CharLit, *StringLit, *BoolLit, *NullLit, *Ident:
		return fmt.Sprintf("%s %s", typeName(n), ExprString(n.(Expr)))
	case *SizeofExpr:
		if n.X == nil {
			return "SizeofExpr " + n.Type
		}
		return "SizeofExpr"
	}
	return typeName(node)
}

func typeName(node Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", node), "*ast.")
}

// ExprString renders e as a fully parenthesized prefix expression, e.g.
// "(+ 1 (* 2 3))". It is meant for diagnostics and tests.
func ExprString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *IntLit:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *FloatLit:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *CharLit:
		b.WriteString(strconv.QuoteRune(n.Value))
	case *StringLit:
		b.WriteString(strconv.Quote(n.Value))
	case *BoolLit:
		b.WriteString(strconv.FormatBool(n.Value))
	case *NullLit:
		b.WriteString("nullptr")
	case *Ident:
		b.WriteString(n.Name)
	case *ParenExpr:
		b.WriteString("(paren ")
		writeExpr(b, n.X)
		b.WriteString(")")
	case *BinaryExpr:
		fmt.Fprintf(b, "(%s ", n.Op)
		writeExpr(b, n.X)
		b.WriteString(" ")
		writeExpr(b, n.Y)
		b.WriteString(")")
	case *PrefixExpr:
		fmt.Fprintf(b, "(%s ", n.Op)
		writeExpr(b, n.X)
		b.WriteString(")")
	case *PostfixExpr:
		b.WriteString("(post")
		b.WriteString(n.Op.String())
		b.WriteString(" ")
		writeExpr(b, n.X)
		b.WriteString(")")
	case *CallExpr:
		b.WriteString("(call ")
		writeExpr(b, n.Fun)
		for _, a := range n.Args {
			b.WriteString(" ")
			writeExpr(b, a)
		}
		b.WriteString(")")
	case *IndexExpr:
		b.WriteString("(index ")
		writeExpr(b, n.X)
		b.WriteString(" ")
		writeExpr(b, n.Index)
		b.WriteString(")")
	case *MemberExpr:
		b.WriteString("(. ")
		writeExpr(b, n.X)
		b.WriteString(" " + n.Name + ")")
	case *ScopeExpr:
		b.WriteString("(:: ")
		writeExpr(b, n.X)
		b.WriteString(" " + n.Name + ")")
	case *TernaryExpr:
		b.WriteString("(? ")
		writeExpr(b, n.Cond)
		b.WriteString(" ")
		writeExpr(b, n.Then)
		b.WriteString(" ")
		writeExpr(b, n.Else)
		b.WriteString(")")
	case *SizeofExpr:
		if n.X == nil {
			b.WriteString("(sizeof " + n.Type + ")")
			return
		}
		b.WriteString("(sizeof ")
		writeExpr(b, n.X)
		b.WriteString(")")
	default:
		fmt.Fprintf(b, "<%T>", n)
	}
}
