package ast

import (
	"fmt"
	"io"
	"strings"
)

// The unparser renders an analyzed program back to Mini source. Identifier
// uses are annotated with the signature of the symbol they resolved to;
// declaration sites are left bare. This output is the only state the
// analysis passes promise to downstream consumers.

func doIndent(w io.Writer, indent int) {
	if indent > 0 {
		io.WriteString(w, strings.Repeat(" ", indent))
	}
}

func (n *Program) Unparse(w io.Writer, indent int) {
	n.Decls.Unparse(w, indent)
}

func (n *DeclList) Unparse(w io.Writer, indent int) {
	for _, d := range n.Decls {
		d.Unparse(w, indent)
	}
}

func (n *VarDecl) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	n.Type.Unparse(w, 0)
	io.WriteString(w, " ")
	n.Id.unparseDecl(w)
	io.WriteString(w, ";\n")
}

func (n *FnDecl) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	n.Ret.Unparse(w, 0)
	io.WriteString(w, " ")
	n.Id.unparseDecl(w)
	io.WriteString(w, "(")
	n.Formals.Unparse(w, 0)
	io.WriteString(w, ") {\n")
	n.Body.Unparse(w, indent+4)
	doIndent(w, indent)
	io.WriteString(w, "}\n\n")
}

func (n *FormalsList) Unparse(w io.Writer, indent int) {
	for i, f := range n.Formals {
		if i > 0 {
			io.WriteString(w, ", ")
		}
		f.Unparse(w, indent)
	}
}

func (n *FormalDecl) Unparse(w io.Writer, indent int) {
	n.Type.Unparse(w, 0)
	io.WriteString(w, " ")
	n.Id.unparseDecl(w)
}

func (n *StructDecl) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	io.WriteString(w, "struct ")
	n.Id.unparseDecl(w)
	io.WriteString(w, " {\n")
	n.Fields.Unparse(w, indent+4)
	doIndent(w, indent)
	io.WriteString(w, "};\n\n")
}

func (n *FnBody) Unparse(w io.Writer, indent int) {
	n.Decls.Unparse(w, indent)
	n.Stmts.Unparse(w, indent)
}

func (n *StmtList) Unparse(w io.Writer, indent int) {
	for _, s := range n.Stmts {
		s.Unparse(w, indent)
	}
}

func (n *ExpList) Unparse(w io.Writer, indent int) {
	for i, e := range n.Exps {
		if i > 0 {
			io.WriteString(w, ", ")
		}
		e.Unparse(w, indent)
	}
}

func (n *IntNode) Unparse(w io.Writer, indent int) {
	io.WriteString(w, "int")
}

func (n *BoolNode) Unparse(w io.Writer, indent int) {
	io.WriteString(w, "bool")
}

func (n *VoidNode) Unparse(w io.Writer, indent int) {
	io.WriteString(w, "void")
}

func (n *StructNode) Unparse(w io.Writer, indent int) {
	io.WriteString(w, "struct ")
	n.Id.unparseDecl(w)
}

func (n *AssignStmt) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	n.Assign.unparse(w, false)
	io.WriteString(w, ";\n")
}

func (n *PostIncStmt) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	n.Exp.Unparse(w, 0)
	io.WriteString(w, "++;\n")
}

func (n *PostDecStmt) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	n.Exp.Unparse(w, 0)
	io.WriteString(w, "--;\n")
}

func (n *ReadStmt) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	io.WriteString(w, "cin >> ")
	n.Exp.Unparse(w, 0)
	io.WriteString(w, ";\n")
}

func (n *WriteStmt) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	io.WriteString(w, "cout << ")
	n.Exp.Unparse(w, 0)
	io.WriteString(w, ";\n")
}

func (n *IfStmt) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	io.WriteString(w, "if (")
	n.Cond.Unparse(w, 0)
	io.WriteString(w, ") {\n")
	n.Decls.Unparse(w, indent+4)
	n.Stmts.Unparse(w, indent+4)
	doIndent(w, indent)
	io.WriteString(w, "}\n")
}

func (n *IfElseStmt) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	io.WriteString(w, "if (")
	n.Cond.Unparse(w, 0)
	io.WriteString(w, ") {\n")
	n.ThenDecls.Unparse(w, indent+4)
	n.ThenStmts.Unparse(w, indent+4)
	doIndent(w, indent)
	io.WriteString(w, "}\n")
	doIndent(w, indent)
	io.WriteString(w, "else {\n")
	n.ElseDecls.Unparse(w, indent+4)
	n.ElseStmts.Unparse(w, indent+4)
	doIndent(w, indent)
	io.WriteString(w, "}\n")
}

func (n *WhileStmt) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	io.WriteString(w, "while (")
	n.Cond.Unparse(w, 0)
	io.WriteString(w, ") {\n")
	n.Decls.Unparse(w, indent+4)
	n.Stmts.Unparse(w, indent+4)
	doIndent(w, indent)
	io.WriteString(w, "}\n")
}

func (n *CallStmt) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	n.Call.Unparse(w, 0)
	io.WriteString(w, ";\n")
}

func (n *ReturnStmt) Unparse(w io.Writer, indent int) {
	doIndent(w, indent)
	io.WriteString(w, "return")
	if n.Exp != nil {
		io.WriteString(w, " ")
		n.Exp.Unparse(w, 0)
	}
	io.WriteString(w, ";\n")
}

func (n *IntLit) Unparse(w io.Writer, indent int) {
	fmt.Fprintf(w, "%d", n.Value)
}

func (n *StrLit) Unparse(w io.Writer, indent int) {
	fmt.Fprintf(w, "%q", n.Value)
}

func (n *TrueLit) Unparse(w io.Writer, indent int) {
	io.WriteString(w, "true")
}

func (n *FalseLit) Unparse(w io.Writer, indent int) {
	io.WriteString(w, "false")
}

func (n *Ident) Unparse(w io.Writer, indent int) {
	io.WriteString(w, n.Name)
	if n.Sym != nil {
		fmt.Fprintf(w, "(%s)", n.Sym)
	}
}

// unparseDecl writes the bare name: declaration sites carry the signature
// right next to them already.
func (n *Ident) unparseDecl(w io.Writer) {
	io.WriteString(w, n.Name)
}

func (n *DotAccess) Unparse(w io.Writer, indent int) {
	io.WriteString(w, "(")
	n.Loc.Unparse(w, 0)
	io.WriteString(w, ").")
	n.Id.Unparse(w, 0)
}

func (n *Assign) Unparse(w io.Writer, indent int) {
	n.unparse(w, true)
}

func (n *Assign) unparse(w io.Writer, parens bool) {
	if parens {
		io.WriteString(w, "(")
	}
	n.Lhs.Unparse(w, 0)
	io.WriteString(w, " = ")
	n.Rhs.Unparse(w, 0)
	if parens {
		io.WriteString(w, ")")
	}
}

func (n *CallExp) Unparse(w io.Writer, indent int) {
	n.Id.Unparse(w, 0)
	io.WriteString(w, "(")
	n.Args.Unparse(w, 0)
	io.WriteString(w, ")")
}

func (n *UnaryExp) Unparse(w io.Writer, indent int) {
	fmt.Fprintf(w, "(%s", n.Op)
	n.To.Unparse(w, 0)
	io.WriteString(w, ")")
}

func (n *BinaryExp) Unparse(w io.Writer, indent int) {
	io.WriteString(w, "(")
	n.Left.Unparse(w, 0)
	fmt.Fprintf(w, " %s ", n.Op)
	n.Right.Unparse(w, 0)
	io.WriteString(w, ")")
}
