package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frozendustbunny/Magic4/span"
	"github.com/frozendustbunny/Magic4/symtab"
	"github.com/frozendustbunny/Magic4/types"
)

func unparsed(n Node) string {
	b := &strings.Builder{}
	n.Unparse(b, 0)
	return b.String()
}

func TestUnparseVarDecl(t *testing.T) {
	d := &VarDecl{Type: &IntNode{}, Id: &Ident{Name: "x"}}
	require.Equal(t, "int x;\n", unparsed(d))
}

func TestUnparseAnnotatesUses(t *testing.T) {
	// A bound identifier use carries its signature; a declaration site
	// stays bare.
	intSym := symtab.NewVarSym(types.New(types.TYPE_INT))
	s := &AssignStmt{Assign: &Assign{
		Lhs: &Ident{Name: "x", Sym: intSym},
		Rhs: &Ident{Name: "a", Sym: intSym},
	}}
	require.Equal(t, "x(int) = a(int);\n", unparsed(s))
}

func TestUnparseFnDecl(t *testing.T) {
	f := &FnDecl{
		Ret:     &IntNode{},
		Id:      &Ident{Name: "twice"},
		Formals: &FormalsList{Formals: []*FormalDecl{{Type: &IntNode{}, Id: &Ident{Name: "n"}}}},
		Body: &FnBody{
			Decls: &DeclList{},
			Stmts: &StmtList{Stmts: []Stmt{
				&ReturnStmt{Exp: &BinaryExp{
					Op:    BINOP_TIMES,
					Left:  &Ident{Name: "n", Sym: symtab.NewVarSym(types.New(types.TYPE_INT))},
					Right: &IntLit{Value: 2},
				}},
			}},
		},
	}
	want := "int twice(int n) {\n" +
		"    return (n(int) * 2);\n" +
		"}\n\n"
	require.Equal(t, want, unparsed(f))
}

func TestUnparseStructAndDotAccess(t *testing.T) {
	sd := &StructDecl{
		Id: &Ident{Name: "pair"},
		Fields: &DeclList{Decls: []Decl{
			&VarDecl{Type: &IntNode{}, Id: &Ident{Name: "x"}},
		}},
	}
	require.Equal(t, "struct pair {\n    int x;\n};\n\n", unparsed(sd))

	pv := symtab.NewStructVarSym("pair", nil)
	fieldSym := symtab.NewVarSym(types.New(types.TYPE_INT))
	d := &DotAccess{
		Loc: &Ident{Name: "p", Sym: pv},
		Id:  &Ident{Name: "x", Sym: fieldSym},
	}
	require.Equal(t, "(p(pair)).x(int)", unparsed(d))
}

func TestUnparseIO(t *testing.T) {
	r := &ReadStmt{Exp: &Ident{Name: "x"}}
	require.Equal(t, "cin >> x;\n", unparsed(r))
	w := &WriteStmt{Exp: &StrLit{Value: "hi"}}
	require.Equal(t, "cout << \"hi\";\n", unparsed(w))
}

func TestUnparseControlFlow(t *testing.T) {
	s := &IfElseStmt{
		Cond:      &TrueLit{},
		ThenDecls: &DeclList{},
		ThenStmts: &StmtList{Stmts: []Stmt{&PostIncStmt{Exp: &Ident{Name: "x"}}}},
		ElseDecls: &DeclList{},
		ElseStmts: &StmtList{Stmts: []Stmt{&PostDecStmt{Exp: &Ident{Name: "x"}}}},
	}
	want := "if (true) {\n" +
		"    x++;\n" +
		"}\n" +
		"else {\n" +
		"    x--;\n" +
		"}\n"
	require.Equal(t, want, unparsed(s))
}

func TestUnparseNestedAssignParenthesized(t *testing.T) {
	// Only an assignment used as a subexpression gets parentheses.
	inner := &Assign{Lhs: &Ident{Name: "y"}, Rhs: &IntLit{Value: 1}}
	outer := &AssignStmt{Assign: &Assign{Lhs: &Ident{Name: "x"}, Rhs: inner}}
	require.Equal(t, "x = (y = 1);\n", unparsed(outer))
}

func TestCompoundPositions(t *testing.T) {
	// Compound expressions report their leftmost operand's position.
	at := span.Pos{Line: 3, Col: 7}
	b := &BinaryExp{
		Op:    BINOP_PLUS,
		Left:  &Ident{P: at, Name: "a"},
		Right: &IntLit{Value: 1},
	}
	require.Equal(t, at, b.Pos())
	u := &UnaryExp{Op: UNOP_NOT, To: &Ident{P: at, Name: "b"}}
	require.Equal(t, at, u.Pos())
}
