package analyze

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frozendustbunny/Magic4/ast"
)

func TestMultiplyDeclared(t *testing.T) {
	// The second declaration is blamed; the first stays in force.
	prog := program(mainFn(
		decls(
			vd(&ast.IntNode{}, 2, 7, "x"),
			vd(&ast.BoolNode{}, 3, 8, "x"),
		),
		stmts(),
	))
	requireOne(t, prog, ErrMultiplyDeclared, pos(3, 8))
}

func TestFnSharesNamespaceWithVars(t *testing.T) {
	// int main; void main() {} collide at the top level.
	prog := program(
		vd(&ast.IntNode{}, 1, 5, "main"),
		mainFn(decls(), stmts()),
	)
	requireOne(t, prog, ErrMultiplyDeclared, pos(1, 6))
}

func TestShadowingIsLegal(t *testing.T) {
	// int x; void main(bool x) { x = true; } resolves the use against the
	// formal, not the global.
	formal := &ast.FormalDecl{Type: &ast.BoolNode{}, Id: idn(2, 16, "x")}
	use := idn(3, 3, "x")
	prog := program(
		vd(&ast.IntNode{}, 1, 5, "x"),
		fd(&ast.VoidNode{}, 2, 6, "main", formals(formal),
			decls(),
			stmts(assign(use, btrue(3, 7)))),
	)
	requireClean(t, prog)
	require.Same(t, formal.Id.Sym, use.Sym)
}

func TestBranchScopesAreSeparate(t *testing.T) {
	// The then and else arms each open their own scope, so both may
	// declare int y without colliding.
	prog := program(mainFn(
		decls(),
		stmts(&ast.IfElseStmt{
			Cond:      btrue(2, 7),
			ThenDecls: decls(vd(&ast.IntNode{}, 3, 9, "y")),
			ThenStmts: stmts(assign(idn(4, 5, "y"), ilit(4, 9, 1))),
			ElseDecls: decls(vd(&ast.IntNode{}, 6, 9, "y")),
			ElseStmts: stmts(assign(idn(7, 5, "y"), ilit(7, 9, 2))),
		}),
	))
	requireClean(t, prog)
}

func TestUndeclared(t *testing.T) {
	prog := program(mainFn(
		decls(),
		stmts(assign(idn(2, 3, "x"), ilit(2, 7, 1))),
	))
	requireOne(t, prog, ErrUndeclared, pos(2, 3))
}

func TestVoidDeclDropped(t *testing.T) {
	// void x is rejected and not entered, so its later use is undeclared
	// as well.
	prog := program(mainFn(
		decls(vd(&ast.VoidNode{}, 2, 8, "x")),
		stmts(assign(idn(3, 3, "x"), ilit(3, 7, 1))),
	))
	diags := analyzed(prog)
	require.Len(t, diags, 2)
	require.ErrorIs(t, diags[0], ErrVoidDecl)
	require.Equal(t, pos(2, 8), diags[0].Pos)
	require.ErrorIs(t, diags[1], ErrUndeclared)
	require.Equal(t, pos(3, 3), diags[1].Pos)
}

func TestBadStructType(t *testing.T) {
	// struct point p; with no struct point in scope blames the type name.
	prog := program(mainFn(
		decls(&ast.VarDecl{
			Type: &ast.StructNode{Id: idn(2, 10, "point")},
			Id:   idn(2, 16, "p"),
		}),
		stmts(),
	))
	requireOne(t, prog, ErrBadStructType, pos(2, 10))
}

func TestVarIsNotAStructType(t *testing.T) {
	// int point; struct point p; finds a symbol for point, but it does
	// not name a struct.
	prog := program(
		vd(&ast.IntNode{}, 1, 5, "point"),
		mainFn(
			decls(&ast.VarDecl{
				Type: &ast.StructNode{Id: idn(2, 10, "point")},
				Id:   idn(2, 16, "p"),
			}),
			stmts(),
		),
	)
	requireOne(t, prog, ErrBadStructType, pos(2, 10))
}

func pairDecl() *ast.StructDecl {
	// struct pair { int x; bool y; };
	return &ast.StructDecl{
		Id: idn(1, 8, "pair"),
		Fields: decls(
			vd(&ast.IntNode{}, 1, 19, "x"),
			vd(&ast.BoolNode{}, 1, 27, "y"),
		),
	}
}

func pairVar(line, col int, name string) *ast.VarDecl {
	return &ast.VarDecl{
		Type: &ast.StructNode{Id: idn(line, col, "pair")},
		Id:   idn(line, col+5, name),
	}
}

func TestStructFieldAccess(t *testing.T) {
	// p.x = 3 resolves x inside pair's field namespace.
	prog := program(
		pairDecl(),
		mainFn(
			decls(pairVar(2, 10, "p")),
			stmts(assign(
				&ast.DotAccess{Loc: idn(3, 3, "p"), Id: idn(3, 5, "x")},
				ilit(3, 9, 3),
			)),
		),
	)
	requireClean(t, prog)
}

func TestBadStructField(t *testing.T) {
	prog := program(
		pairDecl(),
		mainFn(
			decls(pairVar(2, 10, "p")),
			stmts(assign(
				&ast.DotAccess{Loc: idn(3, 3, "p"), Id: idn(3, 5, "z")},
				ilit(3, 9, 3),
			)),
		),
	)
	requireOne(t, prog, ErrBadStructField, pos(3, 5))
}

func TestDotAccessOfNonStruct(t *testing.T) {
	// a.x where a is an int blames the left side.
	prog := program(mainFn(
		decls(vd(&ast.IntNode{}, 2, 7, "a")),
		stmts(assign(
			&ast.DotAccess{Loc: idn(3, 3, "a"), Id: idn(3, 5, "x")},
			ilit(3, 9, 3),
		)),
	))
	requireOne(t, prog, ErrDotAccessNonStruct, pos(3, 3))
}

func TestFieldsAreNotLexicallyVisible(t *testing.T) {
	// A field name is only reachable through dot access, not as a plain
	// identifier.
	prog := program(
		pairDecl(),
		mainFn(
			decls(),
			stmts(assign(idn(3, 3, "x"), ilit(3, 7, 1))),
		),
	)
	requireOne(t, prog, ErrUndeclared, pos(3, 3))
}

func TestNestedDotAccess(t *testing.T) {
	// struct outer { struct pair q; }; o.q.x chains through two field
	// namespaces.
	outer := &ast.StructDecl{
		Id: idn(2, 8, "outer"),
		Fields: decls(&ast.VarDecl{
			Type: &ast.StructNode{Id: idn(2, 23, "pair")},
			Id:   idn(2, 28, "q"),
		}),
	}
	prog := program(
		pairDecl(),
		outer,
		mainFn(
			decls(&ast.VarDecl{
				Type: &ast.StructNode{Id: idn(3, 10, "outer")},
				Id:   idn(3, 16, "o"),
			}),
			stmts(assign(
				&ast.DotAccess{
					Loc: &ast.DotAccess{Loc: idn(4, 3, "o"), Id: idn(4, 5, "q")},
					Id:  idn(4, 7, "x"),
				},
				ilit(4, 11, 3),
			)),
		),
	)
	requireClean(t, prog)
}

func TestDuplicateStructField(t *testing.T) {
	prog := program(&ast.StructDecl{
		Id: idn(1, 8, "pair"),
		Fields: decls(
			vd(&ast.IntNode{}, 1, 19, "x"),
			vd(&ast.BoolNode{}, 1, 27, "x"),
		),
	})
	requireOne(t, prog, ErrMultiplyDeclared, pos(1, 27))
}
