// Package ast defines the syntax tree of a Mini program as handed over by
// the external parser.
//
// The node set is closed. Internal nodes hold either a list of children
// (DeclList, FormalsList, StmtList, ExpList) or a fixed set of fields; the
// leaves for literals and identifiers carry line/column positions. Name
// analysis attaches a symtab.Sym to every identifier occurrence it resolves
// and the tree is otherwise never restructured.
package ast

import (
	"io"

	"github.com/frozendustbunny/Magic4/span"
	"github.com/frozendustbunny/Magic4/symtab"
)

// Node is implemented by every syntax tree node. Unparse renders the node
// back to Mini source, annotating resolved identifiers.
type Node interface {
	Unparse(w io.Writer, indent int)
}

// Decl is a top-level, function-local or struct-field declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is one statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Exp is an expression. Pos is the position diagnostics about the
// expression are tagged with; compound expressions delegate to their
// leftmost operand.
type Exp interface {
	Node
	Pos() span.Pos
	expNode()
}

// TypeNode is a declared type as written in the source.
type TypeNode interface {
	Node
	typeNode()
}

type Program struct {
	Decls *DeclList
}

type DeclList struct {
	Decls []Decl
}

type FormalsList struct {
	Formals []*FormalDecl
}

type FnBody struct {
	Decls *DeclList
	Stmts *StmtList
}

type StmtList struct {
	Stmts []Stmt
}

type ExpList struct {
	Exps []Exp
}

type VarDecl struct {
	Type TypeNode
	Id   *Ident
}

type FnDecl struct {
	Ret     TypeNode
	Id      *Ident
	Formals *FormalsList
	Body    *FnBody
}

type FormalDecl struct {
	Type TypeNode
	Id   *Ident
}

type StructDecl struct {
	Id     *Ident
	Fields *DeclList
}

type IntNode struct{}

type BoolNode struct{}

type VoidNode struct{}

type StructNode struct {
	Id *Ident
}

type AssignStmt struct {
	Assign *Assign
}

type PostIncStmt struct {
	Exp Exp
}

type PostDecStmt struct {
	Exp Exp
}

type ReadStmt struct {
	Exp Exp
}

type WriteStmt struct {
	Exp Exp
}

type IfStmt struct {
	Cond  Exp
	Decls *DeclList
	Stmts *StmtList
}

type IfElseStmt struct {
	Cond      Exp
	ThenDecls *DeclList
	ThenStmts *StmtList
	ElseDecls *DeclList
	ElseStmts *StmtList
}

type WhileStmt struct {
	Cond  Exp
	Decls *DeclList
	Stmts *StmtList
}

type CallStmt struct {
	Call *CallExp
}

type ReturnStmt struct {
	P   span.Pos
	Exp Exp // possibly nil
}

type IntLit struct {
	P     span.Pos
	Value int
}

type StrLit struct {
	P     span.Pos
	Value string
}

type TrueLit struct {
	P span.Pos
}

type FalseLit struct {
	P span.Pos
}

// Ident is one identifier occurrence. Sym is nil until name analysis binds
// the occurrence to its declaration; an occurrence left nil was reported as
// undeclared and is not checked further.
type Ident struct {
	P    span.Pos
	Name string
	Sym  symtab.Sym
}

// DotAccess is the field access Loc.Id. Name analysis resolves Id inside
// the field namespace of Loc's struct type, not the lexical chain.
type DotAccess struct {
	Loc Exp
	Id  *Ident
}

// Assign is an expression: its value is the assigned left-hand side.
type Assign struct {
	Lhs Exp
	Rhs Exp
}

type CallExp struct {
	Id   *Ident
	Args *ExpList
}

type UnOp int

const (
	UNOP_NEG UnOp = iota
	UNOP_NOT
)

var unopnames = [...]string{
	"-",
	"!",
}

type UnaryExp struct {
	Op UnOp
	To Exp
}

type BinOp int

const (
	BINOP_PLUS BinOp = iota
	BINOP_MINUS
	BINOP_TIMES
	BINOP_DIVIDE
	BINOP_AND
	BINOP_OR
	BINOP_EQ
	BINOP_NE
	BINOP_LT
	BINOP_GT
	BINOP_LE
	BINOP_GE
)

var binopnames = [...]string{
	"+",
	"-",
	"*",
	"/",
	"&&",
	"||",
	"==",
	"!=",
	"<",
	">",
	"<=",
	">=",
}

type BinaryExp struct {
	Op          BinOp
	Left, Right Exp
}

func (op UnOp) String() string {
	return unopnames[op]
}

func (op BinOp) String() string {
	return binopnames[op]
}

func (n *IntLit) Pos() span.Pos    { return n.P }
func (n *StrLit) Pos() span.Pos    { return n.P }
func (n *TrueLit) Pos() span.Pos   { return n.P }
func (n *FalseLit) Pos() span.Pos  { return n.P }
func (n *Ident) Pos() span.Pos     { return n.P }
func (n *DotAccess) Pos() span.Pos { return n.Loc.Pos() }
func (n *Assign) Pos() span.Pos    { return n.Lhs.Pos() }
func (n *CallExp) Pos() span.Pos   { return n.Id.P }
func (n *UnaryExp) Pos() span.Pos  { return n.To.Pos() }
func (n *BinaryExp) Pos() span.Pos { return n.Left.Pos() }

func (*VarDecl) declNode()    {}
func (*FnDecl) declNode()     {}
func (*FormalDecl) declNode() {}
func (*StructDecl) declNode() {}

func (*IntNode) typeNode()    {}
func (*BoolNode) typeNode()   {}
func (*VoidNode) typeNode()   {}
func (*StructNode) typeNode() {}

func (*AssignStmt) stmtNode()  {}
func (*PostIncStmt) stmtNode() {}
func (*PostDecStmt) stmtNode() {}
func (*ReadStmt) stmtNode()    {}
func (*WriteStmt) stmtNode()   {}
func (*IfStmt) stmtNode()      {}
func (*IfElseStmt) stmtNode()  {}
func (*WhileStmt) stmtNode()   {}
func (*CallStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()  {}

func (*IntLit) expNode()    {}
func (*StrLit) expNode()    {}
func (*TrueLit) expNode()   {}
func (*FalseLit) expNode()  {}
func (*Ident) expNode()     {}
func (*DotAccess) expNode() {}
func (*Assign) expNode()    {}
func (*CallExp) expNode()   {}
func (*UnaryExp) expNode()  {}
func (*BinaryExp) expNode() {}
