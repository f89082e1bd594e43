// Package astjson decodes and encodes syntax trees as JSON documents. The
// parser runs as a separate program and hands its tree over in this format;
// every node is an object whose "kind" field selects the variant. Documents
// come from outside the process, so malformed input is reported as an error
// and never panics.
package astjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/frozendustbunny/Magic4/ast"
	"github.com/frozendustbunny/Magic4/span"
)

var ErrBadDocument = errors.New("malformed syntax tree document")

// jnode is the wire shape of every node. Only the fields relevant to a
// given kind are populated.
type jnode struct {
	Kind string `json:"kind"`
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Name string `json:"name,omitempty"`
	Int  int    `json:"int,omitempty"`
	Str  string `json:"str,omitempty"`
	Op   string `json:"op,omitempty"`

	Id    *jnode `json:"id,omitempty"`
	Type  *jnode `json:"type,omitempty"`
	Ret   *jnode `json:"ret,omitempty"`
	Loc   *jnode `json:"loc,omitempty"`
	Lhs   *jnode `json:"lhs,omitempty"`
	Rhs   *jnode `json:"rhs,omitempty"`
	Cond  *jnode `json:"cond,omitempty"`
	Exp   *jnode `json:"exp,omitempty"`
	Call  *jnode `json:"call,omitempty"`
	Left  *jnode `json:"left,omitempty"`
	Right *jnode `json:"right,omitempty"`

	Decls     []*jnode `json:"decls,omitempty"`
	Stmts     []*jnode `json:"stmts,omitempty"`
	Formals   []*jnode `json:"formals,omitempty"`
	Fields    []*jnode `json:"fields,omitempty"`
	Args      []*jnode `json:"args,omitempty"`
	ThenDecls []*jnode `json:"thendecls,omitempty"`
	ThenStmts []*jnode `json:"thenstmts,omitempty"`
	ElseDecls []*jnode `json:"elsedecls,omitempty"`
	ElseStmts []*jnode `json:"elsestmts,omitempty"`
}

func badNode(format string, va ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrBadDocument, fmt.Sprintf(format, va...))
}

// Decode reads one JSON document and builds the program tree.
func Decode(r io.Reader) (*ast.Program, error) {
	var root jnode
	dec := json.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	if root.Kind != "program" {
		return nil, badNode("root node is %q, wanted \"program\"", root.Kind)
	}
	decls, err := buildDeclList(root.Decls)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Decls: decls}, nil
}

func buildDeclList(js []*jnode) (*ast.DeclList, error) {
	dl := &ast.DeclList{}
	for _, j := range js {
		d, err := buildDecl(j)
		if err != nil {
			return nil, err
		}
		dl.Decls = append(dl.Decls, d)
	}
	return dl, nil
}

func buildDecl(j *jnode) (ast.Decl, error) {
	if j == nil {
		return nil, badNode("missing declaration node")
	}
	switch j.Kind {
	case "vardecl":
		tn, err := buildTypeNode(j.Type)
		if err != nil {
			return nil, err
		}
		id, err := buildIdent(j.Id)
		if err != nil {
			return nil, err
		}
		return &ast.VarDecl{Type: tn, Id: id}, nil
	case "fndecl":
		return buildFnDecl(j)
	case "structdecl":
		id, err := buildIdent(j.Id)
		if err != nil {
			return nil, err
		}
		fields := &ast.DeclList{}
		for _, f := range j.Fields {
			if f == nil || f.Kind != "vardecl" {
				return nil, badNode("struct %q has a non-variable field", id.Name)
			}
			fd, err := buildDecl(f)
			if err != nil {
				return nil, err
			}
			fields.Decls = append(fields.Decls, fd)
		}
		return &ast.StructDecl{Id: id, Fields: fields}, nil
	default:
		return nil, badNode("unknown declaration kind %q", j.Kind)
	}
}

func buildFnDecl(j *jnode) (*ast.FnDecl, error) {
	ret, err := buildTypeNode(j.Ret)
	if err != nil {
		return nil, err
	}
	id, err := buildIdent(j.Id)
	if err != nil {
		return nil, err
	}
	formals := &ast.FormalsList{}
	for _, f := range j.Formals {
		if f == nil || f.Kind != "vardecl" {
			return nil, badNode("function %q has a malformed formal", id.Name)
		}
		tn, err := buildTypeNode(f.Type)
		if err != nil {
			return nil, err
		}
		fid, err := buildIdent(f.Id)
		if err != nil {
			return nil, err
		}
		formals.Formals = append(formals.Formals, &ast.FormalDecl{Type: tn, Id: fid})
	}
	decls, err := buildDeclList(j.Decls)
	if err != nil {
		return nil, err
	}
	stmts, err := buildStmtList(j.Stmts)
	if err != nil {
		return nil, err
	}
	return &ast.FnDecl{
		Ret:     ret,
		Id:      id,
		Formals: formals,
		Body:    &ast.FnBody{Decls: decls, Stmts: stmts},
	}, nil
}

func buildTypeNode(j *jnode) (ast.TypeNode, error) {
	if j == nil {
		return nil, badNode("missing type node")
	}
	switch j.Kind {
	case "int":
		return &ast.IntNode{}, nil
	case "bool":
		return &ast.BoolNode{}, nil
	case "void":
		return &ast.VoidNode{}, nil
	case "struct":
		id, err := buildIdent(j.Id)
		if err != nil {
			return nil, err
		}
		return &ast.StructNode{Id: id}, nil
	default:
		return nil, badNode("unknown type kind %q", j.Kind)
	}
}

func buildStmtList(js []*jnode) (*ast.StmtList, error) {
	sl := &ast.StmtList{}
	for _, j := range js {
		s, err := buildStmt(j)
		if err != nil {
			return nil, err
		}
		sl.Stmts = append(sl.Stmts, s)
	}
	return sl, nil
}

func buildStmt(j *jnode) (ast.Stmt, error) {
	if j == nil {
		return nil, badNode("missing statement node")
	}
	switch j.Kind {
	case "assign":
		lhs, err := buildExp(j.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := buildExp(j.Rhs)
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Assign: &ast.Assign{Lhs: lhs, Rhs: rhs}}, nil
	case "postinc":
		e, err := buildExp(j.Exp)
		if err != nil {
			return nil, err
		}
		return &ast.PostIncStmt{Exp: e}, nil
	case "postdec":
		e, err := buildExp(j.Exp)
		if err != nil {
			return nil, err
		}
		return &ast.PostDecStmt{Exp: e}, nil
	case "read":
		e, err := buildExp(j.Exp)
		if err != nil {
			return nil, err
		}
		return &ast.ReadStmt{Exp: e}, nil
	case "write":
		e, err := buildExp(j.Exp)
		if err != nil {
			return nil, err
		}
		return &ast.WriteStmt{Exp: e}, nil
	case "if":
		cond, err := buildExp(j.Cond)
		if err != nil {
			return nil, err
		}
		decls, err := buildDeclList(j.Decls)
		if err != nil {
			return nil, err
		}
		stmts, err := buildStmtList(j.Stmts)
		if err != nil {
			return nil, err
		}
		return &ast.IfStmt{Cond: cond, Decls: decls, Stmts: stmts}, nil
	case "ifelse":
		cond, err := buildExp(j.Cond)
		if err != nil {
			return nil, err
		}
		td, err := buildDeclList(j.ThenDecls)
		if err != nil {
			return nil, err
		}
		ts, err := buildStmtList(j.ThenStmts)
		if err != nil {
			return nil, err
		}
		ed, err := buildDeclList(j.ElseDecls)
		if err != nil {
			return nil, err
		}
		es, err := buildStmtList(j.ElseStmts)
		if err != nil {
			return nil, err
		}
		return &ast.IfElseStmt{
			Cond:      cond,
			ThenDecls: td,
			ThenStmts: ts,
			ElseDecls: ed,
			ElseStmts: es,
		}, nil
	case "while":
		cond, err := buildExp(j.Cond)
		if err != nil {
			return nil, err
		}
		decls, err := buildDeclList(j.Decls)
		if err != nil {
			return nil, err
		}
		stmts, err := buildStmtList(j.Stmts)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Cond: cond, Decls: decls, Stmts: stmts}, nil
	case "callstmt":
		call, err := buildStmtCall(j.Call)
		if err != nil {
			return nil, err
		}
		return &ast.CallStmt{Call: call}, nil
	case "return":
		r := &ast.ReturnStmt{P: span.Pos{Line: j.Line, Col: j.Col}}
		if j.Exp != nil {
			e, err := buildExp(j.Exp)
			if err != nil {
				return nil, err
			}
			r.Exp = e
		}
		return r, nil
	default:
		return nil, badNode("unknown statement kind %q", j.Kind)
	}
}

func buildStmtCall(j *jnode) (*ast.CallExp, error) {
	if j == nil || j.Kind != "call" {
		return nil, badNode("call statement without a call expression")
	}
	e, err := buildExp(j)
	if err != nil {
		return nil, err
	}
	return e.(*ast.CallExp), nil
}

func buildExp(j *jnode) (ast.Exp, error) {
	if j == nil {
		return nil, badNode("missing expression node")
	}
	pos := span.Pos{Line: j.Line, Col: j.Col}
	switch j.Kind {
	case "intlit":
		return &ast.IntLit{P: pos, Value: j.Int}, nil
	case "strlit":
		return &ast.StrLit{P: pos, Value: j.Str}, nil
	case "true":
		return &ast.TrueLit{P: pos}, nil
	case "false":
		return &ast.FalseLit{P: pos}, nil
	case "id":
		return buildIdent(j)
	case "dot":
		loc, err := buildExp(j.Loc)
		if err != nil {
			return nil, err
		}
		id, err := buildIdent(j.Id)
		if err != nil {
			return nil, err
		}
		return &ast.DotAccess{Loc: loc, Id: id}, nil
	case "assignexp":
		lhs, err := buildExp(j.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := buildExp(j.Rhs)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Lhs: lhs, Rhs: rhs}, nil
	case "call":
		id, err := buildIdent(j.Id)
		if err != nil {
			return nil, err
		}
		args := &ast.ExpList{}
		for _, a := range j.Args {
			e, err := buildExp(a)
			if err != nil {
				return nil, err
			}
			args.Exps = append(args.Exps, e)
		}
		return &ast.CallExp{Id: id, Args: args}, nil
	case "unary":
		to, err := buildExp(j.Exp)
		if err != nil {
			return nil, err
		}
		op, ok := unops[j.Op]
		if !ok {
			return nil, badNode("unknown unary operator %q", j.Op)
		}
		return &ast.UnaryExp{Op: op, To: to}, nil
	case "binary":
		left, err := buildExp(j.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildExp(j.Right)
		if err != nil {
			return nil, err
		}
		op, ok := binops[j.Op]
		if !ok {
			return nil, badNode("unknown binary operator %q", j.Op)
		}
		return &ast.BinaryExp{Op: op, Left: left, Right: right}, nil
	default:
		return nil, badNode("unknown expression kind %q", j.Kind)
	}
}

func buildIdent(j *jnode) (*ast.Ident, error) {
	if j == nil {
		return nil, badNode("missing identifier node")
	}
	if j.Kind != "id" {
		return nil, badNode("wanted an identifier, got kind %q", j.Kind)
	}
	if j.Name == "" {
		return nil, badNode("identifier without a name")
	}
	return &ast.Ident{P: span.Pos{Line: j.Line, Col: j.Col}, Name: j.Name}, nil
}

var unops = map[string]ast.UnOp{
	"neg": ast.UNOP_NEG,
	"not": ast.UNOP_NOT,
}

var binops = map[string]ast.BinOp{
	"plus":   ast.BINOP_PLUS,
	"minus":  ast.BINOP_MINUS,
	"times":  ast.BINOP_TIMES,
	"divide": ast.BINOP_DIVIDE,
	"and":    ast.BINOP_AND,
	"or":     ast.BINOP_OR,
	"eq":     ast.BINOP_EQ,
	"ne":     ast.BINOP_NE,
	"lt":     ast.BINOP_LT,
	"gt":     ast.BINOP_GT,
	"le":     ast.BINOP_LE,
	"ge":     ast.BINOP_GE,
}
