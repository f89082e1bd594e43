package astjson

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/frozendustbunny/Magic4/ast"
)

// Encode writes the program back out in the wire format Decode accepts.
// Symbol bindings are analysis state and do not survive the trip.
func Encode(w io.Writer, prog *ast.Program) error {
	root := &jnode{Kind: "program", Decls: declsToJ(prog.Decls)}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(root)
}

func declsToJ(dl *ast.DeclList) []*jnode {
	var out []*jnode
	for _, d := range dl.Decls {
		out = append(out, declToJ(d))
	}
	return out
}

func declToJ(d ast.Decl) *jnode {
	switch t := d.(type) {
	case *ast.VarDecl:
		return &jnode{Kind: "vardecl", Type: typeToJ(t.Type), Id: identToJ(t.Id)}
	case *ast.FnDecl:
		j := &jnode{
			Kind:  "fndecl",
			Ret:   typeToJ(t.Ret),
			Id:    identToJ(t.Id),
			Decls: declsToJ(t.Body.Decls),
			Stmts: stmtsToJ(t.Body.Stmts),
		}
		for _, f := range t.Formals.Formals {
			j.Formals = append(j.Formals, &jnode{
				Kind: "vardecl",
				Type: typeToJ(f.Type),
				Id:   identToJ(f.Id),
			})
		}
		return j
	case *ast.StructDecl:
		j := &jnode{Kind: "structdecl", Id: identToJ(t.Id)}
		for _, f := range t.Fields.Decls {
			j.Fields = append(j.Fields, declToJ(f))
		}
		return j
	default:
		panic(fmt.Sprintf("astjson: unhandled declaration %T", t))
	}
}

func typeToJ(tn ast.TypeNode) *jnode {
	switch t := tn.(type) {
	case *ast.IntNode:
		return &jnode{Kind: "int"}
	case *ast.BoolNode:
		return &jnode{Kind: "bool"}
	case *ast.VoidNode:
		return &jnode{Kind: "void"}
	case *ast.StructNode:
		return &jnode{Kind: "struct", Id: identToJ(t.Id)}
	default:
		panic(fmt.Sprintf("astjson: unhandled type node %T", t))
	}
}

func stmtsToJ(sl *ast.StmtList) []*jnode {
	var out []*jnode
	for _, s := range sl.Stmts {
		out = append(out, stmtToJ(s))
	}
	return out
}

func stmtToJ(s ast.Stmt) *jnode {
	switch t := s.(type) {
	case *ast.AssignStmt:
		return &jnode{Kind: "assign", Lhs: expToJ(t.Assign.Lhs), Rhs: expToJ(t.Assign.Rhs)}
	case *ast.PostIncStmt:
		return &jnode{Kind: "postinc", Exp: expToJ(t.Exp)}
	case *ast.PostDecStmt:
		return &jnode{Kind: "postdec", Exp: expToJ(t.Exp)}
	case *ast.ReadStmt:
		return &jnode{Kind: "read", Exp: expToJ(t.Exp)}
	case *ast.WriteStmt:
		return &jnode{Kind: "write", Exp: expToJ(t.Exp)}
	case *ast.IfStmt:
		return &jnode{
			Kind:  "if",
			Cond:  expToJ(t.Cond),
			Decls: declsToJ(t.Decls),
			Stmts: stmtsToJ(t.Stmts),
		}
	case *ast.IfElseStmt:
		return &jnode{
			Kind:      "ifelse",
			Cond:      expToJ(t.Cond),
			ThenDecls: declsToJ(t.ThenDecls),
			ThenStmts: stmtsToJ(t.ThenStmts),
			ElseDecls: declsToJ(t.ElseDecls),
			ElseStmts: stmtsToJ(t.ElseStmts),
		}
	case *ast.WhileStmt:
		return &jnode{
			Kind:  "while",
			Cond:  expToJ(t.Cond),
			Decls: declsToJ(t.Decls),
			Stmts: stmtsToJ(t.Stmts),
		}
	case *ast.CallStmt:
		return &jnode{Kind: "callstmt", Call: expToJ(t.Call)}
	case *ast.ReturnStmt:
		j := &jnode{Kind: "return", Line: t.P.Line, Col: t.P.Col}
		if t.Exp != nil {
			j.Exp = expToJ(t.Exp)
		}
		return j
	default:
		panic(fmt.Sprintf("astjson: unhandled statement %T", t))
	}
}

func expToJ(e ast.Exp) *jnode {
	switch t := e.(type) {
	case *ast.IntLit:
		return &jnode{Kind: "intlit", Line: t.P.Line, Col: t.P.Col, Int: t.Value}
	case *ast.StrLit:
		return &jnode{Kind: "strlit", Line: t.P.Line, Col: t.P.Col, Str: t.Value}
	case *ast.TrueLit:
		return &jnode{Kind: "true", Line: t.P.Line, Col: t.P.Col}
	case *ast.FalseLit:
		return &jnode{Kind: "false", Line: t.P.Line, Col: t.P.Col}
	case *ast.Ident:
		return identToJ(t)
	case *ast.DotAccess:
		return &jnode{Kind: "dot", Loc: expToJ(t.Loc), Id: identToJ(t.Id)}
	case *ast.Assign:
		return &jnode{Kind: "assignexp", Lhs: expToJ(t.Lhs), Rhs: expToJ(t.Rhs)}
	case *ast.CallExp:
		j := &jnode{Kind: "call", Id: identToJ(t.Id)}
		for _, a := range t.Args.Exps {
			j.Args = append(j.Args, expToJ(a))
		}
		return j
	case *ast.UnaryExp:
		return &jnode{Kind: "unary", Op: unopNames[t.Op], Exp: expToJ(t.To)}
	case *ast.BinaryExp:
		return &jnode{
			Kind:  "binary",
			Op:    binopNames[t.Op],
			Left:  expToJ(t.Left),
			Right: expToJ(t.Right),
		}
	default:
		panic(fmt.Sprintf("astjson: unhandled expression %T", t))
	}
}

func identToJ(id *ast.Ident) *jnode {
	return &jnode{Kind: "id", Line: id.P.Line, Col: id.P.Col, Name: id.Name}
}

var unopNames = map[ast.UnOp]string{
	ast.UNOP_NEG: "neg",
	ast.UNOP_NOT: "not",
}

var binopNames = map[ast.BinOp]string{
	ast.BINOP_PLUS:   "plus",
	ast.BINOP_MINUS:  "minus",
	ast.BINOP_TIMES:  "times",
	ast.BINOP_DIVIDE: "divide",
	ast.BINOP_AND:    "and",
	ast.BINOP_OR:     "or",
	ast.BINOP_EQ:     "eq",
	ast.BINOP_NE:     "ne",
	ast.BINOP_LT:     "lt",
	ast.BINOP_GT:     "gt",
	ast.BINOP_LE:     "le",
	ast.BINOP_GE:     "ge",
}
