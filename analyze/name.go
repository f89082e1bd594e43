package analyze

// Name analysis is a single depth-first traversal which populates the
// scoped symbol table, opening a scope per function body, struct body and
// branch body, and attaches the resolved symbol to every identifier
// occurrence. The table is threaded explicitly through every call; it is
// discarded once the pass completes, since each identifier then carries its
// own binding.

import (
	"errors"
	"fmt"

	"github.com/frozendustbunny/Magic4/ast"
	"github.com/frozendustbunny/Magic4/symtab"
	"github.com/frozendustbunny/Magic4/types"
)

// AnalyzeNames binds identifiers and checks declarations. Success or
// failure is observable through the Sink afterwards.
func (a *Analyzer) AnalyzeNames(prog *ast.Program) {
	tab := symtab.NewTable()
	tab.EnterScope()
	a.nameDeclList(prog.Decls, tab, tab)
	a.exitScope(tab)
}

// exitScope pops a scope we know we pushed. A failure here is a traversal
// bug and must not be absorbed into user diagnostics.
func (a *Analyzer) exitScope(tab *symtab.Table) {
	if err := tab.ExitScope(); err != nil {
		panic(fmt.Sprintf("scope stack misuse: %v", err))
	}
}

// nameDeclList names each declaration. Lookups go through look; bindings go
// into decl. The two differ only inside struct bodies, whose fields live in
// a private namespace while their type names still resolve lexically.
func (a *Analyzer) nameDeclList(dl *ast.DeclList, look, decl *symtab.Table) {
	for _, d := range dl.Decls {
		switch t := d.(type) {
		case *ast.VarDecl:
			a.nameVarDecl(t.Type, t.Id, look, decl)
		case *ast.FnDecl:
			a.nameFnDecl(t, decl)
		case *ast.StructDecl:
			a.nameStructDecl(t, decl)
		default:
			panic(fmt.Sprintf("name: unhandled declaration %T", t))
		}
	}
}

func (a *Analyzer) nameVarDecl(tn ast.TypeNode, id *ast.Ident, look, decl *symtab.Table) {
	switch t := tn.(type) {
	case *ast.VoidNode:
		// void is not a storable type; the declaration is dropped.
		a.errorf(id.P, "%w: %q", ErrVoidDecl, id.Name)
	case *ast.IntNode:
		a.declare(decl, id, symtab.NewVarSym(types.New(types.TYPE_INT)))
	case *ast.BoolNode:
		a.declare(decl, id, symtab.NewVarSym(types.New(types.TYPE_BOOL)))
	case *ast.StructNode:
		sd, ok := look.LookupLexical(t.Id.Name).(*symtab.StructDeclSym)
		if !ok {
			a.errorf(t.Id.P, "%w: %q", ErrBadStructType, t.Id.Name)
			return
		}
		t.Id.Sym = sd
		a.declare(decl, id, symtab.NewStructVarSym(t.Id.Name, sd))
	default:
		panic(fmt.Sprintf("name: unhandled declared type %T", t))
	}
}

// declare inserts the symbol into the innermost scope and binds the
// identifier on success. A duplicate drops the later declaration and
// analysis proceeds.
func (a *Analyzer) declare(decl *symtab.Table, id *ast.Ident, sym symtab.Sym) {
	switch err := decl.Declare(id.Name, sym); {
	case err == nil:
		id.Sym = sym
	case errors.Is(err, symtab.ErrDuplicateSymbol):
		a.errorf(id.P, "%w: %q", ErrMultiplyDeclared, id.Name)
	default:
		panic(fmt.Sprintf("scope stack misuse: %v", err))
	}
}

func (a *Analyzer) nameFnDecl(fd *ast.FnDecl, tab *symtab.Table) {
	// The function is declared in the enclosing scope first: it shares the
	// identifier namespace with variables, and its body may refer to it.
	params := make([]*types.Type, 0, len(fd.Formals.Formals))
	for _, f := range fd.Formals.Formals {
		params = append(params, declaredType(f.Type))
	}
	a.declare(tab, fd.Id, symtab.NewFnSym(params, declaredType(fd.Ret)))

	tab.EnterScope()
	for _, f := range fd.Formals.Formals {
		a.nameVarDecl(f.Type, f.Id, tab, tab)
	}
	a.nameDeclList(fd.Body.Decls, tab, tab)
	a.nameStmtList(fd.Body.Stmts, tab)
	a.exitScope(tab)
}

func (a *Analyzer) nameStructDecl(sd *ast.StructDecl, tab *symtab.Table) {
	// Fields form a private namespace: they are declared into their own
	// table while their type names still resolve against the enclosing
	// scopes. The field scope stays open inside the symbol so that dot
	// access can LookupLocal into it later.
	fields := symtab.NewTable()
	fields.EnterScope()
	for _, d := range sd.Fields.Decls {
		vd, ok := d.(*ast.VarDecl)
		if !ok {
			panic(fmt.Sprintf("name: struct field is %T, not a variable declaration", d))
		}
		a.nameVarDecl(vd.Type, vd.Id, tab, fields)
	}
	a.declare(tab, sd.Id, symtab.NewStructDeclSym(sd.Id.Name, fields))
}

// declaredType maps a written type to its static type value. A struct name
// maps to the struct-variable type regardless of whether the struct exists;
// the declaration rule reports the missing struct separately.
func declaredType(tn ast.TypeNode) *types.Type {
	switch t := tn.(type) {
	case *ast.IntNode:
		return types.New(types.TYPE_INT)
	case *ast.BoolNode:
		return types.New(types.TYPE_BOOL)
	case *ast.VoidNode:
		return types.New(types.TYPE_VOID)
	case *ast.StructNode:
		return types.NewStructVar(t.Id.Name)
	default:
		panic(fmt.Sprintf("name: unhandled declared type %T", t))
	}
}

func (a *Analyzer) nameStmtList(sl *ast.StmtList, tab *symtab.Table) {
	for _, s := range sl.Stmts {
		a.nameStmt(s, tab)
	}
}

func (a *Analyzer) nameStmt(s ast.Stmt, tab *symtab.Table) {
	withScope := func(dl *ast.DeclList, sl *ast.StmtList) {
		tab.EnterScope()
		a.nameDeclList(dl, tab, tab)
		a.nameStmtList(sl, tab)
		a.exitScope(tab)
	}
	switch t := s.(type) {
	case *ast.AssignStmt:
		a.nameExp(t.Assign, tab)
	case *ast.PostIncStmt:
		a.nameExp(t.Exp, tab)
	case *ast.PostDecStmt:
		a.nameExp(t.Exp, tab)
	case *ast.ReadStmt:
		a.nameExp(t.Exp, tab)
	case *ast.WriteStmt:
		a.nameExp(t.Exp, tab)
	case *ast.IfStmt:
		a.nameExp(t.Cond, tab)
		withScope(t.Decls, t.Stmts)
	case *ast.IfElseStmt:
		a.nameExp(t.Cond, tab)
		withScope(t.ThenDecls, t.ThenStmts)
		withScope(t.ElseDecls, t.ElseStmts)
	case *ast.WhileStmt:
		a.nameExp(t.Cond, tab)
		withScope(t.Decls, t.Stmts)
	case *ast.CallStmt:
		a.nameExp(t.Call, tab)
	case *ast.ReturnStmt:
		if t.Exp != nil {
			a.nameExp(t.Exp, tab)
		}
	default:
		panic(fmt.Sprintf("name: unhandled statement %T", t))
	}
}

func (a *Analyzer) nameExp(e ast.Exp, tab *symtab.Table) {
	switch t := e.(type) {
	case *ast.IntLit, *ast.StrLit, *ast.TrueLit, *ast.FalseLit:
		// leaves without names
	case *ast.Ident:
		a.nameIdent(t, tab)
	case *ast.DotAccess:
		a.nameDotAccess(t, tab)
	case *ast.Assign:
		a.nameExp(t.Lhs, tab)
		a.nameExp(t.Rhs, tab)
	case *ast.CallExp:
		a.nameIdent(t.Id, tab)
		for _, arg := range t.Args.Exps {
			a.nameExp(arg, tab)
		}
	case *ast.UnaryExp:
		a.nameExp(t.To, tab)
	case *ast.BinaryExp:
		a.nameExp(t.Left, tab)
		a.nameExp(t.Right, tab)
	default:
		panic(fmt.Sprintf("name: unhandled expression %T", t))
	}
}

func (a *Analyzer) nameIdent(id *ast.Ident, tab *symtab.Table) {
	sym := tab.LookupLexical(id.Name)
	if sym == nil {
		// The binding stays unset, which downstream checks read as "do not
		// check uses of this result further".
		a.errorf(id.P, "%w: %q", ErrUndeclared, id.Name)
		return
	}
	id.Sym = sym
}

func (a *Analyzer) nameDotAccess(d *ast.DotAccess, tab *symtab.Table) {
	a.nameExp(d.Loc, tab)

	// The grammar only produces identifiers and nested accesses on the
	// left of a dot; anything else cannot name a struct variable.
	var loc symtab.Sym
	switch t := d.Loc.(type) {
	case *ast.Ident:
		loc = t.Sym
	case *ast.DotAccess:
		loc = t.Id.Sym
	default:
		a.errorf(d.Loc.Pos(), "%w", ErrDotAccessNonStruct)
		return
	}
	if loc == nil {
		// Left side already failed to resolve; one report is enough.
		return
	}
	sv, ok := loc.(*symtab.StructVarSym)
	if !ok {
		a.errorf(d.Loc.Pos(), "%w", ErrDotAccessNonStruct)
		return
	}
	// Fields resolve inside the struct's own namespace, never lexically.
	field := sv.Decl.Fields.LookupLocal(d.Id.Name)
	if field == nil {
		a.errorf(d.Id.P, "%w: %q has no field %q", ErrBadStructField, sv.TypeName, d.Id.Name)
		return
	}
	d.Id.Sym = field
}
