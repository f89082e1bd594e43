package analyze

// Type analysis is the second depth-first traversal. It assumes a
// completed, error-free name analysis: every identifier occurrence carries
// its symbol, so the scoped table is no longer needed. Each expression
// computes a static type; a failed check reports once and substitutes the
// error sentinel, which absorbs every later comparison so one mistake does
// not cascade into follow-on diagnostics.

import (
	"fmt"

	"github.com/frozendustbunny/Magic4/ast"
	"github.com/frozendustbunny/Magic4/symtab"
	"github.com/frozendustbunny/Magic4/types"
)

var (
	typeInt     = types.New(types.TYPE_INT)
	typeBool    = types.New(types.TYPE_BOOL)
	typeString  = types.New(types.TYPE_STRING)
	typeError   = types.New(types.TYPE_ERROR)
	typeSuccess = types.New(types.TYPE_SUCCESS)
)

// AnalyzeTypes checks every declaration and returns the success marker; the
// verdict lives in the Sink. Calling it on a program whose name analysis
// reported errors is a driver bug and will panic on the first unbound
// identifier.
func (a *Analyzer) AnalyzeTypes(prog *ast.Program) *types.Type {
	for _, d := range prog.Decls.Decls {
		switch t := d.(type) {
		case *ast.VarDecl, *ast.StructDecl:
			// declarations were fully checked during name analysis
		case *ast.FnDecl:
			a.checkFnDecl(t)
		default:
			panic(fmt.Sprintf("check: unhandled declaration %T", t))
		}
	}
	return typeSuccess
}

func (a *Analyzer) checkFnDecl(fd *ast.FnDecl) {
	fs, ok := fd.Id.Sym.(*symtab.FnSym)
	if !ok {
		panic(fmt.Sprintf("check: function %q has no signature", fd.Id.Name))
	}
	a.curfn = fs
	for _, s := range fd.Body.Stmts.Stmts {
		a.checkStmt(s)
	}
	// The fall-off check only inspects the body's direct statements: a
	// return nested inside both branches of an if/else does not count.
	if !fs.Returns.Is(types.TYPE_VOID) && !hasTopLevelReturn(fd.Body.Stmts) {
		a.errorf(fd.Id.P, "%w: %q", ErrReturnMissing, fd.Id.Name)
	}
	a.curfn = nil
}

func hasTopLevelReturn(sl *ast.StmtList) bool {
	for _, s := range sl.Stmts {
		if _, ok := s.(*ast.ReturnStmt); ok {
			return true
		}
	}
	return false
}

func (a *Analyzer) checkStmt(s ast.Stmt) {
	switch t := s.(type) {
	case *ast.AssignStmt:
		a.checkExp(t.Assign)
	case *ast.PostIncStmt:
		a.checkIncDec(t.Exp)
	case *ast.PostDecStmt:
		a.checkIncDec(t.Exp)
	case *ast.ReadStmt:
		a.checkRead(t)
	case *ast.WriteStmt:
		a.checkWrite(t)
	case *ast.IfStmt:
		a.checkCond(t.Cond, "if")
		a.checkStmtList(t.Stmts)
	case *ast.IfElseStmt:
		a.checkCond(t.Cond, "if")
		a.checkStmtList(t.ThenStmts)
		a.checkStmtList(t.ElseStmts)
	case *ast.WhileStmt:
		a.checkCond(t.Cond, "while")
		a.checkStmtList(t.Stmts)
	case *ast.CallStmt:
		a.checkExp(t.Call)
	case *ast.ReturnStmt:
		a.checkReturn(t)
	default:
		panic(fmt.Sprintf("check: unhandled statement %T", t))
	}
}

func (a *Analyzer) checkStmtList(sl *ast.StmtList) {
	for _, s := range sl.Stmts {
		a.checkStmt(s)
	}
}

func (a *Analyzer) checkIncDec(e ast.Exp) {
	t := a.checkExp(e)
	if !t.IsError() && !t.Is(types.TYPE_INT) {
		a.errorf(e.Pos(), "%w: got %s", ErrArithOperand, t)
	}
}

func (a *Analyzer) checkRead(n *ast.ReadStmt) {
	t := a.checkExp(n.Exp)
	switch t.Type {
	case types.TYPE_FUNC:
		a.errorf(n.Exp.Pos(), "%w: a function", ErrReadOperand)
	case types.TYPE_STRUCT:
		a.errorf(n.Exp.Pos(), "%w: a struct name", ErrReadOperand)
	case types.TYPE_STRUCTVAR:
		a.errorf(n.Exp.Pos(), "%w: a struct variable", ErrReadOperand)
	}
}

func (a *Analyzer) checkWrite(n *ast.WriteStmt) {
	t := a.checkExp(n.Exp)
	switch t.Type {
	case types.TYPE_FUNC:
		a.errorf(n.Exp.Pos(), "%w: a function", ErrWriteOperand)
	case types.TYPE_STRUCT:
		a.errorf(n.Exp.Pos(), "%w: a struct name", ErrWriteOperand)
	case types.TYPE_STRUCTVAR:
		a.errorf(n.Exp.Pos(), "%w: a struct variable", ErrWriteOperand)
	case types.TYPE_VOID:
		a.errorf(n.Exp.Pos(), "%w: void", ErrWriteOperand)
	}
}

// checkCond recurses into the branch bodies regardless of the condition's
// verdict; error recovery keeps checking the rest of the program.
func (a *Analyzer) checkCond(cond ast.Exp, what string) {
	t := a.checkExp(cond)
	if !t.IsError() && !t.Matches(typeBool) {
		a.errorf(cond.Pos(), "%w: %s condition is %s", ErrCondNonBool, what, t)
	}
}

func (a *Analyzer) checkReturn(r *ast.ReturnStmt) {
	if a.curfn == nil {
		panic("check: return statement outside any function")
	}
	returns := a.curfn.Returns
	if r.Exp == nil {
		if !returns.Is(types.TYPE_VOID) {
			a.errorf(r.P, "%w", ErrReturnMissingVal)
		}
		return
	}
	t := a.checkExp(r.Exp)
	if returns.Is(types.TYPE_VOID) {
		// Returning a value from void is structural: reported even when
		// the value's own checking already failed.
		a.errorf(r.Exp.Pos(), "%w", ErrReturnVoidValue)
		return
	}
	if !t.IsError() && !t.Matches(returns) {
		a.errorf(r.Exp.Pos(), "%w: wanted %s, got %s", ErrReturnBadValue, returns, t)
	}
}

func (a *Analyzer) checkExp(e ast.Exp) *types.Type {
	switch t := e.(type) {
	case *ast.IntLit:
		return typeInt
	case *ast.StrLit:
		return typeString
	case *ast.TrueLit:
		return typeBool
	case *ast.FalseLit:
		return typeBool
	case *ast.Ident:
		return identType(t)
	case *ast.DotAccess:
		return a.checkDotAccess(t)
	case *ast.Assign:
		return a.checkAssign(t)
	case *ast.CallExp:
		return a.checkCall(t)
	case *ast.UnaryExp:
		return a.checkUnary(t)
	case *ast.BinaryExp:
		return a.checkBinary(t)
	default:
		panic(fmt.Sprintf("check: unhandled expression %T", t))
	}
}

func identType(id *ast.Ident) *types.Type {
	if id.Sym == nil {
		panic(fmt.Sprintf("check: unresolved identifier %q survived name analysis", id.Name))
	}
	return id.Sym.Type()
}

func (a *Analyzer) checkDotAccess(d *ast.DotAccess) *types.Type {
	a.checkExp(d.Loc)
	if d.Id.Sym == nil {
		panic(fmt.Sprintf("check: unresolved field %q survived name analysis", d.Id.Name))
	}
	return d.Id.Sym.Type()
}

func (a *Analyzer) checkAssign(n *ast.Assign) *types.Type {
	lt := a.checkExp(n.Lhs)
	rt := a.checkExp(n.Rhs)
	// Function names and struct names are not values; neither side may be
	// one.
	switch {
	case lt.Is(types.TYPE_FUNC) && rt.Is(types.TYPE_FUNC):
		a.errorf(n.Lhs.Pos(), "%w: function assignment", ErrAssignTarget)
		return typeError
	case lt.Is(types.TYPE_STRUCT) && rt.Is(types.TYPE_STRUCT):
		a.errorf(n.Lhs.Pos(), "%w: struct name assignment", ErrAssignTarget)
		return typeError
	case lt.Is(types.TYPE_FUNC) || lt.Is(types.TYPE_STRUCT):
		a.errorf(n.Lhs.Pos(), "%w", ErrAssignTarget)
		return typeError
	}
	if lt.IsError() || rt.IsError() {
		return typeError
	}
	if !lt.Matches(rt) {
		a.errorf(n.Lhs.Pos(), "%w: %s vs %s", ErrAssignMismatch, lt, rt)
		return typeError
	}
	// Assignment is an expression whose value has the left side's type.
	return lt
}

func (a *Analyzer) checkCall(n *ast.CallExp) *types.Type {
	fs, ok := n.Id.Sym.(*symtab.FnSym)
	if !ok {
		a.errorf(n.Id.P, "%w: %q", ErrCallNonFunc, n.Id.Name)
		// The arguments still get checked for their own errors.
		for _, arg := range n.Args.Exps {
			a.checkExp(arg)
		}
		return typeError
	}
	got := n.Args.Exps
	if len(got) != len(fs.Params) {
		a.errorf(n.Id.P, "%w: wanted %d, got %d", ErrCallArity, len(fs.Params), len(got))
	}
	// Each actual is checked against its formal independently; one bad
	// argument does not hide the next.
	for i := 0; i < min(len(got), len(fs.Params)); i++ {
		at := a.checkExp(got[i])
		if !at.IsError() && !at.Matches(fs.Params[i]) {
			a.errorf(got[i].Pos(), "%w: wanted %s, got %s", ErrCallArgType, fs.Params[i], at)
		}
	}
	for i := len(fs.Params); i < len(got); i++ {
		a.checkExp(got[i])
	}
	// The call types as the declared return type even when arguments were
	// rejected.
	return fs.Returns
}

func (a *Analyzer) checkUnary(n *ast.UnaryExp) *types.Type {
	t := a.checkExp(n.To)
	if t.IsError() {
		return typeError
	}
	switch n.Op {
	case ast.UNOP_NEG:
		if !t.Matches(typeInt) {
			a.errorf(n.To.Pos(), "%w: got %s", ErrArithOperand, t)
			return typeError
		}
		return typeInt
	case ast.UNOP_NOT:
		if !t.Matches(typeBool) {
			a.errorf(n.To.Pos(), "%w: got %s", ErrLogicalOperand, t)
			return typeError
		}
		return typeBool
	default:
		panic(fmt.Sprintf("check: unhandled unary operator %d", n.Op))
	}
}

func (a *Analyzer) checkBinary(n *ast.BinaryExp) *types.Type {
	lt := a.checkExp(n.Left)
	rt := a.checkExp(n.Right)
	switch n.Op {
	case ast.BINOP_PLUS, ast.BINOP_MINUS, ast.BINOP_TIMES, ast.BINOP_DIVIDE:
		return a.checkOperands(n, lt, rt, typeInt, ErrArithOperand, typeInt)
	case ast.BINOP_AND, ast.BINOP_OR:
		return a.checkOperands(n, lt, rt, typeBool, ErrLogicalOperand, typeBool)
	case ast.BINOP_LT, ast.BINOP_GT, ast.BINOP_LE, ast.BINOP_GE:
		return a.checkOperands(n, lt, rt, typeInt, ErrRelationalOperand, typeBool)
	case ast.BINOP_EQ, ast.BINOP_NE:
		return a.checkEq(n, lt, rt)
	default:
		panic(fmt.Sprintf("check: unhandled binary operator %d", n.Op))
	}
}

// checkOperands validates both operands against want, reporting each bad
// operand at its own position, and yields result or the error sentinel. An
// operand that is already the sentinel neither reports nor re-validates.
func (a *Analyzer) checkOperands(n *ast.BinaryExp, lt, rt, want *types.Type, kind error, result *types.Type) *types.Type {
	bad := false
	if lt.IsError() {
		bad = true
	} else if !lt.Matches(want) {
		a.errorf(n.Left.Pos(), "%w: got %s", kind, lt)
		bad = true
	}
	if rt.IsError() {
		bad = true
	} else if !rt.Matches(want) {
		a.errorf(n.Right.Pos(), "%w: got %s", kind, rt)
		bad = true
	}
	if bad {
		return typeError
	}
	return result
}

func (a *Analyzer) checkEq(n *ast.BinaryExp, lt, rt *types.Type) *types.Type {
	if lt.IsError() || rt.IsError() {
		return typeError
	}
	// void, functions and bare struct names cannot be compared; struct
	// variables compare by layout name.
	banned := func(k *types.Type) bool {
		return k.Is(types.TYPE_VOID) || k.Is(types.TYPE_FUNC) || k.Is(types.TYPE_STRUCT)
	}
	if banned(lt) || banned(rt) {
		a.errorf(n.Left.Pos(), "%w: got %s and %s", ErrEqBadOperand, lt, rt)
		return typeError
	}
	if !lt.Matches(rt) {
		a.errorf(n.Left.Pos(), "%w: %s vs %s", ErrEqMismatch, lt, rt)
		return typeError
	}
	return typeBool
}
