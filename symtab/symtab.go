// Package symtab implements the scoped symbol table and the symbol variants
// shared by the analysis passes.
package symtab

import "errors"

var (
	// ErrDuplicateSymbol is returned by Declare when the name already
	// exists in the innermost scope. Shadowing across nested scopes is
	// legal and does not trigger it.
	ErrDuplicateSymbol = errors.New("symbol is already declared in this scope")
	// ErrEmptyTable is returned when declaring into or popping a table with
	// no open scope. Callers treat it as a traversal bug, not a user error.
	ErrEmptyTable = errors.New("no scope is open")
)

// Table is an ordered stack of scopes, each mapping a name unique within
// that scope to its Sym.
type Table struct {
	scopes []map[string]Sym
}

func NewTable() *Table {
	return &Table{}
}

// EnterScope pushes a new empty scope.
func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, map[string]Sym{})
}

// ExitScope pops the innermost scope.
func (t *Table) ExitScope() error {
	if len(t.scopes) == 0 {
		return ErrEmptyTable
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
	return nil
}

// Declare inserts sym into the innermost scope. On ErrDuplicateSymbol the
// existing entry is left untouched.
func (t *Table) Declare(name string, sym Sym) error {
	if len(t.scopes) == 0 {
		return ErrEmptyTable
	}
	top := t.scopes[len(t.scopes)-1]
	if _, ok := top[name]; ok {
		return ErrDuplicateSymbol
	}
	top[name] = sym
	return nil
}

// LookupLocal searches the innermost scope only. Absence is a valid answer
// and yields nil.
func (t *Table) LookupLocal(name string) Sym {
	if len(t.scopes) == 0 {
		return nil
	}
	return t.scopes[len(t.scopes)-1][name]
}

// LookupLexical scans scopes innermost to outermost and returns the first
// match, or nil.
func (t *Table) LookupLexical(name string) Sym {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i][name]; ok {
			return sym
		}
	}
	return nil
}
