// Package types captures everything we need to know about a Mini AST node's
// static type.
package types

import (
	"fmt"
	"strings"
)

type TypeEnum int

const (
	TYPE_INT TypeEnum = iota
	TYPE_BOOL
	TYPE_VOID
	TYPE_STRING
	TYPE_STRUCT
	TYPE_STRUCTVAR
	TYPE_FUNC
	TYPE_ERROR
	TYPE_SUCCESS
)

var typenames = [...]string{
	"int",
	"bool",
	"void",
	"string",
	"struct",
	"structvar",
	"function",
	"error",
	"success",
}

// Type is used to propagate type information from declarations to
// expressions. TYPE_ERROR is the sentinel assigned to subtrees whose
// checking already failed; TYPE_SUCCESS is the no-value marker returned by
// statement-level checks.
type Type struct {
	Type  TypeEnum
	Extra ExtraType // used for structs and functions
}

type ExtraType interface {
	IsExtra()
}

// StructName names a user-defined record layout. TYPE_STRUCT carries it for
// the declaration itself, TYPE_STRUCTVAR for variables of that layout.
type StructName struct {
	Name string
}

type Function struct {
	Params  []*Type
	Returns *Type
}

func New(t TypeEnum) *Type {
	switch t {
	case TYPE_STRUCT, TYPE_STRUCTVAR, TYPE_FUNC:
		panic(fmt.Sprintf("type %s constructed without its payload", typenames[t]))
	}
	return &Type{Type: t}
}

func NewStruct(name string) *Type {
	return &Type{Type: TYPE_STRUCT, Extra: &StructName{Name: name}}
}

func NewStructVar(name string) *Type {
	return &Type{Type: TYPE_STRUCTVAR, Extra: &StructName{Name: name}}
}

func NewFunction(params []*Type, returns *Type) *Type {
	return &Type{Type: TYPE_FUNC, Extra: &Function{Params: params, Returns: returns}}
}

func (k *Type) Is(t TypeEnum) bool {
	return k.Type == t
}

// IsError reports whether k is exactly the error sentinel. Checks must ask
// this before re-validating an operand: an error-typed subtree has already
// been reported once and produces no further diagnostics.
func (k *Type) IsError() bool {
	return k.Type == TYPE_ERROR
}

// Matches implements structural type equality. The error sentinel matches
// every type, so comparisons built on an already-failed subtree cannot fail
// a second time.
func (k *Type) Matches(k2 *Type) bool {
	if k.Type == TYPE_ERROR || k2.Type == TYPE_ERROR {
		return true
	}
	if k.Type != k2.Type {
		return false
	}
	// Failed type assertions here mean a Type was built without its payload,
	// which is a constructor bug, so panicking is correct.
	switch k.Type {
	case TYPE_STRUCT, TYPE_STRUCTVAR:
		return k.Extra.(*StructName).Name == k2.Extra.(*StructName).Name
	case TYPE_FUNC:
		return k.Extra.(*Function).Matches(k2.Extra.(*Function))
	default:
		return true
	}
}

func (f *Function) Matches(f2 *Function) bool {
	if len(f.Params) != len(f2.Params) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Matches(f2.Params[i]) {
			return false
		}
	}
	return f.Returns.Matches(f2.Returns)
}

func (k *Type) String() string {
	switch k.Type {
	case TYPE_STRUCT, TYPE_STRUCTVAR:
		return k.Extra.(*StructName).Name
	case TYPE_FUNC:
		return k.Extra.(*Function).String()
	default:
		return typenames[k.Type]
	}
}

// String renders a function signature the way declarations are annotated in
// unparsed output: "int,bool->void".
func (f *Function) String() string {
	b := &strings.Builder{}
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(p.String())
	}
	b.WriteString("->")
	b.WriteString(f.Returns.String())
	return b.String()
}

func (t TypeEnum) String() string {
	return typenames[t]
}

func (ie *Function) IsExtra()   {}
func (ie *StructName) IsExtra() {}
