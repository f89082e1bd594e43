package symtab

import (
	"github.com/frozendustbunny/Magic4/types"
)

// Sym is the compile-time record of one declared name. Every variant carries
// an immutable static type tag computed at construction; String is the
// printable signature the unparser annotates identifier uses with.
type Sym interface {
	Type() *types.Type
	String() string
}

// VarSym describes a plain int- or bool-typed variable.
type VarSym struct {
	DeclType *types.Type
}

func NewVarSym(t *types.Type) *VarSym {
	return &VarSym{DeclType: t}
}

func (s *VarSym) Type() *types.Type {
	return s.DeclType
}

func (s *VarSym) String() string {
	return s.DeclType.String()
}

// FnSym describes a function: its formal parameter types in order plus the
// declared return type. Parameter names are not part of the identity.
type FnSym struct {
	Params  []*types.Type
	Returns *types.Type

	sig *types.Type
}

func NewFnSym(params []*types.Type, returns *types.Type) *FnSym {
	return &FnSym{
		Params:  params,
		Returns: returns,
		sig:     types.NewFunction(params, returns),
	}
}

func (s *FnSym) Type() *types.Type {
	return s.sig
}

func (s *FnSym) String() string {
	return s.sig.String()
}

// StructDeclSym describes a struct declaration: the struct's name plus its
// own field namespace. The namespace is a private single-scope Table; field
// resolution goes through LookupLocal, never the lexical chain.
type StructDeclSym struct {
	Name   string
	Fields *Table

	tag *types.Type
}

func NewStructDeclSym(name string, fields *Table) *StructDeclSym {
	return &StructDeclSym{
		Name:   name,
		Fields: fields,
		tag:    types.NewStruct(name),
	}
}

func (s *StructDeclSym) Type() *types.Type {
	return s.tag
}

func (s *StructDeclSym) String() string {
	return s.Name
}

// StructVarSym describes a variable whose type is a user-defined struct. It
// keeps the declared type name and the layout symbol it resolved to at
// declaration time; the pointer is non-owning and only read.
type StructVarSym struct {
	TypeName string
	Decl     *StructDeclSym

	tag *types.Type
}

func NewStructVarSym(name string, decl *StructDeclSym) *StructVarSym {
	return &StructVarSym{
		TypeName: name,
		Decl:     decl,
		tag:      types.NewStructVar(name),
	}
}

func (s *StructVarSym) Type() *types.Type {
	return s.tag
}

func (s *StructVarSym) String() string {
	return s.TypeName
}
