package ast

// TypeExpr is the surface syntax for a type annotation (spec.md §6):
//
//	bool, i8..i64, u8..u64, f16/f32/f64      PrimTypeExpr
//	(t1, ..., tn) / ()                        TupleTypeExpr
//	fn (t) -> u                               FnTypeExpr
//	&t, &mut t                                RefTypeExpr
//	*t, *mut t                                PtrTypeExpr
//	[t * N]                                   SizedArrayTypeExpr
//	[t]                                       UnsizedArrayTypeExpr
//	Name[arg1, ..., argn]                     NameTypeExpr
//
// The checker's head-emission pass (spec.md §5) lowers a TypeExpr into a
// canonical typetable.Type by asking the typetable for the matching
// constructor and resolving NameTypeExpr against the enclosing scope.
type TypeExpr interface {
	Node
	typeExprNode()
}

type typeExprBase struct{ Range }

func (typeExprBase) typeExprNode() {}

// PrimTypeExpr names one of the closed set of primitive tags.
type PrimTypeExpr struct {
	typeExprBase
	Name string // "bool", "i8".."i64", "u8".."u64", "f16", "f32", "f64"
}

// TupleTypeExpr is `(t1, ..., tn)`; Elems == nil means unit `()`.
type TupleTypeExpr struct {
	typeExprBase
	Elems []TypeExpr
}

// FnTypeExpr is `fn (t) -> u`.
type FnTypeExpr struct {
	typeExprBase
	Dom, Codom TypeExpr
}

// RefTypeExpr is `&t` / `&mut t`, with an optional address-space suffix.
type RefTypeExpr struct {
	typeExprBase
	Pointee   TypeExpr
	Mut       bool
	AddrSpace uint32
}

// PtrTypeExpr is `*t` / `*mut t`.
type PtrTypeExpr struct {
	typeExprBase
	Pointee   TypeExpr
	Mut       bool
	AddrSpace uint32
}

// SizedArrayTypeExpr is `[t * N]`.
type SizedArrayTypeExpr struct {
	typeExprBase
	Elem TypeExpr
	Size uint64
	Simd bool
}

// UnsizedArrayTypeExpr is `[t]`.
type UnsizedArrayTypeExpr struct {
	typeExprBase
	Elem TypeExpr
}

// NameTypeExpr is `Name[arg1, ...]`: a reference to a user type (struct,
// enum, trait, impl, alias) or to an in-scope type parameter, applied to
// zero or more type arguments.
type NameTypeExpr struct {
	typeExprBase
	Name string
	Args []TypeExpr
}
