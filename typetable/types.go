// Package typetable owns the canonical type universe (spec.md §3/§4.1): a
// closed set of type shapes, hash-consed so that structurally equal types
// share one pointer and immutable after insertion.
//
// Identity comparison (== on a Type) is a sound substitute for structural
// equality exactly because every constructor interns through the same
// table: calling a constructor twice with structurally equal arguments
// always returns the same pointer (spec.md §4.1's contract, invariant 1 of
// spec.md §8).
package typetable

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// DeclNode is the identity carried by every nominal Type (struct, enum,
// trait, impl, module, alias, type variable, forall): spec.md §3 says a
// nominal type's identity "is its defining declaration, not its contents".
// Hash need not be collision-free on its own — nominal Equals always also
// compares DeclNode with ==, which is what actually disambiguates — it only
// needs to be stable for the lifetime of the node so the table can bucket it.
type DeclNode interface {
	Hash() uint64
}

// Type is the interface implemented by every member of the canonical type
// universe. Every Type value handed out by a Table is a pointer to one of
// the concrete shapes in this file; the Table guarantees it is the unique
// such pointer for its structural (or nominal) content.
type Type interface {
	fmt.Stringer
	Hash() uint64
	// Equals reports structural equality for structural shapes and decl
	// identity for nominal ones (spec.md §4.2). Because every Type in play
	// was produced by the same Table, callers may also just compare with ==.
	Equals(Type) bool
	isType()
}

// PrimTag is the closed set of primitive type tags (spec.md §3).
type PrimTag uint8

const (
	Bool PrimTag = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F16
	F32
	F64
)

func (p PrimTag) String() string {
	switch p {
	case Bool:
		return "bool"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case F16:
		return "f16"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return "<invalid prim>"
	}
}

// IsInteger and BitWidth are restored from the original C++ implementation
// (types.cpp: is_integer, bitcount) — SPEC_FULL.md §13. The back-end
// consults them for IR emission width selection (spec.md §6).
func (p PrimTag) IsInteger() bool {
	switch p {
	case Bool, I8, I16, I32, I64, U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

func (p PrimTag) IsUnsigned() bool {
	switch p {
	case U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

func (p PrimTag) BitWidth() int {
	switch p {
	case Bool:
		return 1
	case I8, U8:
		return 8
	case I16, U16, F16:
		return 16
	case I32, U32, F32:
		return 32
	case I64, U64, F64:
		return 64
	default:
		return 0
	}
}

func hashBytes(tag string, parts ...uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(tag))
	var arr []byte
	for _, p := range parts {
		arr = binary.LittleEndian.AppendUint64(arr, p)
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

func boolU64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// ---- PrimType ----

type PrimType struct{ Tag PrimTag }

func (*PrimType) isType()          {}
func (t *PrimType) String() string { return t.Tag.String() }
func (t *PrimType) Hash() uint64   { return hashBytes("prim", uint64(t.Tag)) }
func (t *PrimType) Equals(o Type) bool {
	other, ok := o.(*PrimType)
	return ok && other.Tag == t.Tag
}

// ---- TupleType ----

// TupleType is an ordered sequence of Type; the empty tuple is unit.
type TupleType struct{ Elems []Type }

func (*TupleType) isType() {}
func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *TupleType) Hash() uint64 {
	parts := make([]uint64, len(t.Elems)+1)
	parts[0] = uint64(len(t.Elems))
	for i, e := range t.Elems {
		parts[i+1] = e.Hash()
	}
	return hashBytes("tuple", parts...)
}
func (t *TupleType) Equals(o Type) bool {
	other, ok := o.(*TupleType)
	if !ok || len(other.Elems) != len(t.Elems) {
		return false
	}
	for i, e := range t.Elems {
		if other.Elems[i] != e {
			return false
		}
	}
	return true
}

// ---- SizedArrayType ----

type SizedArrayType struct {
	Elem Type
	Size uint64
	Simd bool
}

func (*SizedArrayType) isType() {}
func (t *SizedArrayType) String() string {
	if t.Simd {
		return fmt.Sprintf("simd[%s * %d]", t.Elem, t.Size)
	}
	return fmt.Sprintf("[%s * %d]", t.Elem, t.Size)
}
func (t *SizedArrayType) Hash() uint64 {
	return hashBytes("sizedarray", t.Elem.Hash(), t.Size, boolU64(t.Simd))
}
func (t *SizedArrayType) Equals(o Type) bool {
	other, ok := o.(*SizedArrayType)
	return ok && other.Elem == t.Elem && other.Size == t.Size && other.Simd == t.Simd
}

// ---- UnsizedArrayType ----

type UnsizedArrayType struct{ Elem Type }

func (*UnsizedArrayType) isType()          {}
func (t *UnsizedArrayType) String() string { return fmt.Sprintf("[%s]", t.Elem) }
func (t *UnsizedArrayType) Hash() uint64   { return hashBytes("unsizedarray", t.Elem.Hash()) }
func (t *UnsizedArrayType) Equals(o Type) bool {
	other, ok := o.(*UnsizedArrayType)
	return ok && other.Elem == t.Elem
}

// ---- PtrType ----

type PtrType struct {
	Pointee   Type
	Mut       bool
	AddrSpace uint32
}

func (*PtrType) isType() {}
func (t *PtrType) String() string {
	if t.Mut {
		return fmt.Sprintf("*mut %s", t.Pointee)
	}
	return fmt.Sprintf("*%s", t.Pointee)
}
func (t *PtrType) Hash() uint64 {
	return hashBytes("ptr", t.Pointee.Hash(), boolU64(t.Mut), uint64(t.AddrSpace))
}
func (t *PtrType) Equals(o Type) bool {
	other, ok := o.(*PtrType)
	return ok && other.Pointee == t.Pointee && other.Mut == t.Mut && other.AddrSpace == t.AddrSpace
}

// ---- RefType ----

type RefType struct {
	Pointee   Type
	Mut       bool
	AddrSpace uint32
}

func (*RefType) isType() {}
func (t *RefType) String() string {
	if t.Mut {
		return fmt.Sprintf("&mut %s", t.Pointee)
	}
	return fmt.Sprintf("&%s", t.Pointee)
}
func (t *RefType) Hash() uint64 {
	return hashBytes("ref", t.Pointee.Hash(), boolU64(t.Mut), uint64(t.AddrSpace))
}
func (t *RefType) Equals(o Type) bool {
	other, ok := o.(*RefType)
	return ok && other.Pointee == t.Pointee && other.Mut == t.Mut && other.AddrSpace == t.AddrSpace
}

// ---- FnType ----

// FnType is curried via tuples: multi-argument functions are represented as
// fn(TupleType(args)) -> codom (spec.md §3).
type FnType struct{ Dom, Codom Type }

func (*FnType) isType()          {}
func (t *FnType) String() string { return fmt.Sprintf("fn (%s) -> %s", t.Dom, t.Codom) }
func (t *FnType) Hash() uint64   { return hashBytes("fn", t.Dom.Hash(), t.Codom.Hash()) }
func (t *FnType) Equals(o Type) bool {
	other, ok := o.(*FnType)
	return ok && other.Dom == t.Dom && other.Codom == t.Codom
}

// ---- nullary singletons: NoRetType, BottomType, TopType, TypeError ----

type NoRetType struct{}

func (*NoRetType) isType()          {}
func (*NoRetType) String() string   { return "noreturn" }
func (*NoRetType) Hash() uint64     { return hashBytes("noret") }
func (*NoRetType) Equals(o Type) bool {
	_, ok := o.(*NoRetType)
	return ok
}

// BottomType is ⊥: the unique bottom of the subtyping lattice.
type BottomType struct{}

func (*BottomType) isType()        {}
func (*BottomType) String() string { return "bottom" }
func (*BottomType) Hash() uint64   { return hashBytes("bottom") }
func (*BottomType) Equals(o Type) bool {
	_, ok := o.(*BottomType)
	return ok
}

// TopType is ⊤: the unique top of the subtyping lattice.
type TopType struct{}

func (*TopType) isType()        {}
func (*TopType) String() string { return "top" }
func (*TopType) Hash() uint64   { return hashBytes("top") }
func (*TopType) Equals(o Type) bool {
	_, ok := o.(*TopType)
	return ok
}

// TypeErrorType is both a subtype and a supertype of every type, for
// silencing cascades (spec.md §7).
type TypeErrorType struct{}

func (*TypeErrorType) isType()        {}
func (*TypeErrorType) String() string { return "<error>" }
func (*TypeErrorType) Hash() uint64   { return hashBytes("typeerror") }
func (*TypeErrorType) Equals(o Type) bool {
	_, ok := o.(*TypeErrorType)
	return ok
}

// ---- TypeVar ----

// TypeVar's identity is the AST type-parameter node it binds (spec.md §3).
// Inference unknowns are also TypeVars, attached to a synthetic DeclNode
// minted by Fresher (spec.md §9).
type TypeVar struct {
	Decl DeclNode
	// Hint is a display-only name; it plays no part in identity or equality.
	Hint string
}

func (*TypeVar) isType()        {}
func (t *TypeVar) String() string {
	if t.Hint != "" {
		return t.Hint
	}
	return fmt.Sprintf("'t%x", t.Decl.Hash()&0xffff)
}
func (t *TypeVar) Hash() uint64 { return hashBytes("typevar", t.Decl.Hash()) }
func (t *TypeVar) Equals(o Type) bool {
	other, ok := o.(*TypeVar)
	return ok && other.Decl == t.Decl
}

// ---- ForallType ----

// ForallType's identity is the AST fn-decl node it quantifies over.
type ForallType struct {
	Decl DeclNode
	Body Type
}

func (*ForallType) isType()        {}
func (t *ForallType) String() string { return fmt.Sprintf("forall %s", t.Body) }
func (t *ForallType) Hash() uint64   { return hashBytes("forall", t.Decl.Hash()) }
func (t *ForallType) Equals(o Type) bool {
	other, ok := o.(*ForallType)
	return ok && other.Decl == t.Decl
}

// ---- nominal user types: StructType, EnumType, TraitType, ImplType, ModType ----

type StructType struct {
	Decl DeclNode
	Name string
}

func (*StructType) isType()        {}
func (t *StructType) String() string { return t.Name }
func (t *StructType) Hash() uint64   { return hashBytes("struct", t.Decl.Hash()) }
func (t *StructType) Equals(o Type) bool {
	other, ok := o.(*StructType)
	return ok && other.Decl == t.Decl
}

type EnumType struct {
	Decl DeclNode
	Name string
}

func (*EnumType) isType()        {}
func (t *EnumType) String() string { return t.Name }
func (t *EnumType) Hash() uint64   { return hashBytes("enum", t.Decl.Hash()) }
func (t *EnumType) Equals(o Type) bool {
	other, ok := o.(*EnumType)
	return ok && other.Decl == t.Decl
}

type TraitType struct {
	Decl DeclNode
	Name string
}

func (*TraitType) isType()        {}
func (t *TraitType) String() string { return t.Name }
func (t *TraitType) Hash() uint64   { return hashBytes("trait", t.Decl.Hash()) }
func (t *TraitType) Equals(o Type) bool {
	other, ok := o.(*TraitType)
	return ok && other.Decl == t.Decl
}

type ImplType struct {
	Decl DeclNode
	Name string
}

func (*ImplType) isType()        {}
func (t *ImplType) String() string { return t.Name }
func (t *ImplType) Hash() uint64   { return hashBytes("impl", t.Decl.Hash()) }
func (t *ImplType) Equals(o Type) bool {
	other, ok := o.(*ImplType)
	return ok && other.Decl == t.Decl
}

type ModType struct {
	Decl DeclNode
	Name string
}

func (*ModType) isType()        {}
func (t *ModType) String() string { return t.Name }
func (t *ModType) Hash() uint64   { return hashBytes("mod", t.Decl.Hash()) }
func (t *ModType) Equals(o Type) bool {
	other, ok := o.(*ModType)
	return ok && other.Decl == t.Decl
}

// TypeAlias is interned by TypeAliasOf so the alias declaration's own `type`
// slot can point at one. It is never the Applied side of a TypeApp: a TypeApp
// over it is reduced at construction (spec.md §4.1).
type TypeAlias struct {
	Decl   DeclNode
	Name   string
	Params []*TypeVar
	Body   Type
}

func (*TypeAlias) isType()        {}
func (t *TypeAlias) String() string { return t.Name }
func (t *TypeAlias) Hash() uint64   { return hashBytes("alias", t.Decl.Hash()) }
func (t *TypeAlias) Equals(o Type) bool {
	other, ok := o.(*TypeAlias)
	return ok && other.Decl == t.Decl
}

// ---- TypeApp ----

// TypeApp is a user type (never an alias — those are reduced eagerly)
// applied to ordered type arguments.
type TypeApp struct {
	Applied Type
	Args    []Type
}

func (*TypeApp) isType() {}
func (t *TypeApp) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Applied, strings.Join(parts, ", "))
}
func (t *TypeApp) Hash() uint64 {
	parts := make([]uint64, len(t.Args)+1)
	parts[0] = t.Applied.Hash()
	for i, a := range t.Args {
		parts[i+1] = a.Hash()
	}
	return hashBytes("typeapp", parts...)
}
func (t *TypeApp) Equals(o Type) bool {
	other, ok := o.(*TypeApp)
	if !ok || other.Applied != t.Applied || len(other.Args) != len(t.Args) {
		return false
	}
	for i, a := range t.Args {
		if other.Args[i] != a {
			return false
		}
	}
	return true
}

// IsNominal reports whether t carries AST-decl identity rather than
// structural identity (spec.md §3/§4.2's "nominal" vs "structural" split).
func IsNominal(t Type) bool {
	switch t.(type) {
	case *TypeVar, *ForallType, *StructType, *EnumType, *TraitType, *ImplType, *ModType, *TypeAlias:
		return true
	default:
		return false
	}
}
