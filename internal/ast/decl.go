package ast

import "github.com/PearCoding/artic/typetable"

// declBase factors out the mutable type slot and name every DeclNode has.
type declBase struct {
	Range
	Name string
	typ  typetable.Type
}

func (d *declBase) DeclName() string          { return d.Name }
func (d *declBase) Type() typetable.Type      { return d.typ }
func (d *declBase) SetType(t typetable.Type)  { d.typ = t }

// TypeParam is one generic parameter of a struct/enum/trait/impl/fn
// declaration: a type-parameter node in its own right (spec.md §3's
// "identity = AST type-parameter node" for TypeVar).
type TypeParam struct {
	declBase
}

// WhereClause constrains a generic declaration's type parameters to satisfy
// a trait application (spec.md GLOSSARY). TraitRef is the source syntax for
// the obligation; Type is the resolved TraitType or TypeApp-over-TraitType,
// computed during head emission from TraitRef.
type WhereClause struct {
	Range
	TraitRef TypeExpr
	typ      typetable.Type
}

func (w *WhereClause) Type() typetable.Type     { return w.typ }
func (w *WhereClause) SetType(t typetable.Type) { w.typ = t }

// FieldDecl is one field of a StructDecl.
type FieldDecl struct {
	Range
	Name     string
	TypeExpr TypeExpr
}

// StructDecl declares a nominal struct type.
type StructDecl struct {
	declBase
	TypeParams []*TypeParam
	Fields     []*FieldDecl
	Parent     *ModDecl
}

// VariantDecl is one variant of an EnumDecl; a unit variant has no fields.
type VariantDecl struct {
	Range
	Name   string
	Fields []*FieldDecl
}

// EnumDecl declares a nominal enum type.
type EnumDecl struct {
	declBase
	TypeParams []*TypeParam
	Variants   []*VariantDecl
	Parent     *ModDecl
}

// TraitDecl declares a trait: a named set of required methods, modeled here
// only as far as the type core needs (its own nominal identity plus the
// type parameters it is generic over).
type TraitDecl struct {
	declBase
	TypeParams []*TypeParam
	Parent     *ModDecl
}

// ImplDecl declares `impl[TypeParams] TraitRef for ImpledType where
// WhereClauses`. ImpledType is mandatory; TraitRef is nil for an inherent
// impl (no trait being implemented, just methods on ImpledType).
type ImplDecl struct {
	declBase
	TypeParams   []*TypeParam
	TraitRef     TypeExpr
	ImpledType   TypeExpr
	WhereClauses []*WhereClause
	Parent       *ModDecl

	// ImpledTyp and TraitTyp are the computed types of ImpledType/TraitRef,
	// filled in at head emission — the resolver matches candidates by these,
	// not by re-walking the TypeExpr.
	ImpledTyp typetable.Type
	TraitTyp  typetable.Type
}

// TypeAliasDecl declares `type Name[TypeParams] = Body`.
type TypeAliasDecl struct {
	declBase
	TypeParams []*TypeParam
	Body       TypeExpr
	Parent     *ModDecl
}

// Param is one parameter of a FnDecl.
type Param struct {
	Range
	Name     string
	TypeExpr TypeExpr
	typ      typetable.Type
}

func (p *Param) Type() typetable.Type     { return p.typ }
func (p *Param) SetType(t typetable.Type) { p.typ = t }

// FnDecl declares a function. EnclosingFn is non-nil when this FnDecl is
// itself nested in another function's body (a closure or local fn); Parent
// is the nearest enclosing module either way, since modules, not functions,
// terminate the "walk up enclosing modules" phase of impl resolution
// (spec.md §4.6).
type FnDecl struct {
	declBase
	TypeParams   []*TypeParam
	WhereClauses []*WhereClause
	Params       []*Param
	ReturnType   TypeExpr
	Body         Expr
	Parent       *ModDecl
	EnclosingFn  *FnDecl
}

// ModDecl declares a module: an ordered list of nested declarations and an
// optional enclosing module (nil for the root). Module resolution across
// files is out of scope (spec.md §1's Non-goals); ModDecl only models the
// lexical nesting a single parsed unit exposes.
type ModDecl struct {
	declBase
	Decls  []DeclNode
	Parent *ModDecl
}

// File is the root of one parsed compilation unit: a single top-level
// module plus a name for diagnostics.
type File struct {
	Range
	Name string
	Root *ModDecl
}
