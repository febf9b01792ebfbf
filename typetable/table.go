package typetable

import (
	"log/slog"

	"github.com/PearCoding/artic/internal/corelog"
	"github.com/PearCoding/artic/util/hset"
	"github.com/benbjohnson/immutable"
)

var log = corelog.Default.With("section", "typetable")

// typeHasher adapts Type's own Hash/Equals to the immutable.Hasher shape the
// teacher's util/hset already standardized on, so the canonical store below
// is the same "hash bucket, disambiguate with Equal" idiom used elsewhere in
// this codebase for seen-sets, just applied to interning instead.
type typeHasher struct{}

func (typeHasher) Hash(t Type) uint32   { return uint32(t.Hash()) }
func (typeHasher) Equal(a, b Type) bool { return a.Equals(b) }

var _ immutable.Hasher[Type] = typeHasher{}

// Table owns the canonical type universe for one compilation unit (spec.md
// §4.1). It is the sole mutator of the canonical set (spec.md §5); every
// other component only holds the Type pointers it hands out. Table is not
// safe for concurrent use — the whole type core is single-threaded
// (spec.md §5).
type Table struct {
	interned hset.HSet[Type]

	bottomType *BottomType
	topType    *TopType
	noRetType  *NoRetType
	typeErr    *TypeErrorType
	fresher    *Fresher

	// Member metadata for nominal complex types. Kept out of StructType and
	// EnumType themselves (rather than as a field mutated in place after
	// interning) so that "immutable after insertion" (spec.md §3) holds for
	// the Type values proper; this registry is auxiliary Table state, not
	// part of the canonical Type's own identity or equality.
	structFields map[*StructType][]FieldType
	enumVariants map[*EnumType][]EnumVariant
}

// FieldType names one field of a struct or one payload slot of an enum
// variant.
type FieldType struct {
	Name string
	Type Type
}

// EnumVariant names one variant of an EnumType and its payload fields
// (empty for a unit variant).
type EnumVariant struct {
	Name   string
	Fields []FieldType
}

// NewTable creates an empty type table with its nullary singletons ready.
func NewTable() *Table {
	return &Table{
		interned:     hset.New[Type](typeHasher{}),
		bottomType:   &BottomType{},
		topType:      &TopType{},
		noRetType:    &NoRetType{},
		typeErr:      &TypeErrorType{},
		fresher:      NewFresher(),
		structFields: make(map[*StructType][]FieldType),
		enumVariants: make(map[*EnumType][]EnumVariant),
	}
}

func (t *Table) intern(ty Type) Type {
	canonical := t.interned.GetOrInsert(ty)
	if canonical == ty {
		log.Debug("interned new type", slog.String("type", ty.String()))
	}
	return canonical
}

// ---- structural constructors ----

func (t *Table) PrimTypeOf(tag PrimTag) Type { return t.intern(&PrimType{Tag: tag}) }

func (t *Table) TupleTypeOf(elems []Type) Type {
	cp := append([]Type(nil), elems...)
	return t.intern(&TupleType{Elems: cp})
}

func (t *Table) SizedArrayTypeOf(elem Type, size uint64, simd bool) Type {
	return t.intern(&SizedArrayType{Elem: elem, Size: size, Simd: simd})
}

func (t *Table) UnsizedArrayTypeOf(elem Type) Type {
	return t.intern(&UnsizedArrayType{Elem: elem})
}

func (t *Table) PtrTypeOf(pointee Type, mut bool, addrSpace uint32) Type {
	return t.intern(&PtrType{Pointee: pointee, Mut: mut, AddrSpace: addrSpace})
}

func (t *Table) RefTypeOf(pointee Type, mut bool, addrSpace uint32) Type {
	return t.intern(&RefType{Pointee: pointee, Mut: mut, AddrSpace: addrSpace})
}

func (t *Table) FnTypeOf(dom, codom Type) Type {
	return t.intern(&FnType{Dom: dom, Codom: codom})
}

// CnTypeOf is fn_type(dom, no_ret_type()): a "continuation" type that never
// returns, spec.md §4.1.
func (t *Table) CnTypeOf(dom Type) Type { return t.FnTypeOf(dom, t.NoRetType()) }

// ---- singletons ----

func (t *Table) BoolType() Type  { return t.PrimTypeOf(Bool) }
func (t *Table) UnitType() Type  { return t.TupleTypeOf(nil) }
func (t *Table) BottomType() Type { return t.bottomType }
func (t *Table) TopType() Type    { return t.topType }
func (t *Table) NoRetType() Type  { return t.noRetType }
func (t *Table) TypeErrorType() Type { return t.typeErr }

// ---- type variables and quantifiers ----

func (t *Table) TypeVarOf(decl DeclNode, hint string) Type {
	return t.intern(&TypeVar{Decl: decl, Hint: hint})
}

// FreshTypeVar mints a TypeVar bound to a synthetic DeclNode rather than a
// real AST type-parameter node: the inference-variable modeling spec.md §9
// recommends ("fresh TypeVars attached to a local bounds map" instead of a
// distinct UnknownType shape).
func (t *Table) FreshTypeVar(hint string) Type {
	return t.TypeVarOf(t.fresher.Next(), hint)
}

func (t *Table) ForallTypeOf(decl DeclNode, body Type) Type {
	return t.intern(&ForallType{Decl: decl, Body: body})
}

// ---- nominal user types ----

func (t *Table) StructTypeOf(decl DeclNode, name string) *StructType {
	return t.intern(&StructType{Decl: decl, Name: name}).(*StructType)
}

func (t *Table) EnumTypeOf(decl DeclNode, name string) *EnumType {
	return t.intern(&EnumType{Decl: decl, Name: name}).(*EnumType)
}

// SetStructFields records the field types of a struct once its identity
// (and the identities of every type it mentions) is known — i.e. at the end
// of head emission (spec.md §5), never during body checking.
func (t *Table) SetStructFields(s *StructType, fields []FieldType) {
	t.structFields[s] = fields
}

// StructFields returns the previously-registered fields of s, if any.
func (t *Table) StructFields(s *StructType) ([]FieldType, bool) {
	f, ok := t.structFields[s]
	return f, ok
}

// SetEnumVariants records the variants of an enum, mirroring SetStructFields.
func (t *Table) SetEnumVariants(e *EnumType, variants []EnumVariant) {
	t.enumVariants[e] = variants
}

// EnumVariants returns the previously-registered variants of e, if any.
func (t *Table) EnumVariants(e *EnumType) ([]EnumVariant, bool) {
	v, ok := t.enumVariants[e]
	return v, ok
}

func (t *Table) TraitTypeOf(decl DeclNode, name string) Type {
	return t.intern(&TraitType{Decl: decl, Name: name})
}

func (t *Table) ImplTypeOf(decl DeclNode, name string) Type {
	return t.intern(&ImplType{Decl: decl, Name: name})
}

func (t *Table) ModTypeOf(decl DeclNode, name string) Type {
	return t.intern(&ModType{Decl: decl, Name: name})
}

// TypeAliasOf interns the alias *declaration's* own type (so e.g. the AST
// node's type slot has something to point to); it is never itself the
// `applied` side of an interned TypeApp — TypeAppOf reduces that away.
func (t *Table) TypeAliasOf(decl DeclNode, name string, params []*TypeVar, body Type) Type {
	return t.intern(&TypeAlias{Decl: decl, Name: name, Params: params, Body: body})
}

// TypeAppOf applies a user type to type arguments. When applied is a
// TypeAlias, the result is the alias body with params substituted for args,
// and that substitution result — never a TypeApp over the alias — is what
// gets interned (spec.md §4.1, invariant 11 of spec.md §8). Callers building
// a TypeApp from user syntax (checker.resolveTypeExpr) are responsible for
// validating args against the applied decl's declared arity before calling
// this; TypeAppOf itself is also used internally (obligation construction,
// impl heads) where arity is already known to match by construction.
func (t *Table) TypeAppOf(applied Type, args []Type) Type {
	if alias, ok := applied.(*TypeAlias); ok {
		subst := make(map[Type]Type, len(alias.Params))
		for i, p := range alias.Params {
			if i < len(args) {
				subst[Type(p)] = args[i]
			}
		}
		return t.Substitute(alias.Body, subst)
	}
	cp := append([]Type(nil), args...)
	return t.intern(&TypeApp{Applied: applied, Args: cp})
}

// Substitute performs capture-avoiding substitution of TypeVar leaves
// according to m, rebuilding structural shapes bottom-up and re-interning
// every rebuilt node (spec.md §4.2's `replace`). It lives here rather than
// in typealgebra because rebuilding always needs to re-canonicalize through
// this table; typealgebra.Replace is a thin forwarding wrapper so the
// operation is still reachable where spec.md §4.2 documents it.
func (t *Table) Substitute(ty Type, m map[Type]Type) Type {
	if len(m) == 0 {
		return ty
	}
	switch v := ty.(type) {
	case *TypeVar:
		if repl, ok := m[Type(v)]; ok {
			return repl
		}
		return v
	case *PrimType, *NoRetType, *BottomType, *TopType, *TypeErrorType,
		*StructType, *EnumType, *TraitType, *ImplType, *ModType, *TypeAlias, *ForallType:
		// nominal and nullary shapes carry no substitutable children
		return v
	case *TupleType:
		elems := make([]Type, len(v.Elems))
		changed := false
		for i, e := range v.Elems {
			elems[i] = t.Substitute(e, m)
			changed = changed || elems[i] != e
		}
		if !changed {
			return v
		}
		return t.TupleTypeOf(elems)
	case *SizedArrayType:
		elem := t.Substitute(v.Elem, m)
		if elem == v.Elem {
			return v
		}
		return t.SizedArrayTypeOf(elem, v.Size, v.Simd)
	case *UnsizedArrayType:
		elem := t.Substitute(v.Elem, m)
		if elem == v.Elem {
			return v
		}
		return t.UnsizedArrayTypeOf(elem)
	case *PtrType:
		pointee := t.Substitute(v.Pointee, m)
		if pointee == v.Pointee {
			return v
		}
		return t.PtrTypeOf(pointee, v.Mut, v.AddrSpace)
	case *RefType:
		pointee := t.Substitute(v.Pointee, m)
		if pointee == v.Pointee {
			return v
		}
		return t.RefTypeOf(pointee, v.Mut, v.AddrSpace)
	case *FnType:
		dom := t.Substitute(v.Dom, m)
		codom := t.Substitute(v.Codom, m)
		if dom == v.Dom && codom == v.Codom {
			return v
		}
		return t.FnTypeOf(dom, codom)
	case *TypeApp:
		args := make([]Type, len(v.Args))
		changed := false
		for i, a := range v.Args {
			args[i] = t.Substitute(a, m)
			changed = changed || args[i] != a
		}
		applied := t.Substitute(v.Applied, m)
		if !changed && applied == v.Applied {
			return v
		}
		return t.TypeAppOf(applied, args)
	default:
		return ty
	}
}
