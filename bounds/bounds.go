// Package bounds collects, meets, and propagates upper/lower bounds for
// inference variables while a type-checking pass walks an expression tree
// (spec.md §4.5). It depends on typetable and subtype: the meet of two
// candidate lower bounds is their join under subtype.Join (the tightest
// type both must be beneath), and the meet of two candidate upper bounds is
// subtype.Meet, dual.
package bounds

import (
	"github.com/PearCoding/artic/subtype"
	"github.com/PearCoding/artic/typetable"
)

// TypeBounds is the (lower, upper) pair tracked for one inference variable
// (spec.md §3).
type TypeBounds struct {
	Lower    typetable.Type
	Upper    typetable.Type
	HasLower bool
	HasUpper bool
}

// Consistent reports lower <: upper; a variable with no recorded bound on
// either side is trivially consistent.
func (b TypeBounds) Consistent() bool {
	if !b.HasLower || !b.HasUpper {
		return true
	}
	return subtype.IsSubtype(b.Lower, b.Upper)
}

// Scope is one inference scope's Γ: TypeVar → TypeBounds (spec.md §4.5),
// plus the rank bookkeeping Generalize needs. Scopes nest; a child Scope's
// rank is one more than its parent's, and a TypeVar is only eligible for
// generalization at the scope it was minted in — this is the rank_/
// inc_rank/dec_rank discipline of the original reference implementation's
// infer.h, restored per SPEC_FULL.md §13 since spec.md only gestures at
// "collapsed to a concrete type at the end of each inference scope".
type Scope struct {
	parent  *Scope
	rank    int
	bounds  map[*typetable.TypeVar]*TypeBounds
	varRank map[*typetable.TypeVar]int
}

// NewScope opens an inference scope nested under parent (nil for the
// outermost scope of a declaration body).
func NewScope(parent *Scope) *Scope {
	rank := 0
	if parent != nil {
		rank = parent.rank + 1
	}
	return &Scope{
		parent:  parent,
		rank:    rank,
		bounds:  make(map[*typetable.TypeVar]*TypeBounds),
		varRank: make(map[*typetable.TypeVar]int),
	}
}

// Fresh mints an inference variable owned by this scope.
func (s *Scope) Fresh(tbl *typetable.Table, hint string) *typetable.TypeVar {
	v := tbl.FreshTypeVar(hint).(*typetable.TypeVar)
	s.varRank[v] = s.rank
	return v
}

func (s *Scope) entry(v *typetable.TypeVar) *TypeBounds {
	if b, ok := s.bounds[v]; ok {
		return b
	}
	b := &TypeBounds{}
	s.bounds[v] = b
	return b
}

// Bounds returns the currently recorded bounds for v, if any were posted.
func (s *Scope) Bounds(v *typetable.TypeVar) (TypeBounds, bool) {
	b, ok := s.bounds[v]
	if !ok {
		return TypeBounds{}, false
	}
	return *b, true
}

func (s *Scope) recordLower(tbl *typetable.Table, v *typetable.TypeVar, actual typetable.Type) {
	b := s.entry(v)
	if !b.HasLower {
		b.Lower, b.HasLower = actual, true
		return
	}
	b.Lower = subtype.Join(tbl, b.Lower, actual)
}

func (s *Scope) recordUpper(tbl *typetable.Table, v *typetable.TypeVar, actual typetable.Type) {
	b := s.entry(v)
	if !b.HasUpper {
		b.Upper, b.HasUpper = actual, true
		return
	}
	b.Upper = subtype.Meet(tbl, b.Upper, actual)
}

// Post records the structural consequences of the subtype obligation
// sub <: sup (spec.md §4.5): every TypeVar reached on the sub side gets its
// upper bound updated with the corresponding position on the sup side
// (sub standing "below" that position), and vice versa for the lower bound.
// Tuples, arrays, refs/ptrs, and type applications descend componentwise;
// functions descend with direction flipped for the domain.
func (s *Scope) Post(tbl *typetable.Table, sub, sup typetable.Type) {
	if v, ok := sub.(*typetable.TypeVar); ok {
		s.recordUpper(tbl, v, sup)
	}
	if v, ok := sup.(*typetable.TypeVar); ok {
		s.recordLower(tbl, v, sub)
	}

	switch a := sub.(type) {
	case *typetable.TupleType:
		if b, ok := sup.(*typetable.TupleType); ok && len(a.Elems) == len(b.Elems) {
			for i := range a.Elems {
				s.Post(tbl, a.Elems[i], b.Elems[i])
			}
		}
	case *typetable.SizedArrayType:
		if b, ok := sup.(*typetable.SizedArrayType); ok {
			s.Post(tbl, a.Elem, b.Elem)
		}
	case *typetable.UnsizedArrayType:
		if b, ok := sup.(*typetable.UnsizedArrayType); ok {
			s.Post(tbl, a.Elem, b.Elem)
		}
	case *typetable.PtrType:
		if b, ok := sup.(*typetable.PtrType); ok {
			s.Post(tbl, a.Pointee, b.Pointee)
		}
	case *typetable.RefType:
		if b, ok := sup.(*typetable.RefType); ok {
			s.Post(tbl, a.Pointee, b.Pointee)
		}
	case *typetable.FnType:
		if b, ok := sup.(*typetable.FnType); ok {
			s.Post(tbl, b.Dom, a.Dom) // domain: direction flipped
			s.Post(tbl, a.Codom, b.Codom)
		}
	case *typetable.TypeApp:
		if b, ok := sup.(*typetable.TypeApp); ok && len(a.Args) == len(b.Args) {
			s.Post(tbl, a.Applied, b.Applied)
			for i := range a.Args {
				s.Post(tbl, a.Args[i], b.Args[i])
			}
		}
	}
}

// Resolution is the outcome of instantiating one variable at scope exit.
type Resolution struct {
	Var       *typetable.TypeVar
	Type      typetable.Type
	Ambiguous bool
}

// Instantiate collapses every variable minted in this scope to a concrete
// type (spec.md §4.5): its lower bound if one was recorded and the bounds
// are consistent, else its upper bound, else ⊤. An inconsistent bound is
// reported as Ambiguous with the variable instantiated to TypeError so the
// caller can keep walking without cascading diagnostics (spec.md §7).
func (s *Scope) Instantiate(tbl *typetable.Table) []Resolution {
	out := make([]Resolution, 0, len(s.varRank))
	for v, rank := range s.varRank {
		if rank != s.rank {
			continue
		}
		b, ok := s.bounds[v]
		if !ok {
			out = append(out, Resolution{Var: v, Type: tbl.TopType()})
			continue
		}
		if !b.Consistent() {
			out = append(out, Resolution{Var: v, Type: tbl.TypeErrorType(), Ambiguous: true})
			continue
		}
		switch {
		case b.HasLower:
			out = append(out, Resolution{Var: v, Type: b.Lower})
		case b.HasUpper:
			out = append(out, Resolution{Var: v, Type: b.Upper})
		default:
			out = append(out, Resolution{Var: v, Type: tbl.TopType()})
		}
	}
	return out
}
