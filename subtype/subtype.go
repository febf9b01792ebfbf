// Package subtype implements the <: relation and its induced join/meet over
// the canonical type universe (spec.md §4.3). It depends only on typetable:
// every rule here is a pure structural predicate over two Type values, with
// no table mutation (joins/meets never mint new types, they only pick among
// the two operands or fall back to ⊤/⊥).
package subtype

import "github.com/PearCoding/artic/typetable"

// IsSubtype reports whether sub <: sup under the smallest relation
// satisfying spec.md §4.3's rules. Pointer targets never compose — &&T <: &T
// does not hold — so reference coercions are only ever applied one level
// deep; isPointerLike below is what enforces that.
func IsSubtype(sub, sup typetable.Type) bool {
	if sub.Equals(sup) {
		return true
	}
	if _, ok := sub.(*typetable.BottomType); ok {
		return true
	}
	if _, ok := sup.(*typetable.TopType); ok {
		return true
	}
	if _, ok := sub.(*typetable.TypeErrorType); ok {
		return true
	}
	if _, ok := sup.(*typetable.TypeErrorType); ok {
		return true
	}

	if a, ok := sub.(*typetable.RefType); ok {
		return refSubtype(a, sup)
	}

	if b, ok := sup.(*typetable.RefType); ok {
		return intoRef(sub, b)
	}

	if ta, ok := sub.(*typetable.TupleType); ok {
		tb, ok2 := sup.(*typetable.TupleType)
		if !ok2 || len(ta.Elems) != len(tb.Elems) {
			return false
		}
		for i := range ta.Elems {
			if !IsSubtype(ta.Elems[i], tb.Elems[i]) {
				return false
			}
		}
		return true
	}

	if fa, ok := sub.(*typetable.FnType); ok {
		fb, ok2 := sup.(*typetable.FnType)
		if !ok2 {
			return false
		}
		// contravariant in the domain, covariant in the codomain
		return IsSubtype(fb.Dom, fa.Dom) && IsSubtype(fa.Codom, fb.Codom)
	}

	return false
}

func isPointerLike(t typetable.Type) bool {
	switch t.(type) {
	case *typetable.RefType, *typetable.PtrType:
		return true
	default:
		return false
	}
}

// mutCompat reports whether a reference with mutability subMut may be used
// where one with mutability supMut is expected: mutable is a subtype of
// immutable, never the reverse.
func mutCompat(subMut, supMut bool) bool {
	return !supMut || subMut
}

// refSubtype handles sub = &a.Pointee (or &mut), sup arbitrary.
func refSubtype(a *typetable.RefType, sup typetable.Type) bool {
	if b, ok := sup.(*typetable.RefType); ok {
		if a.AddrSpace != b.AddrSpace || !mutCompat(a.Mut, b.Mut) {
			return false
		}
		// &[T*N] <: &[T]: sized array reference coerces to unsized slice
		// reference, provided the sized array is not SIMD.
		if sized, ok := a.Pointee.(*typetable.SizedArrayType); ok && !sized.Simd {
			if unsized, ok2 := b.Pointee.(*typetable.UnsizedArrayType); ok2 && sized.Elem.Equals(unsized.Elem) {
				return true
			}
		}
		if isPointerLike(a.Pointee) || isPointerLike(b.Pointee) {
			return false
		}
		return IsSubtype(a.Pointee, b.Pointee)
	}
	// implicit deref: ref U <: T if U <: T, blocked one level deep so
	// pointer targets never compose.
	if isPointerLike(a.Pointee) {
		return false
	}
	return IsSubtype(a.Pointee, sup)
}

// intoRef handles sub arbitrary (already known not to be a RefType itself),
// sup = &b.Pointee (or &mut).
func intoRef(sub typetable.Type, b *typetable.RefType) bool {
	if b.AddrSpace == 0 {
		// [T*N] <: &[T] when address space is 0 (generic pointer).
		if sized, ok := sub.(*typetable.SizedArrayType); ok && !sized.Simd {
			if unsized, ok2 := b.Pointee.(*typetable.UnsizedArrayType); ok2 && sized.Elem.Equals(unsized.Elem) {
				return true
			}
		}
	}
	// address-of introduction: U <: &T if U <: T, immutable target only,
	// and T is not itself a pointer (no double indirection).
	if b.Mut || isPointerLike(b.Pointee) {
		return false
	}
	return IsSubtype(sub, b.Pointee)
}
