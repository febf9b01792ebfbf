package typealgebra

import (
	"github.com/PearCoding/artic/typetable"
	"github.com/hashicorp/go-set/v3"
)

// IsSized reports whether t has a statically known size (spec.md §4.2): an
// unsized array is never sized, a struct/enum is sized only if every member
// is, and rediscovering a nominal type already on the path (a recursive
// struct with no indirection) makes it unsized rather than looping forever.
func IsSized(tbl *typetable.Table, t typetable.Type) bool {
	return isSizedSeen(tbl, t, set.New[typetable.Type](0))
}

func isSizedSeen(tbl *typetable.Table, t typetable.Type, seen *set.Set[typetable.Type]) bool {
	switch v := t.(type) {
	case *typetable.UnsizedArrayType:
		return false
	case *typetable.TypeErrorType, *typetable.BottomType, *typetable.TopType, *typetable.NoRetType:
		// these never materialize storage; treat as sized so they don't
		// block sizedness checks elsewhere in a term
		return true
	case *typetable.PrimType, *typetable.PtrType, *typetable.RefType, *typetable.FnType:
		return true
	case *typetable.TupleType:
		for _, e := range v.Elems {
			if !isSizedSeen(tbl, e, seen) {
				return false
			}
		}
		return true
	case *typetable.SizedArrayType:
		return isSizedSeen(tbl, v.Elem, seen)
	case *typetable.StructType:
		if seen.Contains(t) {
			return false
		}
		seen.Insert(t)
		fields, ok := tbl.StructFields(v)
		if !ok {
			return true
		}
		for _, f := range fields {
			if !isSizedSeen(tbl, f.Type, seen) {
				return false
			}
		}
		return true
	case *typetable.EnumType:
		if seen.Contains(t) {
			return false
		}
		seen.Insert(t)
		variants, ok := tbl.EnumVariants(v)
		if !ok {
			return true
		}
		for _, variant := range variants {
			for _, f := range variant.Fields {
				if !isSizedSeen(tbl, f.Type, seen) {
					return false
				}
			}
		}
		return true
	case *typetable.TypeApp:
		return isSizedSeen(tbl, v.Applied, seen)
	default:
		return true
	}
}
