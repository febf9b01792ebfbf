package bounds

import "github.com/PearCoding/artic/typetable"

// Generalize closes body over every TypeVar minted at exactly this scope's
// rank (not an enclosing one) that still occurs free in it, producing a
// ForallType when there is at least one such variable and returning body
// unchanged otherwise. This restores the reference implementation's
// rank_/inc_rank/dec_rank/generalize discipline (original_source/src/infer.h)
// for an operation spec.md only describes declaratively — SPEC_FULL.md §13.
// A variable minted by an enclosing (lower-rank) scope escapes generalization
// here because it may still be constrained by obligations outside this scope.
func Generalize(tbl *typetable.Table, fresher *typetable.Fresher, s *Scope, body typetable.Type) typetable.Type {
	var owned []*typetable.TypeVar
	for v, rank := range s.varRank {
		if rank == s.rank && occursFree(body, v, make(map[typetable.Type]bool)) {
			owned = append(owned, v)
		}
	}
	if len(owned) == 0 {
		return body
	}
	return tbl.ForallTypeOf(fresher.Next(), body)
}

func occursFree(t typetable.Type, v *typetable.TypeVar, seen map[typetable.Type]bool) bool {
	if seen[t] {
		return false
	}
	seen[t] = true
	switch a := t.(type) {
	case *typetable.TypeVar:
		return a == v
	case *typetable.TupleType:
		for _, e := range a.Elems {
			if occursFree(e, v, seen) {
				return true
			}
		}
		return false
	case *typetable.SizedArrayType:
		return occursFree(a.Elem, v, seen)
	case *typetable.UnsizedArrayType:
		return occursFree(a.Elem, v, seen)
	case *typetable.PtrType:
		return occursFree(a.Pointee, v, seen)
	case *typetable.RefType:
		return occursFree(a.Pointee, v, seen)
	case *typetable.FnType:
		return occursFree(a.Dom, v, seen) || occursFree(a.Codom, v, seen)
	case *typetable.TypeApp:
		if occursFree(a.Applied, v, seen) {
			return true
		}
		for _, arg := range a.Args {
			if occursFree(arg, v, seen) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
