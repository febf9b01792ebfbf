package typealgebra

import "github.com/PearCoding/artic/typetable"

// Variance classifies how a type parameter's subtyping flows through a
// constructor (spec.md §4.2/GLOSSARY).
type Variance uint8

const (
	Covariant Variance = iota
	Contravariant
	Invariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "+"
	case Contravariant:
		return "-"
	default:
		return "="
	}
}

// join combines how the same variable was seen in two different positions:
// seeing it both ways makes it Invariant.
func (v Variance) join(other Variance) Variance {
	if v == other {
		return v
	}
	return Invariant
}

// VarianceOf computes, for every TypeVar reachable in t, the direction in
// which it appears: Function domains flip direction (spec.md §4.2).
// covariant=true is the starting direction for t itself.
func VarianceOf(tbl *typetable.Table, t typetable.Type, covariant bool) map[*typetable.TypeVar]Variance {
	result := make(map[*typetable.TypeVar]Variance)
	varianceWalk(tbl, t, covariant, result)
	return result
}

func directionOf(covariant bool) Variance {
	if covariant {
		return Covariant
	}
	return Contravariant
}

func varianceWalk(tbl *typetable.Table, t typetable.Type, covariant bool, out map[*typetable.TypeVar]Variance) {
	switch v := t.(type) {
	case *typetable.TypeVar:
		dir := directionOf(covariant)
		if existing, ok := out[v]; ok {
			out[v] = existing.join(dir)
		} else {
			out[v] = dir
		}
	case *typetable.TupleType:
		for _, e := range v.Elems {
			varianceWalk(tbl, e, covariant, out)
		}
	case *typetable.SizedArrayType:
		varianceWalk(tbl, v.Elem, covariant, out)
	case *typetable.UnsizedArrayType:
		varianceWalk(tbl, v.Elem, covariant, out)
	case *typetable.PtrType:
		varianceWalk(tbl, v.Pointee, covariant, out)
	case *typetable.RefType:
		varianceWalk(tbl, v.Pointee, covariant, out)
	case *typetable.FnType:
		varianceWalk(tbl, v.Dom, !covariant, out)
		varianceWalk(tbl, v.Codom, covariant, out)
	case *typetable.TypeApp:
		for _, a := range v.Args {
			varianceWalk(tbl, a, covariant, out)
		}
	default:
		// nominal/nullary leaves contribute nothing further
	}
}
