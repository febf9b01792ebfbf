// Package typealgebra implements the per-type-shape operations of spec.md
// §4.2: structural equality, structural hash, containment, substitution,
// and the three auxiliary analyses (order, variance, sizedness). It depends
// only on typetable — the type table itself already carries Hash/Equals on
// every shape (spec.md §4.1's interning contract requires them), so Equals
// and Hash here are documented re-exports rather than new logic.
package typealgebra

import (
	"github.com/PearCoding/artic/typetable"
	"github.com/hashicorp/go-set/v3"
)

// Equals reports structural equality for structural shapes and AST-decl
// identity for nominal ones (spec.md §4.2). Because every Type in play was
// produced by the same *typetable.Table, this is equivalent to a == b.
func Equals(a, b typetable.Type) bool { return a.Equals(b) }

// Hash returns a's structural hash, consistent with Equals (spec.md §8
// invariant 2).
func Hash(a typetable.Type) uint64 { return a.Hash() }

// Replace performs capture-avoiding substitution of TypeVar leaves of t
// according to m, re-interning every rebuilt node through tbl. The actual
// rebuild-and-reintern logic lives on *typetable.Table (Substitute) because
// it must share the table's canonicalization; this forwards to it so the
// operation is reachable under the name spec.md §4.2 gives it.
func Replace(tbl *typetable.Table, t typetable.Type, m map[typetable.Type]typetable.Type) typetable.Type {
	return tbl.Substitute(t, m)
}

// Contains is reflexive and recurses into sub-parts, but stops at nominal
// type boundaries: a struct does not "contain" its fields for this
// predicate (spec.md §4.2).
func Contains(t typetable.Type, target typetable.Type) bool {
	if t.Equals(target) {
		return true
	}
	if typetable.IsNominal(t) {
		return false
	}
	for _, child := range children(t) {
		if Contains(child, target) {
			return true
		}
	}
	return false
}

// children returns the immediate structural children of t; nominal and
// nullary shapes have none for the purposes of Contains (their members are
// reached only through typetable's struct/enum field registry, which is a
// Table-level concern, not a structural-descent one — spec.md §4.2).
func children(t typetable.Type) []typetable.Type {
	switch v := t.(type) {
	case *typetable.TupleType:
		return v.Elems
	case *typetable.SizedArrayType:
		return []typetable.Type{v.Elem}
	case *typetable.UnsizedArrayType:
		return []typetable.Type{v.Elem}
	case *typetable.PtrType:
		return []typetable.Type{v.Pointee}
	case *typetable.RefType:
		return []typetable.Type{v.Pointee}
	case *typetable.FnType:
		return []typetable.Type{v.Dom, v.Codom}
	case *typetable.TypeApp:
		return append([]typetable.Type{v.Applied}, v.Args...)
	default:
		return nil
	}
}

// Order is the syntactic nesting depth of function arrows (spec.md §4.2):
// first-class non-function types have order 0; fn(dom)->codom has
// 1+max(order(dom), order(codom)); nominal complex types guard against
// cycles with a seen set and return 0 if one is found.
func Order(tbl *typetable.Table, t typetable.Type) int {
	return orderSeen(tbl, t, set.New[typetable.Type](0))
}

func orderSeen(tbl *typetable.Table, t typetable.Type, seen *set.Set[typetable.Type]) int {
	switch v := t.(type) {
	case *typetable.FnType:
		return 1 + max(orderSeen(tbl, v.Dom, seen), orderSeen(tbl, v.Codom, seen))
	case *typetable.TupleType:
		m := 0
		for _, e := range v.Elems {
			m = max(m, orderSeen(tbl, e, seen))
		}
		return m
	case *typetable.SizedArrayType:
		return orderSeen(tbl, v.Elem, seen)
	case *typetable.UnsizedArrayType:
		return orderSeen(tbl, v.Elem, seen)
	case *typetable.PtrType:
		return orderSeen(tbl, v.Pointee, seen)
	case *typetable.RefType:
		return orderSeen(tbl, v.Pointee, seen)
	case *typetable.StructType:
		if seen.Contains(t) {
			return 0
		}
		seen.Insert(t)
		fields, ok := tbl.StructFields(v)
		if !ok {
			return 0
		}
		m := 0
		for _, f := range fields {
			m = max(m, orderSeen(tbl, f.Type, seen))
		}
		return m
	case *typetable.TypeApp:
		return orderSeen(tbl, v.Applied, seen)
	default:
		return 0
	}
}
