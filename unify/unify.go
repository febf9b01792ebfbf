// Package unify implements the asymmetric first-order unifier of spec.md
// §4.4: only TypeVars on the `from` side ever bind. It depends only on
// typetable — the substitution it builds is handed back to the caller
// (the impl resolver) rather than applied here.
package unify

import "github.com/PearCoding/artic/typetable"

// Subst is a partial substitution from TypeVar to the Type it was bound to
// during a single unification attempt.
type Subst map[*typetable.TypeVar]typetable.Type

// Unify attempts to unify from against to, returning sigma extended with any
// new bindings (a new map is built for each binding; the map passed in is
// never written) and ok=false, with sigma itself, if no unifier exists. Passing a fresh Subst{} for sigma starts a new attempt;
// passing one returned by a prior successful Unify call continues it within
// the same impl-candidate evaluation (spec.md §4.6).
func Unify(from, to typetable.Type, sigma Subst) (Subst, bool) {
	if from.Equals(to) {
		return sigma, true
	}

	if v, ok := from.(*typetable.TypeVar); ok {
		if bound, exists := sigma[v]; exists {
			if bound.Equals(to) {
				return sigma, true
			}
			return sigma, false
		}
		next := make(Subst, len(sigma)+1)
		for k, val := range sigma {
			next[k] = val
		}
		next[v] = to
		return next, true
	}

	if fa, ok := from.(*typetable.TupleType); ok {
		ta, ok2 := to.(*typetable.TupleType)
		if !ok2 || len(fa.Elems) != len(ta.Elems) {
			return sigma, false
		}
		cur := sigma
		for i := range fa.Elems {
			var okStep bool
			cur, okStep = Unify(fa.Elems[i], ta.Elems[i], cur)
			if !okStep {
				return sigma, false
			}
		}
		return cur, true
	}

	if fa, ok := from.(*typetable.TypeApp); ok {
		ta, ok2 := to.(*typetable.TypeApp)
		if !ok2 || len(fa.Args) != len(ta.Args) {
			return sigma, false
		}
		cur, ok := Unify(fa.Applied, ta.Applied, sigma)
		if !ok {
			return sigma, false
		}
		for i := range fa.Args {
			var okStep bool
			cur, okStep = Unify(fa.Args[i], ta.Args[i], cur)
			if !okStep {
				return sigma, false
			}
		}
		return cur, true
	}

	return sigma, false
}

// Apply substitutes every TypeVar in t that sigma binds, through tbl so the
// result is canonical. It is the caller's job to call this once a candidate
// impl's whole pattern has unified (spec.md §4.6) — Unify itself never
// rewrites types, only collects the binding.
func Apply(tbl *typetable.Table, t typetable.Type, sigma Subst) typetable.Type {
	if len(sigma) == 0 {
		return t
	}
	m := make(map[typetable.Type]typetable.Type, len(sigma))
	for v, bound := range sigma {
		m[typetable.Type(v)] = bound
	}
	return tbl.Substitute(t, m)
}
