package subtype

import "github.com/PearCoding/artic/typetable"

// Join returns the least upper bound of a and b against the <: relation:
// b if a<:b, else a if b<:a, else ⊤ (spec.md §4.3). It never mints a type —
// the ⊤ fallback always comes from tbl's singleton.
func Join(tbl *typetable.Table, a, b typetable.Type) typetable.Type {
	if IsSubtype(a, b) {
		return b
	}
	if IsSubtype(b, a) {
		return a
	}
	return tbl.TopType()
}

// Meet is Join's dual: the greatest lower bound, falling back to ⊥.
func Meet(tbl *typetable.Table, a, b typetable.Type) typetable.Type {
	if IsSubtype(a, b) {
		return a
	}
	if IsSubtype(b, a) {
		return b
	}
	return tbl.BottomType()
}
