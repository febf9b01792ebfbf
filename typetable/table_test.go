package typetable_test

import (
	"testing"

	"github.com/PearCoding/artic/typetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDecl struct{ id uint64 }

func (f fakeDecl) Hash() uint64 { return f.id }

// Structurally equal types constructed twice share one pointer (spec.md
// §4.1, invariant 1 of spec.md §8).
func TestHashConsingIdentity(t *testing.T) {
	tbl := typetable.NewTable()

	a := tbl.SizedArrayTypeOf(tbl.PrimTypeOf(typetable.I32), 4, false)
	b := tbl.SizedArrayTypeOf(tbl.PrimTypeOf(typetable.I32), 4, false)

	assert.Same(t, a, b, "structurally equal types must intern to the same pointer")

	diff := tbl.SizedArrayTypeOf(tbl.PrimTypeOf(typetable.I32), 5, false)
	assert.NotSame(t, a, diff)
}

// Nominal types with different declarations never collide, even with the
// same display name (spec.md §3: identity is the declaration, not content).
func TestNominalDistinctness(t *testing.T) {
	tbl := typetable.NewTable()

	declA := fakeDecl{id: 1}
	declB := fakeDecl{id: 2}

	a := tbl.StructTypeOf(declA, "Point")
	b := tbl.StructTypeOf(declB, "Point")

	assert.NotSame(t, a, b)
	assert.False(t, a.Equals(b))

	again := tbl.StructTypeOf(declA, "Point")
	assert.Same(t, a, again)
}

func TestFreshTypeVarsAreDistinct(t *testing.T) {
	tbl := typetable.NewTable()

	a := tbl.FreshTypeVar("t")
	b := tbl.FreshTypeVar("t")

	assert.False(t, a.Equals(b), "two fresh type vars must never unify by identity")
}

// TypeAppOf over a TypeAlias reduces eagerly: the result is the substituted
// body, never a TypeApp wrapping the alias (spec.md §4.1, invariant 11).
func TestTypeAliasReduction(t *testing.T) {
	tbl := typetable.NewTable()

	param := tbl.TypeVarOf(fakeDecl{id: 10}, "T").(*typetable.TypeVar)
	body := tbl.SizedArrayTypeOf(param, 1, false)
	alias := tbl.TypeAliasOf(fakeDecl{id: 11}, "Box", []*typetable.TypeVar{param}, body)

	applied := tbl.TypeAppOf(alias, []typetable.Type{tbl.PrimTypeOf(typetable.I32)})

	_, isApp := applied.(*typetable.TypeApp)
	assert.False(t, isApp, "alias application must reduce, not wrap")

	want := tbl.SizedArrayTypeOf(tbl.PrimTypeOf(typetable.I32), 1, false)
	assert.Same(t, want, applied)
}

func TestSubstituteIsCaptureAvoidingAndReinterns(t *testing.T) {
	tbl := typetable.NewTable()

	tv := tbl.TypeVarOf(fakeDecl{id: 20}, "T").(*typetable.TypeVar)
	tupleOfT := tbl.TupleTypeOf([]typetable.Type{tv, tv})

	replaced := tbl.Substitute(tupleOfT, map[typetable.Type]typetable.Type{
		typetable.Type(tv): tbl.PrimTypeOf(typetable.Bool),
	})

	require.IsType(t, &typetable.TupleType{}, replaced)
	want := tbl.TupleTypeOf([]typetable.Type{tbl.PrimTypeOf(typetable.Bool), tbl.PrimTypeOf(typetable.Bool)})
	assert.Same(t, want, replaced)
}
