package bounds_test

import (
	"testing"

	"github.com/PearCoding/artic/bounds"
	"github.com/PearCoding/artic/typetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRecordsLowerAndUpperBounds(t *testing.T) {
	tbl := typetable.NewTable()
	sc := bounds.NewScope(nil)
	v := sc.Fresh(tbl, "T")
	i32 := tbl.PrimTypeOf(typetable.I32)

	// i32 <: T records T's lower bound.
	sc.Post(tbl, i32, v)
	b, ok := sc.Bounds(v)
	require.True(t, ok)
	assert.True(t, b.HasLower)
	assert.Same(t, i32, b.Lower)

	// T <: ⊤ records T's upper bound.
	sc.Post(tbl, v, tbl.TopType())
	b, _ = sc.Bounds(v)
	assert.True(t, b.HasUpper)
}

func TestInstantiatePrefersLowerThenUpperThenTop(t *testing.T) {
	tbl := typetable.NewTable()

	sc := bounds.NewScope(nil)
	lowerOnly := sc.Fresh(tbl, "L")
	sc.Post(tbl, tbl.PrimTypeOf(typetable.I32), lowerOnly)

	upperOnly := sc.Fresh(tbl, "U")
	sc.Post(tbl, upperOnly, tbl.PrimTypeOf(typetable.Bool))

	unconstrained := sc.Fresh(tbl, "F")
	_ = unconstrained

	results := make(map[*typetable.TypeVar]bounds.Resolution)
	for _, r := range sc.Instantiate(tbl) {
		results[r.Var] = r
	}

	assert.Same(t, tbl.PrimTypeOf(typetable.I32), results[lowerOnly].Type)
	assert.Same(t, tbl.PrimTypeOf(typetable.Bool), results[upperOnly].Type)
	_, isTop := results[unconstrained].Type.(*typetable.TopType)
	assert.True(t, isTop)
}

func TestInstantiateFlagsInconsistentBoundsAsAmbiguous(t *testing.T) {
	tbl := typetable.NewTable()
	sc := bounds.NewScope(nil)
	v := sc.Fresh(tbl, "T")

	// bool <: T <: i32 is inconsistent: bool is not a subtype of i32.
	sc.Post(tbl, tbl.PrimTypeOf(typetable.Bool), v)
	sc.Post(tbl, v, tbl.PrimTypeOf(typetable.I32))

	var found bounds.Resolution
	for _, r := range sc.Instantiate(tbl) {
		if r.Var == v {
			found = r
		}
	}
	assert.True(t, found.Ambiguous)
}

// Function-domain descent flips direction: posting fn(T) -> i32 <: fn(bool)
// -> i32 must record T's *lower* bound as bool, not upper.
func TestPostFlipsDirectionThroughFunctionDomain(t *testing.T) {
	tbl := typetable.NewTable()
	sc := bounds.NewScope(nil)
	v := sc.Fresh(tbl, "T")
	i32 := tbl.PrimTypeOf(typetable.I32)
	b := tbl.PrimTypeOf(typetable.Bool)

	sub := tbl.FnTypeOf(v, i32)
	sup := tbl.FnTypeOf(b, i32)
	sc.Post(tbl, sub, sup)

	bnd, ok := sc.Bounds(v)
	require.True(t, ok)
	assert.True(t, bnd.HasLower)
	assert.Same(t, b, bnd.Lower)
	assert.False(t, bnd.HasUpper)
}

// Only variables minted at the scope's own rank are collected at Instantiate.
func TestInstantiateOnlyCollectsOwnRank(t *testing.T) {
	tbl := typetable.NewTable()
	outer := bounds.NewScope(nil)
	inner := bounds.NewScope(outer)
	v := inner.Fresh(tbl, "T")

	// outer's own rank never minted v, so instantiating outer must not see it.
	for _, r := range outer.Instantiate(tbl) {
		assert.NotEqual(t, v, r.Var)
	}
	found := false
	for _, r := range inner.Instantiate(tbl) {
		if r.Var == v {
			found = true
		}
	}
	assert.True(t, found)
}
