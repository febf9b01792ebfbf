package unify_test

import (
	"testing"

	"github.com/PearCoding/artic/typetable"
	"github.com/PearCoding/artic/unify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDecl struct{ id uint64 }

func (f fakeDecl) Hash() uint64 { return f.id }

// Concrete scenario 6 (spec.md §8): unify (X, Y) against (i32, (bool,
// bool)) yields σ = {X ↦ i32, Y ↦ (bool,bool)}.
func TestUnifyTupleBindsEachVar(t *testing.T) {
	tbl := typetable.NewTable()
	x := tbl.TypeVarOf(fakeDecl{1}, "X").(*typetable.TypeVar)
	y := tbl.TypeVarOf(fakeDecl{2}, "Y").(*typetable.TypeVar)
	i32 := tbl.PrimTypeOf(typetable.I32)
	boolBool := tbl.TupleTypeOf([]typetable.Type{tbl.PrimTypeOf(typetable.Bool), tbl.PrimTypeOf(typetable.Bool)})

	from := tbl.TupleTypeOf([]typetable.Type{x, y})
	to := tbl.TupleTypeOf([]typetable.Type{i32, boolBool})

	sigma, ok := unify.Unify(from, to, unify.Subst{})
	require.True(t, ok)
	assert.Same(t, i32, sigma[x])
	assert.Same(t, boolBool, sigma[y])

	// Unifier soundness (invariant 10): applying σ' to the pattern yields to.
	applied := unify.Apply(tbl, from, sigma)
	assert.True(t, applied.Equals(to))
}

// Unify (X, X) against (i32, bool) fails: X cannot bind to two different
// types within one attempt.
func TestUnifyRepeatedVarFailsOnMismatch(t *testing.T) {
	tbl := typetable.NewTable()
	x := tbl.TypeVarOf(fakeDecl{1}, "X").(*typetable.TypeVar)
	i32 := tbl.PrimTypeOf(typetable.I32)
	b := tbl.PrimTypeOf(typetable.Bool)

	from := tbl.TupleTypeOf([]typetable.Type{x, x})
	to := tbl.TupleTypeOf([]typetable.Type{i32, b})

	_, ok := unify.Unify(from, to, unify.Subst{})
	assert.False(t, ok)
}

// Only TypeVars on the from side ever bind: a TypeVar on the to side with a
// non-var, non-equal from side fails rather than binding backwards.
func TestUnifyOnlyFromSideBinds(t *testing.T) {
	tbl := typetable.NewTable()
	y := tbl.TypeVarOf(fakeDecl{9}, "Y").(*typetable.TypeVar)
	i32 := tbl.PrimTypeOf(typetable.I32)

	sigma, ok := unify.Unify(i32, y, unify.Subst{})
	assert.False(t, ok)
	assert.Empty(t, sigma)
}

func TestUnifyTypeAppComponentwise(t *testing.T) {
	tbl := typetable.NewTable()
	x := tbl.TypeVarOf(fakeDecl{1}, "X").(*typetable.TypeVar)
	trait := tbl.TraitTypeOf(fakeDecl{2}, "Show")
	i32 := tbl.PrimTypeOf(typetable.I32)

	from := tbl.TypeAppOf(trait, []typetable.Type{x})
	to := tbl.TypeAppOf(trait, []typetable.Type{i32})

	sigma, ok := unify.Unify(from, to, unify.Subst{})
	require.True(t, ok)
	assert.Same(t, i32, sigma[x])
}
