package typealgebra_test

import (
	"testing"

	"github.com/PearCoding/artic/typealgebra"
	"github.com/PearCoding/artic/typetable"
	"github.com/stretchr/testify/assert"
)

type fakeDecl struct{ id uint64 }

func (f fakeDecl) Hash() uint64 { return f.id }

// Concrete scenario 8 (spec.md §8): fn(fn(i32)->i32)->i32 has order 2;
// (fn(i32)->i32, i32) has order 1.
func TestOrder(t *testing.T) {
	tbl := typetable.NewTable()
	i32 := tbl.PrimTypeOf(typetable.I32)
	innerFn := tbl.FnTypeOf(i32, i32)

	outerFn := tbl.FnTypeOf(innerFn, i32)
	assert.Equal(t, 2, typealgebra.Order(tbl, outerFn))

	pair := tbl.TupleTypeOf([]typetable.Type{innerFn, i32})
	assert.Equal(t, 1, typealgebra.Order(tbl, pair))
}

// Concrete scenario 9: a struct List { head: i32, tail: List } is unsized;
// List { head: i32, tail: &List } is sized.
func TestSizedness(t *testing.T) {
	tbl := typetable.NewTable()
	i32 := tbl.PrimTypeOf(typetable.I32)

	unsizedDecl := fakeDecl{id: 1}
	unsizedList := tbl.StructTypeOf(unsizedDecl, "List")
	tbl.SetStructFields(unsizedList, []typetable.FieldType{
		{Name: "head", Type: i32},
		{Name: "tail", Type: unsizedList},
	})
	assert.False(t, typealgebra.IsSized(tbl, unsizedList))

	sizedDecl := fakeDecl{id: 2}
	sizedList := tbl.StructTypeOf(sizedDecl, "List")
	tbl.SetStructFields(sizedList, []typetable.FieldType{
		{Name: "head", Type: i32},
		{Name: "tail", Type: tbl.RefTypeOf(sizedList, false, 0)},
	})
	assert.True(t, typealgebra.IsSized(tbl, sizedList))
}

func TestVarianceFlipsThroughFunctionDomain(t *testing.T) {
	tbl := typetable.NewTable()
	tv := tbl.TypeVarOf(fakeDecl{id: 3}, "T").(*typetable.TypeVar)

	// fn(T) -> T: T appears contravariantly in the domain, covariantly in
	// the codomain, so it joins to Invariant.
	fn := tbl.FnTypeOf(tv, tv)
	variance := typealgebra.VarianceOf(tbl, fn, true)
	assert.Equal(t, typealgebra.Invariant, variance[tv])

	// Plain covariant position: T alone, starting covariant.
	variance2 := typealgebra.VarianceOf(tbl, tv, true)
	assert.Equal(t, typealgebra.Covariant, variance2[tv])
}

func TestContainsStopsAtNominalBoundary(t *testing.T) {
	tbl := typetable.NewTable()
	i32 := tbl.PrimTypeOf(typetable.I32)
	decl := fakeDecl{id: 4}
	s := tbl.StructTypeOf(decl, "Point")
	tbl.SetStructFields(s, []typetable.FieldType{{Name: "x", Type: i32}})

	assert.True(t, typealgebra.Contains(s, s))
	assert.False(t, typealgebra.Contains(s, i32), "Contains must not reach through a nominal boundary into its fields")

	tuple := tbl.TupleTypeOf([]typetable.Type{i32, s})
	assert.True(t, typealgebra.Contains(tuple, i32))
	assert.True(t, typealgebra.Contains(tuple, s))
}
