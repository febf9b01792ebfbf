package subtype_test

import (
	"testing"

	"github.com/PearCoding/artic/subtype"
	"github.com/PearCoding/artic/typetable"
	"github.com/stretchr/testify/assert"
)

// Concrete scenario 3 (spec.md §8): &mut i32 <: &i32 holds; the converse
// does not, since mutable is a subtype of immutable, never the reverse.
func TestMutRefSubtypesImmutableRef(t *testing.T) {
	tbl := typetable.NewTable()
	i32 := tbl.PrimTypeOf(typetable.I32)
	mutRef := tbl.RefTypeOf(i32, true, 0)
	immutRef := tbl.RefTypeOf(i32, false, 0)

	assert.True(t, subtype.IsSubtype(mutRef, immutRef))
	assert.False(t, subtype.IsSubtype(immutRef, mutRef))
}

// Concrete scenario 4: [i32*4] <: &[i32] at address space 0 holds; the same
// coercion is blocked for a SIMD array.
func TestSizedArrayCoercesToSliceRef(t *testing.T) {
	tbl := typetable.NewTable()
	i32 := tbl.PrimTypeOf(typetable.I32)
	sized := tbl.SizedArrayTypeOf(i32, 4, false)
	simdSized := tbl.SizedArrayTypeOf(i32, 4, true)
	sliceRef := tbl.RefTypeOf(tbl.UnsizedArrayTypeOf(i32), false, 0)

	assert.True(t, subtype.IsSubtype(sized, sliceRef))
	assert.False(t, subtype.IsSubtype(simdSized, sliceRef))
}

// Concrete scenario 5: fn(⊤) -> ⊥ <: fn(i32) -> f32 (contravariant domain,
// covariant codomain).
func TestFunctionSubtypeContraCovariant(t *testing.T) {
	tbl := typetable.NewTable()
	wide := tbl.FnTypeOf(tbl.TopType(), tbl.BottomType())
	narrow := tbl.FnTypeOf(tbl.PrimTypeOf(typetable.I32), tbl.PrimTypeOf(typetable.F32))

	assert.True(t, subtype.IsSubtype(wide, narrow))
	assert.False(t, subtype.IsSubtype(narrow, wide))
}

// Pointer targets never compose: &&T <: &T must not hold.
func TestPointerTargetsNeverCompose(t *testing.T) {
	tbl := typetable.NewTable()
	i32 := tbl.PrimTypeOf(typetable.I32)
	ref := tbl.RefTypeOf(i32, false, 0)
	refRef := tbl.RefTypeOf(ref, false, 0)

	assert.False(t, subtype.IsSubtype(refRef, ref))
}

func TestBottomAndTopExtrema(t *testing.T) {
	tbl := typetable.NewTable()
	i32 := tbl.PrimTypeOf(typetable.I32)

	assert.True(t, subtype.IsSubtype(tbl.BottomType(), i32))
	assert.True(t, subtype.IsSubtype(i32, tbl.TopType()))
	assert.False(t, subtype.IsSubtype(tbl.TopType(), i32))
}

func TestJoinAndMeet(t *testing.T) {
	tbl := typetable.NewTable()
	i32 := tbl.PrimTypeOf(typetable.I32)
	bot := tbl.BottomType()

	assert.Same(t, i32, subtype.Join(tbl, bot, i32))
	assert.Same(t, i32, subtype.Meet(tbl, tbl.TopType(), i32))

	unrelated := tbl.PrimTypeOf(typetable.Bool)
	_, isTop := subtype.Join(tbl, i32, unrelated).(*typetable.TopType)
	assert.True(t, isTop, "unrelated types join to ⊤")
}
