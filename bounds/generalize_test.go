package bounds_test

import (
	"testing"

	"github.com/PearCoding/artic/bounds"
	"github.com/PearCoding/artic/typetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneralizeWrapsOwnedFreeVar(t *testing.T) {
	tbl := typetable.NewTable()
	fresher := typetable.NewFresher()
	sc := bounds.NewScope(nil)
	v := sc.Fresh(tbl, "T")

	body := tbl.FnTypeOf(v, v)
	generalized := bounds.Generalize(tbl, fresher, sc, body)

	forall, ok := generalized.(*typetable.ForallType)
	require.True(t, ok, "a scope-owned free variable must be generalized into a ForallType")
	assert.Same(t, body, forall.Body)
}

func TestGeneralizeLeavesClosedBodyUnchanged(t *testing.T) {
	tbl := typetable.NewTable()
	fresher := typetable.NewFresher()
	sc := bounds.NewScope(nil)
	_ = sc.Fresh(tbl, "unused")

	body := tbl.FnTypeOf(tbl.PrimTypeOf(typetable.I32), tbl.PrimTypeOf(typetable.I32))
	generalized := bounds.Generalize(tbl, fresher, sc, body)

	assert.Same(t, body, generalized, "a variable not occurring free in body must not trigger generalization")
}

func TestGeneralizeSkipsVarsFromEnclosingScope(t *testing.T) {
	tbl := typetable.NewTable()
	fresher := typetable.NewFresher()
	outer := bounds.NewScope(nil)
	outerVar := outer.Fresh(tbl, "Outer")
	inner := bounds.NewScope(outer)

	body := tbl.FnTypeOf(outerVar, outerVar)
	generalized := bounds.Generalize(tbl, fresher, inner, body)

	assert.Same(t, body, generalized, "a variable minted by an enclosing scope must not be generalized away here")
}
