package checker_test

import (
	"testing"

	"github.com/PearCoding/artic/checker"
	"github.com/PearCoding/artic/internal/ast"
	"github.com/PearCoding/artic/internal/config"
	"github.com/PearCoding/artic/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fieldAccessProgram builds:
//
//	struct Point { x: i32, y: i32 }
//	fn get_x(p: Point) -> i32 { p.x }
func fieldAccessProgram() *ast.File {
	root := &ast.ModDecl{}
	root.Name = "main"

	point := &ast.StructDecl{
		Fields: []*ast.FieldDecl{
			{Name: "x", TypeExpr: &ast.PrimTypeExpr{Name: "i32"}},
			{Name: "y", TypeExpr: &ast.PrimTypeExpr{Name: "i32"}},
		},
		Parent: root,
	}
	point.Name = "Point"

	pParam := &ast.Param{Name: "p", TypeExpr: &ast.NameTypeExpr{Name: "Point"}}
	getX := &ast.FnDecl{
		Params:     []*ast.Param{pParam},
		ReturnType: &ast.PrimTypeExpr{Name: "i32"},
		Parent:     root,
	}
	getX.Name = "get_x"
	getX.Body = &ast.FieldAccess{Receiver: &ast.Var{Name: "p", Decl: pParam}, Field: "x"}

	root.Decls = []ast.DeclNode{point, getX}
	return &ast.File{Name: "test", Root: root}
}

func TestCheckFileNoErrorsOnWellTypedProgram(t *testing.T) {
	c := checker.New(config.Default())
	bag := c.CheckFile(fieldAccessProgram())

	assert.Empty(t, bag.Diagnostics())
	assert.Equal(t, 0, c.ErrorCount())
}

// mismatchedReturnProgram builds fn bad() -> i32 { () }, a concrete
// (no-TypeVar) return-type mismatch the checker must report immediately.
func mismatchedReturnProgram() *ast.File {
	root := &ast.ModDecl{}
	root.Name = "main"

	bad := &ast.FnDecl{
		ReturnType: &ast.PrimTypeExpr{Name: "i32"},
		Parent:     root,
	}
	bad.Name = "bad"
	// The body is unit, which does not match the declared i32 return type.
	bad.Body = &ast.TupleExpr{}

	root.Decls = []ast.DeclNode{bad}
	return &ast.File{Name: "test", Root: root}
}

func TestCheckFileReportsReturnTypeMismatch(t *testing.T) {
	c := checker.New(config.Default())
	bag := c.CheckFile(mismatchedReturnProgram())

	require.NotEmpty(t, bag.Diagnostics())
	assert.Greater(t, c.ErrorCount(), 0)
}

// undefinedFieldProgram builds fn bad(p: Point) -> i32 { p.z }, an access to
// a field Point does not have.
func undefinedFieldProgram() *ast.File {
	root := &ast.ModDecl{}
	root.Name = "main"

	point := &ast.StructDecl{
		Fields: []*ast.FieldDecl{{Name: "x", TypeExpr: &ast.PrimTypeExpr{Name: "i32"}}},
		Parent: root,
	}
	point.Name = "Point"

	pParam := &ast.Param{Name: "p", TypeExpr: &ast.NameTypeExpr{Name: "Point"}}
	bad := &ast.FnDecl{
		Params:     []*ast.Param{pParam},
		ReturnType: &ast.PrimTypeExpr{Name: "i32"},
		Parent:     root,
	}
	bad.Name = "bad"
	bad.Body = &ast.FieldAccess{Receiver: &ast.Var{Name: "p", Decl: pParam}, Field: "z"}

	root.Decls = []ast.DeclNode{point, bad}
	return &ast.File{Name: "test", Root: root}
}

func TestCheckFileReportsUndefinedField(t *testing.T) {
	c := checker.New(config.Default())
	bag := c.CheckFile(undefinedFieldProgram())

	require.NotEmpty(t, bag.Diagnostics())
	assert.Greater(t, c.ErrorCount(), 0)
}

// unsizedRecursiveStructProgram builds spec.md §8 scenario 9's unsized
// case: struct List { head: i32, tail: List } directly contains itself with
// no indirection (no &/* around tail), so it can never have a concrete size.
func unsizedRecursiveStructProgram() *ast.File {
	root := &ast.ModDecl{}
	root.Name = "main"

	list := &ast.StructDecl{Parent: root}
	list.Name = "List"
	list.Fields = []*ast.FieldDecl{
		{Name: "head", TypeExpr: &ast.PrimTypeExpr{Name: "i32"}},
		{Name: "tail", TypeExpr: &ast.NameTypeExpr{Name: "List"}},
	}

	root.Decls = []ast.DeclNode{list}
	return &ast.File{Name: "test", Root: root}
}

func TestCheckFileReportsUnsizedRecursiveStruct(t *testing.T) {
	c := checker.New(config.Default())
	bag := c.CheckFile(unsizedRecursiveStructProgram())

	require.NotEmpty(t, bag.Diagnostics())
	assert.Greater(t, c.ErrorCount(), 0)
	found := false
	for _, d := range bag.Diagnostics() {
		if d.Code == diag.Cycle {
			found = true
		}
	}
	assert.True(t, found, "expected a Cycle diagnostic for List's direct self-reference")
}

// arityMismatchProgram builds struct Box[T] { v: T } and a function
// referencing Box with no generic argument, disagreeing with Box's declared
// arity of 1 (spec.md §7's ArityMismatch).
func arityMismatchProgram() *ast.File {
	root := &ast.ModDecl{}
	root.Name = "main"

	tParam := &ast.TypeParam{}
	tParam.Name = "T"
	box := &ast.StructDecl{
		TypeParams: []*ast.TypeParam{tParam},
		Fields:     []*ast.FieldDecl{{Name: "v", TypeExpr: &ast.NameTypeExpr{Name: "T"}}},
		Parent:     root,
	}
	box.Name = "Box"

	bad := &ast.FnDecl{
		Params:     []*ast.Param{{Name: "b", TypeExpr: &ast.NameTypeExpr{Name: "Box"}}},
		ReturnType: &ast.PrimTypeExpr{Name: "i32"},
		Parent:     root,
	}
	bad.Name = "bad"
	bad.Body = &ast.IntLit{Value: 0}

	root.Decls = []ast.DeclNode{box, bad}
	return &ast.File{Name: "test", Root: root}
}

func TestCheckFileReportsArityMismatch(t *testing.T) {
	c := checker.New(config.Default())
	bag := c.CheckFile(arityMismatchProgram())

	require.NotEmpty(t, bag.Diagnostics())
	found := false
	for _, d := range bag.Diagnostics() {
		if d.Code == diag.ArityMismatch {
			found = true
		}
	}
	assert.True(t, found, "expected an ArityMismatch diagnostic for Box used with 0 arguments")
}

// letTuplePatternProgram builds fn main() -> i32 { let (a, b) = (1, 2); a },
// destructuring a tuple through a TuplePattern of two VarPatterns.
func letTuplePatternProgram() *ast.File {
	root := &ast.ModDecl{}
	root.Name = "main"

	aPattern := &ast.VarPattern{Name: "a"}
	bPattern := &ast.VarPattern{Name: "b"}
	pair := &ast.TuplePattern{Elems: []ast.Pattern{aPattern, bPattern}}

	fn := &ast.FnDecl{ReturnType: &ast.PrimTypeExpr{Name: "i32"}, Parent: root}
	fn.Name = "main"
	fn.Body = &ast.LetExpr{
		Pattern: pair,
		Value:   &ast.TupleExpr{Elems: []ast.Expr{&ast.IntLit{Value: 1}, &ast.IntLit{Value: 2}}},
		Body:    &ast.Var{Name: "a", Decl: aPattern},
	}

	root.Decls = []ast.DeclNode{fn}
	return &ast.File{Name: "test", Root: root}
}

func TestLetExprBindsTuplePattern(t *testing.T) {
	c := checker.New(config.Default())
	bag := c.CheckFile(letTuplePatternProgram())

	assert.Empty(t, bag.Diagnostics())
	assert.Equal(t, 0, c.ErrorCount())
}

// letTupleArityMismatchProgram destructures a 2-tuple value against a
// 3-element TuplePattern, which must report ArityMismatch.
func letTupleArityMismatchProgram() *ast.File {
	root := &ast.ModDecl{}
	root.Name = "main"

	pattern := &ast.TuplePattern{Elems: []ast.Pattern{
		&ast.VarPattern{Name: "a"},
		&ast.VarPattern{Name: "b"},
		&ast.VarPattern{Name: "c"},
	}}

	fn := &ast.FnDecl{ReturnType: &ast.PrimTypeExpr{Name: "i32"}, Parent: root}
	fn.Name = "main"
	fn.Body = &ast.LetExpr{
		Pattern: pattern,
		Value:   &ast.TupleExpr{Elems: []ast.Expr{&ast.IntLit{Value: 1}, &ast.IntLit{Value: 2}}},
		Body:    &ast.IntLit{Value: 0},
	}

	root.Decls = []ast.DeclNode{fn}
	return &ast.File{Name: "test", Root: root}
}

func TestLetExprReportsArityMismatchOnTuplePattern(t *testing.T) {
	c := checker.New(config.Default())
	bag := c.CheckFile(letTupleArityMismatchProgram())

	found := false
	for _, d := range bag.Diagnostics() {
		if d.Code == diag.ArityMismatch {
			found = true
		}
	}
	assert.True(t, found, "expected an ArityMismatch diagnostic for the 3-element pattern against a 2-tuple")
}
