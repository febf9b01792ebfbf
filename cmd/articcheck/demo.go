package articcheck

import "github.com/PearCoding/artic/internal/ast"

// demoFile builds a fixed AST by hand, standing in for what a parser would
// produce (spec.md §1 puts the parser out of scope). It exercises struct
// field access, a trait obligation discharged by a registered impl, generic
// function instantiation, and an if/join expression, so a single run
// through checker.CheckFile touches every component named in SPEC_FULL.md.
// checkMethodCall reports a trait method's result as the receiver's own
// type (no per-method signatures are modeled in this minimal AST), so
// use_show's declared return type is i32, not bool, and the if below
// branches on the struct's own bool field instead of a method call.
//
//	struct Point { x: i32, y: i32, flag: bool }
//	trait Show
//	impl Show for i32
//	fn identity[T](v: T) -> T { v }
//	fn use_identity(p: Point) -> i32 { identity(p.x) }
//	fn use_show(p: Point) -> i32 { p.x.show() }
//	fn main(p: Point) -> i32 {
//	    if p.flag { p.x } else { p.x }
//	}
func demoFile() *ast.File {
	root := &ast.ModDecl{}
	root.Name = "main"

	point := &ast.StructDecl{
		Fields: []*ast.FieldDecl{
			{Name: "x", TypeExpr: &ast.PrimTypeExpr{Name: "i32"}},
			{Name: "y", TypeExpr: &ast.PrimTypeExpr{Name: "i32"}},
			{Name: "flag", TypeExpr: &ast.PrimTypeExpr{Name: "bool"}},
		},
		Parent: root,
	}
	point.Name = "Point"

	show := &ast.TraitDecl{Parent: root}
	show.Name = "Show"

	showForI32 := &ast.ImplDecl{
		TraitRef:   &ast.NameTypeExpr{Name: "Show"},
		ImpledType: &ast.PrimTypeExpr{Name: "i32"},
		Parent:     root,
	}
	showForI32.Name = "<impl Show for i32>"

	identityParam := &ast.TypeParam{}
	identityParam.Name = "T"
	vParam := &ast.Param{Name: "v", TypeExpr: &ast.NameTypeExpr{Name: "T"}}
	identity := &ast.FnDecl{
		TypeParams: []*ast.TypeParam{identityParam},
		Params:     []*ast.Param{vParam},
		ReturnType: &ast.NameTypeExpr{Name: "T"},
		Parent:     root,
	}
	identity.Name = "identity"
	identity.Body = &ast.Var{Name: "v", Decl: vParam}

	fieldX := func(recv *ast.Param) ast.Expr {
		return &ast.FieldAccess{Receiver: &ast.Var{Name: recv.Name, Decl: recv}, Field: "x"}
	}

	useIdentityParam := &ast.Param{Name: "p", TypeExpr: &ast.NameTypeExpr{Name: "Point"}}
	useIdentity := &ast.FnDecl{
		Params:     []*ast.Param{useIdentityParam},
		ReturnType: &ast.PrimTypeExpr{Name: "i32"},
		Parent:     root,
	}
	useIdentity.Name = "use_identity"
	useIdentity.Body = &ast.Call{Fn: &ast.Var{Name: "identity", Decl: identity}, Args: []ast.Expr{fieldX(useIdentityParam)}}

	useShowParam := &ast.Param{Name: "p", TypeExpr: &ast.NameTypeExpr{Name: "Point"}}
	useShow := &ast.FnDecl{
		Params:     []*ast.Param{useShowParam},
		ReturnType: &ast.PrimTypeExpr{Name: "i32"},
		Parent:     root,
	}
	useShow.Name = "use_show"
	useShow.Body = &ast.MethodCall{
		Receiver: fieldX(useShowParam),
		TraitRef: &ast.NameTypeExpr{Name: "Show"},
		Method:   "show",
	}

	mainParam := &ast.Param{Name: "p", TypeExpr: &ast.NameTypeExpr{Name: "Point"}}
	mainFn := &ast.FnDecl{
		Params:     []*ast.Param{mainParam},
		ReturnType: &ast.PrimTypeExpr{Name: "i32"},
		Parent:     root,
	}
	mainFn.Name = "main"
	mainFn.Body = &ast.IfExpr{
		Cond: &ast.FieldAccess{Receiver: &ast.Var{Name: mainParam.Name, Decl: mainParam}, Field: "flag"},
		Then: fieldX(mainParam),
		Else: fieldX(mainParam),
	}

	root.Decls = []ast.DeclNode{point, show, showForI32, identity, useIdentity, useShow, mainFn}

	return &ast.File{Name: "demo", Root: root}
}
