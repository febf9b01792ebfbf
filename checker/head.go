package checker

import (
	"github.com/PearCoding/artic/internal/ast"
	"github.com/PearCoding/artic/internal/diag"
	"github.com/PearCoding/artic/typealgebra"
	"github.com/PearCoding/artic/typetable"
)

var primByName = map[string]typetable.PrimTag{
	"bool": typetable.Bool,
	"i8":   typetable.I8,
	"i16":  typetable.I16,
	"i32":  typetable.I32,
	"i64":  typetable.I64,
	"u8":   typetable.U8,
	"u16":  typetable.U16,
	"u32":  typetable.U32,
	"u64":  typetable.U64,
	"f16":  typetable.F16,
	"f32":  typetable.F32,
	"f64":  typetable.F64,
}

// resolveTypeExpr lowers a TypeExpr into a canonical Type (spec.md §5/§6),
// resolving NameTypeExpr against sc. It never fails silently: an unresolved
// name reports an Invalid diagnostic and a wrong generic argument count an
// ArityMismatch one through c.diags, and both return TypeError so callers can
// keep walking.
func (c *Checker) resolveTypeExpr(sc *scope, te ast.TypeExpr) typetable.Type {
	switch v := te.(type) {
	case *ast.PrimTypeExpr:
		tag, ok := primByName[v.Name]
		if !ok {
			c.report(diag.New(v, diag.Invalid, diag.SeverityError, "unknown primitive type '{0}'", v.Name))
			return c.tbl.TypeErrorType()
		}
		return c.tbl.PrimTypeOf(tag)
	case *ast.TupleTypeExpr:
		elems := make([]typetable.Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = c.resolveTypeExpr(sc, e)
		}
		return c.tbl.TupleTypeOf(elems)
	case *ast.FnTypeExpr:
		dom := c.resolveTypeExpr(sc, v.Dom)
		codom := c.resolveTypeExpr(sc, v.Codom)
		return c.tbl.FnTypeOf(dom, codom)
	case *ast.RefTypeExpr:
		pointee := c.resolveTypeExpr(sc, v.Pointee)
		return c.tbl.RefTypeOf(pointee, v.Mut, v.AddrSpace)
	case *ast.PtrTypeExpr:
		pointee := c.resolveTypeExpr(sc, v.Pointee)
		return c.tbl.PtrTypeOf(pointee, v.Mut, v.AddrSpace)
	case *ast.SizedArrayTypeExpr:
		elem := c.resolveTypeExpr(sc, v.Elem)
		return c.tbl.SizedArrayTypeOf(elem, v.Size, v.Simd)
	case *ast.UnsizedArrayTypeExpr:
		elem := c.resolveTypeExpr(sc, v.Elem)
		return c.tbl.UnsizedArrayTypeOf(elem)
	case *ast.NameTypeExpr:
		found, ok := sc.lookupType(v.Name)
		if !ok {
			c.report(diag.New(v, diag.Invalid, diag.SeverityError, "undefined type '{0}'", v.Name))
			return c.tbl.TypeErrorType()
		}
		if decl, ok := sc.lookupDecl(v.Name); ok {
			if want := declTypeParamCount(decl); want != len(v.Args) {
				c.report(diag.New(v, diag.ArityMismatch, diag.SeverityError,
					"'{0}' expects {1} generic argument(s), got {2}", v.Name, want, len(v.Args)))
				return c.tbl.TypeErrorType()
			}
		}
		if len(v.Args) == 0 {
			return found
		}
		args := make([]typetable.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = c.resolveTypeExpr(sc, a)
		}
		return c.tbl.TypeAppOf(found, args)
	default:
		c.report(diag.New(te, diag.Invalid, diag.SeverityError, "unrecognized type expression"))
		return c.tbl.TypeErrorType()
	}
}

// declTypeParamCount is the generic arity a NameTypeExpr referencing decl
// must supply (spec.md §7's ArityMismatch: "generic argument count ...
// disagrees"). Decls with no TypeParams field (TypeParam itself, ModDecl)
// are never generic, so they expect zero arguments.
func declTypeParamCount(decl ast.DeclNode) int {
	switch d := decl.(type) {
	case *ast.StructDecl:
		return len(d.TypeParams)
	case *ast.EnumDecl:
		return len(d.TypeParams)
	case *ast.TraitDecl:
		return len(d.TypeParams)
	case *ast.TypeAliasDecl:
		return len(d.TypeParams)
	default:
		return 0
	}
}

// emitHeads is sub-pass (1) of spec.md §5: assigns identity to every
// nominal type and fn signature in mod, recursing into nested modules.
// Struct/enum member types are resolved after every sibling's own identity
// exists, so forward references between sibling declarations are legal.
func (c *Checker) emitHeads(mod *ast.ModDecl, parentScope *scope) *scope {
	sc := newScope(parentScope)
	modType := c.tbl.ModTypeOf(mod, mod.Name)
	sc.bind(mod.Name, modType, mod)
	mod.SetType(modType)

	// Pass A: mint the nominal identity for every struct, enum and trait
	// decl so references to them resolve regardless of declaration order.
	for _, d := range mod.Decls {
		switch decl := d.(type) {
		case *ast.StructDecl:
			t := c.tbl.StructTypeOf(decl, decl.Name)
			decl.SetType(t)
			sc.bind(decl.Name, t, decl)
		case *ast.EnumDecl:
			t := c.tbl.EnumTypeOf(decl, decl.Name)
			decl.SetType(t)
			sc.bind(decl.Name, t, decl)
		case *ast.TraitDecl:
			t := c.tbl.TraitTypeOf(decl, decl.Name)
			decl.SetType(t)
			sc.bind(decl.Name, t, decl)
			c.traits[decl.Name] = t
		case *ast.TypeAliasDecl:
			// nothing is minted here: an alias is bound only when pass B
			// reaches its declaration, so a reference to it from an earlier
			// sibling (or from its own body) reports an undefined type.
		case *ast.ModDecl:
			decl.Parent = mod
		}
	}

	// Pass B: resolve bodies (fields, variants, alias bodies, fn
	// signatures, impl targets) now that every name in this module resolves.
	for _, d := range mod.Decls {
		switch decl := d.(type) {
		case *ast.StructDecl:
			fieldScope := c.bindTypeParams(sc, decl.TypeParams)
			fields := make([]typetable.FieldType, len(decl.Fields))
			for i, f := range decl.Fields {
				fields[i] = typetable.FieldType{Name: f.Name, Type: c.resolveTypeExpr(fieldScope, f.TypeExpr)}
			}
			self := decl.Type()
			c.tbl.SetStructFields(self.(*typetable.StructType), fields)
			for i, f := range decl.Fields {
				c.checkMemberSized(f, self, fields[i].Type, f.Name)
			}
		case *ast.EnumDecl:
			variantScope := c.bindTypeParams(sc, decl.TypeParams)
			variants := make([]typetable.EnumVariant, len(decl.Variants))
			for i, variant := range decl.Variants {
				fields := make([]typetable.FieldType, len(variant.Fields))
				for j, f := range variant.Fields {
					fields[j] = typetable.FieldType{Name: f.Name, Type: c.resolveTypeExpr(variantScope, f.TypeExpr)}
				}
				variants[i] = typetable.EnumVariant{Name: variant.Name, Fields: fields}
			}
			self := decl.Type()
			c.tbl.SetEnumVariants(self.(*typetable.EnumType), variants)
			for i, variant := range decl.Variants {
				for j, f := range variant.Fields {
					c.checkMemberSized(f, self, variants[i].Fields[j].Type, f.Name)
				}
			}
		case *ast.TypeAliasDecl:
			paramScope := newScope(sc)
			params := make([]*typetable.TypeVar, len(decl.TypeParams))
			for i, tp := range decl.TypeParams {
				tv := c.tbl.TypeVarOf(tp, tp.Name).(*typetable.TypeVar)
				tp.SetType(tv)
				paramScope.bind(tp.Name, tv, tp)
				params[i] = tv
			}
			body := c.resolveTypeExpr(paramScope, decl.Body)
			t := c.tbl.TypeAliasOf(decl, decl.Name, params, body)
			decl.SetType(t)
			sc.bind(decl.Name, t, decl)
		case *ast.FnDecl:
			c.emitFnHead(sc, decl)
		case *ast.ImplDecl:
			c.emitImplHead(sc, decl)
		case *ast.ModDecl:
			c.emitHeads(decl, sc)
		}
	}

	return sc
}

// checkMemberSized enforces spec.md §4.2/§7's sizedness rule for a struct or
// enum member: a field naming its own enclosing type with no indirection is
// the direct-self-reference case spec.md §7 names Cycle; anything else that
// fails typealgebra.IsSized (an unsized array nested without indirection, or
// a transitively unsized member) is the more general Unsized diagnostic.
func (c *Checker) checkMemberSized(loc diag.Loc, self, member typetable.Type, fieldName string) {
	if member == self {
		c.report(diag.New(loc, diag.Cycle, diag.SeverityError,
			"field '{0}' directly contains its own enclosing type '{1}' without indirection", fieldName, self))
		return
	}
	if !typealgebra.IsSized(c.tbl, member) {
		c.report(diag.New(loc, diag.Unsized, diag.SeverityError,
			"field '{0}' has unsized type '{1}'", fieldName, member))
	}
}

func (c *Checker) bindTypeParams(parent *scope, params []*ast.TypeParam) *scope {
	if len(params) == 0 {
		return parent
	}
	sc := newScope(parent)
	for _, tp := range params {
		tv := c.tbl.TypeVarOf(tp, tp.Name)
		tp.SetType(tv)
		sc.bind(tp.Name, tv, tp)
	}
	return sc
}

func (c *Checker) emitFnHead(sc *scope, decl *ast.FnDecl) {
	fnScope := c.bindTypeParams(sc, decl.TypeParams)
	for _, wc := range decl.WhereClauses {
		wc.SetType(c.resolveTypeExpr(fnScope, wc.TraitRef))
	}
	paramTypes := make([]typetable.Type, len(decl.Params))
	for i, p := range decl.Params {
		t := c.resolveTypeExpr(fnScope, p.TypeExpr)
		p.SetType(t)
		paramTypes[i] = t
	}
	codom := c.tbl.UnitType()
	if decl.ReturnType != nil {
		codom = c.resolveTypeExpr(fnScope, decl.ReturnType)
	}
	fnType := c.tbl.FnTypeOf(c.tbl.TupleTypeOf(paramTypes), codom)
	if len(decl.TypeParams) > 0 {
		fnType = c.tbl.ForallTypeOf(decl, fnType)
	}
	decl.SetType(fnType)
}

func (c *Checker) emitImplHead(sc *scope, decl *ast.ImplDecl) {
	implScope := c.bindTypeParams(sc, decl.TypeParams)
	decl.ImpledTyp = c.resolveTypeExpr(implScope, decl.ImpledType)
	if decl.TraitRef != nil {
		base := c.resolveTypeExpr(implScope, decl.TraitRef)
		// TraitTyp must match the shape a method-call site builds its
		// obligation in (spec.md §4.6): the trait applied to the self type,
		// with any of the trait reference's own explicit arguments following.
		if app, ok := base.(*typetable.TypeApp); ok {
			args := append([]typetable.Type{decl.ImpledTyp}, app.Args...)
			decl.TraitTyp = c.tbl.TypeAppOf(app.Applied, args)
		} else {
			decl.TraitTyp = c.tbl.TypeAppOf(base, []typetable.Type{decl.ImpledTyp})
		}
	}
	for _, wc := range decl.WhereClauses {
		wc.SetType(c.resolveTypeExpr(implScope, wc.TraitRef))
	}
	decl.SetType(decl.ImpledTyp)
}
