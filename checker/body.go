package checker

import (
	"github.com/PearCoding/artic/bounds"
	"github.com/PearCoding/artic/internal/ast"
	"github.com/PearCoding/artic/internal/diag"
	"github.com/PearCoding/artic/subtype"
	"github.com/PearCoding/artic/typetable"
)

// checkModBodies is sub-pass (2) of spec.md §5: walks every fn body in mod
// (and its nested modules), in source order.
func (c *Checker) checkModBodies(mod *ast.ModDecl, site ast.Site) {
	for _, d := range mod.Decls {
		switch decl := d.(type) {
		case *ast.FnDecl:
			c.checkFnBody(decl, ast.SiteAt(site.Fn, mod))
		case *ast.ModDecl:
			c.checkModBodies(decl, ast.SiteAt(nil, mod))
		}
	}
}

func (c *Checker) checkFnBody(decl *ast.FnDecl, parentSite ast.Site) {
	site := ast.SiteAt(decl, parentSite.Mod)
	bscope := bounds.NewScope(nil)

	if decl.Body == nil {
		return
	}
	bodyType := c.checkExpr(decl.Body, site, bscope)

	codom := fnCodom(decl.Type())
	if codom != nil {
		c.postSubtype(decl.Body, bscope, bodyType, codom, "function body type '{0}' does not match declared return type '{1}'")
	}

	for _, r := range bscope.Instantiate(c.tbl) {
		if r.Ambiguous {
			severity := diag.SeverityWarning
			if c.opts.AmbiguousBoundsIsError {
				severity = diag.SeverityError
			}
			c.report(diag.New(decl, diag.AmbiguousBounds, severity,
				"inference variable '{0}' has inconsistent bounds", r.Var))
		}
	}
}

// fnCodom unwraps an optional ForallType to get at the underlying FnType's
// codomain.
func fnCodom(t typetable.Type) typetable.Type {
	if f, ok := t.(*typetable.ForallType); ok {
		t = f.Body
	}
	if fn, ok := t.(*typetable.FnType); ok {
		return fn.Codom
	}
	return nil
}

// postSubtype posts sub <: sup to bscope and, when neither side mentions an
// inference variable, also checks it immediately so a concrete mismatch is
// reported at the earliest site that detects it (spec.md §7); when a
// variable is involved the bounds engine's scope-exit instantiation is what
// ultimately surfaces an inconsistency.
func (c *Checker) postSubtype(loc diag.Loc, bscope *bounds.Scope, sub, sup typetable.Type, template string) {
	bscope.Post(c.tbl, sub, sup)
	if containsTypeVar(sub) || containsTypeVar(sup) {
		return
	}
	if !subtype.IsSubtype(sub, sup) {
		c.report(diag.New(loc, diag.Mismatch, diag.SeverityError, template, sub, sup))
		return
	}
}

func containsTypeVar(t typetable.Type) bool {
	switch v := t.(type) {
	case *typetable.TypeVar:
		return true
	case *typetable.TupleType:
		for _, e := range v.Elems {
			if containsTypeVar(e) {
				return true
			}
		}
		return false
	case *typetable.SizedArrayType:
		return containsTypeVar(v.Elem)
	case *typetable.UnsizedArrayType:
		return containsTypeVar(v.Elem)
	case *typetable.PtrType:
		return containsTypeVar(v.Pointee)
	case *typetable.RefType:
		return containsTypeVar(v.Pointee)
	case *typetable.FnType:
		return containsTypeVar(v.Dom) || containsTypeVar(v.Codom)
	case *typetable.TypeApp:
		if containsTypeVar(v.Applied) {
			return true
		}
		for _, a := range v.Args {
			if containsTypeVar(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// typed is satisfied by every ast node that carries a mutable type slot
// (Expr, Pattern, declBase-based decls, Param, WhereClause).
type typed interface{ Type() typetable.Type }

func typeOf(n ast.Node) typetable.Type {
	if t, ok := n.(typed); ok {
		return t.Type()
	}
	return nil
}

func (c *Checker) checkExpr(e ast.Expr, site ast.Site, bscope *bounds.Scope) typetable.Type {
	switch v := e.(type) {
	case *ast.IntLit:
		t := c.tbl.PrimTypeOf(typetable.I32)
		v.SetType(t)
		return t
	case *ast.ErrorExpr:
		t := c.tbl.TypeErrorType()
		v.SetType(t)
		return t
	case *ast.Var:
		t := typeOf(v.Decl)
		if t == nil {
			c.report(diag.New(v, diag.Invalid, diag.SeverityError, "undefined variable '{0}'", v.Name))
			t = c.tbl.TypeErrorType()
		}
		v.SetType(t)
		return t
	case *ast.TupleExpr:
		elems := make([]typetable.Type, len(v.Elems))
		for i, el := range v.Elems {
			elems[i] = c.checkExpr(el, site, bscope)
		}
		t := c.tbl.TupleTypeOf(elems)
		v.SetType(t)
		return t
	case *ast.RefExpr:
		operand := c.checkExpr(v.Operand, site, bscope)
		t := c.tbl.RefTypeOf(operand, v.Mut, v.AddrSpace)
		v.SetType(t)
		return t
	case *ast.DerefExpr:
		operand := c.checkExpr(v.Operand, site, bscope)
		var t typetable.Type
		switch o := operand.(type) {
		case *typetable.RefType:
			t = o.Pointee
		case *typetable.PtrType:
			t = o.Pointee
		default:
			c.report(diag.New(v, diag.Mismatch, diag.SeverityError, "cannot dereference non-pointer type '{0}'", operand))
			t = c.tbl.TypeErrorType()
		}
		v.SetType(t)
		return t
	case *ast.IfExpr:
		cond := c.checkExpr(v.Cond, site, bscope)
		c.postSubtype(v, bscope, cond, c.tbl.BoolType(), "condition has type '{0}', expected '{1}'")
		thenType := c.checkExpr(v.Then, site, bscope)
		var t typetable.Type
		if v.Else != nil {
			elseType := c.checkExpr(v.Else, site, bscope)
			t = subtype.Join(c.tbl, thenType, elseType)
			if _, isTop := t.(*typetable.TopType); isTop {
				c.report(diag.New(v, diag.Mismatch, diag.SeverityError,
					"if branches have unrelated types '{0}' and '{1}'", thenType, elseType))
			}
		} else {
			t = c.tbl.UnitType()
		}
		v.SetType(t)
		return t
	case *ast.FieldAccess:
		t := c.checkFieldAccess(v, site, bscope)
		v.SetType(t)
		return t
	case *ast.Call:
		t := c.checkCall(v, site, bscope)
		v.SetType(t)
		return t
	case *ast.MethodCall:
		t := c.checkMethodCall(v, site, bscope)
		v.SetType(t)
		return t
	case *ast.LetExpr:
		valueType := c.checkExpr(v.Value, site, bscope)
		c.checkPattern(v.Pattern, valueType, bscope)
		t := c.checkExpr(v.Body, site, bscope)
		v.SetType(t)
		return t
	default:
		c.report(diag.New(e, diag.Invalid, diag.SeverityError, "unrecognized expression"))
		t := c.tbl.TypeErrorType()
		return t
	}
}

func (c *Checker) checkFieldAccess(v *ast.FieldAccess, site ast.Site, bscope *bounds.Scope) typetable.Type {
	receiver := c.checkExpr(v.Receiver, site, bscope)
	if r, ok := receiver.(*typetable.RefType); ok {
		receiver = r.Pointee // implicit deref
	}
	s, ok := receiver.(*typetable.StructType)
	if !ok {
		c.report(diag.New(v, diag.Mismatch, diag.SeverityError, "'{0}' is not a struct type", receiver))
		return c.tbl.TypeErrorType()
	}
	fields, _ := c.tbl.StructFields(s)
	for _, f := range fields {
		if f.Name == v.Field {
			return f.Type
		}
	}
	c.report(diag.New(v, diag.Invalid, diag.SeverityError, "struct '{0}' has no field '{1}'", s, v.Field))
	return c.tbl.TypeErrorType()
}

// checkPattern assigns t (or a component of it) to p and every nested
// pattern, reporting ArityMismatch when a TuplePattern's element count
// disagrees with t's own arity (spec.md §7). Once checked, a VarPattern's
// mutable type slot makes it a valid ast.Var.Decl target (a reference to the
// binding it introduces).
func (c *Checker) checkPattern(p ast.Pattern, t typetable.Type, bscope *bounds.Scope) {
	switch pt := p.(type) {
	case *ast.VarPattern:
		pt.SetType(t)
	case *ast.WildcardPattern:
		pt.SetType(t)
	case *ast.TuplePattern:
		tup, ok := t.(*typetable.TupleType)
		if !ok || len(tup.Elems) != len(pt.Elems) {
			c.report(diag.New(p, diag.ArityMismatch, diag.SeverityError,
				"tuple pattern has {0} element(s), value has type '{1}'", len(pt.Elems), t))
			pt.SetType(c.tbl.TypeErrorType())
			for _, e := range pt.Elems {
				c.checkPattern(e, c.tbl.TypeErrorType(), bscope)
			}
			return
		}
		for i, e := range pt.Elems {
			c.checkPattern(e, tup.Elems[i], bscope)
		}
		pt.SetType(t)
	default:
		c.report(diag.New(p, diag.Invalid, diag.SeverityError, "unrecognized pattern"))
	}
}

func (c *Checker) checkCall(v *ast.Call, site ast.Site, bscope *bounds.Scope) typetable.Type {
	fnType := c.checkExpr(v.Fn, site, bscope)
	if forall, ok := fnType.(*typetable.ForallType); ok {
		fnType = c.instantiate(forall, bscope)
	}
	argTypes := make([]typetable.Type, len(v.Args))
	for i, a := range v.Args {
		argTypes[i] = c.checkExpr(a, site, bscope)
	}
	fn, ok := fnType.(*typetable.FnType)
	if !ok {
		c.report(diag.New(v, diag.Mismatch, diag.SeverityError, "'{0}' is not callable", fnType))
		return c.tbl.TypeErrorType()
	}
	argsTuple := c.tbl.TupleTypeOf(argTypes)
	c.postSubtype(v, bscope, argsTuple, fn.Dom, "argument types '{0}' do not match parameter types '{1}'")
	return fn.Codom
}

// instantiate replaces a ForallType's own type parameters with fresh
// inference variables owned by bscope (spec.md §9's "fresh TypeVars
// attached to a local bounds map").
func (c *Checker) instantiate(forall *typetable.ForallType, bscope *bounds.Scope) typetable.Type {
	fn, ok := forall.Decl.(*ast.FnDecl)
	if !ok || len(fn.TypeParams) == 0 {
		return forall.Body
	}
	subst := make(map[typetable.Type]typetable.Type, len(fn.TypeParams))
	for _, tp := range fn.TypeParams {
		fresh := bscope.Fresh(c.tbl, tp.Name)
		subst[tp.Type()] = fresh
	}
	return c.tbl.Substitute(forall.Body, subst)
}

func (c *Checker) checkMethodCall(v *ast.MethodCall, site ast.Site, bscope *bounds.Scope) typetable.Type {
	receiver := c.checkExpr(v.Receiver, site, bscope)
	for _, a := range v.Args {
		c.checkExpr(a, site, bscope)
	}
	traitName, ok := v.TraitRef.(*ast.NameTypeExpr)
	if !ok {
		c.report(diag.New(v, diag.Invalid, diag.SeverityError, "method call trait reference must be a name"))
		return c.tbl.TypeErrorType()
	}
	traitType, ok := c.traits[traitName.Name]
	if !ok {
		c.report(diag.New(v, diag.Invalid, diag.SeverityError, "undefined trait '{0}'", traitName.Name))
		return c.tbl.TypeErrorType()
	}
	obligation := c.tbl.TypeAppOf(traitType, []typetable.Type{receiver})
	outcome, err := c.resolver.FindImpl(site, obligation)
	if err != nil {
		c.report(diag.New(v, diag.UnresolvedImpl, diag.SeverityError, "{0}", err.Error()))
		return c.tbl.TypeErrorType()
	}
	if !outcome.Found() {
		c.report(diag.New(v, diag.UnresolvedImpl, diag.SeverityError,
			"no impl witnesses '{0}' for method '{1}'", obligation, v.Method))
		return c.tbl.TypeErrorType()
	}
	// This minimal AST does not model per-method signatures on a trait, so
	// the receiver's own type is the best available result type.
	return receiver
}
