// Package checker is the two-pass driver of spec.md §5: head emission
// assigns identity to every nominal type and fn signature, then body
// checking walks expressions, posts subtype obligations to the bounds
// engine, and calls the impl resolver at trait-method call sites. It wires
// together every other component: typetable, typealgebra, subtype, unify,
// bounds, implresolve, internal/ast, internal/diag, internal/config, and
// internal/corelog.
package checker

import (
	"log/slog"

	"github.com/PearCoding/artic/internal/ast"
	"github.com/PearCoding/artic/internal/config"
	"github.com/PearCoding/artic/internal/corelog"
	"github.com/PearCoding/artic/internal/diag"
	"github.com/PearCoding/artic/implresolve"
	"github.com/PearCoding/artic/typetable"
)

var log = corelog.Default.With("section", "checker")

// Checker owns one compilation unit's type table, diagnostic bag, and impl
// resolver (spec.md §5: "a compilation run owns one type table").
type Checker struct {
	tbl      *typetable.Table
	diags    *diag.Bag
	resolver *implresolve.Resolver
	opts     config.Options
	errCount int

	// traits maps a trait's declared name to its interned TraitType, so a
	// MethodCall's simple trait-name reference can be turned into an
	// obligation without re-running name resolution over a TypeExpr.
	traits map[string]typetable.Type
}

// New creates a Checker configured by opts.
func New(opts config.Options) *Checker {
	corelog.SetLevel(opts.LogLevel)
	tbl := typetable.NewTable()
	return &Checker{
		tbl:      tbl,
		diags:    &diag.Bag{},
		resolver: implresolve.New(tbl, opts),
		opts:     opts,
		traits:   make(map[string]typetable.Type),
	}
}

// Table exposes the checker's canonical type table, e.g. for a back-end
// that consults order/is_sized/shape discrimination post-check (spec.md §6).
func (c *Checker) Table() *typetable.Table { return c.tbl }

func (c *Checker) report(d *diag.Diagnostic) {
	c.diags = c.diags.With(d)
	if d.Severity == diag.SeverityError {
		c.errCount++
	}
	log.Debug("diagnostic", slog.String("message", d.Error()))
}

// ErrorCount is the running count of SeverityError diagnostics; a non-zero
// count after CheckFile aborts downstream compilation (spec.md §7), but
// CheckFile itself never stops early because of it.
func (c *Checker) ErrorCount() int { return c.errCount }

// CheckFile runs both sub-passes over f (spec.md §5) and returns the
// accumulated diagnostics.
func (c *Checker) CheckFile(f *ast.File) *diag.Bag {
	c.emitHeads(f.Root, nil)
	c.registerImpls(f.Root)
	c.checkModBodies(f.Root, ast.SiteAt(nil, f.Root))
	return c.diags
}

// registerImpls is the impl resolver's dedicated registration phase
// (spec.md §5), run after head emission (so every impl's ImpledTyp/TraitTyp
// is known) and before body checking (so method calls can resolve).
func (c *Checker) registerImpls(mod *ast.ModDecl) {
	for _, d := range mod.Decls {
		switch decl := d.(type) {
		case *ast.ImplDecl:
			c.resolver.RegisterImpl(decl)
		case *ast.ModDecl:
			c.registerImpls(decl)
		}
	}
}
