// Package implresolve answers "does some impl or where-clause witness this
// trait obligation" for a given lexical site (spec.md §4.6). It depends on
// typetable (for TraitType/TypeApp matching), unify (impl-pattern matching),
// and internal/ast (walking the enclosing-function/enclosing-module chain).
package implresolve

import (
	"fmt"
	"strings"

	"github.com/PearCoding/artic/internal/ast"
	"github.com/PearCoding/artic/internal/config"
	"github.com/PearCoding/artic/typetable"
	"github.com/PearCoding/artic/unify"
	"github.com/PearCoding/artic/util"
	"github.com/hashicorp/go-set/v3"
)

// candidateKey keys the registration map by the module an impl lives in and
// the trait it implements (spec.md §4.6: "keys the impl by the trait it
// implements and the lexical module that contains it").
type candidateKey struct {
	mod   *ast.ModDecl
	trait *typetable.TraitType
}

// Resolver owns the read-only-after-registration candidate map (spec.md
// §5: "populated during a dedicated registration phase ... after that phase
// it is read-only").
type Resolver struct {
	tbl        *typetable.Table
	candidates map[candidateKey][]*ast.ImplDecl
	opts       config.Options
}

// New builds a Resolver bound to tbl's canonical types.
func New(tbl *typetable.Table, opts config.Options) *Resolver {
	return &Resolver{tbl: tbl, candidates: make(map[candidateKey][]*ast.ImplDecl), opts: opts}
}

// RegisterImpl records impl as a candidate for the trait it implements,
// keyed by its enclosing module. Inherent impls (TraitTyp == nil) are not
// registered here — they have no obligation to witness.
func (r *Resolver) RegisterImpl(impl *ast.ImplDecl) {
	trait, ok := traitOf(impl.TraitTyp)
	if !ok {
		return
	}
	key := candidateKey{mod: impl.Parent, trait: trait}
	r.candidates[key] = append(r.candidates[key], impl)
}

func traitOf(t typetable.Type) (*typetable.TraitType, bool) {
	switch v := t.(type) {
	case *typetable.TraitType:
		return v, true
	case *typetable.TypeApp:
		tr, ok := v.Applied.(*typetable.TraitType)
		return tr, ok
	default:
		return nil, false
	}
}

// obligationKey identifies one (substituted obligation, lexical module) pair.
// visited holds exactly the keys on the current call stack — findImpl removes
// its own key on return (SPEC_FULL.md §14(a)) — so sibling where-clauses that
// independently need the same obligation never collide; only a genuine regress
// through a key still open on the stack reports cyclic impl resolution.
type obligationKey struct {
	target string
	mod    *ast.ModDecl
}

func keyFor(target typetable.Type, mod *ast.ModDecl) obligationKey {
	return obligationKey{target: target.String(), mod: mod}
}

// Outcome is what FindImpl found for one obligation.
type Outcome struct {
	// Clause is set when a where-clause (rather than a registered impl)
	// discharges the obligation directly.
	Clause *ast.WhereClause
	// Impl is set when a registered impl discharges the obligation.
	Impl *ast.ImplDecl
	// Subst is the unifier's substitution from Impl's declared pattern to
	// the obligation, if Impl is set.
	Subst unify.Subst
}

// Found reports whether resolution succeeded.
func (o Outcome) Found() bool { return o.Clause != nil || o.Impl != nil }

// FindImpl resolves target (a concrete TraitType or TypeApp over a trait)
// from lexical site (spec.md §4.6). It returns (outcome, nil) on success or
// failure to find an impl, and a non-nil error only for a detected cycle or
// exceeding config.Options.MaxResolveDepth.
func (r *Resolver) FindImpl(site ast.Site, target typetable.Type) (Outcome, error) {
	return r.findImpl(site, target, set.New[obligationKey](0), &util.Stack[string]{}, 0)
}

// findImpl additionally threads path, a stack of the obligations discharged
// so far on this call chain, purely to render a readable trace when a cycle
// or depth overrun is reported — it plays no role in the resolution logic
// itself, which is carried entirely by visited and depth.
func (r *Resolver) findImpl(site ast.Site, target typetable.Type, visited *set.Set[obligationKey], path *util.Stack[string], depth int) (Outcome, error) {
	path.Push(target.String())
	defer path.Pop()
	if depth > r.opts.MaxResolveDepth {
		return Outcome{}, fmt.Errorf("impl resolution exceeded max depth (%d): %s", r.opts.MaxResolveDepth, strings.Join(path.PopAll(), " -> "))
	}
	key := keyFor(target, site.Mod)
	if visited.Contains(key) {
		return Outcome{}, fmt.Errorf("cyclic impl resolution: %s", strings.Join(path.PopAll(), " -> "))
	}
	visited.Insert(key)
	defer visited.Remove(key)

	// 1. Walk up enclosing function declarations: where-clauses shadow impls.
	for fn := site.Fn; fn != nil; fn = fn.EnclosingFn {
		for _, wc := range fn.WhereClauses {
			if wc.Type() != nil && wc.Type().Equals(target) {
				return Outcome{Clause: wc}, nil
			}
		}
	}

	trait, ok := traitOf(target)
	if !ok {
		return Outcome{}, nil
	}

	// 2. Walk up enclosing modules, trying every registered candidate impl.
	for mod := site.Mod; mod != nil; mod = mod.Parent {
		for _, impl := range r.candidates[candidateKey{mod: mod, trait: trait}] {
			sigma, ok := unify.Unify(impl.TraitTyp, target, unify.Subst{})
			if !ok {
				continue
			}
			allDischarged := true
			for _, wc := range impl.WhereClauses {
				if wc.Type() == nil {
					continue
				}
				obligation := unify.Apply(r.tbl, wc.Type(), sigma)
				implSite := ast.SiteAt(nil, impl.Parent)
				out, err := r.findImpl(implSite, obligation, visited, path, depth+1)
				if err != nil {
					return Outcome{}, err
				}
				if !out.Found() {
					allDischarged = false
					break
				}
			}
			if allDischarged {
				return Outcome{Impl: impl, Subst: sigma}, nil
			}
		}
	}

	return Outcome{}, nil
}
