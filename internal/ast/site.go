package ast

// Site is a lexical position the impl resolver is asked to resolve an
// obligation from (spec.md §4.6's `decl` argument to `find_impl`): the
// nearest enclosing function (nil at module scope) and the nearest
// enclosing module (never nil for any site inside a parsed File).
type Site struct {
	Fn  *FnDecl
	Mod *ModDecl
}

// SiteAt builds the Site enclosing fn (pass nil if the reference site is at
// module top level rather than inside a function body).
func SiteAt(fn *FnDecl, mod *ModDecl) Site { return Site{Fn: fn, Mod: mod} }
