package checker

import (
	"github.com/PearCoding/artic/internal/ast"
	"github.com/PearCoding/artic/typetable"
)

// scope is a lexical name environment for resolving TypeExpr names to the
// nominal Type a prior head-emission step assigned them (spec.md §5: head
// emission runs before body checking precisely so these names are always
// already bound by the time a TypeExpr referencing them is resolved).
type scope struct {
	parent *scope
	types  map[string]typetable.Type
	decls  map[string]ast.DeclNode
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, types: make(map[string]typetable.Type), decls: make(map[string]ast.DeclNode)}
}

func (s *scope) bind(name string, t typetable.Type, decl ast.DeclNode) {
	s.types[name] = t
	s.decls[name] = decl
}

func (s *scope) lookupType(name string) (typetable.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.types[name]; ok {
			return t, true
		}
	}
	return nil, false
}

func (s *scope) lookupDecl(name string) (ast.DeclNode, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if d, ok := cur.decls[name]; ok {
			return d, true
		}
	}
	return nil, false
}
