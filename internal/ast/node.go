// Package ast defines the minimal AST surface the type core reads, per
// spec.md §6: declaration nodes with mutable type slots, source ranges for
// diagnostics, and the handful of expression/pattern/type-expression shapes
// needed to exercise the checker end to end. The lexer, parser and pretty
// printer that would produce and round-trip this tree are out of scope
// (spec.md §1) and are not implemented here.
package ast

import (
	"encoding/binary"
	"go/token"
	"hash/fnv"

	"github.com/PearCoding/artic/typetable"
)

// Positioner allows finding the location of a node in the original source.
type Positioner interface {
	Pos() token.Pos
	End() token.Pos
}

// Range is a concrete Positioner covering a contiguous source span.
type Range struct {
	PosStart token.Pos
	PosEnd   token.Pos
}

func (r Range) Pos() token.Pos { return r.PosStart }
func (r Range) End() token.Pos { return r.PosEnd }

func (r Range) Hash() uint64 {
	h := fnv.New64a()
	var arr []byte
	arr = binary.LittleEndian.AppendUint64(arr, uint64(r.PosStart))
	arr = binary.LittleEndian.AppendUint64(arr, uint64(r.PosEnd))
	_, _ = h.Write(arr)
	return h.Sum64()
}

// RangeBetween spans from the start of fst to the end of snd.
func RangeBetween(fst, snd Positioner) Range {
	return Range{fst.Pos(), snd.End()}
}

// Node is the base of every AST node the core reads.
type Node interface {
	Positioner
}

// DeclNode is implemented by every declaration that owns a nominal identity
// in the type table (spec.md §3: "identity = AST decl node"). Two distinct
// DeclNode values are never equal even if structurally identical, which is
// exactly the identity semantics a nominal typetable.Type needs.
type DeclNode interface {
	Node
	typetable.DeclNode
	DeclName() string
}

// Expr is the interface for expression nodes. Every Expr carries a mutable
// type slot, populated by the checker (spec.md §6: "every expression ...
// node has a non-null `type` slot").
type Expr interface {
	Node
	exprNode()
	Type() typetable.Type
	SetType(typetable.Type)
}

// exprBase factors out the mutable type slot shared by every Expr.
type exprBase struct {
	typ typetable.Type
}

func (e *exprBase) Type() typetable.Type     { return e.typ }
func (e *exprBase) SetType(t typetable.Type) { e.typ = t }
func (*exprBase) exprNode()                  {}

// Pattern is the interface for pattern nodes (let-binding targets, match
// arms). Patterns are typed the same way expressions are.
type Pattern interface {
	Node
	patternNode()
	Type() typetable.Type
	SetType(typetable.Type)
}

type patternBase struct {
	typ typetable.Type
}

func (p *patternBase) Type() typetable.Type     { return p.typ }
func (p *patternBase) SetType(t typetable.Type) { p.typ = t }
func (*patternBase) patternNode()               {}
