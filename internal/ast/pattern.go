package ast

// VarPattern binds Name to whatever it matches.
type VarPattern struct {
	Range
	patternBase
	Name string
}

// WildcardPattern (`_`) matches anything and binds nothing.
type WildcardPattern struct {
	Range
	patternBase
}

// TuplePattern destructures a tuple componentwise.
type TuplePattern struct {
	Range
	patternBase
	Elems []Pattern
}
