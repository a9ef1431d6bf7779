package ast

import (
	"github.com/escript/escript/internal/lexer"
)

// ThisExpression represents the `this` keyword.
type ThisExpression struct {
	Src    lexer.Source
	SrcPos lexer.Position
}

func (t *ThisExpression) expressionNode()      {}
func (t *ThisExpression) Source() lexer.Source { return t.Src }
func (t *ThisExpression) Pos() lexer.Position  { return t.SrcPos }

// Identifier represents a name in expression position.
type Identifier struct {
	Src    lexer.Source
	SrcPos lexer.Position
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) Source() lexer.Source { return i.Src }
func (i *Identifier) Pos() lexer.Position  { return i.SrcPos }

// Name returns the identifier spelling.
func (i *Identifier) Name() string { return i.Src.String() }

// NullLiteral represents the `null` literal.
type NullLiteral struct {
	Src    lexer.Source
	SrcPos lexer.Position
}

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) Source() lexer.Source { return n.Src }
func (n *NullLiteral) Pos() lexer.Position  { return n.SrcPos }

// BooleanLiteral represents `true` or `false`. The value is decoded from the
// source slice.
type BooleanLiteral struct {
	Src    lexer.Source
	SrcPos lexer.Position
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) Source() lexer.Source { return b.Src }
func (b *BooleanLiteral) Pos() lexer.Position  { return b.SrcPos }

// Value reports whether the literal spells `true`.
func (b *BooleanLiteral) Value() bool {
	return len(b.Src) == 4 && b.Src[0] == 't'
}

// NumberLiteral represents a numeric literal. The double value is decoded
// lazily by the evaluator from the source slice.
type NumberLiteral struct {
	Src    lexer.Source
	SrcPos lexer.Position
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) Source() lexer.Source { return n.Src }
func (n *NumberLiteral) Pos() lexer.Position  { return n.SrcPos }

// StringLiteral represents a string literal including its quotes. Escape
// sequences are decoded lazily by the evaluator.
type StringLiteral struct {
	Src    lexer.Source
	SrcPos lexer.Position
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) Source() lexer.Source { return s.Src }
func (s *StringLiteral) Pos() lexer.Position  { return s.SrcPos }

// RegexLiteral represents a regular expression literal. Evaluation produces
// a RegExp stub object; there is no execution engine behind it.
type RegexLiteral struct {
	Src    lexer.Source
	SrcPos lexer.Position
}

func (r *RegexLiteral) expressionNode()      {}
func (r *RegexLiteral) Source() lexer.Source { return r.Src }
func (r *RegexLiteral) Pos() lexer.Position  { return r.SrcPos }

// ArrayElement pairs an array literal element with the index it lands on,
// so elided positions advance the length without storing a node.
type ArrayElement struct {
	Index int
	Value Expression
}

// ArrayLiteral represents `[e0, , e2]`. Length counts elided positions; a
// trailing comma does not add to it.
type ArrayLiteral struct {
	Elements []ArrayElement
	Length   int
	Src      lexer.Source
	SrcPos   lexer.Position
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) Source() lexer.Source { return a.Src }
func (a *ArrayLiteral) Pos() lexer.Position  { return a.SrcPos }

// PropertyKind distinguishes plain properties from accessors.
type PropertyKind int

const (
	PropertyNormal PropertyKind = iota
	PropertyGet
	PropertySet
)

// Property is one entry of an object literal. The key token may be an
// IdentifierName, string literal, or numeric literal.
type Property struct {
	Key   lexer.Token
	Value Expression
	Kind  PropertyKind
}

// ObjectLiteral represents `{a: 1, get b() {...}}`. Properties are kept in
// source order; duplicate keys are resolved by the evaluator, last
// definition of a given kind winning.
type ObjectLiteral struct {
	Properties []Property
	Src        lexer.Source
	SrcPos     lexer.Position
}

func (o *ObjectLiteral) expressionNode()      {}
func (o *ObjectLiteral) Source() lexer.Source { return o.Src }
func (o *ObjectLiteral) Pos() lexer.Position  { return o.SrcPos }
