package ast

import (
	"github.com/escript/escript/internal/lexer"
)

// ParenExpression represents a parenthesized expression. It is kept in the
// tree (rather than unwrapped) because grouping changes what counts as a
// LeftHandSideExpression for assignment.
type ParenExpression struct {
	Expr   Expression
	Src    lexer.Source
	SrcPos lexer.Position
}

func (p *ParenExpression) expressionNode()      {}
func (p *ParenExpression) Source() lexer.Source { return p.Src }
func (p *ParenExpression) Pos() lexer.Position  { return p.SrcPos }

// BinaryExpression represents a binary operation, including assignment and
// compound assignment (the operator token distinguishes them).
type BinaryExpression struct {
	Left   Expression
	Right  Expression
	Op     lexer.Token
	Src    lexer.Source
	SrcPos lexer.Position
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) Source() lexer.Source { return b.Src }
func (b *BinaryExpression) Pos() lexer.Position  { return b.SrcPos }

// UnaryExpression represents a prefix or postfix unary operation.
type UnaryExpression struct {
	Operand Expression
	Op      lexer.Token
	Prefix  bool
	Src     lexer.Source
	SrcPos  lexer.Position
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) Source() lexer.Source { return u.Src }
func (u *UnaryExpression) Pos() lexer.Position  { return u.SrcPos }

// ConditionalExpression represents `cond ? then : else`.
type ConditionalExpression struct {
	Cond   Expression
	Then   Expression
	Else   Expression
	Src    lexer.Source
	SrcPos lexer.Position
}

func (c *ConditionalExpression) expressionNode()      {}
func (c *ConditionalExpression) Source() lexer.Source { return c.Src }
func (c *ConditionalExpression) Pos() lexer.Position  { return c.SrcPos }

// SequenceExpression represents a comma expression with two or more
// elements. Single-element sequences are never built; the parser returns
// the element itself.
type SequenceExpression struct {
	Elements []Expression
	Src      lexer.Source
	SrcPos   lexer.Position
}

func (s *SequenceExpression) expressionNode()      {}
func (s *SequenceExpression) Source() lexer.Source { return s.Src }
func (s *SequenceExpression) Pos() lexer.Position  { return s.SrcPos }

// FunctionLiteral represents a function expression or declaration. Name is
// NOT_FOUND for anonymous expressions. The body Program has FunctionBody
// set.
type FunctionLiteral struct {
	Name   lexer.Token
	Params []lexer.Token
	Body   *Program
	Src    lexer.Source
	SrcPos lexer.Position
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) Source() lexer.Source { return f.Src }
func (f *FunctionLiteral) Pos() lexer.Position  { return f.SrcPos }

// Arguments represents an argument list `(a, b, c)`.
type Arguments struct {
	List   []Expression
	Src    lexer.Source
	SrcPos lexer.Position
}

func (a *Arguments) expressionNode()      {}
func (a *Arguments) Source() lexer.Source { return a.Src }
func (a *Arguments) Pos() lexer.Position  { return a.SrcPos }

// PostfixKind tags one step of a LeftHandSideExpression suffix.
type PostfixKind int

const (
	PostfixCall  PostfixKind = iota // (args)
	PostfixIndex                    // [expr]
	PostfixProp                     // .name
)

// Postfix is one call/index/property step. Exactly one of Args, Index and
// Prop is meaningful, selected by Kind.
type Postfix struct {
	Kind  PostfixKind
	Args  *Arguments
	Index Expression
	Prop  lexer.Token
}

// LHSExpression represents a LeftHandSideExpression: a base (primary or
// function expression) with a `new` prefix count and an ordered suffix of
// call, index and property steps. The suffix order is preserved exactly as
// written; the evaluator reinterprets the first NewCount call steps as
// construct operations.
type LHSExpression struct {
	Base     Expression
	NewCount int
	Postfix  []Postfix
	Src      lexer.Source
	SrcPos   lexer.Position
}

func (l *LHSExpression) expressionNode()      {}
func (l *LHSExpression) Source() lexer.Source { return l.Src }
func (l *LHSExpression) Pos() lexer.Position  { return l.SrcPos }
