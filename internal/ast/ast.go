// Package ast defines the Abstract Syntax Tree node types for ECMAScript.
//
// Every node remembers the source slice it covers as a view into the
// original code-unit buffer. The evaluator decodes numeric and string
// literals from these slices, and diagnostics quote them, so the buffer must
// outlive the tree.
package ast

import (
	"github.com/escript/escript/internal/lexer"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// Source returns the code units this node covers.
	Source() lexer.Source

	// Pos returns the position of the node in the source code for error
	// reporting.
	Pos() lexer.Position
}

// Expression represents any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Illegal marks a parse failure. Its source slice points at the offending
// region. It satisfies both interfaces so any production can fail in place.
type Illegal struct {
	Src    lexer.Source
	SrcPos lexer.Position
}

func (i *Illegal) expressionNode()       {}
func (i *Illegal) statementNode()        {}
func (i *Illegal) Source() lexer.Source  { return i.Src }
func (i *Illegal) Pos() lexer.Position   { return i.SrcPos }

// IsIllegal reports whether a node is the Illegal marker.
func IsIllegal(n Node) bool {
	_, ok := n.(*Illegal)
	return ok
}

// Program is the root node for global code, eval code and function bodies.
// FunctionBody distinguishes the latter: a return statement is only legal
// when it is set, and the directive prologue of either kind can enable
// strict mode.
//
// Function declarations are hoisted out of the statement list at parse time;
// Declarations preserves their textual order for declaration binding
// instantiation.
type Program struct {
	Strict       bool
	FunctionBody bool
	Declarations []*FunctionLiteral
	Statements   []Statement
	Src          lexer.Source
	SrcPos       lexer.Position
}

func (p *Program) Source() lexer.Source { return p.Src }
func (p *Program) Pos() lexer.Position  { return p.SrcPos }
