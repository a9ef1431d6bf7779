package ast

import (
	"github.com/escript/escript/internal/lexer"
)

// EmptyStatement represents a lone `;`.
type EmptyStatement struct {
	Src    lexer.Source
	SrcPos lexer.Position
}

func (e *EmptyStatement) statementNode()       {}
func (e *EmptyStatement) Source() lexer.Source { return e.Src }
func (e *EmptyStatement) Pos() lexer.Position  { return e.SrcPos }

// BlockStatement represents `{ ... }` in statement position.
type BlockStatement struct {
	Statements []Statement
	Src        lexer.Source
	SrcPos     lexer.Position
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) Source() lexer.Source { return b.Src }
func (b *BlockStatement) Pos() lexer.Position  { return b.SrcPos }

// VarDecl is a single declarator of a var statement or for header. Init is
// nil when no initializer is present. VarDecl appears both inside
// VarStatement and directly as a for/for-in init clause.
type VarDecl struct {
	Name   lexer.Token
	Init   Expression
	Src    lexer.Source
	SrcPos lexer.Position
}

func (v *VarDecl) expressionNode()      {}
func (v *VarDecl) Source() lexer.Source { return v.Src }
func (v *VarDecl) Pos() lexer.Position  { return v.SrcPos }

// VarStatement represents `var a = 1, b;`.
type VarStatement struct {
	Decls  []*VarDecl
	Src    lexer.Source
	SrcPos lexer.Position
}

func (v *VarStatement) statementNode()       {}
func (v *VarStatement) Source() lexer.Source { return v.Src }
func (v *VarStatement) Pos() lexer.Position  { return v.SrcPos }

// ExpressionStatement wraps an expression in statement position. The
// grammar forbids it to start with `{` or `function`.
type ExpressionStatement struct {
	Expr   Expression
	Src    lexer.Source
	SrcPos lexer.Position
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) Source() lexer.Source { return e.Src }
func (e *ExpressionStatement) Pos() lexer.Position  { return e.SrcPos }

// IfStatement represents `if (cond) then else alt`. Else is nil when absent.
type IfStatement struct {
	Cond   Expression
	Then   Statement
	Else   Statement
	Src    lexer.Source
	SrcPos lexer.Position
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) Source() lexer.Source { return i.Src }
func (i *IfStatement) Pos() lexer.Position  { return i.SrcPos }

// DoWhileStatement represents `do body while (cond);`.
type DoWhileStatement struct {
	Cond   Expression
	Body   Statement
	Src    lexer.Source
	SrcPos lexer.Position
}

func (d *DoWhileStatement) statementNode()       {}
func (d *DoWhileStatement) Source() lexer.Source { return d.Src }
func (d *DoWhileStatement) Pos() lexer.Position  { return d.SrcPos }

// WhileStatement represents `while (cond) body`.
type WhileStatement struct {
	Cond   Expression
	Body   Statement
	Src    lexer.Source
	SrcPos lexer.Position
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) Source() lexer.Source { return w.Src }
func (w *WhileStatement) Pos() lexer.Position  { return w.SrcPos }

// ForStatement represents the three-clause for loop. Init holds either
// VarDecl nodes (var form) or a single expression; Test and Update are nil
// when elided.
type ForStatement struct {
	Init   []Node
	Test   Expression
	Update Expression
	Body   Statement
	Src    lexer.Source
	SrcPos lexer.Position
}

func (f *ForStatement) statementNode()       {}
func (f *ForStatement) Source() lexer.Source { return f.Src }
func (f *ForStatement) Pos() lexer.Position  { return f.SrcPos }

// ForInStatement represents `for (lhs in expr) body`. Left is either a
// *VarDecl or an LHS expression.
type ForInStatement struct {
	Left   Node
	Right  Expression
	Body   Statement
	Src    lexer.Source
	SrcPos lexer.Position
}

func (f *ForInStatement) statementNode()       {}
func (f *ForInStatement) Source() lexer.Source { return f.Src }
func (f *ForInStatement) Pos() lexer.Position  { return f.SrcPos }

// ContinueStatement represents `continue label?;`. Label is NOT_FOUND when
// absent.
type ContinueStatement struct {
	Label  lexer.Token
	Src    lexer.Source
	SrcPos lexer.Position
}

func (c *ContinueStatement) statementNode()       {}
func (c *ContinueStatement) Source() lexer.Source { return c.Src }
func (c *ContinueStatement) Pos() lexer.Position  { return c.SrcPos }

// BreakStatement represents `break label?;`. Label is NOT_FOUND when absent.
type BreakStatement struct {
	Label  lexer.Token
	Src    lexer.Source
	SrcPos lexer.Position
}

func (b *BreakStatement) statementNode()       {}
func (b *BreakStatement) Source() lexer.Source { return b.Src }
func (b *BreakStatement) Pos() lexer.Position  { return b.SrcPos }

// ReturnStatement represents `return expr?;`. Only legal inside a function
// body; the evaluator rejects it at program entry otherwise.
type ReturnStatement struct {
	Expr   Expression
	Src    lexer.Source
	SrcPos lexer.Position
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) Source() lexer.Source { return r.Src }
func (r *ReturnStatement) Pos() lexer.Position  { return r.SrcPos }

// WithStatement represents `with (expr) body`.
type WithStatement struct {
	Object Expression
	Body   Statement
	Src    lexer.Source
	SrcPos lexer.Position
}

func (w *WithStatement) statementNode()       {}
func (w *WithStatement) Source() lexer.Source { return w.Src }
func (w *WithStatement) Pos() lexer.Position  { return w.SrcPos }

// CaseClause is one `case expr:` clause; Expr is nil for the default
// clause.
type CaseClause struct {
	Expr       Expression
	Statements []Statement
}

// SwitchStatement represents a switch. Clauses before and after the default
// clause are tracked separately so that fall-through order is preserved
// when the default fires.
type SwitchStatement struct {
	Disc    Expression
	Before  []CaseClause
	Default *CaseClause
	After   []CaseClause
	Src     lexer.Source
	SrcPos  lexer.Position
}

func (s *SwitchStatement) statementNode()       {}
func (s *SwitchStatement) Source() lexer.Source { return s.Src }
func (s *SwitchStatement) Pos() lexer.Position  { return s.SrcPos }

// ThrowStatement represents `throw expr;`.
type ThrowStatement struct {
	Expr   Expression
	Src    lexer.Source
	SrcPos lexer.Position
}

func (t *ThrowStatement) statementNode()       {}
func (t *ThrowStatement) Source() lexer.Source { return t.Src }
func (t *ThrowStatement) Pos() lexer.Position  { return t.SrcPos }

// TryStatement represents try/catch/finally. At least one of Catch and
// Finally is present; CatchParam is meaningful only with Catch.
type TryStatement struct {
	Block      *BlockStatement
	CatchParam lexer.Token
	Catch      *BlockStatement
	Finally    *BlockStatement
	Src        lexer.Source
	SrcPos     lexer.Position
}

func (t *TryStatement) statementNode()       {}
func (t *TryStatement) Source() lexer.Source { return t.Src }
func (t *TryStatement) Pos() lexer.Position  { return t.SrcPos }

// LabelledStatement represents `name: stmt`.
type LabelledStatement struct {
	Label  lexer.Token
	Stmt   Statement
	Src    lexer.Source
	SrcPos lexer.Position
}

func (l *LabelledStatement) statementNode()       {}
func (l *LabelledStatement) Source() lexer.Source { return l.Src }
func (l *LabelledStatement) Pos() lexer.Position  { return l.SrcPos }

// DebuggerStatement represents `debugger;`. Evaluation is a no-op.
type DebuggerStatement struct {
	Src    lexer.Source
	SrcPos lexer.Position
}

func (d *DebuggerStatement) statementNode()       {}
func (d *DebuggerStatement) Source() lexer.Source { return d.Src }
func (d *DebuggerStatement) Pos() lexer.Position  { return d.SrcPos }
