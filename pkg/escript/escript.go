// Package escript is the public embedding API for the interpreter. It ties
// the parser and evaluator together behind a small engine type, keeping the
// internal Reference and Completion machinery out of caller-visible
// signatures.
package escript

import (
	"strings"

	"github.com/escript/escript/internal/ast"
	"github.com/escript/escript/internal/errors"
	"github.com/escript/escript/internal/interp"
	"github.com/escript/escript/internal/lexer"
	"github.com/escript/escript/internal/parser"
)

// Program is a successfully parsed program, ready for evaluation.
type Program struct {
	node   ast.Node
	source string
}

// AST returns the root node for tooling (the parse dump command).
func (p *Program) AST() ast.Node { return p.node }

// CompileError aggregates the positioned parse errors of a failed compile.
type CompileError struct {
	Source string
	File   string
	Errors []*parser.ParseError
}

func (e *CompileError) Error() string {
	if len(e.Errors) == 0 {
		return "syntax error"
	}
	var sb strings.Builder
	for idx, pe := range e.Errors {
		if idx > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(errors.NewSourceError(pe.Pos, pe.Message, e.Source, e.File).Format(false))
	}
	return sb.String()
}

// Compile parses src as global code.
func Compile(src string) (*Program, error) {
	return CompileFile(src, "")
}

// CompileFile parses src, attributing errors to the given file name.
func CompileFile(src, file string) (*Program, error) {
	p := parser.New(lexer.FromString(src))
	node := p.ParseProgram()
	if ast.IsIllegal(node) {
		errs := p.Errors()
		if len(errs) == 0 {
			errs = []*parser.ParseError{{Message: "syntax error", Pos: node.Pos()}}
		}
		return nil, &CompileError{Source: src, File: file, Errors: errs}
	}
	return &Program{node: node, source: src}, nil
}

// ThrownError is returned by Run when the program completed with an
// uncaught throw. Rendered holds the thrown value converted to a string.
type ThrownError struct {
	Rendered string
}

func (e *ThrownError) Error() string {
	return "uncaught " + e.Rendered
}

// Result is the final value of a program after GetValue.
type Result struct {
	value Value
	i     *interp.Interpreter
}

// Value is the runtime value surface re-exported for embedders.
type Value = interp.Value

// Engine evaluates programs against one persistent global object, so
// successive Run calls observe each other's globals.
type Engine struct {
	i *interp.Interpreter
}

// New creates an engine with a fresh global environment.
func New() *Engine {
	return &Engine{i: interp.New()}
}

// Run compiles and evaluates src, returning the program's final value.
func (e *Engine) Run(src string) (*Result, error) {
	prog, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return e.RunProgram(prog)
}

// RunProgram evaluates a compiled program. An uncaught throw surfaces as
// *ThrownError; the result of a normal completion is dereferenced with
// GetValue before it crosses the API boundary.
func (e *Engine) RunProgram(p *Program) (*Result, error) {
	e.i.EnterGlobalCode(p.node)
	defer e.i.LeaveGlobalCode()
	if err := e.i.Err(); err != nil {
		e.i.ClearError()
		return nil, err
	}
	c := e.i.EvalProgram(p.node)
	if c.Type == interp.ThrowCompletion {
		return nil, &ThrownError{Rendered: e.renderThrown(c.Value)}
	}
	v := e.i.GetValue(c.Value)
	if err := e.i.Err(); err != nil {
		// GetValue of the final reference can itself fail (an undeclared
		// trailing identifier); report it like any other uncaught throw.
		e.i.ClearError()
		return nil, &ThrownError{Rendered: err.Error()}
	}
	if v == nil {
		v = interp.Undefined
	}
	return &Result{value: v, i: e.i}, nil
}

func (e *Engine) renderThrown(v Value) string {
	if v == nil {
		return "undefined"
	}
	if o, ok := v.(*interp.Object); ok && o.Class == "Error" {
		s := e.i.ToString(o)
		if e.i.Err() == nil {
			return s
		}
		e.i.ClearError()
	}
	switch t := v.(type) {
	case *interp.StringValue:
		return t.Value
	case *interp.NumberValue:
		return interp.NumberToString(t.Value)
	}
	return v.String()
}

// Interpreter exposes the underlying interpreter for advanced embedders
// and the test suite.
func (e *Engine) Interpreter() *interp.Interpreter { return e.i }

// Kind returns the type name of the result value.
func (r *Result) Kind() string { return r.value.Type() }

// IsUndefined reports whether the result is undefined.
func (r *Result) IsUndefined() bool { return interp.IsUndefined(r.value) }

// Float64 returns the numeric value when the result is a number.
func (r *Result) Float64() (float64, bool) {
	n, ok := r.value.(*interp.NumberValue)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

// Bool returns the boolean value when the result is a boolean.
func (r *Result) Bool() (bool, bool) {
	b, ok := r.value.(*interp.BooleanValue)
	if !ok {
		return false, false
	}
	return b.Value, true
}

// String renders the result through the language's ToString conversion.
func (r *Result) String() string {
	s := r.i.ToString(r.value)
	if r.i.Err() != nil {
		r.i.ClearError()
		return r.value.String()
	}
	return s
}

// Value returns the raw runtime value.
func (r *Result) Value() Value { return r.value }
