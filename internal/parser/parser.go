// Package parser implements the recursive descent ECMAScript parser.
//
// Key patterns:
//   - Lookahead: NextAndRewind for one token, lexer state save/restore for
//     speculative parses (the strict directive probe, labelled statements)
//   - Expressions: precedence climbing over the token priority tables, with
//     assignment and ?: handled structurally above the climbing entry point
//   - Failure: productions return an *ast.Illegal node whose source slice
//     spans the offending region; a positioned ParseError is recorded
//     alongside for diagnostics
package parser

import (
	"fmt"

	"github.com/escript/escript/internal/ast"
	"github.com/escript/escript/internal/lexer"
)

// Parser holds the scanner and accumulated errors for one source text.
type Parser struct {
	src    lexer.Source
	l      *lexer.Lexer
	errors []*ParseError
}

// ParseError is a positioned parse failure.
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("SyntaxError: %s (line %d, column %d)", e.Message, e.Pos.Line, e.Pos.Column)
}

// New creates a Parser over a code-unit buffer.
func New(src lexer.Source) *Parser {
	return &Parser{src: src, l: lexer.New(src)}
}

// NewFromString creates a Parser over a Go string, encoding it to UTF-16.
func NewFromString(s string) *Parser {
	return New(lexer.FromString(s))
}

// Errors returns the recorded parse errors.
func (p *Parser) Errors() []*ParseError { return p.errors }

// LexerErrors returns scan errors accumulated during parsing.
func (p *Parser) LexerErrors() []lexer.Error { return p.l.Errors() }

// ParseProgram parses the whole source as global code. The result is a
// *ast.Program, or *ast.Illegal when parsing failed.
func (p *Parser) ParseProgram() ast.Node {
	return p.parseProgramOrFunctionBody(lexer.EOS, false)
}

// mark remembers where a production started. The start is the lexer offset
// after the previous token, so a node's source slice also covers any
// whitespace or comments in front of it.
type mark struct {
	start int
	pos   lexer.Position
}

func (p *Parser) mark() mark {
	return mark{start: p.l.Pos(), pos: p.l.NextAndRewind().Pos}
}

// source returns the code units consumed since the mark.
func (p *Parser) source(m mark) lexer.Source {
	return p.src[m.start:p.l.Pos()]
}

func (p *Parser) illegal(m mark, msg string) *ast.Illegal {
	p.addError(msg, m.pos)
	return &ast.Illegal{Src: p.source(m), SrcPos: m.pos}
}

func (p *Parser) addError(msg string, pos lexer.Position) {
	p.errors = append(p.errors, &ParseError{Message: msg, Pos: pos})
}

// expect consumes the next token and checks its type.
func (p *Parser) expect(tt lexer.TokenType) bool {
	t := p.l.Next()
	if t.Type != tt {
		p.addError(fmt.Sprintf("expected %v, found %v", tt, t.Type), t.Pos)
		return false
	}
	return true
}

// parseProgramOrFunctionBody is the shared entry for Program and
// FunctionBody. Both honor the "use strict" directive prologue; function
// declarations are hoisted into Declarations, everything else into
// Statements.
func (p *Parser) parseProgramOrFunctionBody(end lexer.TokenType, functionBody bool) ast.Node {
	m := p.mark()

	strict := false
	save := p.l.SaveState()
	t := p.l.NextAndRewind()
	if t.Type == lexer.STRING && (t.TextIs(`"use strict"`) || t.TextIs(`'use strict'`)) {
		p.l.Next()
		if p.l.TrySkipSemicolon() {
			strict = true
		} else {
			p.l.RestoreState(save)
		}
	}

	prog := &ast.Program{
		Strict:       strict,
		FunctionBody: functionBody,
		SrcPos:       m.pos,
	}

	t = p.l.NextAndRewind()
	for t.Type != end {
		if t.Type == lexer.EOS {
			return p.illegal(m, "unexpected end of source")
		}
		if t.Type == lexer.FUNCTION {
			fn := p.parseFunction(true)
			if ast.IsIllegal(fn) {
				return fn
			}
			prog.Declarations = append(prog.Declarations, fn.(*ast.FunctionLiteral))
		} else {
			stmt := p.parseStatement()
			if ast.IsIllegal(stmt) {
				return stmt
			}
			prog.Statements = append(prog.Statements, stmt)
		}
		t = p.l.NextAndRewind()
	}
	prog.Src = p.source(m)
	return prog
}

// parseFunction parses a function declaration or expression. Declarations
// must be named; expression names are optional and recorded as NOT_FOUND
// when absent.
func (p *Parser) parseFunction(mustBeNamed bool) ast.Expression {
	m := p.mark()
	if !p.expect(lexer.FUNCTION) {
		return p.illegal(m, "function expected")
	}

	name := lexer.Token{Type: lexer.NOT_FOUND}
	t := p.l.NextAndRewind()
	if t.IsIdentifier() {
		name = p.l.Next()
	} else if mustBeNamed {
		return p.illegal(m, "function declaration requires a name")
	}

	if !p.expect(lexer.LPAREN) {
		return p.illegal(m, "expected ( before formal parameters")
	}
	var params []lexer.Token
	t = p.l.NextAndRewind()
	if t.IsIdentifier() {
		params = append(params, p.l.Next())
		for p.l.NextAndRewind().Type == lexer.COMMA {
			p.l.Next() // skip ,
			t = p.l.Next()
			if !t.IsIdentifier() {
				return p.illegal(m, "expected formal parameter name")
			}
			params = append(params, t)
		}
	}
	if !p.expect(lexer.RPAREN) {
		return p.illegal(m, "expected ) after formal parameters")
	}

	if !p.expect(lexer.LBRACE) {
		return p.illegal(m, "expected { before function body")
	}
	body := p.parseProgramOrFunctionBody(lexer.RBRACE, true)
	if ast.IsIllegal(body) {
		return body.(ast.Expression)
	}
	p.l.Next() // skip }

	return &ast.FunctionLiteral{
		Name:   name,
		Params: params,
		Body:   body.(*ast.Program),
		Src:    p.source(m),
		SrcPos: m.pos,
	}
}
