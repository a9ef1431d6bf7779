package parser

import (
	"github.com/escript/escript/internal/ast"
	"github.com/escript/escript/internal/lexer"
)

// parseExpression parses a comma-separated expression. Single elements are
// returned bare; only a real comma builds a SequenceExpression.
func (p *Parser) parseExpression(noIn bool) ast.Expression {
	m := p.mark()

	element := p.parseAssignmentExpression(noIn)
	if ast.IsIllegal(element) {
		return element
	}
	if p.l.NextAndRewind().Type != lexer.COMMA {
		return element
	}

	seq := &ast.SequenceExpression{Elements: []ast.Expression{element}, SrcPos: m.pos}
	for p.l.NextAndRewind().Type == lexer.COMMA {
		p.l.Next() // skip ,
		element = p.parseAssignmentExpression(noIn)
		if ast.IsIllegal(element) {
			return element
		}
		seq.Elements = append(seq.Elements, element)
	}
	seq.Src = p.source(m)
	return seq
}

// parseAssignmentExpression parses ConditionalExpression and, when the left
// side is a LeftHandSideExpression followed by an assignment operator, the
// right-associative assignment.
func (p *Parser) parseAssignmentExpression(noIn bool) ast.Expression {
	m := p.mark()

	lhs := p.parseConditionalExpression(noIn)
	if ast.IsIllegal(lhs) {
		return lhs
	}
	if _, ok := lhs.(*ast.LHSExpression); !ok {
		return lhs
	}
	op := p.l.NextAndRewind()
	if !op.IsAssignmentOperator() {
		return lhs
	}
	p.l.Next() // skip the operator

	rhs := p.parseAssignmentExpression(noIn)
	if ast.IsIllegal(rhs) {
		return rhs
	}
	return &ast.BinaryExpression{Left: lhs, Right: rhs, Op: op, Src: p.source(m), SrcPos: m.pos}
}

// parseConditionalExpression parses `cond ? then : else`.
func (p *Parser) parseConditionalExpression(noIn bool) ast.Expression {
	m := p.mark()

	cond := p.parseBinaryAndUnaryExpression(noIn, 0)
	if ast.IsIllegal(cond) {
		return cond
	}
	if p.l.NextAndRewind().Type != lexer.QUESTION {
		return cond
	}
	p.l.Next() // skip ?
	then := p.parseAssignmentExpression(noIn)
	if ast.IsIllegal(then) {
		return then
	}
	if p.l.NextAndRewind().Type != lexer.COLON {
		return p.illegal(m, "expected : in conditional expression")
	}
	p.l.Next() // skip :
	alt := p.parseAssignmentExpression(noIn)
	if ast.IsIllegal(alt) {
		return alt
	}
	return &ast.ConditionalExpression{Cond: cond, Then: then, Else: alt, Src: p.source(m), SrcPos: m.pos}
}

// parseBinaryAndUnaryExpression is the precedence-climbing core. Prefix
// operators recurse at their own priority; postfix operators require no
// intervening line terminator and reject binary/unary operands; binary
// operators loop while their priority exceeds the floor. The noIn flag
// suppresses the `in` operator inside for headers.
func (p *Parser) parseBinaryAndUnaryExpression(noIn bool, priority int) ast.Expression {
	m := p.mark()

	var lhs ast.Expression
	if prefixOp := p.l.NextAndRewind(); prefixOp.Type.UnaryPrefixPriority() > priority {
		p.l.Next() // skip the operator
		operand := p.parseBinaryAndUnaryExpression(noIn, prefixOp.Type.UnaryPrefixPriority())
		if ast.IsIllegal(operand) {
			return operand
		}
		lhs = &ast.UnaryExpression{Operand: operand, Op: prefixOp, Prefix: true, Src: p.source(m), SrcPos: m.pos}
	} else {
		lhs = p.parseLeftHandSideExpression()
		if ast.IsIllegal(lhs) {
			return lhs
		}
		// Postfix operators bind tighter than prefix ones, so the two arms
		// can never fire on the same parse.
		postfixOp := p.l.NextAndRewind()
		if !postfixOp.AfterLineTerminator && postfixOp.Type.UnaryPostfixPriority() > priority {
			switch lhs.(type) {
			case *ast.BinaryExpression, *ast.UnaryExpression:
				return p.illegal(m, "invalid postfix operand")
			}
			p.l.Next() // skip the operator
			lhs = &ast.UnaryExpression{Operand: lhs, Op: postfixOp, Prefix: false, Src: p.source(m), SrcPos: m.pos}
		}
	}

	for {
		binaryOp := p.l.NextAndRewind()
		opPriority := binaryOp.Type.BinaryPriority(noIn)
		if opPriority <= priority {
			break
		}
		p.l.Next() // skip the operator
		rhs := p.parseBinaryAndUnaryExpression(noIn, opPriority)
		if ast.IsIllegal(rhs) {
			return rhs
		}
		lhs = &ast.BinaryExpression{Left: lhs, Right: rhs, Op: binaryOp, Src: p.source(m), SrcPos: m.pos}
	}
	return lhs
}

// parseLeftHandSideExpression parses `new`* (function | primary) followed
// by any interleaving of calls, index accesses and property accesses. The
// result is always wrapped in an LHSExpression; the evaluator replays the
// postfix steps in order, reinterpreting the first NewCount calls as
// construct operations.
func (p *Parser) parseLeftHandSideExpression() ast.Expression {
	m := p.mark()

	newCount := 0
	for p.l.NextAndRewind().Type == lexer.NEW {
		p.l.Next() // skip new
		newCount++
	}

	var base ast.Expression
	if p.l.NextAndRewind().Type == lexer.FUNCTION {
		base = p.parseFunction(false)
	} else {
		base = p.parsePrimaryExpression()
	}
	if ast.IsIllegal(base) {
		return base
	}

	lhs := &ast.LHSExpression{Base: base, NewCount: newCount, SrcPos: m.pos}
loop:
	for {
		switch p.l.NextAndRewind().Type {
		case lexer.LPAREN:
			args := p.parseArguments()
			if ast.IsIllegal(args) {
				return args
			}
			lhs.Postfix = append(lhs.Postfix, ast.Postfix{Kind: ast.PostfixCall, Args: args.(*ast.Arguments)})
		case lexer.LBRACK:
			p.l.Next() // skip [
			index := p.parseExpression(false)
			if ast.IsIllegal(index) {
				return index
			}
			if p.l.Next().Type != lexer.RBRACK {
				return p.illegal(m, "expected ] after index expression")
			}
			lhs.Postfix = append(lhs.Postfix, ast.Postfix{Kind: ast.PostfixIndex, Index: index})
		case lexer.DOT:
			p.l.Next() // skip .
			prop := p.l.Next()
			if !prop.IsIdentifierName() {
				return p.illegal(m, "expected property name after .")
			}
			lhs.Postfix = append(lhs.Postfix, ast.Postfix{Kind: ast.PostfixProp, Prop: prop})
		default:
			break loop
		}
	}
	lhs.Src = p.source(m)
	return lhs
}

// parseArguments parses `(a, b, c)`.
func (p *Parser) parseArguments() ast.Expression {
	m := p.mark()
	if !p.expect(lexer.LPAREN) {
		return p.illegal(m, "expected ( before arguments")
	}
	args := &ast.Arguments{SrcPos: m.pos}
	if p.l.NextAndRewind().Type != lexer.RPAREN {
		for {
			arg := p.parseAssignmentExpression(false)
			if ast.IsIllegal(arg) {
				return arg
			}
			args.List = append(args.List, arg)
			if p.l.NextAndRewind().Type != lexer.COMMA {
				break
			}
			p.l.Next() // skip ,
		}
	}
	if p.l.Next().Type != lexer.RPAREN {
		return p.illegal(m, "expected ) after arguments")
	}
	args.Src = p.source(m)
	return args
}

// parsePrimaryExpression parses the terminal expression forms. A '/' here
// is a position where a regular expression literal is grammatically
// permitted, so the lexer is asked to rescan it as one.
func (p *Parser) parsePrimaryExpression() ast.Expression {
	m := p.mark()
	t := p.l.NextAndRewind()

	switch t.Type {
	case lexer.THIS:
		p.l.Next()
		return &ast.ThisExpression{Src: t.Src, SrcPos: t.Pos}
	case lexer.IDENT:
		p.l.Next()
		return &ast.Identifier{Src: t.Src, SrcPos: t.Pos}
	case lexer.NULL:
		p.l.Next()
		return &ast.NullLiteral{Src: t.Src, SrcPos: t.Pos}
	case lexer.BOOL:
		p.l.Next()
		return &ast.BooleanLiteral{Src: t.Src, SrcPos: t.Pos}
	case lexer.NUMBER:
		p.l.Next()
		return &ast.NumberLiteral{Src: t.Src, SrcPos: t.Pos}
	case lexer.STRING:
		p.l.Next()
		return &ast.StringLiteral{Src: t.Src, SrcPos: t.Pos}
	case lexer.LBRACK:
		return p.parseArrayLiteral()
	case lexer.LBRACE:
		return p.parseObjectLiteral()
	case lexer.LPAREN:
		p.l.Next() // skip (
		inner := p.parseExpression(false)
		if ast.IsIllegal(inner) {
			return inner
		}
		if p.l.Next().Type != lexer.RPAREN {
			return p.illegal(m, "expected ) after parenthesized expression")
		}
		return &ast.ParenExpression{Expr: inner, Src: p.source(m), SrcPos: m.pos}
	case lexer.DIV, lexer.DIV_ASSIGN:
		regex := p.l.ScanRegexLiteral()
		if regex.Type != lexer.REGEX {
			return p.illegal(m, "malformed regular expression literal")
		}
		return &ast.RegexLiteral{Src: regex.Src, SrcPos: regex.Pos}
	}
	p.l.Next()
	return p.illegal(m, "unexpected token "+t.Type.String())
}

// parseArrayLiteral parses `[e0, , e2]`, preserving elided positions as
// bare length increments.
func (p *Parser) parseArrayLiteral() ast.Expression {
	m := p.mark()
	if !p.expect(lexer.LBRACK) {
		return p.illegal(m, "expected [")
	}
	arr := &ast.ArrayLiteral{SrcPos: m.pos}
	for {
		t := p.l.NextAndRewind()
		if t.Type == lexer.RBRACK {
			p.l.Next() // skip ]
			break
		}
		if t.Type == lexer.COMMA {
			p.l.Next() // elision
			arr.Length++
			continue
		}
		element := p.parseAssignmentExpression(false)
		if ast.IsIllegal(element) {
			return element
		}
		arr.Elements = append(arr.Elements, ast.ArrayElement{Index: arr.Length, Value: element})
		arr.Length++

		t = p.l.NextAndRewind()
		if t.Type == lexer.COMMA {
			p.l.Next() // element separator
		} else if t.Type != lexer.RBRACK {
			return p.illegal(m, "expected , or ] in array literal")
		}
	}
	arr.Src = p.source(m)
	return arr
}

// parseObjectLiteral parses `{key: value, get name() {...}}`. The get/set
// pseudo-keywords introduce accessor properties only when followed by
// another PropertyName.
func (p *Parser) parseObjectLiteral() ast.Expression {
	m := p.mark()
	if !p.expect(lexer.LBRACE) {
		return p.illegal(m, "expected {")
	}
	obj := &ast.ObjectLiteral{SrcPos: m.pos}
	for {
		t := p.l.NextAndRewind()
		if t.Type == lexer.RBRACE {
			p.l.Next() // skip }
			break
		}

		var prop ast.Property
		var illegalNode ast.Expression
		if t.Type == lexer.IDENT && (t.TextIs("get") || t.TextIs("set")) && p.peekSecondIsPropertyName() {
			prop, illegalNode = p.parseAccessorProperty(m)
		} else {
			prop, illegalNode = p.parseNormalProperty(m)
		}
		if illegalNode != nil {
			return illegalNode
		}
		obj.Properties = append(obj.Properties, prop)

		t = p.l.NextAndRewind()
		if t.Type == lexer.COMMA {
			p.l.Next() // skip ,
		} else if t.Type != lexer.RBRACE {
			return p.illegal(m, "expected , or } in object literal")
		}
	}
	obj.Src = p.source(m)
	return obj
}

// peekSecondIsPropertyName looks two tokens ahead without consuming.
func (p *Parser) peekSecondIsPropertyName() bool {
	save := p.l.SaveState()
	p.l.Next()
	second := p.l.NextAndRewind()
	p.l.RestoreState(save)
	return second.Type.IsPropertyName()
}

func (p *Parser) parseNormalProperty(m mark) (ast.Property, ast.Expression) {
	key := p.l.Next()
	if !key.Type.IsPropertyName() {
		return ast.Property{}, p.illegal(m, "expected property name in object literal")
	}
	if p.l.Next().Type != lexer.COLON {
		return ast.Property{}, p.illegal(m, "expected : after property name")
	}
	value := p.parseAssignmentExpression(false)
	if ast.IsIllegal(value) {
		return ast.Property{}, value
	}
	return ast.Property{Key: key, Value: value, Kind: ast.PropertyNormal}, nil
}

// parseAccessorProperty parses `get name() { body }` or
// `set name(param) { body }`, building an anonymous function literal for
// the accessor.
func (p *Parser) parseAccessorProperty(m mark) (ast.Property, ast.Expression) {
	fm := p.mark()
	kw := p.l.Next() // get or set
	kind := ast.PropertyGet
	if kw.TextIs("set") {
		kind = ast.PropertySet
	}

	key := p.l.Next()
	if !key.Type.IsPropertyName() {
		return ast.Property{}, p.illegal(m, "expected property name after "+kw.Text())
	}
	if p.l.Next().Type != lexer.LPAREN {
		return ast.Property{}, p.illegal(m, "expected ( in accessor property")
	}
	var params []lexer.Token
	if t := p.l.NextAndRewind(); t.IsIdentifier() {
		params = append(params, p.l.Next())
	}
	if p.l.Next().Type != lexer.RPAREN {
		return ast.Property{}, p.illegal(m, "expected ) in accessor property")
	}
	if kind == ast.PropertyGet && len(params) != 0 {
		return ast.Property{}, p.illegal(m, "getter must not declare parameters")
	}
	if kind == ast.PropertySet && len(params) != 1 {
		return ast.Property{}, p.illegal(m, "setter must declare exactly one parameter")
	}
	if p.l.Next().Type != lexer.LBRACE {
		return ast.Property{}, p.illegal(m, "expected { before accessor body")
	}
	body := p.parseProgramOrFunctionBody(lexer.RBRACE, true)
	if ast.IsIllegal(body) {
		return ast.Property{}, body.(ast.Expression)
	}
	p.l.Next() // skip }

	fn := &ast.FunctionLiteral{
		Name:   lexer.Token{Type: lexer.NOT_FOUND},
		Params: params,
		Body:   body.(*ast.Program),
		Src:    p.source(fm),
		SrcPos: fm.pos,
	}
	return ast.Property{Key: key, Value: fn, Kind: kind}, nil
}
