package parser

import (
	"github.com/escript/escript/internal/ast"
	"github.com/escript/escript/internal/lexer"
)

// parseStatement dispatches on the leading token. An expression statement
// is the fallback; it never starts with `{`, which the block case captures.
// A leading `function` is a declaration only where the program or
// function-body loop sees it; here it falls through and is parsed as a
// function expression statement.
func (p *Parser) parseStatement() ast.Statement {
	m := p.mark()
	t := p.l.NextAndRewind()

	switch t.Type {
	case lexer.LBRACE:
		return p.parseBlockStatement()
	case lexer.SEMICOLON:
		p.l.Next()
		return &ast.EmptyStatement{Src: t.Src, SrcPos: t.Pos}
	case lexer.VAR:
		return p.parseVariableStatement(false)
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.DO:
		return p.parseDoWhileStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.CONTINUE, lexer.BREAK:
		return p.parseContinueOrBreakStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.WITH:
		return p.parseWithStatement()
	case lexer.SWITCH:
		return p.parseSwitchStatement()
	case lexer.THROW:
		return p.parseThrowStatement()
	case lexer.TRY:
		return p.parseTryStatement()
	case lexer.DEBUGGER:
		p.l.Next()
		if !p.l.TrySkipSemicolon() {
			p.l.Next()
			return p.illegal(m, "expected ; after debugger")
		}
		return &ast.DebuggerStatement{Src: p.source(m), SrcPos: m.pos}
	case lexer.IDENT:
		// Two-token lookahead: IDENT followed by ':' is a label.
		save := p.l.SaveState()
		p.l.Next()
		colon := p.l.NextAndRewind()
		p.l.RestoreState(save)
		if colon.Type == lexer.COLON {
			return p.parseLabelledStatement()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseBlockStatement() ast.Statement {
	m := p.mark()
	if !p.expect(lexer.LBRACE) {
		return p.illegal(m, "expected {")
	}
	block := &ast.BlockStatement{SrcPos: m.pos}
	for {
		t := p.l.NextAndRewind()
		if t.Type == lexer.RBRACE {
			p.l.Next() // skip }
			break
		}
		if t.Type == lexer.EOS {
			return p.illegal(m, "unterminated block")
		}
		stmt := p.parseStatement()
		if ast.IsIllegal(stmt) {
			return stmt
		}
		block.Statements = append(block.Statements, stmt)
	}
	block.Src = p.source(m)
	return block
}

// parseVariableDeclaration parses one `name (= AssignmentExpression)?`
// declarator. The leading token must already be known to be an identifier.
func (p *Parser) parseVariableDeclaration(noIn bool) ast.Node {
	m := p.mark()
	name := p.l.Next()
	if !name.IsIdentifier() {
		return p.illegal(m, "expected variable name")
	}
	if p.l.NextAndRewind().Type != lexer.ASSIGN {
		return &ast.VarDecl{Name: name, Src: p.source(m), SrcPos: m.pos}
	}
	p.l.Next() // skip =
	init := p.parseAssignmentExpression(noIn)
	if ast.IsIllegal(init) {
		return init
	}
	return &ast.VarDecl{Name: name, Init: init, Src: p.source(m), SrcPos: m.pos}
}

func (p *Parser) parseVariableStatement(noIn bool) ast.Statement {
	m := p.mark()
	p.l.Next() // skip var

	stmt := &ast.VarStatement{SrcPos: m.pos}
	if !p.l.NextAndRewind().IsIdentifier() {
		p.l.Next()
		return p.illegal(m, "expected variable name after var")
	}
	for {
		decl := p.parseVariableDeclaration(noIn)
		if ast.IsIllegal(decl) {
			return decl.(ast.Statement)
		}
		stmt.Decls = append(stmt.Decls, decl.(*ast.VarDecl))
		if p.l.NextAndRewind().Type != lexer.COMMA {
			break
		}
		p.l.Next() // skip ,
	}
	if !p.l.TrySkipSemicolon() {
		p.l.Next()
		return p.illegal(m, "expected ; after var statement")
	}
	stmt.Src = p.source(m)
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	m := p.mark()
	expr := p.parseExpression(false)
	if ast.IsIllegal(expr) {
		return expr.(ast.Statement)
	}
	if !p.l.TrySkipSemicolon() {
		p.l.Next()
		return p.illegal(m, "expected ; after expression statement")
	}
	return &ast.ExpressionStatement{Expr: expr, Src: p.source(m), SrcPos: m.pos}
}

func (p *Parser) parseIfStatement() ast.Statement {
	m := p.mark()
	p.l.Next() // skip if
	if p.l.Next().Type != lexer.LPAREN {
		return p.illegal(m, "expected ( after if")
	}
	cond := p.parseExpression(false)
	if ast.IsIllegal(cond) {
		return cond.(ast.Statement)
	}
	if p.l.Next().Type != lexer.RPAREN {
		return p.illegal(m, "expected ) after if condition")
	}
	then := p.parseStatement()
	if ast.IsIllegal(then) {
		return then
	}
	stmt := &ast.IfStatement{Cond: cond, Then: then, SrcPos: m.pos}
	if p.l.NextAndRewind().Type == lexer.ELSE {
		p.l.Next() // skip else
		alt := p.parseStatement()
		if ast.IsIllegal(alt) {
			return alt
		}
		stmt.Else = alt
	}
	stmt.Src = p.source(m)
	return stmt
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	m := p.mark()
	p.l.Next() // skip do
	body := p.parseStatement()
	if ast.IsIllegal(body) {
		return body
	}
	if p.l.Next().Type != lexer.WHILE {
		return p.illegal(m, "expected while after do body")
	}
	if p.l.Next().Type != lexer.LPAREN {
		return p.illegal(m, "expected ( after while")
	}
	cond := p.parseExpression(false)
	if ast.IsIllegal(cond) {
		return cond.(ast.Statement)
	}
	if p.l.Next().Type != lexer.RPAREN {
		return p.illegal(m, "expected ) after do-while condition")
	}
	if !p.l.TrySkipSemicolon() {
		p.l.Next()
		return p.illegal(m, "expected ; after do-while")
	}
	return &ast.DoWhileStatement{Cond: cond, Body: body, Src: p.source(m), SrcPos: m.pos}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	m := p.mark()
	p.l.Next() // skip while
	if p.l.Next().Type != lexer.LPAREN {
		return p.illegal(m, "expected ( after while")
	}
	cond := p.parseExpression(false)
	if ast.IsIllegal(cond) {
		return cond.(ast.Statement)
	}
	if p.l.Next().Type != lexer.RPAREN {
		return p.illegal(m, "expected ) after while condition")
	}
	body := p.parseStatement()
	if ast.IsIllegal(body) {
		return body
	}
	return &ast.WhileStatement{Cond: cond, Body: body, Src: p.source(m), SrcPos: m.pos}
}

func (p *Parser) parseWithStatement() ast.Statement {
	m := p.mark()
	p.l.Next() // skip with
	if p.l.Next().Type != lexer.LPAREN {
		return p.illegal(m, "expected ( after with")
	}
	object := p.parseExpression(false)
	if ast.IsIllegal(object) {
		return object.(ast.Statement)
	}
	if p.l.Next().Type != lexer.RPAREN {
		return p.illegal(m, "expected ) after with object")
	}
	body := p.parseStatement()
	if ast.IsIllegal(body) {
		return body
	}
	return &ast.WithStatement{Object: object, Body: body, Src: p.source(m), SrcPos: m.pos}
}

// parseForStatement parses both for forms. After the init clause (a var
// declaration list or an expression parsed with noIn), encountering `in`
// selects for-in; otherwise the three-clause loop continues at the first
// `;`.
func (p *Parser) parseForStatement() ast.Statement {
	m := p.mark()
	p.l.Next() // skip for
	if p.l.Next().Type != lexer.LPAREN {
		return p.illegal(m, "expected ( after for")
	}

	t := p.l.NextAndRewind()
	switch {
	case t.Type == lexer.SEMICOLON:
		return p.parseForBody(nil, m)
	case t.Type == lexer.VAR:
		p.l.Next() // skip var
		if !p.l.NextAndRewind().IsIdentifier() {
			return p.illegal(m, "expected variable name in for header")
		}
		decl := p.parseVariableDeclaration(true)
		if ast.IsIllegal(decl) {
			return decl.(ast.Statement)
		}
		if p.l.NextAndRewind().Type == lexer.IN {
			return p.parseForInBody(decl, m)
		}
		init := []ast.Node{decl}
		for p.l.NextAndRewind().Type != lexer.SEMICOLON {
			if p.l.Next().Type != lexer.COMMA || !p.l.NextAndRewind().IsIdentifier() {
				return p.illegal(m, "expected , in for variable list")
			}
			decl = p.parseVariableDeclaration(true)
			if ast.IsIllegal(decl) {
				return decl.(ast.Statement)
			}
			init = append(init, decl)
		}
		return p.parseForBody(init, m)
	default:
		expr := p.parseExpression(true)
		if ast.IsIllegal(expr) {
			return expr.(ast.Statement)
		}
		next := p.l.NextAndRewind()
		if next.Type == lexer.SEMICOLON {
			return p.parseForBody([]ast.Node{expr}, m)
		}
		if next.Type == lexer.IN {
			if _, ok := expr.(*ast.LHSExpression); ok {
				return p.parseForInBody(expr, m)
			}
		}
		return p.illegal(m, "invalid for header")
	}
}

// parseForBody parses `; test? ; update? ) body` of a three-clause for.
func (p *Parser) parseForBody(init []ast.Node, m mark) ast.Statement {
	p.l.Next() // skip ;

	var test, update ast.Expression
	if p.l.NextAndRewind().Type != lexer.SEMICOLON {
		test = p.parseExpression(false)
		if ast.IsIllegal(test) {
			return test.(ast.Statement)
		}
	}
	if p.l.Next().Type != lexer.SEMICOLON {
		return p.illegal(m, "expected ; after for test")
	}
	if p.l.NextAndRewind().Type != lexer.RPAREN {
		update = p.parseExpression(false)
		if ast.IsIllegal(update) {
			return update.(ast.Statement)
		}
	}
	if p.l.Next().Type != lexer.RPAREN {
		return p.illegal(m, "expected ) after for header")
	}
	body := p.parseStatement()
	if ast.IsIllegal(body) {
		return body
	}
	return &ast.ForStatement{Init: init, Test: test, Update: update, Body: body, Src: p.source(m), SrcPos: m.pos}
}

// parseForInBody parses `in expr ) body`.
func (p *Parser) parseForInBody(left ast.Node, m mark) ast.Statement {
	p.l.Next() // skip in
	right := p.parseExpression(false)
	if ast.IsIllegal(right) {
		return right.(ast.Statement)
	}
	if p.l.Next().Type != lexer.RPAREN {
		return p.illegal(m, "expected ) after for-in header")
	}
	body := p.parseStatement()
	if ast.IsIllegal(body) {
		return body
	}
	return &ast.ForInStatement{Left: left, Right: right, Body: body, Src: p.source(m), SrcPos: m.pos}
}

// parseContinueOrBreakStatement parses `continue label?;` or
// `break label?;`. ASI applies immediately after the keyword, so the label
// must be on the same line.
func (p *Parser) parseContinueOrBreakStatement() ast.Statement {
	m := p.mark()
	kw := p.l.Next() // skip continue/break

	label := lexer.Token{Type: lexer.NOT_FOUND}
	if !p.l.TrySkipSemicolon() {
		if t := p.l.NextAndRewind(); t.IsIdentifier() {
			label = p.l.Next()
		}
		if !p.l.TrySkipSemicolon() {
			p.l.Next()
			return p.illegal(m, "expected ; after "+kw.Text())
		}
	}
	if kw.Type == lexer.CONTINUE {
		return &ast.ContinueStatement{Label: label, Src: p.source(m), SrcPos: m.pos}
	}
	return &ast.BreakStatement{Label: label, Src: p.source(m), SrcPos: m.pos}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	m := p.mark()
	p.l.Next() // skip return

	var expr ast.Expression
	if !p.l.TrySkipSemicolon() {
		expr = p.parseExpression(false)
		if ast.IsIllegal(expr) {
			return expr.(ast.Statement)
		}
		if !p.l.TrySkipSemicolon() {
			p.l.Next()
			return p.illegal(m, "expected ; after return")
		}
	}
	return &ast.ReturnStatement{Expr: expr, Src: p.source(m), SrcPos: m.pos}
}

func (p *Parser) parseThrowStatement() ast.Statement {
	m := p.mark()
	p.l.Next() // skip throw

	var expr ast.Expression
	if !p.l.TrySkipSemicolon() {
		expr = p.parseExpression(false)
		if ast.IsIllegal(expr) {
			return expr.(ast.Statement)
		}
		if !p.l.TrySkipSemicolon() {
			p.l.Next()
			return p.illegal(m, "expected ; after throw")
		}
	}
	return &ast.ThrowStatement{Expr: expr, Src: p.source(m), SrcPos: m.pos}
}

// parseSwitchStatement parses a switch. Clauses are recorded relative to
// the single optional default clause so evaluation can preserve
// fall-through order.
func (p *Parser) parseSwitchStatement() ast.Statement {
	m := p.mark()
	p.l.Next() // skip switch
	if p.l.Next().Type != lexer.LPAREN {
		return p.illegal(m, "expected ( after switch")
	}
	disc := p.parseExpression(false)
	if ast.IsIllegal(disc) {
		return disc.(ast.Statement)
	}
	if p.l.Next().Type != lexer.RPAREN {
		return p.illegal(m, "expected ) after switch discriminant")
	}
	if p.l.Next().Type != lexer.LBRACE {
		return p.illegal(m, "expected { in switch")
	}

	stmt := &ast.SwitchStatement{Disc: disc, SrcPos: m.pos}
	for {
		t := p.l.NextAndRewind()
		if t.Type == lexer.RBRACE {
			p.l.Next() // skip }
			break
		}

		var clause ast.CaseClause
		isDefault := false
		switch t.Type {
		case lexer.CASE:
			p.l.Next() // skip case
			expr := p.parseExpression(false)
			if ast.IsIllegal(expr) {
				return expr.(ast.Statement)
			}
			clause.Expr = expr
		case lexer.DEFAULT:
			p.l.Next() // skip default
			if stmt.Default != nil {
				return p.illegal(m, "duplicate default clause")
			}
			isDefault = true
		default:
			p.l.Next()
			return p.illegal(m, "expected case or default in switch")
		}
		if p.l.Next().Type != lexer.COLON {
			return p.illegal(m, "expected : after case clause")
		}

		for {
			t = p.l.NextAndRewind()
			if t.Type == lexer.CASE || t.Type == lexer.DEFAULT || t.Type == lexer.RBRACE {
				break
			}
			if t.Type == lexer.EOS {
				return p.illegal(m, "unterminated switch")
			}
			s := p.parseStatement()
			if ast.IsIllegal(s) {
				return s
			}
			clause.Statements = append(clause.Statements, s)
		}

		switch {
		case isDefault:
			stmt.Default = &clause
		case stmt.Default != nil:
			stmt.After = append(stmt.After, clause)
		default:
			stmt.Before = append(stmt.Before, clause)
		}
	}
	stmt.Src = p.source(m)
	return stmt
}

// parseTryStatement parses try with catch and/or finally; at least one of
// the two is required.
func (p *Parser) parseTryStatement() ast.Statement {
	m := p.mark()
	p.l.Next() // skip try

	block := p.parseBlockStatement()
	if ast.IsIllegal(block) {
		return block
	}
	stmt := &ast.TryStatement{
		Block:      block.(*ast.BlockStatement),
		CatchParam: lexer.Token{Type: lexer.NOT_FOUND},
		SrcPos:     m.pos,
	}

	if p.l.NextAndRewind().Type == lexer.CATCH {
		p.l.Next() // skip catch
		if p.l.Next().Type != lexer.LPAREN {
			return p.illegal(m, "expected ( after catch")
		}
		param := p.l.Next()
		if !param.IsIdentifier() {
			return p.illegal(m, "expected catch parameter name")
		}
		if p.l.Next().Type != lexer.RPAREN {
			return p.illegal(m, "expected ) after catch parameter")
		}
		catch := p.parseBlockStatement()
		if ast.IsIllegal(catch) {
			return catch
		}
		stmt.CatchParam = param
		stmt.Catch = catch.(*ast.BlockStatement)
	}

	if p.l.NextAndRewind().Type == lexer.FINALLY {
		p.l.Next() // skip finally
		finally := p.parseBlockStatement()
		if ast.IsIllegal(finally) {
			return finally
		}
		stmt.Finally = finally.(*ast.BlockStatement)
	}

	if stmt.Catch == nil && stmt.Finally == nil {
		return p.illegal(m, "try requires catch or finally")
	}
	stmt.Src = p.source(m)
	return stmt
}

func (p *Parser) parseLabelledStatement() ast.Statement {
	m := p.mark()
	label := p.l.Next()
	p.l.Next() // skip :
	stmt := p.parseStatement()
	if ast.IsIllegal(stmt) {
		return stmt
	}
	return &ast.LabelledStatement{Label: label, Stmt: stmt, Src: p.source(m), SrcPos: m.pos}
}
