package parser

import (
	"strings"
	"testing"

	"github.com/escript/escript/internal/ast"
	"github.com/escript/escript/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	node := NewFromString(src).ParseProgram()
	prog, ok := node.(*ast.Program)
	if !ok {
		t.Fatalf("parse of %q failed: %v", src, node.Source().String())
	}
	return prog
}

func parseFails(t *testing.T, src string) {
	t.Helper()
	p := NewFromString(src)
	node := p.ParseProgram()
	if !ast.IsIllegal(node) {
		t.Fatalf("parse of %q unexpectedly succeeded", src)
	}
	if len(p.Errors()) == 0 {
		t.Errorf("parse of %q produced no positioned errors", src)
	}
}

// firstExpr unwraps the first statement's expression.
func firstExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	prog := parseProgram(t, src)
	if len(prog.Statements) == 0 {
		t.Fatalf("%q: no statements", src)
	}
	es, ok := prog.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("%q: statement is %T, not expression", src, prog.Statements[0])
	}
	return es.Expr
}

func TestPrecedenceClimbing(t *testing.T) {
	// For operators a, b with prec(a) < prec(b), `x a y b z` roots at a
	// with `y b z` as its right child.
	pairs := []struct {
		low, high string
	}{
		{"||", "&&"},
		{"&&", "|"},
		{"|", "^"},
		{"^", "&"},
		{"&", "=="},
		{"==", "<"},
		{"<", "<<"},
		{"<<", "+"},
		{"+", "*"},
	}
	for _, pair := range pairs {
		src := "x " + pair.low + " y " + pair.high + " z;"
		root, ok := firstExpr(t, src).(*ast.BinaryExpression)
		if !ok {
			t.Fatalf("%q: root is not binary", src)
		}
		if got := root.Op.Text(); got != pair.low {
			t.Errorf("%q: root operator %q, want %q", src, got, pair.low)
		}
		right, ok := root.Right.(*ast.BinaryExpression)
		if !ok {
			t.Fatalf("%q: right child is not binary", src)
		}
		if got := right.Op.Text(); got != pair.high {
			t.Errorf("%q: right operator %q, want %q", src, got, pair.high)
		}
	}
}

func TestLeftAssociativity(t *testing.T) {
	root, ok := firstExpr(t, "a - b - c;").(*ast.BinaryExpression)
	if !ok {
		t.Fatal("root is not binary")
	}
	if _, ok := root.Left.(*ast.BinaryExpression); !ok {
		t.Error("a - b - c should parse as (a - b) - c")
	}
}

func TestRoundTripSource(t *testing.T) {
	sources := []string{
		"a = 1;",
		"x + y * z;",
		"function f(a, b) { return a + b; }",
		"for (var i = 0; i < 10; i++) { s += i; }",
		"try { f(); } catch (e) { g(e); } finally { h(); }",
		"switch (x) { case 1: a(); default: b(); case 2: c(); }",
	}
	for _, src := range sources {
		prog := parseProgram(t, src)
		got := strings.TrimSpace(prog.Source().String())
		if got != strings.TrimSpace(src) {
			t.Errorf("round trip of %q produced %q", src, got)
		}
		// Reparsing the recovered source succeeds with the same shape.
		again := parseProgram(t, got)
		if len(again.Statements) != len(prog.Statements) ||
			len(again.Declarations) != len(prog.Declarations) {
			t.Errorf("reparse of %q changed shape", src)
		}
	}
}

func TestNodeSourceSlices(t *testing.T) {
	src := "q = x + y * z;"
	root, ok := firstExpr(t, src).(*ast.BinaryExpression)
	if !ok {
		t.Fatal("root is not binary")
	}
	if got := root.Source().String(); got != "q = x + y * z" {
		t.Errorf("assignment spans %q", got)
	}
	// A span starts where the previous token ended, so it carries the
	// whitespace in front of the node.
	rhs := root.Right.(*ast.BinaryExpression)
	if got := rhs.Source().String(); got != " x + y * z" {
		t.Errorf("assignment RHS spans %q", got)
	}
	mul := rhs.Right.(*ast.BinaryExpression)
	if got := mul.Source().String(); got != " y * z" {
		t.Errorf("product spans %q", got)
	}
}

func TestASILaw(t *testing.T) {
	// A line terminator splits two statements when the next token can
	// begin a statement.
	prog := parseProgram(t, "a = 1\nb = 2")
	if len(prog.Statements) != 2 {
		t.Errorf("got %d statements, want 2", len(prog.Statements))
	}

	// A continuation token keeps it a single statement.
	prog = parseProgram(t, "a = 1 +\n2")
	if len(prog.Statements) != 1 {
		t.Errorf("got %d statements, want 1", len(prog.Statements))
	}

	// No insertion point at all is a parse error.
	parseFails(t, "a = 1 b = 2")
}

func TestPostfixRestrictions(t *testing.T) {
	// Postfix ++ must not be separated from its operand by a line
	// terminator: `a\n++b` is two statements.
	prog := parseProgram(t, "a\n++b")
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Statements))
	}

	// Postfix on a binary or unary operand is rejected.
	parseFails(t, "a + b++ ++;")
	parseFails(t, "(typeof a)++ ++;")
}

func TestUnaryPrefix(t *testing.T) {
	u, ok := firstExpr(t, "-a * b;").(*ast.BinaryExpression)
	if !ok {
		t.Fatal("root is not binary")
	}
	if got := u.Op.Text(); got != "*" {
		t.Errorf("-a * b should root at *, got %q", got)
	}
	if _, ok := u.Left.(*ast.UnaryExpression); !ok {
		t.Error("left child of -a * b should be unary")
	}
}

func TestLHSPostfixOrder(t *testing.T) {
	lhs, ok := firstExpr(t, "new a.b(c)[d].e;").(*ast.LHSExpression)
	if !ok {
		t.Fatal("root is not an LHS expression")
	}
	if lhs.NewCount != 1 {
		t.Errorf("NewCount = %d, want 1", lhs.NewCount)
	}
	wantKinds := []ast.PostfixKind{
		ast.PostfixProp, ast.PostfixCall, ast.PostfixIndex, ast.PostfixProp,
	}
	if len(lhs.Postfix) != len(wantKinds) {
		t.Fatalf("got %d postfix steps, want %d", len(lhs.Postfix), len(wantKinds))
	}
	for idx, want := range wantKinds {
		if lhs.Postfix[idx].Kind != want {
			t.Errorf("postfix %d: kind %v, want %v", idx, lhs.Postfix[idx].Kind, want)
		}
	}
}

func TestRegexVsDivision(t *testing.T) {
	// Primary position: regex literal.
	lhs, ok := firstExpr(t, "a = /ab/g;").(*ast.BinaryExpression)
	if !ok {
		t.Fatal("assignment did not parse")
	}
	rhsLHS, ok := lhs.Right.(*ast.LHSExpression)
	if !ok {
		t.Fatal("rhs is not an LHS expression")
	}
	if _, ok := rhsLHS.Base.(*ast.RegexLiteral); !ok {
		t.Errorf("rhs base is %T, want regex literal", rhsLHS.Base)
	}

	// Operator position: division.
	bin, ok := firstExpr(t, "a / b;").(*ast.BinaryExpression)
	if !ok {
		t.Fatal("a / b did not parse as binary")
	}
	if got := bin.Op.Text(); got != "/" {
		t.Errorf("operator %q, want \"/\"", got)
	}
}

func TestFunctionForms(t *testing.T) {
	prog := parseProgram(t, "function f(a, b) { return a; }")
	if len(prog.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1", len(prog.Declarations))
	}
	decl := prog.Declarations[0]
	if decl.Name.Text() != "f" || len(decl.Params) != 2 {
		t.Errorf("declaration parsed as %q/%d params", decl.Name.Text(), len(decl.Params))
	}
	if !decl.Body.FunctionBody {
		t.Error("function body must be marked as such")
	}

	// Anonymous expression is fine on the right of =.
	lhs := firstExpr(t, "f = function() { return 1; };").(*ast.BinaryExpression)
	fnLHS := lhs.Right.(*ast.LHSExpression)
	fn, ok := fnLHS.Base.(*ast.FunctionLiteral)
	if !ok {
		t.Fatal("rhs is not a function literal")
	}
	if fn.Name.Type != lexer.NOT_FOUND {
		t.Error("anonymous function should have NOT_FOUND name")
	}

	// A declaration requires a name.
	parseFails(t, "function () { return 1; }")
}

func TestVarStatement(t *testing.T) {
	prog := parseProgram(t, "var a = 1, b, c = a;")
	stmt := prog.Statements[0].(*ast.VarStatement)
	if len(stmt.Decls) != 3 {
		t.Fatalf("got %d declarators, want 3", len(stmt.Decls))
	}
	if stmt.Decls[1].Init != nil {
		t.Error("b should have no initializer")
	}
	parseFails(t, "var;")
	parseFails(t, "var 1 = a;")
}

func TestIfElseAssociation(t *testing.T) {
	prog := parseProgram(t, "if (a) if (b) f(); else g();")
	outer := prog.Statements[0].(*ast.IfStatement)
	if outer.Else != nil {
		t.Fatal("else should bind to the inner if")
	}
	inner := outer.Then.(*ast.IfStatement)
	if inner.Else == nil {
		t.Fatal("inner if lost its else")
	}
}

func TestForDisambiguation(t *testing.T) {
	prog := parseProgram(t, "for (var i = 0; i < 3; i++) f();")
	if _, ok := prog.Statements[0].(*ast.ForStatement); !ok {
		t.Errorf("three-clause for parsed as %T", prog.Statements[0])
	}

	prog = parseProgram(t, "for (var k in o) f(k);")
	forIn, ok := prog.Statements[0].(*ast.ForInStatement)
	if !ok {
		t.Fatalf("var for-in parsed as %T", prog.Statements[0])
	}
	if _, ok := forIn.Left.(*ast.VarDecl); !ok {
		t.Error("for-in left should be a VarDecl")
	}

	prog = parseProgram(t, "for (k in o) f(k);")
	forIn = prog.Statements[0].(*ast.ForInStatement)
	if _, ok := forIn.Left.(*ast.LHSExpression); !ok {
		t.Error("for-in left should be an LHS expression")
	}

	// `in` as an operator is legal outside the suppressed init clause.
	prog = parseProgram(t, "for (; k in o;) f();")
	forStmt := prog.Statements[0].(*ast.ForStatement)
	if forStmt.Test == nil {
		t.Error("test clause with in operator missing")
	}
}

func TestSwitchClauseSplit(t *testing.T) {
	prog := parseProgram(t, `switch (x) { case 1: a(); case 2: b(); default: c(); case 3: d(); }`)
	sw := prog.Statements[0].(*ast.SwitchStatement)
	if len(sw.Before) != 2 || sw.Default == nil || len(sw.After) != 1 {
		t.Errorf("clause split %d/%v/%d, want 2/default/1",
			len(sw.Before), sw.Default != nil, len(sw.After))
	}
	parseFails(t, "switch (x) { default: a(); default: b(); }")
}

func TestTryForms(t *testing.T) {
	prog := parseProgram(t, "try { f(); } catch (e) { g(); }")
	try := prog.Statements[0].(*ast.TryStatement)
	if try.Catch == nil || try.Finally != nil {
		t.Error("catch-only try misparsed")
	}
	if try.CatchParam.Text() != "e" {
		t.Errorf("catch parameter %q", try.CatchParam.Text())
	}

	prog = parseProgram(t, "try { f(); } finally { h(); }")
	try = prog.Statements[0].(*ast.TryStatement)
	if try.Catch != nil || try.Finally == nil {
		t.Error("finally-only try misparsed")
	}

	parseFails(t, "try { f(); }")
}

func TestLabelledStatement(t *testing.T) {
	prog := parseProgram(t, "loop: while (a) { continue loop; }")
	lbl, ok := prog.Statements[0].(*ast.LabelledStatement)
	if !ok {
		t.Fatalf("parsed as %T", prog.Statements[0])
	}
	if lbl.Label.Text() != "loop" {
		t.Errorf("label %q", lbl.Label.Text())
	}
	// An identifier without a colon is a plain expression statement.
	prog = parseProgram(t, "loop;")
	if _, ok := prog.Statements[0].(*ast.ExpressionStatement); !ok {
		t.Errorf("parsed as %T", prog.Statements[0])
	}
}

func TestObjectLiteralAccessors(t *testing.T) {
	lhs := firstExpr(t, "o = {a: 1, get b() { return 2; }, set b(v) { }, 'c': 3, 4: 5};").(*ast.BinaryExpression)
	obj := lhs.Right.(*ast.LHSExpression).Base.(*ast.ObjectLiteral)
	if len(obj.Properties) != 5 {
		t.Fatalf("got %d properties, want 5", len(obj.Properties))
	}
	kinds := []ast.PropertyKind{
		ast.PropertyNormal, ast.PropertyGet, ast.PropertySet,
		ast.PropertyNormal, ast.PropertyNormal,
	}
	for idx, want := range kinds {
		if obj.Properties[idx].Kind != want {
			t.Errorf("property %d kind %v, want %v", idx, obj.Properties[idx].Kind, want)
		}
	}

	// get/set as plain property names still work.
	lhs = firstExpr(t, "o = {get: 1, set: 2};").(*ast.BinaryExpression)
	obj = lhs.Right.(*ast.LHSExpression).Base.(*ast.ObjectLiteral)
	if len(obj.Properties) != 2 {
		t.Fatalf("got %d properties, want 2", len(obj.Properties))
	}

	parseFails(t, "o = {get b(x) { }};")
	parseFails(t, "o = {set b() { }};")
}

func TestArrayLiteralElision(t *testing.T) {
	lhs := firstExpr(t, "a = [1, , 3, ];").(*ast.BinaryExpression)
	arr := lhs.Right.(*ast.LHSExpression).Base.(*ast.ArrayLiteral)
	if arr.Length != 3 {
		t.Errorf("length %d, want 3", arr.Length)
	}
	if len(arr.Elements) != 2 {
		t.Errorf("%d stored elements, want 2", len(arr.Elements))
	}
	if arr.Elements[1].Index != 2 {
		t.Errorf("second element at index %d, want 2", arr.Elements[1].Index)
	}
}

func TestStrictDirective(t *testing.T) {
	if !parseProgram(t, `"use strict"; var a;`).Strict {
		t.Error("double-quoted directive not honored")
	}
	if !parseProgram(t, `'use strict'
var a;`).Strict {
		t.Error("directive with inserted semicolon not honored")
	}
	if parseProgram(t, `"use strict" + 1;`).Strict {
		t.Error("directive followed by operator must not enable strict mode")
	}
	if parseProgram(t, `var a; "use strict";`).Strict {
		t.Error("directive must be first")
	}

	prog := parseProgram(t, `function f() { "use strict"; return 1; }`)
	if !prog.Declarations[0].Body.Strict {
		t.Error("nested function directive not honored")
	}
}

func TestExpressionStatementRestrictions(t *testing.T) {
	// A leading { always opens a block.
	prog := parseProgram(t, "{ a = 1; }")
	if _, ok := prog.Statements[0].(*ast.BlockStatement); !ok {
		t.Errorf("parsed as %T, want block", prog.Statements[0])
	}
}

func TestSequenceExpression(t *testing.T) {
	seq, ok := firstExpr(t, "a = 1, b = 2, c;").(*ast.SequenceExpression)
	if !ok {
		t.Fatal("comma expression did not parse as sequence")
	}
	if len(seq.Elements) != 3 {
		t.Errorf("%d elements, want 3", len(seq.Elements))
	}
}

func TestConditionalExpression(t *testing.T) {
	cond, ok := firstExpr(t, "a ? b : c ? d : e;").(*ast.ConditionalExpression)
	if !ok {
		t.Fatal("conditional did not parse")
	}
	if _, ok := cond.Else.(*ast.ConditionalExpression); !ok {
		t.Error("?: should nest rightwards")
	}
}

func TestIllegalNodes(t *testing.T) {
	for _, src := range []string{
		"a = ;",
		"if (a { }",
		"do f(); while a);",
		"function f( { }",
		"o = {a 1};",
		"a = [1,%];",
	} {
		parseFails(t, src)
	}
}
