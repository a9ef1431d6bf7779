package ast

import (
	"testing"

	"github.com/escript/escript/internal/lexer"
)

func TestIsIllegal(t *testing.T) {
	bad := &Illegal{Src: lexer.FromString("@@"), SrcPos: lexer.Position{Line: 1, Column: 1}}
	if !IsIllegal(bad) {
		t.Error("Illegal node not recognized")
	}
	if IsIllegal(&NullLiteral{}) {
		t.Error("NullLiteral misreported as illegal")
	}

	// Illegal satisfies both interfaces so any production can fail in
	// place.
	var _ Expression = bad
	var _ Statement = bad
}

func TestBooleanLiteralValue(t *testing.T) {
	if !(&BooleanLiteral{Src: lexer.FromString("true")}).Value() {
		t.Error("true literal decoded as false")
	}
	if (&BooleanLiteral{Src: lexer.FromString("false")}).Value() {
		t.Error("false literal decoded as true")
	}
}

func TestIdentifierName(t *testing.T) {
	id := &Identifier{Src: lexer.FromString("café")}
	if id.Name() != "café" {
		t.Errorf("Name() = %q", id.Name())
	}
}

func TestSourceBackReference(t *testing.T) {
	buf := lexer.FromString("x + y")
	node := &BinaryExpression{Src: buf, SrcPos: lexer.Position{Line: 1, Column: 1}}
	if node.Source().String() != "x + y" {
		t.Errorf("Source() = %q", node.Source().String())
	}
	if &node.Source()[0] != &buf[0] {
		t.Error("node source is a copy, not a view into the buffer")
	}
}
