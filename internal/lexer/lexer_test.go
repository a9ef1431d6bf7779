package lexer

import (
	"testing"
)

// expected is one (type, text) pair of a token stream.
type expected struct {
	tt   TokenType
	text string
}

func collect(t *testing.T, input string) []Token {
	t.Helper()
	l := New(FromString(input))
	var out []Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Type == EOS || tok.Type == ILLEGAL {
			return out
		}
		if len(out) > 1000 {
			t.Fatalf("runaway token stream for %q", input)
		}
	}
}

func checkStream(t *testing.T, input string, want []expected) {
	t.Helper()
	toks := collect(t, input)
	if len(toks) != len(want)+1 {
		t.Fatalf("%q: got %d tokens, want %d (%v)", input, len(toks)-1, len(want), toks)
	}
	for idx, w := range want {
		if toks[idx].Type != w.tt {
			t.Errorf("%q token %d: got %v, want %v", input, idx, toks[idx].Type, w.tt)
		}
		if toks[idx].Text() != w.text {
			t.Errorf("%q token %d: got text %q, want %q", input, idx, toks[idx].Text(), w.text)
		}
	}
	if toks[len(toks)-1].Type != EOS {
		t.Errorf("%q: stream did not end with EOS", input)
	}
}

func TestNextTokenBasics(t *testing.T) {
	checkStream(t, "var answer = 42;", []expected{
		{VAR, "var"},
		{IDENT, "answer"},
		{ASSIGN, "="},
		{NUMBER, "42"},
		{SEMICOLON, ";"},
	})
	checkStream(t, "a.b['c']()", []expected{
		{IDENT, "a"},
		{DOT, "."},
		{IDENT, "b"},
		{LBRACK, "["},
		{STRING, "'c'"},
		{RBRACK, "]"},
		{LPAREN, "("},
		{RPAREN, ")"},
	})
}

func TestOperators(t *testing.T) {
	checkStream(t, "a === b !== c >>> 2 >>>= << <= ++ -- && || ?:", []expected{
		{IDENT, "a"},
		{EQ_STRICT, "==="},
		{IDENT, "b"},
		{NE_STRICT, "!=="},
		{IDENT, "c"},
		{USHR, ">>>"},
		{NUMBER, "2"},
		{USHR_ASSIGN, ">>>="},
		{SHL, "<<"},
		{LESS_EQ, "<="},
		{INC, "++"},
		{DEC, "--"},
		{AND, "&&"},
		{OR, "||"},
		{QUESTION, "?"},
		{COLON, ":"},
	})
}

func TestKeywordClassification(t *testing.T) {
	tests := []struct {
		name string
		want TokenType
	}{
		{"var", VAR},
		{"function", FUNCTION},
		{"instanceof", INSTANCEOF},
		{"debugger", DEBUGGER},
		{"null", NULL},
		{"true", BOOL},
		{"false", BOOL},
		{"class", FUTURE_RESERVED},
		{"enum", FUTURE_RESERVED},
		{"super", FUTURE_RESERVED},
		{"foo", IDENT},
		{"$", IDENT},
		{"_private", IDENT},
	}
	for _, tc := range tests {
		if got := LookupIdent(tc.name); got != tc.want {
			t.Errorf("LookupIdent(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNumbers(t *testing.T) {
	for _, src := range []string{"0", "123", "3.14", ".5", "5.", "1e10", "1E-10", "1.5e+3", "0xFF", "0X1a"} {
		toks := collect(t, src)
		if toks[0].Type != NUMBER {
			t.Errorf("%q: got %v, want NUMBER", src, toks[0].Type)
		}
		if toks[0].Text() != src {
			t.Errorf("%q: source slice %q does not round-trip", src, toks[0].Text())
		}
	}
	// An identifier glued to a number is malformed.
	toks := collect(t, "3in")
	if toks[0].Type != ILLEGAL {
		t.Errorf("3in: got %v, want ILLEGAL", toks[0].Type)
	}
	toks = collect(t, "0x")
	if toks[0].Type != ILLEGAL {
		t.Errorf("0x: got %v, want ILLEGAL", toks[0].Type)
	}
}

func TestStrings(t *testing.T) {
	for _, src := range []string{`"hello"`, `'world'`, `"a\"b"`, `'it\'s'`, `"\x41B"`, `""`} {
		toks := collect(t, src)
		if toks[0].Type != STRING {
			t.Errorf("%q: got %v, want STRING", src, toks[0].Type)
		}
		if toks[0].Text() != src {
			t.Errorf("%q: source slice %q does not round-trip", src, toks[0].Text())
		}
	}
	toks := collect(t, `"unterminated`)
	if toks[0].Type != ILLEGAL {
		t.Errorf("unterminated string: got %v, want ILLEGAL", toks[0].Type)
	}
	toks = collect(t, "\"line\nbreak\"")
	if toks[0].Type != ILLEGAL {
		t.Errorf("raw line terminator in string: got %v, want ILLEGAL", toks[0].Type)
	}
}

func TestComments(t *testing.T) {
	checkStream(t, "a // comment\nb /* block */ c", []expected{
		{IDENT, "a"},
		{IDENT, "b"},
		{IDENT, "c"},
	})
	// A block comment spanning lines counts as a line terminator.
	l := New(FromString("a /* x\ny */ b"))
	l.Next() // a
	b := l.Next()
	if !b.AfterLineTerminator {
		t.Error("token after multi-line block comment should carry the line terminator flag")
	}
}

func TestLineTerminatorFlag(t *testing.T) {
	l := New(FromString("a\nb c"))
	a := l.Next()
	if a.AfterLineTerminator {
		t.Error("first token should not be marked")
	}
	b := l.Next()
	if !b.AfterLineTerminator {
		t.Error("token after newline should be marked")
	}
	c := l.Next()
	if c.AfterLineTerminator {
		t.Error("token on the same line should not be marked")
	}
}

func TestNextAndRewind(t *testing.T) {
	l := New(FromString("a b"))
	peeked := l.NextAndRewind()
	next := l.Next()
	if peeked.Type != next.Type || peeked.Text() != next.Text() {
		t.Errorf("peek %v and next %v disagree", peeked, next)
	}
	if l.Next().Text() != "b" {
		t.Error("rewound peek consumed input")
	}
}

func TestSaveRestoreState(t *testing.T) {
	l := New(FromString("a b c"))
	l.Next() // a
	s := l.SaveState()
	l.Next() // b
	l.Next() // c
	l.RestoreState(s)
	if got := l.Next().Text(); got != "b" {
		t.Errorf("after restore got %q, want \"b\"", got)
	}
}

func TestTrySkipSemicolon(t *testing.T) {
	// Explicit semicolon is consumed.
	l := New(FromString("; a"))
	if !l.TrySkipSemicolon() {
		t.Fatal("explicit semicolon not skipped")
	}
	if got := l.Next().Text(); got != "a" {
		t.Errorf("got %q after skip, want \"a\"", got)
	}

	// Closing brace succeeds without consuming.
	l = New(FromString("}"))
	if !l.TrySkipSemicolon() {
		t.Fatal("ASI before } failed")
	}
	if got := l.Next().Type; got != RBRACE {
		t.Errorf("} was consumed, next is %v", got)
	}

	// End of source succeeds.
	l = New(FromString(""))
	if !l.TrySkipSemicolon() {
		t.Fatal("ASI at EOS failed")
	}

	// Line terminator succeeds without consuming.
	l = New(FromString("\nb"))
	if !l.TrySkipSemicolon() {
		t.Fatal("ASI at line terminator failed")
	}
	if got := l.Next().Text(); got != "b" {
		t.Errorf("got %q, want \"b\"", got)
	}

	// Same-line continuation fails.
	l = New(FromString("b"))
	if l.TrySkipSemicolon() {
		t.Fatal("ASI succeeded where no insertion point exists")
	}
}

func TestScanRegexLiteral(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"/ab/", "/ab/"},
		{"/ab/gim", "/ab/gim"},
		{`/a\/b/`, `/a\/b/`},
		{"/[/]/", "/[/]/"}, // '/' inside a class does not terminate
		{"/a/ + b", "/a/"},
	}
	for _, tc := range tests {
		l := New(FromString(tc.src))
		tok := l.ScanRegexLiteral()
		if tok.Type != REGEX {
			t.Errorf("%q: got %v, want REGEX", tc.src, tok.Type)
			continue
		}
		if tok.Text() != tc.want {
			t.Errorf("%q: got %q, want %q", tc.src, tok.Text(), tc.want)
		}
	}

	for _, src := range []string{"/ab", "/ab\n/", "a/b/"} {
		l := New(FromString(src))
		if tok := l.ScanRegexLiteral(); tok.Type != ILLEGAL {
			t.Errorf("%q: got %v, want ILLEGAL", src, tok.Type)
		}
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	checkStream(t, "Δ = 1", []expected{
		{IDENT, "Δ"},
		{ASSIGN, "="},
		{NUMBER, "1"},
	})
	// Unicode escapes are accepted in identifiers; classification is by
	// raw spelling, so the token keeps its escaped source slice.
	toks := collect(t, `\u0061bc`)
	if toks[0].Type != IDENT || toks[0].Text() != `\u0061bc` {
		t.Errorf("escaped identifier: got %v %q", toks[0].Type, toks[0].Text())
	}
}

func TestPositions(t *testing.T) {
	l := New(FromString("a\n  bb"))
	a := l.Next()
	if a.Pos.Line != 1 || a.Pos.Offset != 0 {
		t.Errorf("a at %+v", a.Pos)
	}
	bb := l.Next()
	if bb.Pos.Line != 2 || bb.Pos.Offset != 4 {
		t.Errorf("bb at %+v", bb.Pos)
	}
}

func TestSourceSlicesAreViews(t *testing.T) {
	src := FromString("alpha + beta")
	l := New(src)
	tok := l.Next()
	if &tok.Src[0] != &src[0] {
		t.Error("token source slice is a copy, not a view")
	}
}
