package errors

import (
	"strings"
	"testing"

	"github.com/escript/escript/internal/lexer"
)

func TestFormatWithContext(t *testing.T) {
	src := "var x = 1;\nvar y = ;\nvar z = 3;"
	e := NewSourceError(lexer.Position{Line: 2, Column: 9, Offset: 19}, "unexpected token", src, "script.js")

	out := e.Format(false)
	if !strings.Contains(out, "script.js:2:9") {
		t.Errorf("missing file position header:\n%s", out)
	}
	if !strings.Contains(out, "var y = ;") {
		t.Errorf("missing source line:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret:\n%s", out)
	}
	if !strings.Contains(out, "unexpected token") {
		t.Errorf("missing message:\n%s", out)
	}

	// The caret lines up under the offending column.
	lines := strings.Split(out, "\n")
	var srcLine, caretLine string
	for idx, l := range lines {
		if strings.Contains(l, "var y = ;") && idx+1 < len(lines) {
			srcLine, caretLine = l, lines[idx+1]
		}
	}
	caretCol := strings.IndexByte(caretLine, '^')
	semiCol := strings.IndexByte(srcLine, ';')
	if caretCol != semiCol {
		t.Errorf("caret at %d, token at %d:\n%s", caretCol, semiCol, out)
	}
}

func TestFormatWithoutFile(t *testing.T) {
	e := NewSourceError(lexer.Position{Line: 1, Column: 1}, "boom", "x", "")
	out := e.Format(false)
	if !strings.Contains(out, "line 1:1") {
		t.Errorf("missing position:\n%s", out)
	}
}

func TestFormatOutOfRangeLine(t *testing.T) {
	e := NewSourceError(lexer.Position{Line: 99, Column: 1}, "boom", "x", "")
	out := e.Format(false)
	if !strings.Contains(out, "boom") {
		t.Errorf("message missing for out-of-range line:\n%s", out)
	}
}

func TestErrorInterface(t *testing.T) {
	var err error = NewSourceError(lexer.Position{Line: 1, Column: 2}, "msg", "ab", "")
	if !strings.Contains(err.Error(), "msg") {
		t.Error("Error() does not include the message")
	}
}
