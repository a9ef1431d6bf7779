package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIfStatement(t *testing.T) {
	assert.Equal(t, 1.0, runNumber(t, "if (true) r = 1; else r = 2; r"))
	assert.Equal(t, 2.0, runNumber(t, "if (0) r = 1; else r = 2; r"))
	assert.Equal(t, "undefined", runValue(t, "if ('') r = 1; typeof r").(*StringValue).Value)
}

func TestDoWhile(t *testing.T) {
	// The body runs at least once.
	assert.Equal(t, 1.0, runNumber(t, "var n = 0; do { n += 1; } while (false); n"))
	assert.Equal(t, 5.0, runNumber(t, "var n = 0; do { n += 1; } while (n < 5); n"))
}

func TestForLoop(t *testing.T) {
	assert.Equal(t, 45.0, runNumber(t, "var s = 0; for (var i = 0; i < 10; i++) { s += i; } s"))
	assert.Equal(t, 10.0, runNumber(t, "var i; for (i = 0; ; i++) { if (i == 10) break; } i"))
	assert.Equal(t, 3.0, runNumber(t, "var n = 0; for (;;) { n += 1; if (n == 3) break; } n"))
	// Multiple var declarators in the header.
	assert.Equal(t, 16.0, runNumber(t, "var s = 0; for (var i = 0, j = 4; i < j; i++) { s += j; } s"))
	// continue skips the rest of the body but runs the update.
	assert.Equal(t, 25.0, runNumber(t,
		"var s = 0; for (var i = 0; i < 10; i++) { if (i % 2 == 0) continue; s += i; } s"))
}

func TestForIn(t *testing.T) {
	// Own properties in insertion order.
	assert.Equal(t, "abc", runValue(t, `
		var o = {a: 1, b: 2, c: 3}, s = '';
		for (var k in o) { s += k; }
		s
	`).(*StringValue).Value)

	// Inherited enumerable properties appear after own ones, shadowed
	// names only once.
	assert.Equal(t, "own,shared,inherited", runValue(t, `
		function A() { this.own = 1; this.shared = 2; }
		A.prototype.inherited = 3;
		A.prototype.shared = 4;
		var names = [];
		for (var k in new A()) { names.push(k); }
		names.join()
	`).(*StringValue).Value)

	// Deleting a not-yet-visited property skips it.
	assert.Equal(t, "a", runValue(t, `
		var o = {a: 1, b: 2}, s = '';
		for (var k in o) { s += k; delete o.b; }
		s
	`).(*StringValue).Value)

	// Non-enumerable properties stay invisible.
	assert.Equal(t, "", runValue(t, `
		var s = '';
		for (var k in 'ab'.length) { s += k; }
		s
	`).(*StringValue).Value)

	// LHS-expression targets work.
	assert.Equal(t, "xy", runValue(t, `
		var o = {x: 1, y: 2}, box = {}, s = '';
		for (box.k in o) { s += box.k; }
		s
	`).(*StringValue).Value)
}

func TestSwitch(t *testing.T) {
	script := func(x string) string {
		return `
			var s = '';
			switch (` + x + `) {
				case 1: s += 'one ';
				case 2: s += 'two '; break;
				default: s += 'other ';
				case 3: s += 'three ';
			}
			s
		`
	}
	// Fall-through from the first match.
	assert.Equal(t, "one two ", runValue(t, script("1")).(*StringValue).Value)
	assert.Equal(t, "two ", runValue(t, script("2")).(*StringValue).Value)
	// A match after the default clause does not run the default.
	assert.Equal(t, "three ", runValue(t, script("3")).(*StringValue).Value)
	// No match: default runs and falls through into after-default clauses.
	assert.Equal(t, "other three ", runValue(t, script("9")).(*StringValue).Value)

	// Strict comparison: no coercion.
	assert.Equal(t, "other three ", runValue(t, script("'1'")).(*StringValue).Value)
}

func TestTryCatchFinally(t *testing.T) {
	assert.Equal(t, 2.0, runNumber(t, "try { throw 2; } catch (e) { r = e; } r"))
	assert.Equal(t, 3.0, runNumber(t, "r = 0; try { r = 1; } finally { r = 3; } r"))
	// finally runs on the throw path and its abrupt completion overrides.
	assert.Equal(t, 5.0, runNumber(t, `
		function f() {
			try { throw 1; } finally { return 5; }
		}
		f()
	`))
	// The catch parameter lives in its own scope.
	assert.Equal(t, "undefined", runValue(t,
		"try { throw 1; } catch (oops) { } typeof oops").(*StringValue).Value)
	// Engine errors are catchable like user throws.
	assert.Equal(t, "TypeError", runValue(t,
		"try { null.x; } catch (e) { r = e.name; } r").(*StringValue).Value)
	assert.Equal(t, "ReferenceError", runValue(t,
		"try { missing + 1; } catch (e) { r = e.name; } r").(*StringValue).Value)
	// A caught error does not poison later statements.
	assert.Equal(t, 4.0, runNumber(t, "try { nope(); } catch (e) { } 4"))
	// Rethrow from catch.
	c, i := evalSource(t, "try { throw new TypeError('x'); } catch (e) { throw e; }")
	require.Equal(t, ThrowCompletion, c.Type)
	assert.Equal(t, "TypeError", thrownErrorName(t, i, c.Value))
}

func TestWithStatement(t *testing.T) {
	assert.Equal(t, 7.0, runNumber(t, "var o = {x: 7}; var r; with (o) { r = x; } r"))
	// Assignments inside with hit the object's properties.
	assert.Equal(t, 9.0, runNumber(t, "var o = {x: 1}; with (o) { x = 9; } o.x"))
	// Names missing from the object fall through to the outer scope.
	assert.Equal(t, 3.0, runNumber(t, "var y = 3; var r; with ({}) { r = y; } r"))
	// The scope pops even when the body throws.
	assert.Equal(t, 5.0, runNumber(t, `
		var x = 5, r;
		try { with ({x: 1}) { throw 0; } } catch (e) { }
		r = x; r
	`))
	// A method resolved through with gets the object as this.
	assert.Equal(t, 8.0, runNumber(t,
		"var o = {v: 8, m: function(){ return this.v; }}; var r; with (o) { r = m(); } r"))
}

func TestLabelledBreakContinue(t *testing.T) {
	assert.Equal(t, 6.0, runNumber(t, `
		var n = 0;
		outer: for (var i = 0; i < 3; i++) {
			for (var j = 0; j < 3; j++) {
				if (j == 2) continue outer;
				n += 1;
			}
		}
		n
	`))
	assert.Equal(t, 1.0, runNumber(t, `
		var n = 0;
		outer: for (var i = 0; i < 3; i++) {
			for (var j = 0; j < 3; j++) {
				n += 1;
				break outer;
			}
		}
		n
	`))
	// break with a label exits a labelled block.
	assert.Equal(t, 1.0, runNumber(t, "var n = 0; blk: { n = 1; break blk; n = 2; } n"))
}

func TestCompletionValues(t *testing.T) {
	// The program completion keeps the last non-empty statement value.
	assert.Equal(t, 2.0, runNumber(t, "1; 2; var x = 9;"))
	assert.Equal(t, 1.0, runNumber(t, "1; if (false) { 2; }"))
	assert.Equal(t, 3.0, runNumber(t, "switch (1) { case 1: 3; }"))
}

func TestReturnOutsideFunction(t *testing.T) {
	c, i := evalSource(t, "return 1;")
	require.Equal(t, ThrowCompletion, c.Type)
	assert.Equal(t, "SyntaxError", thrownErrorName(t, i, c.Value))

	c, i = evalSource(t, "if (true) { return 1; }")
	require.Equal(t, ThrowCompletion, c.Type)
	assert.Equal(t, "SyntaxError", thrownErrorName(t, i, c.Value))
}

func TestSequencesAndConditionals(t *testing.T) {
	assert.Equal(t, 3.0, runNumber(t, "(1, 2, 3)"))
	assert.Equal(t, 1.0, runNumber(t, "true ? 1 : 2"))
	assert.Equal(t, 2.0, runNumber(t, "false ? 1 : 2"))
	// Only the taken branch evaluates.
	assert.Equal(t, 1.0, runNumber(t, "var n = 0; true ? (n = 1) : (n = 2); n"))
}

func TestDebuggerStatement(t *testing.T) {
	assert.Equal(t, 1.0, runNumber(t, "debugger; 1"))
}
