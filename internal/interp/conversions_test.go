package interp

import (
	"math"
	"testing"

	"github.com/escript/escript/internal/lexer"
)

func sourceOf(s string) lexer.Source { return lexer.FromString(s) }

func TestSameValueLaws(t *testing.T) {
	values := []Value{
		Undefined, Null, True, False,
		NewNumber(0), NewNumber(math.Copysign(0, -1)), NewNumber(1), NewNumber(math.NaN()),
		NewString(""), NewString("x"),
		NewObject(classObject, Null), NewObject(classObject, Null),
	}

	// Reflexive.
	for _, v := range values {
		if !SameValue(v, v) {
			t.Errorf("SameValue(%v, %v) should be true", v, v)
		}
	}
	// Symmetric.
	for _, x := range values {
		for _, y := range values {
			if SameValue(x, y) != SameValue(y, x) {
				t.Errorf("SameValue(%v, %v) is not symmetric", x, y)
			}
		}
	}

	if !SameValue(NewNumber(math.NaN()), NewNumber(math.NaN())) {
		t.Error("SameValue(NaN, NaN) should be true")
	}
	if SameValue(NewNumber(0), NewNumber(math.Copysign(0, -1))) {
		t.Error("SameValue(+0, -0) should be false")
	}
	if !SameValue(NewString("ab"), NewString("ab")) {
		t.Error("strings compare by content")
	}
	if SameValue(NewObject(classObject, Null), NewObject(classObject, Null)) {
		t.Error("distinct objects are never the same value")
	}
}

func TestStrictEqualsLaws(t *testing.T) {
	if StrictEquals(NewNumber(math.NaN()), NewNumber(math.NaN())) {
		t.Error("NaN === NaN should be false")
	}
	if !StrictEquals(NewNumber(0), NewNumber(math.Copysign(0, -1))) {
		t.Error("+0 === -0 should be true")
	}
	// Never coerces.
	if StrictEquals(NewNumber(1), NewString("1")) {
		t.Error("1 === '1' should be false")
	}
	if StrictEquals(True, NewNumber(1)) {
		t.Error("true === 1 should be false")
	}
	if StrictEquals(Undefined, Null) {
		t.Error("undefined === null should be false")
	}
}

func TestNumberToString(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{1, "1"},
		{-1, "-1"},
		{42, "42"},
		{123.456, "123.456"},
		{0.5, "0.5"},
		{1e21, "1e+21"},
		{1e20, "100000000000000000000"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{2.5e-7, "2.5e-7"},
		{1234567890123456789, "1234567890123456800"},
	}
	for _, tc := range tests {
		if got := NumberToString(tc.in); got != tc.want {
			t.Errorf("NumberToString(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStringToNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"\t\n 42 \n", 42},
		{"3.14", 3.14},
		{".5", 0.5},
		{"1e3", 1000},
		{"-7", -7},
		{"+7", 7},
		{"0x1F", 31},
		{"0X10", 16},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
	}
	for _, tc := range tests {
		if got := StringToNumber(tc.in); got != tc.want {
			t.Errorf("StringToNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"abc", "1x", "1e", "0x", "-0x1", "1.2.3", "Inf", "NaN1", "nan"} {
		if got := StringToNumber(bad); !math.IsNaN(got) {
			t.Errorf("StringToNumber(%q) = %v, want NaN", bad, got)
		}
	}
	if !math.IsNaN(StringToNumber("NaN")) {
		// NaN spells a valid... it does not: the numeric grammar has no
		// NaN production.
		t.Error("StringToNumber(\"NaN\") should be NaN (unparseable)")
	}
}

func TestIntegerConversions(t *testing.T) {
	i := New()

	int32Tests := []struct {
		in   float64
		want int32
	}{
		{0, 0},
		{1.9, 1},
		{-1.9, -1},
		{2147483648, -2147483648},
		{4294967296, 0},
		{-1, -1},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tc := range int32Tests {
		if got := i.ToInt32(NewNumber(tc.in)); got != tc.want {
			t.Errorf("ToInt32(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}

	uint32Tests := []struct {
		in   float64
		want uint32
	}{
		{0, 0},
		{-1, 4294967295},
		{4294967296, 0},
		{4294967297, 1},
		{math.NaN(), 0},
	}
	for _, tc := range uint32Tests {
		if got := i.ToUint32(NewNumber(tc.in)); got != tc.want {
			t.Errorf("ToUint32(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}

	if got := i.ToUint16(NewNumber(65536)); got != 0 {
		t.Errorf("ToUint16(65536) = %d, want 0", got)
	}
	if got := i.ToInteger(NewNumber(math.NaN())); got != 0 {
		t.Errorf("ToInteger(NaN) = %v, want 0", got)
	}
}

func TestToBoolean(t *testing.T) {
	falsy := []Value{Undefined, Null, False, NewNumber(0), NewNumber(math.NaN()), NewString("")}
	for _, v := range falsy {
		if ToBoolean(v) {
			t.Errorf("ToBoolean(%v) should be false", v)
		}
	}
	truthy := []Value{True, NewNumber(1), NewNumber(-1), NewString("0"), NewObject(classObject, Null)}
	for _, v := range truthy {
		if !ToBoolean(v) {
			t.Errorf("ToBoolean(%v) should be true", v)
		}
	}
}

func TestToPrimitiveAndToString(t *testing.T) {
	i := New()

	// Wrapper objects unwrap through valueOf/toString.
	if got := i.ToNumber(i.newNumberObject(7)); got != 7 {
		t.Errorf("ToNumber(Number(7)) = %v", got)
	}
	if got := i.ToString(i.newStringObject("hi")); got != "hi" {
		t.Errorf("ToString(String('hi')) = %q", got)
	}
	// Plain objects stringify through Object.prototype.toString.
	if got := i.ToString(NewObject(classObject, i.objectProto)); got != "[object Object]" {
		t.Errorf("ToString({}) = %q", got)
	}
	if !i.ok() {
		t.Fatalf("unexpected error: %v", i.Err())
	}

	// ToObject rejects undefined and null.
	i.ToObject(Undefined)
	if i.ok() {
		t.Fatal("ToObject(undefined) should raise TypeError")
	}
	if i.Err().Kind != KindTypeError {
		t.Errorf("ToObject(undefined) raised %v", i.Err().Kind)
	}
	i.ClearError()
}

func TestDecodeStringLiteral(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"\b\f\v\r"`, "\b\f\x0b\r"},
		{`"\\"`, `\`},
		{`"\'\""`, `'"`},
		{`"\x41"`, "A"},
		{`"A"`, "A"},
		{`"\q"`, "q"},
		{`"a\` + "\n" + `b"`, "ab"}, // line continuation
		{`""`, ""},
	}
	for _, tc := range tests {
		got := DecodeStringLiteral(sourceOf(tc.src))
		if got != tc.want {
			t.Errorf("DecodeStringLiteral(%s) = %q, want %q", tc.src, got, tc.want)
		}
	}
}

func TestDecodeNumberLiteral(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.14", 3.14},
		{".5", 0.5},
		{"1e3", 1000},
		{"1.5E-2", 0.015},
		{"0xFF", 255},
		{"0x10", 16},
	}
	for _, tc := range tests {
		if got := decodeNumberLiteral(sourceOf(tc.src)); got != tc.want {
			t.Errorf("decodeNumberLiteral(%q) = %v, want %v", tc.src, got, tc.want)
		}
	}
}
