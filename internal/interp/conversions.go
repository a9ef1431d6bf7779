package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/escript/escript/internal/lexer"
)

// Abstract conversion operations. The ones that can run user code
// (ToPrimitive and everything built on it) are methods on the Interpreter
// so failures land in the error cell; the pure ones are package functions.

// ToPrimitive converts v to a non-object value. hint is "Number", "String"
// or "" for default (Number).
func (i *Interpreter) ToPrimitive(v Value, hint string) Value {
	if o, ok := v.(*Object); ok {
		return o.DefaultValue(i, hint)
	}
	return v
}

// ToBoolean converts any language value to a boolean.
func ToBoolean(v Value) bool {
	switch t := v.(type) {
	case *UndefinedValue, *NullValue:
		return false
	case *BooleanValue:
		return t.Value
	case *NumberValue:
		return t.Value != 0 && !math.IsNaN(t.Value)
	case *StringValue:
		return t.Value != ""
	}
	return true
}

// ToNumber converts v to a number.
func (i *Interpreter) ToNumber(v Value) float64 {
	switch t := v.(type) {
	case *UndefinedValue:
		return math.NaN()
	case *NullValue:
		return 0
	case *BooleanValue:
		if t.Value {
			return 1
		}
		return 0
	case *NumberValue:
		return t.Value
	case *StringValue:
		return StringToNumber(t.Value)
	case *Object:
		prim := i.ToPrimitive(t, "Number")
		if !i.ok() {
			return math.NaN()
		}
		return i.ToNumber(prim)
	}
	i.throwTypeError("cannot convert value to number")
	return math.NaN()
}

// ToInteger converts v to an integral number, mapping NaN to +0.
func (i *Interpreter) ToInteger(v Value) float64 {
	n := i.ToNumber(v)
	if math.IsNaN(n) {
		return 0
	}
	if n == 0 || math.IsInf(n, 0) {
		return n
	}
	return math.Trunc(n)
}

// ToInt32 converts v to a signed 32-bit integer with modular wrapping.
func (i *Interpreter) ToInt32(v Value) int32 {
	return int32(i.ToUint32(v))
}

// ToUint32 converts v to an unsigned 32-bit integer with modular wrapping.
func (i *Interpreter) ToUint32(v Value) uint32 {
	n := i.ToNumber(v)
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	n = math.Trunc(n)
	return uint32(int64(math.Mod(n, 4294967296)))
}

// ToUint16 converts v to an unsigned 16-bit integer with modular wrapping.
func (i *Interpreter) ToUint16(v Value) uint16 {
	return uint16(i.ToUint32(v))
}

// ToString converts v to a string.
func (i *Interpreter) ToString(v Value) string {
	switch t := v.(type) {
	case *UndefinedValue:
		return "undefined"
	case *NullValue:
		return "null"
	case *BooleanValue:
		if t.Value {
			return "true"
		}
		return "false"
	case *NumberValue:
		return NumberToString(t.Value)
	case *StringValue:
		return t.Value
	case *Object:
		prim := i.ToPrimitive(t, "String")
		if !i.ok() {
			return ""
		}
		return i.ToString(prim)
	}
	i.throwTypeError("cannot convert value to string")
	return ""
}

// ToObject converts v to an object, boxing primitives into their wrapper
// classes and raising a TypeError for undefined and null.
func (i *Interpreter) ToObject(v Value) *Object {
	switch t := v.(type) {
	case *Object:
		return t
	case *BooleanValue:
		return i.newBooleanObject(t.Value)
	case *NumberValue:
		return i.newNumberObject(t.Value)
	case *StringValue:
		return i.newStringObject(t.Value)
	}
	i.throwTypeError("cannot convert " + strings.ToLower(v.Type()) + " to object")
	return nil
}

// CheckObjectCoercible raises a TypeError when v is undefined or null.
func (i *Interpreter) CheckObjectCoercible(v Value) {
	if IsUndefined(v) || IsNull(v) {
		i.throwTypeError("cannot read properties of " + strings.ToLower(v.Type()))
	}
}

// SameValue implements the SameValue algorithm: type-equal, NaN equals NaN,
// +0 and -0 differ, objects compare by identity.
func SameValue(x, y Value) bool {
	switch a := x.(type) {
	case *UndefinedValue:
		return IsUndefined(y)
	case *NullValue:
		return IsNull(y)
	case *BooleanValue:
		b, ok := y.(*BooleanValue)
		return ok && a.Value == b.Value
	case *NumberValue:
		b, ok := y.(*NumberValue)
		if !ok {
			return false
		}
		if math.IsNaN(a.Value) && math.IsNaN(b.Value) {
			return true
		}
		return math.Float64bits(a.Value) == math.Float64bits(b.Value)
	case *StringValue:
		b, ok := y.(*StringValue)
		return ok && a.Value == b.Value
	case *Object:
		b, ok := y.(*Object)
		return ok && a == b
	}
	return x == y
}

// NumberToString renders a double per the language rules: shortest
// round-trip digits, plain decimal notation for exponents in (-7, 21),
// exponent notation outside.
func NumberToString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f < 0:
		return "-" + NumberToString(-f)
	}

	// Shortest digits s (k of them) and decimal exponent n such that
	// f = 0.s * 10^n.
	mant := strconv.FormatFloat(f, 'e', -1, 64)
	ePos := strings.IndexByte(mant, 'e')
	exp, _ := strconv.Atoi(mant[ePos+1:])
	digits := strings.Replace(mant[:ePos], ".", "", 1)
	k := len(digits)
	n := exp + 1

	switch {
	case k <= n && n <= 21:
		return digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return "0." + strings.Repeat("0", -n) + digits
	}
	expPart := strconv.Itoa(n - 1)
	if n-1 >= 0 {
		expPart = "+" + expPart
	}
	if k == 1 {
		return digits + "e" + expPart
	}
	return digits[:1] + "." + digits[1:] + "e" + expPart
}

// StringToNumber parses a string as a numeric literal with optional
// surrounding whitespace. Empty and whitespace-only strings are +0;
// anything unparseable is NaN.
func StringToNumber(s string) float64 {
	s = trimESWhitespace(s)
	if s == "" {
		return 0
	}
	if hex, ok := strings.CutPrefix(s, "0x"); ok {
		return parseHex(hex)
	}
	if hex, ok := strings.CutPrefix(s, "0X"); ok {
		return parseHex(hex)
	}

	body, sign := s, 1.0
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		if body[0] == '-' {
			sign = -1
		}
		body = body[1:]
	}
	if body == "Infinity" {
		return sign * math.Inf(1)
	}
	if !isDecimalLiteral(body) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return math.NaN()
	}
	return sign * f
}

func parseHex(digits string) float64 {
	if digits == "" {
		return math.NaN()
	}
	val := 0.0
	for j := 0; j < len(digits); j++ {
		c := uint16(digits[j])
		if !lexer.IsHexDigit(c) {
			return math.NaN()
		}
		val = val*16 + float64(lexer.DigitValue(c))
	}
	return val
}

// isDecimalLiteral validates the StrDecimalLiteral grammar so that Go's
// float parser never accepts spellings the language rejects ("Inf", "nan",
// hex floats, underscores).
func isDecimalLiteral(s string) bool {
	pos, digits := 0, 0
	for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		pos++
		digits++
	}
	if pos < len(s) && s[pos] == '.' {
		pos++
		for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
			pos++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if pos < len(s) && (s[pos] == 'e' || s[pos] == 'E') {
		pos++
		if pos < len(s) && (s[pos] == '+' || s[pos] == '-') {
			pos++
		}
		expDigits := 0
		for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
			pos++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return pos == len(s)
}

// trimESWhitespace trims the language's whitespace and line terminators,
// which is wider than Go's unicode.IsSpace set (BOM, no-break space).
func trimESWhitespace(s string) string {
	isWS := func(r rune) bool {
		if r > 0xFFFF {
			return false
		}
		return lexer.IsWhitespace(uint16(r)) || lexer.IsLineTerminator(uint16(r))
	}
	return strings.TrimFunc(s, isWS)
}
