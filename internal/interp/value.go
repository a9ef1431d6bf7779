// Package interp provides the runtime value model and the tree-walking
// evaluator for ECMAScript.
package interp

import "strconv"

// Value represents a runtime value in the interpreter. Besides the six
// language types, two internal variants exist that must never escape the
// evaluator: *Reference and EnvironmentRecord. All runtime values implement
// this interface.
type Value interface {
	// Type returns the type name of the value ("Undefined", "Null",
	// "Boolean", "Number", "String", "Object", "Reference",
	// "EnvironmentRecord").
	Type() string
	// String returns a debug representation of the value. Language-level
	// string conversion is ToString, not this.
	String() string
}

// UndefinedValue is the undefined value. Use the Undefined singleton.
type UndefinedValue struct{}

func (u *UndefinedValue) Type() string   { return "Undefined" }
func (u *UndefinedValue) String() string { return "undefined" }

// NullValue is the null value. Use the Null singleton.
type NullValue struct{}

func (n *NullValue) Type() string   { return "Null" }
func (n *NullValue) String() string { return "null" }

// BooleanValue is a boolean. Use the True/False singletons.
type BooleanValue struct {
	Value bool
}

func (b *BooleanValue) Type() string { return "Boolean" }
func (b *BooleanValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NumberValue is an IEEE-754 double, including ±0, ±∞ and NaN.
type NumberValue struct {
	Value float64
}

func (n *NumberValue) Type() string   { return "Number" }
func (n *NumberValue) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// StringValue is a string value. The Go string carries the UTF-16 content
// re-encoded as UTF-8; code-unit semantics (length, charCodeAt) are applied
// through explicit conversion at the operation sites.
type StringValue struct {
	Value string
}

func (s *StringValue) Type() string   { return "String" }
func (s *StringValue) String() string { return s.Value }

// Logical singletons. Undefined, Null and the two booleans are shared; the
// evaluator compares some of them by identity, so they must never be
// reallocated.
var (
	Undefined = &UndefinedValue{}
	Null      = &NullValue{}
	True      = &BooleanValue{Value: true}
	False     = &BooleanValue{Value: false}
)

// BoolOf returns the shared boolean for b.
func BoolOf(b bool) *BooleanValue {
	if b {
		return True
	}
	return False
}

// NewNumber allocates a number value.
func NewNumber(f float64) *NumberValue { return &NumberValue{Value: f} }

// NewString allocates a string value.
func NewString(s string) *StringValue { return &StringValue{Value: s} }

// IsUndefined reports whether v is the undefined value.
func IsUndefined(v Value) bool {
	_, ok := v.(*UndefinedValue)
	return ok
}

// IsNull reports whether v is the null value.
func IsNull(v Value) bool {
	_, ok := v.(*NullValue)
	return ok
}

// IsPrimitive reports whether v is a language value that is not an object.
func IsPrimitive(v Value) bool {
	switch v.(type) {
	case *UndefinedValue, *NullValue, *BooleanValue, *NumberValue, *StringValue:
		return true
	}
	return false
}

// IsObject reports whether v is an object.
func IsObject(v Value) bool {
	_, ok := v.(*Object)
	return ok
}

// IsCallable reports whether v is a callable object.
func IsCallable(v Value) bool {
	o, ok := v.(*Object)
	return ok && o.Callable()
}
