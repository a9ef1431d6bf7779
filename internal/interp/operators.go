package interp

import "math"

// Abstract operator algorithms shared by the expression evaluator.

// StrictEquals implements the === algorithm. It never coerces types.
func StrictEquals(x, y Value) bool {
	switch a := x.(type) {
	case *UndefinedValue:
		return IsUndefined(y)
	case *NullValue:
		return IsNull(y)
	case *NumberValue:
		b, ok := y.(*NumberValue)
		return ok && a.Value == b.Value
	case *StringValue:
		b, ok := y.(*StringValue)
		return ok && a.Value == b.Value
	case *BooleanValue:
		b, ok := y.(*BooleanValue)
		return ok && a.Value == b.Value
	case *Object:
		b, ok := y.(*Object)
		return ok && a == b
	}
	return false
}

// abstractEquals implements the == algorithm with its coercion ladder.
func (i *Interpreter) abstractEquals(x, y Value) bool {
	switch {
	case x.Type() == y.Type():
		return StrictEquals(x, y)
	case IsNull(x) && IsUndefined(y), IsUndefined(x) && IsNull(y):
		return true
	}
	if _, ok := x.(*NumberValue); ok {
		if s, ok := y.(*StringValue); ok {
			return i.abstractEquals(x, NewNumber(StringToNumber(s.Value)))
		}
	}
	if s, ok := x.(*StringValue); ok {
		if _, ok := y.(*NumberValue); ok {
			return i.abstractEquals(NewNumber(StringToNumber(s.Value)), y)
		}
	}
	if b, ok := x.(*BooleanValue); ok {
		return i.abstractEquals(NewNumber(boolToFloat(b.Value)), y)
	}
	if b, ok := y.(*BooleanValue); ok {
		return i.abstractEquals(x, NewNumber(boolToFloat(b.Value)))
	}
	if IsObject(y) {
		switch x.(type) {
		case *NumberValue, *StringValue:
			prim := i.ToPrimitive(y, "")
			if !i.ok() {
				return false
			}
			return i.abstractEquals(x, prim)
		}
	}
	if IsObject(x) {
		switch y.(type) {
		case *NumberValue, *StringValue:
			prim := i.ToPrimitive(x, "")
			if !i.ok() {
				return false
			}
			return i.abstractEquals(prim, y)
		}
	}
	return false
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// cmpResult is the outcome of the abstract relational comparison, which is
// undefined (not false) when either side is NaN.
type cmpResult int

const (
	cmpFalse cmpResult = iota
	cmpTrue
	cmpUndefined
)

// compareLess evaluates x < y with leftFirst ordering already applied by
// the caller (operands arrive as values, not references).
func (i *Interpreter) compareLess(x, y Value) cmpResult {
	px := i.ToPrimitive(x, "Number")
	if !i.ok() {
		return cmpUndefined
	}
	py := i.ToPrimitive(y, "Number")
	if !i.ok() {
		return cmpUndefined
	}
	sx, xIsStr := px.(*StringValue)
	sy, yIsStr := py.(*StringValue)
	if xIsStr && yIsStr {
		if sx.Value < sy.Value {
			return cmpTrue
		}
		return cmpFalse
	}
	nx := i.ToNumber(px)
	ny := i.ToNumber(py)
	if math.IsNaN(nx) || math.IsNaN(ny) {
		return cmpUndefined
	}
	if nx < ny {
		return cmpTrue
	}
	return cmpFalse
}

// add implements the + operator: ToPrimitive both sides, then string
// concatenation when either is a string, numeric addition otherwise.
func (i *Interpreter) add(x, y Value) Value {
	px := i.ToPrimitive(x, "")
	if !i.ok() {
		return nil
	}
	py := i.ToPrimitive(y, "")
	if !i.ok() {
		return nil
	}
	_, xIsStr := px.(*StringValue)
	_, yIsStr := py.(*StringValue)
	if xIsStr || yIsStr {
		left := i.ToString(px)
		if !i.ok() {
			return nil
		}
		right := i.ToString(py)
		if !i.ok() {
			return nil
		}
		return NewString(left + right)
	}
	return NewNumber(i.ToNumber(px) + i.ToNumber(py))
}

// typeofValue implements the typeof operator over a dereferenced value.
func typeofValue(v Value) string {
	switch t := v.(type) {
	case *UndefinedValue:
		return "undefined"
	case *NullValue:
		return "object"
	case *BooleanValue:
		return "boolean"
	case *NumberValue:
		return "number"
	case *StringValue:
		return "string"
	case *Object:
		if t.Callable() {
			return "function"
		}
		return "object"
	}
	return "object"
}

// hasInstance implements `lhs instanceof rhs`: rhs must be callable, and
// the lhs prototype chain is searched for rhs.prototype.
func (i *Interpreter) hasInstance(lhs Value, rhs Value) bool {
	f, ok := rhs.(*Object)
	if !ok || !f.Callable() {
		i.throwTypeError("right-hand side of instanceof is not callable")
		return false
	}
	proto, ok := f.Get(i, "prototype").(*Object)
	if !ok {
		i.throwTypeError("function has non-object prototype in instanceof check")
		return false
	}
	obj, ok := lhs.(*Object)
	if !ok {
		return false
	}
	for {
		next, ok := obj.Prototype.(*Object)
		if !ok {
			return false
		}
		if next == proto {
			return true
		}
		obj = next
	}
}

// hasProperty implements `lhs in rhs`.
func (i *Interpreter) hasProperty(lhs Value, rhs Value) bool {
	obj, ok := rhs.(*Object)
	if !ok {
		i.throwTypeError("right-hand side of in is not an object")
		return false
	}
	name := i.ToString(lhs)
	if !i.ok() {
		return false
	}
	return obj.HasProperty(name)
}
