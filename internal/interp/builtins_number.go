package interp

import (
	"math"
	"strconv"
)

func (i *Interpreter) newNumberObject(f float64) *Object {
	obj := NewObject(classNumber, i.numberProto)
	obj.PrimitiveValue = NewNumber(f)
	return obj
}

func (i *Interpreter) setupNumberBuiltin() {
	i.numberProto = NewObject(classNumber, i.objectProto)
	i.numberProto.PrimitiveValue = NewNumber(0)

	ctor := i.newNativeFunction("Number", 1, func(i *Interpreter, _ Value, args []Value) Value {
		if len(args) == 0 {
			return NewNumber(0)
		}
		return NewNumber(i.ToNumber(args[0]))
	})
	ctor.NativeConstruct = func(i *Interpreter, _ Value, args []Value) Value {
		f := 0.0
		if len(args) > 0 {
			f = i.ToNumber(args[0])
			if !i.ok() {
				return nil
			}
		}
		return i.newNumberObject(f)
	}
	i.installConstructor("Number", ctor, i.numberProto)

	ctor.defineDataProp("MAX_VALUE", NewNumber(math.MaxFloat64), false, false, false)
	ctor.defineDataProp("MIN_VALUE", NewNumber(5e-324), false, false, false)
	ctor.defineDataProp("NaN", NewNumber(math.NaN()), false, false, false)
	ctor.defineDataProp("POSITIVE_INFINITY", NewNumber(math.Inf(1)), false, false, false)
	ctor.defineDataProp("NEGATIVE_INFINITY", NewNumber(math.Inf(-1)), false, false, false)

	i.defineMethod(i.numberProto, "toString", 1, func(i *Interpreter, this Value, args []Value) Value {
		v := i.numberThisValue(this)
		if !i.ok() {
			return nil
		}
		f := v.(*NumberValue).Value
		radixArg := arg(args, 0)
		if IsUndefined(radixArg) {
			return NewString(NumberToString(f))
		}
		radix := int(i.ToInteger(radixArg))
		if !i.ok() {
			return nil
		}
		if radix < 2 || radix > 36 {
			i.throwRangeError("toString() radix must be between 2 and 36")
			return nil
		}
		if radix == 10 {
			return NewString(NumberToString(f))
		}
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return NewString(strconv.FormatInt(int64(f), radix))
		}
		return NewString(NumberToString(f))
	})
	i.defineMethod(i.numberProto, "valueOf", 0, func(i *Interpreter, this Value, _ []Value) Value {
		return i.numberThisValue(this)
	})
}

func (i *Interpreter) numberThisValue(this Value) Value {
	switch t := this.(type) {
	case *NumberValue:
		return t
	case *Object:
		if t.Class == classNumber && t.PrimitiveValue != nil {
			return t.PrimitiveValue
		}
	}
	i.throwTypeError("Number.prototype method called on incompatible receiver")
	return nil
}
