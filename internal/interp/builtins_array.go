package interp

import (
	"math"
	"strconv"
	"strings"
)

// newArrayObject allocates an Array-class object with the given length.
func (i *Interpreter) newArrayObject(length uint32) *Object {
	obj := NewObject(classArray, i.arrayProto)
	obj.defineDataProp("length", NewNumber(float64(length)), true, false, false)
	return obj
}

// toArrayLength validates a prospective length value: ToUint32 must
// round-trip through ToNumber exactly.
func (i *Interpreter) toArrayLength(v Value) (uint32, bool) {
	n := i.ToNumber(v)
	if !i.ok() {
		return 0, false
	}
	u := i.ToUint32(NewNumber(n))
	if float64(u) != n {
		return 0, false
	}
	return u, true
}

func (i *Interpreter) setupArrayBuiltin() {
	i.arrayProto = NewObject(classArray, i.objectProto)
	i.arrayProto.defineDataProp("length", NewNumber(0), true, false, false)

	build := func(i *Interpreter, _ Value, args []Value) Value {
		if len(args) == 1 {
			if n, ok := args[0].(*NumberValue); ok {
				length, valid := i.toArrayLength(n)
				if !valid {
					i.throwRangeError("invalid array length")
					return nil
				}
				return i.newArrayObject(length)
			}
		}
		arr := i.newArrayObject(0)
		for idx, v := range args {
			arr.DefineOwnProperty(i, strconv.Itoa(idx), DataDescriptor(v, true, true, true), false)
		}
		return arr
	}
	ctor := i.newNativeFunction("Array", 1, build)
	ctor.NativeConstruct = build
	i.installConstructor("Array", ctor, i.arrayProto)

	i.defineMethod(i.arrayProto, "push", 1, func(i *Interpreter, this Value, args []Value) Value {
		o := i.ToObject(this)
		if !i.ok() {
			return nil
		}
		n := i.ToUint32(o.Get(i, "length"))
		if !i.ok() {
			return nil
		}
		for _, v := range args {
			o.Put(i, strconv.FormatUint(uint64(n), 10), v, true)
			if !i.ok() {
				return nil
			}
			n++
		}
		length := NewNumber(float64(n))
		o.Put(i, "length", length, true)
		if !i.ok() {
			return nil
		}
		return length
	})
	i.defineMethod(i.arrayProto, "pop", 0, func(i *Interpreter, this Value, _ []Value) Value {
		o := i.ToObject(this)
		if !i.ok() {
			return nil
		}
		n := i.ToUint32(o.Get(i, "length"))
		if !i.ok() {
			return nil
		}
		if n == 0 {
			o.Put(i, "length", NewNumber(0), true)
			return Undefined
		}
		idx := strconv.FormatUint(uint64(n-1), 10)
		v := o.Get(i, idx)
		if !i.ok() {
			return nil
		}
		o.Delete(i, idx, true)
		o.Put(i, "length", NewNumber(float64(n-1)), true)
		return v
	})
	i.defineMethod(i.arrayProto, "join", 1, func(i *Interpreter, this Value, args []Value) Value {
		o := i.ToObject(this)
		if !i.ok() {
			return nil
		}
		n := i.ToUint32(o.Get(i, "length"))
		if !i.ok() {
			return nil
		}
		sep := ","
		if !IsUndefined(arg(args, 0)) {
			sep = i.ToString(arg(args, 0))
			if !i.ok() {
				return nil
			}
		}
		var sb strings.Builder
		for idx := uint32(0); idx < n; idx++ {
			if idx > 0 {
				sb.WriteString(sep)
			}
			v := o.Get(i, strconv.FormatUint(uint64(idx), 10))
			if !i.ok() {
				return nil
			}
			if IsUndefined(v) || IsNull(v) {
				continue
			}
			s := i.ToString(v)
			if !i.ok() {
				return nil
			}
			sb.WriteString(s)
		}
		return NewString(sb.String())
	})
	i.defineMethod(i.arrayProto, "toString", 0, func(i *Interpreter, this Value, _ []Value) Value {
		o := i.ToObject(this)
		if !i.ok() {
			return nil
		}
		join := o.Get(i, "join")
		if fn, ok := join.(*Object); ok && fn.Callable() {
			return i.call(fn, o, nil)
		}
		return NewString("[object " + o.Class + "]")
	})
	i.defineMethod(i.arrayProto, "indexOf", 1, func(i *Interpreter, this Value, args []Value) Value {
		o := i.ToObject(this)
		if !i.ok() {
			return nil
		}
		n := i.ToUint32(o.Get(i, "length"))
		if !i.ok() {
			return nil
		}
		search := arg(args, 0)
		from := uint32(0)
		if len(args) > 1 {
			f := i.ToInteger(args[1])
			if f < 0 {
				f += float64(n)
			}
			if f > 0 {
				from = uint32(math.Min(f, float64(n)))
			}
		}
		for idx := from; idx < n; idx++ {
			name := strconv.FormatUint(uint64(idx), 10)
			if o.GetProperty(name) == nil {
				continue
			}
			v := o.Get(i, name)
			if !i.ok() {
				return nil
			}
			if StrictEquals(v, search) {
				return NewNumber(float64(idx))
			}
		}
		return NewNumber(-1)
	})
}
