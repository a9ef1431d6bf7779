package interp

func (i *Interpreter) setupObjectBuiltin() {
	ctor := i.newNativeFunction("Object", 1, func(i *Interpreter, _ Value, args []Value) Value {
		v := arg(args, 0)
		if IsUndefined(v) || IsNull(v) {
			return NewObject(classObject, i.objectProto)
		}
		return i.ToObject(v)
	})
	ctor.NativeConstruct = func(i *Interpreter, _ Value, args []Value) Value {
		v := arg(args, 0)
		switch v.(type) {
		case *Object:
			return v
		case *BooleanValue, *NumberValue, *StringValue:
			return i.ToObject(v)
		}
		return NewObject(classObject, i.objectProto)
	}
	i.installConstructor("Object", ctor, i.objectProto)

	i.defineMethod(i.objectProto, "toString", 0, func(i *Interpreter, this Value, _ []Value) Value {
		o := i.ToObject(this)
		if !i.ok() {
			return nil
		}
		return NewString("[object " + o.Class + "]")
	})
	i.defineMethod(i.objectProto, "toLocaleString", 0, func(i *Interpreter, this Value, _ []Value) Value {
		o := i.ToObject(this)
		if !i.ok() {
			return nil
		}
		ts := o.Get(i, "toString")
		if !i.ok() {
			return nil
		}
		fn, ok := ts.(*Object)
		if !ok || !fn.Callable() {
			i.throwTypeError("toString is not a function")
			return nil
		}
		return i.call(fn, o, nil)
	})
	i.defineMethod(i.objectProto, "valueOf", 0, func(i *Interpreter, this Value, _ []Value) Value {
		return i.ToObject(this)
	})
	i.defineMethod(i.objectProto, "hasOwnProperty", 1, func(i *Interpreter, this Value, args []Value) Value {
		name := i.ToString(arg(args, 0))
		if !i.ok() {
			return nil
		}
		o := i.ToObject(this)
		if !i.ok() {
			return nil
		}
		return BoolOf(o.GetOwnProperty(name) != nil)
	})
	i.defineMethod(i.objectProto, "isPrototypeOf", 1, func(i *Interpreter, this Value, args []Value) Value {
		v, ok := arg(args, 0).(*Object)
		if !ok {
			return False
		}
		o := i.ToObject(this)
		if !i.ok() {
			return nil
		}
		for {
			proto, ok := v.Prototype.(*Object)
			if !ok {
				return False
			}
			if proto == o {
				return True
			}
			v = proto
		}
	})
	i.defineMethod(i.objectProto, "propertyIsEnumerable", 1, func(i *Interpreter, this Value, args []Value) Value {
		name := i.ToString(arg(args, 0))
		if !i.ok() {
			return nil
		}
		o := i.ToObject(this)
		if !i.ok() {
			return nil
		}
		d := o.GetOwnProperty(name)
		return BoolOf(d != nil && d.Enumerable)
	})
}
