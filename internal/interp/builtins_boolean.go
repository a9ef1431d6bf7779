package interp

func (i *Interpreter) newBooleanObject(b bool) *Object {
	obj := NewObject(classBoolean, i.booleanProto)
	obj.PrimitiveValue = BoolOf(b)
	return obj
}

func (i *Interpreter) setupBooleanBuiltin() {
	i.booleanProto = NewObject(classBoolean, i.objectProto)
	i.booleanProto.PrimitiveValue = False

	ctor := i.newNativeFunction("Boolean", 1, func(_ *Interpreter, _ Value, args []Value) Value {
		return BoolOf(ToBoolean(arg(args, 0)))
	})
	ctor.NativeConstruct = func(i *Interpreter, _ Value, args []Value) Value {
		return i.newBooleanObject(ToBoolean(arg(args, 0)))
	}
	i.installConstructor("Boolean", ctor, i.booleanProto)

	i.defineMethod(i.booleanProto, "toString", 0, func(i *Interpreter, this Value, _ []Value) Value {
		v := i.booleanThisValue(this)
		if !i.ok() {
			return nil
		}
		if v.(*BooleanValue).Value {
			return NewString("true")
		}
		return NewString("false")
	})
	i.defineMethod(i.booleanProto, "valueOf", 0, func(i *Interpreter, this Value, _ []Value) Value {
		return i.booleanThisValue(this)
	})
}

func (i *Interpreter) booleanThisValue(this Value) Value {
	switch t := this.(type) {
	case *BooleanValue:
		return t
	case *Object:
		if t.Class == classBoolean && t.PrimitiveValue != nil {
			return t.PrimitiveValue
		}
	}
	i.throwTypeError("Boolean.prototype method called on incompatible receiver")
	return nil
}
