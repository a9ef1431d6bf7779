package interp

// newErrorObject allocates an Error instance of the constructor matching
// kind. Engine-raised errors (ReferenceError from an unresolvable
// reference, TypeError from a bad call) surface to programs through this.
func (i *Interpreter) newErrorObject(kind ErrorKind, message string) *Object {
	proto := i.errorProtos[kind]
	if proto == nil {
		proto = i.errorProtos[KindError]
	}
	obj := NewObject(classError, proto)
	if message != "" {
		obj.defineDataProp("message", NewString(message), true, false, true)
	}
	return obj
}

func (i *Interpreter) setupErrorBuiltin() {
	baseProto := NewObject(classError, i.objectProto)
	i.errorProtos[KindError] = baseProto
	i.installErrorConstructor("Error", KindError, baseProto)

	baseProto.defineDataProp("name", NewString("Error"), true, false, true)
	baseProto.defineDataProp("message", NewString(""), true, false, true)
	i.defineMethod(baseProto, "toString", 0, func(i *Interpreter, this Value, _ []Value) Value {
		o, ok := this.(*Object)
		if !ok {
			i.throwTypeError("Error.prototype.toString requires an object")
			return nil
		}
		name := i.ToString(o.Get(i, "name"))
		if !i.ok() {
			return nil
		}
		msg := i.ToString(o.Get(i, "message"))
		if !i.ok() {
			return nil
		}
		if msg == "" {
			return NewString(name)
		}
		return NewString(name + ": " + msg)
	})

	natives := []struct {
		name string
		kind ErrorKind
	}{
		{"EvalError", KindEvalError},
		{"RangeError", KindRangeError},
		{"ReferenceError", KindReferenceError},
		{"SyntaxError", KindSyntaxError},
		{"TypeError", KindTypeError},
		{"URIError", KindURIError},
	}
	for _, n := range natives {
		proto := NewObject(classError, baseProto)
		proto.defineDataProp("name", NewString(n.name), true, false, true)
		proto.defineDataProp("message", NewString(""), true, false, true)
		i.errorProtos[n.kind] = proto
		i.installErrorConstructor(n.name, n.kind, proto)
	}
}

func (i *Interpreter) installErrorConstructor(name string, kind ErrorKind, proto *Object) {
	build := func(i *Interpreter, _ Value, args []Value) Value {
		obj := NewObject(classError, proto)
		if msg := arg(args, 0); !IsUndefined(msg) {
			s := i.ToString(msg)
			if !i.ok() {
				return nil
			}
			obj.defineDataProp("message", NewString(s), true, false, true)
		}
		return obj
	}
	ctor := i.newNativeFunction(name, 1, build)
	ctor.NativeConstruct = build
	i.installConstructor(name, ctor, proto)
}
