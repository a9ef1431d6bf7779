package interp

import "math"

// setupBuiltins creates the global object and installs the built-in
// library. The minimal set mirrors what programs in the test suite touch:
// Object, Function, Array, String, Number, Boolean and the Error family.
func (i *Interpreter) setupBuiltins() {
	i.objectProto = NewObject(classObject, Null)
	i.functionProto = NewObject(classFunction, i.objectProto)
	i.functionProto.Native = func(_ *Interpreter, _ Value, _ []Value) Value {
		return Undefined
	}

	i.global = NewObject(classGlobal, i.objectProto)
	i.global.defineDataProp("NaN", NewNumber(math.NaN()), true, false, false)
	i.global.defineDataProp("Infinity", NewNumber(math.Inf(1)), true, false, false)
	i.global.defineDataProp("undefined", Undefined, true, false, false)

	// eval exists so the name resolves (and so strict-mode assignment
	// checks have something to protect), but indirect evaluation is not
	// supported.
	evalFn := i.newNativeFunction("eval", 1, func(i *Interpreter, _ Value, _ []Value) Value {
		i.raise(KindEvalError, "eval is not supported")
		return nil
	})
	i.global.defineDataProp("eval", evalFn, true, false, true)

	i.setupObjectBuiltin()
	i.setupFunctionBuiltin()
	i.setupArrayBuiltin()
	i.setupStringBuiltin()
	i.setupNumberBuiltin()
	i.setupBooleanBuiltin()
	i.setupErrorBuiltin()
}

// installConstructor wires a constructor and its prototype together and
// publishes the constructor on the global object.
func (i *Interpreter) installConstructor(name string, ctor, proto *Object) {
	ctor.Constructable = true
	ctor.defineDataProp("prototype", proto, false, false, false)
	proto.defineDataProp("constructor", ctor, true, false, true)
	i.global.defineDataProp(name, ctor, true, false, true)
}

// arg returns the nth argument or undefined.
func arg(args []Value, n int) Value {
	if n < len(args) {
		return args[n]
	}
	return Undefined
}
