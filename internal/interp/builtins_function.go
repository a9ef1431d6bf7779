package interp

import (
	"strconv"
	"strings"

	"github.com/escript/escript/internal/ast"
	"github.com/escript/escript/internal/parser"
)

func (i *Interpreter) setupFunctionBuiltin() {
	// new Function(p1, ..., pn, body) compiles at runtime by parsing a
	// synthesized declaration; the resulting function closes over the
	// global environment.
	compile := func(i *Interpreter, _ Value, args []Value) Value {
		var params, body string
		if len(args) > 0 {
			var parts []string
			for _, a := range args[:len(args)-1] {
				s := i.ToString(a)
				if !i.ok() {
					return nil
				}
				parts = append(parts, s)
			}
			params = strings.Join(parts, ",")
			body = i.ToString(args[len(args)-1])
			if !i.ok() {
				return nil
			}
		}

		src := "function anonymous(" + params + "\n) {\n" + body + "\n}"
		p := parser.NewFromString(src)
		node := p.ParseProgram()
		prog, ok := node.(*ast.Program)
		if !ok || len(prog.Declarations) != 1 {
			i.throwSyntaxError("invalid function body")
			return nil
		}
		decl := prog.Declarations[0]
		return i.newFunctionObject(decl, i.globalEnv, decl.Body.Strict)
	}

	ctor := i.newNativeFunction("Function", 1, compile)
	ctor.NativeConstruct = compile
	i.installConstructor("Function", ctor, i.functionProto)

	i.defineMethod(i.functionProto, "toString", 0, func(i *Interpreter, this Value, _ []Value) Value {
		f, ok := this.(*Object)
		if !ok || !f.Callable() {
			i.throwTypeError("Function.prototype.toString requires a function")
			return nil
		}
		if f.Function != nil {
			return NewString(f.Function.Decl.Src.String())
		}
		return NewString("function " + i.functionName(f) + "() { [native code] }")
	})
	i.defineMethod(i.functionProto, "call", 1, func(i *Interpreter, this Value, args []Value) Value {
		f, ok := this.(*Object)
		if !ok || !f.Callable() {
			i.throwTypeError("Function.prototype.call requires a function")
			return nil
		}
		var rest []Value
		if len(args) > 1 {
			rest = args[1:]
		}
		return i.call(f, arg(args, 0), rest)
	})
	i.defineMethod(i.functionProto, "apply", 2, func(i *Interpreter, this Value, args []Value) Value {
		f, ok := this.(*Object)
		if !ok || !f.Callable() {
			i.throwTypeError("Function.prototype.apply requires a function")
			return nil
		}
		argArray := arg(args, 1)
		var callArgs []Value
		switch t := argArray.(type) {
		case *UndefinedValue, *NullValue:
		case *Object:
			n := i.ToUint32(t.Get(i, "length"))
			if !i.ok() {
				return nil
			}
			for idx := uint32(0); idx < n; idx++ {
				callArgs = append(callArgs, t.Get(i, strconv.FormatUint(uint64(idx), 10)))
				if !i.ok() {
					return nil
				}
			}
		default:
			i.throwTypeError("second argument to apply must be an array")
			return nil
		}
		return i.call(f, arg(args, 0), callArgs)
	})
}
