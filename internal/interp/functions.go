package interp

import (
	"strconv"

	"github.com/escript/escript/internal/ast"
	"github.com/escript/escript/internal/lexer"
)

// newFunctionObject builds a function object for a literal, capturing scope
// as its [[Scope]]. Each function gets a fresh prototype object with a
// constructor back-reference, and a length reporting its formal count.
func (i *Interpreter) newFunctionObject(decl *ast.FunctionLiteral, scope *LexicalEnvironment, strict bool) *Object {
	fn := NewObject(classFunction, i.functionProto)
	fn.Function = &FunctionData{Decl: decl, Scope: scope, Strict: strict}
	fn.Constructable = true
	fn.defineDataProp("length", NewNumber(float64(len(decl.Params))), false, false, false)

	proto := NewObject(classObject, i.objectProto)
	proto.defineDataProp("constructor", fn, true, false, true)
	fn.defineDataProp("prototype", proto, true, false, false)
	return fn
}

// newNativeFunction wraps a Go function as a callable object.
func (i *Interpreter) newNativeFunction(name string, length int, fn NativeFunc) *Object {
	obj := NewObject(classFunction, i.functionProto)
	obj.Native = fn
	obj.defineDataProp("length", NewNumber(float64(length)), false, false, false)
	if name != "" {
		obj.defineDataProp("name", NewString(name), false, false, false)
	}
	return obj
}

// defineMethod installs a native function as a non-enumerable method.
func (i *Interpreter) defineMethod(obj *Object, name string, length int, fn NativeFunc) {
	obj.defineDataProp(name, i.newNativeFunction(name, length, fn), true, false, true)
}

// call implements [[Call]]. For interpreted functions it pushes a new
// execution context whose variable environment is a fresh declarative scope
// chained to the function's [[Scope]], instantiates declarations, and runs
// the body. A sloppy-mode callee sees the global object when this is null
// or undefined, and a boxed primitive otherwise.
func (i *Interpreter) call(f *Object, this Value, args []Value) Value {
	if f == nil || !f.Callable() {
		i.throwTypeError("value is not a function")
		return nil
	}
	if f.Native != nil {
		return f.Native(i, this, args)
	}

	data := f.Function
	if !data.Strict {
		switch {
		case IsUndefined(this) || IsNull(this):
			this = i.global
		case !IsObject(this):
			this = i.ToObject(this)
			if !i.ok() {
				return nil
			}
		}
	}

	localEnv := NewDeclarativeEnvironment(data.Scope)
	i.pushContext(&ExecutionContext{
		VariableEnv: localEnv,
		LexicalEnv:  localEnv,
		This:        this,
		Strict:      data.Strict,
	})
	defer i.popContext()

	i.instantiateDeclarationBindings(data.Decl.Body, f, args)
	if !i.ok() {
		return nil
	}

	c := i.EvalProgram(data.Decl.Body)
	switch c.Type {
	case ReturnCompletion:
		if c.Value == nil {
			return Undefined
		}
		return c.Value
	case ThrowCompletion:
		i.raiseValue(c.Value)
		return nil
	}
	return Undefined
}

// construct implements [[Construct]]: allocate a fresh object whose
// prototype is the callee's prototype property (falling back to
// Object.prototype), call the function with it as this, and keep the call
// result only when it is an object.
func (i *Interpreter) construct(v Value, args []Value) Value {
	f, ok := v.(*Object)
	if !ok || !f.Callable() {
		i.throwTypeError("value is not a constructor")
		return nil
	}
	if !f.Constructable {
		i.throwTypeError(i.functionName(f) + " is not a constructor")
		return nil
	}
	if f.NativeConstruct != nil {
		return f.NativeConstruct(i, Undefined, args)
	}

	obj := NewObject(classObject, i.objectProto)
	if proto, ok := f.Get(i, "prototype").(*Object); ok {
		obj.Prototype = proto
	}
	if !i.ok() {
		return nil
	}
	res := i.call(f, obj, args)
	if !i.ok() {
		return nil
	}
	if IsObject(res) {
		return res
	}
	return obj
}

func (i *Interpreter) functionName(f *Object) string {
	if f.Function != nil && f.Function.Decl.Name.Type == lexer.IDENT {
		return f.Function.Decl.Name.Text()
	}
	return "function"
}

// instantiateDeclarationBindings performs declaration binding
// instantiation on entry to global or function code: formals first, then
// function declarations, then the arguments object, then var declarations
// (which never overwrite an existing binding).
func (i *Interpreter) instantiateDeclarationBindings(prog *ast.Program, f *Object, args []Value) {
	ctx := i.ctx()
	env := ctx.VariableEnv.Record
	strict := ctx.Strict

	var paramNames []string
	if f != nil {
		for _, p := range f.Function.Decl.Params {
			paramNames = append(paramNames, p.Text())
		}
		for idx, name := range paramNames {
			var v Value = Undefined
			if idx < len(args) {
				v = args[idx]
			}
			if !env.HasBinding(name) {
				env.CreateMutableBinding(i, name, false)
			}
			env.SetMutableBinding(i, name, v, strict)
		}
	}

	for _, decl := range prog.Declarations {
		name := decl.Name.Text()
		fo := i.newFunctionObject(decl, ctx.VariableEnv, decl.Body.Strict || strict)
		if !env.HasBinding(name) {
			env.CreateMutableBinding(i, name, false)
		}
		env.SetMutableBinding(i, name, fo, strict)
	}

	if f != nil && !env.HasBinding("arguments") {
		argsObj := i.newArgumentsObject(f, paramNames, args, ctx.VariableEnv, strict)
		env.CreateMutableBinding(i, "arguments", false)
		env.SetMutableBinding(i, "arguments", argsObj, false)
	}

	for _, name := range collectVarNames(prog) {
		if !env.HasBinding(name) {
			env.CreateMutableBinding(i, name, false)
			env.SetMutableBinding(i, name, Undefined, strict)
		}
	}
}

// newArgumentsObject builds the arguments object. In sloppy mode the
// indexed properties alias the formal parameter bindings through accessor
// pairs over the variable environment; in strict mode they are plain
// copies and caller/callee poison-pill accessors throw.
func (i *Interpreter) newArgumentsObject(f *Object, paramNames []string, args []Value, env *LexicalEnvironment, strict bool) *Object {
	obj := NewObject(classArguments, i.objectProto)
	obj.defineDataProp("length", NewNumber(float64(len(args))), true, false, true)

	for idx, arg := range args {
		name := strconv.Itoa(idx)
		if !strict && idx < len(paramNames) {
			param := paramNames[idx]
			record := env.Record
			getter := i.newNativeFunction("", 0, func(i *Interpreter, _ Value, _ []Value) Value {
				return record.GetBindingValue(i, param, false)
			})
			setter := i.newNativeFunction("", 1, func(i *Interpreter, _ Value, vals []Value) Value {
				v := Value(Undefined)
				if len(vals) > 0 {
					v = vals[0]
				}
				record.SetMutableBinding(i, param, v, false)
				return Undefined
			})
			obj.setOwn(name, AccessorDescriptor(getter, setter, false, true))
		} else {
			obj.defineDataProp(name, arg, true, false, true)
		}
	}

	if strict {
		poison := i.newNativeFunction("", 0, func(i *Interpreter, _ Value, _ []Value) Value {
			i.throwTypeError("'caller' and 'callee' are restricted in strict mode")
			return nil
		})
		obj.setOwn("caller", AccessorDescriptor(poison, poison, false, false))
		obj.setOwn("callee", AccessorDescriptor(poison, poison, false, false))
	} else {
		obj.defineDataProp("callee", f, true, false, true)
	}
	return obj
}

// collectVarNames gathers every var-declared name in a statement tree,
// in textual order, without descending into nested function literals.
func collectVarNames(prog *ast.Program) []string {
	var names []string
	var walk func(stmt ast.Statement)
	walk = func(stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.VarStatement:
			for _, d := range s.Decls {
				names = append(names, d.Name.Text())
			}
		case *ast.BlockStatement:
			for _, inner := range s.Statements {
				walk(inner)
			}
		case *ast.IfStatement:
			walk(s.Then)
			if s.Else != nil {
				walk(s.Else)
			}
		case *ast.DoWhileStatement:
			walk(s.Body)
		case *ast.WhileStatement:
			walk(s.Body)
		case *ast.ForStatement:
			for _, init := range s.Init {
				if d, ok := init.(*ast.VarDecl); ok {
					names = append(names, d.Name.Text())
				}
			}
			walk(s.Body)
		case *ast.ForInStatement:
			if d, ok := s.Left.(*ast.VarDecl); ok {
				names = append(names, d.Name.Text())
			}
			walk(s.Body)
		case *ast.WithStatement:
			walk(s.Body)
		case *ast.SwitchStatement:
			for _, clause := range s.Before {
				for _, inner := range clause.Statements {
					walk(inner)
				}
			}
			if s.Default != nil {
				for _, inner := range s.Default.Statements {
					walk(inner)
				}
			}
			for _, clause := range s.After {
				for _, inner := range clause.Statements {
					walk(inner)
				}
			}
		case *ast.TryStatement:
			walk(s.Block)
			if s.Catch != nil {
				walk(s.Catch)
			}
			if s.Finally != nil {
				walk(s.Finally)
			}
		case *ast.LabelledStatement:
			walk(s.Stmt)
		}
	}
	for _, stmt := range prog.Statements {
		walk(stmt)
	}
	return names
}
