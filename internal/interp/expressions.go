package interp

import (
	"math"
	"strconv"

	"github.com/escript/escript/internal/ast"
	"github.com/escript/escript/internal/lexer"
)

// evalExpression evaluates an expression node. The result may be a
// *Reference; callers that need a plain value apply GetValue. A nil result
// means the error cell is set.
func (i *Interpreter) evalExpression(expr ast.Expression) Value {
	switch e := expr.(type) {
	case *ast.ThisExpression:
		return i.ctx().This
	case *ast.Identifier:
		return i.evalIdentifier(e)
	case *ast.NullLiteral:
		return Null
	case *ast.BooleanLiteral:
		return BoolOf(e.Value())
	case *ast.NumberLiteral:
		return NewNumber(decodeNumberLiteral(e.Source()))
	case *ast.StringLiteral:
		return NewString(DecodeStringLiteral(e.Source()))
	case *ast.RegexLiteral:
		return i.evalRegexLiteral(e)
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(e)
	case *ast.ObjectLiteral:
		return i.evalObjectLiteral(e)
	case *ast.ParenExpression:
		return i.evalExpression(e.Expr)
	case *ast.FunctionLiteral:
		return i.evalFunctionLiteral(e)
	case *ast.LHSExpression:
		return i.evalLHSExpression(e)
	case *ast.BinaryExpression:
		return i.evalBinaryExpression(e)
	case *ast.UnaryExpression:
		return i.evalUnaryExpression(e)
	case *ast.ConditionalExpression:
		return i.evalConditionalExpression(e)
	case *ast.SequenceExpression:
		return i.evalSequenceExpression(e)
	}
	i.throwSyntaxError("unexpected expression node")
	return nil
}

// evalIdentifier resolves a name against the running lexical environment,
// producing a Reference.
func (i *Interpreter) evalIdentifier(e *ast.Identifier) Value {
	ctx := i.ctx()
	return GetIdentifierReference(ctx.LexicalEnv, e.Name(), ctx.Strict)
}

// decodeNumberLiteral converts a numeric literal's source slice into its
// double value. The lexer validated the shape, so only the hex/decimal
// split remains.
func decodeNumberLiteral(src lexer.Source) float64 {
	text := src.String()
	if len(text) > 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		val := 0.0
		for j := 2; j < len(text); j++ {
			val = val*16 + float64(lexer.DigitValue(uint16(text[j])))
		}
		return val
	}
	f, _ := strconv.ParseFloat(text, 64)
	return f
}

// DecodeStringLiteral converts a string literal's source slice, including
// its quotes, into the string value: escape sequences are decoded and line
// continuations vanish.
func DecodeStringLiteral(src lexer.Source) string {
	body := src[1 : len(src)-1]
	out := make(lexer.Source, 0, len(body))
	for pos := 0; pos < len(body); pos++ {
		c := body[pos]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		pos++
		if pos >= len(body) {
			break
		}
		switch body[pos] {
		case 'b':
			out = append(out, '\b')
		case 't':
			out = append(out, '\t')
		case 'n':
			out = append(out, '\n')
		case 'v':
			out = append(out, 0x0B)
		case 'f':
			out = append(out, 0x0C)
		case 'r':
			out = append(out, '\r')
		case 'x':
			var hex uint16
			for j := 0; j < 2 && pos+1 < len(body); j++ {
				pos++
				hex = hex*16 + uint16(lexer.DigitValue(body[pos]))
			}
			out = append(out, hex)
		case 'u':
			var hex uint16
			for j := 0; j < 4 && pos+1 < len(body); j++ {
				pos++
				hex = hex*16 + uint16(lexer.DigitValue(body[pos]))
			}
			out = append(out, hex)
		case '0':
			out = append(out, 0)
		default:
			if IsLineTerminatorUnit(body[pos]) {
				// Line continuation produces nothing. Skip the LF of a
				// CR LF pair.
				if body[pos] == '\r' && pos+1 < len(body) && body[pos+1] == '\n' {
					pos++
				}
				continue
			}
			out = append(out, body[pos])
		}
	}
	return out.String()
}

// IsLineTerminatorUnit re-exports the lexer predicate for literal decoding.
func IsLineTerminatorUnit(c uint16) bool { return lexer.IsLineTerminator(c) }

// evalRegexLiteral produces the RegExp stub object: the literal parses and
// carries its source and flags, but there is no execution engine behind it.
func (i *Interpreter) evalRegexLiteral(e *ast.RegexLiteral) Value {
	src := e.Source()
	end := len(src) - 1
	for src[end] != '/' {
		end--
	}
	body := src[1:end].String()
	flags := src[end+1:].String()

	obj := NewObject(classRegExp, i.objectProto)
	obj.defineDataProp("source", NewString(body), false, false, false)
	obj.defineDataProp("global", BoolOf(containsFlag(flags, 'g')), false, false, false)
	obj.defineDataProp("ignoreCase", BoolOf(containsFlag(flags, 'i')), false, false, false)
	obj.defineDataProp("multiline", BoolOf(containsFlag(flags, 'm')), false, false, false)
	obj.defineDataProp("lastIndex", NewNumber(0), true, false, false)
	return obj
}

func containsFlag(flags string, f byte) bool {
	for j := 0; j < len(flags); j++ {
		if flags[j] == f {
			return true
		}
	}
	return false
}

// evalArrayLiteral builds an Array object, leaving holes for elided
// positions.
func (i *Interpreter) evalArrayLiteral(e *ast.ArrayLiteral) Value {
	arr := i.newArrayObject(0)
	for _, el := range e.Elements {
		v := i.GetValue(i.evalExpression(el.Value))
		if !i.ok() {
			return nil
		}
		arr.DefineOwnProperty(i, strconv.Itoa(el.Index), DataDescriptor(v, true, true, true), false)
	}
	arr.Put(i, "length", NewNumber(float64(e.Length)), false)
	return arr
}

// evalObjectLiteral builds an object from a literal. Property definitions
// run in source order through DefineOwnProperty, so duplicate keys resolve
// to the last definition of a given kind and a getter/setter pair for one
// key merges into a single accessor property.
func (i *Interpreter) evalObjectLiteral(e *ast.ObjectLiteral) Value {
	obj := NewObject(classObject, i.objectProto)
	for _, prop := range e.Properties {
		name := i.propertyKeyString(prop.Key)

		switch prop.Kind {
		case ast.PropertyNormal:
			v := i.GetValue(i.evalExpression(prop.Value))
			if !i.ok() {
				return nil
			}
			obj.DefineOwnProperty(i, name, DataDescriptor(v, true, true, true), false)
		case ast.PropertyGet:
			fn := i.evalFunctionLiteral(prop.Value.(*ast.FunctionLiteral))
			desc := &PropertyDescriptor{
				Get: fn, HasGet: true,
				Enumerable: true, HasEnumerable: true,
				Configurable: true, HasConfigurable: true,
			}
			obj.DefineOwnProperty(i, name, desc, false)
		case ast.PropertySet:
			fn := i.evalFunctionLiteral(prop.Value.(*ast.FunctionLiteral))
			desc := &PropertyDescriptor{
				Set: fn, HasSet: true,
				Enumerable: true, HasEnumerable: true,
				Configurable: true, HasConfigurable: true,
			}
			obj.DefineOwnProperty(i, name, desc, false)
		}
	}
	return obj
}

// propertyKeyString converts an object literal key token to the property
// name: identifier spellings stay as written, string literals decode their
// escapes, numeric literals normalize through the number-to-string rules.
func (i *Interpreter) propertyKeyString(key lexer.Token) string {
	switch key.Type {
	case lexer.STRING:
		return DecodeStringLiteral(key.Src)
	case lexer.NUMBER:
		return NumberToString(decodeNumberLiteral(key.Src))
	default:
		return key.Text()
	}
}

// evalFunctionLiteral creates the function object for a literal in
// expression position. A named function expression can refer to itself, so
// its scope gains an intermediate environment holding an immutable binding
// of the name to the closure.
func (i *Interpreter) evalFunctionLiteral(e *ast.FunctionLiteral) Value {
	ctx := i.ctx()
	strict := e.Body.Strict || ctx.Strict
	if e.Name.Type == lexer.IDENT {
		funcEnv := NewDeclarativeEnvironment(ctx.LexicalEnv)
		fo := i.newFunctionObject(e, funcEnv, strict)
		funcEnv.Record.(*DeclarativeRecord).CreateImmutableBinding(e.Name.Text(), fo)
		return fo
	}
	return i.newFunctionObject(e, ctx.LexicalEnv, strict)
}

// evalLHSExpression replays the postfix steps of a LeftHandSideExpression
// in source order. The first NewCount call steps run as construct
// operations; any remaining new prefixes apply argument-less at the end
// (`new f` without parentheses).
func (i *Interpreter) evalLHSExpression(e *ast.LHSExpression) Value {
	val := i.evalExpression(e.Base)
	if !i.ok() {
		return nil
	}
	newCount := e.NewCount

	for _, pf := range e.Postfix {
		switch pf.Kind {
		case ast.PostfixCall:
			callee := val
			f := i.GetValue(callee)
			if !i.ok() {
				return nil
			}
			args := i.evalArgumentList(pf.Args)
			if !i.ok() {
				return nil
			}
			if newCount > 0 {
				newCount--
				val = i.construct(f, args)
			} else {
				val = i.evalCall(callee, f, args)
			}
		case ast.PostfixIndex:
			base := i.GetValue(val)
			if !i.ok() {
				return nil
			}
			i.CheckObjectCoercible(base)
			if !i.ok() {
				return nil
			}
			idx := i.GetValue(i.evalExpression(pf.Index))
			if !i.ok() {
				return nil
			}
			name := i.ToString(idx)
			if !i.ok() {
				return nil
			}
			val = &Reference{Base: base, Name: name, Strict: i.ctx().Strict}
		case ast.PostfixProp:
			base := i.GetValue(val)
			if !i.ok() {
				return nil
			}
			i.CheckObjectCoercible(base)
			if !i.ok() {
				return nil
			}
			val = &Reference{Base: base, Name: pf.Prop.Text(), Strict: i.ctx().Strict}
		}
		if !i.ok() {
			return nil
		}
	}

	for newCount > 0 {
		newCount--
		f := i.GetValue(val)
		if !i.ok() {
			return nil
		}
		val = i.construct(f, nil)
		if !i.ok() {
			return nil
		}
	}
	return val
}

// evalArgumentList evaluates arguments left to right, dereferencing each.
func (i *Interpreter) evalArgumentList(args *ast.Arguments) []Value {
	var out []Value
	for _, a := range args.List {
		v := i.GetValue(i.evalExpression(a))
		if !i.ok() {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// evalCall invokes f. The this value comes from the callee reference: the
// base of a property reference, the record's implicit this for an
// environment reference, undefined otherwise.
func (i *Interpreter) evalCall(callee Value, f Value, args []Value) Value {
	obj, ok := f.(*Object)
	if !ok || !obj.Callable() {
		name := "value"
		if ref, isRef := callee.(*Reference); isRef {
			name = ref.Name
		}
		i.throwTypeError(name + " is not a function")
		return nil
	}

	var this Value = Undefined
	if ref, isRef := callee.(*Reference); isRef {
		if ref.IsPropertyReference() {
			this = ref.Base
		} else if rec, isRec := ref.Base.(EnvironmentRecord); isRec {
			this = rec.ImplicitThisValue()
		}
	}
	return i.call(obj, this, args)
}

// evalBinaryExpression covers assignment, the short-circuit logicals and
// the abstract binary operators.
func (i *Interpreter) evalBinaryExpression(e *ast.BinaryExpression) Value {
	if e.Op.IsAssignmentOperator() {
		return i.evalAssignment(e)
	}

	switch e.Op.Type {
	case lexer.AND:
		lval := i.GetValue(i.evalExpression(e.Left))
		if !i.ok() {
			return nil
		}
		if !ToBoolean(lval) {
			return lval
		}
		return i.GetValue(i.evalExpression(e.Right))
	case lexer.OR:
		lval := i.GetValue(i.evalExpression(e.Left))
		if !i.ok() {
			return nil
		}
		if ToBoolean(lval) {
			return lval
		}
		return i.GetValue(i.evalExpression(e.Right))
	}

	lval := i.GetValue(i.evalExpression(e.Left))
	if !i.ok() {
		return nil
	}
	rval := i.GetValue(i.evalExpression(e.Right))
	if !i.ok() {
		return nil
	}
	return i.applyBinary(e.Op.Type, lval, rval)
}

// evalAssignment implements simple and compound assignment. Assigning to
// eval or arguments through an environment record is a SyntaxError in
// strict mode.
func (i *Interpreter) evalAssignment(e *ast.BinaryExpression) Value {
	lref := i.evalExpression(e.Left)
	if !i.ok() {
		return nil
	}

	var result Value
	if e.Op.Type == lexer.ASSIGN {
		rval := i.GetValue(i.evalExpression(e.Right))
		if !i.ok() {
			return nil
		}
		result = rval
	} else {
		lval := i.GetValue(lref)
		if !i.ok() {
			return nil
		}
		rval := i.GetValue(i.evalExpression(e.Right))
		if !i.ok() {
			return nil
		}
		result = i.applyBinary(compoundBase(e.Op.Type), lval, rval)
		if !i.ok() {
			return nil
		}
	}

	if ref, ok := lref.(*Reference); ok {
		if ref.Strict && (ref.Name == "eval" || ref.Name == "arguments") {
			if _, isRec := ref.Base.(EnvironmentRecord); isRec || ref.IsUnresolvable() {
				i.throwSyntaxError("cannot assign to '" + ref.Name + "' in strict mode")
				return nil
			}
		}
	}
	i.PutValue(lref, result)
	if !i.ok() {
		return nil
	}
	return result
}

// compoundBase maps a compound assignment operator to its binary operator.
func compoundBase(tt lexer.TokenType) lexer.TokenType {
	switch tt {
	case lexer.ADD_ASSIGN:
		return lexer.ADD
	case lexer.SUB_ASSIGN:
		return lexer.SUB
	case lexer.MUL_ASSIGN:
		return lexer.MUL
	case lexer.MOD_ASSIGN:
		return lexer.MOD
	case lexer.DIV_ASSIGN:
		return lexer.DIV
	case lexer.SHL_ASSIGN:
		return lexer.SHL
	case lexer.SHR_ASSIGN:
		return lexer.SHR
	case lexer.USHR_ASSIGN:
		return lexer.USHR
	case lexer.AND_ASSIGN:
		return lexer.BIT_AND
	case lexer.OR_ASSIGN:
		return lexer.BIT_OR
	case lexer.XOR_ASSIGN:
		return lexer.BIT_XOR
	}
	return tt
}

// applyBinary applies an abstract binary operator to two plain values.
func (i *Interpreter) applyBinary(tt lexer.TokenType, x, y Value) Value {
	switch tt {
	case lexer.ADD:
		return i.add(x, y)
	case lexer.SUB:
		return NewNumber(i.ToNumber(x) - i.ToNumber(y))
	case lexer.MUL:
		return NewNumber(i.ToNumber(x) * i.ToNumber(y))
	case lexer.DIV:
		return NewNumber(i.ToNumber(x) / i.ToNumber(y))
	case lexer.MOD:
		return NewNumber(math.Mod(i.ToNumber(x), i.ToNumber(y)))
	case lexer.EQ:
		return BoolOf(i.abstractEquals(x, y))
	case lexer.NE:
		return BoolOf(!i.abstractEquals(x, y))
	case lexer.EQ_STRICT:
		return BoolOf(StrictEquals(x, y))
	case lexer.NE_STRICT:
		return BoolOf(!StrictEquals(x, y))
	case lexer.LESS:
		return BoolOf(i.compareLess(x, y) == cmpTrue)
	case lexer.GREATER:
		return BoolOf(i.compareLess(y, x) == cmpTrue)
	case lexer.LESS_EQ:
		return BoolOf(i.compareLess(y, x) == cmpFalse)
	case lexer.GREATER_EQ:
		return BoolOf(i.compareLess(x, y) == cmpFalse)
	case lexer.SHL:
		return NewNumber(float64(i.ToInt32(x) << (i.ToUint32(y) & 31)))
	case lexer.SHR:
		return NewNumber(float64(i.ToInt32(x) >> (i.ToUint32(y) & 31)))
	case lexer.USHR:
		return NewNumber(float64(i.ToUint32(x) >> (i.ToUint32(y) & 31)))
	case lexer.BIT_AND:
		return NewNumber(float64(i.ToInt32(x) & i.ToInt32(y)))
	case lexer.BIT_OR:
		return NewNumber(float64(i.ToInt32(x) | i.ToInt32(y)))
	case lexer.BIT_XOR:
		return NewNumber(float64(i.ToInt32(x) ^ i.ToInt32(y)))
	case lexer.INSTANCEOF:
		return BoolOf(i.hasInstance(x, y))
	case lexer.IN:
		return BoolOf(i.hasProperty(x, y))
	}
	i.throwSyntaxError("unexpected binary operator")
	return nil
}

// evalUnaryExpression covers the prefix operators and postfix ++/--.
func (i *Interpreter) evalUnaryExpression(e *ast.UnaryExpression) Value {
	if !e.Prefix {
		ref := i.evalExpression(e.Operand)
		if !i.ok() {
			return nil
		}
		old := i.ToNumber(i.GetValue(ref))
		if !i.ok() {
			return nil
		}
		delta := 1.0
		if e.Op.Type == lexer.DEC {
			delta = -1
		}
		i.PutValue(ref, NewNumber(old+delta))
		if !i.ok() {
			return nil
		}
		return NewNumber(old)
	}

	switch e.Op.Type {
	case lexer.DELETE:
		return i.evalDelete(e.Operand)
	case lexer.VOID:
		i.GetValue(i.evalExpression(e.Operand))
		if !i.ok() {
			return nil
		}
		return Undefined
	case lexer.TYPEOF:
		v := i.evalExpression(e.Operand)
		if !i.ok() {
			return nil
		}
		if ref, ok := v.(*Reference); ok && ref.IsUnresolvable() {
			return NewString("undefined")
		}
		return NewString(typeofValue(i.GetValue(v)))
	case lexer.INC, lexer.DEC:
		ref := i.evalExpression(e.Operand)
		if !i.ok() {
			return nil
		}
		old := i.ToNumber(i.GetValue(ref))
		if !i.ok() {
			return nil
		}
		delta := 1.0
		if e.Op.Type == lexer.DEC {
			delta = -1
		}
		result := NewNumber(old + delta)
		i.PutValue(ref, result)
		if !i.ok() {
			return nil
		}
		return result
	case lexer.ADD:
		return NewNumber(i.ToNumber(i.GetValue(i.evalExpression(e.Operand))))
	case lexer.SUB:
		return NewNumber(-i.ToNumber(i.GetValue(i.evalExpression(e.Operand))))
	case lexer.BIT_NOT:
		return NewNumber(float64(^i.ToInt32(i.GetValue(i.evalExpression(e.Operand)))))
	case lexer.NOT:
		return BoolOf(!ToBoolean(i.GetValue(i.evalExpression(e.Operand))))
	}
	i.throwSyntaxError("unexpected unary operator")
	return nil
}

// evalDelete implements the delete operator over the operand's reference.
func (i *Interpreter) evalDelete(operand ast.Expression) Value {
	v := i.evalExpression(operand)
	if !i.ok() {
		return nil
	}
	ref, ok := v.(*Reference)
	if !ok {
		return True
	}
	if ref.IsUnresolvable() {
		return True
	}
	switch base := ref.Base.(type) {
	case EnvironmentRecord:
		return BoolOf(base.DeleteBinding(i, ref.Name))
	default:
		obj := i.ToObject(base)
		if !i.ok() {
			return nil
		}
		return BoolOf(obj.Delete(i, ref.Name, ref.Strict))
	}
}

// evalConditionalExpression evaluates ?: with only the taken branch run.
func (i *Interpreter) evalConditionalExpression(e *ast.ConditionalExpression) Value {
	cond := i.GetValue(i.evalExpression(e.Cond))
	if !i.ok() {
		return nil
	}
	if ToBoolean(cond) {
		return i.GetValue(i.evalExpression(e.Then))
	}
	return i.GetValue(i.evalExpression(e.Else))
}

// evalSequenceExpression evaluates comma operands left to right, keeping
// the last value.
func (i *Interpreter) evalSequenceExpression(e *ast.SequenceExpression) Value {
	var last Value = Undefined
	for _, el := range e.Elements {
		last = i.GetValue(i.evalExpression(el))
		if !i.ok() {
			return nil
		}
	}
	return last
}
