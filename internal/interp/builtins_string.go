package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/escript/escript/internal/lexer"
)

// codeUnits returns the UTF-16 code units of a string value.
func codeUnits(s string) lexer.Source {
	return lexer.FromString(s)
}

// newStringObject boxes a string primitive. The wrapper exposes length and
// one indexed property per code unit, both read-only.
func (i *Interpreter) newStringObject(s string) *Object {
	obj := NewObject(classString, i.stringProto)
	obj.PrimitiveValue = NewString(s)
	units := codeUnits(s)
	obj.defineDataProp("length", NewNumber(float64(len(units))), false, false, false)
	for idx, u := range units {
		one := lexer.Source{u}.String()
		obj.defineDataProp(strconv.Itoa(idx), NewString(one), false, true, false)
	}
	return obj
}

// thisString resolves the this value of a String.prototype method to the
// underlying string, unwrapping wrappers and coercing everything else.
func (i *Interpreter) thisString(this Value) string {
	i.CheckObjectCoercible(this)
	if !i.ok() {
		return ""
	}
	if o, ok := this.(*Object); ok && o.Class == classString && o.PrimitiveValue != nil {
		return o.PrimitiveValue.(*StringValue).Value
	}
	return i.ToString(this)
}

func (i *Interpreter) setupStringBuiltin() {
	i.stringProto = NewObject(classString, i.objectProto)
	i.stringProto.PrimitiveValue = NewString("")
	i.stringProto.defineDataProp("length", NewNumber(0), false, false, false)

	ctor := i.newNativeFunction("String", 1, func(i *Interpreter, _ Value, args []Value) Value {
		if len(args) == 0 {
			return NewString("")
		}
		return NewString(i.ToString(args[0]))
	})
	ctor.NativeConstruct = func(i *Interpreter, _ Value, args []Value) Value {
		s := ""
		if len(args) > 0 {
			s = i.ToString(args[0])
			if !i.ok() {
				return nil
			}
		}
		return i.newStringObject(s)
	}
	i.installConstructor("String", ctor, i.stringProto)

	i.defineMethod(ctor, "fromCharCode", 1, func(i *Interpreter, _ Value, args []Value) Value {
		units := make(lexer.Source, 0, len(args))
		for _, a := range args {
			units = append(units, i.ToUint16(a))
			if !i.ok() {
				return nil
			}
		}
		return NewString(units.String())
	})

	i.defineMethod(i.stringProto, "toString", 0, func(i *Interpreter, this Value, _ []Value) Value {
		return i.stringThisValue(this)
	})
	i.defineMethod(i.stringProto, "valueOf", 0, func(i *Interpreter, this Value, _ []Value) Value {
		return i.stringThisValue(this)
	})
	i.defineMethod(i.stringProto, "charAt", 1, func(i *Interpreter, this Value, args []Value) Value {
		s := codeUnits(i.thisString(this))
		if !i.ok() {
			return nil
		}
		pos := int(i.ToInteger(arg(args, 0)))
		if !i.ok() {
			return nil
		}
		if pos < 0 || pos >= len(s) {
			return NewString("")
		}
		return NewString(lexer.Source{s[pos]}.String())
	})
	i.defineMethod(i.stringProto, "charCodeAt", 1, func(i *Interpreter, this Value, args []Value) Value {
		s := codeUnits(i.thisString(this))
		if !i.ok() {
			return nil
		}
		pos := int(i.ToInteger(arg(args, 0)))
		if !i.ok() {
			return nil
		}
		if pos < 0 || pos >= len(s) {
			return NewNumber(math.NaN())
		}
		return NewNumber(float64(s[pos]))
	})
	i.defineMethod(i.stringProto, "concat", 1, func(i *Interpreter, this Value, args []Value) Value {
		var sb strings.Builder
		sb.WriteString(i.thisString(this))
		if !i.ok() {
			return nil
		}
		for _, a := range args {
			sb.WriteString(i.ToString(a))
			if !i.ok() {
				return nil
			}
		}
		return NewString(sb.String())
	})
	i.defineMethod(i.stringProto, "indexOf", 1, func(i *Interpreter, this Value, args []Value) Value {
		s := codeUnits(i.thisString(this))
		search := codeUnits(i.ToString(arg(args, 0)))
		if !i.ok() {
			return nil
		}
		from := int(i.ToInteger(arg(args, 1)))
		if !i.ok() {
			return nil
		}
		return NewNumber(float64(searchUnits(s, search, from, false)))
	})
	i.defineMethod(i.stringProto, "lastIndexOf", 1, func(i *Interpreter, this Value, args []Value) Value {
		s := codeUnits(i.thisString(this))
		search := codeUnits(i.ToString(arg(args, 0)))
		if !i.ok() {
			return nil
		}
		from := len(s)
		if pos := i.ToNumber(arg(args, 1)); !math.IsNaN(pos) {
			from = int(pos)
		}
		if !i.ok() {
			return nil
		}
		return NewNumber(float64(searchUnits(s, search, from, true)))
	})
	i.defineMethod(i.stringProto, "slice", 2, func(i *Interpreter, this Value, args []Value) Value {
		s := codeUnits(i.thisString(this))
		if !i.ok() {
			return nil
		}
		length := len(s)
		start := clampRelative(i.ToInteger(arg(args, 0)), length)
		end := length
		if !IsUndefined(arg(args, 1)) {
			end = clampRelative(i.ToInteger(arg(args, 1)), length)
		}
		if !i.ok() {
			return nil
		}
		if start >= end {
			return NewString("")
		}
		return NewString(s[start:end].String())
	})
	i.defineMethod(i.stringProto, "substring", 2, func(i *Interpreter, this Value, args []Value) Value {
		s := codeUnits(i.thisString(this))
		if !i.ok() {
			return nil
		}
		length := len(s)
		start := clampIndex(i.ToInteger(arg(args, 0)), length)
		end := length
		if !IsUndefined(arg(args, 1)) {
			end = clampIndex(i.ToInteger(arg(args, 1)), length)
		}
		if !i.ok() {
			return nil
		}
		if start > end {
			start, end = end, start
		}
		return NewString(s[start:end].String())
	})
	i.defineMethod(i.stringProto, "toLowerCase", 0, func(i *Interpreter, this Value, _ []Value) Value {
		s := i.thisString(this)
		if !i.ok() {
			return nil
		}
		return NewString(strings.ToLower(s))
	})
	i.defineMethod(i.stringProto, "toUpperCase", 0, func(i *Interpreter, this Value, _ []Value) Value {
		s := i.thisString(this)
		if !i.ok() {
			return nil
		}
		return NewString(strings.ToUpper(s))
	})
	i.defineMethod(i.stringProto, "trim", 0, func(i *Interpreter, this Value, _ []Value) Value {
		s := i.thisString(this)
		if !i.ok() {
			return nil
		}
		return NewString(trimESWhitespace(s))
	})
}

// stringThisValue enforces that toString/valueOf run on a string or its
// wrapper.
func (i *Interpreter) stringThisValue(this Value) Value {
	switch t := this.(type) {
	case *StringValue:
		return t
	case *Object:
		if t.Class == classString && t.PrimitiveValue != nil {
			return t.PrimitiveValue
		}
	}
	i.throwTypeError("String.prototype method called on incompatible receiver")
	return nil
}

// searchUnits finds search in s starting at from, scanning backwards when
// last is set. Returns -1 when absent.
func searchUnits(s, search lexer.Source, from int, last bool) int {
	if from < 0 {
		from = 0
	}
	if from > len(s) {
		from = len(s)
	}
	if last {
		if from > len(s)-len(search) {
			from = len(s) - len(search)
		}
		for pos := from; pos >= 0; pos-- {
			if unitsMatch(s, search, pos) {
				return pos
			}
		}
		return -1
	}
	for pos := from; pos+len(search) <= len(s); pos++ {
		if unitsMatch(s, search, pos) {
			return pos
		}
	}
	return -1
}

func unitsMatch(s, search lexer.Source, pos int) bool {
	for j := range search {
		if s[pos+j] != search[j] {
			return false
		}
	}
	return true
}

// clampRelative resolves a slice-style index: negative counts from the
// end, then clamps to [0, length].
func clampRelative(pos float64, length int) int {
	if pos < 0 {
		pos += float64(length)
	}
	return clampIndex(pos, length)
}

// clampIndex clamps a substring-style index to [0, length], mapping NaN
// to 0.
func clampIndex(pos float64, length int) int {
	if math.IsNaN(pos) || pos < 0 {
		return 0
	}
	if pos > float64(length) {
		return length
	}
	return int(pos)
}
