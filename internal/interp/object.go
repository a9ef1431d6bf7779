package interp

import (
	"strconv"

	"github.com/escript/escript/internal/ast"
)

// NativeFunc is the Go implementation of a built-in function.
type NativeFunc func(i *Interpreter, this Value, args []Value) Value

// FunctionData carries what an interpreted function object needs to run:
// its literal and the lexical environment captured when the function
// expression or declaration evaluated.
type FunctionData struct {
	Decl   *ast.FunctionLiteral
	Scope  *LexicalEnvironment
	Strict bool
}

// Object is the single object representation. Behavior differences between
// classes (Array length maintenance, wrapper primitive values, callability)
// dispatch on the Class tag and the function fields rather than on a type
// hierarchy. Identity is pointer identity.
type Object struct {
	Class          string
	Extensible     bool
	Prototype      Value // *Object or Null
	PrimitiveValue Value // wrapper objects only, nil otherwise

	// Exactly one of these is set for callable objects.
	Function *FunctionData
	Native   NativeFunc

	// Constructable enables [[Construct]]. NativeConstruct overrides the
	// default construct algorithm when set.
	Constructable   bool
	NativeConstruct NativeFunc

	// Property table in insertion order. for-in and the last-wins rules of
	// object literals depend on the order being preserved.
	props map[string]*PropertyDescriptor
	keys  []string
}

func (o *Object) Type() string   { return "Object" }
func (o *Object) String() string { return "[object " + o.Class + "]" }

// Callable reports whether the object implements [[Call]].
func (o *Object) Callable() bool {
	return o.Function != nil || o.Native != nil
}

// NewObject allocates a plain object with the given class and prototype.
func NewObject(class string, proto Value) *Object {
	if proto == nil {
		proto = Null
	}
	return &Object{
		Class:      class,
		Extensible: true,
		Prototype:  proto,
		props:      make(map[string]*PropertyDescriptor),
	}
}

// GetOwnProperty returns the own property descriptor, or nil.
func (o *Object) GetOwnProperty(name string) *PropertyDescriptor {
	return o.props[name]
}

// GetProperty returns the own or inherited descriptor, or nil.
func (o *Object) GetProperty(name string) *PropertyDescriptor {
	cur := o
	for {
		if d := cur.props[name]; d != nil {
			return d
		}
		proto, ok := cur.Prototype.(*Object)
		if !ok {
			return nil
		}
		cur = proto
	}
}

// HasProperty reports whether the property exists on the object or its
// prototype chain.
func (o *Object) HasProperty(name string) bool {
	return o.GetProperty(name) != nil
}

// OwnKeys returns the own property names in insertion order.
func (o *Object) OwnKeys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get retrieves a property value following the prototype chain, invoking an
// accessor's getter with this = the object itself.
func (o *Object) Get(i *Interpreter, name string) Value {
	return o.getWithThis(i, name, o)
}

// getWithThis is Get with an explicit this for the getter, used when the
// reference base was a primitive.
func (o *Object) getWithThis(i *Interpreter, name string, this Value) Value {
	d := o.GetProperty(name)
	if d == nil {
		return Undefined
	}
	if d.IsDataDescriptor() {
		return d.Value
	}
	getter, ok := d.Get.(*Object)
	if !ok {
		return Undefined
	}
	return i.call(getter, this, nil)
}

// CanPut reports whether a Put on name may proceed.
func (o *Object) CanPut(name string) bool {
	if d := o.GetOwnProperty(name); d != nil {
		if d.IsAccessorDescriptor() {
			return d.HasSet && IsObject(d.Set)
		}
		return d.Writable
	}
	proto, ok := o.Prototype.(*Object)
	if !ok {
		return o.Extensible
	}
	inherited := proto.GetProperty(name)
	if inherited == nil {
		return o.Extensible
	}
	if inherited.IsAccessorDescriptor() {
		return inherited.HasSet && IsObject(inherited.Set)
	}
	return o.Extensible && inherited.Writable
}

// Put assigns a property value, invoking an inherited or own setter with
// this = the object. When throw is set a rejected write raises a TypeError
// through the interpreter's error cell.
func (o *Object) Put(i *Interpreter, name string, v Value, throw bool) {
	o.putWithThis(i, name, v, throw, o)
}

func (o *Object) putWithThis(i *Interpreter, name string, v Value, throw bool, this Value) {
	if !o.CanPut(name) {
		if throw {
			i.throwTypeError("cannot assign to read only property '" + name + "'")
		}
		return
	}
	if own := o.GetOwnProperty(name); own != nil && own.IsDataDescriptor() {
		o.DefineOwnProperty(i, name, &PropertyDescriptor{Value: v, HasValue: true}, throw)
		return
	}
	if d := o.GetProperty(name); d != nil && d.IsAccessorDescriptor() {
		setter, ok := d.Set.(*Object)
		if !ok {
			if throw {
				i.throwTypeError("property '" + name + "' has no setter")
			}
			return
		}
		i.call(setter, this, []Value{v})
		return
	}
	o.DefineOwnProperty(i, name, DataDescriptor(v, true, true, true), throw)
}

// Delete removes an own property. Non-configurable properties are retained;
// with throw set that raises a TypeError.
func (o *Object) Delete(i *Interpreter, name string, throw bool) bool {
	d := o.GetOwnProperty(name)
	if d == nil {
		return true
	}
	if !d.Configurable {
		if throw {
			i.throwTypeError("cannot delete property '" + name + "'")
		}
		return false
	}
	o.removeOwn(name)
	return true
}

// DefaultValue implements [[DefaultValue]]: try toString/valueOf in the
// order selected by the hint and return the first primitive result. The
// default hint is Number.
func (o *Object) DefaultValue(i *Interpreter, hint string) Value {
	methods := [2]string{"valueOf", "toString"}
	if hint == "String" {
		methods = [2]string{"toString", "valueOf"}
	}
	for _, name := range methods {
		m := o.Get(i, name)
		if !i.ok() {
			return nil
		}
		if fn, ok := m.(*Object); ok && fn.Callable() {
			res := i.call(fn, o, nil)
			if !i.ok() {
				return nil
			}
			if IsPrimitive(res) {
				return res
			}
		}
	}
	i.throwTypeError("cannot convert object to primitive value")
	return nil
}

// DefineOwnProperty creates or updates an own property, validating the
// descriptor transition rules. Array objects additionally maintain their
// length invariant here, keyed off the class tag.
func (o *Object) DefineOwnProperty(i *Interpreter, name string, desc *PropertyDescriptor, throw bool) bool {
	if o.Class == classArray {
		return o.defineArrayProperty(i, name, desc, throw)
	}
	return o.defineOwnProperty(i, name, desc, throw)
}

func (o *Object) defineOwnProperty(i *Interpreter, name string, desc *PropertyDescriptor, throw bool) bool {
	reject := func(msg string) bool {
		if throw {
			i.throwTypeError(msg + " '" + name + "'")
		}
		return false
	}

	current := o.GetOwnProperty(name)
	if current == nil {
		if !o.Extensible {
			return reject("cannot define property on non-extensible object")
		}
		fresh := &PropertyDescriptor{}
		if desc.IsAccessorDescriptor() {
			fresh.Get, fresh.Set = Undefined, Undefined
			fresh.HasGet, fresh.HasSet = true, true
		} else {
			fresh.Value, fresh.HasValue = Undefined, true
			fresh.HasWritable = true
		}
		fresh.HasEnumerable, fresh.HasConfigurable = true, true
		fresh.merge(desc)
		o.setOwn(name, fresh)
		return true
	}

	if desc.IsEmpty() || current.sameAs(desc) {
		return true
	}

	if !current.Configurable {
		if desc.HasConfigurable && desc.Configurable {
			return reject("cannot redefine non-configurable property")
		}
		if desc.HasEnumerable && desc.Enumerable != current.Enumerable {
			return reject("cannot redefine non-configurable property")
		}
		if desc.IsGenericDescriptor() {
			// attribute-only change, checked above
		} else if current.IsDataDescriptor() != desc.IsDataDescriptor() {
			return reject("cannot redefine non-configurable property")
		} else if current.IsDataDescriptor() {
			if !current.Writable {
				if desc.HasWritable && desc.Writable {
					return reject("cannot redefine non-configurable property")
				}
				if desc.HasValue && !SameValue(desc.Value, current.Value) {
					return reject("cannot redefine non-configurable property")
				}
			}
		} else {
			if desc.HasGet && !SameValue(desc.Get, current.Get) {
				return reject("cannot redefine non-configurable property")
			}
			if desc.HasSet && !SameValue(desc.Set, current.Set) {
				return reject("cannot redefine non-configurable property")
			}
		}
	}

	// Converting between data and accessor resets the other side's fields.
	if desc.IsDataDescriptor() && current.IsAccessorDescriptor() {
		current.Get, current.Set = nil, nil
		current.HasGet, current.HasSet = false, false
		current.Value, current.HasValue = Undefined, true
		current.Writable, current.HasWritable = false, true
	} else if desc.IsAccessorDescriptor() && current.IsDataDescriptor() {
		current.Value, current.HasValue = nil, false
		current.Writable, current.HasWritable = false, false
		current.Get, current.Set = Undefined, Undefined
		current.HasGet, current.HasSet = true, true
	}
	current.merge(desc)
	return true
}

// defineArrayProperty maintains the Array length invariant: index writes at
// or beyond length extend it, and shrinking length deletes trailing
// indices.
func (o *Object) defineArrayProperty(i *Interpreter, name string, desc *PropertyDescriptor, throw bool) bool {
	lengthDesc := o.GetOwnProperty("length")

	if name == "length" {
		if !desc.HasValue {
			return o.defineOwnProperty(i, name, desc, throw)
		}
		newLen, ok := i.toArrayLength(desc.Value)
		if !ok {
			i.throwRangeError("invalid array length")
			return false
		}
		oldLen := uint32(lengthDesc.Value.(*NumberValue).Value)
		adjusted := desc.clone()
		adjusted.Value = NewNumber(float64(newLen))
		if !o.defineOwnProperty(i, name, adjusted, throw) {
			return false
		}
		for idx := oldLen; idx > newLen; idx-- {
			o.Delete(i, strconv.FormatUint(uint64(idx-1), 10), false)
		}
		return true
	}

	if idx, ok := arrayIndex(name); ok {
		oldLen := uint32(lengthDesc.Value.(*NumberValue).Value)
		if idx >= oldLen && !lengthDesc.Writable {
			if throw {
				i.throwTypeError("cannot extend array with read only length")
			}
			return false
		}
		if !o.defineOwnProperty(i, name, desc, throw) {
			return false
		}
		if idx >= oldLen {
			lengthDesc.Value = NewNumber(float64(idx) + 1)
		}
		return true
	}

	return o.defineOwnProperty(i, name, desc, throw)
}

// arrayIndex reports whether name is an array index: the canonical decimal
// form of a uint32 below 2^32-1.
func arrayIndex(name string) (uint32, bool) {
	if name == "" || (len(name) > 1 && name[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(name, 10, 32)
	if err != nil || n == 0xFFFFFFFF {
		return 0, false
	}
	return uint32(n), true
}

// setOwn stores a descriptor, preserving first-insertion order for keys.
func (o *Object) setOwn(name string, d *PropertyDescriptor) {
	if _, exists := o.props[name]; !exists {
		o.keys = append(o.keys, name)
	}
	o.props[name] = d
}

func (o *Object) removeOwn(name string) {
	if _, exists := o.props[name]; !exists {
		return
	}
	delete(o.props, name)
	for idx, k := range o.keys {
		if k == name {
			o.keys = append(o.keys[:idx], o.keys[idx+1:]...)
			break
		}
	}
}

// defineDataProp is a builtin-setup helper for plain data properties.
func (o *Object) defineDataProp(name string, v Value, writable, enumerable, configurable bool) {
	o.setOwn(name, DataDescriptor(v, writable, enumerable, configurable))
}
