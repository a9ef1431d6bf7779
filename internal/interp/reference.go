package interp

// Reference is the internal (base, name, strict) triple produced by
// identifier resolution and property access. It is a Value variant so the
// evaluator can pass it through expression positions, but it must never
// escape the evaluator without GetValue.
type Reference struct {
	Base   Value // Undefined, primitive, *Object, or EnvironmentRecord
	Name   string
	Strict bool
}

func (r *Reference) Type() string   { return "Reference" }
func (r *Reference) String() string { return "ref(" + r.Name + ")" }

// IsUnresolvable reports whether the reference has no base.
func (r *Reference) IsUnresolvable() bool {
	return IsUndefined(r.Base)
}

// IsPropertyReference reports whether the base is an object or a primitive
// that boxes to one.
func (r *Reference) IsPropertyReference() bool {
	switch r.Base.(type) {
	case *Object, *BooleanValue, *NumberValue, *StringValue:
		return true
	}
	return false
}

// GetValue dereferences v: non-references pass through, unresolvable
// references raise a ReferenceError, property references go through [[Get]]
// (boxing primitive bases), and environment-record references consult the
// record.
func (i *Interpreter) GetValue(v Value) Value {
	ref, ok := v.(*Reference)
	if !ok {
		return v
	}
	if ref.IsUnresolvable() {
		i.throwReferenceError(ref.Name + " is not defined")
		return nil
	}
	switch base := ref.Base.(type) {
	case *Object:
		return base.Get(i, ref.Name)
	case EnvironmentRecord:
		return base.GetBindingValue(i, ref.Name, ref.Strict)
	default:
		// Primitive base: box it, but keep the primitive as this for any
		// getter that runs.
		obj := i.ToObject(base)
		if !i.ok() {
			return nil
		}
		return obj.getWithThis(i, ref.Name, base)
	}
}

// PutValue assigns through a reference. Assigning through an unresolvable
// reference creates a global property in sloppy mode and raises a
// ReferenceError in strict mode. Assigning to a non-reference raises a
// ReferenceError.
func (i *Interpreter) PutValue(v Value, w Value) {
	ref, ok := v.(*Reference)
	if !ok {
		i.throwReferenceError("invalid assignment target")
		return
	}
	if ref.IsUnresolvable() {
		if ref.Strict {
			i.throwReferenceError(ref.Name + " is not defined")
			return
		}
		i.global.Put(i, ref.Name, w, false)
		return
	}
	switch base := ref.Base.(type) {
	case *Object:
		base.Put(i, ref.Name, w, ref.Strict)
	case EnvironmentRecord:
		base.SetMutableBinding(i, ref.Name, w, ref.Strict)
	default:
		obj := i.ToObject(base)
		if !i.ok() {
			return
		}
		obj.putWithThis(i, ref.Name, w, ref.Strict, base)
	}
}
