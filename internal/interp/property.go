package interp

// PropertyDescriptor describes one object property, either a data
// descriptor (Value/Writable) or an accessor descriptor (Get/Set). Every
// field may be absent, tracked by the Has* flags; an empty descriptor is
// used for partial updates in DefineOwnProperty. A descriptor is never both
// data and accessor.
type PropertyDescriptor struct {
	Value Value
	Get   Value // *Object or Undefined
	Set   Value // *Object or Undefined

	Writable     bool
	Enumerable   bool
	Configurable bool

	HasValue        bool
	HasGet          bool
	HasSet          bool
	HasWritable     bool
	HasEnumerable   bool
	HasConfigurable bool
}

// DataDescriptor builds a fully populated data descriptor.
func DataDescriptor(v Value, writable, enumerable, configurable bool) *PropertyDescriptor {
	return &PropertyDescriptor{
		Value: v, Writable: writable, Enumerable: enumerable, Configurable: configurable,
		HasValue: true, HasWritable: true, HasEnumerable: true, HasConfigurable: true,
	}
}

// AccessorDescriptor builds a fully populated accessor descriptor. Pass
// Undefined for an absent getter or setter.
func AccessorDescriptor(get, set Value, enumerable, configurable bool) *PropertyDescriptor {
	return &PropertyDescriptor{
		Get: get, Set: set, Enumerable: enumerable, Configurable: configurable,
		HasGet: true, HasSet: true, HasEnumerable: true, HasConfigurable: true,
	}
}

// IsDataDescriptor reports whether the descriptor has data fields.
func (d *PropertyDescriptor) IsDataDescriptor() bool {
	return d != nil && (d.HasValue || d.HasWritable)
}

// IsAccessorDescriptor reports whether the descriptor has accessor fields.
func (d *PropertyDescriptor) IsAccessorDescriptor() bool {
	return d != nil && (d.HasGet || d.HasSet)
}

// IsGenericDescriptor reports whether the descriptor is neither data nor
// accessor.
func (d *PropertyDescriptor) IsGenericDescriptor() bool {
	return d != nil && !d.IsDataDescriptor() && !d.IsAccessorDescriptor()
}

// IsEmpty reports whether every field is absent.
func (d *PropertyDescriptor) IsEmpty() bool {
	return !d.HasValue && !d.HasGet && !d.HasSet &&
		!d.HasWritable && !d.HasEnumerable && !d.HasConfigurable
}

// clone copies the descriptor.
func (d *PropertyDescriptor) clone() *PropertyDescriptor {
	c := *d
	return &c
}

// merge copies every present field of src into d.
func (d *PropertyDescriptor) merge(src *PropertyDescriptor) {
	if src.HasValue {
		d.Value, d.HasValue = src.Value, true
	}
	if src.HasWritable {
		d.Writable, d.HasWritable = src.Writable, true
	}
	if src.HasGet {
		d.Get, d.HasGet = src.Get, true
	}
	if src.HasSet {
		d.Set, d.HasSet = src.Set, true
	}
	if src.HasEnumerable {
		d.Enumerable, d.HasEnumerable = src.Enumerable, true
	}
	if src.HasConfigurable {
		d.Configurable, d.HasConfigurable = src.Configurable, true
	}
}

// sameAs reports whether every field of other is present in d with the same
// value, comparing values with SameValue.
func (d *PropertyDescriptor) sameAs(other *PropertyDescriptor) bool {
	if other.HasValue && (!d.HasValue || !SameValue(d.Value, other.Value)) {
		return false
	}
	if other.HasWritable && (!d.HasWritable || d.Writable != other.Writable) {
		return false
	}
	if other.HasGet && (!d.HasGet || !SameValue(d.Get, other.Get)) {
		return false
	}
	if other.HasSet && (!d.HasSet || !SameValue(d.Set, other.Set)) {
		return false
	}
	if other.HasEnumerable && (!d.HasEnumerable || d.Enumerable != other.Enumerable) {
		return false
	}
	if other.HasConfigurable && (!d.HasConfigurable || d.Configurable != other.Configurable) {
		return false
	}
	return true
}
