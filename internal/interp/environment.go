package interp

// EnvironmentRecord stores name bindings. The declarative variant backs
// function and catch scopes; the object variant wraps an object (the global
// object, or a with target) so its properties serve as bindings.
type EnvironmentRecord interface {
	Value

	HasBinding(name string) bool
	CreateMutableBinding(i *Interpreter, name string, deletable bool)
	SetMutableBinding(i *Interpreter, name string, v Value, strict bool)
	GetBindingValue(i *Interpreter, name string, strict bool) Value
	DeleteBinding(i *Interpreter, name string) bool
	ImplicitThisValue() Value
}

// binding is one declarative-record entry.
type binding struct {
	value     Value
	mutable   bool
	deletable bool
}

// DeclarativeRecord is a map-backed environment record.
type DeclarativeRecord struct {
	bindings map[string]*binding
}

// NewDeclarativeRecord creates an empty declarative record.
func NewDeclarativeRecord() *DeclarativeRecord {
	return &DeclarativeRecord{bindings: make(map[string]*binding)}
}

func (r *DeclarativeRecord) Type() string   { return "EnvironmentRecord" }
func (r *DeclarativeRecord) String() string { return "[declarative record]" }

func (r *DeclarativeRecord) HasBinding(name string) bool {
	_, ok := r.bindings[name]
	return ok
}

func (r *DeclarativeRecord) CreateMutableBinding(_ *Interpreter, name string, deletable bool) {
	r.bindings[name] = &binding{value: Undefined, mutable: true, deletable: deletable}
}

// CreateImmutableBinding backs the self-reference of named function
// expressions.
func (r *DeclarativeRecord) CreateImmutableBinding(name string, v Value) {
	r.bindings[name] = &binding{value: v, mutable: false}
}

func (r *DeclarativeRecord) SetMutableBinding(i *Interpreter, name string, v Value, strict bool) {
	b := r.bindings[name]
	if b == nil {
		r.bindings[name] = &binding{value: v, mutable: true}
		return
	}
	if !b.mutable {
		if strict {
			i.throwTypeError("assignment to constant binding '" + name + "'")
		}
		return
	}
	b.value = v
}

func (r *DeclarativeRecord) GetBindingValue(_ *Interpreter, name string, _ bool) Value {
	if b := r.bindings[name]; b != nil {
		return b.value
	}
	return Undefined
}

func (r *DeclarativeRecord) DeleteBinding(_ *Interpreter, name string) bool {
	b := r.bindings[name]
	if b == nil {
		return true
	}
	if !b.deletable {
		return false
	}
	delete(r.bindings, name)
	return true
}

func (r *DeclarativeRecord) ImplicitThisValue() Value { return Undefined }

// ObjectRecord wraps an object so that its properties act as bindings.
// provideThis is set for with scopes, making the wrapped object the implicit
// this of method calls resolved through it.
type ObjectRecord struct {
	object      *Object
	provideThis bool
}

// NewObjectRecord creates an object-backed record.
func NewObjectRecord(obj *Object, provideThis bool) *ObjectRecord {
	return &ObjectRecord{object: obj, provideThis: provideThis}
}

func (r *ObjectRecord) Type() string   { return "EnvironmentRecord" }
func (r *ObjectRecord) String() string { return "[object record]" }

func (r *ObjectRecord) HasBinding(name string) bool {
	return r.object.HasProperty(name)
}

func (r *ObjectRecord) CreateMutableBinding(i *Interpreter, name string, deletable bool) {
	r.object.DefineOwnProperty(i, name,
		DataDescriptor(Undefined, true, true, deletable), true)
}

func (r *ObjectRecord) SetMutableBinding(i *Interpreter, name string, v Value, strict bool) {
	r.object.Put(i, name, v, strict)
}

func (r *ObjectRecord) GetBindingValue(i *Interpreter, name string, strict bool) Value {
	if !r.object.HasProperty(name) {
		if strict {
			i.throwReferenceError(name + " is not defined")
			return nil
		}
		return Undefined
	}
	return r.object.Get(i, name)
}

func (r *ObjectRecord) DeleteBinding(i *Interpreter, name string) bool {
	return r.object.Delete(i, name, false)
}

func (r *ObjectRecord) ImplicitThisValue() Value {
	if r.provideThis {
		return r.object
	}
	return Undefined
}

// LexicalEnvironment pairs a record with its outer environment. Identifier
// resolution walks outward until a record reports the binding.
type LexicalEnvironment struct {
	Record EnvironmentRecord
	Outer  *LexicalEnvironment
}

// NewDeclarativeEnvironment creates a declarative scope nested in outer.
func NewDeclarativeEnvironment(outer *LexicalEnvironment) *LexicalEnvironment {
	return &LexicalEnvironment{Record: NewDeclarativeRecord(), Outer: outer}
}

// NewObjectEnvironment creates an object-backed scope nested in outer.
func NewObjectEnvironment(obj *Object, provideThis bool, outer *LexicalEnvironment) *LexicalEnvironment {
	return &LexicalEnvironment{Record: NewObjectRecord(obj, provideThis), Outer: outer}
}

// GetIdentifierReference resolves name against the environment chain,
// returning an unresolvable reference (base Undefined) when the chain is
// exhausted.
func GetIdentifierReference(env *LexicalEnvironment, name string, strict bool) *Reference {
	for e := env; e != nil; e = e.Outer {
		if e.Record.HasBinding(name) {
			return &Reference{Base: e.Record, Name: name, Strict: strict}
		}
	}
	return &Reference{Base: Undefined, Name: name, Strict: strict}
}
