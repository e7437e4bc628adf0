package pdef

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Descriptor is the runtime handle describing a pdef type. It carries
// enough metadata to drive the codecs and the RPC protocol.
type Descriptor interface {
	Type() Type
	String() string
}

// Message is implemented by all generated message types. The descriptor
// returned must be the descriptor of the value's concrete type, which is
// what makes polymorphic encoding work.
type Message interface {
	PdefDescriptor() *MessageDescriptor
}

// Provider supplies a descriptor on demand. Providers break reference
// cycles in the descriptor graph: generated code passes a closure over a
// package-level descriptor variable, and the reference is resolved on
// first use, at most once.
type Provider func() Descriptor

// Eager returns a provider for an already-constructed descriptor.
func Eager(d Descriptor) Provider {
	return func() Descriptor { return d }
}

// supplier memoizes a Provider. Resolution is idempotent and safe for
// concurrent first use.
type supplier struct {
	once sync.Once
	fn   Provider
	d    Descriptor
}

func newSupplier(fn Provider) *supplier {
	if fn == nil {
		return nil
	}
	return &supplier{fn: fn}
}

func (s *supplier) get() Descriptor {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		s.d = s.fn()
		s.fn = nil
	})
	return s.d
}

// simpleDescriptor backs the primitive, datetime and void singletons.
type simpleDescriptor struct {
	typ Type
}

func (d *simpleDescriptor) Type() Type     { return d.typ }
func (d *simpleDescriptor) String() string { return string(d.typ) }

// Primitive, datetime and void descriptor singletons.
var (
	Bool     Descriptor = &simpleDescriptor{TypeBool}
	Int16    Descriptor = &simpleDescriptor{TypeInt16}
	Int32    Descriptor = &simpleDescriptor{TypeInt32}
	Int64    Descriptor = &simpleDescriptor{TypeInt64}
	Float    Descriptor = &simpleDescriptor{TypeFloat}
	Double   Descriptor = &simpleDescriptor{TypeDouble}
	String   Descriptor = &simpleDescriptor{TypeString}
	DateTime Descriptor = &simpleDescriptor{TypeDateTime}
	Void     Descriptor = &simpleDescriptor{TypeVoid}
)

// ListDescriptor describes list<element>.
type ListDescriptor struct {
	elem Descriptor
}

// ListOf creates a list descriptor with an element descriptor.
func ListOf(elem Descriptor) *ListDescriptor {
	return &ListDescriptor{elem: elem}
}

func (d *ListDescriptor) Type() Type          { return TypeList }
func (d *ListDescriptor) Element() Descriptor { return d.elem }
func (d *ListDescriptor) String() string      { return fmt.Sprintf("list<%s>", d.elem) }

// SetDescriptor describes set<element>.
type SetDescriptor struct {
	elem Descriptor
}

// SetOf creates a set descriptor with an element descriptor.
func SetOf(elem Descriptor) *SetDescriptor {
	return &SetDescriptor{elem: elem}
}

func (d *SetDescriptor) Type() Type          { return TypeSet }
func (d *SetDescriptor) Element() Descriptor { return d.elem }
func (d *SetDescriptor) String() string      { return fmt.Sprintf("set<%s>", d.elem) }

// MapDescriptor describes map<key, value>.
type MapDescriptor struct {
	key   Descriptor
	value Descriptor
}

// MapOf creates a map descriptor with key and value descriptors.
func MapOf(key, value Descriptor) *MapDescriptor {
	return &MapDescriptor{key: key, value: value}
}

func (d *MapDescriptor) Type() Type        { return TypeMap }
func (d *MapDescriptor) Key() Descriptor   { return d.key }
func (d *MapDescriptor) Value() Descriptor { return d.value }
func (d *MapDescriptor) String() string    { return fmt.Sprintf("map<%s, %s>", d.key, d.value) }

// EnumOpts configures an enum descriptor. Wrap converts a canonical
// uppercase value name into the generated enum type; Unwrap is its
// inverse. When omitted, enum values are plain strings.
type EnumOpts struct {
	Name   string
	Values []string
	Wrap   func(name string) any
	Unwrap func(v any) string
}

// EnumDescriptor describes an enum: an ordered set of uppercase value
// names with case-insensitive lookup.
type EnumDescriptor struct {
	name   string
	values []string
	wrap   func(string) any
	unwrap func(any) string
}

// NewEnumDescriptor creates an enum descriptor. Value names are
// canonicalized to upper case.
func NewEnumDescriptor(opts EnumOpts) *EnumDescriptor {
	values := make([]string, len(opts.Values))
	for i, v := range opts.Values {
		values[i] = strings.ToUpper(v)
	}
	return &EnumDescriptor{
		name:   opts.Name,
		values: values,
		wrap:   opts.Wrap,
		unwrap: opts.Unwrap,
	}
}

func (d *EnumDescriptor) Type() Type { return TypeEnum }

func (d *EnumDescriptor) String() string {
	if d.name != "" {
		return d.name
	}
	return "enum"
}

// Values returns the canonical value names in declaration order.
func (d *EnumDescriptor) Values() []string { return d.values }

// FindValue returns the canonical value name matched case-insensitively,
// or "" when the name is unknown.
func (d *EnumDescriptor) FindValue(name string) string {
	if name == "" {
		return ""
	}
	name = strings.ToUpper(name)
	for _, v := range d.values {
		if v == name {
			return v
		}
	}
	return ""
}

// wrapValue converts a canonical name into the generated enum value.
func (d *EnumDescriptor) wrapValue(name string) any {
	if d.wrap == nil {
		return name
	}
	return d.wrap(name)
}

// nameOf converts an enum value back to its canonical name, or "" when
// the value is not of the enum's type.
func (d *EnumDescriptor) nameOf(v any) string {
	if s, ok := v.(string); ok {
		return strings.ToUpper(s)
	}
	if d.unwrap == nil {
		return ""
	}
	return strings.ToUpper(d.unwrap(v))
}

// FieldOpts configures a message field descriptor. Get and Set are
// accessor closures emitted by generated code; Get returns nil when the
// field has not been explicitly set, and values cross the accessors in
// the codec's canonical form.
type FieldOpts struct {
	Name          string
	Type          Provider
	Discriminator bool
	Get           func(Message) any
	Set           func(Message, any)
}

// FieldDescriptor describes a single message field.
type FieldDescriptor struct {
	name            string
	typ             *supplier
	isDiscriminator bool
	get             func(Message) any
	set             func(Message, any)
}

// NewFieldDescriptor creates a field descriptor.
func NewFieldDescriptor(opts FieldOpts) *FieldDescriptor {
	return &FieldDescriptor{
		name:            opts.Name,
		typ:             newSupplier(opts.Type),
		isDiscriminator: opts.Discriminator,
		get:             opts.Get,
		set:             opts.Set,
	}
}

func (f *FieldDescriptor) Name() string          { return f.name }
func (f *FieldDescriptor) Type() Descriptor      { return f.typ.get() }
func (f *FieldDescriptor) IsDiscriminator() bool { return f.isDiscriminator }

func (f *FieldDescriptor) String() string {
	return f.name + " " + f.Type().String()
}

// Get returns the field value of a message in canonical form, or nil
// when the field is not explicitly set.
func (f *FieldDescriptor) Get(m Message) any { return f.get(m) }

// Set sets the field of a message to a canonical value; nil clears it.
func (f *FieldDescriptor) Set(m Message, v any) { f.set(m, v) }

// MessageOpts configures a message descriptor. Base and Subtypes are
// providers so that polymorphic trees, which are inherently cyclic, can
// be declared in any order.
type MessageOpts struct {
	Name               string
	New                func() Message
	Base               Provider
	DiscriminatorValue string
	Fields             []*FieldDescriptor
	Subtypes           []Provider
}

// MessageDescriptor describes a message: its fields, its place in an
// inheritance chain and, for polymorphic trees, its subtypes.
type MessageDescriptor struct {
	name               string
	newFn              func() Message
	base               *supplier
	declaredFields     []*FieldDescriptor
	discriminatorValue string

	fieldsOnce    sync.Once
	fields        []*FieldDescriptor
	discriminator *FieldDescriptor

	subtypeSuppliers []*supplier
	subtypesOnce     sync.Once
	subtypes         []*MessageDescriptor
	subtypeIndex     map[string]*MessageDescriptor
}

// NewMessageDescriptor creates a message descriptor.
func NewMessageDescriptor(opts MessageOpts) *MessageDescriptor {
	d := &MessageDescriptor{
		name:               opts.Name,
		newFn:              opts.New,
		base:               newSupplier(opts.Base),
		declaredFields:     opts.Fields,
		discriminatorValue: strings.ToUpper(opts.DiscriminatorValue),
	}
	for _, s := range opts.Subtypes {
		d.subtypeSuppliers = append(d.subtypeSuppliers, newSupplier(s))
	}
	return d
}

func (d *MessageDescriptor) Type() Type { return TypeMessage }

func (d *MessageDescriptor) String() string {
	if d.name != "" {
		return d.name
	}
	return "message"
}

// New creates a fresh zero-valued instance of the described message.
func (d *MessageDescriptor) New() Message { return d.newFn() }

// Base returns the base message descriptor, or nil for a root message.
func (d *MessageDescriptor) Base() *MessageDescriptor {
	b := d.base.get()
	if b == nil {
		return nil
	}
	return b.(*MessageDescriptor)
}

// DiscriminatorValue returns the canonical enum value name identifying
// this subtype in a polymorphic tree, or "" for the root.
func (d *MessageDescriptor) DiscriminatorValue() string { return d.discriminatorValue }

// DeclaredFields returns the fields declared directly on this message.
func (d *MessageDescriptor) DeclaredFields() []*FieldDescriptor { return d.declaredFields }

// Fields returns inherited fields followed by declared fields.
func (d *MessageDescriptor) Fields() []*FieldDescriptor {
	d.resolveFields()
	return d.fields
}

// Discriminator returns the discriminator field of the polymorphic tree
// this message belongs to, or nil.
func (d *MessageDescriptor) Discriminator() *FieldDescriptor {
	d.resolveFields()
	return d.discriminator
}

// IsPolymorphic reports whether the message belongs to a polymorphic tree.
func (d *MessageDescriptor) IsPolymorphic() bool {
	return d.Discriminator() != nil
}

func (d *MessageDescriptor) resolveFields() {
	d.fieldsOnce.Do(func() {
		if base := d.Base(); base != nil {
			d.fields = append(d.fields, base.Fields()...)
		}
		d.fields = append(d.fields, d.declaredFields...)
		for _, f := range d.fields {
			if f.IsDiscriminator() {
				d.discriminator = f
				break
			}
		}
	})
}

// Subtypes returns the descriptors of the subtypes declared for this
// message (its descendants in the polymorphic tree, not its siblings or
// ancestors), resolving them on first use.
func (d *MessageDescriptor) Subtypes() []*MessageDescriptor {
	d.resolveSubtypes()
	return d.subtypes
}

func (d *MessageDescriptor) resolveSubtypes() {
	d.subtypesOnce.Do(func() {
		d.subtypeIndex = make(map[string]*MessageDescriptor, len(d.subtypeSuppliers))
		for _, s := range d.subtypeSuppliers {
			sub := s.get().(*MessageDescriptor)
			d.subtypes = append(d.subtypes, sub)
			d.subtypeIndex[sub.discriminatorValue] = sub
		}
	})
}

// FindField returns a field by name, or nil.
func (d *MessageDescriptor) FindField(name string) *FieldDescriptor {
	for _, f := range d.Fields() {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// FindSubtype returns the subtype descriptor whose discriminator value
// matches v, or the receiver itself when v is nil or unmatched. v may be
// a canonical value name or a generated enum value.
func (d *MessageDescriptor) FindSubtype(v any) *MessageDescriptor {
	d.resolveSubtypes()
	if v == nil {
		return d
	}

	var name string
	if s, ok := v.(string); ok {
		name = strings.ToUpper(s)
	} else if disc := d.Discriminator(); disc != nil {
		if ed, ok := disc.Type().(*EnumDescriptor); ok {
			name = ed.nameOf(v)
		}
	}

	if sub, ok := d.subtypeIndex[name]; ok {
		return sub
	}
	return d
}

// InheritsFrom reports whether d is base or one of its descendants.
func (d *MessageDescriptor) InheritsFrom(base *MessageDescriptor) bool {
	for cur := d; cur != nil; cur = cur.Base() {
		if cur == base {
			return true
		}
	}
	return false
}

// ArgOpts configures a method argument descriptor.
type ArgOpts struct {
	Name  string
	Type  Provider
	Query bool
	Post  bool
}

// ArgDescriptor describes a method argument. An argument is a path
// argument unless flagged as query or post.
type ArgDescriptor struct {
	name    string
	typ     *supplier
	isQuery bool
	isPost  bool
}

// NewArgDescriptor creates an argument descriptor.
func NewArgDescriptor(opts ArgOpts) *ArgDescriptor {
	return &ArgDescriptor{
		name:    opts.Name,
		typ:     newSupplier(opts.Type),
		isQuery: opts.Query,
		isPost:  opts.Post,
	}
}

func (a *ArgDescriptor) Name() string     { return a.name }
func (a *ArgDescriptor) Type() Descriptor { return a.typ.get() }
func (a *ArgDescriptor) IsQuery() bool    { return a.isQuery }
func (a *ArgDescriptor) IsPost() bool     { return a.isPost }

// InvokeFunc dispatches a bound call onto a service implementation. It
// is emitted by generated code and converts canonical kwargs into the
// typed service method signature.
type InvokeFunc func(ctx context.Context, service any, kwargs map[string]any) (any, error)

// MethodOpts configures an interface method descriptor.
type MethodOpts struct {
	Name   string
	Result Provider
	Args   []*ArgDescriptor
	Post   bool
	Invoke InvokeFunc
}

// MethodDescriptor describes an interface method.
type MethodDescriptor struct {
	name   string
	result *supplier
	args   []*ArgDescriptor
	isPost bool
	invoke InvokeFunc
}

// NewMethodDescriptor creates a method descriptor.
func NewMethodDescriptor(opts MethodOpts) *MethodDescriptor {
	return &MethodDescriptor{
		name:   opts.Name,
		result: newSupplier(opts.Result),
		args:   opts.Args,
		isPost: opts.Post,
		invoke: opts.Invoke,
	}
}

func (m *MethodDescriptor) Name() string           { return m.name }
func (m *MethodDescriptor) Result() Descriptor     { return m.result.get() }
func (m *MethodDescriptor) Args() []*ArgDescriptor { return m.args }
func (m *MethodDescriptor) IsPost() bool           { return m.isPost }

// IsTerminal reports whether the method ends an invocation chain, i.e.
// its result is a data type or void rather than an interface.
func (m *MethodDescriptor) IsTerminal() bool {
	return m.Result().Type() != TypeInterface
}

// FindArg returns an argument by name, or nil.
func (m *MethodDescriptor) FindArg(name string) *ArgDescriptor {
	for _, a := range m.args {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// Invoke dispatches the method on a service with bound kwargs.
func (m *MethodDescriptor) Invoke(ctx context.Context, service any, kwargs map[string]any) (any, error) {
	if m.invoke == nil {
		return nil, fmt.Errorf("pdef: method %q has no invoke binding", m.name)
	}
	return m.invoke(ctx, service, kwargs)
}

// String returns the method signature.
func (m *MethodDescriptor) String() string {
	var b strings.Builder
	b.WriteString(m.name)
	b.WriteByte('(')
	for i, a := range m.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Name())
		b.WriteByte(' ')
		b.WriteString(a.Type().String())
	}
	b.WriteString(")=")
	b.WriteString(m.Result().String())
	return b.String()
}

// InterfaceOpts configures an interface descriptor. A derived interface
// exposes the union of its base's methods and its own.
type InterfaceOpts struct {
	Name    string
	Base    Provider
	Exc     Provider
	Methods []*MethodDescriptor
}

// InterfaceDescriptor describes an interface: its methods and the
// application exception its methods may raise.
type InterfaceDescriptor struct {
	name            string
	base            *supplier
	exc             *supplier
	declaredMethods []*MethodDescriptor

	methodsOnce sync.Once
	methods     []*MethodDescriptor
}

// NewInterfaceDescriptor creates an interface descriptor.
func NewInterfaceDescriptor(opts InterfaceOpts) *InterfaceDescriptor {
	return &InterfaceDescriptor{
		name:            opts.Name,
		base:            newSupplier(opts.Base),
		exc:             newSupplier(opts.Exc),
		declaredMethods: opts.Methods,
	}
}

func (d *InterfaceDescriptor) Type() Type { return TypeInterface }

func (d *InterfaceDescriptor) String() string {
	if d.name != "" {
		return d.name
	}
	return "interface"
}

// Base returns the base interface descriptor, or nil.
func (d *InterfaceDescriptor) Base() *InterfaceDescriptor {
	b := d.base.get()
	if b == nil {
		return nil
	}
	return b.(*InterfaceDescriptor)
}

// Exc returns the descriptor of the interface's application exception,
// inherited from the base interface when not declared, or nil.
func (d *InterfaceDescriptor) Exc() *MessageDescriptor {
	if e := d.exc.get(); e != nil {
		return e.(*MessageDescriptor)
	}
	if base := d.Base(); base != nil {
		return base.Exc()
	}
	return nil
}

// Methods returns inherited methods followed by declared methods, in
// stable declaration order.
func (d *InterfaceDescriptor) Methods() []*MethodDescriptor {
	d.methodsOnce.Do(func() {
		if base := d.Base(); base != nil {
			d.methods = append(d.methods, base.Methods()...)
		}
		d.methods = append(d.methods, d.declaredMethods...)
	})
	return d.methods
}

// FindMethod returns a method by exact name, or nil.
func (d *InterfaceDescriptor) FindMethod(name string) *MethodDescriptor {
	for _, m := range d.Methods() {
		if m.Name() == name {
			return m
		}
	}
	return nil
}
