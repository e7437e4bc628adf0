package pdeftest

import (
	pdef "github.com/pdef/pdef-go"
)

// PolymorphicType discriminates the Base message tree.
type PolymorphicType string

const (
	PolymorphicTypeSubtype           PolymorphicType = "SUBTYPE"
	PolymorphicTypeSubtype2          PolymorphicType = "SUBTYPE2"
	PolymorphicTypeMultiLevelSubtype PolymorphicType = "MULTILEVEL_SUBTYPE"
)

// PolymorphicTypeDescriptor describes PolymorphicType.
var PolymorphicTypeDescriptor = pdef.NewEnumDescriptor(pdef.EnumOpts{
	Name:   "PolymorphicType",
	Values: []string{"SUBTYPE", "SUBTYPE2", "MULTILEVEL_SUBTYPE"},
	Wrap: func(name string) any { return PolymorphicType(name) },
	Unwrap: func(v any) string {
		e, _ := v.(PolymorphicType)
		return string(e)
	},
})

// Base is the root of a polymorphic message tree; its "type" field is
// the discriminator.
type Base struct {
	typ   *PolymorphicType
	field *string
}

func NewBase() *Base { return &Base{} }

func (m *Base) PdefDescriptor() *pdef.MessageDescriptor { return BaseDescriptor }

func (m *Base) asBase() *Base { return m }

func (m *Base) Type() PolymorphicType {
	if m.typ == nil {
		return ""
	}
	return *m.typ
}

func (m *Base) SetType(v PolymorphicType) *Base {
	m.typ = &v
	return m
}

func (m *Base) HasType() bool { return m.typ != nil }

func (m *Base) Field() string {
	if m.field == nil {
		return ""
	}
	return *m.field
}

func (m *Base) SetField(v string) *Base {
	m.field = &v
	return m
}

func (m *Base) HasField() bool { return m.field != nil }

// Subtype is a first-level subtype of Base.
type Subtype struct {
	Base
	subfield *string
}

func NewSubtype() *Subtype {
	m := &Subtype{}
	m.SetType(PolymorphicTypeSubtype)
	return m
}

func (m *Subtype) PdefDescriptor() *pdef.MessageDescriptor { return SubtypeDescriptor }

func (m *Subtype) asSubtype() *Subtype { return m }

func (m *Subtype) Subfield() string {
	if m.subfield == nil {
		return ""
	}
	return *m.subfield
}

func (m *Subtype) SetSubfield(v string) *Subtype {
	m.subfield = &v
	return m
}

func (m *Subtype) HasSubfield() bool { return m.subfield != nil }

// Subtype2 is a sibling first-level subtype of Base.
type Subtype2 struct {
	Base
	subfield2 *string
}

func NewSubtype2() *Subtype2 {
	m := &Subtype2{}
	m.SetType(PolymorphicTypeSubtype2)
	return m
}

func (m *Subtype2) PdefDescriptor() *pdef.MessageDescriptor { return Subtype2Descriptor }

func (m *Subtype2) asSubtype2() *Subtype2 { return m }

func (m *Subtype2) Subfield2() string {
	if m.subfield2 == nil {
		return ""
	}
	return *m.subfield2
}

func (m *Subtype2) SetSubfield2(v string) *Subtype2 {
	m.subfield2 = &v
	return m
}

func (m *Subtype2) HasSubfield2() bool { return m.subfield2 != nil }

// MultiLevelSubtype is a second-level subtype inheriting Subtype.
type MultiLevelSubtype struct {
	Subtype
	mfield *string
}

func NewMultiLevelSubtype() *MultiLevelSubtype {
	m := &MultiLevelSubtype{}
	m.SetType(PolymorphicTypeMultiLevelSubtype)
	return m
}

func (m *MultiLevelSubtype) PdefDescriptor() *pdef.MessageDescriptor {
	return MultiLevelSubtypeDescriptor
}

func (m *MultiLevelSubtype) asMultiLevelSubtype() *MultiLevelSubtype { return m }

func (m *MultiLevelSubtype) Mfield() string {
	if m.mfield == nil {
		return ""
	}
	return *m.mfield
}

func (m *MultiLevelSubtype) SetMfield(v string) *MultiLevelSubtype {
	m.mfield = &v
	return m
}

func (m *MultiLevelSubtype) HasMfield() bool { return m.mfield != nil }

// Descriptors of the polymorphic tree. The tree is cyclic, so the
// cross references are providers wired at package initialization.
var (
	BaseDescriptor              *pdef.MessageDescriptor
	SubtypeDescriptor           *pdef.MessageDescriptor
	Subtype2Descriptor          *pdef.MessageDescriptor
	MultiLevelSubtypeDescriptor *pdef.MessageDescriptor
)

type hasBase interface{ asBase() *Base }

type hasSubtype interface{ asSubtype() *Subtype }

type hasSubtype2 interface{ asSubtype2() *Subtype2 }

type hasMultiLevelSubtype interface{ asMultiLevelSubtype() *MultiLevelSubtype }

func init() {
	BaseDescriptor = pdef.NewMessageDescriptor(pdef.MessageOpts{
		Name: "Base",
		New:  func() pdef.Message { return NewBase() },
		Fields: []*pdef.FieldDescriptor{
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name:          "type",
				Type:          pdef.Eager(PolymorphicTypeDescriptor),
				Discriminator: true,
				Get: func(m pdef.Message) any {
					mm := m.(hasBase).asBase()
					if mm.typ == nil {
						return nil
					}
					return *mm.typ
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasBase).asBase()
					if v == nil {
						mm.typ = nil
						return
					}
					mm.SetType(v.(PolymorphicType))
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "field",
				Type: pdef.Eager(pdef.String),
				Get: func(m pdef.Message) any {
					mm := m.(hasBase).asBase()
					if mm.field == nil {
						return nil
					}
					return *mm.field
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasBase).asBase()
					if v == nil {
						mm.field = nil
						return
					}
					mm.SetField(v.(string))
				},
			}),
		},
		Subtypes: []pdef.Provider{
			func() pdef.Descriptor { return SubtypeDescriptor },
			func() pdef.Descriptor { return Subtype2Descriptor },
			func() pdef.Descriptor { return MultiLevelSubtypeDescriptor },
		},
	})

	SubtypeDescriptor = pdef.NewMessageDescriptor(pdef.MessageOpts{
		Name:               "Subtype",
		New:                func() pdef.Message { return NewSubtype() },
		Base:               func() pdef.Descriptor { return BaseDescriptor },
		DiscriminatorValue: string(PolymorphicTypeSubtype),
		Fields: []*pdef.FieldDescriptor{
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "subfield",
				Type: pdef.Eager(pdef.String),
				Get: func(m pdef.Message) any {
					mm := m.(hasSubtype).asSubtype()
					if mm.subfield == nil {
						return nil
					}
					return *mm.subfield
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasSubtype).asSubtype()
					if v == nil {
						mm.subfield = nil
						return
					}
					mm.SetSubfield(v.(string))
				},
			}),
		},
		Subtypes: []pdef.Provider{
			func() pdef.Descriptor { return MultiLevelSubtypeDescriptor },
		},
	})

	Subtype2Descriptor = pdef.NewMessageDescriptor(pdef.MessageOpts{
		Name:               "Subtype2",
		New:                func() pdef.Message { return NewSubtype2() },
		Base:               func() pdef.Descriptor { return BaseDescriptor },
		DiscriminatorValue: string(PolymorphicTypeSubtype2),
		Fields: []*pdef.FieldDescriptor{
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "subfield2",
				Type: pdef.Eager(pdef.String),
				Get: func(m pdef.Message) any {
					mm := m.(hasSubtype2).asSubtype2()
					if mm.subfield2 == nil {
						return nil
					}
					return *mm.subfield2
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasSubtype2).asSubtype2()
					if v == nil {
						mm.subfield2 = nil
						return
					}
					mm.SetSubfield2(v.(string))
				},
			}),
		},
	})

	MultiLevelSubtypeDescriptor = pdef.NewMessageDescriptor(pdef.MessageOpts{
		Name:               "MultiLevelSubtype",
		New:                func() pdef.Message { return NewMultiLevelSubtype() },
		Base:               func() pdef.Descriptor { return SubtypeDescriptor },
		DiscriminatorValue: string(PolymorphicTypeMultiLevelSubtype),
		Fields: []*pdef.FieldDescriptor{
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "mfield",
				Type: pdef.Eager(pdef.String),
				Get: func(m pdef.Message) any {
					mm := m.(hasMultiLevelSubtype).asMultiLevelSubtype()
					if mm.mfield == nil {
						return nil
					}
					return *mm.mfield
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasMultiLevelSubtype).asMultiLevelSubtype()
					if v == nil {
						mm.mfield = nil
						return
					}
					mm.SetMfield(v.(string))
				},
			}),
		},
	})
}
