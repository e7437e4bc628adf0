// Package pdeftest contains a hand-maintained copy of the protocol a
// pdef compiler would generate for the runtime's test suites: plain and
// complex messages, a polymorphic inheritance tree, and a test
// interface with its client and service bindings.
package pdeftest

import (
	"time"

	pdef "github.com/pdef/pdef-go"
)

// TestEnum values.
type TestEnum string

const (
	TestEnumOne   TestEnum = "ONE"
	TestEnumTwo   TestEnum = "TWO"
	TestEnumThree TestEnum = "THREE"
)

// TestEnumDescriptor describes TestEnum.
var TestEnumDescriptor = pdef.NewEnumDescriptor(pdef.EnumOpts{
	Name:   "TestEnum",
	Values: []string{"ONE", "TWO", "THREE"},
	Wrap: func(name string) any { return TestEnum(name) },
	Unwrap: func(v any) string {
		e, _ := v.(TestEnum)
		return string(e)
	},
})

// TestMessage is a simple message with three primitive fields.
type TestMessage struct {
	string0 *string
	bool0   *bool
	int0    *int32
}

func NewTestMessage() *TestMessage { return &TestMessage{} }

func (m *TestMessage) PdefDescriptor() *pdef.MessageDescriptor { return TestMessageDescriptor }

func (m *TestMessage) asTestMessage() *TestMessage { return m }

func (m *TestMessage) String0() string {
	if m.string0 == nil {
		return ""
	}
	return *m.string0
}

func (m *TestMessage) SetString0(v string) *TestMessage {
	m.string0 = &v
	return m
}

func (m *TestMessage) HasString0() bool { return m.string0 != nil }

func (m *TestMessage) Bool0() bool {
	if m.bool0 == nil {
		return false
	}
	return *m.bool0
}

func (m *TestMessage) SetBool0(v bool) *TestMessage {
	m.bool0 = &v
	return m
}

func (m *TestMessage) HasBool0() bool { return m.bool0 != nil }

func (m *TestMessage) Int0() int32 {
	if m.int0 == nil {
		return 0
	}
	return *m.int0
}

func (m *TestMessage) SetInt0(v int32) *TestMessage {
	m.int0 = &v
	return m
}

func (m *TestMessage) HasInt0() bool { return m.int0 != nil }

// TestMessageDescriptor describes TestMessage.
var TestMessageDescriptor *pdef.MessageDescriptor

type hasTestMessage interface{ asTestMessage() *TestMessage }

func init() {
	TestMessageDescriptor = pdef.NewMessageDescriptor(pdef.MessageOpts{
		Name: "TestMessage",
		New:  func() pdef.Message { return NewTestMessage() },
		Fields: []*pdef.FieldDescriptor{
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "string0",
				Type: pdef.Eager(pdef.String),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestMessage).asTestMessage()
					if mm.string0 == nil {
						return nil
					}
					return *mm.string0
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestMessage).asTestMessage()
					if v == nil {
						mm.string0 = nil
						return
					}
					mm.SetString0(v.(string))
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "bool0",
				Type: pdef.Eager(pdef.Bool),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestMessage).asTestMessage()
					if mm.bool0 == nil {
						return nil
					}
					return *mm.bool0
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestMessage).asTestMessage()
					if v == nil {
						mm.bool0 = nil
						return
					}
					mm.SetBool0(v.(bool))
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "int0",
				Type: pdef.Eager(pdef.Int32),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestMessage).asTestMessage()
					if mm.int0 == nil {
						return nil
					}
					return *mm.int0
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestMessage).asTestMessage()
					if v == nil {
						mm.int0 = nil
						return
					}
					mm.SetInt0(v.(int32))
				},
			}),
		},
	})
}

// TestComplexMessage inherits TestMessage and adds a field of every
// remaining data type.
type TestComplexMessage struct {
	TestMessage

	short0    *int16
	long0     *int64
	float0    *float32
	double0   *float64
	datetime0 *time.Time
	enum0     *TestEnum

	list0   []int32
	hasList0 bool
	set0    map[int32]struct{}
	hasSet0 bool
	map0    map[int32]float32
	hasMap0 bool

	message0    *TestMessage
	hasMessage0 bool

	polymorphic    pdef.Message
	hasPolymorphic bool
}

func NewTestComplexMessage() *TestComplexMessage { return &TestComplexMessage{} }

func (m *TestComplexMessage) PdefDescriptor() *pdef.MessageDescriptor {
	return TestComplexMessageDescriptor
}

func (m *TestComplexMessage) asTestComplexMessage() *TestComplexMessage { return m }

func (m *TestComplexMessage) Short0() int16 {
	if m.short0 == nil {
		return 0
	}
	return *m.short0
}

func (m *TestComplexMessage) SetShort0(v int16) *TestComplexMessage {
	m.short0 = &v
	return m
}

func (m *TestComplexMessage) HasShort0() bool { return m.short0 != nil }

func (m *TestComplexMessage) Long0() int64 {
	if m.long0 == nil {
		return 0
	}
	return *m.long0
}

func (m *TestComplexMessage) SetLong0(v int64) *TestComplexMessage {
	m.long0 = &v
	return m
}

func (m *TestComplexMessage) HasLong0() bool { return m.long0 != nil }

func (m *TestComplexMessage) Float0() float32 {
	if m.float0 == nil {
		return 0
	}
	return *m.float0
}

func (m *TestComplexMessage) SetFloat0(v float32) *TestComplexMessage {
	m.float0 = &v
	return m
}

func (m *TestComplexMessage) HasFloat0() bool { return m.float0 != nil }

func (m *TestComplexMessage) Double0() float64 {
	if m.double0 == nil {
		return 0
	}
	return *m.double0
}

func (m *TestComplexMessage) SetDouble0(v float64) *TestComplexMessage {
	m.double0 = &v
	return m
}

func (m *TestComplexMessage) HasDouble0() bool { return m.double0 != nil }

func (m *TestComplexMessage) Datetime0() time.Time {
	if m.datetime0 == nil {
		return time.Time{}
	}
	return *m.datetime0
}

func (m *TestComplexMessage) SetDatetime0(v time.Time) *TestComplexMessage {
	m.datetime0 = &v
	return m
}

func (m *TestComplexMessage) HasDatetime0() bool { return m.datetime0 != nil }

func (m *TestComplexMessage) Enum0() TestEnum {
	if m.enum0 == nil {
		return ""
	}
	return *m.enum0
}

func (m *TestComplexMessage) SetEnum0(v TestEnum) *TestComplexMessage {
	m.enum0 = &v
	return m
}

func (m *TestComplexMessage) HasEnum0() bool { return m.enum0 != nil }

// List0 returns the list field, materializing an empty list on first
// read. The materialized default does not mark the field as set.
func (m *TestComplexMessage) List0() []int32 {
	if m.list0 == nil {
		m.list0 = []int32{}
	}
	return m.list0
}

func (m *TestComplexMessage) SetList0(v []int32) *TestComplexMessage {
	m.list0 = v
	m.hasList0 = true
	return m
}

func (m *TestComplexMessage) HasList0() bool { return m.hasList0 }

func (m *TestComplexMessage) Set0() map[int32]struct{} {
	if m.set0 == nil {
		m.set0 = map[int32]struct{}{}
	}
	return m.set0
}

func (m *TestComplexMessage) SetSet0(v map[int32]struct{}) *TestComplexMessage {
	m.set0 = v
	m.hasSet0 = true
	return m
}

func (m *TestComplexMessage) HasSet0() bool { return m.hasSet0 }

func (m *TestComplexMessage) Map0() map[int32]float32 {
	if m.map0 == nil {
		m.map0 = map[int32]float32{}
	}
	return m.map0
}

func (m *TestComplexMessage) SetMap0(v map[int32]float32) *TestComplexMessage {
	m.map0 = v
	m.hasMap0 = true
	return m
}

func (m *TestComplexMessage) HasMap0() bool { return m.hasMap0 }

func (m *TestComplexMessage) Message0() *TestMessage {
	if m.message0 == nil {
		m.message0 = NewTestMessage()
	}
	return m.message0
}

func (m *TestComplexMessage) SetMessage0(v *TestMessage) *TestComplexMessage {
	m.message0 = v
	m.hasMessage0 = v != nil
	return m
}

func (m *TestComplexMessage) HasMessage0() bool { return m.hasMessage0 }

func (m *TestComplexMessage) Polymorphic() pdef.Message {
	if m.polymorphic == nil {
		m.polymorphic = NewBase()
	}
	return m.polymorphic
}

func (m *TestComplexMessage) SetPolymorphic(v pdef.Message) *TestComplexMessage {
	m.polymorphic = v
	m.hasPolymorphic = v != nil
	return m
}

func (m *TestComplexMessage) HasPolymorphic() bool { return m.hasPolymorphic }

// TestComplexMessageDescriptor describes TestComplexMessage.
var TestComplexMessageDescriptor *pdef.MessageDescriptor

type hasTestComplexMessage interface {
	asTestComplexMessage() *TestComplexMessage
}

func init() {
	TestComplexMessageDescriptor = pdef.NewMessageDescriptor(pdef.MessageOpts{
		Name: "TestComplexMessage",
		New:  func() pdef.Message { return NewTestComplexMessage() },
		Base: func() pdef.Descriptor { return TestMessageDescriptor },
		Fields: []*pdef.FieldDescriptor{
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "short0",
				Type: pdef.Eager(pdef.Int16),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if mm.short0 == nil {
						return nil
					}
					return *mm.short0
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if v == nil {
						mm.short0 = nil
						return
					}
					mm.SetShort0(v.(int16))
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "long0",
				Type: pdef.Eager(pdef.Int64),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if mm.long0 == nil {
						return nil
					}
					return *mm.long0
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if v == nil {
						mm.long0 = nil
						return
					}
					mm.SetLong0(v.(int64))
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "float0",
				Type: pdef.Eager(pdef.Float),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if mm.float0 == nil {
						return nil
					}
					return *mm.float0
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if v == nil {
						mm.float0 = nil
						return
					}
					mm.SetFloat0(v.(float32))
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "double0",
				Type: pdef.Eager(pdef.Double),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if mm.double0 == nil {
						return nil
					}
					return *mm.double0
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if v == nil {
						mm.double0 = nil
						return
					}
					mm.SetDouble0(v.(float64))
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "datetime0",
				Type: pdef.Eager(pdef.DateTime),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if mm.datetime0 == nil {
						return nil
					}
					return *mm.datetime0
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if v == nil {
						mm.datetime0 = nil
						return
					}
					mm.SetDatetime0(v.(time.Time))
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "enum0",
				Type: pdef.Eager(TestEnumDescriptor),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if mm.enum0 == nil {
						return nil
					}
					return *mm.enum0
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if v == nil {
						mm.enum0 = nil
						return
					}
					mm.SetEnum0(v.(TestEnum))
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "list0",
				Type: pdef.Eager(pdef.ListOf(pdef.Int32)),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if !mm.hasList0 {
						return nil
					}
					return int32ListValue(mm.list0)
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if v == nil {
						mm.list0, mm.hasList0 = nil, false
						return
					}
					mm.SetList0(int32List(v))
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "set0",
				Type: pdef.Eager(pdef.SetOf(pdef.Int32)),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if !mm.hasSet0 {
						return nil
					}
					out := make(map[any]struct{}, len(mm.set0))
					for k := range mm.set0 {
						out[k] = struct{}{}
					}
					return out
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if v == nil {
						mm.set0, mm.hasSet0 = nil, false
						return
					}
					src := v.(map[any]struct{})
					out := make(map[int32]struct{}, len(src))
					for k := range src {
						out[k.(int32)] = struct{}{}
					}
					mm.SetSet0(out)
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "map0",
				Type: pdef.Eager(pdef.MapOf(pdef.Int32, pdef.Float)),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if !mm.hasMap0 {
						return nil
					}
					out := make(map[any]any, len(mm.map0))
					for k, e := range mm.map0 {
						out[k] = e
					}
					return out
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if v == nil {
						mm.map0, mm.hasMap0 = nil, false
						return
					}
					src := v.(map[any]any)
					out := make(map[int32]float32, len(src))
					for k, e := range src {
						out[k.(int32)] = e.(float32)
					}
					mm.SetMap0(out)
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "message0",
				Type: func() pdef.Descriptor { return TestMessageDescriptor },
				Get: func(m pdef.Message) any {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if !mm.hasMessage0 {
						return nil
					}
					return mm.message0
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if v == nil {
						mm.message0, mm.hasMessage0 = nil, false
						return
					}
					mm.SetMessage0(v.(*TestMessage))
				},
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "polymorphic",
				Type: func() pdef.Descriptor { return BaseDescriptor },
				Get: func(m pdef.Message) any {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if !mm.hasPolymorphic {
						return nil
					}
					return mm.polymorphic
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestComplexMessage).asTestComplexMessage()
					if v == nil {
						mm.polymorphic, mm.hasPolymorphic = nil, false
						return
					}
					mm.SetPolymorphic(v.(pdef.Message))
				},
			}),
		},
	})
}

func int32List(v any) []int32 {
	src := v.([]any)
	out := make([]int32, len(src))
	for i, e := range src {
		out[i] = e.(int32)
	}
	return out
}

func int32ListValue(src []int32) []any {
	out := make([]any, len(src))
	for i, e := range src {
		out[i] = e
	}
	return out
}
