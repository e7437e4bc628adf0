package rpc

import (
	pdef "github.com/pdef/pdef-go"
)

// Result is the response envelope carried on both 200 and 422: at most
// one of data and error is set (a void result leaves both unset). Its
// descriptor is built per
// (data, error) descriptor pair, so the envelope runs through the
// ordinary codecs and participates in polymorphism like any message.
type Result struct {
	descriptor *pdef.MessageDescriptor
	data       any
	err        any
}

// NewResult creates an empty envelope for a data descriptor and an
// optional application exception descriptor. A nil exception descriptor
// falls back to a string error field.
func NewResult(datad, excd pdef.Descriptor) *Result {
	return newResultDescriptor(datad, excd).New().(*Result)
}

func (r *Result) PdefDescriptor() *pdef.MessageDescriptor { return r.descriptor }

// Data returns the successful result value, or nil.
func (r *Result) Data() any { return r.data }

// SetData sets the successful result value.
func (r *Result) SetData(v any) *Result {
	r.data = v
	return r
}

// Err returns the application exception value, or nil.
func (r *Result) Err() any { return r.err }

// SetErr sets the application exception value.
func (r *Result) SetErr(v any) *Result {
	r.err = v
	return r
}

func newResultDescriptor(datad, excd pdef.Descriptor) *pdef.MessageDescriptor {
	if excd == nil {
		excd = pdef.String
	}

	var d *pdef.MessageDescriptor
	d = pdef.NewMessageDescriptor(pdef.MessageOpts{
		Name: "RpcResult",
		New:  func() pdef.Message { return &Result{descriptor: d} },
		Fields: []*pdef.FieldDescriptor{
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "data",
				Type: pdef.Eager(datad),
				Get:  func(m pdef.Message) any { return m.(*Result).data },
				Set:  func(m pdef.Message, v any) { m.(*Result).data = v },
			}),
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "error",
				Type: pdef.Eager(excd),
				Get:  func(m pdef.Message) any { return m.(*Result).err },
				Set:  func(m pdef.Message, v any) { m.(*Result).err = v },
			}),
		},
	})
	return d
}
