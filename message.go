package pdef

import (
	"io"
	"time"
)

// Equal reports deep structural equality of two messages. Messages are
// equal when they have the same descriptor and every explicitly-present
// field compares equal; a field unset on both sides is equal regardless
// of any lazily materialized default.
func Equal(a, b Message) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	d := a.PdefDescriptor()
	if d != b.PdefDescriptor() {
		return false
	}
	for _, f := range d.Fields() {
		if !equalValues(f.Get(a), f.Get(b), f.Type()) {
			return false
		}
	}
	return true
}

func equalValues(a, b any, d Descriptor) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch dd := d.(type) {
	case *EnumDescriptor:
		return dd.nameOf(a) == dd.nameOf(b)

	case *ListDescriptor:
		la, ok1 := a.([]any)
		lb, ok2 := b.([]any)
		if !ok1 || !ok2 || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !equalValues(la[i], lb[i], dd.Element()) {
				return false
			}
		}
		return true

	case *SetDescriptor:
		sa, ok1 := a.(map[any]struct{})
		sb, ok2 := b.(map[any]struct{})
		if !ok1 || !ok2 || len(sa) != len(sb) {
			return false
		}
		for k := range sa {
			if _, ok := sb[k]; !ok {
				return false
			}
		}
		return true

	case *MapDescriptor:
		ma, ok1 := a.(map[any]any)
		mb, ok2 := b.(map[any]any)
		if !ok1 || !ok2 || len(ma) != len(mb) {
			return false
		}
		for k, va := range ma {
			vb, ok := mb[k]
			if !ok || !equalValues(va, vb, dd.Value()) {
				return false
			}
		}
		return true

	case *MessageDescriptor:
		ma, ok1 := a.(Message)
		mb, ok2 := b.(Message)
		return ok1 && ok2 && Equal(ma, mb)
	}

	switch d.Type() {
	case TypeDateTime:
		ta, ok1 := a.(time.Time)
		tb, ok2 := b.(time.Time)
		return ok1 && ok2 && ta.Equal(tb)
	case TypeVoid:
		return true
	}
	return a == b
}

// CopyValue returns a deep copy of a canonical data value. Immutable
// values are returned as is.
func CopyValue(v any, d Descriptor) any {
	if v == nil {
		return nil
	}

	switch dd := d.(type) {
	case *ListDescriptor:
		src := v.([]any)
		out := make([]any, len(src))
		for i, e := range src {
			out[i] = CopyValue(e, dd.Element())
		}
		return out

	case *SetDescriptor:
		src := v.(map[any]struct{})
		out := make(map[any]struct{}, len(src))
		for k := range src {
			out[k] = struct{}{}
		}
		return out

	case *MapDescriptor:
		src := v.(map[any]any)
		out := make(map[any]any, len(src))
		for k, e := range src {
			out[k] = CopyValue(e, dd.Value())
		}
		return out

	case *MessageDescriptor:
		m := v.(Message)
		md := m.PdefDescriptor()
		out := md.New()
		for _, f := range md.Fields() {
			if fv := f.Get(m); fv != nil {
				f.Set(out, CopyValue(fv, f.Type()))
			}
		}
		return out
	}
	return v
}

// Clone returns a deep copy of a message, preserving its concrete type.
func Clone(m Message) Message {
	if m == nil {
		return nil
	}
	return CopyValue(m, m.PdefDescriptor()).(Message)
}

// Merge deep-copies the present fields of src into dst, skipping the
// discriminator. The messages must belong to the same inheritance chain;
// otherwise Merge does nothing. It returns dst.
func Merge(dst, src Message) Message {
	if dst == nil || src == nil {
		return dst
	}

	dd := dst.PdefDescriptor()
	sd := src.PdefDescriptor()
	var d *MessageDescriptor
	switch {
	case sd.InheritsFrom(dd):
		d = dd
	case dd.InheritsFrom(sd):
		d = sd
	default:
		return dst
	}

	for _, f := range d.Fields() {
		if f.IsDiscriminator() {
			continue
		}
		if v := f.Get(src); v != nil {
			f.Set(dst, CopyValue(v, f.Type()))
		}
	}
	return dst
}

// DefaultValue returns the typed default for a descriptor: "" for
// strings, zero for numbers, false for bool, an empty container for
// list/set/map, a fresh zero-valued instance for messages, and nil for
// enum, datetime and void.
func DefaultValue(d Descriptor) any {
	switch d.Type() {
	case TypeBool:
		return false
	case TypeInt16:
		return int16(0)
	case TypeInt32:
		return int32(0)
	case TypeInt64:
		return int64(0)
	case TypeFloat:
		return float32(0)
	case TypeDouble:
		return float64(0)
	case TypeString:
		return ""
	case TypeList:
		return []any{}
	case TypeSet:
		return map[any]struct{}{}
	case TypeMap:
		return map[any]any{}
	case TypeMessage:
		return d.(*MessageDescriptor).New()
	}
	return nil
}

// ToData converts a message to a JSON-compatible object tree using its
// bound descriptor.
func ToData(m Message) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	v, err := Object.Write(m, m.PdefDescriptor())
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

// FromData parses a message from a JSON-compatible object tree.
func FromData(data map[string]any, d *MessageDescriptor) (Message, error) {
	if data == nil {
		return nil, nil
	}
	v, err := Object.Read(data, d)
	if err != nil {
		return nil, err
	}
	return v.(Message), nil
}

// ToJSON serializes a message to a JSON string using its bound descriptor.
func ToJSON(m Message) (string, error) {
	if m == nil {
		return "null", nil
	}
	return JSON.Write(m, m.PdefDescriptor())
}

// FromJSON parses a message from a JSON string. A "null" input yields nil.
func FromJSON(s string, d *MessageDescriptor) (Message, error) {
	v, err := JSON.Read(s, d)
	if err != nil || v == nil {
		return nil, err
	}
	return v.(Message), nil
}

// WriteJSONTo serializes a message as JSON to a writer.
func WriteJSONTo(w io.Writer, m Message) error {
	if m == nil {
		_, err := io.WriteString(w, "null")
		return err
	}
	return JSON.WriteTo(w, m, m.PdefDescriptor())
}

// ReadJSONFrom parses a message from a JSON byte stream.
func ReadJSONFrom(r io.Reader, d *MessageDescriptor) (Message, error) {
	v, err := JSON.ReadFrom(r, d)
	if err != nil || v == nil {
		return nil, err
	}
	return v.(Message), nil
}
