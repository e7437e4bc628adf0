package pdef

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SimpleISO8601 is the wire format for datetimes: UTC, seconds precision.
const SimpleISO8601 = "2006-01-02T15:04:05Z"

// Object converts values between their canonical typed form and a
// JSON-compatible object tree. It is stateless and safe for concurrent use.
var Object ObjectFormat

// ObjectFormat serializes and parses pdef data values as native object
// trees: maps, slices, strings, numbers, bools and time.Time values.
type ObjectFormat struct{}

// Write converts a typed value into a JSON-compatible tree. Message
// fields holding nil are omitted; the discriminator of a polymorphic
// message is encoded like any other field. Datetimes stay time.Time in
// the tree; the JSON layer formats them.
func (ObjectFormat) Write(v any, d Descriptor) (any, error) {
	if v == nil {
		return nil, nil
	}

	t := d.Type()
	if t.IsPrimitive() {
		return coercePrimitive(t, v)
	}

	switch dd := d.(type) {
	case *EnumDescriptor:
		name := dd.nameOf(v)
		if name == "" {
			return nil, fmt.Errorf("pdef: not an enum value %v", v)
		}
		return strings.ToLower(name), nil

	case *ListDescriptor:
		src, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("pdef: not a list value %T", v)
		}
		out := make([]any, len(src))
		for i, e := range src {
			enc, err := Object.Write(e, dd.Element())
			if err != nil {
				return nil, err
			}
			out[i] = enc
		}
		return out, nil

	case *SetDescriptor:
		src, ok := v.(map[any]struct{})
		if !ok {
			return nil, fmt.Errorf("pdef: not a set value %T", v)
		}
		out := make([]any, 0, len(src))
		for e := range src {
			enc, err := Object.Write(e, dd.Element())
			if err != nil {
				return nil, err
			}
			out = append(out, enc)
		}
		return out, nil

	case *MapDescriptor:
		src, ok := v.(map[any]any)
		if !ok {
			return nil, fmt.Errorf("pdef: not a map value %T", v)
		}
		out := make(map[string]any, len(src))
		for k, e := range src {
			ks, err := writeMapKey(k, dd.Key())
			if err != nil {
				return nil, err
			}
			enc, err := Object.Write(e, dd.Value())
			if err != nil {
				return nil, err
			}
			out[ks] = enc
		}
		return out, nil

	case *MessageDescriptor:
		m, ok := v.(Message)
		if !ok {
			return nil, fmt.Errorf("pdef: not a message value %T", v)
		}
		return writeMessage(m)
	}

	switch t {
	case TypeDateTime:
		tv, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("pdef: not a datetime value %T", v)
		}
		return tv, nil
	case TypeVoid:
		return nil, nil
	}
	return nil, fmt.Errorf("pdef: unsupported type %s", d)
}

// writeMessage encodes a message using the descriptor of its concrete
// type, which keeps polymorphic values intact.
func writeMessage(m Message) (map[string]any, error) {
	d := m.PdefDescriptor()
	out := make(map[string]any)
	for _, f := range d.Fields() {
		v := f.Get(m)
		if v == nil {
			// Skip null fields.
			continue
		}
		enc, err := Object.Write(v, f.Type())
		if err != nil {
			return nil, err
		}
		out[f.Name()] = enc
	}
	return out, nil
}

func writeMapKey(k any, d Descriptor) (string, error) {
	enc, err := Object.Write(k, d)
	if err != nil {
		return "", err
	}
	switch kv := enc.(type) {
	case string:
		return kv, nil
	case bool:
		return strconv.FormatBool(kv), nil
	case int16:
		return strconv.FormatInt(int64(kv), 10), nil
	case int32:
		return strconv.FormatInt(int64(kv), 10), nil
	case int64:
		return strconv.FormatInt(kv, 10), nil
	case float32:
		return strconv.FormatFloat(float64(kv), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(kv, 'g', -1, 64), nil
	case time.Time:
		return kv.UTC().Format(SimpleISO8601), nil
	}
	return "", fmt.Errorf("pdef: unsupported map key type %T", enc)
}

// Read converts a JSON-compatible tree back into a typed value. For
// polymorphic messages the discriminator field is read first and the
// concrete subtype instantiated; absent and null fields stay unset;
// unknown fields are ignored.
func (ObjectFormat) Read(v any, d Descriptor) (any, error) {
	if v == nil {
		return nil, nil
	}

	t := d.Type()
	if t.IsPrimitive() {
		return coercePrimitive(t, v)
	}

	switch dd := d.(type) {
	case *EnumDescriptor:
		name := dd.nameOf(v)
		if name == "" {
			return nil, nil
		}
		if canonical := dd.FindValue(name); canonical != "" {
			return dd.wrapValue(canonical), nil
		}
		return nil, nil

	case *ListDescriptor:
		src, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("pdef: cannot read list from %T", v)
		}
		out := make([]any, len(src))
		for i, e := range src {
			dec, err := Object.Read(e, dd.Element())
			if err != nil {
				return nil, err
			}
			out[i] = dec
		}
		return out, nil

	case *SetDescriptor:
		src, ok := v.([]any)
		if !ok {
			if s, ok := v.(map[any]struct{}); ok {
				return s, nil
			}
			return nil, fmt.Errorf("pdef: cannot read set from %T", v)
		}
		out := make(map[any]struct{}, len(src))
		for _, e := range src {
			dec, err := Object.Read(e, dd.Element())
			if err != nil {
				return nil, err
			}
			if !isComparable(dd.Element().Type()) {
				return nil, fmt.Errorf("pdef: unsupported set element type %s", dd.Element())
			}
			out[dec] = struct{}{}
		}
		return out, nil

	case *MapDescriptor:
		src, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("pdef: cannot read map from %T", v)
		}
		out := make(map[any]any, len(src))
		for ks, e := range src {
			k, err := Object.Read(ks, dd.Key())
			if err != nil {
				return nil, err
			}
			dec, err := Object.Read(e, dd.Value())
			if err != nil {
				return nil, err
			}
			out[k] = dec
		}
		return out, nil

	case *MessageDescriptor:
		src, ok := v.(map[string]any)
		if !ok {
			if m, ok := v.(Message); ok {
				return m, nil
			}
			return nil, fmt.Errorf("pdef: cannot read message from %T", v)
		}
		return readMessage(src, dd)
	}

	switch t {
	case TypeDateTime:
		switch tv := v.(type) {
		case time.Time:
			return tv, nil
		case string:
			parsed, err := time.Parse(SimpleISO8601, tv)
			if err == nil && parsed.Format(SimpleISO8601) != tv {
				err = fmt.Errorf("not in the %s form", SimpleISO8601)
			}
			if err != nil {
				return nil, fmt.Errorf("pdef: invalid datetime %q: %w", tv, err)
			}
			return parsed, nil
		}
		return nil, fmt.Errorf("pdef: cannot read datetime from %T", v)
	case TypeVoid:
		return nil, nil
	}
	return nil, fmt.Errorf("pdef: unsupported type %s", d)
}

func readMessage(src map[string]any, d *MessageDescriptor) (Message, error) {
	if d.IsPolymorphic() {
		disc := d.Discriminator()
		parsed, err := Object.Read(src[disc.Name()], disc.Type())
		if err != nil {
			return nil, err
		}
		d = d.FindSubtype(parsed)
	}

	m := d.New()
	for _, f := range d.Fields() {
		raw, ok := src[f.Name()]
		if !ok || raw == nil {
			continue
		}
		v, err := Object.Read(raw, f.Type())
		if err != nil {
			return nil, err
		}
		f.Set(m, v)
	}
	return m, nil
}

func isComparable(t Type) bool {
	return t.IsPrimitive() || t == TypeEnum || t == TypeDateTime
}

// coercePrimitive converts a value to the canonical native type of a
// primitive descriptor. JSON-decoded forms (json.Number, float64) and
// string renderings are accepted.
func coercePrimitive(t Type, v any) (any, error) {
	switch t {
	case TypeBool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(strings.ToLower(b))
			if err != nil {
				return nil, fmt.Errorf("pdef: invalid bool %q", b)
			}
			return parsed, nil
		}

	case TypeInt16:
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		return int16(n), nil
	case TypeInt32:
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	case TypeInt64:
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		return n, nil

	case TypeFloat:
		f, err := toFloat64(v)
		if err != nil {
			return nil, err
		}
		return float32(f), nil
	case TypeDouble:
		f, err := toFloat64(v)
		if err != nil {
			return nil, err
		}
		return f, nil

	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("pdef: cannot coerce %T to %s", v, t)
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	}
	return 0, fmt.Errorf("pdef: cannot coerce %T to an integer", v)
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("pdef: cannot coerce %T to a float", v)
}
