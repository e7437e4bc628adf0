package pdef

import (
	"encoding/json"
	"io"
	"strings"
	"time"
)

// JSON serializes and parses pdef values as JSON strings through the
// object format. It is stateless and safe for concurrent use.
var JSON JSONFormat

// JSONFormat is a thin wrapper over ObjectFormat and encoding/json with
// a fixed datetime format. Output is UTF-8 without ASCII escaping; sets
// serialize as arrays.
type JSONFormat struct{}

// Write serializes a value to a JSON string.
func (JSONFormat) Write(v any, d Descriptor) (string, error) {
	var b strings.Builder
	if err := JSON.WriteTo(&b, v, d); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// WriteIndent serializes a value to an indented JSON string.
func (JSONFormat) WriteIndent(v any, d Descriptor) (string, error) {
	tree, err := Object.Write(v, d)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonTree(tree)); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// WriteTo serializes a value as JSON to a writer.
func (JSONFormat) WriteTo(w io.Writer, v any, d Descriptor) error {
	tree, err := Object.Write(v, d)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(jsonTree(tree))
}

// Read parses a value from a JSON string. A "null" input yields nil.
func (JSONFormat) Read(s string, d Descriptor) (any, error) {
	return JSON.ReadFrom(strings.NewReader(s), d)
}

// ReadFrom parses a value from a JSON byte stream.
func (JSONFormat) ReadFrom(r io.Reader, d Descriptor) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return Object.Read(raw, d)
}

// jsonTree rewrites an object tree for encoding/json: datetimes become
// fixed-format strings. The object format already renders sets as arrays
// and map keys as strings.
func jsonTree(v any) any {
	switch tv := v.(type) {
	case time.Time:
		return tv.UTC().Format(SimpleISO8601)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = jsonTree(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = jsonTree(e)
		}
		return out
	}
	return v
}
