// Package pdef implements the pdef runtime: a reflective type-descriptor
// model for messages, enums and interfaces, a polymorphic object/JSON codec
// driven by those descriptors, and an invocation model for chained RPC
// method calls. The rpc subpackage maps invocations onto HTTP.
//
// Descriptors are created once, at package initialization of generated
// code, and live for the process. Cyclic references between descriptors
// are expressed as lazily-resolved providers; resolution happens at most
// once and is safe for concurrent use.
package pdef

// Type identifies a pdef type. The set of types is closed.
type Type string

const (
	TypeBool     Type = "bool"
	TypeInt16    Type = "int16"
	TypeInt32    Type = "int32"
	TypeInt64    Type = "int64"
	TypeFloat    Type = "float"
	TypeDouble   Type = "double"
	TypeString   Type = "string"
	TypeDateTime Type = "datetime"

	TypeVoid Type = "void"

	TypeList Type = "list"
	TypeMap  Type = "map"
	TypeSet  Type = "set"

	TypeEnum      Type = "enum"
	TypeMessage   Type = "message"
	TypeInterface Type = "interface"
)

// IsPrimitive reports whether t is one of the primitive types
// (bool, the integers, the floats, string).
func (t Type) IsPrimitive() bool {
	switch t {
	case TypeBool, TypeInt16, TypeInt32, TypeInt64, TypeFloat, TypeDouble, TypeString:
		return true
	}
	return false
}

// IsData reports whether t is a data type, i.e. any type except interface.
func (t Type) IsData() bool {
	return t != TypeInterface && t != ""
}

// IsMutable reports whether values of t are mutable and must be
// deep-copied when an invocation captures them.
func (t Type) IsMutable() bool {
	switch t {
	case TypeList, TypeMap, TypeSet, TypeMessage:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}
