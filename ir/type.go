package ir

import "fmt"

// Type is the kind of value a Node holds.
type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ObjectType
	ArrayType
)

func (t Type) String() string {
	switch t {
	case NullType:
		return "Null"
	case NumberType:
		return "Number"
	case StringType:
		return "String"
	case BoolType:
		return "Bool"
	case ObjectType:
		return "Object"
	case ArrayType:
		return "Array"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Types lists every node type in declaration order.
func Types() []Type {
	return []Type{NullType, NumberType, StringType, BoolType, ObjectType, ArrayType}
}

// IsLeaf reports whether values of the type have no children.
func (t Type) IsLeaf() bool {
	return t != ObjectType && t != ArrayType
}
