package ast

// Type is the AST representation of a type annotation, per spec.md §4.3:
//
//	TYPE := BASE ('|' BASE)*
//	BASE := int | float | bool | string | array[TYPE] | dict{TYPE:TYPE} | ...
//
// It is a small closed sum type, not a general type system — satisfaction
// checking and coercion live in internal/typesystem.
type Type interface {
	typeNode()
}

// BasicType names one of the scalar kinds or the "any" wildcard `...`.
type BasicType struct {
	Name string // "int", "float", "bool", "string", "any"
}

func (b *BasicType) typeNode() {}

// ArrayType is `array[Elem]`.
type ArrayType struct {
	Elem Type
}

func (a *ArrayType) typeNode() {}

// DictType is `dict{Key:Value}`. Key must be a BasicType per spec.md §4.3
// ("A dict key-type must be basic") — enforced by the parser, not this
// struct.
type DictType struct {
	Key   Type
	Value Type
}

func (d *DictType) typeNode() {}

// UnionType is `A | B | ...`.
type UnionType struct {
	Options []Type
}

func (u *UnionType) typeNode() {}
