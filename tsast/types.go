package tsast

// PredefinedType is a keyword type: string, number, boolean, any, void,
// unknown, never, object, symbol, bigint, null or undefined.
type PredefinedType struct {
	Name string
}

// ArrayType is `Elem[]`.
type ArrayType struct {
	Elem TypeNode
}

// UnionType is `A | B | C`, flattened and in source order.
type UnionType struct {
	Types []TypeNode
}

// LiteralType is a literal used as a type. Value is a *StringLit, *NumberLit,
// *BoolLit, or *OtherExpr for anything else (for example `-1`).
type LiteralType struct {
	Value Expression
}

// TypeRef is a reference to a named type with optional type arguments.
type TypeRef struct {
	Name string
	Args []TypeNode
}

// ParenType is `(T)`.
type ParenType struct {
	Type TypeNode
}

// OtherType is a type kind extraction does not model.
type OtherType struct {
	Kind string
}

func (*PredefinedType) typeNode() {}
func (*ArrayType) typeNode()      {}
func (*UnionType) typeNode()      {}
func (*LiteralType) typeNode()    {}
func (*TypeRef) typeNode()        {}
func (*ParenType) typeNode()      {}
func (*OtherType) typeNode()      {}
