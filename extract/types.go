package extract

import (
	"strconv"
	"strings"
)

// TypeKind identifies a TypeExpr variant.
type TypeKind int

const (
	KindPrimitive TypeKind = iota
	KindArray
	KindUnion
	KindLiteral
	KindReference
	KindUnknown
)

// TypeExpr is the normalized shape of a property type annotation.
type TypeExpr interface {
	Kind() TypeKind
	String() string
}

// PrimitiveName is one of the primitive keywords a guard can check.
type PrimitiveName string

const (
	PrimitiveString    PrimitiveName = "string"
	PrimitiveNumber    PrimitiveName = "number"
	PrimitiveBoolean   PrimitiveName = "boolean"
	PrimitiveAny       PrimitiveName = "any"
	PrimitiveVoid      PrimitiveName = "void"
	PrimitiveNull      PrimitiveName = "null"
	PrimitiveUndefined PrimitiveName = "undefined"
)

// Primitive is a keyword type.
type Primitive struct {
	Name PrimitiveName
}

// ArrayOf is `Elem[]`.
type ArrayOf struct {
	Elem TypeExpr
}

// UnionOf is `A | B | ...` in declaration order.
type UnionOf struct {
	Members []TypeExpr
}

// LiteralKind identifies the value held by a Literal.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBool
)

// Literal is a string, number or boolean literal type.
type Literal struct {
	LitKind LiteralKind
	Str     string
	Num     float64
	Bool    bool
}

// Reference is a named type with its type arguments.
type Reference struct {
	Name string
	Args []TypeExpr
}

// Unknown is any type form that is not modeled.
type Unknown struct{}

func (Primitive) Kind() TypeKind { return KindPrimitive }
func (ArrayOf) Kind() TypeKind   { return KindArray }
func (UnionOf) Kind() TypeKind   { return KindUnion }
func (Literal) Kind() TypeKind   { return KindLiteral }
func (Reference) Kind() TypeKind { return KindReference }
func (Unknown) Kind() TypeKind   { return KindUnknown }

func (p Primitive) String() string { return string(p.Name) }

func (a ArrayOf) String() string {
	if a.Elem.Kind() == KindUnion {
		return "(" + a.Elem.String() + ")[]"
	}
	return a.Elem.String() + "[]"
}

func (u UnionOf) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

func (l Literal) String() string {
	switch l.LitKind {
	case LiteralString:
		return "'" + l.Str + "'"
	case LiteralNumber:
		return FormatNumber(l.Num)
	default:
		return strconv.FormatBool(l.Bool)
	}
}

func (r Reference) String() string {
	if len(r.Args) == 0 {
		return r.Name
	}
	args := make([]string, len(r.Args))
	for i, a := range r.Args {
		args[i] = a.String()
	}
	return r.Name + "<" + strings.Join(args, ", ") + ">"
}

func (Unknown) String() string { return "unknown" }

// FormatNumber renders a number the way it would appear in source.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Property is one property of an interface.
type Property struct {
	Name     string
	Type     TypeExpr
	Optional bool
}

// Interface is an interface declaration with its properties in declaration order.
type Interface struct {
	Name       string
	TypeParams []string
	Properties []Property
	File       string
	// Local is set when the declaration cannot be imported from File.
	Local bool
}

// DiscriminantKind identifies the value backing an enum member.
type DiscriminantKind int

const (
	DiscriminantString DiscriminantKind = iota
	DiscriminantNumber
	DiscriminantComputed
)

// Discriminant is the resolved value of an enum member.
type Discriminant struct {
	Kind DiscriminantKind
	Str  string
	Num  float64
}

// EnumMember is one enum member.
type EnumMember struct {
	Name  string
	Value Discriminant
}

// Enum is an enum declaration with members in declaration order.
type Enum struct {
	Name    string
	Members []EnumMember
	File    string
}

// Invocation is a call to a validator-named function found in a root file.
type Invocation struct {
	FunctionName  string
	InterfaceName string
	File          string
	Line          int
}
