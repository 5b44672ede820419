package extract

import (
	"strings"

	"github.com/LegacyCodeHQ/bagsakan/tsast"
)

// interfaceDecl builds an Interface. Top-level declarations of a
// declaration file are importable even without `export`.
func (e *extractor) interfaceDecl(decl *tsast.InterfaceDecl, exported bool) Interface {
	iface := Interface{
		Name:       decl.Name,
		TypeParams: decl.TypeParams,
		File:       e.file,
		Local:      !exported && !isDeclarationFile(e.file),
	}
	for _, member := range decl.Members {
		switch m := member.(type) {
		case *tsast.PropertySignature:
			prop := Property{Name: m.Name, Optional: m.Optional, Type: Primitive{Name: PrimitiveAny}}
			if m.Type != nil {
				prop.Type = NormalizeType(m.Type)
			}
			iface.Properties = append(iface.Properties, prop)
		case *tsast.OtherMember:
		}
	}
	return iface
}

// enumDecl resolves member discriminants. A numeric initializer resets the
// auto-increment counter to value+1; a member without initializer takes the
// counter and advances it.
func (e *extractor) enumDecl(decl *tsast.EnumDecl) Enum {
	enum := Enum{Name: decl.Name, File: e.file}
	next := 0.0
	for _, member := range decl.Members {
		var value Discriminant
		switch init := member.Init.(type) {
		case nil:
			value = Discriminant{Kind: DiscriminantNumber, Num: next}
			next++
		case *tsast.StringLit:
			value = Discriminant{Kind: DiscriminantString, Str: init.Value}
		case *tsast.NumberLit:
			value = Discriminant{Kind: DiscriminantNumber, Num: init.Value}
			next = init.Value + 1
		default:
			value = Discriminant{Kind: DiscriminantComputed}
		}
		enum.Members = append(enum.Members, EnumMember{Name: member.Name, Value: value})
	}
	return enum
}

// NormalizeType maps a syntax type node to a TypeExpr. Unsupported forms
// become Unknown.
func NormalizeType(node tsast.TypeNode) TypeExpr {
	switch t := node.(type) {
	case *tsast.PredefinedType:
		switch name := PrimitiveName(t.Name); name {
		case PrimitiveString, PrimitiveNumber, PrimitiveBoolean, PrimitiveAny,
			PrimitiveVoid, PrimitiveNull, PrimitiveUndefined:
			return Primitive{Name: name}
		}
		return Unknown{}
	case *tsast.ArrayType:
		return ArrayOf{Elem: NormalizeType(t.Elem)}
	case *tsast.UnionType:
		members := make([]TypeExpr, len(t.Types))
		for i, member := range t.Types {
			members[i] = NormalizeType(member)
		}
		return UnionOf{Members: members}
	case *tsast.LiteralType:
		switch v := t.Value.(type) {
		case *tsast.StringLit:
			return Literal{LitKind: LiteralString, Str: v.Value}
		case *tsast.NumberLit:
			return Literal{LitKind: LiteralNumber, Num: v.Value}
		case *tsast.BoolLit:
			return Literal{LitKind: LiteralBool, Bool: v.Value}
		}
		return Unknown{}
	case *tsast.TypeRef:
		ref := Reference{Name: t.Name}
		for _, arg := range t.Args {
			ref.Args = append(ref.Args, NormalizeType(arg))
		}
		return ref
	case *tsast.ParenType:
		return NormalizeType(t.Type)
	case *tsast.OtherType:
		return Unknown{}
	default:
		return Unknown{}
	}
}

func isDeclarationFile(file string) bool {
	for _, ext := range []string{".d.ts", ".d.mts", ".d.cts"} {
		if strings.HasSuffix(file, ext) {
			return true
		}
	}
	return false
}
