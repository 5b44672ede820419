package tsparse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/LegacyCodeHQ/bagsakan/tsast"
)

func (l lowerer) optionalExpression(n *sitter.Node) tsast.Expression {
	if n == nil {
		return nil
	}
	return l.expression(n)
}

func (l lowerer) expression(n *sitter.Node) tsast.Expression {
	switch n.Type() {
	case "identifier":
		return &tsast.Identifier{Name: l.text(n)}

	case "member_expression":
		return &tsast.MemberExpr{
			Object:   l.optionalExpression(n.ChildByFieldName("object")),
			Property: l.text(n.ChildByFieldName("property")),
		}

	case "call_expression":
		call := &tsast.CallExpr{
			Callee: l.optionalExpression(n.ChildByFieldName("function")),
			Line:   int(n.StartPoint().Row) + 1,
		}
		args := n.ChildByFieldName("arguments")
		if args != nil && args.Type() == "arguments" {
			for _, arg := range namedChildren(args) {
				call.Args = append(call.Args, l.expression(arg))
			}
		}
		return call

	case "spread_element":
		return &tsast.SpreadElement{Arg: l.optionalExpression(firstNamedChild(n))}

	case "function", "function_expression", "generator_function":
		return &tsast.FunctionExpr{Body: l.block(n.ChildByFieldName("body"))}

	case "arrow_function":
		body := n.ChildByFieldName("body")
		if body == nil {
			return &tsast.ArrowFunc{}
		}
		if body.Type() == "statement_block" {
			return &tsast.ArrowFunc{Block: l.block(body)}
		}
		return &tsast.ArrowFunc{Expr: l.expression(body)}

	case "object":
		obj := &tsast.ObjectExpr{}
		for _, prop := range namedChildren(n) {
			switch prop.Type() {
			case "pair":
				key, _ := l.propertyName(prop.ChildByFieldName("key"))
				obj.Properties = append(obj.Properties, tsast.ObjectProperty{
					Key:   key,
					Value: l.optionalExpression(prop.ChildByFieldName("value")),
				})
			case "method_definition":
				key, _ := l.propertyName(prop.ChildByFieldName("name"))
				obj.Properties = append(obj.Properties, tsast.ObjectProperty{
					Key:   key,
					Value: &tsast.FunctionExpr{Body: l.block(prop.ChildByFieldName("body"))},
				})
			case "shorthand_property":
				obj.Properties = append(obj.Properties, tsast.ObjectProperty{Key: l.text(prop)})
			}
		}
		return obj

	case "unary_expression":
		return &tsast.UnaryExpr{
			Operator: l.text(n.ChildByFieldName("operator")),
			Arg:      l.optionalExpression(n.ChildByFieldName("argument")),
		}

	case "binary_expression":
		op := l.text(n.ChildByFieldName("operator"))
		left := l.optionalExpression(n.ChildByFieldName("left"))
		right := l.optionalExpression(n.ChildByFieldName("right"))
		switch op {
		case "&&", "||", "??":
			return &tsast.LogicalExpr{Operator: op, Left: left, Right: right}
		}
		return &tsast.BinaryExpr{Operator: op, Left: left, Right: right}

	case "parenthesized_expression":
		inner := firstNamedChild(n)
		if inner == nil {
			return &tsast.OtherExpr{Kind: n.Type()}
		}
		return &tsast.ParenExpr{Expr: l.expression(inner)}

	case "string":
		return &tsast.StringLit{Value: unquote(l.text(n))}

	case "number":
		value, ok := parseNumber(l.text(n))
		if !ok {
			return &tsast.OtherExpr{Kind: n.Type()}
		}
		return &tsast.NumberLit{Value: value}

	case "true":
		return &tsast.BoolLit{Value: true}

	case "false":
		return &tsast.BoolLit{Value: false}

	default:
		return &tsast.OtherExpr{Kind: n.Type()}
	}
}

func (l lowerer) typeAnnotation(n *sitter.Node) tsast.TypeNode {
	inner := firstNamedChild(n)
	if inner == nil {
		return &tsast.OtherType{Kind: n.Type()}
	}
	return l.typeNode(inner)
}

func (l lowerer) typeNode(n *sitter.Node) tsast.TypeNode {
	switch n.Type() {
	case "predefined_type":
		return &tsast.PredefinedType{Name: l.text(n)}

	case "type_identifier":
		return &tsast.TypeRef{Name: l.text(n)}

	case "generic_type":
		name := n.ChildByFieldName("name")
		if name == nil || name.Type() != "type_identifier" {
			return &tsast.OtherType{Kind: n.Type()}
		}
		ref := &tsast.TypeRef{Name: l.text(name)}
		for _, arg := range namedChildren(n.ChildByFieldName("type_arguments")) {
			ref.Args = append(ref.Args, l.typeNode(arg))
		}
		return ref

	case "array_type":
		elem := firstNamedChild(n)
		if elem == nil {
			return &tsast.OtherType{Kind: n.Type()}
		}
		return &tsast.ArrayType{Elem: l.typeNode(elem)}

	case "union_type":
		union := &tsast.UnionType{}
		l.flattenUnion(n, union)
		return union

	case "literal_type":
		lit := firstNamedChild(n)
		if lit == nil {
			return &tsast.OtherType{Kind: n.Type()}
		}
		switch lit.Type() {
		case "null", "undefined":
			return &tsast.PredefinedType{Name: lit.Type()}
		}
		return &tsast.LiteralType{Value: l.expression(lit)}

	case "parenthesized_type":
		inner := firstNamedChild(n)
		if inner == nil {
			return &tsast.OtherType{Kind: n.Type()}
		}
		return &tsast.ParenType{Type: l.typeNode(inner)}

	case "null", "undefined":
		return &tsast.PredefinedType{Name: n.Type()}

	default:
		return &tsast.OtherType{Kind: n.Type()}
	}
}

// flattenUnion collects the members of a left-nested union_type chain.
func (l lowerer) flattenUnion(n *sitter.Node, union *tsast.UnionType) {
	for _, member := range namedChildren(n) {
		if member.Type() == "union_type" {
			l.flattenUnion(member, union)
			continue
		}
		union.Types = append(union.Types, l.typeNode(member))
	}
}
