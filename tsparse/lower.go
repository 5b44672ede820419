package tsparse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/LegacyCodeHQ/bagsakan/tsast"
)

type lowerer struct {
	src []byte
}

func (l lowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(l.src)
}

func (l lowerer) statement(n *sitter.Node) tsast.Statement {
	switch n.Type() {
	case "import_statement":
		source := n.ChildByFieldName("source")
		if source == nil {
			return &tsast.OtherStmt{Kind: n.Type()}
		}
		return &tsast.ImportDecl{Source: cleanImportPath(l.text(source)), TypeOnly: hasChild(n, "type")}

	case "export_statement":
		return l.exportStatement(n)

	case "ambient_declaration":
		decl := firstNamedChild(n)
		if decl == nil || !isDeclaration(decl.Type()) {
			return &tsast.OtherStmt{Kind: n.Type()}
		}
		return &tsast.ExportDecl{Decl: l.statement(decl), Declare: true}

	case "interface_declaration":
		return l.interfaceDeclaration(n)

	case "enum_declaration":
		return l.enumDeclaration(n)

	case "function_declaration", "generator_function_declaration":
		return &tsast.FunctionDecl{
			Name: l.text(n.ChildByFieldName("name")),
			Body: l.block(n.ChildByFieldName("body")),
		}

	case "class_declaration", "abstract_class_declaration":
		return &tsast.ClassDecl{
			Name:    l.text(n.ChildByFieldName("name")),
			Members: l.classBody(n.ChildByFieldName("body")),
		}

	case "lexical_declaration", "variable_declaration":
		decl := &tsast.VarDecl{}
		for _, child := range namedChildren(n) {
			if child.Type() != "variable_declarator" {
				continue
			}
			decl.Declarators = append(decl.Declarators, tsast.Declarator{
				Name: l.text(child.ChildByFieldName("name")),
				Init: l.optionalExpression(child.ChildByFieldName("value")),
			})
		}
		return decl

	case "expression_statement":
		expr := firstNamedChild(n)
		if expr == nil {
			return &tsast.OtherStmt{Kind: n.Type()}
		}
		return &tsast.ExprStmt{Expr: l.expression(expr)}

	case "return_statement":
		return &tsast.ReturnStmt{Arg: l.optionalExpression(firstNamedChild(n))}

	case "if_statement":
		stmt := &tsast.IfStmt{
			Test: l.optionalExpression(n.ChildByFieldName("condition")),
		}
		if cons := n.ChildByFieldName("consequence"); cons != nil {
			stmt.Cons = l.statement(cons)
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			// else_clause wraps the alternative statement
			if inner := firstNamedChild(alt); inner != nil {
				stmt.Alt = l.statement(inner)
			}
		}
		return stmt

	case "statement_block":
		return l.block(n)

	default:
		return &tsast.OtherStmt{Kind: n.Type()}
	}
}

func isDeclaration(kind string) bool {
	switch kind {
	case "interface_declaration", "enum_declaration", "function_declaration",
		"generator_function_declaration", "class_declaration", "abstract_class_declaration",
		"lexical_declaration", "variable_declaration", "function_signature":
		return true
	}
	return false
}

func (l lowerer) exportStatement(n *sitter.Node) tsast.Statement {
	if source := n.ChildByFieldName("source"); source != nil {
		all := hasChild(n, "*") || hasChild(n, "namespace_export")
		return &tsast.ExportFrom{Source: cleanImportPath(l.text(source)), All: all}
	}
	if decl := n.ChildByFieldName("declaration"); decl != nil {
		return &tsast.ExportDecl{Decl: l.statement(decl)}
	}
	if value := n.ChildByFieldName("value"); value != nil {
		return &tsast.ExportDefault{Expr: l.expression(value)}
	}
	for _, child := range namedChildren(n) {
		if child.Type() == "export_clause" {
			return l.exportClause(child)
		}
	}
	return &tsast.OtherStmt{Kind: n.Type()}
}

// exportClause lowers `{ a, b as c }`. Renamed specifiers are left out: the
// local declaration is not importable under its own name.
func (l lowerer) exportClause(n *sitter.Node) *tsast.ExportNames {
	names := &tsast.ExportNames{}
	for _, spec := range namedChildren(n) {
		if spec.Type() != "export_specifier" {
			continue
		}
		name := l.text(spec.ChildByFieldName("name"))
		if alias := spec.ChildByFieldName("alias"); alias != nil && l.text(alias) != name {
			continue
		}
		names.Names = append(names.Names, name)
	}
	return names
}

func (l lowerer) block(n *sitter.Node) *tsast.Block {
	if n == nil {
		return nil
	}
	block := &tsast.Block{}
	for _, child := range namedChildren(n) {
		block.Statements = append(block.Statements, l.statement(child))
	}
	return block
}

func (l lowerer) interfaceDeclaration(n *sitter.Node) *tsast.InterfaceDecl {
	decl := &tsast.InterfaceDecl{Name: l.text(n.ChildByFieldName("name"))}
	for _, param := range namedChildren(n.ChildByFieldName("type_parameters")) {
		if param.Type() == "type_parameter" {
			decl.TypeParams = append(decl.TypeParams, l.text(param.ChildByFieldName("name")))
		}
	}
	for _, member := range namedChildren(n.ChildByFieldName("body")) {
		if member.Type() != "property_signature" {
			decl.Members = append(decl.Members, &tsast.OtherMember{Kind: member.Type()})
			continue
		}
		name, ok := l.propertyName(member.ChildByFieldName("name"))
		if !ok {
			decl.Members = append(decl.Members, &tsast.OtherMember{Kind: member.Type()})
			continue
		}
		prop := &tsast.PropertySignature{
			Name:     name,
			Optional: hasChild(member, "?"),
		}
		if annotation := member.ChildByFieldName("type"); annotation != nil {
			prop.Type = l.typeAnnotation(annotation)
		}
		decl.Members = append(decl.Members, prop)
	}
	return decl
}

// propertyName returns the static name of a property key.
// Computed keys have no static name.
func (l lowerer) propertyName(n *sitter.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "property_identifier", "identifier", "private_property_identifier":
		return l.text(n), true
	case "string":
		return unquote(l.text(n)), true
	case "number":
		return l.text(n), true
	default:
		return "", false
	}
}

func (l lowerer) enumDeclaration(n *sitter.Node) *tsast.EnumDecl {
	decl := &tsast.EnumDecl{Name: l.text(n.ChildByFieldName("name"))}
	for _, member := range namedChildren(n.ChildByFieldName("body")) {
		switch member.Type() {
		case "enum_assignment":
			name, _ := l.propertyName(member.ChildByFieldName("name"))
			decl.Members = append(decl.Members, tsast.EnumMember{
				Name: name,
				Init: l.optionalExpression(member.ChildByFieldName("value")),
			})
		default:
			name, _ := l.propertyName(member)
			decl.Members = append(decl.Members, tsast.EnumMember{Name: name})
		}
	}
	return decl
}

func (l lowerer) classBody(n *sitter.Node) []tsast.ClassMember {
	var members []tsast.ClassMember
	for _, member := range namedChildren(n) {
		switch member.Type() {
		case "method_definition":
			members = append(members, &tsast.MethodMember{
				Name: l.text(member.ChildByFieldName("name")),
				Body: l.block(member.ChildByFieldName("body")),
			})
		case "public_field_definition", "field_definition":
			name := member.ChildByFieldName("name")
			if name == nil {
				name = member.ChildByFieldName("property")
			}
			members = append(members, &tsast.FieldMember{
				Name:  l.text(name),
				Value: l.optionalExpression(member.ChildByFieldName("value")),
			})
		default:
			members = append(members, &tsast.OtherClassMember{Kind: member.Type()})
		}
	}
	return members
}
