// Package tsast defines the typed TypeScript syntax tree that declaration
// extraction walks. The tree keeps only the node kinds extraction cares about;
// everything else is represented by an explicit Other* node carrying the raw
// grammar kind so unsupported syntax stays visible.
package tsast

// Program is a parsed source file.
type Program struct {
	Statements []Statement
}

// Statement is any statement or declaration node.
type Statement interface {
	statementNode()
}

// Expression is any expression node.
type Expression interface {
	expressionNode()
}

// TypeNode is any type annotation node.
type TypeNode interface {
	typeNode()
}

// ImportDecl is `import ... from 'source'` or `import 'source'`.
type ImportDecl struct {
	Source   string
	TypeOnly bool
}

// ExportFrom is a re-export with a source: `export { a } from 'source'`
// (All == false) or `export * from 'source'` (All == true).
type ExportFrom struct {
	Source string
	All    bool
}

// ExportDecl wraps a declaration preceded by `export`, `export default` or
// `declare`. Declare is set for `declare` alone, which exports nothing.
type ExportDecl struct {
	Decl    Statement
	Declare bool
}

// ExportNames is `export { a, b as c }` without a source. Names holds the
// local names exported under their own name.
type ExportNames struct {
	Names []string
}

// ExportDefault is `export default <expression>`.
type ExportDefault struct {
	Expr Expression
}

// InterfaceDecl is `interface Name<TypeParams> { ... }`.
type InterfaceDecl struct {
	Name       string
	TypeParams []string
	Members    []InterfaceMember
}

// InterfaceMember is a member of an interface body.
type InterfaceMember interface {
	interfaceMember()
}

// PropertySignature is `name?: Type` inside an interface body.
// Type is nil when the property has no annotation.
type PropertySignature struct {
	Name     string
	Optional bool
	Type     TypeNode
}

// OtherMember is an interface member that is not a property signature
// (method, index, call or construct signature).
type OtherMember struct {
	Kind string
}

// EnumDecl is `enum Name { ... }`.
type EnumDecl struct {
	Name    string
	Members []EnumMember
}

// EnumMember is one enum member; Init is nil when it has no initializer.
type EnumMember struct {
	Name string
	Init Expression
}

// FunctionDecl is a named function or generator declaration.
type FunctionDecl struct {
	Name string
	Body *Block
}

// ClassDecl is a class declaration.
type ClassDecl struct {
	Name    string
	Members []ClassMember
}

// ClassMember is a member of a class body.
type ClassMember interface {
	classMember()
}

// MethodMember is a method with a body.
type MethodMember struct {
	Name string
	Body *Block
}

// FieldMember is a class field; Value is nil without an initializer.
type FieldMember struct {
	Name  string
	Value Expression
}

// OtherClassMember is any class member extraction does not look into.
type OtherClassMember struct {
	Kind string
}

// VarDecl is a `const`, `let` or `var` declaration.
type VarDecl struct {
	Declarators []Declarator
}

// Declarator is one `name = init` binding; Init is nil without an initializer.
type Declarator struct {
	Name string
	Init Expression
}

// ExprStmt is an expression statement.
type ExprStmt struct {
	Expr Expression
}

// ReturnStmt is `return <arg>`; Arg is nil for a bare return.
type ReturnStmt struct {
	Arg Expression
}

// IfStmt is `if (test) cons else alt`; Alt is nil without an else branch.
type IfStmt struct {
	Test Expression
	Cons Statement
	Alt  Statement
}

// Block is `{ ... }`.
type Block struct {
	Statements []Statement
}

// OtherStmt is a statement kind extraction does not look into.
type OtherStmt struct {
	Kind string
}

func (*ImportDecl) statementNode()    {}
func (*ExportFrom) statementNode()    {}
func (*ExportDecl) statementNode()    {}
func (*ExportNames) statementNode()   {}
func (*ExportDefault) statementNode() {}
func (*InterfaceDecl) statementNode() {}
func (*EnumDecl) statementNode()      {}
func (*FunctionDecl) statementNode()  {}
func (*ClassDecl) statementNode()     {}
func (*VarDecl) statementNode()       {}
func (*ExprStmt) statementNode()      {}
func (*ReturnStmt) statementNode()    {}
func (*IfStmt) statementNode()        {}
func (*Block) statementNode()         {}
func (*OtherStmt) statementNode()     {}

func (*PropertySignature) interfaceMember() {}
func (*OtherMember) interfaceMember()       {}

func (*MethodMember) classMember()     {}
func (*FieldMember) classMember()      {}
func (*OtherClassMember) classMember() {}
