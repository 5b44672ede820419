package tsast

// Identifier is a bare identifier reference.
type Identifier struct {
	Name string
}

// MemberExpr is `object.property`.
type MemberExpr struct {
	Object   Expression
	Property string
}

// CallExpr is `callee(args...)`. Spread arguments are *SpreadElement.
type CallExpr struct {
	Callee Expression
	Args   []Expression
	Line   int
}

// SpreadElement is `...arg`.
type SpreadElement struct {
	Arg Expression
}

// FunctionExpr is an anonymous or named function expression.
type FunctionExpr struct {
	Body *Block
}

// ArrowFunc is an arrow function; exactly one of Block and Expr is set.
type ArrowFunc struct {
	Block *Block
	Expr  Expression
}

// ObjectExpr is an object literal.
type ObjectExpr struct {
	Properties []ObjectProperty
}

// ObjectProperty is `key: value` or a method shorthand (Value is a *FunctionExpr).
// Value is nil for shorthand properties.
type ObjectProperty struct {
	Key   string
	Value Expression
}

// UnaryExpr is a prefix operator applied to Arg.
type UnaryExpr struct {
	Operator string
	Arg      Expression
}

// BinaryExpr is an arithmetic, comparison or bitwise binary expression.
type BinaryExpr struct {
	Operator string
	Left     Expression
	Right    Expression
}

// LogicalExpr is `&&`, `||` or `??`.
type LogicalExpr struct {
	Operator string
	Left     Expression
	Right    Expression
}

// ParenExpr is `(expr)`.
type ParenExpr struct {
	Expr Expression
}

// StringLit is a string literal with escapes decoded.
type StringLit struct {
	Value string
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
}

// OtherExpr is an expression kind extraction does not look into.
type OtherExpr struct {
	Kind string
}

func (*Identifier) expressionNode()    {}
func (*MemberExpr) expressionNode()    {}
func (*CallExpr) expressionNode()      {}
func (*SpreadElement) expressionNode() {}
func (*FunctionExpr) expressionNode()  {}
func (*ArrowFunc) expressionNode()     {}
func (*ObjectExpr) expressionNode()    {}
func (*UnaryExpr) expressionNode()     {}
func (*BinaryExpr) expressionNode()    {}
func (*LogicalExpr) expressionNode()   {}
func (*ParenExpr) expressionNode()     {}
func (*StringLit) expressionNode()     {}
func (*NumberLit) expressionNode()     {}
func (*BoolLit) expressionNode()       {}
func (*OtherExpr) expressionNode()     {}
