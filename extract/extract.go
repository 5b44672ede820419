// Package extract mines a parsed TypeScript file for interface and enum
// declarations, validator invocations and import specifiers.
package extract

import (
	"fmt"

	"github.com/LegacyCodeHQ/bagsakan/pattern"
	"github.com/LegacyCodeHQ/bagsakan/tsast"
)

// Result is everything extracted from one file.
type Result struct {
	Interfaces  []Interface
	Enums       []Enum
	Invocations []Invocation
	// Imports holds the sources of import declarations and re-exports, in order.
	Imports []string
	// SkippedCallees describes calls whose callee is not a bare identifier.
	SkippedCallees []string
}

type extractor struct {
	file    string
	isRoot  bool
	matcher *pattern.Pattern
	result  Result
	// exportedNames are local names listed in `export { ... }` clauses.
	exportedNames map[string]bool
}

// Extract walks prog. Invocations are recorded only when isRoot is true.
func Extract(prog *tsast.Program, file string, isRoot bool, matcher *pattern.Pattern) Result {
	e := &extractor{file: file, isRoot: isRoot, matcher: matcher, exportedNames: make(map[string]bool)}
	e.result.Imports = ImportSpecifiers(prog)
	for _, stmt := range prog.Statements {
		e.statement(stmt)
	}
	for i, iface := range e.result.Interfaces {
		if e.exportedNames[iface.Name] {
			e.result.Interfaces[i].Local = false
		}
	}
	return e.result
}

// ImportSpecifiers returns the `from` sources of a program's top-level
// import declarations, named re-exports and wildcard re-exports.
func ImportSpecifiers(prog *tsast.Program) []string {
	var specifiers []string
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *tsast.ImportDecl:
			specifiers = append(specifiers, s.Source)
		case *tsast.ExportFrom:
			specifiers = append(specifiers, s.Source)
		}
	}
	return specifiers
}

func (e *extractor) statement(stmt tsast.Statement) {
	switch s := stmt.(type) {
	case nil:
	case *tsast.ImportDecl, *tsast.ExportFrom:
		// collected by ImportSpecifiers
	case *tsast.ExportDecl:
		e.exportDecl(s)
	case *tsast.ExportNames:
		for _, name := range s.Names {
			e.exportedNames[name] = true
		}
	case *tsast.ExportDefault:
		e.expression(s.Expr)
	case *tsast.InterfaceDecl:
		e.result.Interfaces = append(e.result.Interfaces, e.interfaceDecl(s, false))
	case *tsast.EnumDecl:
		e.result.Enums = append(e.result.Enums, e.enumDecl(s))
	case *tsast.FunctionDecl:
		e.block(s.Body)
	case *tsast.ClassDecl:
		e.classMembers(s.Members)
	case *tsast.VarDecl:
		for _, d := range s.Declarators {
			e.expression(d.Init)
		}
	case *tsast.ExprStmt:
		e.expression(s.Expr)
	case *tsast.ReturnStmt:
		e.expression(s.Arg)
	case *tsast.IfStmt:
		e.expression(s.Test)
		e.statement(s.Cons)
		e.statement(s.Alt)
	case *tsast.Block:
		e.block(s)
	case *tsast.OtherStmt:
	}
}

// exportDecl unwraps `export` and `declare` modifiers. A bare `declare`
// exports nothing.
func (e *extractor) exportDecl(s *tsast.ExportDecl) {
	exported := !s.Declare
	decl := s.Decl
	for {
		inner, ok := decl.(*tsast.ExportDecl)
		if !ok {
			break
		}
		exported = exported || !inner.Declare
		decl = inner.Decl
	}
	if iface, ok := decl.(*tsast.InterfaceDecl); ok {
		e.result.Interfaces = append(e.result.Interfaces, e.interfaceDecl(iface, exported))
		return
	}
	e.statement(decl)
}

func (e *extractor) block(b *tsast.Block) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		e.statement(stmt)
	}
}

func (e *extractor) classMembers(members []tsast.ClassMember) {
	for _, member := range members {
		switch m := member.(type) {
		case *tsast.MethodMember:
			e.block(m.Body)
		case *tsast.FieldMember:
			e.expression(m.Value)
		case *tsast.OtherClassMember:
		}
	}
}

func (e *extractor) expression(expr tsast.Expression) {
	switch x := expr.(type) {
	case nil:
	case *tsast.CallExpr:
		e.call(x)
	case *tsast.FunctionExpr:
		e.block(x.Body)
	case *tsast.ArrowFunc:
		e.block(x.Block)
		e.expression(x.Expr)
	case *tsast.ObjectExpr:
		for _, prop := range x.Properties {
			e.expression(prop.Value)
		}
	case *tsast.UnaryExpr:
		e.expression(x.Arg)
	case *tsast.BinaryExpr:
		e.expression(x.Left)
		e.expression(x.Right)
	case *tsast.LogicalExpr:
		e.expression(x.Left)
		e.expression(x.Right)
	case *tsast.ParenExpr:
		e.expression(x.Expr)
	case *tsast.SpreadElement:
		e.expression(x.Arg)
	case *tsast.Identifier, *tsast.MemberExpr, *tsast.StringLit, *tsast.NumberLit, *tsast.BoolLit:
	case *tsast.OtherExpr:
	}
}

func (e *extractor) call(call *tsast.CallExpr) {
	switch callee := call.Callee.(type) {
	case *tsast.Identifier:
		if iface, ok := e.matcher.Match(callee.Name); ok && e.isRoot {
			e.result.Invocations = append(e.result.Invocations, Invocation{
				FunctionName:  callee.Name,
				InterfaceName: iface,
				File:          e.file,
				Line:          call.Line,
			})
		}
	case *tsast.MemberExpr:
		e.result.SkippedCallees = append(e.result.SkippedCallees,
			fmt.Sprintf("line %d: member callee .%s", call.Line, callee.Property))
	default:
		e.result.SkippedCallees = append(e.result.SkippedCallees,
			fmt.Sprintf("line %d: %s callee", call.Line, calleeKind(callee)))
	}

	for _, arg := range call.Args {
		e.expression(arg)
	}
}

func calleeKind(expr tsast.Expression) string {
	switch x := expr.(type) {
	case *tsast.OtherExpr:
		return x.Kind
	case nil:
		return "empty"
	default:
		return fmt.Sprintf("%T", expr)
	}
}
