// Package tsparse parses TypeScript and TSX sources with tree-sitter and
// lowers the concrete syntax tree into a tsast.Program.
package tsparse

import (
	"context"
	"path/filepath"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/LegacyCodeHQ/bagsakan/tsast"
)

// ErrSyntax is returned when tree-sitter reports an error node in the tree.
var ErrSyntax = errors.New("syntax error")

var scriptExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".mts": true, ".cts": true,
	".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
}

// Supports reports whether path names a script this package can parse.
func Supports(path string) bool {
	return scriptExtensions[filepath.Ext(path)]
}

// ParseFile parses a file's content, choosing the TSX grammar for .tsx and .jsx files.
func ParseFile(path string, content []byte) (*tsast.Program, error) {
	ext := filepath.Ext(path)
	return Parse(content, ext == ".tsx" || ext == ".jsx")
}

// Parse parses TypeScript source code into a syntax tree.
func Parse(sourceCode []byte, isTSX bool) (*tsast.Program, error) {
	var lang *sitter.Language
	if isTSX {
		lang = tsx.GetLanguage()
	} else {
		lang = typescript.GetLanguage()
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse TypeScript code")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if n := firstError(root); n != nil {
			return nil, errors.Wrapf(ErrSyntax, "line %d, column %d", n.StartPoint().Row+1, n.StartPoint().Column+1)
		}
		return nil, ErrSyntax
	}

	l := lowerer{src: sourceCode}
	prog := &tsast.Program{}
	for _, child := range namedChildren(root) {
		prog.Statements = append(prog.Statements, l.statement(child))
	}
	return prog, nil
}

// firstError finds the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return nil
}

// namedChildren returns the named children of n, skipping comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	children := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		children = append(children, child)
	}
	return children
}

// firstNamedChild returns the first non-comment named child of n.
func firstNamedChild(n *sitter.Node) *sitter.Node {
	children := namedChildren(n)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// hasChild reports whether n has a direct child (named or anonymous) of the given kind.
func hasChild(n *sitter.Node, kind string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && child.Type() == kind {
			return true
		}
	}
	return false
}
