package generate

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// typeImports renders one `import type` line per origin file of the emitted
// validators' interfaces, sorted by import path with names sorted.
func typeImports(in Input, validators []validator) []string {
	namesByPath := make(map[string]map[string]bool)
	for _, v := range validators {
		if v.iface.File == "" || v.iface.Local {
			continue
		}
		path := importPath(in.OutputPath, v.iface.File, in.UseJSExtensions)
		if namesByPath[path] == nil {
			namesByPath[path] = make(map[string]bool)
		}
		namesByPath[path][v.iface.Name] = true
	}

	paths := make([]string, 0, len(namesByPath))
	for path := range namesByPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	lines := make([]string, 0, len(paths))
	for _, path := range paths {
		names := make([]string, 0, len(namesByPath[path]))
		for name := range namesByPath[path] {
			names = append(names, name)
		}
		sort.Strings(names)
		lines = append(lines, fmt.Sprintf("import type { %s } from %s;", strings.Join(names, ", "), quote(path)))
	}
	return lines
}

var strippedExtensions = []string{".d.ts", ".d.mts", ".d.cts", ".tsx", ".ts", ".mts", ".cts"}

// importPath returns the module specifier for file as seen from the directory
// of outputPath.
func importPath(outputPath, file string, useJSExtensions bool) string {
	rel, err := filepath.Rel(filepath.Dir(outputPath), file)
	if err != nil {
		rel = file
	}
	rel = filepath.ToSlash(rel)

	for _, ext := range strippedExtensions {
		if strings.HasSuffix(rel, ext) {
			rel = strings.TrimSuffix(rel, ext)
			break
		}
	}
	if !strings.HasPrefix(rel, ".") && !strings.HasPrefix(rel, "/") {
		rel = "./" + rel
	}
	if useJSExtensions {
		rel += ".js"
	}
	return rel
}
