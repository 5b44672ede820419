// Package resolve locates the file an import specifier refers to, following
// Node and TypeScript module resolution closely enough to find declarations
// across package boundaries.
package resolve

import (
	"fmt"
	"strings"
)

// DefaultConditions are appended after any custom export conditions.
var DefaultConditions = []string{"types", "import", "node", "default"}

// Policy holds the parameters that govern resolution.
type Policy struct {
	// Extensions are appended, in order, to extensionless candidates.
	Extensions []string
	// ExtensionAliases maps a written extension to the extensions tried in its place.
	ExtensionAliases map[string][]string
	// Conditions are matched against conditional exports in priority order.
	Conditions []string
	// MainFields are consulted, in order, when a package has no usable exports.
	MainFields []string
	// IndexFiles are the file stems tried inside a directory.
	IndexFiles []string
	// ExcludePackages lists packages never resolved.
	ExcludePackages []string
	// FollowExternal enables resolution of bare package specifiers.
	FollowExternal bool
}

// NewPolicy builds the standard policy. Custom conditions take priority over
// DefaultConditions.
func NewPolicy(followExternal bool, excludePackages, customConditions []string) Policy {
	conditions := make([]string, 0, len(customConditions)+len(DefaultConditions))
	conditions = append(conditions, customConditions...)
	conditions = append(conditions, DefaultConditions...)

	return Policy{
		Extensions: []string{".ts", ".tsx", ".d.ts", ".js", ".jsx", ".json"},
		ExtensionAliases: map[string][]string{
			".js":  {".ts", ".tsx", ".js"},
			".jsx": {".tsx", ".jsx"},
			".mjs": {".mts", ".mjs"},
			".cjs": {".cts", ".cjs"},
		},
		Conditions:      conditions,
		MainFields:      []string{"types", "typings", "module", "main"},
		IndexFiles:      []string{"index"},
		ExcludePackages: append([]string(nil), excludePackages...),
		FollowExternal:  followExternal,
	}
}

// DefaultPolicy follows external imports, excludes nothing and adds no custom conditions.
func DefaultPolicy() Policy {
	return NewPolicy(true, nil, nil)
}

// IsExcluded reports whether a bare specifier belongs to an excluded package.
// The top-level name is the segment before the first slash; a specifier is
// also excluded when it equals an entry or continues one as a path prefix.
func (p Policy) IsExcluded(specifier string) bool {
	top, _, _ := strings.Cut(specifier, "/")
	for _, excluded := range p.ExcludePackages {
		if top == excluded || specifier == excluded || strings.HasPrefix(specifier, excluded+"/") {
			return true
		}
	}
	return false
}

// Summary renders the policy for display.
func (p Policy) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Follow external imports: %t\n", p.FollowExternal)
	if len(p.ExcludePackages) > 0 {
		fmt.Fprintf(&sb, "Excluded packages: %s\n", strings.Join(p.ExcludePackages, ", "))
	}
	fmt.Fprintf(&sb, "Export conditions: %s\n", strings.Join(p.Conditions, ", "))
	fmt.Fprintf(&sb, "Main fields: %s\n", strings.Join(p.MainFields, ", "))
	return sb.String()
}
