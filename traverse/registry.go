// Package traverse walks the import graph from a set of root files and
// accumulates the declarations and validator invocations it finds.
package traverse

import (
	"sort"

	"github.com/cockroachdb/errors"
	graphlib "github.com/dominikbraun/graph"

	"github.com/LegacyCodeHQ/bagsakan/extract"
)

// Registry owns all state accumulated during a traversal.
type Registry struct {
	visited map[string]bool
	roots   map[string]bool

	// Interfaces and Enums are keyed by declaration name; the last
	// declaration recorded under a name wins.
	Interfaces  map[string]extract.Interface
	Enums       map[string]extract.Enum
	Invocations []extract.Invocation

	imports graphlib.Graph[string, string]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		visited:    make(map[string]bool),
		roots:      make(map[string]bool),
		Interfaces: make(map[string]extract.Interface),
		Enums:      make(map[string]extract.Enum),
		imports:    graphlib.New(graphlib.StringHash, graphlib.Directed()),
	}
}

// MarkRoot designates a canonical path as a root file.
func (r *Registry) MarkRoot(path string) {
	r.roots[path] = true
}

// IsRoot reports whether path was marked as a root.
func (r *Registry) IsRoot(path string) bool {
	return r.roots[path]
}

// Visit marks path visited and reports whether it was unvisited before.
// Visited files become vertices of the import graph.
func (r *Registry) Visit(path string) bool {
	if r.visited[path] {
		return false
	}
	r.visited[path] = true
	_ = r.imports.AddVertex(path)
	return true
}

// Visited returns every visited path, sorted.
func (r *Registry) Visited() []string {
	paths := make([]string, 0, len(r.visited))
	for path := range r.visited {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// AddInterface records iface and returns the declaration it replaced, if any.
func (r *Registry) AddInterface(iface extract.Interface) (extract.Interface, bool) {
	previous, shadowed := r.Interfaces[iface.Name]
	r.Interfaces[iface.Name] = iface
	return previous, shadowed
}

// AddEnum records enum and returns the declaration it replaced, if any.
func (r *Registry) AddEnum(enum extract.Enum) (extract.Enum, bool) {
	previous, shadowed := r.Enums[enum.Name]
	r.Enums[enum.Name] = enum
	return previous, shadowed
}

// AddInvocations appends invocations in discovery order.
func (r *Registry) AddInvocations(invocations ...extract.Invocation) {
	r.Invocations = append(r.Invocations, invocations...)
}

// AddImport records a resolved edge in the import graph.
func (r *Registry) AddImport(from, to string) error {
	for _, vertex := range []string{from, to} {
		if err := r.imports.AddVertex(vertex); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return errors.Wrapf(err, "failed to add %s to import graph", vertex)
		}
	}
	if err := r.imports.AddEdge(from, to); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return errors.Wrapf(err, "failed to add import %s -> %s", from, to)
	}
	return nil
}

// ImportGraph returns the graph of resolved imports.
func (r *Registry) ImportGraph() graphlib.Graph[string, string] {
	return r.imports
}

// InterfaceNames returns every known interface name, sorted.
func (r *Registry) InterfaceNames() []string {
	names := make([]string, 0, len(r.Interfaces))
	for name := range r.Interfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
