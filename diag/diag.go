// Package diag carries non-fatal findings from resolution, traversal and extraction.
package diag

import "fmt"

// Kind classifies a diagnostic.
type Kind string

const (
	ParseFailure        Kind = "parse-failure"
	ReadFailure         Kind = "read-failure"
	Resolved            Kind = "resolved"
	ExternalDisabled    Kind = "external-disabled"
	PackageExcluded     Kind = "package-excluded"
	NoTypeDeclarations  Kind = "no-type-declarations"
	Unresolved          Kind = "unresolved"
	CalleeSkipped       Kind = "callee-skipped"
	ShadowedDeclaration Kind = "shadowed-declaration"
)

// Diagnostic is a single finding attached to a file.
type Diagnostic struct {
	Kind   Kind
	Path   string
	Detail string
}

func (d Diagnostic) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Path)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Path, d.Detail)
}

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Collector keeps diagnostics in report order.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// OfKind returns the collected diagnostics of kind k.
func (c *Collector) OfKind(k Kind) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// Tee forwards every diagnostic to each sink in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d Diagnostic) {
		for _, s := range sinks {
			s.Report(d)
		}
	})
}
