package traverse

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/LegacyCodeHQ/bagsakan/diag"
	"github.com/LegacyCodeHQ/bagsakan/extract"
	"github.com/LegacyCodeHQ/bagsakan/pattern"
	"github.com/LegacyCodeHQ/bagsakan/resolve"
	"github.com/LegacyCodeHQ/bagsakan/source"
	"github.com/LegacyCodeHQ/bagsakan/tsparse"
)

// Resolver resolves import specifiers. *resolve.Resolver implements it.
type Resolver interface {
	Resolve(fromFile, specifier string) (string, error)
}

// Options configures a Driver.
type Options struct {
	Resolver Resolver
	Reader   source.ContentReader
	Matcher  *pattern.Pattern
	// Sink receives diagnostics. Nil discards them.
	Sink diag.Sink
}

// Driver performs depth-first traversal of the import graph.
type Driver struct {
	registry *Registry
	opts     Options
}

// NewDriver creates a driver that records into registry.
func NewDriver(registry *Registry, opts Options) *Driver {
	if opts.Reader == nil {
		opts.Reader = source.FilesystemContentReader()
	}
	if opts.Sink == nil {
		opts.Sink = diag.Discard
	}
	return &Driver{registry: registry, opts: opts}
}

// Registry returns the registry the driver records into.
func (d *Driver) Registry() *Registry {
	return d.registry
}

// Run marks every path as a root before traversing any of them, so that
// a root reached through another root's imports still has its invocations
// recorded.
func (d *Driver) Run(paths []string) error {
	canonical := make([]string, len(paths))
	for i, path := range paths {
		canonical[i] = source.Canonical(path)
		d.registry.MarkRoot(canonical[i])
	}
	for _, path := range canonical {
		if err := d.Traverse(path); err != nil {
			return err
		}
	}
	return nil
}

// Traverse visits path and everything it transitively imports. Visiting an
// already visited file is a no-op. Only failures to read a root file are
// returned; everything else is reported to the sink.
func (d *Driver) Traverse(path string) error {
	path = source.Canonical(path)
	if !d.registry.Visit(path) {
		return nil
	}

	content, err := d.opts.Reader(path)
	if err != nil {
		if d.registry.IsRoot(path) {
			return errors.Wrapf(err, "failed to read %s", path)
		}
		d.report(diag.ReadFailure, path, err.Error())
		return nil
	}

	prog, err := tsparse.ParseFile(path, content)
	if err != nil {
		d.report(diag.ParseFailure, path, err.Error())
		return nil
	}

	result := extract.Extract(prog, path, d.registry.IsRoot(path), d.opts.Matcher)
	d.record(path, result)

	for _, specifier := range result.Imports {
		edge := resolve.Attempt(d.opts.Resolver, path, specifier)
		if !edge.Resolved() {
			d.report(diag.Kind(edge.Outcome), path, edge.Err.Error())
			continue
		}

		target := source.Canonical(edge.Target)
		d.report(diag.Resolved, path, fmt.Sprintf("%s -> %s", specifier, target))
		if err := d.registry.AddImport(path, target); err != nil {
			return err
		}
		if !tsparse.Supports(target) {
			continue
		}
		if err := d.Traverse(target); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) record(path string, result extract.Result) {
	for _, iface := range result.Interfaces {
		if previous, shadowed := d.registry.AddInterface(iface); shadowed {
			d.report(diag.ShadowedDeclaration, path,
				fmt.Sprintf("interface %s replaces the declaration in %s", iface.Name, previous.File))
		}
	}
	for _, enum := range result.Enums {
		if previous, shadowed := d.registry.AddEnum(enum); shadowed {
			d.report(diag.ShadowedDeclaration, path,
				fmt.Sprintf("enum %s replaces the declaration in %s", enum.Name, previous.File))
		}
	}
	d.registry.AddInvocations(result.Invocations...)
	for _, callee := range result.SkippedCallees {
		d.report(diag.CalleeSkipped, path, callee)
	}
}

func (d *Driver) report(kind diag.Kind, path, detail string) {
	d.opts.Sink.Report(diag.Diagnostic{Kind: kind, Path: path, Detail: detail})
}
