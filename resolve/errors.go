package resolve

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies a resolution outcome.
type Kind string

const (
	Resolved           Kind = "resolved"
	ExternalDisabled   Kind = "external-disabled"
	PackageExcluded    Kind = "package-excluded"
	NoTypeDeclarations Kind = "no-type-declarations"
	Unresolved         Kind = "unresolved"
)

// Error describes why a specifier could not be resolved. Resolution never
// panics; every failure is returned as an *Error.
type Error struct {
	Kind      Kind
	From      string
	Specifier string
	// Package is the package name for bare specifiers.
	Package string
	// Target is the non-TypeScript file a package resolved to, if any.
	Target string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ExternalDisabled:
		return fmt.Sprintf("external imports are disabled: %q", e.Specifier)
	case PackageExcluded:
		return fmt.Sprintf("package %q is excluded", e.Package)
	case NoTypeDeclarations:
		return fmt.Sprintf("no TypeScript declarations found for %q; consider installing %s", e.Specifier, TypesPackageName(e.Package))
	default:
		return fmt.Sprintf("cannot resolve %q from %s", e.Specifier, e.From)
	}
}

// KindOf returns the kind of a resolution error, or ok=false when err is not one.
func KindOf(err error) (Kind, bool) {
	var rerr *Error
	if !errors.As(err, &rerr) {
		return "", false
	}
	return rerr.Kind, true
}
