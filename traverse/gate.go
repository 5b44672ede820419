package traverse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/bagsakan/extract"
)

// MissingInterface is an interface referenced by invocations but never declared.
type MissingInterface struct {
	Name        string
	Invocations []extract.Invocation
}

// Functions returns the distinct validator names referencing the interface,
// in first-seen order.
func (m MissingInterface) Functions() []string {
	seen := make(map[string]bool)
	var names []string
	for _, inv := range m.Invocations {
		if !seen[inv.FunctionName] {
			seen[inv.FunctionName] = true
			names = append(names, inv.FunctionName)
		}
	}
	return names
}

// MissingInterfacesError aborts a run before any output is written.
type MissingInterfacesError struct {
	Missing []MissingInterface
}

func (e *MissingInterfacesError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d requested interface(s) not found:", len(e.Missing))
	for _, m := range e.Missing {
		fmt.Fprintf(&sb, "\n  %s (referenced by %s)", m.Name, strings.Join(m.Functions(), ", "))
		for _, inv := range m.Invocations {
			fmt.Fprintf(&sb, "\n    %s:%d", inv.File, inv.Line)
		}
	}
	return sb.String()
}

// CheckMissing returns a *MissingInterfacesError when any invocation targets
// an interface absent from the registry. Missing names are sorted.
func CheckMissing(registry *Registry) error {
	byName := make(map[string][]extract.Invocation)
	for _, inv := range registry.Invocations {
		if _, ok := registry.Interfaces[inv.InterfaceName]; ok {
			continue
		}
		byName[inv.InterfaceName] = append(byName[inv.InterfaceName], inv)
	}
	if len(byName) == 0 {
		return nil
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	missing := make([]MissingInterface, len(names))
	for i, name := range names {
		missing[i] = MissingInterface{Name: name, Invocations: byName[name]}
	}
	return &MissingInterfacesError{Missing: missing}
}
