package generate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/LegacyCodeHQ/bagsakan/extract"
	"github.com/LegacyCodeHQ/bagsakan/pattern"
)

var (
	// ErrDuplicateValidator reports a merge request for a validator the file already has.
	ErrDuplicateValidator = errors.New("validator already exists")
	// ErrInterfaceNotFound reports a request for an interface absent from the scanned sources.
	ErrInterfaceNotFound = errors.New("interface not found")
)

// maxHintNames bounds the number of interface names listed in a not-found hint.
const maxHintNames = 20

var exportedFunction = regexp.MustCompile(`(?m)^export function ([A-Za-z_$][\w$]*)\(`)

// Recover finds the validators previously emitted into existing by matching
// exported function signatures against p. Names are returned in file order.
func Recover(existing string, p *pattern.Pattern) []Request {
	var requests []Request
	seen := make(map[string]bool)
	for _, match := range exportedFunction.FindAllStringSubmatch(existing, -1) {
		name := match[1]
		iface, ok := p.Match(name)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		requests = append(requests, Request{FunctionName: name, InterfaceName: iface})
	}
	return requests
}

// MergeResult is the outcome of a successful merge.
type MergeResult struct {
	Content string
	// Requests is the merged request list, sorted by function name.
	Requests []Request
	// Dropped lists recovered validators whose interface is no longer known.
	Dropped []Request
}

// Merge adds req to the validators recovered from existing and regenerates
// the whole file. in.Requests is ignored. The result is identical to
// Generate over the merged request list. A request already present in
// existing returns ErrDuplicateValidator.
func Merge(existing string, in Input, req Request) (MergeResult, error) {
	recovered := Recover(existing, in.Pattern)
	for _, r := range recovered {
		if r.FunctionName == req.FunctionName {
			return MergeResult{}, errors.Wrapf(ErrDuplicateValidator, "%s", req.FunctionName)
		}
	}

	merged := append(recovered, req)
	sort.Slice(merged, func(i, j int) bool { return merged[i].FunctionName < merged[j].FunctionName })

	var dropped []Request
	for _, r := range merged {
		if _, ok := in.Interfaces[r.InterfaceName]; !ok {
			dropped = append(dropped, r)
		}
	}

	in.Requests = merged
	return MergeResult{Content: Generate(in), Requests: merged, Dropped: dropped}, nil
}

// RequireInterface returns ErrInterfaceNotFound, with a hint listing known
// interface names, when name is not in interfaces.
func RequireInterface(interfaces map[string]extract.Interface, name string) error {
	if _, ok := interfaces[name]; ok {
		return nil
	}

	err := errors.Wrapf(ErrInterfaceNotFound, "%s", name)
	if len(interfaces) == 0 {
		return errors.WithHint(err, "no interfaces were found in the scanned sources")
	}

	names := make([]string, 0, len(interfaces))
	for known := range interfaces {
		names = append(names, known)
	}
	sort.Strings(names)
	hint := "available interfaces: " + strings.Join(names[:min(len(names), maxHintNames)], ", ")
	if len(names) > maxHintNames {
		hint += ", ..."
	}
	return errors.WithHint(err, hint)
}
