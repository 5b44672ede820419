// Package generate synthesizes TypeScript runtime type guards for extracted
// interfaces.
package generate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/bagsakan/extract"
	"github.com/LegacyCodeHQ/bagsakan/pattern"
)

// Header is the first line of every generated file.
const Header = "// This file is generated by bagsakan. Do not edit manually."

// Request asks for one validator.
type Request struct {
	FunctionName  string
	InterfaceName string
}

// Input is everything a generation needs.
type Input struct {
	Interfaces map[string]extract.Interface
	Enums      map[string]extract.Enum
	Requests   []Request
	Pattern    *pattern.Pattern
	// OutputPath is the file being generated; type imports are relative to its directory.
	OutputPath      string
	UseJSExtensions bool
}

// RequestsFromInvocations turns invocations into requests, keeping the first
// occurrence of each function name.
func RequestsFromInvocations(invocations []extract.Invocation) []Request {
	seen := make(map[string]bool)
	var requests []Request
	for _, inv := range invocations {
		if seen[inv.FunctionName] {
			continue
		}
		seen[inv.FunctionName] = true
		requests = append(requests, Request{FunctionName: inv.FunctionName, InterfaceName: inv.InterfaceName})
	}
	return requests
}

type validator struct {
	name  string
	iface extract.Interface
}

// Generate renders the validator module. Requests for unknown interfaces are
// skipped; interfaces reachable through property types get validators too.
// Output depends only on the input, never on map iteration order.
func Generate(in Input) string {
	validators := plan(in)

	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteString("\n")

	if imports := typeImports(in, validators); len(imports) > 0 {
		sb.WriteString("\n")
		for _, line := range imports {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	g := guardBuilder{in: in}
	for _, v := range validators {
		sb.WriteString("\n")
		g.writeValidator(&sb, v)
	}
	return sb.String()
}

// Validators returns the names of the functions Generate would emit, sorted.
func Validators(in Input) []string {
	validators := plan(in)
	names := make([]string, len(validators))
	for i, v := range validators {
		names[i] = v.name
	}
	return names
}

// Caveat describes a validator emitted with a weaker signature than usual.
type Caveat struct {
	Validator string
	Interface string
	Reason    string
}

// Caveats lists the validators Generate would emit for local or generic
// interfaces, sorted by validator name.
func Caveats(in Input) []Caveat {
	var caveats []Caveat
	for _, v := range plan(in) {
		switch {
		case v.iface.Local:
			caveats = append(caveats, Caveat{Validator: v.name, Interface: v.iface.Name,
				Reason: "interface is not exported; validator returns boolean"})
		case len(v.iface.TypeParams) > 0:
			caveats = append(caveats, Caveat{Validator: v.name, Interface: v.iface.Name,
				Reason: "type parameters are not checked; validator narrows to unknown arguments"})
		}
	}
	return caveats
}

// plan computes the deduplicated, sorted validator set including every
// interface reachable from the requested ones.
func plan(in Input) []validator {
	byName := make(map[string]validator)
	var queue []extract.Interface

	add := func(name string, iface extract.Interface) {
		if _, ok := byName[name]; ok {
			return
		}
		byName[name] = validator{name: name, iface: iface}
		queue = append(queue, iface)
	}

	for _, req := range in.Requests {
		iface, ok := in.Interfaces[req.InterfaceName]
		if !ok {
			continue
		}
		add(req.FunctionName, iface)
	}

	for len(queue) > 0 {
		iface := queue[0]
		queue = queue[1:]
		for _, prop := range iface.Properties {
			for _, ref := range referencedInterfaces(prop.Type, in.Interfaces) {
				add(in.Pattern.Name(ref), in.Interfaces[ref])
			}
		}
	}

	validators := make([]validator, 0, len(byName))
	for _, v := range byName {
		validators = append(validators, v)
	}
	sort.Slice(validators, func(i, j int) bool { return validators[i].name < validators[j].name })
	return validators
}

func referencedInterfaces(t extract.TypeExpr, interfaces map[string]extract.Interface) []string {
	switch x := t.(type) {
	case extract.ArrayOf:
		return referencedInterfaces(x.Elem, interfaces)
	case extract.UnionOf:
		var refs []string
		for _, member := range x.Members {
			refs = append(refs, referencedInterfaces(member, interfaces)...)
		}
		return refs
	case extract.Reference:
		if _, ok := interfaces[x.Name]; ok {
			return []string{x.Name}
		}
		if elem, ok := arrayElement(x); ok {
			return referencedInterfaces(elem, interfaces)
		}
		return nil
	case extract.Primitive, extract.Literal, extract.Unknown:
		return nil
	default:
		return nil
	}
}

// arrayElement recognizes Array<T> and ReadonlyArray<T>.
func arrayElement(ref extract.Reference) (extract.TypeExpr, bool) {
	if (ref.Name == "Array" || ref.Name == "ReadonlyArray") && len(ref.Args) == 1 {
		return ref.Args[0], true
	}
	return nil, false
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
