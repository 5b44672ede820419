package generate

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/bagsakan/extract"
)

// guard is a boolean TypeScript expression. always marks a guard that passes
// for every value; compound marks a top-level && chain.
type guard struct {
	expr     string
	always   bool
	compound bool
}

var pass = guard{always: true}

type guardBuilder struct {
	in Input
}

func (g guardBuilder) writeValidator(sb *strings.Builder, v validator) {
	fmt.Fprintf(sb, "export function %s(value: unknown): %s {\n", v.name, predicate(v.iface))
	sb.WriteString("  if (typeof value !== 'object' || value === null) {\n")
	sb.WriteString("    return false;\n")
	sb.WriteString("  }\n")

	clauses := g.propertyClauses(v.iface)
	if len(clauses) == 0 {
		sb.WriteString("  return true;\n")
		sb.WriteString("}\n")
		return
	}

	sb.WriteString("  const obj = value as Record<string, unknown>;\n")
	sb.WriteString("  return (\n")
	for i, clause := range clauses {
		sb.WriteString("    ")
		sb.WriteString(clause)
		if i < len(clauses)-1 {
			sb.WriteString(" &&")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  );\n")
	sb.WriteString("}\n")
}

// predicate is the return type of a validator. A local interface cannot be
// named from the generated module, so its validator returns a plain boolean.
func predicate(iface extract.Interface) string {
	if iface.Local {
		return "boolean"
	}
	if len(iface.TypeParams) == 0 {
		return "value is " + iface.Name
	}
	args := make([]string, len(iface.TypeParams))
	for i := range args {
		args[i] = "unknown"
	}
	return "value is " + iface.Name + "<" + strings.Join(args, ", ") + ">"
}

// propertyClauses returns one clause per property that constrains the value.
// Required properties must be present; absent optional properties pass.
func (g guardBuilder) propertyClauses(iface extract.Interface) []string {
	var clauses []string
	for _, prop := range iface.Properties {
		key := quote(prop.Name)
		access := "obj[" + key + "]"
		check := g.guard(prop.Type, access, 0)

		switch {
		case prop.Optional && check.always:
		case prop.Optional:
			clauses = append(clauses, fmt.Sprintf("(%s === undefined || %s)", access, check.expr))
		case check.always:
			clauses = append(clauses, fmt.Sprintf("%s in obj", key))
		default:
			clauses = append(clauses, fmt.Sprintf("%s in obj && %s", key, check.expr))
		}
	}
	return clauses
}

// guard builds the check of t against the expression v. depth names the
// element variable of nested array checks.
func (g guardBuilder) guard(t extract.TypeExpr, v string, depth int) guard {
	switch x := t.(type) {
	case extract.Primitive:
		return primitiveGuard(x, v)
	case extract.Literal:
		return guard{expr: fmt.Sprintf("%s === %s", v, literalValue(x))}
	case extract.ArrayOf:
		return g.arrayGuard(x.Elem, v, depth)
	case extract.UnionOf:
		return g.unionGuard(x, v, depth)
	case extract.Reference:
		return g.referenceGuard(x, v, depth)
	case extract.Unknown:
		return pass
	default:
		return pass
	}
}

func primitiveGuard(p extract.Primitive, v string) guard {
	switch p.Name {
	case extract.PrimitiveString, extract.PrimitiveNumber, extract.PrimitiveBoolean:
		return guard{expr: fmt.Sprintf("typeof %s === '%s'", v, p.Name)}
	case extract.PrimitiveNull:
		return guard{expr: fmt.Sprintf("%s === null", v)}
	case extract.PrimitiveUndefined, extract.PrimitiveVoid:
		return guard{expr: fmt.Sprintf("%s === undefined", v)}
	case extract.PrimitiveAny:
		return pass
	default:
		return pass
	}
}

func literalValue(l extract.Literal) string {
	switch l.LitKind {
	case extract.LiteralString:
		return quote(l.Str)
	case extract.LiteralNumber:
		return extract.FormatNumber(l.Num)
	case extract.LiteralBool:
		if l.Bool {
			return "true"
		}
		return "false"
	default:
		return "undefined"
	}
}

func (g guardBuilder) arrayGuard(elem extract.TypeExpr, v string, depth int) guard {
	item := fmt.Sprintf("e%d", depth)
	check := g.guard(elem, item, depth+1)
	if check.always {
		return guard{expr: fmt.Sprintf("Array.isArray(%s)", v)}
	}
	return guard{
		expr:     fmt.Sprintf("Array.isArray(%s) && %s.every((%s) => %s)", v, v, item, check.expr),
		compound: true,
	}
}

func (g guardBuilder) unionGuard(u extract.UnionOf, v string, depth int) guard {
	var parts []string
	for _, member := range u.Members {
		check := g.guard(member, v, depth)
		if check.always {
			return pass
		}
		if check.compound {
			parts = append(parts, "("+check.expr+")")
		} else {
			parts = append(parts, check.expr)
		}
	}
	switch len(parts) {
	case 0:
		return pass
	case 1:
		return guard{expr: parts[0], compound: false}
	default:
		return guard{expr: "(" + strings.Join(parts, " || ") + ")"}
	}
}

func (g guardBuilder) referenceGuard(ref extract.Reference, v string, depth int) guard {
	if _, ok := g.in.Interfaces[ref.Name]; ok {
		return guard{expr: fmt.Sprintf("%s(%s)", g.in.Pattern.Name(ref.Name), v)}
	}
	if enum, ok := g.in.Enums[ref.Name]; ok {
		return enumGuard(enum, v)
	}
	if elem, ok := arrayElement(ref); ok {
		return g.arrayGuard(elem, v, depth)
	}
	return pass
}

// enumGuard tests membership in the enum's resolved discriminants. Computed
// members are left out; an enum with none resolved accepts any value.
func enumGuard(enum extract.Enum, v string) guard {
	seen := make(map[string]bool)
	var parts []string
	for _, member := range enum.Members {
		var literal string
		switch member.Value.Kind {
		case extract.DiscriminantString:
			literal = quote(member.Value.Str)
		case extract.DiscriminantNumber:
			literal = extract.FormatNumber(member.Value.Num)
		case extract.DiscriminantComputed:
			continue
		}
		if seen[literal] {
			continue
		}
		seen[literal] = true
		parts = append(parts, fmt.Sprintf("%s === %s", v, literal))
	}
	switch len(parts) {
	case 0:
		return pass
	case 1:
		return guard{expr: parts[0]}
	default:
		return guard{expr: "(" + strings.Join(parts, " || ") + ")"}
	}
}
