package generate

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/bagsakan/extract"
	"github.com/LegacyCodeHQ/bagsakan/pattern"
)

var defaultPattern = pattern.MustCompile("validate%(type)")

func generateGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithNameSuffix(".gold.ts"))
}

func str() extract.TypeExpr  { return extract.Primitive{Name: extract.PrimitiveString} }
func num() extract.TypeExpr  { return extract.Primitive{Name: extract.PrimitiveNumber} }
func lit(s string) extract.TypeExpr {
	return extract.Literal{LitKind: extract.LiteralString, Str: s}
}
func ref(name string, args ...extract.TypeExpr) extract.TypeExpr {
	return extract.Reference{Name: name, Args: args}
}
func union(members ...extract.TypeExpr) extract.TypeExpr {
	return extract.UnionOf{Members: members}
}

func userScenario() Input {
	return Input{
		Interfaces: map[string]extract.Interface{
			"User": {
				Name: "User",
				File: "/project/src/models.ts",
				Properties: []extract.Property{
					{Name: "id", Type: num()},
					{Name: "name", Type: str()},
					{Name: "tag", Optional: true, Type: union(lit("a"), lit("b"))},
					{Name: "address", Type: ref("Address")},
					{Name: "roles", Type: extract.ArrayOf{Elem: ref("Role")}},
					{Name: "tags", Optional: true, Type: extract.ArrayOf{Elem: str()}},
					{Name: "meta", Type: extract.Primitive{Name: extract.PrimitiveAny}},
					{Name: "matrix", Type: extract.ArrayOf{Elem: extract.ArrayOf{Elem: num()}}},
				},
			},
			"Address": {
				Name: "Address",
				File: "/project/src/models.ts",
				Properties: []extract.Property{
					{Name: "street", Type: str()},
					{Name: "zip", Type: union(str(), extract.Primitive{Name: extract.PrimitiveNull})},
				},
			},
		},
		Enums: map[string]extract.Enum{
			"Role": {Name: "Role", Members: []extract.EnumMember{
				{Name: "Admin", Value: extract.Discriminant{Kind: extract.DiscriminantString, Str: "admin"}},
				{Name: "User", Value: extract.Discriminant{Kind: extract.DiscriminantString, Str: "user"}},
				{Name: "Guest", Value: extract.Discriminant{Kind: extract.DiscriminantComputed}},
			}},
		},
		Requests:   []Request{{FunctionName: "validateUser", InterfaceName: "User"}},
		Pattern:    defaultPattern,
		OutputPath: "/project/src/validators.ts",
	}
}

func TestGenerate_UserScenario(t *testing.T) {
	g := generateGoldie(t)
	g.Assert(t, "user_scenario", []byte(Generate(userScenario())))
}

func TestGenerate_MixedShapes(t *testing.T) {
	numberMember := func(name string, n float64) extract.EnumMember {
		return extract.EnumMember{Name: name, Value: extract.Discriminant{Kind: extract.DiscriminantNumber, Num: n}}
	}
	in := Input{
		Interfaces: map[string]extract.Interface{
			"Empty": {Name: "Empty", File: "/project/src/types/empty.d.ts"},
			"Item": {Name: "Item", File: "/project/lib/order.tsx", Properties: []extract.Property{
				{Name: "sku", Type: str()},
			}},
			"Order": {Name: "Order", File: "/project/lib/order.tsx", Properties: []extract.Property{
				{Name: "items", Type: ref("Array", ref("Item"))},
				{Name: "status", Type: ref("Status")},
				{Name: "mode", Type: ref("Mode")},
				{Name: "owner", Optional: true, Type: ref("Empty")},
				{Name: "extra", Type: ref("Date")},
				{Name: "flag", Type: extract.Literal{LitKind: extract.LiteralBool, Bool: true}},
				{Name: "count", Optional: true, Type: extract.Literal{LitKind: extract.LiteralNumber, Num: 1.5}},
				{Name: "label", Type: lit("it's")},
				{Name: "x-id", Type: str()},
				{Name: "pair", Type: union(str(), extract.ArrayOf{Elem: num()})},
				{Name: "loose", Type: union(str(), extract.Primitive{Name: extract.PrimitiveAny})},
			}},
		},
		Enums: map[string]extract.Enum{
			"Status": {Name: "Status", Members: []extract.EnumMember{
				numberMember("A", 0), numberMember("B", 5), numberMember("C", 6),
			}},
			"Mode": {Name: "Mode", Members: []extract.EnumMember{
				{Name: "Dynamic", Value: extract.Discriminant{Kind: extract.DiscriminantComputed}},
			}},
		},
		Requests: []Request{
			{FunctionName: "validateOrder", InterfaceName: "Order"},
			{FunctionName: "validateOrder", InterfaceName: "Order"},
			{FunctionName: "validateGhost", InterfaceName: "Ghost"},
		},
		Pattern:         defaultPattern,
		OutputPath:      "/project/src/validators.ts",
		UseJSExtensions: true,
	}

	g := generateGoldie(t)
	g.Assert(t, "mixed_shapes", []byte(Generate(in)))
}

func TestGenerate_Deterministic(t *testing.T) {
	first := Generate(userScenario())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Generate(userScenario()))
	}
}

func TestGenerate_NoRequests(t *testing.T) {
	in := userScenario()
	in.Requests = nil

	assert.Equal(t, Header+"\n", Generate(in))
}

func TestGenerate_OptionalPropertySemantics(t *testing.T) {
	out := Generate(userScenario())

	assert.Contains(t, out, "(obj['tag'] === undefined || (obj['tag'] === 'a' || obj['tag'] === 'b'))")
	assert.Contains(t, out, "'id' in obj && typeof obj['id'] === 'number'")
	assert.NotContains(t, out, "'tag' in obj")
}

func TestValidators_IncludesDelegatedInterfaces(t *testing.T) {
	assert.Equal(t, []string{"validateAddress", "validateUser"}, Validators(userScenario()))
}

func TestGenerate_CustomPattern(t *testing.T) {
	in := userScenario()
	in.Pattern = pattern.MustCompile("is%(type)Valid")
	in.Requests = []Request{{FunctionName: "isUserValid", InterfaceName: "User"}}

	out := Generate(in)

	assert.Contains(t, out, "export function isAddressValid(value: unknown): value is Address {")
	assert.Contains(t, out, "'address' in obj && isAddressValid(obj['address'])")
}

func TestGenerate_SelfReference(t *testing.T) {
	in := Input{
		Interfaces: map[string]extract.Interface{
			"Node": {Name: "Node", Properties: []extract.Property{
				{Name: "children", Type: extract.ArrayOf{Elem: ref("Node")}},
			}},
		},
		Requests: []Request{{FunctionName: "validateNode", InterfaceName: "Node"}},
		Pattern:  defaultPattern,
	}

	out := Generate(in)

	assert.Contains(t, out, "obj['children'].every((e0) => validateNode(e0))")
	assert.Equal(t, []string{"validateNode"}, Validators(in))
}

func TestGenerate_GenericAndLocalInterfaces(t *testing.T) {
	in := Input{
		Interfaces: map[string]extract.Interface{
			"Box": {Name: "Box", TypeParams: []string{"T", "U"}, File: "/project/src/box.ts", Properties: []extract.Property{
				{Name: "value", Type: ref("T")},
				{Name: "label", Type: ref("Label")},
			}},
			"Label": {Name: "Label", File: "/project/src/box.ts", Local: true, Properties: []extract.Property{
				{Name: "text", Type: str()},
			}},
		},
		Requests:   []Request{{FunctionName: "validateBox", InterfaceName: "Box"}},
		Pattern:    defaultPattern,
		OutputPath: "/project/src/validators.ts",
	}

	out := Generate(in)

	assert.Contains(t, out, "import type { Box } from './box';")
	assert.NotContains(t, out, "Label }")
	assert.Contains(t, out, "export function validateBox(value: unknown): value is Box<unknown, unknown> {")
	assert.Contains(t, out, "export function validateLabel(value: unknown): boolean {")
	assert.Contains(t, out, "'label' in obj && validateLabel(obj['label'])")

	assert.Equal(t, []Caveat{
		{Validator: "validateBox", Interface: "Box", Reason: "type parameters are not checked; validator narrows to unknown arguments"},
		{Validator: "validateLabel", Interface: "Label", Reason: "interface is not exported; validator returns boolean"},
	}, Caveats(in))
	assert.Empty(t, Caveats(userScenario()))
}

func TestGenerate_OnlyLocalInterfacesHaveNoImports(t *testing.T) {
	in := Input{
		Interfaces: map[string]extract.Interface{
			"Secret": {Name: "Secret", File: "/project/src/app.ts", Local: true},
		},
		Requests:   []Request{{FunctionName: "validateSecret", InterfaceName: "Secret"}},
		Pattern:    defaultPattern,
		OutputPath: "/project/src/validators.ts",
	}

	out := Generate(in)

	assert.NotContains(t, out, "import type")
	assert.Contains(t, out, Header+"\n\nexport function validateSecret(value: unknown): boolean {")
}

func TestRequestsFromInvocations(t *testing.T) {
	requests := RequestsFromInvocations([]extract.Invocation{
		{FunctionName: "validateUser", InterfaceName: "User", Line: 1},
		{FunctionName: "validateOrder", InterfaceName: "Order", Line: 2},
		{FunctionName: "validateUser", InterfaceName: "User", Line: 3},
	})

	assert.Equal(t, []Request{
		{FunctionName: "validateUser", InterfaceName: "User"},
		{FunctionName: "validateOrder", InterfaceName: "Order"},
	}, requests)
}

func TestImportPath(t *testing.T) {
	tests := []struct {
		output, file string
		useJS        bool
		want         string
	}{
		{"/p/src/validators.ts", "/p/src/models.ts", false, "./models"},
		{"/p/src/validators.ts", "/p/src/models.ts", true, "./models.js"},
		{"/p/src/validators.ts", "/p/src/ui/view.tsx", false, "./ui/view"},
		{"/p/src/gen/validators.ts", "/p/src/types.d.ts", false, "../types"},
		{"/p/src/validators.ts", "/p/node_modules/pkg/index.d.ts", false, "../node_modules/pkg/index"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, importPath(tc.output, tc.file, tc.useJS), tc.file)
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'plain'`, quote("plain"))
	assert.Equal(t, `'it\'s'`, quote("it's"))
	assert.Equal(t, `'a\\b'`, quote(`a\b`))
	assert.Equal(t, `'line\nbreak'`, quote("line\nbreak"))
}

func TestRequireInterface(t *testing.T) {
	interfaces := map[string]extract.Interface{}
	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("Model%02d", i)
		interfaces[name] = extract.Interface{Name: name}
	}

	require.NoError(t, RequireInterface(interfaces, "Model03"))

	err := RequireInterface(interfaces, "Ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInterfaceNotFound))
	hints := errors.GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "Model00, Model01")
	assert.Contains(t, hints[0], "Model19, ...")
	assert.NotContains(t, hints[0], "Model20")

	err = RequireInterface(map[string]extract.Interface{}, "Ghost")
	assert.True(t, errors.Is(err, ErrInterfaceNotFound))
	assert.Equal(t, []string{"no interfaces were found in the scanned sources"}, errors.GetAllHints(err))
}
