package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/bagsakan/pattern"
	"github.com/LegacyCodeHQ/bagsakan/tsast"
	"github.com/LegacyCodeHQ/bagsakan/tsparse"
)

var defaultPattern = pattern.MustCompile("validate%(type)")

func extractSource(t *testing.T, source string, isRoot bool) Result {
	t.Helper()
	prog, err := tsparse.Parse([]byte(source), false)
	require.NoError(t, err)
	return Extract(prog, "/project/src/file.ts", isRoot, defaultPattern)
}

func invocationNames(invocations []Invocation) []string {
	names := make([]string, len(invocations))
	for i, inv := range invocations {
		names[i] = inv.FunctionName
	}
	return names
}

func TestExtract_Interface(t *testing.T) {
	result := extractSource(t, `
export interface User {
  id: number;
  name: string;
  tag?: 'a' | 'b';
  address: Address;
  tags: Array<string>;
  meta;
}
`, true)

	require.Len(t, result.Interfaces, 1)
	assert.Equal(t, Interface{
		Name: "User",
		File: "/project/src/file.ts",
		Properties: []Property{
			{Name: "id", Type: Primitive{Name: PrimitiveNumber}},
			{Name: "name", Type: Primitive{Name: PrimitiveString}},
			{Name: "tag", Optional: true, Type: UnionOf{Members: []TypeExpr{
				Literal{LitKind: LiteralString, Str: "a"},
				Literal{LitKind: LiteralString, Str: "b"},
			}}},
			{Name: "address", Type: Reference{Name: "Address"}},
			{Name: "tags", Type: Reference{Name: "Array", Args: []TypeExpr{Primitive{Name: PrimitiveString}}}},
			{Name: "meta", Type: Primitive{Name: PrimitiveAny}},
		},
	}, result.Interfaces[0])
}

func TestExtract_InterfaceExportStatus(t *testing.T) {
	result := extractSource(t, `
export interface Public { id: string }
interface Hidden { id: string }
interface Listed { id: string }
interface Renamed { id: string }
declare interface Ambient { id: string }
export declare interface Declared { id: string }
export interface Box<T> { value: T }
export { Listed, Renamed as Other };
`, false)

	local := make(map[string]bool)
	for _, iface := range result.Interfaces {
		local[iface.Name] = iface.Local
	}
	assert.Equal(t, map[string]bool{
		"Public":   false,
		"Hidden":   true,
		"Listed":   false,
		"Renamed":  true,
		"Ambient":  true,
		"Declared": false,
		"Box":      false,
	}, local)
	assert.Equal(t, []string{"T"}, result.Interfaces[6].TypeParams)
}

func TestExtract_DeclarationFileInterfacesAreImportable(t *testing.T) {
	prog, err := tsparse.Parse([]byte("interface Money { value: number }\n"), false)
	require.NoError(t, err)

	result := Extract(prog, "/project/node_modules/money/index.d.ts", false, defaultPattern)

	require.Len(t, result.Interfaces, 1)
	assert.False(t, result.Interfaces[0].Local)
}

func TestExtract_EnumAutoIncrement(t *testing.T) {
	result := extractSource(t, `enum E { A, B = 5, C }`, false)

	require.Len(t, result.Enums, 1)
	assert.Equal(t, []EnumMember{
		{Name: "A", Value: Discriminant{Kind: DiscriminantNumber, Num: 0}},
		{Name: "B", Value: Discriminant{Kind: DiscriminantNumber, Num: 5}},
		{Name: "C", Value: Discriminant{Kind: DiscriminantNumber, Num: 6}},
	}, result.Enums[0].Members)
}

func TestExtract_EnumStringAndComputed(t *testing.T) {
	result := extractSource(t, `
enum Status {
  Active = 'active',
  Size = 'x'.length,
  Next,
  Negative = -1,
}
`, false)

	require.Len(t, result.Enums, 1)
	assert.Equal(t, []EnumMember{
		{Name: "Active", Value: Discriminant{Kind: DiscriminantString, Str: "active"}},
		{Name: "Size", Value: Discriminant{Kind: DiscriminantComputed}},
		{Name: "Next", Value: Discriminant{Kind: DiscriminantNumber, Num: 0}},
		{Name: "Negative", Value: Discriminant{Kind: DiscriminantComputed}},
	}, result.Enums[0].Members)
}

func TestExtract_InvocationPositions(t *testing.T) {
	result := extractSource(t, `
validateAlpha(x);

function f(x: unknown) {
  if (validateBravo(x)) {
    return validateCharlie(x);
  } else if (x) {
    { validateDelta(x); }
  }
  return !validateEcho(x) || (validateFoxtrot(x) && validateGolf(x));
}

const arrow = (x: unknown) => validateHotel(x);
const arrowBlock = (x: unknown) => { validateIndia(x); };
const fn = function (x: unknown) { return validateJuliet(x); };
const obj = { check: validateKilo(x), method() { return validateLima(x); } };

class Service {
  field = validateMike(x);
  run(x: unknown) { return validateNovember(x); }
}

outer(validateOscar(x), ...validatePapa(x));
export default validateQuebec(x);
`, true)

	assert.Equal(t, []string{
		"validateAlpha", "validateBravo", "validateCharlie", "validateDelta", "validateEcho", "validateFoxtrot",
		"validateGolf", "validateHotel", "validateIndia", "validateJuliet", "validateKilo", "validateLima",
		"validateMike", "validateNovember", "validateOscar", "validatePapa", "validateQuebec",
	}, invocationNames(result.Invocations))

	for _, inv := range result.Invocations {
		assert.Equal(t, "/project/src/file.ts", inv.File)
		assert.Equal(t, inv.FunctionName[len("validate"):], inv.InterfaceName)
	}
}

func TestExtract_MemberCalleesAreNeverRecognized(t *testing.T) {
	result := extractSource(t, `
validators.validateUser(x);
this.validateOrder(x);
`, true)

	assert.Empty(t, result.Invocations)
	assert.Len(t, result.SkippedCallees, 2)
	assert.Contains(t, result.SkippedCallees[0], ".validateUser")
}

func TestExtract_NestedCallsInsideNonMatchingCallee(t *testing.T) {
	result := extractSource(t, `
wrap(inner(validateUser(x)));
api.call(validateOrder(y));
`, true)

	assert.Equal(t, []string{"validateUser", "validateOrder"}, invocationNames(result.Invocations))
	require.Len(t, result.Invocations, 2)
	assert.Equal(t, 2, result.Invocations[0].Line)
	assert.Equal(t, 3, result.Invocations[1].Line)
}

func TestExtract_NonRootFilesRecordNoInvocations(t *testing.T) {
	result := extractSource(t, `
interface Dep { id: string }
validateDep(x);
`, false)

	assert.Empty(t, result.Invocations)
	require.Len(t, result.Interfaces, 1)
	assert.Equal(t, "Dep", result.Interfaces[0].Name)
}

func TestExtract_ImportSpecifiers(t *testing.T) {
	result := extractSource(t, `
import { a } from './a';
import type { B } from '../b';
export { c } from './c';
export * from 'pkg';
export const local = 1;
`, false)

	assert.Equal(t, []string{"./a", "../b", "./c", "pkg"}, result.Imports)
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		name string
		node tsast.TypeNode
		want TypeExpr
	}{
		{
			name: "primitive keyword",
			node: &tsast.PredefinedType{Name: "boolean"},
			want: Primitive{Name: PrimitiveBoolean},
		},
		{
			name: "unmodeled keyword",
			node: &tsast.PredefinedType{Name: "never"},
			want: Unknown{},
		},
		{
			name: "array of union",
			node: &tsast.ArrayType{Elem: &tsast.ParenType{Type: &tsast.UnionType{Types: []tsast.TypeNode{
				&tsast.PredefinedType{Name: "string"},
				&tsast.PredefinedType{Name: "null"},
			}}}},
			want: ArrayOf{Elem: UnionOf{Members: []TypeExpr{
				Primitive{Name: PrimitiveString},
				Primitive{Name: PrimitiveNull},
			}}},
		},
		{
			name: "negative literal",
			node: &tsast.LiteralType{Value: &tsast.UnaryExpr{Operator: "-", Arg: &tsast.NumberLit{Value: 1}}},
			want: Unknown{},
		},
		{
			name: "generic reference",
			node: &tsast.TypeRef{Name: "Page", Args: []tsast.TypeNode{&tsast.TypeRef{Name: "User"}}},
			want: Reference{Name: "Page", Args: []TypeExpr{Reference{Name: "User"}}},
		},
		{
			name: "other",
			node: &tsast.OtherType{Kind: "function_type"},
			want: Unknown{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeType(tc.node))
		})
	}
}

func TestTypeExprString(t *testing.T) {
	expr := UnionOf{Members: []TypeExpr{
		ArrayOf{Elem: UnionOf{Members: []TypeExpr{Primitive{Name: PrimitiveString}, Literal{LitKind: LiteralNumber, Num: 1.5}}}},
		Reference{Name: "Map", Args: []TypeExpr{Primitive{Name: PrimitiveString}, Literal{LitKind: LiteralBool, Bool: true}}},
		Unknown{},
	}}

	assert.Equal(t, "(string | 1.5)[] | Map<string, true> | unknown", expr.String())
}
