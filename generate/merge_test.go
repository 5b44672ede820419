package generate

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/bagsakan/extract"
)

func mergeInput() Input {
	in := userScenario()
	in.Interfaces["Order"] = extract.Interface{
		Name:       "Order",
		File:       "/project/src/orders.ts",
		Properties: []extract.Property{{Name: "total", Type: num()}},
	}
	in.Requests = nil
	return in
}

func TestRecover(t *testing.T) {
	existing := Generate(userScenario()) + "\nexport function helper(x: unknown) {}\n"

	assert.Equal(t, []Request{
		{FunctionName: "validateAddress", InterfaceName: "Address"},
		{FunctionName: "validateUser", InterfaceName: "User"},
	}, Recover(existing, defaultPattern))
}

func TestMerge_IdenticalToFromScratch(t *testing.T) {
	existing := Generate(userScenario())

	result, err := Merge(existing, mergeInput(), Request{FunctionName: "validateOrder", InterfaceName: "Order"})
	require.NoError(t, err)

	scratch := mergeInput()
	scratch.Requests = []Request{
		{FunctionName: "validateUser", InterfaceName: "User"},
		{FunctionName: "validateOrder", InterfaceName: "Order"},
	}
	assert.Equal(t, Generate(scratch), result.Content)
	assert.Equal(t, []string{"validateAddress", "validateOrder", "validateUser"}, requestNames(result.Requests))
	assert.Empty(t, result.Dropped)
	assert.Contains(t, result.Content, "import type { Order } from './orders';")
}

func TestMerge_IntoMissingFile(t *testing.T) {
	result, err := Merge("", mergeInput(), Request{FunctionName: "validateOrder", InterfaceName: "Order"})
	require.NoError(t, err)

	scratch := mergeInput()
	scratch.Requests = []Request{{FunctionName: "validateOrder", InterfaceName: "Order"}}
	assert.Equal(t, Generate(scratch), result.Content)
}

func TestMerge_DuplicateIsReported(t *testing.T) {
	existing := Generate(userScenario())

	_, err := Merge(existing, mergeInput(), Request{FunctionName: "validateUser", InterfaceName: "User"})
	assert.True(t, errors.Is(err, ErrDuplicateValidator))

	_, err = Merge(existing, mergeInput(), Request{FunctionName: "validateAddress", InterfaceName: "Address"})
	assert.True(t, errors.Is(err, ErrDuplicateValidator), "delegated validators count as present")
}

func TestMerge_SecondAddIsNoOp(t *testing.T) {
	req := Request{FunctionName: "validateOrder", InterfaceName: "Order"}
	first, err := Merge("", mergeInput(), req)
	require.NoError(t, err)

	_, err = Merge(first.Content, mergeInput(), req)
	assert.True(t, errors.Is(err, ErrDuplicateValidator))
}

func TestMerge_DropsVanishedInterfaces(t *testing.T) {
	existing := Generate(userScenario())
	in := mergeInput()
	delete(in.Interfaces, "User")

	result, err := Merge(existing, in, Request{FunctionName: "validateOrder", InterfaceName: "Order"})
	require.NoError(t, err)

	assert.Equal(t, []Request{{FunctionName: "validateUser", InterfaceName: "User"}}, result.Dropped)
	assert.NotContains(t, result.Content, "validateUser")
	assert.Contains(t, result.Content, "export function validateAddress(")
}

func requestNames(requests []Request) []string {
	names := make([]string, len(requests))
	for i, r := range requests {
		names[i] = r.FunctionName
	}
	return names
}
