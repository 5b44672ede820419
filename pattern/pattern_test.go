package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_DefaultPattern(t *testing.T) {
	p, err := Compile("validate%(type)")
	require.NoError(t, err)

	assert.Equal(t, `^validate([A-Z][a-zA-Z]+)$`, p.Regexp().String())
	assert.Equal(t, "validateUser", p.Name("User"))
	assert.Equal(t, "validate%(type)", p.String())
}

func TestMatch(t *testing.T) {
	p := MustCompile("validate%(type)")

	tests := []struct {
		name      string
		wantIface string
		wantOK    bool
	}{
		{name: "validateUser", wantIface: "User", wantOK: true},
		{name: "validateOrderItem", wantIface: "OrderItem", wantOK: true},
		{name: "validate", wantOK: false},
		{name: "validateuser", wantOK: false},
		{name: "revalidateUser", wantOK: false},
		{name: "validateUser2", wantOK: false},
		{name: "validateU", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			iface, ok := p.Match(tc.name)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantIface, iface)
		})
	}
}

func TestMatch_SuffixAndMetacharacters(t *testing.T) {
	p := MustCompile("is$%(type)Valid")

	iface, ok := p.Match("is$UserValid")
	require.True(t, ok)
	assert.Equal(t, "User", iface)
	assert.Equal(t, "is$UserValid", p.Name("User"))

	_, ok = p.Match("isUserValid")
	assert.False(t, ok)
}

func TestCompile_RequiresExactlyOnePlaceholder(t *testing.T) {
	_, err := Compile("validate")
	assert.ErrorContains(t, err, "exactly one")

	_, err = Compile("%(type)And%(type)")
	assert.ErrorContains(t, err, "found 2")
}
