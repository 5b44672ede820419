package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultPath))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "validate%(type)", cfg.ValidatorPattern)
	assert.Equal(t, "src/**/*.ts", cfg.SourceFiles)
	assert.Equal(t, "src/validators.ts", cfg.ValidatorFile)
	assert.False(t, cfg.UseJSExtensions)
	assert.True(t, cfg.FollowExternalImports)
	assert.Empty(t, cfg.ExcludePackages)
	assert.Empty(t, cfg.Conditions)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(`
validatorPattern = "is%(type)"
sourceFiles = "app/**/*.ts"
useJsExtensions = true
followExternalImports = false
excludePackages = ["lodash", "@internal"]
conditions = ["development"]
`), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, Config{
		ValidatorPattern:      "is%(type)",
		SourceFiles:           "app/**/*.ts",
		ValidatorFile:         "src/validators.ts",
		UseJSExtensions:       true,
		FollowExternalImports: false,
		ExcludePackages:       []string{"lodash", "@internal"},
		Conditions:            []string{"development"},
	}, cfg)

	policy := cfg.Policy()
	assert.False(t, policy.FollowExternal)
	assert.Equal(t, []string{"development", "types", "import", "node", "default"}, policy.Conditions)
	assert.True(t, policy.IsExcluded("lodash/fp"))

	name, ok := cfg.Pattern().Match("isUser")
	assert.True(t, ok)
	assert.Equal(t, "User", name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "malformed", content: "sourceFiles = ", want: "malformed config"},
		{name: "unknown key", content: "sourceFile = \"src/*.ts\"", want: "unknown configuration key"},
		{name: "wrong type", content: "useJsExtensions = \"yes\"", want: "malformed config"},
		{name: "empty sources", content: "sourceFiles = \"\"", want: "sourceFiles must not be empty"},
		{name: "empty output", content: "validatorFile = \" \"", want: "validatorFile must not be empty"},
		{name: "no placeholder", content: "validatorPattern = \"validate\"", want: "invalid validatorPattern"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_UnreadableIsError(t *testing.T) {
	_, err := Load(t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestSummary(t *testing.T) {
	summary := Default().Summary()

	assert.Contains(t, summary, "Validator pattern: validate%(type)")
	assert.Contains(t, summary, "Validator file: src/validators.ts")
}
