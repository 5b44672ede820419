// Package config loads bagsakan.toml.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/LegacyCodeHQ/bagsakan/pattern"
	"github.com/LegacyCodeHQ/bagsakan/resolve"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "bagsakan.toml"

// Config is the user-facing configuration.
type Config struct {
	ValidatorPattern      string   `toml:"validatorPattern"`
	SourceFiles           string   `toml:"sourceFiles"`
	ValidatorFile         string   `toml:"validatorFile"`
	UseJSExtensions       bool     `toml:"useJsExtensions"`
	FollowExternalImports bool     `toml:"followExternalImports"`
	ExcludePackages       []string `toml:"excludePackages"`
	Conditions            []string `toml:"conditions"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ValidatorPattern:      "validate" + pattern.Placeholder,
		SourceFiles:           "src/**/*.ts",
		ValidatorFile:         "src/validators.ts",
		UseJSExtensions:       false,
		FollowExternalImports: true,
	}
}

// Load reads path over the defaults. A missing file yields Default().
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %s", path)
	}
	return Parse(content)
}

// Parse decodes TOML content over the defaults and validates the result.
func Parse(content []byte) (Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(bytes.NewReader(content))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, errors.Wrap(err, "unknown configuration key")
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return Config{}, errors.Wrapf(err, "malformed config at line %d, column %d", row, col)
		}
		return Config{}, errors.Wrap(err, "malformed config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot drive a run.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SourceFiles) == "" {
		return errors.New("sourceFiles must not be empty")
	}
	if strings.TrimSpace(c.ValidatorFile) == "" {
		return errors.New("validatorFile must not be empty")
	}
	if _, err := pattern.Compile(c.ValidatorPattern); err != nil {
		return errors.Wrap(err, "invalid validatorPattern")
	}
	return nil
}

// Pattern compiles the validator pattern. Validate guarantees it compiles.
func (c Config) Pattern() *pattern.Pattern {
	return pattern.MustCompile(c.ValidatorPattern)
}

// Policy builds the resolution policy.
func (c Config) Policy() resolve.Policy {
	return resolve.NewPolicy(c.FollowExternalImports, c.ExcludePackages, c.Conditions)
}

// Summary renders the configuration for display.
func (c Config) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Validator pattern: %s\n", c.ValidatorPattern)
	fmt.Fprintf(&sb, "Source files: %s\n", c.SourceFiles)
	fmt.Fprintf(&sb, "Validator file: %s\n", c.ValidatorFile)
	fmt.Fprintf(&sb, "Use .js extensions: %t\n", c.UseJSExtensions)
	return sb.String()
}
