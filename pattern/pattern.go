// Package pattern compiles the validator naming convention into a matcher.
//
// A pattern such as "validate%(type)" names validator functions; the %(type)
// placeholder stands for the target interface name.
package pattern

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// Placeholder marks the interface name inside a validator pattern.
const Placeholder = "%(type)"

// typeGroup is what the placeholder expands to.
const typeGroup = `([A-Z][a-zA-Z]+)`

// Pattern matches validator function names and builds them from interface names.
type Pattern struct {
	raw    string
	prefix string
	suffix string
	re     *regexp.Regexp
}

// Compile builds a Pattern. The pattern must contain exactly one placeholder.
func Compile(raw string) (*Pattern, error) {
	if n := strings.Count(raw, Placeholder); n != 1 {
		return nil, errors.Newf("validator pattern %q must contain exactly one %s placeholder, found %d", raw, Placeholder, n)
	}
	prefix, suffix, _ := strings.Cut(raw, Placeholder)
	re, err := regexp.Compile("^" + regexp.QuoteMeta(prefix) + typeGroup + regexp.QuoteMeta(suffix) + "$")
	if err != nil {
		return nil, errors.Wrapf(err, "invalid validator pattern %q", raw)
	}
	return &Pattern{raw: raw, prefix: prefix, suffix: suffix, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(raw string) *Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether name is a validator name and returns its target interface.
func (p *Pattern) Match(name string) (string, bool) {
	m := p.re.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Name returns the validator function name for an interface.
func (p *Pattern) Name(iface string) string {
	return p.prefix + iface + p.suffix
}

// Regexp returns the expanded regular expression.
func (p *Pattern) Regexp() *regexp.Regexp {
	return p.re
}

func (p *Pattern) String() string {
	return p.raw
}
