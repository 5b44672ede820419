// Package scan runs one bagsakan pass: glob the configured sources, traverse
// their imports, gate on missing interfaces and render the validator module.
package scan

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar"
	"github.com/cockroachdb/errors"

	"github.com/LegacyCodeHQ/bagsakan/config"
	"github.com/LegacyCodeHQ/bagsakan/diag"
	"github.com/LegacyCodeHQ/bagsakan/generate"
	"github.com/LegacyCodeHQ/bagsakan/resolve"
	"github.com/LegacyCodeHQ/bagsakan/source"
	"github.com/LegacyCodeHQ/bagsakan/traverse"
)

// Options configures a scan.
type Options struct {
	Config config.Config
	// Dir anchors the source glob and the validator file. Empty means the
	// working directory.
	Dir    string
	Sink   diag.Sink
	Reader source.ContentReader
	FS     resolve.FS
}

// Result is the state after traversal.
type Result struct {
	Roots    []string
	Registry *traverse.Registry
	options  Options
}

// Sources expands the glob relative to dir. Matches are sorted.
func Sources(dir, glob string) ([]string, error) {
	if !filepath.IsAbs(glob) {
		glob = filepath.Join(dir, glob)
	}
	matches, err := doublestar.Glob(filepath.ToSlash(glob))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid sourceFiles glob %q", glob)
	}

	files := matches[:0]
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil && !info.IsDir() {
			files = append(files, filepath.FromSlash(match))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run globs and traverses. The validator file itself is never a root.
func Run(opts Options) (*Result, error) {
	if opts.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to determine working directory")
		}
		opts.Dir = wd
	}

	files, err := Sources(opts.Dir, opts.Config.SourceFiles)
	if err != nil {
		return nil, err
	}

	output := source.Canonical(OutputPath(opts))
	roots := make([]string, 0, len(files))
	for _, file := range files {
		if source.Canonical(file) == output {
			continue
		}
		roots = append(roots, file)
	}

	registry := traverse.NewRegistry()
	driver := traverse.NewDriver(registry, traverse.Options{
		Resolver: resolve.New(opts.Config.Policy(), opts.FS),
		Reader:   opts.Reader,
		Matcher:  opts.Config.Pattern(),
		Sink:     opts.Sink,
	})
	if err := driver.Run(roots); err != nil {
		return nil, err
	}

	return &Result{Roots: roots, Registry: registry, options: opts}, nil
}

// OutputPath returns the absolute validator file path.
func OutputPath(opts Options) string {
	if filepath.IsAbs(opts.Config.ValidatorFile) {
		return opts.Config.ValidatorFile
	}
	return filepath.Join(opts.Dir, opts.Config.ValidatorFile)
}

// Input builds the generator input for the given requests.
func (r *Result) Input(requests []generate.Request) generate.Input {
	return generate.Input{
		Interfaces:      r.Registry.Interfaces,
		Enums:           r.Registry.Enums,
		Requests:        requests,
		Pattern:         r.options.Config.Pattern(),
		OutputPath:      source.Canonical(OutputPath(r.options)),
		UseJSExtensions: r.options.Config.UseJSExtensions,
	}
}

// OutputPath returns the absolute validator file path for this scan.
func (r *Result) OutputPath() string {
	return OutputPath(r.options)
}

// Generate gates on missing interfaces and renders every invoked validator.
// It returns ok=false when no validator is invoked.
func (r *Result) Generate() (content string, ok bool, err error) {
	if len(r.Registry.Invocations) == 0 {
		return "", false, nil
	}
	if err := traverse.CheckMissing(r.Registry); err != nil {
		return "", false, err
	}
	return generate.Generate(r.Input(generate.RequestsFromInvocations(r.Registry.Invocations))), true, nil
}

// WriteIfChanged writes content to path unless the file already holds it.
// Parent directories are created as needed.
func WriteIfChanged(path, content string) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, []byte(content)) {
		return false, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, errors.Wrapf(err, "failed to read %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, errors.Wrapf(err, "failed to write %s", path)
	}
	return true, nil
}
