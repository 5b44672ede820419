// Package run holds the command flows shared by the root command and its
// subcommands.
package run

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LegacyCodeHQ/bagsakan/config"
	"github.com/LegacyCodeHQ/bagsakan/extract"
	"github.com/LegacyCodeHQ/bagsakan/generate"
	"github.com/LegacyCodeHQ/bagsakan/internal/logging"
	"github.com/LegacyCodeHQ/bagsakan/scan"
)

// ConfigFlag is the persistent flag naming the configuration file.
const ConfigFlag = "config"

// Env is what a command flow needs from its surroundings.
type Env struct {
	Out io.Writer
	Err io.Writer
	// Dir anchors relative paths; empty means the working directory.
	Dir        string
	ConfigPath string
	Debug      bool
}

// EnvFromCommand builds an Env from cmd's output streams and flags.
func EnvFromCommand(cmd *cobra.Command) Env {
	configPath := config.DefaultPath
	if f := cmd.Flag(ConfigFlag); f != nil && f.Value.String() != "" {
		configPath = f.Value.String()
	}
	return Env{
		Out:        cmd.OutOrStdout(),
		Err:        cmd.ErrOrStderr(),
		ConfigPath: configPath,
		Debug:      logging.DebugEnabled(),
	}
}

func (e Env) dir() (string, error) {
	if e.Dir != "" {
		return e.Dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to determine working directory")
	}
	return wd, nil
}

func (e Env) configPath(dir string) string {
	if filepath.IsAbs(e.ConfigPath) {
		return e.ConfigPath
	}
	return filepath.Join(dir, e.ConfigPath)
}

// Session is one loaded configuration plus its logger.
type Session struct {
	Env    Env
	Dir    string
	Config config.Config
	Logger *zap.Logger
}

// NewSession loads the configuration and builds the logger.
func NewSession(env Env) (*Session, error) {
	dir, err := env.dir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(env.configPath(dir))
	if err != nil {
		return nil, err
	}
	return &Session{
		Env:    env,
		Dir:    dir,
		Config: cfg,
		Logger: logging.New(env.Err, env.Debug),
	}, nil
}

// Scan runs a traversal with diagnostics routed to the logger.
func (s *Session) Scan() (*scan.Result, error) {
	defer func() { _ = s.Logger.Sync() }()
	return scan.Run(scan.Options{
		Config: s.Config,
		Dir:    s.Dir,
		Sink:   logging.NewSink(s.Logger, s.Env.Debug),
	})
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.Env.Out, format, args...)
}

func (s *Session) rel(path string) string {
	if rel, err := filepath.Rel(s.Dir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}

// PrintSummaries prints the configuration and resolution policy.
func (s *Session) PrintSummaries() {
	s.printf("Configuration:\n%s", indent(s.Config.Summary()))
	s.printf("Resolution policy:\n%s", indent(s.Config.Policy().Summary()))
}

func (s *Session) printCounts(res *scan.Result) {
	reg := res.Registry
	s.printf("Scanned %d source files (%d files visited)\n", len(res.Roots), len(reg.Visited()))
	s.printf("Found %d interfaces, %d enums, %d validator invocations\n",
		len(reg.Interfaces), len(reg.Enums), len(reg.Invocations))
	for _, name := range reg.InterfaceNames() {
		iface := reg.Interfaces[name]
		s.printf("  %s (%s): %s\n", name, s.rel(iface.File), propertyList(iface))
	}
}

func propertyList(iface extract.Interface) string {
	if len(iface.Properties) == 0 {
		return "no properties"
	}
	names := make([]string, len(iface.Properties))
	for i, prop := range iface.Properties {
		names[i] = prop.Name
		if prop.Optional {
			names[i] += "?"
		}
	}
	return strings.Join(names, ", ")
}

func indent(text string) string {
	lines := strings.SplitAfter(text, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		sb.WriteString("  ")
		sb.WriteString(line)
	}
	return sb.String()
}

// Generate is the default mode: scan, gate and write the validator file.
func Generate(env Env) error {
	s, err := NewSession(env)
	if err != nil {
		return err
	}
	s.PrintSummaries()
	_, _, err = s.Regenerate()
	return err
}

// Regenerate scans, gates and writes the validator file when its content
// changed. It reports whether the file was rewritten. The scan result is
// returned even when the gate fails.
func (s *Session) Regenerate() (*scan.Result, bool, error) {
	res, err := s.Scan()
	if err != nil {
		return nil, false, err
	}
	s.printCounts(res)

	content, ok, err := res.Generate()
	if err != nil {
		return res, false, err
	}
	if !ok {
		s.printf("No validator invocations found; nothing to generate\n")
		return res, false, nil
	}

	output := res.OutputPath()
	written, err := scan.WriteIfChanged(output, content)
	if err != nil {
		return res, false, err
	}
	in := res.Input(generate.RequestsFromInvocations(res.Registry.Invocations))
	s.warnCaveats(in)
	count := len(generate.Validators(in))
	if written {
		s.printf("Wrote %d validators to %s\n", count, s.rel(output))
	} else {
		s.printf("%s is up to date (%d validators)\n", s.rel(output), count)
	}
	return res, written, nil
}

func (s *Session) warnCaveats(in generate.Input) {
	for _, c := range generate.Caveats(in) {
		s.Logger.Warn(c.Reason, zap.String("validator", c.Validator), zap.String("interface", c.Interface))
	}
	_ = s.Logger.Sync()
}

// Add merges a single interface's validator into the validator file.
func Add(env Env, interfaceName string) error {
	s, err := NewSession(env)
	if err != nil {
		return err
	}
	res, err := s.Scan()
	if err != nil {
		return err
	}
	if err := generate.RequireInterface(res.Registry.Interfaces, interfaceName); err != nil {
		return err
	}

	output := res.OutputPath()
	existing, err := os.ReadFile(output)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "failed to read %s", output)
	}

	pattern := s.Config.Pattern()
	req := generate.Request{FunctionName: pattern.Name(interfaceName), InterfaceName: interfaceName}
	merged, err := generate.Merge(string(existing), res.Input(nil), req)
	if errors.Is(err, generate.ErrDuplicateValidator) {
		s.printf("%s already exists in %s; nothing to do\n", req.FunctionName, s.rel(output))
		return nil
	}
	if err != nil {
		return err
	}
	for _, dropped := range merged.Dropped {
		s.Logger.Warn("dropping validator whose interface no longer exists",
			zap.String("validator", dropped.FunctionName), zap.String("interface", dropped.InterfaceName))
	}

	if _, err := scan.WriteIfChanged(output, merged.Content); err != nil {
		return err
	}
	s.warnCaveats(res.Input(merged.Requests))
	s.printf("Added %s to %s\n", req.FunctionName, s.rel(output))
	return nil
}
