package cmd

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/bagsakan/cmd/add"
	"github.com/LegacyCodeHQ/bagsakan/cmd/imports"
	"github.com/LegacyCodeHQ/bagsakan/cmd/run"
	"github.com/LegacyCodeHQ/bagsakan/cmd/watch"
	"github.com/LegacyCodeHQ/bagsakan/config"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bagsakan",
		Short: "Generate TypeScript runtime type guards from interface declarations",
		Long: `Bagsakan scans TypeScript sources for validator calls such as
validateUser(input), follows their imports the way the TypeScript compiler
does, and writes a module of type guards for every requested interface.

Configuration is read from bagsakan.toml in the working directory. Set
BAGSAKAN_DEBUG=1 to log every resolution step.

Use 'bagsakan --help' to see all available commands, or 'bagsakan <command> --help'
for detailed information about a specific command.`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Generate(run.EnvFromCommand(cmd))
		},
	}

	cmd.PersistentFlags().StringP(run.ConfigFlag, "c", config.DefaultPath, "Path to the configuration file")

	// Initialize annotations for version template
	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	cmd.AddCommand(add.NewCommand(), watch.NewCommand(), imports.NewCommand())

	return cmd
}

// Execute runs the root command and exits non-zero on failure. Error hints
// are printed below the error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
