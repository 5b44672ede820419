package add

import (
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/bagsakan/cmd/run"
)

// NewCommand returns a new add command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <Interface>",
		Short: "Add a validator for one interface to the validator file",
		Long: `Scan the configured sources and merge a validator for the named interface
into the existing validator file. Validators already in the file are kept.
No validator invocation is needed for the interface.

Examples:
  bagsakan add User
  bagsakan add Order --config tools/bagsakan.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Add(run.EnvFromCommand(cmd), args[0])
		},
	}

	return cmd
}
