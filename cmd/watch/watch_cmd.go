package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/bagsakan/cmd/run"
)

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Regenerate validators whenever TypeScript sources change",
		Long: `Watch the project directory and every directory holding a resolved import,
and rerun the default generation each time a TypeScript source changes.
Generation errors are logged and watching continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd)
		},
	}
}

func runWatch(cmd *cobra.Command) error {
	session, err := run.NewSession(run.EnvFromCommand(cmd))
	if err != nil {
		return err
	}
	session.PrintSummaries()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	r := newRebuilder(session, watcher)
	r.rebuild()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", session.Dir)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	return watchAndRebuild(ctx, r)
}
