package cmd

import (
	"github.com/spf13/cobra"

	"gittrack/internal/tracker"
)

func newCommitCmd(a *app) *cobra.Command {
	var opts tracker.CommitOptions

	cmd := &cobra.Command{
		Use:     "commit",
		Aliases: []string{"c"},
		Short:   "Commit and push recorded changes",
		Long: `Stage the whole working tree and commit it with a message built from the
recorded changes, then push to origin unless --no-push is given or auto_push
is off. The change log is cleared once the commit lands, unless the push fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.newTracker(cmd)
			if err != nil {
				return err
			}

			outcome, err := t.CommitAndPush(cmd.Context(), opts)
			a.log.WithField("outcome", outcome.String()).Debug("commit finished")
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.Branch, "branch", "b", "", "Target branch (default: current branch)")
	cmd.Flags().BoolVar(&opts.NoPush, "no-push", false, "Skip pushing changes")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the commit message without committing")
	return cmd
}
