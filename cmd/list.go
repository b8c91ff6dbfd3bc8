package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gittrack/internal/tracker"
)

func newListCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l"},
		Short:   "List recorded changes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.newTracker(cmd)
			if err != nil {
				return err
			}
			return t.List(format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", tracker.FormatText,
		fmt.Sprintf("Output format: %s", strings.Join(tracker.Formats, ", ")))
	return cmd
}
