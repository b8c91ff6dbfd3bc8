package cmd

import (
	"github.com/spf13/cobra"

	"gittrack/internal/config"
	"gittrack/internal/ui"
	"gittrack/pkg/errors"
)

func newAddCmd(a *app) *cobra.Command {
	var changeType string

	cmd := &cobra.Command{
		Use:     "add [message]",
		Aliases: []string{"a"},
		Short:   "Record a change",
		Long: `Record a change with a description and a type. The files currently
modified in the working tree are captured with it.

Without a message on a terminal, gt asks for the description and type.`,
		Example: `  gt add "handle empty input" --type fix
  gt a "document flags" -t docs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !isInteractive() {
				return errors.InputError("message", "a description is required").
					WithSuggestions(`gt add "what changed" --type fix`)
			}

			t, err := a.newTracker(cmd)
			if err != nil {
				return err
			}

			description := ""
			if len(args) == 1 {
				description = args[0]
			} else {
				description, changeType, err = promptChange(newPrompter(), t.Config(), changeType, cmd.Flags().Changed("type"))
				if err != nil {
					return err
				}
			}

			_, err = t.AddChange(cmd.Context(), description, changeType)
			return err
		},
	}

	cmd.Flags().StringVarP(&changeType, "type", "t", config.FallbackType, "Type of change")
	return cmd
}

// promptChange asks for a description and, unless the type was given on
// the command line, a change type from the configured templates
func promptChange(p ui.Prompter, cfg *config.Config, changeType string, typeSet bool) (string, string, error) {
	description, err := p.Input("Describe the change:", "", "A short summary used in the commit message")
	if err != nil {
		return "", "", err
	}

	types := cfg.Types()
	if typeSet || len(types) == 0 {
		return description, changeType, nil
	}
	changeType, err = p.Select("Type of change:", types, changeType)
	if err != nil {
		return "", "", err
	}
	return description, changeType, nil
}
