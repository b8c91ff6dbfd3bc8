package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gittrack/internal/git"
	"gittrack/pkg/errors"
)

// tokenStore is the keyring used by the auth commands
var tokenStore = git.NewTokenStore

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage push credentials for the native backend",
		Long: `Store or remove the HTTPS token the native backend uses when pushing to a
host. Tokens live in the operating system keyring. GIT_USERNAME/GIT_PASSWORD
and GITHUB_TOKEN take precedence when set.`,
	}
	cmd.AddCommand(newSetTokenCmd(a), newDeleteTokenCmd(a))
	return cmd
}

func newSetTokenCmd(a *app) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:     "set-token <host>",
		Short:   "Store a push token for a host",
		Example: "  gt auth set-token github.com --token ghp_xxx",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := normalizeHost(args[0])

			if token == "" {
				if !isInteractive() {
					return errors.InputError("token", "pass --token when not running in a terminal")
				}
				var err error
				token, err = newPrompter().Password(fmt.Sprintf("Token for %s:", host), "Stored in the OS keyring")
				if err != nil {
					return err
				}
			}

			if err := tokenStore().Set(host, strings.TrimSpace(token)); err != nil {
				return err
			}
			a.log.WithField("host", host).Debug("stored token")
			a.printer(cmd).Success(fmt.Sprintf("Stored token for %s", host))
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Token to store (prompted for when omitted)")
	return cmd
}

func newDeleteTokenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-token <host>",
		Short: "Remove the push token for a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := normalizeHost(args[0])
			if err := tokenStore().Delete(host); err != nil {
				return err
			}
			a.printer(cmd).Success(fmt.Sprintf("Removed token for %s", host))
			return nil
		},
	}
}

// normalizeHost accepts a bare host or a remote URL
func normalizeHost(arg string) string {
	if host := git.HostFromURL(arg); host != "" {
		return host
	}
	return strings.TrimSpace(arg)
}
