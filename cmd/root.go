package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gittrack/internal/changelog"
	"gittrack/internal/common"
	"gittrack/internal/config"
	"gittrack/internal/git"
	"gittrack/internal/observability"
	"gittrack/internal/tracker"
	"gittrack/internal/ui"
	"gittrack/pkg/errors"
)

var (
	// gatewayFactory builds the git gateway for the resolved settings
	gatewayFactory = newGateway
	// isInteractive reports whether prompts can be shown
	isInteractive = func() bool { return ui.IsInteractive(os.Stdin) }
	// newPrompter returns the prompter used when isInteractive is true
	newPrompter = func() ui.Prompter { return ui.NewStdPrompter() }
)

// app carries the state shared by one command tree
type app struct {
	v        *viper.Viper
	settings *config.Settings
	log      *logrus.Logger
}

// NewRootCmd builds the gt command tree
func NewRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "gt",
		Short: "Record changes between commits and commit them in one go",
		Long: `gt keeps a log of the changes you make between commits. Record each one
with "gt add", review them with "gt list", then "gt commit" stages the tree,
writes a structured commit message from the log and pushes it.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.String("config-file", common.ConfigFileName, "Path of the tracker config store")
	pf.String("changes-file", common.ChangesFileName, "Path of the change log store")
	pf.String("backend", config.BackendCLI, "Git backend: cli or native")
	pf.String("git-path", "git", "git executable used by the cli backend")
	pf.String("log-level", "warn", "Diagnostic log level")
	pf.String("log-format", "text", "Diagnostic log format: text or json")
	pf.BoolP("verbose", "v", false, "Enable debug diagnostics")
	pf.Bool("no-color", false, "Disable coloured output")
	if err := config.BindFlags(a.v, pf); err != nil {
		panic(err)
	}

	root.AddCommand(
		newAddCmd(a),
		newCommitCmd(a),
		newListCmd(a),
		newAuthCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the gt command tree and exits non-zero on fatal errors
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		errors.NewErrorHandler(os.Stderr, observability.GetDefaultLogger()).Handle(err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(a.v)
	if err != nil {
		return err
	}
	a.settings = settings

	a.log = observability.NewLogger(observability.LoggerConfig{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	observability.SetDefaultLogger(a.log)

	a.log.WithFields(logrus.Fields{
		"command": cmd.CommandPath(),
		"backend": settings.Backend,
	}).Debug("starting")
	return nil
}

func (a *app) printer(cmd *cobra.Command) *ui.Printer {
	return ui.NewPrinter(cmd.OutOrStdout(), a.settings.NoColor)
}

// newTracker loads both stores and wires the tracker to the configured backend
func (a *app) newTracker(cmd *cobra.Command) (*tracker.Tracker, error) {
	configPath, err := common.ResolvePath("", a.settings.ConfigFile)
	if err != nil {
		return nil, errors.InputError("config-file", err.Error())
	}
	changesPath, err := common.ResolvePath("", a.settings.ChangesFile)
	if err != nil {
		return nil, errors.InputError("changes-file", err.Error())
	}

	cfg, err := config.NewStore(configPath, a.log).Load()
	if err != nil {
		return nil, err
	}

	return tracker.New(tracker.Options{
		Config:  cfg,
		Store:   changelog.NewStore(changesPath, a.log),
		Gateway: gatewayFactory(a.settings, cmd.OutOrStdout(), cmd.ErrOrStderr(), a.log),
		Printer: a.printer(cmd),
		Log:     a.log,
	})
}

func newGateway(s *config.Settings, stdout, stderr io.Writer, log logrus.FieldLogger) git.Gateway {
	if s.Backend == config.BackendNative {
		return git.NewNativeGateway(git.NativeOptions{
			Progress: git.NewProgressWriter(stderr),
			Auth:     git.NewAuthResolver(git.NewTokenStore(), log),
			Log:      log,
		})
	}
	return git.NewCLIGateway(git.CLIOptions{
		Binary: s.GitPath,
		Stdout: stdout,
		Stderr: stderr,
		Log:    log,
	})
}
