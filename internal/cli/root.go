package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/api"
	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/shell"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// rootFlags apply to every subcommand and win over config files and env.
type rootFlags struct {
	configPath string
	apiURL     string
	theme      string
	noColor    bool
	logFile    string
	logLevel   string
}

// app is what PersistentPreRunE wires up for the command that runs.
type app struct {
	flags rootFlags

	cfg    *config.Config
	log    *log.Logger
	shell  *shell.Shell
	closer io.Closer
	cancel context.CancelFunc
}

func newRoot() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "todo",
		Short: "Todo List App: a terminal client for a to-do service",
		Long: `todo talks to a to-do service over HTTP (GET/POST /api/todoItems,
PUT /api/todoItems/{id}). Without a subcommand it opens the interactive screen.`,
		Example: `  todo
  todo ls --hide-completed
  todo add Buy milk
  todo done 3fa85f64-5717-4562-b3fc-2c963f66afa6`,
		Version:       Version,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), a.shell)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (replaces ~/.tada/config.toml and ./tada.toml)")
	pf.StringVar(&a.flags.apiURL, "api-url", "", "endpoint root of the to-do service (default "+config.DefaultAPIURL+")")
	pf.StringVar(&a.flags.theme, "theme", "", "classic, neon or mono")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colors")
	pf.StringVar(&a.flags.logFile, "log-file", "", "append logs to this file")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(newLsCmd(a), newAddCmd(a), newDoneCmd(a))
	return root, a
}

// setup resolves configuration and builds the logger, client and shell.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = a.flags.apiURL
	}
	if flags.Changed("theme") {
		cfg.Theme = a.flags.theme
	}
	if flags.Changed("no-color") {
		cfg.NoColor = a.flags.noColor
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.flags.logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	a.cfg = cfg

	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(false, cfg.NoColor)

	// The screen owns the terminal; subcommands may warn on stderr.
	opts := logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Format: cfg.LogFormat}
	if cmd != cmd.Root() && cfg.LogFile == "" {
		opts.Fallback = cmd.ErrOrStderr()
		if !flags.Changed("log-level") {
			opts.Level = "warn"
		}
	}
	logger, closer, err := logging.Open(opts)
	if err != nil {
		return err
	}
	a.log, a.closer = logger, closer

	client, err := api.NewClient(cfg.APIURL,
		api.WithLogger(logger),
		api.WithUserAgent("tada/"+Version),
	)
	if err != nil {
		return usageError{err}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, a.cancel = context.WithCancel(ctx)
	a.shell = shell.New(ctx, client, logger)
	logger.Debug("configured", "api_url", client.BaseURL(), "theme", cfg.Theme, "command", cmd.Name())
	return nil
}

// run executes a shell command in place and applies its result.
func (a *app) run(cmd tea.Cmd) {
	if cmd != nil {
		a.shell.Apply(cmd())
	}
}

func (a *app) close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.closer != nil {
		_ = a.closer.Close()
	}
}
