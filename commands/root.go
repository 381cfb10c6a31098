package commands

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/bassamadnan/mailsort/classifier"
	"github.com/bassamadnan/mailsort/config"
	"github.com/bassamadnan/mailsort/gmail"
	"github.com/bassamadnan/mailsort/logging"
	"github.com/bassamadnan/mailsort/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// newGmailImporter is a package-level variable so tests can skip OAuth.
var newGmailImporter = func(ctx context.Context, settings config.GmailSettings, logger *zap.Logger) (tui.Importer, error) {
	return gmail.NewClient(ctx, settings, logger)
}

type options struct {
	configPath string
	endpoint   string
	logFile    string
	useGmail   bool
	verbose    bool
}

// env is what every command needs once flags and config are resolved.
type env struct {
	manager  *config.Manager
	settings config.Settings
	useGmail bool // --gmail given on the command line
	logger   *zap.Logger
	client   *classifier.Client
}

// Execute runs the mailsort command line.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var e *env

	root := &cobra.Command{
		Use:   "mailsort",
		Short: "Classify student emails into departments",
		Long: `mailsort sends pasted emails to a classification service and shows
the predicted department for each one.

Run without arguments to open the interactive form. Separate multiple emails
with a blank line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			e, err = setup(cmd, opts)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e != nil {
				_ = e.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), e)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "mailsort.yaml", "settings file (created with defaults if missing)")
	root.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "classification endpoint (overrides the settings file)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "log file (overrides the settings file)")
	root.PersistentFlags().BoolVar(&opts.useGmail, "gmail", false, "enable importing emails from Gmail")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	getEnv := func() *env { return e }
	root.AddCommand(classifyCmd(getEnv), setEndpointCmd(getEnv), ignoreSenderCmd(getEnv))
	return root
}

func setup(cmd *cobra.Command, opts *options) (*env, error) {
	cfgManager, err := config.NewManager(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings %s: %w", opts.configPath, err)
	}
	settings := cfgManager.Settings()
	if cmd.Flags().Changed("endpoint") {
		settings.Endpoint = opts.endpoint
	}
	if cmd.Flags().Changed("log-file") {
		settings.LogFile = opts.logFile
	}
	if opts.useGmail {
		settings.Gmail.Enabled = true
	}

	logger, err := logging.New(settings.LogFile, opts.verbose)
	if err != nil {
		return nil, err
	}
	logger.Info("Application starting...",
		zap.String("command", cmd.Name()), zap.String("endpoint", settings.Endpoint))

	return &env{
		manager:  cfgManager,
		settings: settings,
		useGmail: opts.useGmail,
		logger:   logger,
		client:   classifier.NewClient(settings.Endpoint, nil, logger),
	}, nil
}

// newImporter connects to Gmail when import is enabled. It may run the OAuth
// prompt, so it is called before the TUI starts.
func newImporter(ctx context.Context, e *env) (tui.Importer, error) {
	if !e.settings.Gmail.Enabled {
		return nil, nil
	}
	client, err := newGmailImporter(ctx, e.settings.Gmail, e.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gmail client: %w", err)
	}
	e.logger.Info("Gmail client initialized.")
	return client, nil
}

func runInteractive(ctx context.Context, e *env) error {
	importer, err := newImporter(ctx, e)
	if err != nil {
		return err
	}
	m := tui.NewInitialModel(ctx, e.client, importer, e.settings, e.logger)
	if err := tui.Run(ctx, m); err != nil {
		e.logger.Error("Error running TUI application", zap.Error(err))
		return err
	}
	e.logger.Info("TUI application stopped. Exiting.")
	return nil
}
