package cli

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"spread-trader/internal/agents"
	"spread-trader/internal/broker"
	"spread-trader/internal/config"
	"spread-trader/internal/models"
	"spread-trader/internal/store"
	"spread-trader/internal/ticket"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-15"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Paper     *broker.PaperSubmitter
	Submitter broker.OrderSubmitter
	Store     store.OrderStore
	Tools     *agents.ToolExecutor
	Defaults  ticket.Defaults
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	duration, session, err := cfg.OrderDefaults()
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid order defaults, falling back to DAY/NORMAL")
		duration, session = models.DurationDay, models.SessionNormal
	}
	app.Defaults = ticket.Defaults{Duration: duration, Session: session}

	app.Paper = broker.NewPaperSubmitter()
	breaker := broker.NewBreakerSubmitter(app.Paper, broker.BreakerConfig{
		FailureThreshold: cfg.Broker.BreakerThreshold,
		Cooldown:         cfg.Broker.BreakerCooldown,
	}, logger)
	app.Submitter = broker.NewRetryingSubmitter(breaker, cfg.RetryConfig(), logger)
	logger.Debug().Str("mode", cfg.Broker.Mode).Msg("Order submitter initialized")

	// Initialize SQLite order journal
	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0755); err != nil {
		logger.Warn().Err(err).Msg("Failed to create journal directory")
	}
	journal, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize journal, orders will not be recorded")
	} else {
		app.Store = journal
		logger.Debug().Str("path", cfg.Store.Path).Msg("SQLite journal initialized")
	}

	app.Tools = agents.NewToolExecutor(app.Submitter, app.Store, app.Defaults, logger)

	rootCmd := &cobra.Command{
		Use:   "trader",
		Short: "Spread Trader - multi-leg option order construction CLI",
		Long: `Spread Trader builds vertical spread and iron condor orders from a few
parameters, validates them, and renders the brokerage order document.

Orders can be built from flags, from YAML order tickets, or through the
assistant tool interface, and are recorded in a local journal.

Use 'trader help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
				app.Tools = agents.NewToolExecutor(app.Submitter, app.Store, app.Defaults, app.Logger)
			}
			if !app.Config.UI.ColorEnabled {
				color.NoColor = true
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.Store != nil {
				return app.Store.Close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addStrategyCommands(rootCmd, app)
	addTicketCommands(rootCmd, app)
	addJournalCommands(rootCmd, app)
	addToolCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Spread Trader v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			path := config.TemplatePath(configDirFromEnv())
			if output.IsJSON() {
				output.JSON(map[string]string{"path": path})
			} else {
				output.Println(path)
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("✓ Configuration is valid")
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Order Defaults")
	output.Printf("  Duration:        %s\n", cfg.Orders.DefaultDuration)
	output.Printf("  Session:         %s\n", cfg.Orders.DefaultSession)
	output.Println()

	output.Bold("Broker")
	output.Printf("  Mode:            %s\n", cfg.Broker.Mode)
	output.Printf("  Max Attempts:    %d\n", cfg.Broker.MaxAttempts)
	output.Printf("  Initial Delay:   %s\n", cfg.Broker.InitialDelay)
	output.Printf("  Max Delay:       %s\n", cfg.Broker.MaxDelay)
	output.Printf("  Breaker:         %d failures, %s cooldown\n", cfg.Broker.BreakerThreshold, cfg.Broker.BreakerCooldown)
	output.Println()

	output.Bold("Journal")
	output.Printf("  Path:            %s\n", cfg.Store.Path)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  File:            %s\n", cfg.Logging.File)
	output.Println()

	output.Bold("UI")
	output.Printf("  Color:           %t\n", cfg.UI.ColorEnabled)
}

// ConfigDirEnv names the environment variable that overrides the config directory.
const ConfigDirEnv = "SPREAD_TRADER_CONFIG_DIR"

func configDirFromEnv() string {
	return os.Getenv(ConfigDirEnv)
}
