package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aryankumar/convoy/internal/cli/run"
	"github.com/aryankumar/convoy/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
)

// Execute runs the root command with the provided context
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "convoy",
		Short: "Convoy - Bounded parallel job runner",
		Long: `Convoy runs a batch of independent shell jobs with a bounded number
in flight at once and a configurable failure policy: abort the run on
the first failure, drain in-flight jobs without starting new ones, or
continue through every job and report all failures at the end.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	// Define persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.convoy.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (json, yaml, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output with debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Minute, "per-job timeout")
	rootCmd.PersistentFlags().IntP("parallel", "p", 4, "number of jobs to keep in flight")
	rootCmd.PersistentFlags().String("on-error", "drain", "failure policy (abort, drain, continue)")

	// Bind flags to viper
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("parallel", rootCmd.PersistentFlags().Lookup("parallel"))
	viper.BindPFlag("on-error", rootCmd.PersistentFlags().Lookup("on-error"))

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(run.NewRunCmd())

	return rootCmd
}

// initConfig initializes configuration and logging
func initConfig(cmd *cobra.Command) error {
	// Load the config file (or built-in defaults when none exists)
	manager := config.NewManager(cfgFile)
	cfg, err := manager.Load()
	if err != nil {
		return err
	}

	// Feed the file's defaults into viper below flag and env precedence:
	// a flag set on the command line still wins, but an unchanged flag
	// falls back to the config file instead of its own default.
	viper.SetDefault("parallel", cfg.Defaults.Parallel)
	viper.SetDefault("on-error", cfg.Defaults.OnError)
	viper.SetDefault("timeout", cfg.Defaults.Timeout)
	viper.SetDefault("output", cfg.Defaults.OutputFormat)
	viper.SetDefault("no-color", cfg.Defaults.NoColor)

	// Read environment variables
	viper.SetEnvPrefix("CONVOY")
	viper.AutomaticEnv()

	// Setup structured logging
	setupLogging(cmd, manager.ConfigFileUsed())

	return nil
}

// setupLogging configures structured logging with slog
func setupLogging(cmd *cobra.Command, configFile string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")

	// Set log level based on verbose flag
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if noColor {
		// Use JSON handler for no-color mode
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		// Use text handler for colored output
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	if verbose {
		slog.Debug("verbose logging enabled")
		if configFile != "" {
			slog.Debug("loaded configuration", "file", configFile)
		}
	}
}
