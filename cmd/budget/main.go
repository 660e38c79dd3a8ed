package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/cli"
	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "budget",
		Short: "Categorize transactions and forecast monthly budgets",
		Long: `budget sorts transactions into spending categories with a deterministic
rule cascade, projects each budget to the end of the month and turns the
result into ranked insights and recommendations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/budget/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.StringP("output", "o", config.OutputTable, "output format (table, json)")
	flags.String("as-of", "", "evaluation date YYYY-MM-DD (default: today)")
	flags.String("rules", "", "TOML rule table replacing the built-in rules")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyOutput, flags.Lookup("output"))
	_ = viper.BindPFlag(config.KeyAsOf, flags.Lookup("as-of"))
	_ = viper.BindPFlag(config.KeyRulesFile, flags.Lookup("rules"))

	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(categorizeCmd())
	rootCmd.AddCommand(forecastCmd())
	rootCmd.AddCommand(patternsCmd())
	rootCmd.AddCommand(insightsCmd())
	rootCmd.AddCommand(allocateCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	ctx := cli.NewInterruptHandler(os.Stderr).HandleInterrupts(context.Background())

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError reports a failed command. Errors that carry a user message are
// printed as is; anything else is usually a misused flag or argument and
// gets a pointer to the help text.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, cli.FormatError(err.Error()))
	if !common.IsUserError(err) {
		fmt.Fprintln(w, cli.FormatInfo("Run 'budget --help' for usage."))
	}
}

func initConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		dir, err := config.DefaultDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(dir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("BUDGET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	if used := viper.ConfigFileUsed(); used != "" {
		common.LogDebug("Loaded config", common.Fields{"path": filepath.Clean(used)})
	}
	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}
	return common.SetupLogger(os.Stderr, level, viper.GetString(config.KeyLogFormat))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "budget %s\n", version)
			return err
		},
	}
}
