package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"researchbot/internal/config"
	"researchbot/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "researchbot",
	Short: "researchbot is an interruptible research dialogue engine",
	Long: `researchbot answers research questions from a local document corpus,
falling back to background knowledge or web search, and can quiz you on
what it explained. Sessions checkpoint after every step and resume at
any decision point.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// loadConfig resolves configuration from the --config flag plus
// environment overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// createLogger builds the process logger honoring --debug and the
// configured level.
func createLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	level := logging.ParseLevel(cfg.LogLevel)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}
