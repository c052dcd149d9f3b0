// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"streamgate/internal/config"
	"streamgate/internal/logging"
	"streamgate/internal/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagListen  string
	flagReferer string
	flagDebug   bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "streamgate",
	Short: "Resolve video embed URLs and relay media streams",
	Long: `Streamgate is an embed resolution and streaming relay service.
It turns third-party video embed URLs into direct media locators and
relays media bytes to clients while preserving HTTP range semantics.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: loadConfig,
	RunE:              serveRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagListen, "listen", "", "Listen address (default :8080)")
	rootCmd.PersistentFlags().StringVar(&flagReferer, "referer", "", "Default referer for relayed media fetches")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagListen != "" {
		cfg.Listen = flagListen
	}
	if flagReferer != "" {
		cfg.DefaultReferer = flagReferer
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Debug {
		logging.SetDebug()
	}

	return nil
}

func serveRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.Version = Version
	return server.New(cfg).ListenAndServe(ctx)
}
