// Package main provides the entry point for the ats_scanner CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/ats-scanner/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootConfigPath string
	rootVerbose    bool
	rootLogFormat  string
)

// appConfig holds the file and environment configuration loaded before any
// subcommand runs. Subcommand flags override it.
var appConfig config.Config

var rootCmd = &cobra.Command{
	Use:   "ats_scanner",
	Short: "ATS keyword scanner",
	Long: `ats_scanner extracts technical keywords from resumes and job descriptions,
scores keyword coverage, and lists the job keywords a resume is missing.

Configuration can be loaded from a JSON or YAML file using --config and from
ATS_-prefixed environment variables. Command-line flags override both.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print debug logs")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "text", "Log format: text or json")
}

// setup loads configuration and configures logging.
func setup(cmd *cobra.Command, _ []string) error {
	var cfg *config.Config
	var err error
	if rootConfigPath != "" {
		cfg, err = config.LoadConfig(rootConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg, err = config.FromEnv()
		if err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = rootVerbose
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = rootLogFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = *cfg

	if err := configureLogging(cfg.Verbose, cfg.LogFormat); err != nil {
		return err
	}
	if rootConfigPath != "" {
		log.WithField("path", rootConfigPath).Debug("loaded config")
	}
	return nil
}

// configureLogging sets the global logrus level and formatter. Logs go to
// stderr so command output on stdout stays parseable.
func configureLogging(verbose bool, format string) error {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	switch format {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
