package main

import (
	"github.com/jonathan/ats-scanner/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveUseBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes keyword extraction and resume scanning
over REST. Rate limiting is configured through ATS_RATE_LIMIT_* environment
variables.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Render thin job posting pages in headless Chrome")
	addOptionFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := resolveConfig(cmd)
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = serveUseBrowser
	}
	cfg = cfg.MergeWithDefaults(appConfigDefaults())

	t, err := loadTaxonomy(cfg.Taxonomy)
	if err != nil {
		return err
	}

	s, err := server.New(server.Config{
		Port:       cfg.Port,
		Taxonomy:   t,
		Options:    cfg.ExtractionOptions(),
		UseBrowser: cfg.UseBrowser,
	})
	if err != nil {
		return err
	}
	return s.Start()
}
