package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/ats-scanner/internal/config"
	"github.com/jonathan/ats-scanner/internal/ingestion"
	"github.com/jonathan/ats-scanner/internal/skills"
	"github.com/jonathan/ats-scanner/internal/types"
	rootschemas "github.com/jonathan/ats-scanner/schemas"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Compare a resume with a job description",
	Long: `Scan extracts keywords from a resume and a job description, reports which
job keywords the resume covers, rates the match, and lists the missing
keywords in priority order.

The job description can be a local file (--job) or a posting URL (--job-url).
Configuration can be loaded using --config. Command-line flags override config
file values.`,
	RunE: runScan,
}

var (
	scanResume     string
	scanJob        string
	scanJobURL     string
	scanUseBrowser bool
	scanOut        string
	scanFormat     string
)

func init() {
	scanCmd.Flags().StringVarP(&scanResume, "resume", "r", "", "Path to the resume document")
	scanCmd.Flags().StringVarP(&scanJob, "job", "j", "", "Path to the job description file")
	scanCmd.Flags().StringVarP(&scanJobURL, "job-url", "u", "", "URL of the job posting")
	scanCmd.Flags().BoolVar(&scanUseBrowser, "use-browser", false, "Render the job posting in headless Chrome when static HTML is too thin")
	scanCmd.Flags().StringVarP(&scanOut, "out", "o", "", "Path to write the ScanReport JSON")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "", "Output format when --out is not set: text or json (default text)")
	addOptionFlags(scanCmd)

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Apply CLI overrides over config file and environment values
	cfg := resolveConfig(cmd)
	if cmd.Flags().Changed("resume") {
		cfg.Resume = scanResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = scanJob
		cfg.JobURL = ""
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = scanJobURL
		if !cmd.Flags().Changed("job") {
			cfg.Job = ""
		}
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = scanUseBrowser
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = scanFormat
	}

	// Step 2: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(appConfigDefaults())

	// Step 3: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume must be provided (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	if err := validateFormat(cfg.Format); err != nil {
		return err
	}

	extractor, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	// Step 4: Load the resume and job description concurrently
	var resume, job string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, _, err := ingestion.ReadDocument(cfg.Resume)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		resume = text
		return nil
	})
	g.Go(func() error {
		text, err := loadJob(gctx, cfg)
		if err != nil {
			return err
		}
		job = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	// Step 5: Compare and prioritize the missing keywords
	comparison := extractor.Compare(resume, job)
	targets, err := skills.BuildKeywordTargets(comparison, extractor.Taxonomy())
	if err != nil {
		return fmt.Errorf("failed to build keyword targets: %w", err)
	}

	jobSource := cfg.Job
	if cfg.JobURL != "" {
		jobSource = cfg.JobURL
	}
	report := &types.ScanReport{
		ScanID:     uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		JobSource:  jobSource,
		Comparison: comparison,
		Targets:    targets,
	}
	log.WithFields(log.Fields{
		"scan_id":          report.ScanID,
		"match_percentage": comparison.MatchPercentage,
		"missing":          len(comparison.Missing),
	}).Debug("scan completed")

	// Step 6: Output
	if scanOut == "" && cfg.Format == "text" {
		p := newPrinter()
		p.PrintComparison(comparison)
		if len(targets.Targets) > 0 {
			fmt.Println()
			p.PrintTargets(targets)
		}
		return nil
	}

	data, err := marshalValidated(report, rootschemas.ScanReport)
	if err != nil {
		return err
	}
	return writeOutput(scanOut, data)
}

// loadJob reads the job description from cfg.Job or fetches cfg.JobURL.
func loadJob(ctx context.Context, cfg config.Config) (string, error) {
	if cfg.Job != "" {
		text, _, err := ingestion.ReadDocument(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	}

	text, metadata, err := ingestion.IngestFromURL(ctx, cfg.JobURL, ingestion.URLOptions{UseBrowser: cfg.UseBrowser})
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	log.WithFields(log.Fields{
		"url":      cfg.JobURL,
		"platform": metadata.Platform,
		"chars":    metadata.Chars,
	}).Info("fetched job posting")
	return text, nil
}
