package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/ats-scanner/internal/ingestion"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Convert a document or job posting URL to cleaned text",
	Long: `Ingest decodes a document (.txt, .md, .pdf, .docx, .html) or fetches a job
posting URL, cleans the text, and writes <name>.cleaned.txt and
<name>.meta.json to the output directory. The cleaned text is exactly what the
scanner sees.`,
	RunE: runIngest,
}

var (
	ingestIn         string
	ingestURL        string
	ingestOutDir     string
	ingestName       string
	ingestUseBrowser bool
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestIn, "in", "i", "", "Path to the document")
	ingestCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch a job posting from")
	ingestCmd.Flags().StringVarP(&ingestOutDir, "out", "o", "", "Output directory (required)")
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "Base name of the output files (default: input file name, or job_posting)")
	ingestCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Render thin pages in headless Chrome")

	if err := ingestCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	// Validate mutually exclusive flags
	if ingestIn == "" && ingestURL == "" {
		return fmt.Errorf("either --in or --url must be provided")
	}
	if ingestIn != "" && ingestURL != "" {
		return fmt.Errorf("--in and --url are mutually exclusive; provide only one")
	}

	var cleanedText string
	var metadata *ingestion.Metadata
	var err error

	name := ingestName
	if ingestIn != "" {
		cleanedText, metadata, err = ingestion.ReadDocument(ingestIn)
		if err != nil {
			return fmt.Errorf("failed to ingest document: %w", err)
		}
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(ingestIn), filepath.Ext(ingestIn))
		}
	} else {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cleanedText, metadata, err = ingestion.IngestFromURL(ctx, ingestURL, ingestion.URLOptions{UseBrowser: ingestUseBrowser || appConfig.UseBrowser})
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
		if name == "" {
			name = "job_posting"
		}
	}

	if err := ingestion.WriteOutput(ingestOutDir, name, cleanedText, metadata); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully ingested %s\n", metadata.Source)
	_, _ = fmt.Fprintf(os.Stdout, "Cleaned text: %s\n", filepath.Join(ingestOutDir, name+".cleaned.txt"))
	_, _ = fmt.Fprintf(os.Stdout, "Metadata: %s\n", filepath.Join(ingestOutDir, name+".meta.json"))
	return nil
}
