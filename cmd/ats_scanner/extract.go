package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-scanner/internal/ingestion"
	rootschemas "github.com/jonathan/ats-scanner/schemas"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract taxonomy keywords from a document",
	Long: `Extract taxonomy keywords from a document or inline text and report their
frequencies, the raw and weighted scores, and the category distribution.

Documents may be .txt, .md, .pdf, .docx or .html files.`,
	RunE: runExtract,
}

var (
	extractIn     string
	extractText   string
	extractOut    string
	extractFormat string
)

func init() {
	extractCmd.Flags().StringVarP(&extractIn, "in", "i", "", "Path to the document to scan")
	extractCmd.Flags().StringVar(&extractText, "text", "", "Text to scan instead of a file")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Path to write the ExtractionResult JSON")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "text", "Output format when --out is not set: text or json")
	addOptionFlags(extractCmd)

	rootCmd.AddCommand(extractCmd)
}

// readInput returns the text to scan from exactly one of path or text, and a
// label naming where it came from.
func readInput(path, text string) (string, string, error) {
	switch {
	case path == "" && text == "":
		return "", "", fmt.Errorf("either --in or --text must be provided")
	case path != "" && text != "":
		return "", "", fmt.Errorf("--in and --text are mutually exclusive; provide only one")
	case text != "":
		return text, "(text)", nil
	}

	content, metadata, err := ingestion.ReadDocument(path)
	if err != nil {
		return "", "", err
	}
	log.WithFields(log.Fields{
		"path":   path,
		"format": metadata.Format,
		"chars":  metadata.Chars,
	}).Debug("read document")
	return content, path, nil
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(extractFormat); err != nil {
		return err
	}

	// 1. Build the extractor from config and flags
	extractor, err := newExtractor(resolveConfig(cmd))
	if err != nil {
		return err
	}

	// 2. Read the input
	text, source, err := readInput(extractIn, extractText)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		log.WithField("source", source).Warn("input is empty")
	}

	// 3. Extract
	result := extractor.Extract(text)

	// 4. Output
	if extractOut == "" && extractFormat == "text" {
		newPrinter().PrintExtraction(result)
		return nil
	}

	data, err := marshalValidated(result, rootschemas.ExtractionResult)
	if err != nil {
		return err
	}
	return writeOutput(extractOut, data)
}
