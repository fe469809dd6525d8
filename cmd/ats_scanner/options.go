package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/ats-scanner/internal/config"
	"github.com/jonathan/ats-scanner/internal/keywords"
	"github.com/jonathan/ats-scanner/internal/observability"
	"github.com/jonathan/ats-scanner/internal/schemas"
	"github.com/jonathan/ats-scanner/internal/taxonomy"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Extraction flags shared by every command that scans text.
var (
	optTaxonomy         string
	optMinWordLength    int
	optMaxWordLength    int
	optScoreCap         int
	optStrict           bool
	optMinPartialLength int
)

func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&optTaxonomy, "taxonomy", "", "Path to a JSON or YAML taxonomy replacing the built-in one")
	cmd.Flags().IntVar(&optMinWordLength, "min-word-length", keywords.DefaultMinWordLength, "Shortest token considered")
	cmd.Flags().IntVar(&optMaxWordLength, "max-word-length", keywords.DefaultMaxWordLength, "Longest token considered")
	cmd.Flags().IntVar(&optScoreCap, "score-cap", keywords.DefaultScoreCapPerKeyword, "Per-keyword cap for the raw score")
	cmd.Flags().BoolVar(&optStrict, "strict", false, "Disable partial matching")
	cmd.Flags().IntVar(&optMinPartialLength, "min-partial-length", keywords.DefaultMinPartialLength, "Shortest string allowed on the contained side of a partial match")
}

// appConfigDefaults fills values neither the config file, the environment nor
// a flag provided.
func appConfigDefaults() config.Config {
	return config.Config{
		Format:    "text",
		LogFormat: "text",
		Port:      8080,
	}
}

// resolveConfig applies explicitly set extraction flags over appConfig.
func resolveConfig(cmd *cobra.Command) config.Config {
	cfg := appConfig
	if cmd.Flags().Changed("taxonomy") {
		cfg.Taxonomy = optTaxonomy
	}
	if cmd.Flags().Changed("min-word-length") {
		cfg.MinWordLength = optMinWordLength
	}
	if cmd.Flags().Changed("max-word-length") {
		cfg.MaxWordLength = optMaxWordLength
	}
	if cmd.Flags().Changed("score-cap") {
		cfg.ScoreCapPerKeyword = optScoreCap
	}
	if cmd.Flags().Changed("strict") {
		cfg.StrictMode = optStrict
	}
	if cmd.Flags().Changed("min-partial-length") {
		cfg.MinPartialLength = optMinPartialLength
	}
	return cfg
}

// loadTaxonomy returns the taxonomy at path, or nil for the built-in one.
func loadTaxonomy(path string) (*keywords.Taxonomy, error) {
	if path == "" {
		return nil, nil
	}
	t, err := taxonomy.Load(path)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"path": path, "keywords": len(t.AllKeywords())}).Debug("loaded taxonomy")
	return t, nil
}

// newExtractor builds an extractor from cfg's taxonomy and options.
func newExtractor(cfg config.Config) (*keywords.Extractor, error) {
	t, err := loadTaxonomy(cfg.Taxonomy)
	if err != nil {
		return nil, err
	}
	return keywords.NewExtractor(t, cfg.ExtractionOptions())
}

// validateFormat checks an output format flag.
func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

// marshalValidated renders v as indented JSON and checks it against the named
// embedded schema. A validation failure is an error; a schema that cannot be
// loaded only logs a warning.
func marshalValidated(v any, schemaName string) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output JSON: %w", err)
	}

	if err := schemas.ValidateEmbedded(schemaName, data); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, fmt.Errorf("generated output is invalid: %w", err)
		}
		log.WithError(err).Warn("could not validate output against schema")
	}
	return data, nil
}

// writeOutput writes data to path, creating parent directories, or to stdout
// when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	log.WithField("path", path).Info("wrote output")
	return nil
}

func newPrinter() *observability.Printer {
	return observability.NewPrinter(os.Stdout)
}
