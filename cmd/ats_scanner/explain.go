package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show how each token of a document matched the taxonomy",
	Long: `Explain lists every token of a document with its normalized form, the
matching tier (exact, normalized or partial) and the keyword it resolved to.`,
	RunE: runExplain,
}

var (
	explainIn     string
	explainText   string
	explainAll    bool
	explainFormat string
)

func init() {
	explainCmd.Flags().StringVarP(&explainIn, "in", "i", "", "Path to the document to explain")
	explainCmd.Flags().StringVar(&explainText, "text", "", "Text to explain instead of a file")
	explainCmd.Flags().BoolVar(&explainAll, "all", false, "Include tokens that matched nothing")
	explainCmd.Flags().StringVarP(&explainFormat, "format", "f", "text", "Output format: text or json")
	addOptionFlags(explainCmd)

	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(explainFormat); err != nil {
		return err
	}

	extractor, err := newExtractor(resolveConfig(cmd))
	if err != nil {
		return err
	}

	text, _, err := readInput(explainIn, explainText)
	if err != nil {
		return err
	}

	matches := extractor.Explain(text)
	if explainFormat == "text" {
		newPrinter().PrintExplain(matches, explainAll)
		return nil
	}

	if !explainAll {
		kept := matches[:0]
		for _, m := range matches {
			if m.Keyword != "" {
				kept = append(kept, m)
			}
		}
		matches = kept
	}
	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal explanation: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
