package main

import (
	"fmt"
	"os"

	"github.com/jonathan/ats-scanner/internal/keywords"
	"github.com/jonathan/ats-scanner/internal/taxonomy"
	"github.com/spf13/cobra"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Inspect, export and validate keyword taxonomies",
}

var taxonomyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the categories, weights and keywords of a taxonomy",
	Args:  cobra.NoArgs,
	RunE:  runTaxonomyList,
}

var taxonomyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a taxonomy to a JSON or YAML file",
	Long: `Export writes the active taxonomy (the built-in one unless --taxonomy or the
config file names another) to a file whose extension picks the format. The
output can be edited and loaded back with --taxonomy.`,
	Args: cobra.NoArgs,
	RunE: runTaxonomyExport,
}

var taxonomyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a taxonomy file against the taxonomy schema and keyword rules",
	Args:  cobra.NoArgs,
	RunE:  runTaxonomyValidate,
}

var (
	taxonomyPath      string
	taxonomyExportOut string
	taxonomyInput     string
)

func init() {
	for _, c := range []*cobra.Command{taxonomyListCmd, taxonomyExportCmd} {
		c.Flags().StringVar(&taxonomyPath, "taxonomy", "", "Path to a JSON or YAML taxonomy (default built-in)")
	}
	taxonomyExportCmd.Flags().StringVarP(&taxonomyExportOut, "out", "o", "", "Output file, .json, .yaml or .yml (required)")
	taxonomyValidateCmd.Flags().StringVarP(&taxonomyInput, "in", "i", "", "Taxonomy file to validate (required)")

	if err := taxonomyExportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}
	if err := taxonomyValidateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	taxonomyCmd.AddCommand(taxonomyListCmd, taxonomyExportCmd, taxonomyValidateCmd)
	rootCmd.AddCommand(taxonomyCmd)
}

// activeTaxonomy returns the taxonomy named by --taxonomy or the config file,
// falling back to the built-in one.
func activeTaxonomy(cmd *cobra.Command) (*keywords.Taxonomy, error) {
	path := appConfig.Taxonomy
	if cmd.Flags().Changed("taxonomy") {
		path = taxonomyPath
	}
	t, err := loadTaxonomy(path)
	if err != nil {
		return nil, err
	}
	if t == nil {
		t = keywords.DefaultTaxonomy()
	}
	return t, nil
}

func runTaxonomyList(cmd *cobra.Command, _ []string) error {
	t, err := activeTaxonomy(cmd)
	if err != nil {
		return err
	}
	newPrinter().PrintTaxonomy(t)
	return nil
}

func runTaxonomyExport(cmd *cobra.Command, _ []string) error {
	format, err := taxonomy.FormatFromPath(taxonomyExportOut)
	if err != nil {
		return err
	}

	t, err := activeTaxonomy(cmd)
	if err != nil {
		return err
	}

	data, err := taxonomy.Encode(taxonomy.Export(t), format)
	if err != nil {
		return fmt.Errorf("failed to encode taxonomy: %w", err)
	}
	return writeOutput(taxonomyExportOut, data)
}

func runTaxonomyValidate(_ *cobra.Command, _ []string) error {
	t, err := taxonomy.Load(taxonomyInput)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "%s is valid: %d categories, %d keywords\n",
		taxonomyInput, len(t.CategoryNames()), len(t.AllKeywords()))
	return nil
}
