package main

import (
	"context"
	"fmt"

	"github.com/jonathan/ats-scanner/internal/ingestion"
	"github.com/jonathan/ats-scanner/internal/ranking"
	rootschemas "github.com/jonathan/ats-scanner/schemas"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank job descriptions by how well a resume covers them",
	Long: `Rank compares one resume with several job descriptions and orders them by
match percentage, then by the weighted score of the matched keywords.`,
	RunE: runRank,
}

var (
	rankResume string
	rankJobs   []string
	rankOut    string
	rankFormat string
)

func init() {
	rankCmd.Flags().StringVarP(&rankResume, "resume", "r", "", "Path to the resume document (required)")
	rankCmd.Flags().StringSliceVarP(&rankJobs, "job", "j", nil, "Path to a job description file; repeat for each job (required)")
	rankCmd.Flags().StringVarP(&rankOut, "out", "o", "", "Path to write the JobRanking JSON")
	rankCmd.Flags().StringVarP(&rankFormat, "format", "f", "text", "Output format when --out is not set: text or json")
	addOptionFlags(rankCmd)

	if err := rankCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(rankFormat); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	extractor, err := newExtractor(resolveConfig(cmd))
	if err != nil {
		return err
	}

	// 1. Load the resume and every job description in parallel
	var resume string
	jobs := make([]ranking.JobInput, len(rankJobs))
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, _, err := ingestion.ReadDocument(rankResume)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		resume = text
		return nil
	})
	for i, path := range rankJobs {
		g.Go(func() error {
			text, _, err := ingestion.ReadDocument(path)
			if err != nil {
				return fmt.Errorf("failed to read job description: %w", err)
			}
			jobs[i] = ranking.JobInput{Source: path, Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// 2. Rank
	result, err := ranking.RankJobs(ctx, extractor, resume, jobs)
	if err != nil {
		return fmt.Errorf("failed to rank jobs: %w", err)
	}

	// 3. Output
	if rankOut == "" && rankFormat == "text" {
		newPrinter().PrintRanking(result)
		return nil
	}

	data, err := marshalValidated(result, rootschemas.JobRanking)
	if err != nil {
		return err
	}
	return writeOutput(rankOut, data)
}
